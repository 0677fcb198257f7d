package http

import (
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"time"
)

const (
	iconDir  = "\U0001F4C1" // folder
	iconFile = "\U0001F4C4" // page
)

var listingTmpl = template.Must(template.New("listing").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Index of {{.Path}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; }
td, th { padding: 0.2em 1.5em 0.2em 0; text-align: left; }
th { border-bottom: 1px solid #ccc; }
</style>
</head>
<body>
<h1>Index of {{.Path}}</h1>
<table>
<tr><th>Name</th><th>Size</th><th>Modified</th></tr>
{{- if .Parent}}
<tr><td><a href="../">{{if .ShowIcons}}{{.DirIcon}} {{end}}../</a></td><td>-</td><td>-</td></tr>
{{- end}}
{{- range .Entries}}
<tr>
<td><a href="{{.Href}}">{{if $.ShowIcons}}{{.Icon}} {{end}}{{.Name}}</a></td>
<td>{{if .IsDir}}-{{else}}{{.Size}}{{end}}</td>
<td>{{.ModTime.Format "2006-01-02 15:04:05"}}</td>
</tr>
{{- end}}
</table>
<hr>
<address>shelf</address>
</body>
</html>
`))

type listingEntry struct {
	Name    string
	Href    string
	Icon    string
	Size    int64
	ModTime time.Time
	IsDir   bool
}

type listingData struct {
	Path      string
	Parent    bool
	ShowIcons bool
	DirIcon   string
	Entries   []listingEntry
}

// renderListing writes an HTML page enumerating the immediate entries of a
// directory. Directories sort ahead of files, each group alphabetically.
func renderListing(w http.ResponseWriter, urlPath string, entries []fs.DirEntry, showIcons bool) {
	data := listingData{
		Path:      urlPath,
		Parent:    urlPath != "/" && urlPath != "",
		ShowIcons: showIcons,
		DirIcon:   iconDir,
	}

	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			// entry removed mid-listing; skip it
			continue
		}

		name := entry.Name()
		href := url.URL{Path: name}
		icon := iconFile
		if entry.IsDir() {
			name += "/"
			href.Path += "/"
			icon = iconDir
		}

		data.Entries = append(data.Entries, listingEntry{
			Name:    name,
			Href:    href.String(),
			Icon:    icon,
			Size:    info.Size(),
			ModTime: info.ModTime(),
			IsDir:   entry.IsDir(),
		})
	}

	sort.Slice(data.Entries, func(i, j int) bool {
		if data.Entries[i].IsDir != data.Entries[j].IsDir {
			return data.Entries[i].IsDir
		}
		return data.Entries[i].Name < data.Entries[j].Name
	})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := listingTmpl.Execute(w, data); err != nil {
		slog.Error("failed to render directory listing", "path", urlPath, "error", err)
	}
}
