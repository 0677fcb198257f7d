package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/jharlan/shelf"
	"github.com/jharlan/shelf/webfs"
)

// StaticConfig enables the static file responder stage.
type StaticConfig struct {
	Store  *webfs.Store
	Index  string
	MaxAge time.Duration
}

// ListingConfig enables the directory listing stage.
type ListingConfig struct {
	Store     *webfs.Store
	ShowIcons bool
}

// HandlerConfig selects which stages a Handler runs. Every nil field skips
// the corresponding stage.
type HandlerConfig struct {
	Static    *StaticConfig
	Listing   *ListingConfig
	Favicon   []byte    // icon bytes; nil disables the favicon stage
	AccessLog io.Writer // per-request log stream; nil disables logging
	CORS      *shelf.CORSConfig
}

// Handler serves a single site's request pipeline.
type Handler struct {
	config HandlerConfig
}

// NewHandler creates a new Handler with the given configuration.
func NewHandler(config *HandlerConfig) *Handler {
	h := &Handler{config: *config}

	if h.config.Static != nil && h.config.Static.Index == "" {
		h.config.Static.Index = shelf.DefaultIndexFile
	}

	return h
}

// Router returns an http.Handler with the site's stages attached in their
// fixed order. Unmatched requests fall through to a 404 page.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	if h.config.CORS != nil && h.config.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.config.CORS.AllowedOrigins,
			AllowedMethods:   h.config.CORS.AllowedMethods,
			AllowedHeaders:   h.config.CORS.AllowedHeaders,
			ExposedHeaders:   h.config.CORS.ExposedHeaders,
			AllowCredentials: h.config.CORS.AllowCredentials,
			MaxAge:           h.config.CORS.MaxAge,
		}))
	}

	r.Use(RequestID)

	if h.config.Favicon != nil {
		r.Use(Favicon(h.config.Favicon))
	}

	if h.config.AccessLog != nil {
		r.Use(AccessLog(h.config.AccessLog))
	}

	r.Get("/*", h.handleGet)
	r.Head("/*", h.handleGet)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeDefaultNotFound(w)
	})

	return r
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	name, err := shelf.CleanRequestPath(r.URL.Path)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if h.config.Static != nil && h.serveStatic(w, r, name) {
		return
	}

	if h.config.Listing != nil && h.serveListing(w, r, name) {
		return
	}

	writeDefaultNotFound(w)
}

// serveStatic attempts to satisfy the request from the static content root.
// It reports whether the request was fully handled; a miss falls through to
// the next stage.
func (h *Handler) serveStatic(w http.ResponseWriter, r *http.Request, name string) bool {
	st := h.config.Static

	f, info, err := st.Store.Open(r.Context(), name)
	switch {
	case err == nil:
		defer func() { _ = f.Close() }()
		h.serveFile(w, r, name, info.ModTime(), f)
		return true

	case errors.Is(err, webfs.ErrDirectory):
		if !strings.HasSuffix(r.URL.Path, "/") {
			redirectWithSlash(w, r)
			return true
		}

		index := path.Join(name, st.Index)
		idx, idxInfo, idxErr := st.Store.Open(r.Context(), index)
		if idxErr != nil {
			return false
		}
		defer func() { _ = idx.Close() }()
		h.serveFile(w, r, index, idxInfo.ModTime(), idx)
		return true

	case errors.Is(err, shelf.ErrNotFound):
		return false

	default:
		slog.Error("static read error", "path", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return true
	}
}

func (h *Handler) serveFile(w http.ResponseWriter, r *http.Request, name string, modTime time.Time, content io.ReadSeeker) {
	w.Header().Set("Content-Type", webfs.ContentType(name))
	if h.config.Static.MaxAge > 0 {
		w.Header().Set("Cache-Control", cacheControl(h.config.Static.MaxAge))
	}

	http.ServeContent(w, r, name, modTime, content)
}

// serveListing renders an HTML listing when the request path resolves to a
// directory under the listing root. It reports whether the request was
// fully handled.
func (h *Handler) serveListing(w http.ResponseWriter, r *http.Request, name string) bool {
	ls := h.config.Listing

	entries, err := ls.Store.ReadDir(r.Context(), name)
	if err != nil {
		if errors.Is(err, shelf.ErrNotFound) || errors.Is(err, webfs.ErrNotDirectory) {
			return false
		}
		slog.Error("listing read error", "path", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return true
	}

	if name != "." && !strings.HasSuffix(r.URL.Path, "/") {
		redirectWithSlash(w, r)
		return true
	}

	renderListing(w, r.URL.Path, entries, ls.ShowIcons)
	return true
}

func redirectWithSlash(w http.ResponseWriter, r *http.Request) {
	target := url.URL{Path: r.URL.Path + "/", RawQuery: r.URL.RawQuery}
	http.Redirect(w, r, target.String(), http.StatusMovedPermanently)
}

func cacheControl(maxAge time.Duration) string {
	secs := int64(maxAge / time.Second)
	if secs < 1 {
		secs = 1
	}
	return "public, max-age=" + strconv.FormatInt(secs, 10)
}
