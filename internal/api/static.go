package api

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/ZiggyLiu/clinical-study-visual/pkg/logger"
)

// StaticFileHandler serves the dashboard assets. Paths that don't match a
// file fall back to index.html so the dashboard owns client-side routes.
type StaticFileHandler struct {
	dir    string
	fs     http.Handler
	logger *logger.Logger
}

// NewStaticFileHandler creates a static file handler rooted at dir. An
// empty dir disables static serving.
func NewStaticFileHandler(dir string, logger *logger.Logger) *StaticFileHandler {
	h := &StaticFileHandler{
		dir:    dir,
		logger: logger.Named("static-files"),
	}
	if dir != "" {
		h.fs = http.FileServer(http.Dir(dir))
	}
	return h
}

func (h *StaticFileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.fs == nil {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.dir, filepath.Clean("/"+r.URL.Path))
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		index := filepath.Join(h.dir, "index.html")
		if _, err := os.Stat(index); err == nil {
			h.logger.Debug("Serving index fallback", logger.String("path", r.URL.Path))
			http.ServeFile(w, r, index)
			return
		}
		http.NotFound(w, r)
		return
	}

	h.fs.ServeHTTP(w, r)
}
