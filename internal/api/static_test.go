package api

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZiggyLiu/clinical-study-visual/pkg/logger"
)

func TestStaticFileHandler(t *testing.T) {
	dir := t.TempDir()
	writeFile := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	writeFile("index.html", "<html>dashboard</html>")
	writeFile("app.js", "console.log(1)")

	h := NewStaticFileHandler(dir, logger.Nop())

	tests := []struct {
		path     string
		wantBody string
	}{
		{"/app.js", "console.log(1)"},
		{"/", "<html>dashboard</html>"},
		// Unknown paths fall back to the dashboard shell.
		{"/trials/overview", "<html>dashboard</html>"},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", tt.path, rec.Code)
			continue
		}
		if got := rec.Body.String(); got != tt.wantBody {
			t.Errorf("GET %s body = %q, want %q", tt.path, got, tt.wantBody)
		}
	}
}

func TestStaticFileHandlerDisabled(t *testing.T) {
	h := NewStaticFileHandler("", logger.Nop())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 with static serving disabled", rec.Code)
	}
}
