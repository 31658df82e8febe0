package server

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// RegisterUI раздаёт собранный SPA из dir. Неизвестные пути (кроме /api/)
// получают index.html, чтобы работал клиентский роутинг.
func (a *App) RegisterUI(dir string) {
	files := http.FileServer(http.Dir(dir))
	index := filepath.Join(dir, "index.html")

	a.Router.PathPrefix("/").Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			http.NotFound(w, r)
			return
		}
		clean := path.Clean("/" + r.URL.Path)
		if clean != "/" {
			if st, err := os.Stat(filepath.Join(dir, filepath.FromSlash(clean))); err == nil && !st.IsDir() {
				files.ServeHTTP(w, r)
				return
			}
		}
		http.ServeFile(w, r, index)
	})).Methods(http.MethodGet, http.MethodHead)
}
