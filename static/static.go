// Package static serves the storefront page and a 404 page from a directory.
package static

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
)

const (
	IndexFile    = "index.html"
	NotFoundFile = "404.html"
)

// Server maps "/" and "/index.html" to the index page and every other path
// to the 404 page. Files are read on each request.
type Server struct {
	dir string
}

func New(dir string) *Server {
	return &Server{dir: dir}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/", "/" + IndexFile:
		page, err := os.ReadFile(filepath.Join(s.dir, IndexFile))
		if err == nil {
			writeHTML(w, http.StatusOK, page)
			return
		}
		if !os.IsNotExist(err) {
			log.Printf("static: read %s: %v", IndexFile, err)
			http.Error(w, "500 Internal Server Error", http.StatusInternalServerError)
			return
		}
	}
	s.notFound(w)
}

func (s *Server) notFound(w http.ResponseWriter) {
	page, err := os.ReadFile(filepath.Join(s.dir, NotFoundFile))
	if err != nil {
		log.Printf("static: read %s: %v", NotFoundFile, err)
		http.Error(w, "500 Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, http.StatusNotFound, page)
}

func writeHTML(w http.ResponseWriter, status int, page []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(page)
}
