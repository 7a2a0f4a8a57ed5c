package main

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/stevemurr/inventory-server/handler"
	"github.com/stevemurr/inventory-server/static"
	"github.com/stevemurr/inventory-server/store"
)

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	host := env("HOST", "0.0.0.0")
	port := env("PORT", "8080")
	staticPort := env("STATIC_PORT", "8081")
	staticDir := env("STATIC_DIR", "./public")
	dataDir := env("DATA_DIR", "./data")
	backend := env("STORE_BACKEND", "json")
	origins := env("ALLOWED_ORIGINS", "*")

	s, err := store.New(backend, dataDir)
	if err != nil {
		log.Fatalf("failed to create store (backend=%s): %v", backend, err)
	}
	if c, ok := s.(io.Closer); ok {
		defer c.Close()
	}

	api := handler.WithLogging("api", handler.WithCORS(handler.New(s), strings.Split(origins, ",")))
	pages := handler.WithLogging("static", static.New(staticDir))

	apiAddr := fmt.Sprintf("%s:%s", host, port)
	staticAddr := fmt.Sprintf("%s:%s", host, staticPort)

	errc := make(chan error, 2)
	go func() { errc <- http.ListenAndServe(apiAddr, api) }()
	go func() { errc <- http.ListenAndServe(staticAddr, pages) }()

	log.Printf("Inventory API listening on %s (store=%s, data=%s)", apiAddr, backend, dataDir)
	log.Printf("Static pages listening on %s (dir=%s)", staticAddr, staticDir)
	if err := <-errc; err != nil {
		log.Printf("server error: %v", err)
	}
}
