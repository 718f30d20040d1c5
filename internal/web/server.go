package web

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pkeller/tocedit/internal/config"
	"github.com/pkeller/tocedit/internal/editor"
	"github.com/pkeller/tocedit/internal/storage"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// NewServer creates and configures the HTTP server for the tocedit web UI.
// The server holds the live editor; every mutation route maps onto one
// editor callback and redirects back to the document page.
func NewServer(ed *editor.Editor, store storage.Store, cfg *config.Config, version, bind string, port int) *http.Server {
	// Create sub-FS for templates (strip "templates/" prefix)
	templateSub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		log.Fatalf("failed to create template sub-FS: %v", err)
	}

	// Create sub-FS for static files (strip "static/" prefix)
	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		log.Fatalf("failed to create static sub-FS: %v", err)
	}

	renderer := NewRenderer(templateSub, version)

	h := &Handlers{
		ed:       ed,
		store:    store,
		cfg:      cfg,
		renderer: renderer,
	}

	mux := http.NewServeMux()

	// Routes using Go 1.22+ pattern syntax
	mux.HandleFunc("GET /{$}", h.HandleDocument)
	mux.HandleFunc("POST /reason", h.HandleSetReason)
	mux.HandleFunc("POST /tags/add", h.HandleAddTag)
	mux.HandleFunc("POST /tags/remove", h.HandleRemoveTag)
	mux.HandleFunc("POST /assumptions/add", h.HandleAddAssumption)
	mux.HandleFunc("POST /assumptions/delete", h.HandleDeleteAssumption)
	mux.HandleFunc("POST /assumptions/page", h.HandleSetPage)
	mux.HandleFunc("POST /outcomes/add", h.HandleAddOutcome)
	mux.HandleFunc("POST /outcomes/delete", h.HandleDeleteOutcome)
	mux.HandleFunc("POST /outcomes/toggle", h.HandleToggleOutcome)
	mux.HandleFunc("POST /outcomes/subs/add", h.HandleAddChild)
	mux.HandleFunc("POST /outcomes/subs/delete", h.HandleDeleteChild)
	mux.HandleFunc("POST /items/add", h.HandleAddItem)
	mux.HandleFunc("POST /items/delete", h.HandleDeleteItem)
	mux.HandleFunc("POST /items/toggle", h.HandleToggleExpandedView)
	mux.HandleFunc("POST /edit/start", h.HandleStartEdit)
	mux.HandleFunc("POST /edit/commit", h.HandleCommitEdit)
	mux.HandleFunc("POST /edit/cancel", h.HandleCancelEdit)
	mux.HandleFunc("POST /save", h.HandleSave)

	// Static file server
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticSub)))

	// Wrap with security headers
	handler := securityHeaders(mux)

	return &http.Server{
		Addr:    fmt.Sprintf("%s:%d", bind, port),
		Handler: handler,
	}
}

// securityHeaders adds security-related HTTP headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self'; style-src 'self'")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

// Run starts the HTTP server and handles graceful shutdown on SIGINT/SIGTERM.
func Run(srv *http.Server) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.Printf("tocedit UI running at http://%s", srv.Addr)

	if strings.Contains(srv.Addr, "0.0.0.0") || strings.Contains(srv.Addr, "::") {
		log.Printf("WARNING: Server is binding to all interfaces and may be accessible from the network")
	}

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
