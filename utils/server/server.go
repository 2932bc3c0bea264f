package server

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/processforge/bpmn-architect/utils/config"
	"github.com/processforge/bpmn-architect/utils/pipeline"
	"github.com/processforge/bpmn-architect/utils/prompts"
	"github.com/processforge/bpmn-architect/utils/storage"
)

// DiagramStore is the persistence surface the handlers use, satisfied by the
// JSON file store and the Postgres archive alike.
type DiagramStore interface {
	List() ([]storage.SavedDiagram, error)
	Save(xml, title string) (*storage.SavedDiagram, error)
	Get(id string) (*storage.SavedDiagram, error)
	Delete(id string) error
	Rename(id, title string) (*storage.SavedDiagram, error)
}

// fileStore adapts the JSON file store to the DiagramStore surface
type fileStore struct {
	store *storage.Store
}

func (f *fileStore) List() ([]storage.SavedDiagram, error) { return f.store.List(), nil }
func (f *fileStore) Save(xml, title string) (*storage.SavedDiagram, error) {
	return f.store.Save(xml, title)
}
func (f *fileStore) Get(id string) (*storage.SavedDiagram, error) {
	if d := f.store.Get(id); d != nil {
		return d, nil
	}
	return nil, fmt.Errorf("diagram %s not found", id)
}
func (f *fileStore) Delete(id string) error { return f.store.Delete(id) }
func (f *fileStore) Rename(id, title string) (*storage.SavedDiagram, error) {
	return f.store.Rename(id, title)
}

// Server represents the HTTP server
type Server struct {
	mux         *http.ServeMux
	config      *config.ServerConfig
	envConfig   *config.EnvConfig
	pipeline    *pipeline.Pipeline
	promptStore *prompts.Store
	diagrams    DiagramStore
}

// New creates a new HTTP server with the given configuration
func New(envConfig *config.EnvConfig) (*http.Server, error) {
	serverConfig := envConfig.GetServerConfig()

	if err := os.MkdirAll(serverConfig.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("error creating data directory: %v", err)
	}

	var diagrams DiagramStore = &fileStore{store: storage.NewStore(serverConfig.DataDir)}
	if dbConfig := envConfig.GetDatabaseConfig(); dbConfig != nil {
		archive, err := storage.OpenArchive(dbConfig)
		if err != nil {
			return nil, fmt.Errorf("error opening diagram archive: %v", err)
		}
		diagrams = archive
		config.VerboseLog("Using Postgres diagram archive")
	}

	promptStore := prompts.NewStore("")

	s := &Server{
		mux:         http.NewServeMux(),
		config:      serverConfig,
		envConfig:   envConfig,
		pipeline:    pipeline.New(envConfig, promptStore),
		promptStore: promptStore,
		diagrams:    diagrams,
	}

	s.routes()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", serverConfig.Port),
		Handler:      s.withCORS(s.mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return server, nil
}

// withCORS applies the configured CORS policy around the whole mux
func (s *Server) withCORS(next http.Handler) http.Handler {
	cors := s.config.CORS
	if !cors.Enabled {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		allowed := len(cors.AllowedOrigins) == 0
		for _, o := range cors.AllowedOrigins {
			if o == "*" || o == origin {
				allowed = true
				break
			}
		}
		if allowed && origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			if len(cors.AllowedMethods) > 0 {
				w.Header().Set("Access-Control-Allow-Methods", strings.Join(cors.AllowedMethods, ", "))
			}
			if len(cors.AllowedHeaders) > 0 {
				w.Header().Set("Access-Control-Allow-Headers", strings.Join(cors.AllowedHeaders, ", "))
			}
			if cors.MaxAge > 0 {
				w.Header().Set("Access-Control-Max-Age", fmt.Sprintf("%d", cors.MaxAge))
			}
		}
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// routes sets up the server routes
func (s *Server) routes() {
	s.mux.HandleFunc("/health", logRequest(s.handleHealth))
	s.mux.HandleFunc("/models", logRequest(s.handleModels))
	s.mux.HandleFunc("/guide", logRequest(s.handleGuide))

	// Pipeline stages
	s.mux.HandleFunc("/refine", logRequest(s.authed(s.handleRefine)))
	s.mux.HandleFunc("/generate", logRequest(s.authed(s.handleGenerate)))
	s.mux.HandleFunc("/validate", logRequest(s.authed(s.handleValidate)))
	s.mux.HandleFunc("/correct", logRequest(s.authed(s.handleCorrect)))
	s.mux.HandleFunc("/pipeline", logRequest(s.authed(s.handlePipeline)))

	// Prompt template administration
	s.mux.HandleFunc("/prompts", logRequest(s.authed(s.handlePrompts)))

	// Diagram persistence
	s.mux.HandleFunc("/diagrams", logRequest(s.authed(s.handleDiagrams)))
	s.mux.HandleFunc("/diagrams/download", logRequest(s.authed(s.handleDownload)))
}

// authed wraps a handler with the bearer-token check
func (s *Server) authed(handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !checkAuth(s.config, w, r) {
			return
		}
		handler(w, r)
	}
}

// Run creates and starts the HTTP server with the given configuration
func Run(envConfig *config.EnvConfig) error {
	server, err := New(envConfig)
	if err != nil {
		return err
	}

	serverConfig := envConfig.GetServerConfig()

	fmt.Printf("Starting server on port %d...\n", serverConfig.Port)
	fmt.Printf("Data directory: %s\n", serverConfig.DataDir)
	if serverConfig.Enabled {
		fmt.Println("Authentication is enabled. Bearer token required.")
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed to start: %v", err)
	}

	return nil
}
