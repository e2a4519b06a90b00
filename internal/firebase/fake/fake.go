package fake

import (
	"crypto/rand"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/oklog/ulid/v2"

	"github.com/slok/tasks/internal/log"
)

// ServerConfig is the configuration for the fake server.
type ServerConfig struct {
	Logger log.Logger
}

func (c *ServerConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "firebase.Fake"})
	return nil
}

// Server is an in-memory Firebase Realtime Database REST server that only
// knows the task collection.
type Server struct {
	mux     *http.ServeMux
	items   map[string]any
	entropy io.Reader
	mu      sync.Mutex
	logger  log.Logger
}

// NewServer creates a new fake server.
func NewServer(cfg ServerConfig) (*Server, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	s := &Server{
		mux:     http.NewServeMux(),
		items:   map[string]any{},
		entropy: ulid.Monotonic(rand.Reader, 0),
		logger:  cfg.Logger,
	}
	s.mux.HandleFunc("POST /tasks.json", s.push)
	s.mux.HandleFunc("GET /tasks.json", s.list)
	s.mux.HandleFunc("DELETE /tasks/{file}", s.remove)

	return s, nil
}

// ServeHTTP satisfies http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.logger.Debugf("%s %s", r.Method, r.URL.Path)
	s.mux.ServeHTTP(w, r)
}

// IDs returns the stored IDs sorted.
func (s *Server) IDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.items))
	for id := range s.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

func (s *Server) push(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read body")
		return
	}

	var value any
	if err := sonic.Unmarshal(body, &value); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid data; couldn't parse JSON object.")
		return
	}

	s.mu.Lock()
	// Push IDs start with a dash and sort chronologically.
	id := "-" + ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
	s.items[id] = value
	s.mu.Unlock()

	s.logger.Debugf("Pushed item %s", id)
	writeJSON(w, http.StatusOK, map[string]string{"name": id})
}

func (s *Server) list(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) == 0 {
		writeJSON(w, http.StatusOK, nil)
		return
	}
	writeJSON(w, http.StatusOK, s.items)
}

func (s *Server) remove(w http.ResponseWriter, r *http.Request) {
	id, ok := strings.CutSuffix(r.PathValue("file"), ".json")
	if !ok || id == "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()

	s.logger.Debugf("Removed item %s", id)
	// Deleting a missing item is not an error.
	writeJSON(w, http.StatusOK, nil)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := sonic.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
