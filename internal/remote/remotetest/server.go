// Package remotetest provides an in-memory fake of the remote content-store
// API for tests: file contents with blob SHAs, per-path commit history, and
// injectable failures for exercising abort paths.
package remotetest

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"
)

type fileState struct {
	content []byte
	sha     string
}

type commit struct {
	sha     string
	path    string
	message string
	date    time.Time
	// content and blobSHA snapshot the file as of this commit, so reads at
	// a historical revision can be served.
	content []byte
	blobSHA string
}

// Server is a fake GitHub-style content store backed by memory.
type Server struct {
	mu sync.Mutex

	Owner string
	Repo  string

	// RepoExists controls whether the repository check succeeds before any
	// create call.
	RepoExists bool

	// FailPuts makes every content write fail with a 500 while leaving
	// stored state untouched. Used to test abort-leaves-prior-state intact.
	FailPuts bool

	// Requests counts every request served, by "METHOD path".
	Requests map[string]int

	files      map[string]*fileState
	commits    []commit
	nextBlob   int
	nextCommit int
	baseTime   time.Time
	httpServer *httptest.Server
}

// New starts a fake server for owner/repo. Callers should point
// KEYFOLD_API_URL at URL() and Close() when done (or use t.Cleanup).
func New(owner, repo string) *Server {
	s := &Server{
		Owner:      owner,
		Repo:       repo,
		RepoExists: true,
		Requests:   make(map[string]int),
		files:      make(map[string]*fileState),
		baseTime:   time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
	}
	s.httpServer = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// URL returns the base URL of the fake API.
func (s *Server) URL() string {
	return s.httpServer.URL
}

// Close shuts the server down.
func (s *Server) Close() {
	s.httpServer.Close()
}

// FileContent returns the current content at path, if any.
func (s *Server) FileContent(path string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.files[path]
	if !ok {
		return nil, false
	}
	return f.content, true
}

// SeedFile sets the current content at path directly, recording a commit.
func (s *Server) SeedFile(path string, content []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writeLocked(path, content, "seed: "+path)
}

// CommitCount returns the number of commits touching path.
func (s *Server) CommitCount(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.commits {
		if c.path == path {
			n++
		}
	}
	return n
}

func (s *Server) writeLocked(path string, content []byte, message string) (blobSHA, commitSHA string) {
	s.nextBlob++
	s.nextCommit++
	blobSHA = fmt.Sprintf("blob-%04d", s.nextBlob)
	commitSHA = fmt.Sprintf("commit-%04d", s.nextCommit)

	stored := make([]byte, len(content))
	copy(stored, content)

	s.files[path] = &fileState{content: stored, sha: blobSHA}
	s.commits = append(s.commits, commit{
		sha:     commitSHA,
		path:    path,
		message: message,
		date:    s.baseTime.Add(time.Duration(s.nextCommit) * time.Minute),
		content: stored,
		blobSHA: blobSHA,
	})
	return blobSHA, commitSHA
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.Requests[r.Method+" "+r.URL.Path]++

	repoRoot := fmt.Sprintf("/repos/%s/%s", s.Owner, s.Repo)
	contentsPrefix := repoRoot + "/contents/"

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/user":
		writeJSON(w, http.StatusOK, map[string]string{"login": s.Owner})

	case r.Method == http.MethodGet && r.URL.Path == repoRoot:
		if s.RepoExists {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusNotFound)
		}

	case r.Method == http.MethodPost && r.URL.Path == "/user/repos":
		s.RepoExists = true
		w.WriteHeader(http.StatusCreated)

	case r.URL.Path == repoRoot+"/commits":
		s.handleCommits(w, r)

	case strings.HasPrefix(r.URL.Path, contentsPrefix):
		path := strings.TrimPrefix(r.URL.Path, contentsPrefix)
		switch r.Method {
		case http.MethodGet:
			s.handleGetFile(w, r, path)
		case http.MethodPut:
			s.handlePutFile(w, r, path)
		case http.MethodDelete:
			s.handleDeleteFile(w, r, path)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (s *Server) handleGetFile(w http.ResponseWriter, r *http.Request, path string) {
	ref := r.URL.Query().Get("ref")

	if ref != "" {
		for _, c := range s.commits {
			if c.sha == ref && c.path == path {
				writeJSON(w, http.StatusOK, map[string]string{
					"content": base64.StdEncoding.EncodeToString(c.content),
					"sha":     c.blobSHA,
				})
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		return
	}

	f, ok := s.files[path]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"content": base64.StdEncoding.EncodeToString(f.content),
		"sha":     f.sha,
	})
}

func (s *Server) handlePutFile(w http.ResponseWriter, r *http.Request, path string) {
	if s.FailPuts {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	var body struct {
		Message string `json:"message"`
		Content string `json:"content"`
		SHA     string `json:"sha"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	existing, exists := s.files[path]
	if exists && body.SHA != existing.sha {
		w.WriteHeader(http.StatusConflict)
		return
	}
	if !exists && body.SHA != "" {
		w.WriteHeader(http.StatusConflict)
		return
	}

	content, err := base64.StdEncoding.DecodeString(body.Content)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	blobSHA, _ := s.writeLocked(path, content, body.Message)

	status := http.StatusCreated
	if exists {
		status = http.StatusOK
	}
	writeJSON(w, status, map[string]any{
		"content": map[string]string{"sha": blobSHA},
	})
}

func (s *Server) handleDeleteFile(w http.ResponseWriter, r *http.Request, path string) {
	var body struct {
		Message string `json:"message"`
		SHA     string `json:"sha"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	existing, exists := s.files[path]
	if !exists {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if body.SHA != existing.sha {
		w.WriteHeader(http.StatusConflict)
		return
	}

	delete(s.files, path)
	s.nextCommit++
	s.commits = append(s.commits, commit{
		sha:     fmt.Sprintf("commit-%04d", s.nextCommit),
		path:    path,
		message: body.Message,
		date:    s.baseTime.Add(time.Duration(s.nextCommit) * time.Minute),
	})
	writeJSON(w, http.StatusOK, map[string]any{})
}

func (s *Server) handleCommits(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	page := 1
	perPage := 30
	fmt.Sscan(r.URL.Query().Get("page"), &page)
	fmt.Sscan(r.URL.Query().Get("per_page"), &perPage)

	// Newest first.
	var matched []commit
	for i := len(s.commits) - 1; i >= 0; i-- {
		if s.commits[i].path == path {
			matched = append(matched, s.commits[i])
		}
	}

	start := (page - 1) * perPage
	end := start + perPage
	if start > len(matched) {
		start = len(matched)
	}
	if end > len(matched) {
		end = len(matched)
	}

	result := make([]map[string]any, 0, end-start)
	for _, c := range matched[start:end] {
		result = append(result, map[string]any{
			"sha": c.sha,
			"commit": map[string]any{
				"message":   c.message,
				"committer": map[string]any{"date": c.date.Format(time.RFC3339)},
			},
		})
	}
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
