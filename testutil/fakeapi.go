/*
Copyright © 2026 Pagerun, Inc.

Released under MIT license.
*/

package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
)

// FakeAPIRequest is one request received by FakeAPIServer.
type FakeAPIRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// FakeAPIServer is an in-process fake of the Pagerun admin API.
// Resources live in memory, every received request is recorded for later
// inspection. The zero set of resources is empty except the dictionaries
// (countries, languages) and the current user.
type FakeAPIServer struct {
	*httptest.Server

	mu         sync.Mutex
	requests   []FakeAPIRequest
	wantToken  string
	nextID     int
	collection map[string]map[int]map[string]interface{} // resource name -> id -> entity
}

// NewFakeAPIServer starts a fake Pagerun API on a local ephemeral port.
// The caller must Close it.
func NewFakeAPIServer() *FakeAPIServer {
	s := &FakeAPIServer{
		nextID: 1,
		collection: map[string]map[int]map[string]interface{}{
			"groups":          {},
			"pages":           {},
			"categories":      {},
			"traffic_sources": {},
		},
	}

	router := chi.NewRouter()
	router.Use(s.recordRequest, s.checkToken)

	router.Get("/user", s.handleCurrentUser)
	router.Get("/countries", s.handleCountries)
	router.Get("/languages", s.handleLanguages)
	router.Post("/stats", s.handleStats)

	for _, resource := range []string{"groups", "pages", "categories", "traffic_sources"} {
		resource := resource
		router.Route("/"+resource, func(r chi.Router) {
			r.Get("/", s.handleList(resource))
			r.Post("/", s.handleCreate(resource))
			r.Get("/{id}", s.handleGet(resource))
			r.Patch("/{id}", s.handleUpdate(resource))
			r.Delete("/{id}", s.handleDelete(resource))
		})
	}
	router.Post("/pages/{id}/clone", s.handlePageClone)
	router.Post("/pages/{id}/move", s.handlePageMove)
	router.Post("/pages/{id}/start", s.handlePageSetState("started"))
	router.Post("/pages/{id}/stop", s.handlePageSetState("stopped"))

	s.Server = httptest.NewServer(router)
	return s
}

// RequireToken makes the server reject requests whose Authorization header
// differs from token with 401.
func (s *FakeAPIServer) RequireToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wantToken = token
}

// Requests returns a copy of all received requests.
func (s *FakeAPIServer) Requests() []FakeAPIRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]FakeAPIRequest(nil), s.requests...)
}

// ResetRequests drops the recorded requests.
func (s *FakeAPIServer) ResetRequests() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
}

// Seed puts an entity into the named resource collection and returns its ID.
func (s *FakeAPIServer) Seed(resource string, entity map[string]interface{}) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	stored := copyEntity(entity)
	stored["id"] = id
	s.collection[resource][id] = stored
	return id
}

func (s *FakeAPIServer) recordRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()
		s.mu.Lock()
		s.requests = append(s.requests, FakeAPIRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   body,
		})
		s.mu.Unlock()
		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(rw, r)
	})
}

func (s *FakeAPIServer) checkToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		wantToken := s.wantToken
		s.mu.Unlock()
		if wantToken != "" && r.Header.Get("Authorization") != wantToken {
			respondError(rw, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(rw, r)
	})
}

func (s *FakeAPIServer) handleCurrentUser(rw http.ResponseWriter, _ *http.Request) {
	respondJSON(rw, http.StatusOK, map[string]interface{}{
		"id":    1,
		"email": "owner@example.com",
		"name":  "Fake Owner",
	})
}

func (s *FakeAPIServer) handleCountries(rw http.ResponseWriter, _ *http.Request) {
	respondJSON(rw, http.StatusOK, []map[string]interface{}{
		{"code": "us", "name": "United States"},
		{"code": "de", "name": "Germany"},
		{"code": "jp", "name": "Japan"},
	})
}

func (s *FakeAPIServer) handleLanguages(rw http.ResponseWriter, _ *http.Request) {
	respondJSON(rw, http.StatusOK, []map[string]interface{}{
		{"code": "en", "name": "English"},
		{"code": "de", "name": "German"},
	})
}

func (s *FakeAPIServer) handleStats(rw http.ResponseWriter, r *http.Request) {
	var req map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(rw, http.StatusBadRequest, "malformed stats request")
		return
	}
	respondJSON(rw, http.StatusOK, map[string]interface{}{
		"rows": []map[string]interface{}{
			{"date": "2026-08-01", "visits": 120, "conversions": 14},
			{"date": "2026-08-02", "visits": 98, "conversions": 9},
		},
	})
}

func (s *FakeAPIServer) handleList(resource string) http.HandlerFunc {
	return func(rw http.ResponseWriter, _ *http.Request) {
		s.mu.Lock()
		entities := make([]map[string]interface{}, 0, len(s.collection[resource]))
		for _, entity := range s.collection[resource] {
			entities = append(entities, copyEntity(entity))
		}
		s.mu.Unlock()
		respondJSON(rw, http.StatusOK, entities)
	}
}

func (s *FakeAPIServer) handleCreate(resource string) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		entity, ok := decodeEntity(rw, r)
		if !ok {
			return
		}
		id := s.Seed(resource, entity)
		s.mu.Lock()
		created := copyEntity(s.collection[resource][id])
		s.mu.Unlock()
		respondJSON(rw, http.StatusCreated, created)
	}
}

func (s *FakeAPIServer) handleGet(resource string) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		entity, ok := s.findEntity(rw, r, resource)
		if !ok {
			return
		}
		respondJSON(rw, http.StatusOK, entity)
	}
}

func (s *FakeAPIServer) handleUpdate(resource string) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		update, ok := decodeEntity(rw, r)
		if !ok {
			return
		}
		id, idOk := parseID(rw, r)
		if !idOk {
			return
		}
		s.mu.Lock()
		stored, found := s.collection[resource][id]
		if found {
			for k, v := range update {
				if k != "id" {
					stored[k] = v
				}
			}
			stored = copyEntity(stored)
		}
		s.mu.Unlock()
		if !found {
			respondError(rw, http.StatusNotFound, resource+" not found")
			return
		}
		respondJSON(rw, http.StatusOK, stored)
	}
}

func (s *FakeAPIServer) handleDelete(resource string) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		id, ok := parseID(rw, r)
		if !ok {
			return
		}
		s.mu.Lock()
		_, found := s.collection[resource][id]
		delete(s.collection[resource], id)
		s.mu.Unlock()
		if !found {
			respondError(rw, http.StatusNotFound, resource+" not found")
			return
		}
		respondJSON(rw, http.StatusOK, map[string]interface{}{"deleted": true})
	}
}

func (s *FakeAPIServer) handlePageClone(rw http.ResponseWriter, r *http.Request) {
	page, ok := s.findEntity(rw, r, "pages")
	if !ok {
		return
	}
	delete(page, "id")
	if name, hasName := page["name"].(string); hasName {
		page["name"] = name + " (copy)"
	}
	id := s.Seed("pages", page)
	s.mu.Lock()
	cloned := copyEntity(s.collection["pages"][id])
	s.mu.Unlock()
	respondJSON(rw, http.StatusCreated, cloned)
}

func (s *FakeAPIServer) handlePageMove(rw http.ResponseWriter, r *http.Request) {
	move, ok := decodeEntity(rw, r)
	if !ok {
		return
	}
	s.updatePage(rw, r, "group_id", move["group_id"])
}

func (s *FakeAPIServer) handlePageSetState(state string) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		s.updatePage(rw, r, "state", state)
	}
}

func (s *FakeAPIServer) updatePage(rw http.ResponseWriter, r *http.Request, key string, value interface{}) {
	id, ok := parseID(rw, r)
	if !ok {
		return
	}
	s.mu.Lock()
	page, found := s.collection["pages"][id]
	if found {
		page[key] = value
		page = copyEntity(page)
	}
	s.mu.Unlock()
	if !found {
		respondError(rw, http.StatusNotFound, "pages not found")
		return
	}
	respondJSON(rw, http.StatusOK, page)
}

func (s *FakeAPIServer) findEntity(rw http.ResponseWriter, r *http.Request, resource string) (map[string]interface{}, bool) {
	id, ok := parseID(rw, r)
	if !ok {
		return nil, false
	}
	s.mu.Lock()
	entity, found := s.collection[resource][id]
	if found {
		entity = copyEntity(entity)
	}
	s.mu.Unlock()
	if !found {
		respondError(rw, http.StatusNotFound, resource+" not found")
		return nil, false
	}
	return entity, true
}

func parseID(rw http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(rw, http.StatusBadRequest, fmt.Sprintf("invalid id %q", chi.URLParam(r, "id")))
		return 0, false
	}
	return id, true
}

func decodeEntity(rw http.ResponseWriter, r *http.Request) (map[string]interface{}, bool) {
	var entity map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&entity); err != nil {
		respondError(rw, http.StatusBadRequest, "malformed request body")
		return nil, false
	}
	return entity, true
}

func copyEntity(entity map[string]interface{}) map[string]interface{} {
	entityCopy := make(map[string]interface{}, len(entity))
	for k, v := range entity {
		entityCopy[k] = v
	}
	return entityCopy
}

func respondJSON(rw http.ResponseWriter, status int, body interface{}) {
	rw.Header().Set("Content-Type", contentTypeAppJSON)
	rw.WriteHeader(status)
	_ = json.NewEncoder(rw).Encode(body)
}

func respondError(rw http.ResponseWriter, status int, msg string) {
	respondJSON(rw, status, map[string]string{"error": msg})
}
