package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/docvault/backend/internal/engine"
	"github.com/docvault/backend/internal/store"
)

type Server struct {
	Engine *engine.Engine
	Logger *logrus.Entry
	Router *http.ServeMux
}

func NewServer(eng *engine.Engine, logger *logrus.Entry) *Server {
	s := &Server{
		Engine: eng,
		Logger: logger,
		Router: http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.Router.HandleFunc("/api/v1/documents", s.handleDocuments)
	s.Router.HandleFunc("/api/v1/documents/", s.handleDocumentByID)
	s.Router.HandleFunc("/api/v1/query", s.handleQuery)
	s.Router.HandleFunc("/api/v1/query/history", s.handleHistory)
	s.Router.HandleFunc("/api/v1/admin/rebuild-index", s.handleRebuildIndex)
	s.Router.HandleFunc("/api/v1/status", s.handleStatus)
	s.Router.HandleFunc("/api/v1/health", s.handleHealth)
}

func (s *Server) Start(addr string) error {
	s.Logger.Infof("Starting API Server on %s", addr)
	return http.ListenAndServe(addr, s.Router)
}

// Responses

type ErrorResponse struct {
	Error string `json:"error"`
}

type UploadResponse struct {
	ID          string `json:"id"`
	Filename    string `json:"filename"`
	FileType    string `json:"file_type"`
	TotalChunks int    `json:"total_chunks"`
	Status      string `json:"status"`
}

type RebuildResponse struct {
	Rebuilt int `json:"rebuilt"`
}

type QueryRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k"`
}

// Handlers

func (s *Server) handleDocuments(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleUpload(w, r)
	case http.MethodGet:
		s.handleListDocuments(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(s.Engine.Config.Server.MaxUploadBytes); err != nil {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid multipart form"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "File field 'file' is required"})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		jsonResponse(w, http.StatusInternalServerError, ErrorResponse{Error: "Failed to read upload"})
		return
	}

	doc, err := s.Engine.IngestDocument(r.Context(), header.Filename, content, requestUser(r))
	if err != nil {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	jsonResponse(w, http.StatusCreated, UploadResponse{
		ID:          doc.ID,
		Filename:    doc.Filename,
		FileType:    doc.FileType,
		TotalChunks: doc.TotalChunks,
		Status:      doc.Status,
	})
}

func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.Engine.ListDocuments(r.Context())
	if err != nil {
		jsonResponse(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	if docs == nil {
		docs = []store.Document{}
	}
	jsonResponse(w, http.StatusOK, docs)
}

func (s *Server) handleDocumentByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/v1/documents/")
	if id == "" || strings.Contains(id, "/") {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Document id is required"})
		return
	}

	if err := s.Engine.DeleteDocument(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			jsonResponse(w, http.StatusNotFound, ErrorResponse{Error: "Document not found"})
			return
		}
		jsonResponse(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "Document deleted", "id": id})
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON"})
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Query is required"})
		return
	}

	result, err := s.Engine.Query(r.Context(), req.Query, req.TopK, requestUser(r))
	if err != nil {
		jsonResponse(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	jsonResponse(w, http.StatusOK, result)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	records, err := s.Engine.History(r.Context(), limit)
	if err != nil {
		jsonResponse(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	if records == nil {
		records = []store.QueryRecord{}
	}
	jsonResponse(w, http.StatusOK, records)
}

func (s *Server) handleRebuildIndex(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	rebuilt, err := s.Engine.RebuildIndex(r.Context())
	if err != nil {
		jsonResponse(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	jsonResponse(w, http.StatusOK, RebuildResponse{Rebuilt: rebuilt})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	counts, err := s.Engine.Status(r.Context())
	if err != nil {
		jsonResponse(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	jsonResponse(w, http.StatusOK, counts)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// requestUser reads the caller identity passed through by the auth
// collaborator in front of this service.
func requestUser(r *http.Request) string {
	if user := r.Header.Get("X-User"); user != "" {
		return user
	}
	return "anonymous"
}

func jsonResponse(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
