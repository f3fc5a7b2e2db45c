package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hafizhArdhana/internalAssistant-AICompanyAssist/internal/layout"
)

// handleUpload stores an uploaded document in the object store and
// queues an indexing job for it.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+10*1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !layout.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusBadRequest)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds %d bytes", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	prefix := r.FormValue("prefix")
	if prefix == "" {
		prefix = s.cfg.StorePrefix
	}
	source := prefix + filename

	ctx := r.Context()
	if err := s.orchestrator.BlobstoreClient().Put(ctx, source, data, contentTypeFor(filename)); err != nil {
		jsonError(w, "failed to store document: "+err.Error(), http.StatusBadGateway)
		return
	}

	job, err := s.orchestrator.Submit(source)
	if err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   job.ID,
		"source":   source,
		"status":   job.Status,
		"poll_url": fmt.Sprintf("/api/jobs/%s", job.ID),
	})
}

// handleListDocuments lists stored documents under a prefix.
func (s *Server) handleListDocuments(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("prefix")
	if prefix == "" {
		prefix = s.cfg.StorePrefix
	}

	objects, err := s.orchestrator.BlobstoreClient().List(r.Context(), prefix)
	if err != nil {
		jsonError(w, "failed to list documents: "+err.Error(), http.StatusBadGateway)
		return
	}

	docs := make([]map[string]any, 0, len(objects))
	for _, obj := range objects {
		docs = append(docs, map[string]any{
			"name":          obj.Name,
			"size":          obj.Size,
			"last_modified": obj.LastModified,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"prefix":    prefix,
		"documents": docs,
	})
}

// handleDeleteDocument removes a document from the object store and
// deletes its chunks from the index.
func (s *Server) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	source := chi.URLParam(r, "*")
	if source == "" {
		jsonError(w, "document name is required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	idx := s.orchestrator.IndexClient()

	ids, err := idx.PointIDsBySource(ctx, source)
	if err != nil {
		jsonError(w, "failed to look up chunks: "+err.Error(), http.StatusBadGateway)
		return
	}
	if len(ids) > 0 {
		if err := idx.DeletePoints(ctx, ids); err != nil {
			jsonError(w, "failed to delete chunks: "+err.Error(), http.StatusBadGateway)
			return
		}
	}

	if err := s.orchestrator.BlobstoreClient().Delete(ctx, source); err != nil {
		jsonError(w, "failed to delete document: "+err.Error(), http.StatusBadGateway)
		return
	}

	s.log.Info("document deleted", "source", source, "chunks_deleted", len(ids))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"source":         source,
		"chunks_deleted": len(ids),
	})
}

// handleBatchDelete removes several documents in one call. Each
// source fails in isolation.
func (s *Server) handleBatchDelete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Sources []string `json:"sources"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if len(req.Sources) == 0 {
		jsonError(w, "sources is required", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	idx := s.orchestrator.IndexClient()
	store := s.orchestrator.BlobstoreClient()

	results := make([]map[string]any, 0, len(req.Sources))
	for _, source := range req.Sources {
		ids, err := idx.PointIDsBySource(ctx, source)
		if err == nil && len(ids) > 0 {
			err = idx.DeletePoints(ctx, ids)
		}
		if err == nil {
			err = store.Delete(ctx, source)
		}
		entry := map[string]any{"source": source, "chunks_deleted": len(ids)}
		if err != nil {
			entry["error"] = err.Error()
		}
		results = append(results, entry)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"results": results})
}

// handleJobStatus reports the state of one indexing job.
func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	snap := job.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"job_id":   snap.ID,
		"source":   snap.Source,
		"status":   snap.Status,
		"phase":    snap.Phase,
		"progress": snap.Progress,
	})
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func sanitizeFilename(name string) string {
	// Strip path components, keep only the base name.
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	if name == "" || name == "." {
		name = "unnamed"
	}
	return name
}

func contentTypeFor(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "application/pdf"
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".md":
		return "text/markdown"
	case ".html", ".htm":
		return "text/html"
	case ".csv":
		return "text/csv"
	default:
		return "text/plain"
	}
}
