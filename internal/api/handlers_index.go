package api

import (
	"encoding/json"
	"net/http"
)

type indexRunRequest struct {
	Prefix  string   `json:"prefix"`
	Sources []string `json:"sources"`
}

// handleIndexRun triggers an incremental indexing run: documents
// present in the store but absent from the index are processed. An
// explicit sources list bypasses the diff.
func (s *Server) handleIndexRun(w http.ResponseWriter, r *http.Request) {
	var req indexRunRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}
	}
	if req.Prefix == "" {
		req.Prefix = s.cfg.StorePrefix
	}

	summary, err := s.orchestrator.RunBatch(r.Context(), req.Prefix, req.Sources)
	if err != nil {
		jsonError(w, "index run failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}

// handleIndexRebuild drops all indexed chunks for documents under the
// prefix and reindexes every stored document from scratch.
func (s *Server) handleIndexRebuild(w http.ResponseWriter, r *http.Request) {
	var req indexRunRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
			return
		}
	}
	if req.Prefix == "" {
		req.Prefix = s.cfg.StorePrefix
	}

	ctx := r.Context()
	objects, err := s.orchestrator.BlobstoreClient().List(ctx, req.Prefix)
	if err != nil {
		jsonError(w, "failed to list documents: "+err.Error(), http.StatusBadGateway)
		return
	}

	idx := s.orchestrator.IndexClient()
	sources := make([]string, 0, len(objects))
	chunksDeleted := 0
	for _, obj := range objects {
		sources = append(sources, obj.Name)
		ids, err := idx.PointIDsBySource(ctx, obj.Name)
		if err != nil {
			jsonError(w, "failed to look up chunks: "+err.Error(), http.StatusBadGateway)
			return
		}
		if len(ids) == 0 {
			continue
		}
		if err := idx.DeletePoints(ctx, ids); err != nil {
			jsonError(w, "failed to delete chunks: "+err.Error(), http.StatusBadGateway)
			return
		}
		chunksDeleted += len(ids)
	}
	s.log.Info("rebuild: cleared existing chunks", "prefix", req.Prefix, "chunks_deleted", chunksDeleted)

	summary, err := s.orchestrator.RunBatch(ctx, req.Prefix, sources)
	if err != nil {
		jsonError(w, "rebuild failed: "+err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"chunks_deleted": chunksDeleted,
		"summary":        summary,
	})
}

// handleIndexInfo reports collection status from the vector index.
func (s *Server) handleIndexInfo(w http.ResponseWriter, r *http.Request) {
	info, err := s.orchestrator.IndexClient().Info(r.Context())
	if err != nil {
		jsonError(w, "failed to fetch collection info: "+err.Error(), http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"queue_depth": s.orchestrator.QueueDepth(),
		"collection":  info,
	})
}
