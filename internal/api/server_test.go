package api

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/hafizhArdhana/internalAssistant-AICompanyAssist/internal/blobstore"
	"github.com/hafizhArdhana/internalAssistant-AICompanyAssist/internal/config"
	"github.com/hafizhArdhana/internalAssistant-AICompanyAssist/internal/index"
	"github.com/hafizhArdhana/internalAssistant-AICompanyAssist/internal/pipeline"
)

// fakeBackends serves both the object store and vector index APIs so
// handlers can be exercised end to end.
type fakeBackends struct {
	mu       sync.Mutex
	objects  map[string][]byte
	upserted int
}

func (f *fakeBackends) storeHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		if r.URL.Path == "/objects" {
			var list []map[string]any
			for name, data := range f.objects {
				list = append(list, map[string]any{"name": name, "size": len(data)})
			}
			json.NewEncoder(w).Encode(map[string]any{"objects": list})
			return
		}
		name := strings.TrimPrefix(r.URL.Path, "/objects/")
		switch r.Method {
		case http.MethodPut:
			data, _ := io.ReadAll(r.Body)
			f.objects[name] = data
			w.WriteHeader(http.StatusCreated)
		case http.MethodGet:
			data, ok := f.objects[name]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Write(data)
		case http.MethodDelete:
			delete(f.objects, name)
		}
	})
}

func (f *fakeBackends) indexHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		switch {
		case strings.HasSuffix(r.URL.Path, "/points/scroll"):
			json.NewEncoder(w).Encode(map[string]any{
				"result": map[string]any{"points": []any{}, "next_page_offset": nil},
			})
		case strings.HasSuffix(r.URL.Path, "/points/delete"):
			w.Write([]byte(`{"status":"ok"}`))
		case strings.HasSuffix(r.URL.Path, "/points"):
			f.upserted++
			w.Write([]byte(`{"status":"ok"}`))
		default:
			json.NewEncoder(w).Encode(map[string]any{
				"result": map[string]any{"status": "green", "points_count": f.upserted},
			})
		}
	})
}

func newTestServer(t *testing.T) (*Server, *fakeBackends) {
	t.Helper()
	backends := &fakeBackends{objects: map[string][]byte{}}
	storeSrv := httptest.NewServer(backends.storeHandler())
	indexSrv := httptest.NewServer(backends.indexHandler())
	t.Cleanup(storeSrv.Close)
	t.Cleanup(indexSrv.Close)

	cfg := config.Config{
		Port:               "0",
		ServiceAPIKey:      "test-key",
		StorePrefix:        "sop/",
		MaxUploadBytes:     1 << 20,
		MaxQueueSize:       10,
		WorkerCount:        1,
		MaxConcurrentDocs:  2,
		SectionChunkTokens: 3500,
		TableChunkTokens:   5000,
		JobTTL:             time.Hour,
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := blobstore.NewClient(storeSrv.URL, "")
	idx := index.NewClient(indexSrv.URL, "", "documents")
	orch := pipeline.NewOrchestrator(cfg, store, idx, log)
	return NewServer(orch, log, cfg), backends
}

func authed(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer test-key")
	return req
}

func TestHealth_NoAuthRequired(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestAuth_RejectsMissingAndWrongKeys(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/documents", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no auth: status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong key: status = %d", rec.Code)
	}
}

func uploadRequest(t *testing.T, filename, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte(content))
	mw.Close()
	req := httptest.NewRequest(http.MethodPost, "/api/documents", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return authed(req)
}

func TestUpload_StoresAndQueues(t *testing.T) {
	srv, backends := newTestServer(t)

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, uploadRequest(t, "policy.txt", "1. Policy\n\nBody text."))
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["source"] != "sop/policy.txt" {
		t.Errorf("source = %v", resp["source"])
	}
	if resp["job_id"] == "" {
		t.Error("job_id missing")
	}

	backends.mu.Lock()
	_, stored := backends.objects["sop/policy.txt"]
	backends.mu.Unlock()
	if !stored {
		t.Error("document not written to the object store")
	}

	// The job must be visible immediately.
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, authed(httptest.NewRequest(http.MethodGet, "/api/jobs/"+resp["job_id"].(string), nil)))
	if rec.Code != http.StatusOK {
		t.Errorf("job status = %d", rec.Code)
	}
}

func TestUpload_RejectsUnsupportedType(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, uploadRequest(t, "image.png", "binary"))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestJobStatus_UnknownJob(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, authed(httptest.NewRequest(http.MethodGet, "/api/jobs/nope", nil)))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestIndexRun_ProcessesNewDocuments(t *testing.T) {
	srv, backends := newTestServer(t)
	backends.objects["sop/doc.txt"] = []byte("1. Scope\n\nThis document covers everything.")

	rec := httptest.NewRecorder()
	req := authed(httptest.NewRequest(http.MethodPost, "/api/index/run", strings.NewReader(`{"prefix":"sop/"}`)))
	req.Header.Set("Content-Type", "application/json")
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var summary pipeline.Summary
	json.Unmarshal(rec.Body.Bytes(), &summary)
	if summary.Indexed != 1 {
		t.Errorf("indexed = %d, want 1", summary.Indexed)
	}
	if summary.TotalChunks == 0 {
		t.Error("no chunks counted")
	}
	if len(summary.Errors) != 0 {
		t.Errorf("errors = %v", summary.Errors)
	}

	backends.mu.Lock()
	upserted := backends.upserted
	backends.mu.Unlock()
	if upserted == 0 {
		t.Error("no chunks reached the index")
	}
}

func TestIndexRun_EmptyStore(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, authed(httptest.NewRequest(http.MethodPost, "/api/index/run", nil)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var summary pipeline.Summary
	json.Unmarshal(rec.Body.Bytes(), &summary)
	if summary.Indexed != 0 || summary.Skipped != 0 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestListDocuments(t *testing.T) {
	srv, backends := newTestServer(t)
	backends.objects["sop/a.txt"] = []byte("x")

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, authed(httptest.NewRequest(http.MethodGet, "/api/documents", nil)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp struct {
		Documents []map[string]any `json:"documents"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if len(resp.Documents) != 1 {
		t.Errorf("documents = %v", resp.Documents)
	}
}

func TestDeleteDocument(t *testing.T) {
	srv, backends := newTestServer(t)
	backends.objects["sop/a.txt"] = []byte("x")

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, authed(httptest.NewRequest(http.MethodDelete, "/api/documents/sop/a.txt", nil)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	backends.mu.Lock()
	_, still := backends.objects["sop/a.txt"]
	backends.mu.Unlock()
	if still {
		t.Error("object not deleted from store")
	}
}

func TestBatchDelete(t *testing.T) {
	srv, backends := newTestServer(t)
	backends.objects["sop/a.txt"] = []byte("x")
	backends.objects["sop/b.txt"] = []byte("y")

	rec := httptest.NewRecorder()
	body := strings.NewReader(`{"sources":["sop/a.txt","sop/b.txt"]}`)
	req := authed(httptest.NewRequest(http.MethodPost, "/api/documents/delete", body))
	req.Header.Set("Content-Type", "application/json")
	srv.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Results []map[string]any `json:"results"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if len(resp.Results) != 2 {
		t.Fatalf("results = %v", resp.Results)
	}

	backends.mu.Lock()
	remaining := len(backends.objects)
	backends.mu.Unlock()
	if remaining != 0 {
		t.Errorf("%d objects still in store", remaining)
	}
}

func TestIndexInfo(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, authed(httptest.NewRequest(http.MethodGet, "/api/index/info", nil)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp map[string]any
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if _, ok := resp["collection"]; !ok {
		t.Error("collection info missing")
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := map[string]string{
		"plain.txt":        "plain.txt",
		"../../etc/passwd": "passwd",
		"":                 "unnamed",
	}
	for in, want := range cases {
		if got := sanitizeFilename(in); got != want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", in, got, want)
		}
	}
}
