package blobstore

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/objects" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("prefix"); got != "sop/" {
			t.Errorf("prefix = %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("auth header = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"objects": []ObjectInfo{
				{Name: "sop/a.pdf", Size: 100},
				{Name: "sop/b.txt", Size: 20},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret")
	objects, err := c.List(context.Background(), "sop/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(objects) != 2 || objects[0].Name != "sop/a.pdf" {
		t.Errorf("objects = %+v", objects)
	}
}

func TestGetAndPut(t *testing.T) {
	stored := map[string][]byte{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Path[len("/objects/"):]
		switch r.Method {
		case http.MethodPut:
			data, _ := io.ReadAll(r.Body)
			stored[name] = data
			w.WriteHeader(http.StatusCreated)
		case http.MethodGet:
			data, ok := stored[name]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Write(data)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	ctx := context.Background()

	if err := c.Put(ctx, "sop/doc.txt", []byte("hello"), "text/plain"); err != nil {
		t.Fatalf("put: %v", err)
	}
	data, err := c.Get(ctx, "sop/doc.txt")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("data = %q", data)
	}

	if _, err := c.Get(ctx, "sop/missing.txt"); err == nil {
		t.Error("missing object must error")
	}
}

func TestExists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("method = %q", r.Method)
		}
		if r.URL.Path == "/objects/present.txt" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	ctx := context.Background()

	ok, err := c.Exists(ctx, "present.txt")
	if err != nil || !ok {
		t.Errorf("present: ok=%v err=%v", ok, err)
	}
	ok, err = c.Exists(ctx, "absent.txt")
	if err != nil || ok {
		t.Errorf("absent: ok=%v err=%v", ok, err)
	}
}

func TestDelete_MissingObjectIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	if err := c.Delete(context.Background(), "gone.txt"); err != nil {
		t.Errorf("delete of missing object: %v", err)
	}
}

func TestObjectURL_EscapesName(t *testing.T) {
	c := NewClient("http://store", "")
	u := c.objectURL("sop/sub dir/a.pdf")
	if u != "http://store/objects/sop%2Fsub%20dir%2Fa.pdf" {
		t.Errorf("url = %q", u)
	}
}
