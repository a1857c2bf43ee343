package gist

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/idilsaglam/tasklist/internal/model"
)

// fake gist host recording requests
type fakeGists struct {
	created  int
	patched  []string
	lastAuth string
	content  map[string]string // gist id -> tasklist.json content
}

func (f *fakeGists) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /gists", func(w http.ResponseWriter, r *http.Request) {
		f.lastAuth = r.Header.Get("Authorization")
		var p gistPayload
		_ = json.NewDecoder(r.Body).Decode(&p)
		f.created++
		f.content["new-gist-id"] = p.Files[syncFileName].Content
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(gistResponse{ID: "new-gist-id"})
	})
	mux.HandleFunc("PATCH /gists/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.lastAuth = r.Header.Get("Authorization")
		id := r.PathValue("id")
		var p gistPayload
		_ = json.NewDecoder(r.Body).Decode(&p)
		f.patched = append(f.patched, id)
		f.content[id] = p.Files[syncFileName].Content
		_ = json.NewEncoder(w).Encode(gistResponse{ID: id})
	})
	mux.HandleFunc("GET /gists/{id}", func(w http.ResponseWriter, r *http.Request) {
		f.lastAuth = r.Header.Get("Authorization")
		id := r.PathValue("id")
		c, ok := f.content[id]
		if !ok {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(gistResponse{
			ID:    id,
			Files: map[string]gistFile{syncFileName: {Content: c}},
		})
	})
	return mux
}

func newFake(t *testing.T) (*fakeGists, *Client) {
	t.Helper()
	f := &fakeGists{content: map[string]string{}}
	srv := httptest.NewServer(f.handler())
	t.Cleanup(srv.Close)
	return f, NewWithBaseURL("tok", srv.URL)
}

func TestUploadCreatesThenUpdates(t *testing.T) {
	f, c := newFake(t)
	st := model.Default()
	st.AddTask("Buy milk", "shopping", "", "")

	id, err := c.Upload(context.Background(), DocumentFromState(st), "")
	if err != nil {
		t.Fatalf("first upload: %v", err)
	}
	if id != "new-gist-id" {
		t.Fatalf("id: got %q", id)
	}
	if f.created != 1 || len(f.patched) != 0 {
		t.Fatalf("created=%d patched=%v", f.created, f.patched)
	}

	// second upload with the stored id updates, never creates again
	id2, err := c.Upload(context.Background(), DocumentFromState(st), id)
	if err != nil {
		t.Fatalf("second upload: %v", err)
	}
	if id2 != id {
		t.Errorf("id changed: %q -> %q", id, id2)
	}
	if f.created != 1 || len(f.patched) != 1 || f.patched[0] != id {
		t.Fatalf("created=%d patched=%v", f.created, f.patched)
	}
	if f.lastAuth != "token tok" {
		t.Errorf("auth header: got %q", f.lastAuth)
	}
}

func TestDownloadRoundTrip(t *testing.T) {
	_, c := newFake(t)
	st := model.Default()
	st.AddTask("Buy milk", "shopping", "", "")

	id, err := c.Upload(context.Background(), DocumentFromState(st), "")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	doc, err := c.Download(context.Background(), id)
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if len(doc.Tasks) != 1 || doc.Tasks[0].Title != "Buy milk" {
		t.Fatalf("tasks: %+v", doc.Tasks)
	}

	// Applying replaces tasks/taxonomy wholesale.
	local := model.Default()
	local.AddTask("stale local", "work", "", "")
	doc.Apply(local)
	if len(local.Tasks) != 1 || local.Tasks[0].Title != "Buy milk" {
		t.Fatalf("apply: %+v", local.Tasks)
	}
}

func TestDownloadRequiresConfig(t *testing.T) {
	// no token: rejected before any network call
	c := NewWithBaseURL("", "http://127.0.0.1:0")
	if _, err := c.Download(context.Background(), "id"); !errors.Is(err, ErrNoToken) {
		t.Fatalf("got %v, want ErrNoToken", err)
	}
	// no gist id: same
	c = NewWithBaseURL("tok", "http://127.0.0.1:0")
	if _, err := c.Download(context.Background(), ""); !errors.Is(err, ErrNoGistID) {
		t.Fatalf("got %v, want ErrNoGistID", err)
	}
}

func TestUploadRequiresToken(t *testing.T) {
	c := NewWithBaseURL("", "http://127.0.0.1:0")
	if _, err := c.Upload(context.Background(), Document{}, ""); !errors.Is(err, ErrNoToken) {
		t.Fatalf("got %v, want ErrNoToken", err)
	}
}

func TestServerErrorCollapses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()
	c := NewWithBaseURL("bad", srv.URL)
	if _, err := c.Upload(context.Background(), Document{}, ""); err == nil {
		t.Fatal("expected error on 401")
	}
}

func TestApplyBackfillsMissingSections(t *testing.T) {
	doc := Document{Tasks: []model.Task{{ID: "a", Title: "x"}}}
	st := model.Default()
	doc.Apply(st)
	if len(st.Categories) != 4 || len(st.Statuses) != 4 || len(st.Stages) != 5 {
		t.Fatalf("taxonomy not back-filled: %d/%d/%d",
			len(st.Categories), len(st.Statuses), len(st.Stages))
	}
	if st.Tasks[0].Status == "" {
		t.Error("task status not back-filled")
	}
}
