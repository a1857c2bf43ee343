package jsonstore

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/idilsaglam/tasklist/internal/model"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	s := New(t.TempDir())
	st, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(st.Tasks) != 0 || len(st.Categories) != 4 {
		t.Errorf("got %d tasks, %d categories", len(st.Tasks), len(st.Categories))
	}
	if !st.Settings.ShowCompleted {
		t.Error("ShowCompleted default: got false, want true")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := New(t.TempDir())
	st := model.Default()
	st.AddTask("Buy milk", "shopping", "", "")
	st.AddCategory("Garden", "#336633")
	st.Token = "tok"
	st.GistID = "g1"

	if err := s.Save(st); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, st) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, st)
	}
}

// Every mutation is followed by a full save; the persisted document must
// equal the in-memory tree at each step.
func TestRoundTripAfterEachMutation(t *testing.T) {
	s := New(t.TempDir())
	st := model.Default()

	step := func(name string) {
		t.Helper()
		if err := s.Save(st); err != nil {
			t.Fatalf("%s: save: %v", name, err)
		}
		got, err := s.Load()
		if err != nil {
			t.Fatalf("%s: load: %v", name, err)
		}
		if !reflect.DeepEqual(got, st) {
			t.Fatalf("%s: persisted tree diverged", name)
		}
	}

	task := st.AddTask("Buy milk", "shopping", "", "")
	step("add")
	st.ToggleTask(task.ID)
	step("toggle")
	st.RemoveTask(task.ID)
	step("remove")
}

func TestLoadMalformedFileFails(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "state.json"), []byte("{broken"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := New(dir).Load(); err == nil {
		t.Fatal("expected error for malformed state file")
	}
}

func TestLoadBackfillsLegacyDocument(t *testing.T) {
	dir := t.TempDir()
	legacy := `{"tasks":[{"id":"a","title":"old","category":"work"}],"statuses":[],"stages":[]}`
	if err := os.WriteFile(filepath.Join(dir, "state.json"), []byte(legacy), 0o600); err != nil {
		t.Fatal(err)
	}
	st, err := New(dir).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(st.Statuses) == 0 || len(st.Stages) == 0 {
		t.Fatal("empty taxonomy was not reset to defaults")
	}
	if got := st.Tasks[0].Status; got != "in-progress" {
		t.Errorf("Status back-fill: got %q, want in-progress", got)
	}
	if got := st.Tasks[0].Stage; got != st.Stages[0] {
		t.Errorf("Stage back-fill: got %q, want %q", got, st.Stages[0])
	}
}

func TestSaveCreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s := New(dir)
	if err := s.Save(model.Default()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(s.Path()); err != nil {
		t.Fatalf("state file missing: %v", err)
	}
}
