package storage

import (
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	store, err := OpenPath(path)
	if err != nil {
		t.Fatalf("OpenPath(%q): %v", path, err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStringRoundTrip(t *testing.T) {
	store := newTestStore(t)

	if _, ok, err := store.GetString("missing"); err != nil || ok {
		t.Fatalf("missing key: got ok=%v err=%v, want absent", ok, err)
	}

	if err := store.SetString("greeting", "hello"); err != nil {
		t.Fatalf("SetString: %v", err)
	}
	value, ok, err := store.GetString("greeting")
	if err != nil || !ok || value != "hello" {
		t.Fatalf("GetString: got %q ok=%v err=%v", value, ok, err)
	}

	if err := store.SetString("greeting", "replaced"); err != nil {
		t.Fatalf("SetString overwrite: %v", err)
	}
	value, _, _ = store.GetString("greeting")
	if value != "replaced" {
		t.Fatalf("overwrite: got %q, want replaced", value)
	}
}

func TestIntAndBoolRoundTrip(t *testing.T) {
	store := newTestStore(t)

	if err := store.SetInt("count", 42); err != nil {
		t.Fatalf("SetInt: %v", err)
	}
	count, ok, err := store.GetInt("count")
	if err != nil || !ok || count != 42 {
		t.Fatalf("GetInt: got %d ok=%v err=%v", count, ok, err)
	}

	if err := store.SetBool("flag", true); err != nil {
		t.Fatalf("SetBool: %v", err)
	}
	flag, ok, err := store.GetBool("flag")
	if err != nil || !ok || !flag {
		t.Fatalf("GetBool: got %v ok=%v err=%v", flag, ok, err)
	}
}

func TestGetIntRejectsGarbage(t *testing.T) {
	store := newTestStore(t)
	if err := store.SetString("count", "not a number"); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := store.GetInt("count"); err == nil || ok {
		t.Fatalf("expected parse error, got ok=%v err=%v", ok, err)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	store := newTestStore(t)

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	in := payload{Name: "focus", Count: 3}
	if err := store.SetJSON("payload", in); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}

	var out payload
	ok, err := store.GetJSON("payload", &out)
	if err != nil || !ok {
		t.Fatalf("GetJSON: ok=%v err=%v", ok, err)
	}
	if out != in {
		t.Fatalf("round trip: got %+v, want %+v", out, in)
	}

	var absent payload
	ok, err = store.GetJSON("nope", &absent)
	if err != nil || ok {
		t.Fatalf("missing key: ok=%v err=%v", ok, err)
	}
}

func TestDelete(t *testing.T) {
	store := newTestStore(t)

	if err := store.SetString("gone", "soon"); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete("gone"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := store.GetString("gone"); ok {
		t.Fatal("key survived delete")
	}
	if err := store.Delete("never existed"); err != nil {
		t.Fatalf("deleting a missing key: %v", err)
	}
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")

	store, err := OpenPath(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.SetString("sticky", "value"); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := OpenPath(path)
	if err != nil {
		t.Fatal(err)
	}
	defer reopened.Close()
	value, ok, err := reopened.GetString("sticky")
	if err != nil || !ok || value != "value" {
		t.Fatalf("after reopen: got %q ok=%v err=%v", value, ok, err)
	}
}
