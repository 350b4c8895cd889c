package upload

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewRequiresRoot(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Fatal("expected error for empty root")
	}
}

func TestSaveAndRemove(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	publicPath, err := store.Save("roses.JPG", strings.NewReader("image-bytes"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !strings.HasPrefix(publicPath, PublicPrefix+"/") {
		t.Fatalf("expected public path under %s, got %q", PublicPrefix, publicPath)
	}
	if !strings.HasSuffix(publicPath, ".jpg") {
		t.Fatalf("expected lowercased extension, got %q", publicPath)
	}

	onDisk := filepath.Join(store.Root(), filepath.Base(publicPath))
	data, err := os.ReadFile(onDisk)
	if err != nil {
		t.Fatalf("read stored file: %v", err)
	}
	if string(data) != "image-bytes" {
		t.Fatalf("unexpected file content %q", data)
	}

	if err := store.Remove(publicPath); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := os.Stat(onDisk); !os.IsNotExist(err) {
		t.Fatalf("expected file to be deleted, stat err: %v", err)
	}

	// Removing twice is fine.
	if err := store.Remove(publicPath); err != nil {
		t.Fatalf("second remove: %v", err)
	}
}

func TestSaveUsesRandomNames(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	first, err := store.Save("a.png", strings.NewReader("x"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	second, err := store.Save("a.png", strings.NewReader("y"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct names for same original, got %q", first)
	}
}

func TestSaveRejectsUnknownExtension(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if _, err := store.Save("payload.exe", strings.NewReader("nope")); err == nil {
		t.Fatal("expected error for disallowed extension")
	}
}

func TestRemoveIgnoresForeignPaths(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := store.Remove("https://cdn.example/flower.png"); err != nil {
		t.Fatalf("expected foreign path to be ignored, got %v", err)
	}
}
