package assets

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
}

func TestLoadSortedAndSized(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "b_tall.png"), 30, 64)
	writePNG(t, filepath.Join(dir, "a_wide.png"), 48, 36)
	if err := os.WriteFile(filepath.Join(dir, "c_broken.png"), []byte("not a png"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "d_dir.png"), 0o755); err != nil {
		t.Fatal(err)
	}

	variants, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(variants) != 2 {
		t.Fatalf("expected 2 variants, got %d: %+v", len(variants), variants)
	}

	tests := []struct {
		w, h int
		file string
	}{
		{48, 36, "a_wide.png"},
		{30, 64, "b_tall.png"},
	}
	for i, tt := range tests {
		v := variants[i]
		if v.Width != tt.w || v.Height != tt.h {
			t.Errorf("variant %d size = %dx%d, expected %dx%d", i, v.Width, v.Height, tt.w, tt.h)
		}
		if filepath.Base(v.Handle) != tt.file {
			t.Errorf("variant %d handle = %q, expected %s", i, v.Handle, tt.file)
		}
	}
}

func TestLoadMissingDir(t *testing.T) {
	variants, err := Load(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Errorf("missing dir should not be an error, got %v", err)
	}
	if len(variants) != 0 {
		t.Errorf("expected no variants, got %d", len(variants))
	}

	variants, err = Load("")
	if err != nil || len(variants) != 0 {
		t.Errorf("empty dir path should yield nothing, got %v, %v", variants, err)
	}
}
