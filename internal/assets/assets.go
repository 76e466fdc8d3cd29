// Package assets discovers obstacle sprite variants on disk.
// Only sprite dimensions matter to the simulation; the terminal renderer
// draws every variant with the same glyphs.
package assets

import (
	"errors"
	"fmt"
	"image"
	_ "image/png" // register PNG decoder
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Variant is one obstacle sprite with its native size.
type Variant struct {
	Width  int
	Height int
	Handle string // file the sprite was read from
}

// Load returns the PNG variants in dir sorted by file name.
// A missing directory yields no variants; unreadable or undecodable files are skipped.
func Load(dir string) ([]Variant, error) {
	if dir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("assets: cannot read %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".png") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var variants []Variant
	for _, name := range names {
		path := filepath.Join(dir, name)
		w, h, err := decodeSize(path)
		if err != nil || w <= 0 || h <= 0 {
			continue
		}
		variants = append(variants, Variant{Width: w, Height: h, Handle: path})
	}
	return variants, nil
}

func decodeSize(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}
