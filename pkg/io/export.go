package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/matzehuels/spritepack/pkg/atlas"
	"github.com/matzehuels/spritepack/pkg/errors"
	"github.com/matzehuels/spritepack/pkg/sprite"
)

type manifest struct {
	tier
	Retina *tier `json:"retina,omitempty"`
}

type tier struct {
	Image   string         `json:"image"`
	Width   int            `json:"width"`
	Height  int            `json:"height"`
	Sprites []atlas.Sprite `json:"sprites"`
}

func tierOf(a *atlas.Atlas) tier {
	return tier{Image: a.Path, Width: a.Width, Height: a.Height, Sprites: a.Sprites}
}

// WriteJSON encodes the layout of res as JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(res *sprite.Result, w io.Writer) error {
	if res == nil || res.Normal == nil {
		return errors.New(errors.ErrCodeInvalidInput, "no atlas to export")
	}
	out := manifest{tier: tierOf(res.Normal)}
	if res.Retina != nil {
		r := tierOf(res.Retina)
		out.Retina = &r
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes the layout of res to a JSON file at path, creating the
// directory if needed.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(res *sprite.Result, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeMkdirFailed, err, "create directory for %s", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := writeAndClose(res, f); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// writeAndClose writes res to wc and always closes it. A close failure is
// reported when the write itself succeeded.
func writeAndClose(res *sprite.Result, wc io.WriteCloser) error {
	err := WriteJSON(res, wc)
	if cerr := wc.Close(); err == nil {
		err = cerr
	}
	return err
}
