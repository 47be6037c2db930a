package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/spritepack/pkg/atlas"
	"github.com/matzehuels/spritepack/pkg/errors"
	"github.com/matzehuels/spritepack/pkg/sprite"
)

// ReadJSON decodes a layout manifest from r.
//
// ReadJSON returns an error if:
//   - The JSON is malformed
//   - An atlas has no image path or no sprites
//   - A sprite has no path or lies outside its atlas
//
// Validation failures carry errors.ErrCodeInvalidInput. ReadJSON does not
// close r.
func ReadJSON(r io.Reader) (*sprite.Result, error) {
	var data manifest
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode manifest")
	}

	normal, err := data.tier.atlas("atlas")
	if err != nil {
		return nil, err
	}
	res := &sprite.Result{Normal: normal}
	if data.Retina != nil {
		if res.Retina, err = data.Retina.atlas("retina atlas"); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (t tier) atlas(what string) (*atlas.Atlas, error) {
	if t.Image == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s: image is required", what)
	}
	if len(t.Sprites) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "%s: no sprites", what)
	}
	for i, s := range t.Sprites {
		if s.Path == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "%s: sprite %d: path is required", what, i)
		}
		if s.X < 0 || s.Y < 0 || s.Width < 0 || s.Height < 0 ||
			s.X+s.Width > t.Width || s.Y+s.Height > t.Height {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"%s: sprite %s lies outside the %dx%d atlas", what, s.Path, t.Width, t.Height)
		}
	}
	return &atlas.Atlas{Path: t.Image, Width: t.Width, Height: t.Height, Sprites: t.Sprites}, nil
}

// ImportJSON reads a JSON manifest at path.
//
// ImportJSON returns the same validation errors as [ReadJSON]; a missing
// file carries errors.ErrCodeNotFound.
func ImportJSON(path string) (*sprite.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
