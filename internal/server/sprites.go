package server

import (
	"encoding/json"
	"net/http"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/matzehuels/spritepack/pkg/atlas"
	"github.com/matzehuels/spritepack/pkg/errors"
	"github.com/matzehuels/spritepack/pkg/pack"
	"github.com/matzehuels/spritepack/pkg/raster"
	"github.com/matzehuels/spritepack/pkg/source"
	"github.com/matzehuels/spritepack/pkg/sprite"
	"github.com/matzehuels/spritepack/pkg/style"
)

// spritesRequest is the body of POST /v1/sprites. Paths are relative to
// the server root; sources are doublestar globs.
type spritesRequest struct {
	Sources      []string       `json:"sources"`
	Out          string         `json:"out"`
	OutRetina    string         `json:"out_retina,omitempty"`
	OutStyle     string         `json:"out_style,omitempty"`
	Retina       *bool          `json:"retina,omitempty"`
	Filter       string         `json:"filter,omitempty"`
	RetinaFilter string         `json:"retina_filter,omitempty"`
	Margin       int            `json:"margin,omitempty"`
	Arrangement  string         `json:"arrangement,omitempty"`
	Compression  string         `json:"compression,omitempty"`
	Interlace    bool           `json:"interlace,omitempty"`
	Style        *style.Options `json:"style,omitempty"`
}

type atlasResponse struct {
	Image   string         `json:"image"`
	Width   int            `json:"width"`
	Height  int            `json:"height"`
	Sprites []atlas.Sprite `json:"sprites"`
}

type spritesResponse struct {
	ID     string         `json:"id"`
	Normal atlasResponse  `json:"normal"`
	Retina *atlasResponse `json:"retina,omitempty"`
	Style  string         `json:"style,omitempty"`
}

func (s *Server) handleSprites(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	logger := s.logger.With("id", id)

	var req spritesRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, id, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, id, err)
		return
	}

	opts, err := s.spriteOptions(req)
	if err != nil {
		writeError(w, id, err)
		return
	}
	opts.Logger = logger

	sources, err := source.List(s.root, req.Sources)
	if err != nil {
		writeError(w, id, err)
		return
	}
	if len(sources) == 0 {
		writeError(w, id, errors.New(errors.ErrCodeNotFound, "no source images match %v", req.Sources))
		return
	}

	logger.Info("generating", "sources", len(sources), "out", req.Out)
	res, err := sprite.Generate(r.Context(), sources, opts)
	if err != nil {
		logger.Error("generation failed", "err", err)
		writeError(w, id, err)
		return
	}

	resp := spritesResponse{ID: id, Normal: s.atlasResponse(res.Normal)}
	if res.Retina != nil {
		retina := s.atlasResponse(res.Retina)
		resp.Retina = &retina
	}
	if req.OutStyle != "" {
		if err := s.writeStyle(res, req); err != nil {
			writeError(w, id, err)
			return
		}
		resp.Style = req.OutStyle
	}
	writeJSON(w, http.StatusOK, resp)
}

// validate checks every path before any I/O.
func (req *spritesRequest) validate() error {
	if len(req.Sources) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "sources is required")
	}
	for _, p := range req.Sources {
		if err := errors.ValidatePath(p); err != nil {
			return err
		}
	}
	if req.Out == "" {
		return errors.New(errors.ErrCodeInvalidInput, "out is required")
	}
	if err := errors.ValidateImagePath(req.Out); err != nil {
		return err
	}
	if req.OutRetina != "" {
		if err := errors.ValidateImagePath(req.OutRetina); err != nil {
			return err
		}
	}
	if req.OutStyle != "" {
		if err := errors.ValidatePath(req.OutStyle); err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) spriteOptions(req spritesRequest) (sprite.Options, error) {
	arrangement, err := pack.ParseArrangement(req.Arrangement)
	if err != nil {
		return sprite.Options{}, err
	}
	compression, err := raster.ParseCompression(req.Compression)
	if err != nil {
		return sprite.Options{}, err
	}
	opts := sprite.Options{
		Dest:        s.abs(req.Out),
		Retina:      req.Retina,
		Margin:      req.Margin,
		Compression: compression,
		Interlace:   req.Interlace,
		Arrangement: arrangement,
		Concurrency: s.concurrency,
	}
	if req.OutRetina != "" {
		opts.RetinaDest = s.abs(req.OutRetina)
	}
	// Filters see paths relative to the root, like the request does.
	if req.Filter != "" {
		f, err := sprite.GlobFilter(req.Filter)
		if err != nil {
			return sprite.Options{}, err
		}
		opts.Filter = s.relFilter(f)
	}
	if req.RetinaFilter != "" {
		f, err := sprite.GlobFilter(req.RetinaFilter)
		if err != nil {
			return sprite.Options{}, err
		}
		opts.RetinaFilter = s.relFilter(f)
	}
	return opts, nil
}

func (s *Server) writeStyle(res *sprite.Result, req spritesRequest) error {
	var opts style.Options
	if req.Style != nil {
		opts = *req.Style
	}
	opts.StylePath = s.abs(req.OutStyle)
	opts.ImagePath = res.Normal.Path
	opts.Retina = res.Retina != nil
	if opts.Retina {
		opts.RetinaImagePath = res.Retina.Path
	}
	css, err := style.Generate(res.Normal.Sprites, opts)
	if err != nil {
		return err
	}
	return style.Write(opts.StylePath, css)
}

// abs resolves a validated request path under the root.
func (s *Server) abs(path string) string {
	return filepath.Join(s.root, filepath.FromSlash(path))
}

// rel is the inverse of abs for reporting.
func (s *Server) rel(path string) string {
	r, err := filepath.Rel(s.root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(r)
}

func (s *Server) relFilter(f sprite.Filter) sprite.Filter {
	return func(path string) bool { return f(s.rel(path)) }
}

func (s *Server) atlasResponse(a *atlas.Atlas) atlasResponse {
	sprites := make([]atlas.Sprite, len(a.Sprites))
	for i, sp := range a.Sprites {
		sp.Path = s.rel(sp.Path)
		sprites[i] = sp
	}
	return atlasResponse{Image: s.rel(a.Path), Width: a.Width, Height: a.Height, Sprites: sprites}
}
