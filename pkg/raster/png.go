package raster

import (
	"bufio"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/klauspost/compress/zlib"

	"github.com/matzehuels/spritepack/pkg/errors"
)

// Compression is the PNG compression tier.
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionFast Compression = "fast"
	CompressionHigh Compression = "high"
)

// DefaultCompression is used when none is configured.
const DefaultCompression = CompressionHigh

// ParseCompression converts a user-supplied tier, ignoring case.
// The empty string maps to DefaultCompression.
func ParseCompression(s string) (Compression, error) {
	switch c := Compression(strings.ToLower(s)); c {
	case "":
		return DefaultCompression, nil
	case CompressionNone, CompressionFast, CompressionHigh:
		return c, nil
	}
	return "", errors.New(errors.ErrCodeInvalidCompression,
		"invalid compression: %q (must be one of: none, fast, high)", s)
}

// String implements fmt.Stringer.
func (c Compression) String() string { return string(c) }

func (c Compression) pngLevel() png.CompressionLevel {
	switch c {
	case CompressionNone:
		return png.NoCompression
	case CompressionFast:
		return png.BestSpeed
	default:
		return png.BestCompression
	}
}

func (c Compression) zlibLevel() int {
	switch c {
	case CompressionNone:
		return zlib.NoCompression
	case CompressionFast:
		return zlib.BestSpeed
	default:
		return zlib.BestCompression
	}
}

// EncodeOptions controls PNG output.
type EncodeOptions struct {
	Compression Compression
	Interlace   bool
}

// EncodePNG writes img to w as PNG.
// Non-interlaced output uses the standard library encoder; interlaced output
// is written as 8-bit RGBA with Adam7 passes.
func EncodePNG(w io.Writer, img image.Image, opts EncodeOptions) error {
	if opts.Compression == "" {
		opts.Compression = DefaultCompression
	}
	if !opts.Interlace {
		enc := png.Encoder{CompressionLevel: opts.Compression.pngLevel()}
		return enc.Encode(w, img)
	}
	return encodeInterlaced(w, toNRGBA(img), opts.Compression.zlibLevel())
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n")

// adam7 lists the pass origin and step of each interlace pass.
var adam7 = [7]struct{ x0, y0, dx, dy int }{
	{0, 0, 8, 8},
	{4, 0, 8, 8},
	{0, 4, 4, 8},
	{2, 0, 4, 4},
	{0, 2, 2, 4},
	{1, 0, 2, 2},
	{0, 1, 1, 2},
}

const (
	bytesPerPixel = 4
	filterSub     = 1
)

func encodeInterlaced(w io.Writer, img *image.NRGBA, level int) error {
	width, height := img.Rect.Dx(), img.Rect.Dy()
	bw := bufio.NewWriter(w)

	if _, err := bw.Write(pngHeader); err != nil {
		return err
	}

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], uint32(width))
	binary.BigEndian.PutUint32(ihdr[4:], uint32(height))
	ihdr[8] = 8  // bit depth
	ihdr[9] = 6  // color type: RGBA
	ihdr[12] = 1 // interlace: Adam7
	if err := writeChunk(bw, "IHDR", ihdr); err != nil {
		return err
	}

	idat := &chunkWriter{w: bw, name: "IDAT"}
	zw, err := zlib.NewWriterLevel(idat, level)
	if err != nil {
		return err
	}
	if err := writePasses(zw, img); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}
	if err := idat.flush(); err != nil {
		return err
	}

	if err := writeChunk(bw, "IEND", nil); err != nil {
		return err
	}
	return bw.Flush()
}

// writePasses emits the filtered scanlines of all seven passes.
// Every scanline uses the Sub filter.
func writePasses(w io.Writer, img *image.NRGBA) error {
	width, height := img.Rect.Dx(), img.Rect.Dy()
	for _, p := range adam7 {
		if p.x0 >= width || p.y0 >= height {
			continue
		}
		cols := (width - p.x0 + p.dx - 1) / p.dx
		raw := make([]byte, cols*bytesPerPixel)
		line := make([]byte, 1+len(raw))
		line[0] = filterSub

		for y := p.y0; y < height; y += p.dy {
			row := img.Pix[y*img.Stride:]
			for c := 0; c < cols; c++ {
				x := p.x0 + c*p.dx
				copy(raw[c*bytesPerPixel:], row[x*bytesPerPixel:x*bytesPerPixel+bytesPerPixel])
			}
			for i := range raw {
				if i < bytesPerPixel {
					line[1+i] = raw[i]
				} else {
					line[1+i] = raw[i] - raw[i-bytesPerPixel]
				}
			}
			if _, err := w.Write(line); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeChunk(w io.Writer, name string, data []byte) error {
	var header [8]byte
	binary.BigEndian.PutUint32(header[:4], uint32(len(data)))
	copy(header[4:], name)

	crc := crc32.NewIEEE()
	crc.Write(header[4:])
	crc.Write(data)

	var footer [4]byte
	binary.BigEndian.PutUint32(footer[:], crc.Sum32())

	for _, b := range [][]byte{header[:], data, footer[:]} {
		if _, err := w.Write(b); err != nil {
			return err
		}
	}
	return nil
}

// maxChunk bounds the size of a single IDAT chunk.
const maxChunk = 1 << 16

// chunkWriter buffers compressed data and emits it as chunks of at most
// maxChunk bytes.
type chunkWriter struct {
	w    io.Writer
	name string
	buf  []byte
}

func (c *chunkWriter) Write(p []byte) (int, error) {
	c.buf = append(c.buf, p...)
	for len(c.buf) >= maxChunk {
		if err := writeChunk(c.w, c.name, c.buf[:maxChunk]); err != nil {
			return 0, err
		}
		c.buf = c.buf[maxChunk:]
	}
	return len(p), nil
}

func (c *chunkWriter) flush() error {
	if len(c.buf) == 0 {
		return nil
	}
	err := writeChunk(c.w, c.name, c.buf)
	c.buf = nil
	return err
}
