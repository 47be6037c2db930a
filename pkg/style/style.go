// Package style emits the stylesheet that positions each sprite inside its
// atlas.
//
// The stylesheet has one base rule, named after the prefix, that sets the
// atlas as background image, and one rule per sprite that sets its
// background-position, width and height:
//
//	.icon {
//	    display: inline-block;
//	    background-repeat: no-repeat;
//	    background-image: url(sprite.png);
//	}
//	.icon-home {
//	    background-position: 0px 0px;
//	    width: 16px;
//	    height: 16px;
//	}
package style

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/matzehuels/spritepack/pkg/atlas"
	"github.com/matzehuels/spritepack/pkg/errors"
)

// Placeholders used when the image paths are not known.
const (
	ImagePlaceholder       = "SPRITE.png"
	RetinaImagePlaceholder = "SPRITE@2x.png"
)

// Defaults for class names.
const (
	DefaultPrefix    = "icon"
	DefaultConnector = "-"
)

// Options configures Generate.
type Options struct {
	Prefix    string `json:"prefix,omitempty"`
	Connector string `json:"connector,omitempty"`
	Suffix    string `json:"suffix,omitempty"`

	// Retina adds a -webkit-image-set declaration for the retina atlas.
	Retina bool `json:"retina,omitempty"`

	// StylePath is where the stylesheet will be written. When set, image
	// paths are made relative to its directory.
	StylePath       string `json:"style_path,omitempty"`
	ImagePath       string `json:"image_path,omitempty"`
	RetinaImagePath string `json:"retina_image_path,omitempty"`

	// Banner prepends a comment. BannerText replaces the default
	// "Created at <time>." line.
	Banner     bool   `json:"banner,omitempty"`
	BannerText string `json:"banner_text,omitempty"`

	// Now stamps the default banner. Defaults to time.Now.
	Now func() time.Time `json:"-"`
}

func (o *Options) setDefaults() {
	if o.Prefix == "" {
		o.Prefix = DefaultPrefix
	}
	if o.Connector == "" {
		o.Connector = DefaultConnector
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

// Generate returns the stylesheet for sprites.
// An empty sprite list is rejected with ErrCodeInvalidInput.
func Generate(sprites []atlas.Sprite, opts Options) (string, error) {
	if len(sprites) == 0 {
		return "", errors.New(errors.ErrCodeInvalidInput, "no sprites to style")
	}
	opts.setDefaults()

	image := imageURL(opts.ImagePath, ImagePlaceholder, opts.StylePath)
	retina := imageURL(opts.RetinaImagePath, RetinaImagePlaceholder, opts.StylePath)

	var b strings.Builder
	if opts.Banner {
		text := opts.BannerText
		if text == "" {
			text = fmt.Sprintf("Created at %s.", opts.Now().Format(time.DateTime))
		}
		fmt.Fprintf(&b, "/**\n* %s\n**/\n", text)
	}

	fmt.Fprintf(&b, ".%s {\n", opts.Prefix)
	b.WriteString("    display: inline-block;\n")
	b.WriteString("    background-repeat: no-repeat;\n")
	fmt.Fprintf(&b, "    background-image: url(%s);\n", image)
	if opts.Retina {
		fmt.Fprintf(&b, "    background-image: -webkit-image-set(url(%s) 1x, url(%s) 2x);\n", image, retina)
	}
	b.WriteString("}")

	for _, s := range sprites {
		fmt.Fprintf(&b, "\n.%s {\n", ClassName(s.Path, opts))
		fmt.Fprintf(&b, "    background-position: %dpx %dpx;\n", -s.X, -s.Y)
		fmt.Fprintf(&b, "    width: %dpx;\n", s.Width)
		fmt.Fprintf(&b, "    height: %dpx;\n", s.Height)
		b.WriteString("}")
	}
	return b.String(), nil
}

// ClassName returns the class for the sprite at path: the prefix, the file
// name without extension and the optional suffix, joined by the connector.
func ClassName(path string, opts Options) string {
	opts.setDefaults()
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	parts := []string{opts.Prefix, name}
	if opts.Suffix != "" {
		parts = append(parts, opts.Suffix)
	}
	return strings.Join(parts, opts.Connector)
}

func imageURL(path, placeholder, stylePath string) string {
	if path == "" {
		return placeholder
	}
	if stylePath != "" {
		if rel, err := filepath.Rel(filepath.Dir(stylePath), path); err == nil {
			path = rel
		}
	}
	return filepath.ToSlash(path)
}

// Write stores css at path, creating the directory if needed.
func Write(path, css string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeMkdirFailed, err, "create directory %s", dir)
	}
	if err := os.WriteFile(path, []byte(css), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeEncodeFailed, err, "write %s", path)
	}
	return nil
}
