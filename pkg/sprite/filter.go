package sprite

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/matzehuels/spritepack/pkg/errors"
)

// Filter selects source paths.
type Filter func(path string) bool

// RetinaMarker is the filename convention for double-resolution sources.
const RetinaMarker = "@2x"

// DefaultRetinaFilter matches paths carrying RetinaMarker.
func DefaultRetinaFilter(path string) bool {
	return strings.Contains(path, RetinaMarker)
}

// Not returns the complement of f.
func Not(f Filter) Filter {
	return func(path string) bool { return !f(path) }
}

// GlobFilter builds a Filter from a doublestar pattern. A leading "!"
// negates it. Patterns are matched against slash-separated paths.
func GlobFilter(pattern string) (Filter, error) {
	negate := strings.HasPrefix(pattern, "!")
	pattern = strings.TrimPrefix(pattern, "!")
	if pattern == "" || !doublestar.ValidatePattern(pattern) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid filter pattern: %q", pattern)
	}
	return func(path string) bool {
		ok, _ := doublestar.Match(pattern, filepath.ToSlash(path))
		return ok != negate
	}, nil
}

// RegexpFilter builds a Filter matching paths against a regular expression.
func RegexpFilter(expr string) (Filter, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid filter expression: %q", expr)
	}
	return re.MatchString, nil
}

// RetinaPath inserts RetinaMarker before the extension of path:
// "out/sprite.png" becomes "out/sprite@2x.png".
func RetinaPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + RetinaMarker + ext
}

func partition(sources []string, keep Filter) []string {
	var out []string
	for _, s := range sources {
		if keep(s) {
			out = append(out, s)
		}
	}
	return out
}
