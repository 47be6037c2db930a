// Package source resolves command-line source arguments to image paths.
//
// An argument naming a directory expands to every PNG beneath it; any other
// argument is a doublestar glob relative to the working directory.
package source

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/matzehuels/spritepack/pkg/errors"
)

// DefaultPattern is listed beneath a directory argument.
const DefaultPattern = "**/*.png"

// List returns the files under root matching any of patterns, sorted and
// de-duplicated. Paths are joined to root. Directories never match.
func List(root string, patterns []string) ([]string, error) {
	fsys := os.DirFS(root)
	seen := map[string]bool{}
	var out []string
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "invalid source pattern: %q", pattern)
		}
		err := doublestar.GlobWalk(fsys, pattern, func(path string, d fs.DirEntry) error {
			if d.IsDir() || seen[path] {
				return nil
			}
			seen[path] = true
			out = append(out, filepath.Join(root, filepath.FromSlash(path)))
			return nil
		})
		if stderrors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "list %s in %s", pattern, root)
		}
	}
	slices.Sort(out)
	return out, nil
}

// Resolve expands one source argument.
func Resolve(arg string) ([]string, error) {
	if info, err := os.Stat(arg); err == nil && info.IsDir() {
		return List(arg, []string{DefaultPattern})
	}
	root, pattern := doublestar.SplitPattern(filepath.ToSlash(arg))
	return List(filepath.FromSlash(root), []string{pattern})
}

// ResolveAll expands every argument and merges the results.
// It fails with ErrCodeNotFound when nothing matches.
func ResolveAll(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		paths, err := Resolve(arg)
		if err != nil {
			return nil, err
		}
		out = append(out, paths...)
	}
	slices.Sort(out)
	out = slices.Compact(out)
	if len(out) == 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "no source images match %v", args)
	}
	return out, nil
}
