package sprite

import (
	"testing"

	"github.com/matzehuels/spritepack/pkg/errors"
)

func TestRetinaPath(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"sprite.png", "sprite@2x.png"},
		{"out/dir/icons.png", "out/dir/icons@2x.png"},
		{"noext", "noext@2x"},
		{"a.b/c.png", "a.b/c@2x.png"},
	}
	for _, tt := range tests {
		if got := RetinaPath(tt.in); got != tt.want {
			t.Errorf("RetinaPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDefaultRetinaFilter(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"icons/home@2x.png", true},
		{"icons@2x/home.png", true},
		{"icons/home.png", false},
		{"icons/home@3x.png", false},
	}
	for _, tt := range tests {
		if got := DefaultRetinaFilter(tt.path); got != tt.want {
			t.Errorf("DefaultRetinaFilter(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestGlobFilter(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"**/*.png", "icons/a.png", true},
		{"**/*.png", "a.png", true},
		{"**/*.png", "icons/a.jpg", false},
		{"icons/*.png", "icons/sub/a.png", false},
		{"!**/*@2x.png", "icons/a@2x.png", false},
		{"!**/*@2x.png", "icons/a.png", true},
		{"**/{a,b}.png", "x/b.png", true},
	}
	for _, tt := range tests {
		f, err := GlobFilter(tt.pattern)
		if err != nil {
			t.Fatalf("GlobFilter(%q) error: %v", tt.pattern, err)
		}
		if got := f(tt.path); got != tt.want {
			t.Errorf("GlobFilter(%q)(%q) = %v, want %v", tt.pattern, tt.path, got, tt.want)
		}
	}
}

func TestGlobFilterInvalid(t *testing.T) {
	for _, pattern := range []string{"", "!", "icons/[a"} {
		if _, err := GlobFilter(pattern); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("GlobFilter(%q) error = %v, want %s", pattern, err, errors.ErrCodeInvalidInput)
		}
	}
}

func TestRegexpFilter(t *testing.T) {
	f, err := RegexpFilter(`-(hover|active)\.png$`)
	if err != nil {
		t.Fatal(err)
	}
	if !f("btn-hover.png") || f("btn.png") {
		t.Error("RegexpFilter() matched incorrectly")
	}
	if _, err := RegexpFilter("("); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("RegexpFilter(\"(\") error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}
