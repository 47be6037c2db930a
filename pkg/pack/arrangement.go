package pack

import (
	"strings"

	"github.com/matzehuels/spritepack/pkg/errors"
)

// Arrangement selects the packing strategy for an atlas.
type Arrangement string

const (
	ArrangementCompact    Arrangement = "compact"
	ArrangementVertical   Arrangement = "vertical"
	ArrangementHorizontal Arrangement = "horizontal"
)

// DefaultArrangement is used when none is configured.
const DefaultArrangement = ArrangementCompact

// ParseArrangement converts a user-supplied arrangement name, ignoring case.
// The empty string maps to DefaultArrangement.
func ParseArrangement(s string) (Arrangement, error) {
	switch a := Arrangement(strings.ToLower(s)); a {
	case "":
		return DefaultArrangement, nil
	case ArrangementCompact, ArrangementVertical, ArrangementHorizontal:
		return a, nil
	}
	return "", errors.New(errors.ErrCodeInvalidArrangement,
		"invalid arrangement: %q (must be one of: compact, vertical, horizontal)", s)
}

// Pack lays out rects with the strategy a names. Each strategy applies its
// own presort. An unknown arrangement packs compactly.
func (a Arrangement) Pack(rects []Rect) Layout {
	switch a {
	case ArrangementVertical:
		return Vertical(rects, false)
	case ArrangementHorizontal:
		return Horizontal(rects, false)
	default:
		return Compact(rects, false)
	}
}

// String implements fmt.Stringer.
func (a Arrangement) String() string { return string(a) }
