package minefield

// MaxDepth is the deepest relative depth the text format can represent.
const MaxDepth = 52

// Cell markers used in rendered rows.
const (
	EmptyCell   = '.'
	ReachedMine = '*' // A mine at exactly the observer's depth
)

// EncodeDepth returns the cell character for a mine depth relative to the
// observer: 0 is '*', 1-26 map to 'a'-'z' and 27-52 map to 'A'-'Z'.
func EncodeDepth(depth int) (byte, error) {
	switch {
	case depth < 0:
		return 0, NewModelError("mine at depth %d is above the observer", depth)
	case depth == 0:
		return ReachedMine, nil
	case depth <= 26:
		return byte('a' + depth - 1), nil
	case depth <= MaxDepth:
		return byte('A' + depth - 27), nil
	default:
		return 0, NewModelError("mine at depth %d is deeper than the maximum representable depth %d", depth, MaxDepth)
	}
}

// DecodeDepth is the inverse of EncodeDepth.
func DecodeDepth(c byte) (int, error) {
	switch {
	case c == ReachedMine:
		return 0, nil
	case c >= 'a' && c <= 'z':
		return int(c-'a') + 1, nil
	case c >= 'A' && c <= 'Z':
		return int(c-'A') + 27, nil
	default:
		return 0, NewModelError("badly formatted mine character %q", c)
	}
}
