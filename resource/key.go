package resource

import (
	"cmp"
	"fmt"
)

type keyKind uint8

const (
	keyIndex keyKind = iota
	keyColor
)

// MaterialKey identifies a cached material.
//
// A key is either an integer index (a stable per-entity identity: the same
// index always maps to the same random color) or an explicit linear RGBA
// value used verbatim. MaterialKey is comparable and may be used as a map key.
// The zero value is IndexKey(0).
type MaterialKey struct {
	kind  keyKind
	index int
	rgba  [4]uint8
}

// IndexKey returns the key for identity index i.
func IndexKey(i int) MaterialKey {
	return MaterialKey{kind: keyIndex, index: i}
}

// ColorKey returns the key for an explicit linear RGBA color.
func ColorKey(rgba [4]uint8) MaterialKey {
	return MaterialKey{kind: keyColor, rgba: rgba}
}

// Index returns the identity index if this is an index key.
func (k MaterialKey) Index() (int, bool) {
	return k.index, k.kind == keyIndex
}

// RGBA returns the explicit color if this is a color key.
func (k MaterialKey) RGBA() ([4]uint8, bool) {
	return k.rgba, k.kind == keyColor
}

// Compare orders keys: index keys before color keys, index keys by index,
// color keys lexicographically by channel.
func (k MaterialKey) Compare(o MaterialKey) int {
	if c := cmp.Compare(k.kind, o.kind); c != 0 {
		return c
	}
	if k.kind == keyIndex {
		return cmp.Compare(k.index, o.index)
	}
	for i := range k.rgba {
		if c := cmp.Compare(k.rgba[i], o.rgba[i]); c != 0 {
			return c
		}
	}
	return 0
}

// String implements fmt.Stringer.
func (k MaterialKey) String() string {
	if k.kind == keyColor {
		return fmt.Sprintf("rgba(%d,%d,%d,%d)", k.rgba[0], k.rgba[1], k.rgba[2], k.rgba[3])
	}
	return fmt.Sprintf("index(%d)", k.index)
}
