// Package tried implements a fast, compact double-array trie.
//
// A trie is built once from a sorted keyset and serialised into a flat,
// cache-friendly byte buffer. Lookups are O(key length) exact-match and
// common-prefix searches with no per-query allocation.
package tried

// UnitSize is the size of a single Unit in bytes.
const UnitSize = 4

// Unit is a 32-bit node in the double-array trie.
//
// Non-leaf layout:
//
//	 0                   1                   2                   3
//	 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
//	+---------------+-+-+-----------------------------------------+-+
//	|     LABEL     |H|E|                 OFFSET                  |I|
//	+---------------+-+-+-----------------------------------------+-+
//
// Leaf layout:
//
//	 0                   1                   2                   3
//	 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1 2 3 4 5 6 7 8 9 0 1
//	+-------------------------------------------------------------+-+
//	|                            VALUE                            |I|
//	+-------------------------------------------------------------+-+
type Unit uint32

// HasLeaf reports whether this unit has a leaf child.
func (u Unit) HasLeaf() bool {
	return u>>8&1 == 1
}

// IsLeaf reports whether this unit is a leaf (stores a value).
func (u Unit) IsLeaf() bool {
	return u>>31 == 1
}

// Value returns the 31-bit value stored in a leaf unit.
func (u Unit) Value() uint32 {
	return uint32(u) & 0x7FFF_FFFF
}

// Label returns the label byte (valid only for non-leaf units).
func (u Unit) Label() uint32 {
	return uint32(u) & ((1 << 31) | 0xFF)
}

// Offset returns the offset, accounting for the extension flag.
func (u Unit) Offset() uint32 {
	return (uint32(u) >> 10) << ((uint32(u) & (1 << 9)) >> 6)
}

// SetOffset sets the offset.
//
// Panics if offset >= 2^29, or if an extended offset has non-zero lower
// 8 bits.
func (u *Unit) SetOffset(offset uint32) {
	if offset >= 1<<29 {
		panic("tried: offset must be represented as 29 bits integer")
	}
	if offset < 1<<21 {
		*u = Unit(offset<<10 | (uint32(*u)<<23)>>23)
	} else {
		// Extended offset: lower 8 bits must be zero.
		if offset&0xFF != 0 {
			panic("tried: lower 8 bits of offset should be 0")
		}
		*u = Unit(offset<<2 | 1<<9 | (uint32(*u)<<23)>>23)
	}
}

// SetHasLeaf sets the has-leaf flag.
func (u *Unit) SetHasLeaf(hasLeaf bool) {
	if hasLeaf {
		*u |= 1 << 8
	} else {
		*u &^= 1 << 8
	}
}

// SetLabel sets the label byte.
func (u *Unit) SetLabel(label byte) {
	*u = (*u>>8)<<8 | Unit(label)
}

// SetValue sets the leaf value (and the leaf flag).
func (u *Unit) SetValue(value uint32) {
	*u = Unit(value) | 1<<31
}
