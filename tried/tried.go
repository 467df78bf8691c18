package tried

import "encoding/binary"

// DoubleArray is a read-only double-array trie backed by a contiguous byte
// buffer, as produced by Build. It is safe for concurrent use.
type DoubleArray struct {
	bytes []byte
}

// New creates a DoubleArray from a buffer produced by Build. The buffer is
// retained, not copied.
func New(bytes []byte) *DoubleArray {
	return &DoubleArray{bytes: bytes}
}

// ExactMatchSearch finds the value associated with an exact key. Keys must
// not contain NUL bytes.
func (d *DoubleArray) ExactMatchSearch(key []byte) (uint32, bool) {
	nodePos := uint32(0)
	unit, ok := d.getUnit(nodePos)
	if !ok {
		return 0, false
	}

	for _, c := range key {
		nodePos = unit.Offset() ^ nodePos ^ uint32(c)
		unit, ok = d.getUnit(nodePos)
		if !ok {
			return 0, false
		}
		if unit.Label() != uint32(c) {
			return 0, false
		}
	}

	if !unit.HasLeaf() {
		return 0, false
	}

	// Traverse by NUL to reach the leaf.
	leaf, ok := d.getUnit(unit.Offset() ^ nodePos)
	if !ok {
		return 0, false
	}
	return leaf.Value(), true
}

// CommonPrefixSearch returns an iterator over all (value, length) pairs
// whose keys are prefixes of key, in ascending key-length order. The
// iterator performs no heap allocation.
//
// The key is retained by the iterator; do not mutate it until iteration
// is finished.
func (d *DoubleArray) CommonPrefixSearch(key []byte) CommonPrefixSearch {
	return CommonPrefixSearch{key: key, da: d}
}

func (d *DoubleArray) getUnit(index uint32) (Unit, bool) {
	start := int(index) * UnitSize
	if start < 0 || start+UnitSize > len(d.bytes) {
		return 0, false
	}
	return Unit(binary.LittleEndian.Uint32(d.bytes[start:])), true
}

// CommonPrefixSearch is the iterator returned by
// DoubleArray.CommonPrefixSearch.
type CommonPrefixSearch struct {
	key    []byte
	da     *DoubleArray
	unitID uint32
	keyPos int
}

// Next returns the next prefix match. length is the number of key bytes the
// matched prefix covers. ok is false when the search is exhausted; once
// exhausted, all further calls return false.
func (s *CommonPrefixSearch) Next() (value uint32, length int, ok bool) {
	for s.keyPos < len(s.key) {
		unit, ok := s.da.getUnit(s.unitID)
		if !ok {
			return s.stop()
		}

		c := s.key[s.keyPos]
		s.keyPos++

		s.unitID = unit.Offset() ^ s.unitID ^ uint32(c)
		unit, ok = s.da.getUnit(s.unitID)
		if !ok {
			return s.stop()
		}
		if unit.Label() != uint32(c) {
			return s.stop()
		}
		if unit.HasLeaf() {
			leaf, ok := s.da.getUnit(unit.Offset() ^ s.unitID)
			if !ok {
				return s.stop()
			}
			return leaf.Value(), s.keyPos, true
		}
	}
	return 0, 0, false
}

func (s *CommonPrefixSearch) stop() (uint32, int, bool) {
	s.keyPos = len(s.key)
	return 0, 0, false
}
