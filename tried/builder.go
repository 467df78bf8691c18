package tried

import (
	"encoding/binary"
	"errors"
)

const (
	blockSize       = 256
	numTargetBlocks = 16 // how many trailing blocks to search for offsets

	invalidNext = 0   // no next unused unit
	invalidPrev = 255 // no previous unused unit
)

// Entry pairs a key with its value in a keyset.
type Entry struct {
	Key   []byte
	Value uint32
}

// Builder constructs a double-array trie.
//
// The keyset must be sorted in ascending byte order and contain no
// duplicate keys and no NUL bytes; the builder does not verify this.
type Builder struct {
	blocks      []*block
	usedOffsets map[uint32]struct{}
}

// NewBuilder returns a Builder with a single empty block.
func NewBuilder() *Builder {
	return &Builder{
		blocks:      []*block{newBlock(0)},
		usedOffsets: make(map[uint32]struct{}),
	}
}

// Build builds a double-array trie from a sorted keyset and returns the
// serialised byte buffer.
func Build(keyset []Entry) ([]byte, error) {
	return NewBuilder().BuildFromKeyset(keyset)
}

// BuildFromKeyset builds a double-array trie from a sorted keyset, reusing
// this builder's blocks.
func (b *Builder) BuildFromKeyset(keyset []Entry) ([]byte, error) {
	if len(keyset) == 0 {
		return nil, errors.New("tried: empty keyset")
	}

	b.reserve(0) // root node
	if err := b.buildRecursive(keyset, 0, 0, len(keyset), 0); err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(b.blocks)*blockSize*UnitSize)
	var buf [UnitSize]byte
	for _, blk := range b.blocks {
		for _, u := range blk.units {
			binary.LittleEndian.PutUint32(buf[:], uint32(u))
			out = append(out, buf[:]...)
		}
	}
	return out, nil
}

// NumUnits returns the total number of units this builder holds.
func (b *Builder) NumUnits() uint32 {
	return uint32(len(b.blocks) * blockSize)
}

// NumUsedUnits returns the number of units actually occupied by nodes.
func (b *Builder) NumUsedUnits() uint32 {
	var n uint32
	for _, blk := range b.blocks {
		for _, used := range blk.isUsed {
			if used {
				n++
			}
		}
	}
	return n
}

func (b *Builder) getBlock(unitID int) *block {
	i := unitID / blockSize
	if i >= len(b.blocks) {
		return nil
	}
	return b.blocks[i]
}

func (b *Builder) extendBlock() *block {
	blk := newBlock(len(b.blocks))
	b.blocks = append(b.blocks, blk)
	return blk
}

func (b *Builder) getUnit(unitID int) *Unit {
	for b.getBlock(unitID) == nil {
		b.extendBlock()
	}
	return &b.getBlock(unitID).units[unitID%blockSize]
}

func (b *Builder) reserve(unitID int) {
	for b.getBlock(unitID) == nil {
		b.extendBlock()
	}
	b.getBlock(unitID).reserve(uint8(unitID % blockSize))
}

func (b *Builder) buildRecursive(keyset []Entry, depth, begin, end, unitID int) error {
	// Each label entry is (label, start position, end position).
	type labelRange struct {
		label      byte
		begin, end int
	}
	labels := make([]labelRange, 0, 8)
	var value uint32
	haveValue := false

	for i := begin; i < end; i++ {
		key := keyset[i].Key
		var label byte
		if depth < len(key) {
			label = key[depth]
		}
		if label == 0 {
			if depth < len(key) {
				return errors.New("tried: key contains NUL byte")
			}
			if haveValue {
				return errors.New("tried: duplicate key in keyset")
			}
			value = keyset[i].Value
			haveValue = true
		}
		if n := len(labels); n > 0 {
			if labels[n-1].label != label {
				labels[n-1].end = i
				labels = append(labels, labelRange{label: label, begin: i})
			}
		} else {
			labels = append(labels, labelRange{label: label, begin: i})
		}
	}
	labels[len(labels)-1].end = end

	labelKeys := make([]byte, len(labels))
	for i, l := range labels {
		labelKeys[i] = l.label
	}

	// Search for an offset where all children fit in unused positions.
	var offset uint32
	for {
		o, ok := b.findOffset(unitID, labelKeys)
		if ok {
			offset = o
			break
		}
		b.extendBlock()
	}
	b.usedOffsets[offset] = struct{}{}

	hasLeaf := labelKeys[0] == 0

	// Populate the offset and has-leaf flag on the parent node. The offset
	// is stored relative to the parent.
	parent := b.getUnit(unitID)
	parent.SetOffset(offset ^ uint32(unitID))
	parent.SetHasLeaf(hasLeaf)

	// Populate labels (or the leaf value) on the child nodes.
	for _, label := range labelKeys {
		childID := int(offset ^ uint32(label))
		b.reserve(childID)

		u := b.getUnit(childID)
		if label == 0 {
			u.SetValue(value)
		} else {
			u.SetLabel(label)
		}
	}

	// Recurse in depth-first order.
	for _, l := range labels {
		if l.label == 0 {
			continue
		}
		childID := int(offset ^ uint32(l.label))
		if err := b.buildRecursive(keyset, depth+1, l.begin, l.end, childID); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) findOffset(unitID int, labels []byte) (uint32, bool) {
	head := 0
	if len(b.blocks) > numTargetBlocks {
		head = len(b.blocks) - numTargetBlocks
	}
	for _, blk := range b.blocks[head:] {
		if o, ok := b.findOffsetInBlock(blk, unitID, labels); ok {
			return o, true
		}
	}
	return 0, false
}

// findOffsetInBlock walks the block's unused-unit list looking for an offset
// at which every label lands on an unused unit and which has not been
// claimed by another parent.
func (b *Builder) findOffsetInBlock(blk *block, unitID int, labels []byte) (uint32, bool) {
	if blk.headUnused == invalidNext && blk.isUsed[0] {
		return 0, false // block is full
	}
	unusedID := blk.headUnused
	for {
		offset := unusedID ^ labels[0]
		if blk.isValidOffset(unitID, offset, labels) {
			offsetU32 := uint32(blk.id)<<8 | uint32(offset)
			if _, taken := b.usedOffsets[offsetU32]; !taken {
				return offsetU32, true
			}
		}
		unusedID = blk.nextUnused[unusedID]
		if unusedID == invalidNext {
			return 0, false
		}
	}
}

// block is a 256-unit shard of the array plus free-list bookkeeping.
type block struct {
	id         int
	units      [blockSize]Unit
	isUsed     [blockSize]bool
	headUnused uint8
	nextUnused [blockSize]uint8
	prevUnused [blockSize]uint8
}

func newBlock(id int) *block {
	blk := &block{id: id}
	for i := 0; i < blockSize-1; i++ {
		blk.nextUnused[i] = uint8(i + 1)
	}
	blk.nextUnused[blockSize-1] = invalidNext
	blk.prevUnused[0] = invalidPrev
	for i := 1; i < blockSize; i++ {
		blk.prevUnused[i] = uint8(i - 1)
	}
	return blk
}

func (blk *block) reserve(id uint8) {
	blk.isUsed[id] = true

	prevID := blk.prevUnused[id]
	nextID := blk.nextUnused[id]

	if prevID != invalidPrev {
		blk.nextUnused[prevID] = nextID
	}
	blk.nextUnused[id] = invalidNext

	if nextID != invalidNext {
		blk.prevUnused[nextID] = prevID
	}
	blk.prevUnused[id] = invalidPrev

	if id == blk.headUnused {
		blk.headUnused = nextID
	}
}

func (blk *block) isValidOffset(unitID int, offset uint8, labels []byte) bool {
	offsetU32 := uint32(blk.id)<<8 | uint32(offset)

	// A relative offset above 2^21 is stored in extended form, which needs
	// its low 8 bits clear.
	rel := uint32(unitID) ^ offsetU32
	if rel&(0xFF<<21) > 0 && rel&0xFF > 0 {
		return false
	}

	for _, label := range labels[1:] {
		if blk.isUsed[offset^label] {
			return false
		}
	}
	return true
}
