package patch

import (
	"bytes"
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrOffsetRange is returned when an edit points outside the source buffer.
	ErrOffsetRange = errors.New("edit offset out of range")
	// ErrDuplicateOffset is returned when two edits insert at the same offset.
	ErrDuplicateOffset = errors.New("duplicate edit offset")
)

// Edit inserts Text at Offset, a byte offset into the original buffer.
type Edit struct {
	Offset int
	Text   string
}

// Apply returns a copy of src with every edit inserted at its offset.
// The edits slice is not modified; edits may be given in any order and are
// applied by ascending offset.
func Apply(src []byte, edits []Edit) ([]byte, error) {
	ordered, err := order(src, edits)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	out.Grow(len(src) + insertedLen(ordered))

	cursor := 0
	for _, e := range ordered {
		out.Write(src[cursor:e.Offset])
		out.WriteString(e.Text)
		cursor = e.Offset
	}
	out.Write(src[cursor:])

	return out.Bytes(), nil
}

func order(src []byte, edits []Edit) ([]Edit, error) {
	ordered := make([]Edit, len(edits))
	copy(ordered, edits)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Offset < ordered[j].Offset
	})

	for i, e := range ordered {
		if e.Offset < 0 || e.Offset > len(src) {
			return nil, fmt.Errorf("%w: %d (buffer length %d)", ErrOffsetRange, e.Offset, len(src))
		}
		if i > 0 && ordered[i-1].Offset == e.Offset {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateOffset, e.Offset)
		}
	}
	return ordered, nil
}

func insertedLen(edits []Edit) int {
	n := 0
	for _, e := range edits {
		n += len(e.Text)
	}
	return n
}
