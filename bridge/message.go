package bridge

import (
	"bytes"
	"encoding/binary"
	"math"
)

// encodeText writes s into a zero filled buffer of the given width. The text
// is cut so that at least one NUL terminator remains.
func encodeText(s string, width int) []byte {
	buf := make([]byte, width)
	if len(s) > width-1 {
		s = s[:width-1]
	}

	copy(buf, s)

	return buf
}

// decodeText returns the text up to the first NUL byte.
func decodeText(data []byte) string {
	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}

	return string(data)
}

// truncateText cuts s so that it fits a slot of the given width together
// with its terminator.
func truncateText(s string, width int) string {
	if len(s) > width-1 {
		return s[:width-1]
	}

	return s
}

func encodeFloat(v float32) []byte {
	buf := make([]byte, floatSize)
	binary.LittleEndian.PutUint32(buf, math.Float32bits(v))

	return buf
}

// sameFloat compares bit patterns, so a NaN that stays NaN is not rewritten.
func sameFloat(a, b float32) bool {
	return math.Float32bits(a) == math.Float32bits(b)
}
