package radix

import "strings"

// slice is a view of base[start:end] used to walk a path without
// building new strings at every step.
type slice struct {
	base  string
	start int
	end   int
}

func newSlice(s string) slice {
	return slice{base: s, end: len(s)}
}

func (s slice) len() int {
	return s.end - s.start
}

func (s slice) at(i int) byte {
	return s.base[s.start+i]
}

func (s slice) sub(start, end int) slice {
	return slice{base: s.base, start: s.start + start, end: s.start + end}
}

func (s slice) from(start int) slice {
	return s.sub(start, s.len())
}

// indexByte returns the index of c relative to the view, or -1.
func (s slice) indexByte(c byte) int {
	return strings.IndexByte(s.base[s.start:s.end], c)
}

func (s slice) hasPrefix(prefix string) bool {
	return strings.HasPrefix(s.base[s.start:s.end], prefix)
}

// String returns the viewed text. It shares memory with base.
func (s slice) String() string {
	return s.base[s.start:s.end]
}
