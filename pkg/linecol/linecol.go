// Package linecol maps byte offsets in a source string to 1-indexed
// (line, column) pairs, the way the teacher's pkg/errors package maps
// go/token.Pos through a go/token.FileSet. Koatl sources carry no
// FileSet of their own, so this cache is built directly off the raw
// source string handed to the lowering pass.
package linecol

import "sort"

// Cache precomputes line-start byte offsets for a source string so that
// repeated offset->(line,col) lookups (one per synthesized temp name)
// don't rescan the source from the beginning.
type Cache struct {
	lineStarts []int // byte offset of the first byte of each line
}

// New builds a Cache over source. Lines are split on '\n'; a line's
// column count is measured in bytes, matching the original's use of a
// byte cursor rather than a rune cursor for temp-name generation.
func New(source string) *Cache {
	starts := []int{0}
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Cache{lineStarts: starts}
}

// LineCol returns the 1-indexed line and column of the byte offset
// cursor. Offsets past the end of the source clamp to the last line.
func (c *Cache) LineCol(cursor int) (line, col int) {
	// lineStarts is sorted ascending; find the last start <= cursor.
	i := sort.Search(len(c.lineStarts), func(i int) bool {
		return c.lineStarts[i] > cursor
	})
	line = i // i is 1-indexed line number once we account for the search semantics below
	if line == 0 {
		line = 1
	}
	start := c.lineStarts[line-1]
	return line, cursor - start + 1
}
