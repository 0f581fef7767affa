package syntax

import "fmt"

// Position is a point in Swift source text.
// 1-based line numbers, 0-based character offsets, like an LSP position.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
	Offset    int `json:"offset"`
}

// IsValid reports whether the position was set by the lexer.
func (p Position) IsValid() bool { return p.Line > 0 }

func (p Position) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Character+1)
}

// Range is a source span from Start (inclusive) to End (exclusive).
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

func (r Range) String() string {
	return r.Start.String() + "-" + r.End.String()
}

// positionTracker maintains line/column/offset state while scanning.
type positionTracker struct {
	line      int
	character int
	offset    int
}

func newPositionTracker() *positionTracker {
	return &positionTracker{line: 1}
}

// advance moves past r, handling newlines.
func (pt *positionTracker) advance(r rune, size int) {
	if r == '\n' {
		pt.line++
		pt.character = 0
	} else {
		pt.character++
	}
	pt.offset += size
}

func (pt *positionTracker) current() Position {
	return Position{Line: pt.line, Character: pt.character, Offset: pt.offset}
}
