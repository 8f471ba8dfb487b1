package rst

import (
	"fmt"
	"strings"
)

// Position represents a position in a document.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// SectionError represents a section that could not be delimited.
type SectionError struct {
	Pos     Position // Position of the section start
	Marker  string   // Marker that opened the section
	Message string
	Context string // Surrounding lines for context
}

// Error implements the error interface.
func (e *SectionError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("section %q at %s: %s\nContext: %s", e.Marker, e.Pos, e.Message, e.Context)
	}
	return fmt.Sprintf("section %q at %s: %s", e.Marker, e.Pos, e.Message)
}

// NewSectionError creates a new SectionError with context taken from lines.
func NewSectionError(pos Position, marker, message string, lines []string) *SectionError {
	return &SectionError{
		Pos:     pos,
		Marker:  marker,
		Message: message,
		Context: extractContext(lines, pos),
	}
}

// extractContext extracts a snippet of lines around the error position.
// It includes up to two lines before and after the error line.
func extractContext(lines []string, pos Position) string {
	if len(lines) == 0 || pos.Line < 1 || pos.Line > len(lines) {
		return ""
	}

	startLine := max(0, pos.Line-3)
	endLine := min(len(lines)-1, pos.Line+1)

	var b strings.Builder
	for i := startLine; i <= endLine; i++ {
		lineNum := i + 1
		text := trimEOL(lines[i])
		if lineNum == pos.Line {
			b.WriteString(fmt.Sprintf("-> %d: %s\n", lineNum, text))
			if pos.Column <= len(text)+1 {
				b.WriteString(strings.Repeat(" ", pos.Column+5) + "^\n")
			}
		} else {
			b.WriteString(fmt.Sprintf("   %d: %s\n", lineNum, text))
		}
	}
	return b.String()
}
