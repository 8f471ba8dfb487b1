package rst

import "strings"

const (
	// DefaultOutlineStart opens a toctree outline section.
	DefaultOutlineStart = ".. toctree::"
	// DefaultOutlineEnd is the blank line that separates and closes outline sections.
	DefaultOutlineEnd = ""
	// DefaultHeadingDelimiter marks the label line of a heading section.
	DefaultHeadingDelimiter = ".. _heading"
)

// ScanOutline returns the outline sections of lines. A section opens at a
// line equal to start. Its first end line separates the directive options
// from the entries and its second end line closes it, so the closing line is
// not part of the section. Markers are compared without line terminators.
func ScanOutline(lines []string, start, end string) []Section {
	sections, _ := scanOutline(lines, start, end)
	return sections
}

// ScanOutlineStrict is ScanOutline that also reports a section left open at
// the end of the document as a *SectionError.
func ScanOutlineStrict(lines []string, start, end string) ([]Section, error) {
	sections, open := scanOutline(lines, start, end)
	if open >= 0 {
		return sections, NewSectionError(
			Position{Line: open + 1, Column: 1},
			trimEOL(start),
			"section is not closed before end of document",
			lines,
		)
	}
	return sections, nil
}

// scanOutline returns the closed sections and the start line of a section
// still open at the end, or -1.
func scanOutline(lines []string, start, end string) ([]Section, int) {
	start, end = trimEOL(start), trimEOL(end)

	var sections []Section
	begin := -1
	separated := false
	for i, raw := range lines {
		line := trimEOL(raw)
		if line == start {
			// a repeated start restarts the open section; the toggle carries over
			begin = i
		}
		if line != end || begin < 0 {
			continue
		}
		if !separated {
			separated = true
			continue
		}
		sections = append(sections, Section{Start: begin, End: i})
		begin = -1
		separated = false
	}
	return sections, begin
}

// ScanHeadings splits lines into sections at every line containing
// delimiter. The first section starts at line 0 and the last one runs to the
// end of the document. Each other section stops one line above the next
// delimiter, leaving out the blank separator line.
func ScanHeadings(lines []string, delimiter string) []Section {
	if delimiter == "" {
		return []Section{{Start: 0, End: len(lines)}}
	}

	var sections []Section
	begin := 0
	for i, line := range lines {
		if !strings.Contains(line, delimiter) || i == 0 {
			continue
		}
		sections = append(sections, Section{Start: begin, End: i - 1})
		begin = i
	}
	return append(sections, Section{Start: begin, End: len(lines)})
}
