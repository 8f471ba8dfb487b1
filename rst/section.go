// Package rst locates and merges labeled sections of reStructuredText
// documents: toctree outlines in index files and heading-delimited sections
// in process descriptions.
package rst

import (
	"fmt"
	"os"
	"strings"
)

// Section is a half-open line range [Start, End) within a document.
type Section struct {
	Start int
	End   int
}

// Lines returns the lines of doc covered by s, clamped to the document.
func (s Section) Lines(doc []string) []string {
	start := min(max(s.Start, 0), len(doc))
	end := min(max(s.End, start), len(doc))
	return doc[start:end]
}

// Len returns the number of lines in the range.
func (s Section) Len() int { return max(s.End-s.Start, 0) }

func (s Section) String() string { return fmt.Sprintf("[%d, %d)", s.Start, s.End) }

// SplitLines splits content into lines, each keeping its terminator.
// Joining the result reproduces content byte for byte.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := make([]string, 0, strings.Count(content, "\n")+1)
	for content != "" {
		i := strings.IndexByte(content, '\n')
		if i < 0 {
			lines = append(lines, content)
			break
		}
		lines = append(lines, content[:i+1])
		content = content[i+1:]
	}
	return lines
}

// ReadLines reads the file at path and splits it with SplitLines.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return SplitLines(string(data)), nil
}

// WriteLines replaces the content of path with lines. An existing file keeps
// its permissions.
func WriteLines(path string, lines []string) error {
	perm := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}
	if err := os.WriteFile(path, []byte(strings.Join(lines, "")), perm); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func trimEOL(line string) string {
	return strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
}

func hasEOL(line string) bool { return strings.HasSuffix(line, "\n") }

// detectEOL returns the terminator of the first terminated line found in
// docs, or "\n".
func detectEOL(docs ...[]string) string {
	for _, doc := range docs {
		for _, line := range doc {
			if strings.HasSuffix(line, "\r\n") {
				return "\r\n"
			}
			if hasEOL(line) {
				return "\n"
			}
		}
	}
	return "\n"
}

// appendLine appends line to out, terminating the previous last line first
// if it was the unterminated tail of a document.
func appendLine(out []string, line, eol string) []string {
	if n := len(out); n > 0 && !hasEOL(out[n-1]) {
		out[n-1] += eol
	}
	return append(out, line)
}
