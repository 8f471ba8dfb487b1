package rst

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFixture(t *testing.T, name string) []string {
	t.Helper()
	lines, err := ReadLines(filepath.Join("testdata", name))
	require.NoError(t, err)
	return lines
}

func Test_SplitLines(t *testing.T) {
	t.Run("should keep terminators", func(t *testing.T) {
		assert.Equal(t, []string{"a\n", "b\r\n", "c"}, SplitLines("a\nb\r\nc"))
	})

	t.Run("should return nil for empty content", func(t *testing.T) {
		assert.Nil(t, SplitLines(""))
	})

	t.Run("should not add a trailing empty line", func(t *testing.T) {
		assert.Equal(t, []string{"a\n", "\n"}, SplitLines("a\n\n"))
	})
}

func Test_ScanOutline(t *testing.T) {
	t.Run("should find the toctree sections of the sample index", func(t *testing.T) {
		lines := readFixture(t, "index_lfom.rst")

		got := ScanOutline(lines, DefaultOutlineStart, DefaultOutlineEnd)

		assert.Equal(t, []Section{{18, 26}, {27, 32}}, got)
		assert.Equal(t, "   :caption: Introduction\n", lines[got[0].Start+1])
	})

	t.Run("should find the grown section of the merged index", func(t *testing.T) {
		lines := readFixture(t, "index_lfom_ET.rst")

		got := ScanOutline(lines, DefaultOutlineStart, DefaultOutlineEnd)

		assert.Equal(t, []Section{{18, 26}, {27, 33}}, got)
	})

	t.Run("should accept markers with line terminators", func(t *testing.T) {
		lines := readFixture(t, "index_lfom.rst")

		got := ScanOutline(lines, ".. toctree::\n", "\n")

		assert.Equal(t, []Section{{18, 26}, {27, 32}}, got)
	})

	t.Run("should treat the first end line as a separator", func(t *testing.T) {
		lines := SplitLines("START\nopt\n\nentry\n\nafter\n")

		got := ScanOutline(lines, "START", "")

		assert.Equal(t, []Section{{0, 4}}, got)
	})

	t.Run("should ignore blank lines outside a section", func(t *testing.T) {
		lines := SplitLines("\n\nSTART\n\nx\n\n\n")

		got := ScanOutline(lines, "START", "")

		assert.Equal(t, []Section{{2, 5}}, got)
	})

	t.Run("should find a section starting on the first line", func(t *testing.T) {
		lines := SplitLines("START\n\nx\n\n")

		got := ScanOutline(lines, "START", "")

		assert.Equal(t, []Section{{0, 3}}, got)
	})

	t.Run("should restart an open section without resetting the separator", func(t *testing.T) {
		lines := SplitLines("START\n\nSTART\nx\n\n")

		got := ScanOutline(lines, "START", "")

		assert.Equal(t, []Section{{2, 4}}, got)
	})

	t.Run("should drop an unterminated section", func(t *testing.T) {
		lines := SplitLines("START\n\nx\n")

		assert.Empty(t, ScanOutline(lines, "START", ""))
	})
}

func Test_ScanOutlineStrict(t *testing.T) {
	t.Run("should report an unterminated section", func(t *testing.T) {
		lines := SplitLines("intro\nSTART\n:caption: A\n\nx\n")

		got, err := ScanOutlineStrict(lines, "START", "")

		assert.Empty(t, got)
		var secErr *SectionError
		require.True(t, errors.As(err, &secErr))
		assert.Equal(t, Position{Line: 2, Column: 1}, secErr.Pos)
		assert.Equal(t, "START", secErr.Marker)
		assert.Contains(t, secErr.Context, "-> 2: START")
	})

	t.Run("should return no error for a well formed index", func(t *testing.T) {
		lines := readFixture(t, "index_lfom.rst")

		got, err := ScanOutlineStrict(lines, DefaultOutlineStart, DefaultOutlineEnd)

		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}

func Test_ScanHeadings(t *testing.T) {
	t.Run("should split the sample process description", func(t *testing.T) {
		lines := readFixture(t, "Treatment_Process_ET.rst")

		got := ScanHeadings(lines, DefaultHeadingDelimiter)

		assert.Equal(t, []Section{{0, 14}, {15, 20}}, got)
	})

	t.Run("should split the merged process description", func(t *testing.T) {
		lines := readFixture(t, "Treatment_Process_ET_Floc.rst")

		got := ScanHeadings(lines, DefaultHeadingDelimiter)

		assert.Equal(t, []Section{{0, 14}, {15, 20}, {21, 26}}, got)
	})

	t.Run("should not open an empty section for a delimiter on the first line", func(t *testing.T) {
		lines := SplitLines(".. _heading_a:\ntext\n\n.. _heading_b:\nmore\n")

		got := ScanHeadings(lines, DefaultHeadingDelimiter)

		assert.Equal(t, []Section{{0, 2}, {3, 5}}, got)
	})

	t.Run("should return the whole document without delimiters", func(t *testing.T) {
		lines := SplitLines("a\nb\n")

		assert.Equal(t, []Section{{0, 2}}, ScanHeadings(lines, DefaultHeadingDelimiter))
	})

	t.Run("should return one empty section for an empty document", func(t *testing.T) {
		assert.Equal(t, []Section{{0, 0}}, ScanHeadings(nil, DefaultHeadingDelimiter))
	})
}

func Test_Section_Lines(t *testing.T) {
	doc := []string{"a\n", "b\n", "c\n"}

	t.Run("should return the covered lines", func(t *testing.T) {
		assert.Equal(t, []string{"b\n", "c\n"}, Section{1, 3}.Lines(doc))
	})

	t.Run("should clamp to the document", func(t *testing.T) {
		assert.Equal(t, []string{"c\n"}, Section{2, 9}.Lines(doc))
		assert.Empty(t, Section{5, 9}.Lines(doc))
		assert.Equal(t, 0, Section{3, 1}.Len())
	})
}
