package rst

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Merger merges rst documents on disk. Empty markers fall back to the
// package defaults; the outline end marker is blank either way.
type Merger struct {
	OutlineStart     string
	OutlineEnd       string
	HeadingDelimiter string
}

// NewMerger returns a Merger with the default markers.
func NewMerger() *Merger {
	return &Merger{
		OutlineStart:     DefaultOutlineStart,
		OutlineEnd:       DefaultOutlineEnd,
		HeadingDelimiter: DefaultHeadingDelimiter,
	}
}

func (m *Merger) outlineStart() string {
	if m == nil || m.OutlineStart == "" {
		return DefaultOutlineStart
	}
	return m.OutlineStart
}

func (m *Merger) outlineEnd() string {
	if m == nil {
		return DefaultOutlineEnd
	}
	return m.OutlineEnd
}

func (m *Merger) headingDelimiter() string {
	if m == nil || m.HeadingDelimiter == "" {
		return DefaultHeadingDelimiter
	}
	return m.HeadingDelimiter
}

// Plan is the computed result of a merge, not yet written.
type Plan struct {
	Path   string   // destination document
	Before []string // destination lines before the merge
	After  []string // destination lines after the merge
}

// Changed reports whether writing the plan would alter the destination.
func (p *Plan) Changed() bool {
	return !slices.Equal(p.Before, p.After)
}

// Write replaces the destination document with the merged lines.
func (p *Plan) Write() error {
	return WriteLines(p.Path, p.After)
}

// Diff renders the plan as a unified diff of the destination.
func (p *Plan) Diff() (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        p.Before,
		B:        p.After,
		FromFile: p.Path,
		ToFile:   p.Path + " (merged)",
		Context:  3,
	})
}

// PlanIndex computes the merge of the index at newPath into the index at
// oldPath.
func (m *Merger) PlanIndex(newPath, oldPath string) (*Plan, error) {
	newLines, oldLines, err := readPair(newPath, oldPath)
	if err != nil {
		return nil, err
	}
	start, end := m.outlineStart(), m.outlineEnd()
	merged := MergeIndex(
		newLines, ScanOutline(newLines, start, end),
		oldLines, ScanOutline(oldLines, start, end),
	)
	return &Plan{Path: oldPath, Before: oldLines, After: merged}, nil
}

// PlanProcess computes the merge of the process description at newPath into
// the one at oldPath.
func (m *Merger) PlanProcess(newPath, oldPath string) (*Plan, error) {
	newLines, oldLines, err := readPair(newPath, oldPath)
	if err != nil {
		return nil, err
	}
	delim := m.headingDelimiter()
	merged := MergeProcesses(
		newLines, ScanHeadings(newLines, delim),
		oldLines, ScanHeadings(oldLines, delim),
	)
	return &Plan{Path: oldPath, Before: oldLines, After: merged}, nil
}

// MergeIndexFiles merges the index at newPath into oldPath, overwriting
// oldPath, then removes newPath.
func (m *Merger) MergeIndexFiles(newPath, oldPath string) error {
	plan, err := m.PlanIndex(newPath, oldPath)
	if err != nil {
		return err
	}
	if err := plan.Write(); err != nil {
		return err
	}
	if err := os.Remove(newPath); err != nil {
		return fmt.Errorf("removing merged index: %w", err)
	}
	return nil
}

// MergeProcessFiles merges the process description at newPath into oldPath,
// overwriting oldPath. newPath is left in place.
func (m *Merger) MergeProcessFiles(newPath, oldPath string) error {
	plan, err := m.PlanProcess(newPath, oldPath)
	if err != nil {
		return err
	}
	return plan.Write()
}

// MergeIndexFiles merges index files with the default markers.
func MergeIndexFiles(newPath, oldPath string) error {
	return NewMerger().MergeIndexFiles(newPath, oldPath)
}

// MergeProcessFiles merges process descriptions with the default delimiter.
func MergeProcessFiles(newPath, oldPath string) error {
	return NewMerger().MergeProcessFiles(newPath, oldPath)
}

func readPair(newPath, oldPath string) ([]string, []string, error) {
	newLines, err := ReadLines(newPath)
	if err != nil {
		return nil, nil, err
	}
	oldLines, err := ReadLines(oldPath)
	if err != nil {
		return nil, nil, err
	}
	return newLines, oldLines, nil
}

// Describe lists sections as "[start, end) first-line" rows.
func Describe(lines []string, sections []Section) string {
	var b strings.Builder
	for _, s := range sections {
		first, _ := lineAt(lines, s.Start)
		fmt.Fprintf(&b, "%s %s\n", s, first)
	}
	return b.String()
}
