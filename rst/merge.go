package rst

// MergeSectionLines returns newSec followed by every line of oldSec not
// already present, in order. Lines are compared without terminators.
func MergeSectionLines(newSec, oldSec []string) []string {
	merged := make([]string, 0, len(newSec)+len(oldSec))
	seen := make(map[string]bool, len(newSec)+len(oldSec))
	for _, line := range newSec {
		merged = append(merged, line)
		seen[trimEOL(line)] = true
	}
	for _, line := range oldSec {
		key := trimEOL(line)
		if seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, line)
	}
	return merged
}

// MergeIndex merges the outline sections of an old index into a new one and
// returns the merged document. Sections are identified by their caption, the
// line after the section start. A new section with the caption of an old one
// is replaced in place by the union of both. Old sections the new document
// lacks follow the last new section, each after a blank line, or go to the
// end of the document when it has no sections.
func MergeIndex(newLines []string, newSecs []Section, oldLines []string, oldSecs []Section) []string {
	eol := detectEOL(newLines, oldLines)

	blocks := make([][]string, len(newSecs))
	for j, ns := range newSecs {
		blocks[j] = ns.Lines(newLines)
	}

	var orphans [][]string
	for _, old := range oldSecs {
		caption, ok := lineAt(oldLines, old.Start+1)
		if !ok {
			continue
		}
		matched := false
		for j, ns := range newSecs {
			if c, ok := lineAt(newLines, ns.Start+1); ok && c == caption {
				blocks[j] = MergeSectionLines(blocks[j], old.Lines(oldLines))
				matched = true
			}
		}
		if !matched {
			orphans = append(orphans, old.Lines(oldLines))
		}
	}

	out := make([]string, 0, len(newLines)+len(oldLines))
	emitOrphans := func() {
		for _, block := range orphans {
			out = appendLine(out, eol, eol)
			for _, line := range block {
				out = appendLine(out, line, eol)
			}
		}
	}

	i := 0
	for j, ns := range newSecs {
		for ; i < ns.Start && i < len(newLines); i++ {
			out = appendLine(out, newLines[i], eol)
		}
		for _, line := range blocks[j] {
			out = appendLine(out, line, eol)
		}
		i = max(i, ns.End)
		if j == len(newSecs)-1 {
			emitOrphans()
		}
	}
	for ; i < len(newLines); i++ {
		out = appendLine(out, newLines[i], eol)
	}
	if len(newSecs) == 0 {
		emitOrphans()
	}
	return out
}

// MergeProcesses appends to the old document every section of the new one
// whose heading line does not start any old section, each after a blank
// line, in new document order. Existing sections are left untouched.
func MergeProcesses(newLines []string, newSecs []Section, oldLines []string, oldSecs []Section) []string {
	eol := detectEOL(oldLines, newLines)

	headings := make(map[string]bool, len(oldSecs))
	for _, old := range oldSecs {
		if h, ok := lineAt(oldLines, old.Start); ok && old.Len() > 0 {
			headings[h] = true
		}
	}

	out := append([]string(nil), oldLines...)
	for _, ns := range newSecs {
		h, ok := lineAt(newLines, ns.Start)
		if !ok || ns.Len() == 0 || headings[h] {
			continue
		}
		out = appendLine(out, eol, eol)
		for _, line := range ns.Lines(newLines) {
			out = appendLine(out, line, eol)
		}
	}
	return out
}

func lineAt(lines []string, i int) (string, bool) {
	if i < 0 || i >= len(lines) {
		return "", false
	}
	return trimEOL(lines[i]), true
}
