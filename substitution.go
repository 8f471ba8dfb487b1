package fsdoc

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// SubstitutionLines renders vars as reStructuredText substitution
// definitions, one per line, in key order:
//
//	.. |W.Et| replace:: 64.1 cm
//
// Nested mappings are flattened with "<key>_" prepended to their names.
func SubstitutionLines(vars Variables, prefix string) []string {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var lines []string
	for _, k := range keys {
		switch v := vars[k].(type) {
		case Variables:
			lines = append(lines, SubstitutionLines(v, prefix+k+"_")...)
		case map[string]any:
			lines = append(lines, SubstitutionLines(Variables(v), prefix+k+"_")...)
		default:
			value := strings.TrimRight(pyStr(v), "\r\n")
			lines = append(lines, ".. |"+prefix+k+"| replace:: "+value)
		}
	}
	return lines
}

// PrependSubstitutions writes the substitution definitions for vars at the
// top of the file at path, keeping the existing content below them.
func PrependSubstitutions(path string, vars Variables, prefix string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var b strings.Builder
	for _, line := range SubstitutionLines(vars, prefix) {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.Write(content)

	if err := os.WriteFile(path, []byte(b.String()), info.Mode().Perm()); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
