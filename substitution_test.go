package fsdoc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_SubstitutionLines(t *testing.T) {
	t.Run("should render variables in key order", func(t *testing.T) {
		vars := Variables{
			"W.Et":           "64.1 cm",
			"N.LfomOrifices": []any{13.0, 3.0},
			"HL.Lfom":        "20.0 cm",
		}

		assert.Equal(t, []string{
			".. |HL.Lfom| replace:: 20.0 cm",
			".. |N.LfomOrifices| replace:: [13.0, 3.0]",
			".. |W.Et| replace:: 64.1 cm",
		}, SubstitutionLines(vars, ""))
	})

	t.Run("should flatten nested mappings", func(t *testing.T) {
		vars := Variables{"Plant": Variables{"Q": 20.0, "T": map[string]any{"min": "5.0 cm"}}}

		assert.Equal(t, []string{
			".. |ET_Plant_Q| replace:: 20.0",
			".. |ET_Plant_T_min| replace:: 5.0 cm",
		}, SubstitutionLines(vars, "ET_"))
	})

	t.Run("should render nothing for no variables", func(t *testing.T) {
		assert.Empty(t, SubstitutionLines(nil, ""))
	})
}

func Test_PrependSubstitutions(t *testing.T) {
	t.Run("should write definitions above the existing content", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "LFOM.rst")
		require.NoError(t, os.WriteFile(path, []byte("LFOM\n====\n\nWidth |W.Et|\n"), 0o600))

		require.NoError(t, PrependSubstitutions(path, Variables{"W.Et": "64.1 cm"}, ""))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, ".. |W.Et| replace:: 64.1 cm\nLFOM\n====\n\nWidth |W.Et|\n", string(got))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})

	t.Run("should fail for a missing file", func(t *testing.T) {
		err := PrependSubstitutions(filepath.Join(t.TempDir(), "missing.rst"), Variables{}, "")

		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}
