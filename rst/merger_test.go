package rst

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func copyFixture(t *testing.T, dir, name, as string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	dst := filepath.Join(dir, as)
	require.NoError(t, os.WriteFile(dst, data, 0o644))
	return dst
}

func fixtureBytes(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

func Test_MergeIndexFiles(t *testing.T) {
	t.Run("should overwrite the old index and remove the new one", func(t *testing.T) {
		dir := t.TempDir()
		oldPath := copyFixture(t, dir, "index_lfom.rst", "index.rst")
		newPath := copyFixture(t, dir, "new_index_ET.rst", "new_index.rst")

		require.NoError(t, MergeIndexFiles(newPath, oldPath))

		got, err := os.ReadFile(oldPath)
		require.NoError(t, err)
		assert.Equal(t, string(fixtureBytes(t, "index_lfom_ET.rst")), string(got))
		assert.NoFileExists(t, newPath)
	})

	t.Run("should fail when the old index is missing", func(t *testing.T) {
		dir := t.TempDir()
		newPath := copyFixture(t, dir, "new_index_ET.rst", "new_index.rst")

		err := MergeIndexFiles(newPath, filepath.Join(dir, "index.rst"))

		require.ErrorIs(t, err, os.ErrNotExist)
		assert.FileExists(t, newPath)
	})
}

func Test_MergeProcessFiles(t *testing.T) {
	t.Run("should overwrite the old description and keep the new one", func(t *testing.T) {
		dir := t.TempDir()
		oldPath := copyFixture(t, dir, "Treatment_Process_ET.rst", "Treatment_Process.rst")
		newPath := copyFixture(t, dir, "Treatment_Process_Floc.rst", "Treatment_Process_Floc.rst")

		require.NoError(t, MergeProcessFiles(newPath, oldPath))

		got, err := os.ReadFile(oldPath)
		require.NoError(t, err)
		assert.Equal(t, string(fixtureBytes(t, "Treatment_Process_ET_Floc.rst")), string(got))
		assert.FileExists(t, newPath)
	})

	t.Run("should leave a complete description byte identical", func(t *testing.T) {
		dir := t.TempDir()
		oldPath := copyFixture(t, dir, "Treatment_Process_ET_Floc.rst", "Treatment_Process.rst")
		newPath := copyFixture(t, dir, "Treatment_Process_ET.rst", "Treatment_Process_ET.rst")

		require.NoError(t, MergeProcessFiles(newPath, oldPath))

		got, err := os.ReadFile(oldPath)
		require.NoError(t, err)
		assert.Equal(t, fixtureBytes(t, "Treatment_Process_ET_Floc.rst"), got)
	})
}

func Test_Merger_Plan(t *testing.T) {
	t.Run("should describe an index merge without writing it", func(t *testing.T) {
		dir := t.TempDir()
		oldPath := copyFixture(t, dir, "index_lfom.rst", "index.rst")
		newPath := copyFixture(t, dir, "new_index_ET.rst", "new_index.rst")

		plan, err := NewMerger().PlanIndex(newPath, oldPath)
		require.NoError(t, err)

		assert.True(t, plan.Changed())
		diff, err := plan.Diff()
		require.NoError(t, err)
		assert.Contains(t, diff, "+   Entrance_Tank/Entrance_Tank")
		assert.NotContains(t, diff, "-   Entrance_Tank/LFOM")

		got, err := os.ReadFile(oldPath)
		require.NoError(t, err)
		assert.Equal(t, fixtureBytes(t, "index_lfom.rst"), got)
		assert.FileExists(t, newPath)
	})

	t.Run("should report no change for a process already present", func(t *testing.T) {
		dir := t.TempDir()
		oldPath := copyFixture(t, dir, "Treatment_Process_ET_Floc.rst", "Treatment_Process.rst")
		newPath := copyFixture(t, dir, "Treatment_Process_Floc.rst", "Treatment_Process_Floc.rst")

		plan, err := NewMerger().PlanProcess(newPath, oldPath)
		require.NoError(t, err)

		assert.False(t, plan.Changed())
	})

	t.Run("should use custom markers", func(t *testing.T) {
		dir := t.TempDir()
		oldPath := filepath.Join(dir, "old.rst")
		newPath := filepath.Join(dir, "new.rst")
		require.NoError(t, os.WriteFile(oldPath, []byte("== a\nA\n"), 0o644))
		require.NoError(t, os.WriteFile(newPath, []byte("== a\nA\n\n== b\nB\n"), 0o644))

		m := &Merger{HeadingDelimiter: "== "}
		plan, err := m.PlanProcess(newPath, oldPath)
		require.NoError(t, err)

		assert.Equal(t, []string{"== a\n", "A\n", "\n", "== b\n", "B\n"}, plan.After)
	})
}
