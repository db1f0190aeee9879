package icfile

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ic.json")

	names := []string{"P_a_b", "Q_a_b", "var_0_c"}
	y := []float64{1.5, 2.5, 3.5}
	ydot := []float64{0.1, 0.2, 0.3}

	require.NoError(t, Save(path, y, ydot, names))

	gotY, gotYdot, err := Load(path, names, false)
	require.NoError(t, err)
	require.Equal(t, y, gotY)
	require.Equal(t, ydot, gotYdot)
}

func TestLoadDefaultsUnknownDOFToZero(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ic.json")
	require.NoError(t, Save(path, []float64{9}, []float64{0}, []string{"P_a_b"}))

	y, ydot, err := Load(path, []string{"P_a_b", "Q_new_wire"}, false)
	require.NoError(t, err)
	require.Equal(t, 9.0, y[0])
	require.Zero(t, y[1])
	require.Zero(t, ydot[1])
}

func TestLoadStrictModeRejectsUnknownDOF(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ic.json")
	require.NoError(t, Save(path, []float64{9}, []float64{0}, []string{"P_a_b"}))

	_, _, err := Load(path, []string{"P_a_b", "Q_new_wire"}, true)
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "missing.json"), []string{"P_a_b"}, false)
	require.Error(t, err)
}
