package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "ocalc 1.0.0")
}

func TestShear(t *testing.T) {
	out, err := run(t, "shear", "--name", "V1", "--bw", "14", "--height", "45", "--vk", "120", "--fck", "30")
	require.NoError(t, err)
	assert.Contains(t, out, "BEAM V1 - 14.0 x 45.0 cm")
	assert.Contains(t, out, "168.00 kN")
	assert.Contains(t, out, "7.62 cm²/m (asw = acima da mínima)")
	assert.Contains(t, out, "MAXIMUM SPACING:")
}

func TestShearFactorsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "factors.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gama_c: 1.6\ngama_s: 1.2\n"), 0o644))
	args := []string{"shear", "--bw", "14", "--height", "45", "--vk", "120", "--fck", "30", "--factors", path}

	out, err := run(t, args...)
	require.NoError(t, err)
	assert.Contains(t, out, "1.60 / 1.40 / 1.20")

	out, err = run(t, append(args, "--gama-c", "1.5", "--gama-c2", "1.0")...)
	require.NoError(t, err)
	assert.Contains(t, out, "1.50 / 1.00 / 1.20")
}

func TestShearInvalid(t *testing.T) {
	_, err := run(t, "shear", "--bw", "0", "--height", "45", "--vk", "120", "--fck", "30")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bw must be greater than zero")

	_, err = run(t, "--log-level", "loud", "version")
	assert.Error(t, err)
}

func TestSprings(t *testing.T) {
	out, err := run(t, "springs", "--support", "3", "--depth", "2", "--diameter", "0.4", "--soil", "areia", "--spt", "9")
	require.NoError(t, err)
	assert.Contains(t, out, "Sand")
	assert.Contains(t, out, "264.61")

	out, err = run(t, "springs", "--depth", "1", "--diameter", "0.4", "--soil", "clay", "--spt", "2", "--txt")
	require.NoError(t, err)
	assert.Contains(t, out, "Total supports: 1")

	_, err = run(t, "springs", "--depth", "1", "--diameter", "0.4", "--soil", "rock", "--spt", "2")
	assert.Error(t, err)
}

func TestSpringsFile(t *testing.T) {
	f := excelize.NewFile()
	for i, row := range [][]interface{}{
		{"support", "prof", "diametro", "soil", "spt"},
		{1, 1.0, 0.4, "Argila", 2},
		{2, 1.0, 0.4, "Areia", 99},
		{3, 2.0, 0.4, "Areia", 9},
	} {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	path := filepath.Join(t.TempDir(), "supports.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	out, err := run(t, "springs", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "45.00")
	assert.Contains(t, out, "264.61")
	assert.Contains(t, out, "1 row(s) skipped")
	assert.Contains(t, out, `row 3: SPT 99 not found for soil type "Sand"`)

	_, err = run(t, "springs", "--file", filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.Error(t, err)
}
