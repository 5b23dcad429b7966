package designfile

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/furnish/pkg/types"
)

func sampleDesign(t *testing.T) types.Design {
	t.Helper()
	table, err := types.NewShape(types.KindRectangle, 75, 75, 50, 50, types.TableBrown)
	require.NoError(t, err)
	chair, err := types.NewShape(types.KindEllipse, 25, 25, 30, 30, types.ChairTan)
	require.NoError(t, err)
	chair.SetBorderThickness(2)
	chair.SetSelected(true)
	return types.Design{table, chair}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleDesign(t)))
	assert.Equal(t,
		"rectangle,75.00,75.00,50.00,50.00,8b4513,000000,1\n"+
			"circle,25.00,25.00,30.00,30.00,d2b48c,000000,2\n",
		buf.String())
}

func TestWriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, types.Design{}))
	assert.Empty(t, buf.String())
}

func TestReadSkipsMalformedLines(t *testing.T) {
	input := strings.Join([]string{
		"rectangle,75.00,75.00,50.00,50.00,8b4513,000000,1",
		"rectangle,75.00,75.00,50.00,50.00,8b4513,000000",
		"circle,abc,25.00,30.00,30.00,d2b48c,000000,2",
		"",
		"circle,25.00,25.00,30.00,30.00,d2b48c,000000,2",
	}, "\n")

	d, skipped, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, 3, skipped)
	require.Len(t, d, 2)
	assert.Equal(t, types.KindRectangle, d[0].Kind())
	assert.Equal(t, types.KindEllipse, d[1].Kind())
	assert.False(t, d[1].Selected())
}

func TestReadEmpty(t *testing.T) {
	d, skipped, err := Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, skipped)
	assert.NotNil(t, d)
	assert.Empty(t, d)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultName)
	want := sampleDesign(t)

	require.NoError(t, Save(path, want))

	got, skipped, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, skipped)
	assert.True(t, got.Equal(want))
	for _, s := range got {
		assert.False(t, s.Selected())
	}
}

func TestSaveReplacesAndLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultName)
	require.NoError(t, os.WriteFile(path, []byte("old contents\n"), 0o644))

	require.NoError(t, Save(path, sampleDesign(t)[:1]))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "rectangle,75.00,75.00,50.00,50.00,8b4513,000000,1\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSaveIntoMissingDirectory(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "nope", DefaultName), types.Design{})
	assert.Error(t, err)
}
