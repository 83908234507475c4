package datasets

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func idxImages(t *testing.T, rows, cols int, images ...[]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	header := []uint32{idxImagesMagic, uint32(len(images)), uint32(rows), uint32(cols)}
	require.NoError(t, binary.Write(&buf, binary.BigEndian, header))
	for _, img := range images {
		buf.Write(img)
	}
	return buf.Bytes()
}

func idxLabels(t *testing.T, labels ...byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, binary.BigEndian, []uint32{idxLabelsMagic, uint32(len(labels))}))
	buf.Write(labels)
	return buf.Bytes()
}

func TestReadIDXImages(t *testing.T) {
	data := idxImages(t, 2, 2, []byte{0, 255, 10, 20}, []byte{1, 2, 3, 4})

	images, rows, cols, err := ReadIDXImages(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 2, rows)
	assert.Equal(t, 2, cols)
	require.Len(t, images, 2)
	assert.Equal(t, []byte{1, 2, 3, 4}, images[1])
}

func TestReadIDXImages_BadMagic(t *testing.T) {
	data := idxLabels(t, 1, 2, 3, 4, 5, 6, 7, 8)

	_, _, _, err := ReadIDXImages(bytes.NewReader(data))
	require.ErrorIs(t, err, ErrInvalidMagic)
}

func TestReadIDXImages_Truncated(t *testing.T) {
	data := idxImages(t, 2, 2, []byte{0, 255, 10, 20})

	_, _, _, err := ReadIDXImages(bytes.NewReader(data[:len(data)-1]))
	require.Error(t, err)
}

func TestReadIDXLabels(t *testing.T) {
	labels, err := ReadIDXLabels(bytes.NewReader(idxLabels(t, 7, 0, 9)))
	require.NoError(t, err)
	assert.Equal(t, []byte{7, 0, 9}, labels)

	_, err = ReadIDXLabels(bytes.NewReader(idxImages(t, 1, 1)))
	require.ErrorIs(t, err, ErrInvalidMagic)
}

func writeMNIST(t *testing.T, dir string) {
	t.Helper()
	files := map[string][]byte{
		MNISTTrainImages: idxImages(t, 2, 2, []byte{0, 255, 0, 255}, []byte{255, 0, 255, 0}, []byte{0, 0, 0, 0}),
		MNISTTrainLabels: idxLabels(t, 1, 2, 3),
		MNISTTestImages:  idxImages(t, 2, 2, []byte{51, 102, 153, 204}),
		MNISTTestLabels:  idxLabels(t, 9),
	}
	for name, data := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o600))
	}
}

func TestLoadMNIST(t *testing.T) {
	dir := t.TempDir()
	writeMNIST(t, dir)

	td, err := LoadMNIST(dir, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 2}, td.XShape)
	assert.Equal(t, []int{10}, td.TShape)
	require.Len(t, td.XTrain, 3)
	require.Len(t, td.XTest, 1)

	assert.Equal(t, []float32{0, 1, 0, 1}, td.XTrain[0])
	assert.InDelta(t, 0.2, td.XTest[0][0], 1e-6)
	assert.Equal(t, float32(1), td.TTrain[1][2])
	assert.Equal(t, float32(1), td.TTest[0][9])
}

func TestLoadMNIST_MaxSamples(t *testing.T) {
	dir := t.TempDir()
	writeMNIST(t, dir)

	td, err := LoadMNIST(dir, 2, 0)
	require.NoError(t, err)
	assert.Len(t, td.XTrain, 2)
	assert.Len(t, td.TTrain, 2)
	assert.Len(t, td.XTest, 1)
}

func TestLoadMNIST_MissingFile(t *testing.T) {
	_, err := LoadMNIST(t.TempDir(), 0, 0)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestOneHot(t *testing.T) {
	out, err := OneHot([]byte{0, 3}, 4)
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{1, 0, 0, 0}, {0, 0, 0, 1}}, out)

	_, err = OneHot([]byte{4}, 4)
	assert.Error(t, err)
}
