package nn_test

import (
	"testing"

	"github.com/born-ml/fit/internal/frame"
	"github.com/stretchr/testify/require"
)

func buffer(t *testing.T, shape []int, samples ...[]float32) *frame.Buffer {
	t.Helper()
	b := frame.New(len(samples), shape)
	require.NoError(t, b.SetData(samples))
	return b
}
