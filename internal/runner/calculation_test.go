package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunks_Scenario(t *testing.T) {
	assert.Equal(t, []Chunk{{0, 4}, {4, 4}, {8, 2}}, Chunks(10, 4))
	assert.Equal(t, []Chunk{{0, 3}}, Chunks(3, 16))
	assert.Nil(t, Chunks(0, 4))
	assert.Nil(t, Chunks(5, 0))
}

// TestChunks_Partition checks that chunks cover [0, n) exactly once, in
// ascending order, with only the last chunk allowed to be short.
func TestChunks_Partition(t *testing.T) {
	for n := 1; n <= 64; n++ {
		for size := 1; size <= 17; size++ {
			chunks := Chunks(n, size)

			next, total := 0, 0
			for i, c := range chunks {
				require.Equal(t, next, c.Offset, "n=%d size=%d chunk %d", n, size, i)
				require.Positive(t, c.Size)
				require.LessOrEqual(t, c.Size, size)
				if i < len(chunks)-1 {
					require.Equal(t, size, c.Size, "n=%d size=%d: only the last chunk may be short", n, size)
				}
				next += c.Size
				total += c.Size
			}
			require.Equal(t, n, total)
			require.Len(t, chunks, (n+size-1)/size)
		}
	}
}

func TestCalculate_ProcessesEverySampleInOrder(t *testing.T) {
	net := &fakeNet{}
	x, tt := samples(10), samples(10)

	res, err := Calculate(net, x, []int{1}, tt, []int{1}, CalcOptions{MaxBatchSize: 4})
	require.NoError(t, err)

	assert.Equal(t, []int{4, 4, 2}, net.sizes)
	assert.Equal(t, []float32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, net.seen)
	assert.Equal(t, 10, res.Samples)
	assert.Equal(t, 3, res.Chunks)
}

func TestCalculate_MinBatchSizeDoesNotChangeStep(t *testing.T) {
	net := &fakeNet{}

	_, err := Calculate(net, samples(10), []int{1}, samples(10), []int{1},
		CalcOptions{MaxBatchSize: 4, MinBatchSize: 4})
	require.NoError(t, err)

	assert.Equal(t, []int{4, 4, 2}, net.sizes)
}

func TestCalculate_Training(t *testing.T) {
	net := &fakeNet{}
	loss := &fakeLoss{value: 0.5}
	metrics := &fakeMetrics{value: 0.25}
	opt := &fakeOptimizer{}

	res, err := Calculate(net, samples(5), []int{1}, samples(5), []int{1}, CalcOptions{
		MaxBatchSize: 2,
		Loss:         loss,
		Metrics:      metrics,
		Optimizer:    opt,
		Train:        true,
	})
	require.NoError(t, err)

	assert.Equal(t, []bool{true, true, true}, net.trainArgs)
	assert.Equal(t, 3, net.backward)
	assert.Equal(t, 3, opt.updates)
	assert.Equal(t, []int{2, 2, 1}, loss.batches)
	assert.Equal(t, 3, metrics.calls)
	assert.Equal(t, 1, loss.clears)
	assert.Equal(t, 1, metrics.clears)

	assert.Equal(t, 0.5, res.Loss)
	assert.Equal(t, 0.25, res.Metrics)
	assert.Equal(t, "acc", res.MetricsName)
}

func TestCalculate_EvaluationNeverUpdates(t *testing.T) {
	net := &fakeNet{}
	opt := &fakeOptimizer{}

	_, err := Calculate(net, samples(5), []int{1}, samples(5), []int{1}, CalcOptions{
		MaxBatchSize: 2,
		Loss:         &fakeLoss{},
		Optimizer:    opt,
	})
	require.NoError(t, err)

	assert.Equal(t, []bool{false, false, false}, net.trainArgs)
	assert.Zero(t, net.backward)
	assert.Zero(t, opt.updates)
}

func TestCalculate_TrainWithoutLossSkipsBackward(t *testing.T) {
	net := &fakeNet{}
	opt := &fakeOptimizer{}

	_, err := Calculate(net, samples(3), []int{1}, samples(3), []int{1}, CalcOptions{
		MaxBatchSize: 2,
		Optimizer:    opt,
		Train:        true,
	})
	require.NoError(t, err)

	assert.Zero(t, net.backward)
	assert.Zero(t, opt.updates)
}

func TestCalculate_TrainWithoutOptimizerRunsBackward(t *testing.T) {
	net := &fakeNet{}

	_, err := Calculate(net, samples(3), []int{1}, samples(3), []int{1}, CalcOptions{
		MaxBatchSize: 2,
		Loss:         &fakeLoss{},
		Train:        true,
	})
	require.NoError(t, err)

	assert.Equal(t, 2, net.backward)
}

func TestCalculate_Progress(t *testing.T) {
	var sinks []*recordSink
	opts := CalcOptions{
		MaxBatchSize: 4,
		Loss:         &fakeLoss{value: 1.5},
		Metrics:      &fakeMetrics{value: 0.5},
		Progress:     recorder(&sinks),
		Description:  "train",
	}

	_, err := Calculate(&fakeNet{}, samples(10), []int{1}, samples(10), []int{1}, opts)
	require.NoError(t, err)

	require.Len(t, sinks, 1)
	s := sinks[0]
	assert.Equal(t, 3, s.total)
	assert.Equal(t, "train", s.desc)
	assert.True(t, s.closed)
	require.Len(t, s.updates, 3)
	assert.Equal(t, "loss=1.5000, acc=0.5000", s.updates[0].String())

	opts.QuietLoss = true
	_, err = Calculate(&fakeNet{}, samples(2), []int{1}, samples(2), []int{1}, opts)
	require.NoError(t, err)
	assert.Equal(t, "acc=0.5000", sinks[1].updates[0].String())

	opts.QuietMetrics = true
	_, err = Calculate(&fakeNet{}, samples(2), []int{1}, samples(2), []int{1}, opts)
	require.NoError(t, err)
	assert.Empty(t, sinks[2].updates[0])
}

// TestCalculate_ProgressDoesNotAffectResults compares a silent pass with a
// reporting one.
func TestCalculate_ProgressDoesNotAffectResults(t *testing.T) {
	run := func(opts CalcOptions) ([]float32, Result) {
		net := &fakeNet{}
		opts.MaxBatchSize = 3
		opts.Loss = &fakeLoss{value: 2}
		res, err := Calculate(net, samples(7), []int{1}, samples(7), []int{1}, opts)
		require.NoError(t, err)
		return net.seen, res
	}

	var sinks []*recordSink
	seenA, resA := run(CalcOptions{})
	seenB, resB := run(CalcOptions{Progress: recorder(&sinks)})

	assert.Equal(t, seenA, seenB)
	assert.Equal(t, resA, resB)
}

func TestCalculate_InvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		net  Network
		x, t [][]float32
		opts CalcOptions
		want error
	}{
		{"zero max batch", &fakeNet{}, samples(3), samples(3), CalcOptions{}, ErrInvalidConfig},
		{"min above max", &fakeNet{}, samples(3), samples(3), CalcOptions{MaxBatchSize: 2, MinBatchSize: 3}, ErrInvalidConfig},
		{"negative min", &fakeNet{}, samples(3), samples(3), CalcOptions{MaxBatchSize: 2, MinBatchSize: -1}, ErrInvalidConfig},
		{"count mismatch", &fakeNet{}, samples(3), samples(2), CalcOptions{MaxBatchSize: 2}, ErrShapeMismatch},
		{"sample size", &fakeNet{}, [][]float32{{1}, {1, 2}}, samples(2), CalcOptions{MaxBatchSize: 2}, ErrShapeMismatch},
		{"nil network", nil, samples(3), samples(3), CalcOptions{MaxBatchSize: 2}, ErrMissingCollaborator},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loss := &fakeLoss{}
			tt.opts.Loss = loss

			_, err := Calculate(tt.net, tt.x, []int{1}, tt.t, []int{1}, tt.opts)
			require.ErrorIs(t, err, tt.want)
			assert.Zero(t, loss.clears, "nothing may run before validation")
			if fn, ok := tt.net.(*fakeNet); ok {
				assert.Empty(t, fn.sizes)
			}
		})
	}
}

func TestCalculate_EmptyDataset(t *testing.T) {
	net := &fakeNet{}
	loss := &fakeLoss{value: 0}

	res, err := Calculate(net, nil, []int{1}, nil, []int{1}, CalcOptions{MaxBatchSize: 4, Loss: loss})
	require.NoError(t, err)

	assert.Empty(t, net.sizes)
	assert.Zero(t, res.Chunks)
	assert.Equal(t, 1, loss.clears)
}
