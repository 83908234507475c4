package runner

import (
	"fmt"

	"github.com/born-ml/fit/internal/datasets"
	"github.com/born-ml/fit/internal/frame"
	"github.com/born-ml/fit/internal/progress"
)

// Chunk is a contiguous sample range [Offset, Offset+Size) processed as one
// mini-batch.
type Chunk struct {
	Offset int
	Size   int
}

// Chunks partitions [0, n) into ascending chunks of maxChunkSize samples.
//
// Only the last chunk may be smaller, holding n - offset samples. Returns
// nil when n or maxChunkSize is not positive.
func Chunks(n, maxChunkSize int) []Chunk {
	if n <= 0 || maxChunkSize <= 0 {
		return nil
	}

	chunks := make([]Chunk, 0, (n+maxChunkSize-1)/maxChunkSize)
	for offset := 0; offset < n; offset += maxChunkSize {
		chunks = append(chunks, Chunk{
			Offset: offset,
			Size:   min(maxChunkSize, n-offset),
		})
	}
	return chunks
}

// CalcOptions configures one Calculate pass.
//
// Zero values are usable defaults except for MaxBatchSize: MinBatchSize
// defaults to 1, loss and metrics are reported when present, and a nil
// Progress disables reporting.
type CalcOptions struct {
	MaxBatchSize int // Samples per chunk (required, > 0)
	MinBatchSize int // Lower bound for non-final chunks (default: 1); never changes the step

	Metrics   Metrics   // Optional metrics accumulator
	Loss      Loss      // Optional loss accumulator
	Optimizer Optimizer // Optional; used only when Train and Loss are set

	Train bool // Run backward (and update) after each forward

	QuietLoss    bool // Do not report the loss per chunk
	QuietMetrics bool // Do not report the metrics per chunk

	Progress    progress.Factory // Progress display (nil = none)
	Description string           // Label passed to the progress display
}

func (o *CalcOptions) validate() error {
	if o.MaxBatchSize <= 0 {
		return fmt.Errorf("%w: max batch size must be > 0 (got %d)", ErrInvalidConfig, o.MaxBatchSize)
	}
	if o.MinBatchSize == 0 {
		o.MinBatchSize = 1
	}
	if o.MinBatchSize < 0 || o.MinBatchSize > o.MaxBatchSize {
		return fmt.Errorf("%w: min batch size %d outside [1, %d]", ErrInvalidConfig, o.MinBatchSize, o.MaxBatchSize)
	}
	return nil
}

// Result summarizes a pass. Loss and Metrics are read from the accumulators
// once the last chunk is done; they are zero when the accumulator is absent.
type Result struct {
	Loss        float64
	Metrics     float64
	MetricsName string
	Samples     int
	Chunks      int
}

// Calculate runs one pass over (x, t) in chunks of opts.MaxBatchSize.
//
// For each chunk, in order:
//  1. load inputs and targets into reusable batch buffers
//  2. y = net.Forward(x, opts.Train)
//  3. accumulate loss (yielding dy) and metrics when present
//  4. if training with a loss: net.Backward(dy), then opts.Optimizer.Update()
//  5. report loss and metrics to the progress sink
//
// Every sample is processed exactly once, in order. The accumulators are
// cleared before the first chunk.
//
// Parameters:
//   - net: Network to drive
//   - x, xShape: Input samples and per-sample input shape
//   - t, tShape: Target samples and per-sample target shape
//   - opts: Pass configuration
//
// Returns ErrInvalidConfig, ErrMissingCollaborator or ErrShapeMismatch
// (wrapped) before any computation when the arguments are inconsistent.
func Calculate(net Network, x [][]float32, xShape []int, t [][]float32, tShape []int, opts CalcOptions) (Result, error) {
	if net == nil {
		return Result{}, fmt.Errorf("%w: network is nil", ErrMissingCollaborator)
	}
	if err := opts.validate(); err != nil {
		return Result{}, err
	}
	if err := datasets.CheckSplit(x, xShape, t, tShape); err != nil {
		return Result{}, err
	}

	if opts.Metrics != nil {
		opts.Metrics.Clear()
	}
	if opts.Loss != nil {
		opts.Loss.Clear()
	}

	chunks := Chunks(len(x), opts.MaxBatchSize)

	newSink := opts.Progress
	if newSink == nil {
		newSink = progress.Nop()
	}
	sink := newSink(len(chunks), opts.Description)
	defer sink.Close()

	var xBuf, tBuf frame.Buffer
	for _, c := range chunks {
		xBuf.Resize(c.Size, xShape)
		if err := xBuf.SetData(x[c.Offset : c.Offset+c.Size]); err != nil {
			return Result{}, err
		}

		y := net.Forward(&xBuf, opts.Train)

		tBuf.Resize(c.Size, tShape)
		if err := tBuf.SetData(t[c.Offset : c.Offset+c.Size]); err != nil {
			return Result{}, err
		}

		var dy *frame.Buffer
		if opts.Loss != nil {
			dy = opts.Loss.CalculateLoss(y, &tBuf, c.Size)
		}
		if opts.Metrics != nil {
			opts.Metrics.CalculateMetrics(y, &tBuf)
		}

		if opts.Train && opts.Loss != nil {
			net.Backward(dy)
			if opts.Optimizer != nil {
				opts.Optimizer.Update()
			}
		}

		sink.Advance(opts.fields())
	}

	res := Result{Samples: len(x), Chunks: len(chunks)}
	if opts.Loss != nil {
		res.Loss = opts.Loss.Loss()
	}
	if opts.Metrics != nil {
		res.Metrics = opts.Metrics.Metrics()
		res.MetricsName = opts.Metrics.MetricsName()
	}
	return res, nil
}

// fields builds the progress values for the current chunk.
func (o *CalcOptions) fields() progress.Fields {
	var f progress.Fields
	if !o.QuietLoss && o.Loss != nil {
		f = f.Add("loss", o.Loss.Loss())
	}
	if !o.QuietMetrics && o.Metrics != nil {
		f = f.Add(o.Metrics.MetricsName(), o.Metrics.Metrics())
	}
	return f
}
