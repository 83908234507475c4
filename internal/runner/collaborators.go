package runner

import "github.com/born-ml/fit/internal/frame"

// Network is the engine being trained.
type Network interface {
	// Forward computes the output batch for x. train selects whether the
	// engine keeps the state needed by a following Backward.
	Forward(x *frame.Buffer, train bool) *frame.Buffer

	// Backward propagates the loss gradient dy and accumulates parameter
	// gradients. It returns the gradient with respect to the input.
	Backward(dy *frame.Buffer) *frame.Buffer
}

// Loss accumulates a loss value over the chunks of a pass.
type Loss interface {
	// Clear resets the accumulator.
	Clear()

	// CalculateLoss accumulates the loss of y against t and returns the
	// gradient with respect to y.
	CalculateLoss(y, t *frame.Buffer, batchSize int) *frame.Buffer

	// Loss returns the accumulated loss.
	Loss() float64
}

// Metrics accumulates an evaluation metric over the chunks of a pass.
type Metrics interface {
	Clear()
	CalculateMetrics(y, t *frame.Buffer)
	Metrics() float64

	// MetricsName is the display name (e.g. "accuracy").
	MetricsName() string
}

// Optimizer applies one parameter update from the accumulated gradients.
type Optimizer interface {
	Update()
}

// CheckpointStore persists network parameters together with the run state.
//
// Implementations are bound to a network when constructed.
type CheckpointStore interface {
	// Load restores parameters from path and returns the stored epoch.
	// A missing file yields an error satisfying errors.Is(err, fs.ErrNotExist).
	Load(path, name string) (epoch int, err error)

	// Save writes parameters, run name and epoch to path.
	Save(path, name string, epoch int) error
}
