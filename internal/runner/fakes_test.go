package runner

import (
	"fmt"
	"io/fs"

	"github.com/born-ml/fit/internal/frame"
	"github.com/born-ml/fit/internal/progress"
)

// fakeNet records every call. Its output has shape [1] and copies the
// first input value of each sample.
type fakeNet struct {
	sizes     []int
	seen      []float32
	trainArgs []bool
	backward  int
	y         frame.Buffer
}

func (n *fakeNet) Forward(x *frame.Buffer, train bool) *frame.Buffer {
	n.sizes = append(n.sizes, x.Len())
	n.trainArgs = append(n.trainArgs, train)
	n.y.Resize(x.Len(), []int{1})
	for i := 0; i < x.Len(); i++ {
		v := x.Sample(i)[0]
		n.seen = append(n.seen, v)
		n.y.Data()[i] = v
	}
	return &n.y
}

func (n *fakeNet) Backward(dy *frame.Buffer) *frame.Buffer {
	n.backward++
	return dy
}

type fakeLoss struct {
	clears  int
	batches []int
	value   float64
}

func (l *fakeLoss) Clear() { l.clears++ }

func (l *fakeLoss) CalculateLoss(y, _ *frame.Buffer, batchSize int) *frame.Buffer {
	l.batches = append(l.batches, batchSize)
	return y
}

func (l *fakeLoss) Loss() float64 { return l.value }

type fakeMetrics struct {
	clears int
	calls  int
	value  float64
}

func (m *fakeMetrics) Clear()                              { m.clears++ }
func (m *fakeMetrics) CalculateMetrics(_, _ *frame.Buffer) { m.calls++ }
func (m *fakeMetrics) Metrics() float64                    { return m.value }
func (m *fakeMetrics) MetricsName() string                 { return "acc" }

type fakeOptimizer struct{ updates int }

func (o *fakeOptimizer) Update() { o.updates++ }

// fakeStore keeps checkpoints in memory.
type fakeStore struct {
	files   map[string]int
	saves   []int
	saveErr error
}

func (s *fakeStore) Load(path, _ string) (int, error) {
	epoch, ok := s.files[path]
	if !ok {
		return 0, fmt.Errorf("open %s: %w", path, fs.ErrNotExist)
	}
	return epoch, nil
}

func (s *fakeStore) Save(path, _ string, epoch int) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	if s.files == nil {
		s.files = map[string]int{}
	}
	s.files[path] = epoch
	s.saves = append(s.saves, epoch)
	return nil
}

// recordSink captures progress updates.
type recordSink struct {
	total   int
	desc    string
	updates []progress.Fields
	closed  bool
}

func (s *recordSink) Advance(f progress.Fields) {
	s.updates = append(s.updates, f)
}

func (s *recordSink) Close() error {
	s.closed = true
	return nil
}

func recorder(sinks *[]*recordSink) progress.Factory {
	return func(total int, desc string) progress.Sink {
		s := &recordSink{total: total, desc: desc}
		*sinks = append(*sinks, s)
		return s
	}
}

// samples returns n one-value samples holding 0..n-1.
func samples(n int) [][]float32 {
	out := make([][]float32, n)
	for i := range out {
		out[i] = []float32{float32(i)}
	}
	return out
}
