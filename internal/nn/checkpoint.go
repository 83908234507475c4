package nn

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"
)

// RunStatus stores a Sequential's parameters together with the run name and
// epoch as a JSON file:
//
//	{"name": "mnist", "epoch": 3, "net": {"0.weight": {"rows": 128, "cols": 784, "data": [...]}}}
//
// RunStatus is bound to one model and satisfies runner.CheckpointStore.
//
// Example:
//
//	store := nn.NewRunStatus(model)
//	epoch, err := store.Load("mnist_net.json", "mnist")
//	if errors.Is(err, fs.ErrNotExist) {
//	    // fresh run
//	}
type RunStatus struct {
	model *Sequential
}

// NewRunStatus creates a checkpoint store for model.
func NewRunStatus(model *Sequential) *RunStatus {
	return &RunStatus{model: model}
}

type runStatusFile struct {
	Name  string                 `json:"name"`
	Epoch int                    `json:"epoch"`
	Net   map[string]matrixState `json:"net"`
}

type matrixState struct {
	Rows int       `json:"rows"`
	Cols int       `json:"cols"`
	Data []float64 `json:"data"`
}

// Load restores parameters from path and returns the stored epoch.
//
// The file must belong to the run name. Parameters are left untouched on
// any error. A missing file yields an error wrapping fs.ErrNotExist.
func (s *RunStatus) Load(path, name string) (int, error) {
	raw, err := os.ReadFile(path) //nolint:gosec // checkpoint path is chosen by the caller
	if err != nil {
		return 0, err
	}

	var f runStatusFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, fmt.Errorf("decode %s: %w", path, err)
	}
	if f.Name != name {
		return 0, fmt.Errorf("%w: file has %q, run is %q", ErrNameMismatch, f.Name, name)
	}
	if f.Epoch < 0 {
		return 0, fmt.Errorf("decode %s: negative epoch %d", path, f.Epoch)
	}

	state := make(map[string]*mat.Dense, len(f.Net))
	for key, m := range f.Net {
		if m.Rows <= 0 || m.Cols <= 0 || len(m.Data) != m.Rows*m.Cols {
			return 0, fmt.Errorf("%w: %s: [%d %d] with %d values", ErrShapeMismatch, key, m.Rows, m.Cols, len(m.Data))
		}
		state[key] = mat.NewDense(m.Rows, m.Cols, m.Data)
	}

	if err := s.model.LoadStateDict(state); err != nil {
		return 0, err
	}
	return f.Epoch, nil
}

// Save writes the parameters, run name and epoch to path.
//
// The file is written to a temporary sibling and renamed, so a failed save
// leaves any previous checkpoint intact.
func (s *RunStatus) Save(path, name string, epoch int) error {
	f := runStatusFile{
		Name:  name,
		Epoch: epoch,
		Net:   make(map[string]matrixState),
	}
	for key, m := range s.model.StateDict() {
		r, c := m.Dims()
		data := make([]float64, 0, r*c)
		for i := 0; i < r; i++ {
			data = append(data, m.RawRowView(i)...)
		}
		f.Net[key] = matrixState{Rows: r, Cols: c, Data: data}
	}

	raw, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encode checkpoint: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // already renamed on success

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close() //nolint:errcheck,gosec // write error takes precedence
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
