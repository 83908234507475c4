package datasets

import (
	"fmt"

	"github.com/born-ml/fit/internal/frame"
)

// TrainData is a dataset split into training and test samples.
//
// Every input sample holds frame.NodeSize(XShape) values and every target
// frame.NodeSize(TShape) values. The shapes exclude the batch dimension.
type TrainData struct {
	XShape []int // Input shape per sample (e.g. [1, 28, 28])
	TShape []int // Target shape per sample (e.g. [10])

	XTrain [][]float32
	TTrain [][]float32
	XTest  [][]float32
	TTest  [][]float32
}

// Empty reports whether the dataset has no samples at all.
func (td *TrainData) Empty() bool {
	return len(td.XTrain) == 0 && len(td.XTest) == 0
}

// Validate checks both splits against XShape and TShape.
func (td *TrainData) Validate() error {
	if err := CheckSplit(td.XTrain, td.XShape, td.TTrain, td.TShape); err != nil {
		return fmt.Errorf("train split: %w", err)
	}
	if err := CheckSplit(td.XTest, td.XShape, td.TTest, td.TShape); err != nil {
		return fmt.Errorf("test split: %w", err)
	}
	return nil
}

// Truncate limits the number of training and test samples (0 = keep all).
func (td *TrainData) Truncate(maxTrain, maxTest int) {
	if maxTrain > 0 && len(td.XTrain) > maxTrain {
		td.XTrain = td.XTrain[:maxTrain]
		td.TTrain = td.TTrain[:maxTrain]
	}
	if maxTest > 0 && len(td.XTest) > maxTest {
		td.XTest = td.XTest[:maxTest]
		td.TTest = td.TTest[:maxTest]
	}
}

// CheckSplit verifies that x and t pair up one-to-one and that every sample
// matches its shape. Errors wrap ErrShapeMismatch.
func CheckSplit(x [][]float32, xShape []int, t [][]float32, tShape []int) error {
	if len(x) != len(t) {
		return fmt.Errorf("%w: %d inputs but %d targets", ErrShapeMismatch, len(x), len(t))
	}

	for _, shape := range [][]int{xShape, tShape} {
		for _, dim := range shape {
			if dim <= 0 {
				return fmt.Errorf("%w: invalid shape %v", ErrShapeMismatch, shape)
			}
		}
	}

	xSize, tSize := frame.NodeSize(xShape), frame.NodeSize(tShape)
	for i := range x {
		if len(x[i]) != xSize {
			return fmt.Errorf("%w: input %d has %d values, shape %v needs %d", ErrShapeMismatch, i, len(x[i]), xShape, xSize)
		}
		if len(t[i]) != tSize {
			return fmt.Errorf("%w: target %d has %d values, shape %v needs %d", ErrShapeMismatch, i, len(t[i]), tShape, tSize)
		}
	}
	return nil
}
