package nodenet

import (
	"fmt"
)

// Example is a single training pair.
type Example struct {
	Inputs  []float64
	Desired float64
}

// Dataset is an ordered list of examples. The trainer visits it in order.
type Dataset []Example

// XORDataset returns the four XOR examples used by the demo.
func XORDataset() Dataset {
	return Dataset{
		{Inputs: []float64{0, 0}, Desired: 0},
		{Inputs: []float64{0, 1}, Desired: 1},
		{Inputs: []float64{1, 0}, Desired: 1},
		{Inputs: []float64{1, 1}, Desired: 0},
	}
}

// Validate reports an ErrConfig if the dataset is empty or any input tuple
// does not have exactly width values.
func (d Dataset) Validate(width int) error {
	if len(d) == 0 {
		return fmt.Errorf("%w: dataset has no examples", ErrConfig)
	}
	for i, ex := range d {
		if len(ex.Inputs) != width {
			return fmt.Errorf("%w: example %d has %d inputs, network expects %d", ErrConfig, i, len(ex.Inputs), width)
		}
	}
	return nil
}

// Inputs returns the input tuples in dataset order.
func (d Dataset) Inputs() [][]float64 {
	inputs := make([][]float64, len(d))
	for i, ex := range d {
		inputs[i] = ex.Inputs
	}
	return inputs
}

// Desired returns the desired outputs in dataset order.
func (d Dataset) Desired() []float64 {
	desired := make([]float64, len(d))
	for i, ex := range d {
		desired[i] = ex.Desired
	}
	return desired
}
