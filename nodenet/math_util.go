package nodenet

import (
	"fmt"
)

// Sum calculates the sum of a slice of float64 values.
func Sum(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum
}

// Mean calculates the average of a slice of float64 values.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	return Sum(values) / float64(len(values))
}

// SquaredError returns (actual - desired)^2.
func SquaredError(actual, desired float64) float64 {
	diff := actual - desired
	return diff * diff
}

// SquaredErrors computes the element-wise squared error between two series.
// Nothing is computed when the lengths differ.
func SquaredErrors(actual, desired []float64) ([]float64, error) {
	if len(actual) != len(desired) {
		return nil, fmt.Errorf("%w: %d actual values vs %d desired values", ErrLengthMismatch, len(actual), len(desired))
	}
	errs := make([]float64, len(actual))
	for i := range actual {
		errs[i] = SquaredError(actual[i], desired[i])
	}
	return errs, nil
}

// MeanSquaredError is the mean of SquaredErrors.
func MeanSquaredError(actual, desired []float64) (float64, error) {
	errs, err := SquaredErrors(actual, desired)
	if err != nil {
		return 0, err
	}
	return Mean(errs), nil
}
