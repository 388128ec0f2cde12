package nodenet

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigmoid(t *testing.T) {
	assert.InDelta(t, 1/(1+math.E), Sigmoid(1), 1e-15)
	assert.Equal(t, 0.5, Sigmoid(0))
	// Decreasing: larger sums give smaller activations.
	assert.Less(t, Sigmoid(2), Sigmoid(1))
	assert.InDelta(t, 0.25, SigmoidSlope(0.5), 1e-15)
	assert.Equal(t, 0.3, Identity(0.3))
}

func TestSquaredErrors(t *testing.T) {
	t.Run("element-wise", func(t *testing.T) {
		errs, err := SquaredErrors([]float64{0.5, 1, 0}, []float64{1, 1, 0.5})
		require.NoError(t, err)
		assert.InDeltaSlice(t, []float64{0.25, 0, 0.25}, errs, 1e-15)
	})

	t.Run("length mismatch", func(t *testing.T) {
		errs, err := SquaredErrors([]float64{1, 2}, []float64{1})
		assert.ErrorIs(t, err, ErrLengthMismatch)
		assert.Nil(t, errs)
	})

	t.Run("mean", func(t *testing.T) {
		mse, err := MeanSquaredError([]float64{1, 0}, []float64{0, 0})
		require.NoError(t, err)
		assert.Equal(t, 0.5, mse)
	})
}

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 2.0, Mean([]float64{1, 2, 3}))
	assert.Equal(t, 6.0, Sum([]float64{1, 2, 3}))
}
