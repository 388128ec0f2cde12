package nodenet

import (
	"math"
)

// Sigmoid is the single nonlinearity used by every hidden and output node.
//
// The exponent is not negated: 1 / (1 + e^x) is monotonically
// decreasing, unlike the textbook logistic 1 / (1 + e^-x). The learning rules
// in the nn package are written against this exact curve, so changing the
// sign here alone would break them.
func Sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(x))
}

// SigmoidSlope returns output * (1 - output), the magnitude of the sigmoid's
// derivative expressed through an already computed activation value.
func SigmoidSlope(output float64) float64 {
	return output * (1.0 - output)
}

// Identity passes the value through unchanged. Input nodes use it.
func Identity(x float64) float64 {
	return x
}
