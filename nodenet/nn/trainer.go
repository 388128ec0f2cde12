package nn

import (
	"fmt"
	"time"

	"github.com/baldhumanity/nodenet-go/nodenet"
)

// Trainer holds the state of a training run over a fixed dataset.
type Trainer struct {
	Network      *Network
	Dataset      nodenet.Dataset
	LearningRate float64
	Epoch        int       // Completed epochs
	History      []float64 // Mean squared error of each completed epoch
}

// NewTrainer checks that the dataset fits the network's input layer and
// that the learning rate is usable.
func NewTrainer(net *Network, dataset nodenet.Dataset, learningRate float64) (*Trainer, error) {
	if err := dataset.Validate(len(net.layers[0])); err != nil {
		return nil, fmt.Errorf("invalid dataset: %w", err)
	}
	if learningRate <= 0 {
		return nil, fmt.Errorf("%w: learning rate must be positive, got %g", nodenet.ErrConfig, learningRate)
	}
	return &Trainer{
		Network:      net,
		Dataset:      dataset,
		LearningRate: learningRate,
		History:      []float64{},
	}, nil
}

// RunEpoch feeds every example once, in dataset order, updating the weights
// after each one. It returns the epoch's mean squared error.
func (t *Trainer) RunEpoch() (float64, error) {
	net := t.Network
	outputs := make([]float64, 0, len(t.Dataset))
	for i, ex := range t.Dataset {
		output, err := net.Feed(ex.Inputs)
		if err != nil {
			return 0, fmt.Errorf("epoch %d, example %d: %w", t.Epoch+1, i, err)
		}
		outputs = append(outputs, output)

		if err := net.UpdateWeights(ex.Desired, t.LearningRate); err != nil {
			return 0, fmt.Errorf("epoch %d, example %d: %w", t.Epoch+1, i, err)
		}
		net.Flush()
	}

	mse, err := nodenet.MeanSquaredError(outputs, t.Dataset.Desired())
	if err != nil {
		return 0, fmt.Errorf("epoch %d: %w", t.Epoch+1, err)
	}
	t.Epoch++
	t.History = append(t.History, mse)
	net.logger.Debug("Epoch finished.", "epoch", t.Epoch, "mse", mse)
	return mse, nil
}

// Run executes epochs more epochs and returns the mean squared error of each
// of them. Zero epochs is valid and returns an empty slice.
func (t *Trainer) Run(epochs int) ([]float64, error) {
	if epochs < 0 {
		return nil, fmt.Errorf("%w: epochs cannot be negative, got %d", nodenet.ErrConfig, epochs)
	}

	start := time.Now()
	errs := make([]float64, 0, epochs)
	for e := 0; e < epochs; e++ {
		mse, err := t.RunEpoch()
		if err != nil {
			return errs, err
		}
		errs = append(errs, mse)
	}

	if epochs > 0 {
		t.Network.logger.Info("Training finished.",
			"epochs", epochs,
			"final_mse", errs[len(errs)-1],
			"duration", time.Since(start))
	}
	return errs, nil
}

// Train runs epochs passes over dataset and returns the per-epoch mean
// squared error.
func (net *Network) Train(epochs int, dataset nodenet.Dataset, learningRate float64) ([]float64, error) {
	trainer, err := NewTrainer(net, dataset, learningRate)
	if err != nil {
		return nil, err
	}
	return trainer.Run(epochs)
}

// ComputeError feeds each input tuple forward without learning and returns
// the squared error against the matching desired output. All arguments are
// checked before the first pass.
func (net *Network) ComputeError(inputs [][]float64, outputs []float64) ([]float64, error) {
	if len(inputs) != len(outputs) {
		return nil, fmt.Errorf("%w: %d input tuples vs %d desired outputs", nodenet.ErrLengthMismatch, len(inputs), len(outputs))
	}
	width := len(net.layers[0])
	for i, in := range inputs {
		if len(in) != width {
			return nil, fmt.Errorf("%w: input tuple %d has %d values, network expects %d", nodenet.ErrLengthMismatch, i, len(in), width)
		}
	}

	actual := make([]float64, len(inputs))
	for i, in := range inputs {
		output, err := net.Feed(in)
		net.Flush()
		if err != nil {
			return nil, fmt.Errorf("input tuple %d: %w", i, err)
		}
		actual[i] = output
	}
	return nodenet.SquaredErrors(actual, outputs)
}
