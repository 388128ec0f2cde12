package nn

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/baldhumanity/nodenet-go/nodenet"
)

// UpdateWeights runs one backpropagation step for the example that was just
// fed forward. It must be called after Feed and before Flush.
//
// Deltas are computed one layer at a time from the output layer back to the
// first hidden layer, each layer reading only the deltas of the layer right
// after it and the forward edge weights as they were during the pass. The
// weight updates are applied once every delta is known, so a failed
// invariant check leaves the network untouched.
func (net *Network) UpdateWeights(desiredOutput, learningRate float64) error {
	deltas, err := net.computeDeltas(desiredOutput)
	if err != nil {
		return err
	}

	for l := len(net.layers) - 1; l > 0; l-- {
		for _, id := range net.layers[l] {
			node := net.nodes[id]
			delta := deltas[id]
			for _, pid := range node.parents {
				node.weights[pid] -= learningRate * delta * node.received[pid]
			}
		}
	}

	// Inputs carry no learned parameters; they only drop their pass state.
	for _, id := range net.layers[0] {
		net.nodes[id].flush()
	}
	return nil
}

// computeDeltas returns the delta of every hidden and output node without
// mutating anything.
func (net *Network) computeDeltas(desiredOutput float64) (map[uuid.UUID]float64, error) {
	deltas := make(map[uuid.UUID]float64, len(net.nodes))

	outputLayer := len(net.layers) - 1
	var previousDeltas map[uuid.UUID]float64
	for l := outputLayer; l > 0; l-- {
		layerDeltas := make(map[uuid.UUID]float64, len(net.layers[l]))
		for _, id := range net.layers[l] {
			node := net.nodes[id]
			if err := node.checkForwardState(); err != nil {
				return nil, err
			}

			var delta float64
			if l == outputLayer {
				delta = nodenet.SigmoidSlope(node.output) * (desiredOutput - node.output)
			} else {
				downstream, err := net.downstreamError(node, previousDeltas)
				if err != nil {
					return nil, err
				}
				delta = nodenet.SigmoidSlope(node.output) * downstream
			}
			layerDeltas[id] = delta
			deltas[id] = delta
		}
		previousDeltas = layerDeltas
	}
	return deltas, nil
}

// downstreamError sums delta[child] * weight, where weight is the child's
// weight for node.
func (net *Network) downstreamError(node *Node, childDeltas map[uuid.UUID]float64) (float64, error) {
	sum := 0.0
	for _, childID := range node.children {
		child, err := net.mustNode(childID)
		if err != nil {
			return 0, err
		}
		w, ok := child.weights[node.id]
		if !ok {
			return 0, fmt.Errorf("%w: %s node %s has no weight for parent %s", nodenet.ErrInvariant, child.Type, child.id, node.id)
		}
		delta, ok := childDeltas[childID]
		if !ok {
			return 0, fmt.Errorf("%w: no delta computed for child %s of node %s", nodenet.ErrInvariant, childID, node.id)
		}
		sum += delta * w
	}
	return sum, nil
}

// checkForwardState verifies that the node fired in the current pass and
// still holds the inputs and weights the update rule needs.
func (n *Node) checkForwardState() error {
	if n.state != Activated {
		return fmt.Errorf("%w: %s node %s has no forward-pass state (state %s)", nodenet.ErrInvariant, n.Type, n.id, n.state)
	}
	for _, pid := range n.parents {
		if _, ok := n.received[pid]; !ok {
			return fmt.Errorf("%w: %s node %s has no recorded input from parent %s", nodenet.ErrInvariant, n.Type, n.id, pid)
		}
		if _, ok := n.weights[pid]; !ok {
			return fmt.Errorf("%w: %s node %s has no weight for parent %s", nodenet.ErrInvariant, n.Type, n.id, pid)
		}
	}
	return nil
}
