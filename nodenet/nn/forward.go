package nn

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/baldhumanity/nodenet-go/nodenet"
)

// Deliver hands a value labeled with its source to a node. When the value
// completes the node's fan-in the node activates and pushes its output to
// every child before Deliver returns, so a single call can cascade through
// the rest of the graph depth-first.
//
// A delivery from an id that is not one of the node's parents is logged and
// dropped; it does not count towards readiness and is not an error.
func (net *Network) Deliver(nodeID, sourceID uuid.UUID, value float64) (Activation, error) {
	node, err := net.mustNode(nodeID)
	if err != nil {
		return Activation{}, err
	}

	act := Activation{Node: node.id, Type: node.Type}
	if !node.isParent(sourceID) {
		net.logger.Warn("Unrecognised source sent a value, dropping it.",
			"node", node.id,
			"type", node.Type.String(),
			"source", sourceID,
			"value", value)
		return act, nil
	}

	if !node.accept(sourceID, value) {
		return act, nil
	}

	result, err := node.activate()
	if err != nil {
		return act, err
	}
	act.Value = result
	act.Fired = true
	if net.hook != nil {
		net.hook(act)
	}

	if len(node.children) == 0 {
		net.publish(result)
		return act, nil
	}
	for _, childID := range node.children {
		if _, err := net.Deliver(childID, node.id, result); err != nil {
			return act, err
		}
	}
	return act, nil
}

// publish records an output-layer activation. The scalar output is written
// once, when the last output node of the pass has fired.
func (net *Network) publish(value float64) {
	net.firedOutputs++
	if net.firedOutputs < len(net.layers[len(net.layers)-1]) {
		return
	}
	net.firedOutputs = 0
	net.output = value
	net.passes++
}

// Feed runs one forward pass: it delivers inputs[i] to the i-th input node
// and returns the network output. Node snapshots stay populated for
// UpdateWeights until Flush is called.
func (net *Network) Feed(inputs []float64) (float64, error) {
	heads := net.layers[0]
	if len(inputs) != len(heads) {
		return 0, fmt.Errorf("%w: got %d inputs for %d input nodes", nodenet.ErrLengthMismatch, len(inputs), len(heads))
	}

	// Output-layer progress left behind by an aborted pass must not count.
	net.firedOutputs = 0
	before := net.passes
	for i, head := range heads {
		if _, err := net.Deliver(head, net.id, inputs[i]); err != nil {
			return 0, fmt.Errorf("forward pass failed at input %d: %w", i, err)
		}
	}
	if net.passes != before+1 {
		return 0, fmt.Errorf("%w: forward pass completed %d times, expected once", nodenet.ErrInvariant, net.passes-before)
	}
	return net.output, nil
}

// Flush clears every node's buffers and returns it to Awaiting. Calling it on
// an already flushed network changes nothing.
func (net *Network) Flush() {
	for _, layer := range net.layers {
		for _, id := range layer {
			net.nodes[id].flush()
		}
	}
	net.firedOutputs = 0
}
