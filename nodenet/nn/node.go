package nn

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/baldhumanity/nodenet-go/nodenet"
)

// NodeType distinguishes the layer a node belongs to.
type NodeType int

const (
	// Input nodes pass an externally supplied value through unchanged.
	Input NodeType = iota
	// Hidden nodes sit between the input and output layers.
	Hidden
	// Output nodes publish their activation to the Network.
	Output
)

func (t NodeType) String() string {
	switch t {
	case Input:
		return "input"
	case Hidden:
		return "hidden"
	case Output:
		return "output"
	default:
		return fmt.Sprintf("NodeType(%d)", int(t))
	}
}

// State is a node's position in the forward-pass lifecycle.
type State int

const (
	// Awaiting means the node is still collecting inputs from its parents.
	Awaiting State = iota
	// Ready means every required input has arrived and activation is in progress.
	Ready
	// Activated means the node fired in the current pass and holds a snapshot
	// of the inputs that produced its output.
	Activated
)

func (s State) String() string {
	switch s {
	case Awaiting:
		return "awaiting"
	case Ready:
		return "ready"
	case Activated:
		return "activated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Activation describes the outcome of a single delivery.
type Activation struct {
	Node  uuid.UUID
	Type  NodeType
	Value float64
	// Fired is false when the delivery was buffered (or dropped) without
	// completing the node's fan-in.
	Fired bool
}

// Node is a single neuron. It references its parents and children by id
// only; the owning Network resolves ids to nodes.
type Node struct {
	id       uuid.UUID
	Type     NodeType
	Bias     float64
	parents  []uuid.UUID // Ordered; weighted sums follow this order
	weights  map[uuid.UUID]float64
	children []uuid.UUID

	// pending buffers inputs until the fan-in is complete. It is emptied by
	// every activation.
	pending map[uuid.UUID]float64
	// received is the input set that produced output. Backpropagation reads
	// it; Flush clears it.
	received map[uuid.UUID]float64
	output   float64
	state    State
}

func newNode(nodeType NodeType, parents []uuid.UUID, initialWeight, bias float64) *Node {
	n := &Node{
		id:       uuid.New(),
		Type:     nodeType,
		parents:  parents,
		weights:  make(map[uuid.UUID]float64, len(parents)),
		pending:  make(map[uuid.UUID]float64, len(parents)),
		received: make(map[uuid.UUID]float64, len(parents)),
	}
	if nodeType != Input {
		n.Bias = bias
		for _, pid := range parents {
			n.weights[pid] = initialWeight
		}
	}
	return n
}

// ID returns the node's immutable identifier.
func (n *Node) ID() uuid.UUID {
	return n.id
}

// Parents returns a copy of the parent ids in declaration order.
func (n *Node) Parents() []uuid.UUID {
	return append([]uuid.UUID(nil), n.parents...)
}

// Children returns a copy of the child ids in declaration order.
func (n *Node) Children() []uuid.UUID {
	return append([]uuid.UUID(nil), n.children...)
}

// Weight returns the edge weight for a parent.
func (n *Node) Weight(parent uuid.UUID) (float64, bool) {
	w, ok := n.weights[parent]
	return w, ok
}

// Weights returns a copy of the weight map.
func (n *Node) Weights() map[uuid.UUID]float64 {
	out := make(map[uuid.UUID]float64, len(n.weights))
	for k, v := range n.weights {
		out[k] = v
	}
	return out
}

// Output is the value cached by the last activation.
func (n *Node) Output() float64 {
	return n.output
}

// State returns the node's lifecycle state.
func (n *Node) State() State {
	return n.state
}

// Pending is the number of inputs buffered towards the next activation.
func (n *Node) Pending() int {
	return len(n.pending)
}

// RequiredInputs is the fan-in that triggers activation.
func (n *Node) RequiredInputs() int {
	return len(n.parents)
}

func (n *Node) isParent(id uuid.UUID) bool {
	for _, pid := range n.parents {
		if pid == id {
			return true
		}
	}
	return false
}

// accept buffers a value from a parent and reports whether the node is now
// ready to fire. A node that already fired in the previous pass starts a
// new one.
func (n *Node) accept(source uuid.UUID, value float64) bool {
	if n.state == Activated {
		n.state = Awaiting
		clear(n.received)
	}
	n.pending[source] = value
	if len(n.pending) == n.RequiredInputs() {
		n.state = Ready
		return true
	}
	return false
}

// activate computes the node's output from the complete pending buffer,
// moves the buffer into the received snapshot and caches the result.
func (n *Node) activate() (float64, error) {
	if n.state != Ready {
		return 0, fmt.Errorf("%w: node %s activated in state %s", nodenet.ErrInvariant, n.id, n.state)
	}

	var result float64
	if n.Type == Input {
		// Exactly one parent: the network itself.
		result = nodenet.Identity(n.pending[n.parents[0]])
	} else {
		sum := n.Bias
		for _, pid := range n.parents {
			w, ok := n.weights[pid]
			if !ok {
				return 0, fmt.Errorf("%w: %s node %s has no weight for parent %s", nodenet.ErrInvariant, n.Type, n.id, pid)
			}
			sum += w * n.pending[pid]
		}
		result = nodenet.Sigmoid(sum)
	}

	clear(n.received)
	for k, v := range n.pending {
		n.received[k] = v
	}
	clear(n.pending)
	n.output = result
	n.state = Activated
	return result, nil
}

// flush returns the node to Awaiting with both buffers empty.
func (n *Node) flush() {
	clear(n.pending)
	clear(n.received)
	n.state = Awaiting
}
