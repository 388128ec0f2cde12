package nn

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/baldhumanity/nodenet-go/nodenet"
)

// Network owns every Node of a layered, fully connected feed-forward graph.
// Nodes are addressed by id through the registry; layers are fixed at build
// time and listed from the input layer to the output layer.
type Network struct {
	id     uuid.UUID
	nodes  map[uuid.UUID]*Node
	layers [][]uuid.UUID

	output       float64
	firedOutputs int
	passes       int

	logger *slog.Logger
	hook   func(Activation)
}

// Option configures a Network at construction time.
type Option func(*Network)

// WithLogger sets the logger used for diagnostics. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(n *Network) {
		n.logger = logger
	}
}

// WithActivationHook registers a function called for every node activation,
// in cascade order.
func WithActivationHook(hook func(Activation)) Option {
	return func(n *Network) {
		n.hook = hook
	}
}

// Build creates a network with the given dimensions, every weight set to
// nodenet.DefaultInitialWeight and every bias to nodenet.DefaultBias.
func Build(inputCount, hiddenWidth, hiddenDepth, outputCount int, opts ...Option) (*Network, error) {
	return NewNetwork(&nodenet.NetworkConfig{
		NumInputs:     inputCount,
		HiddenWidth:   hiddenWidth,
		HiddenDepth:   hiddenDepth,
		NumOutputs:    outputCount,
		InitialWeight: nodenet.DefaultInitialWeight,
		Bias:          nodenet.DefaultBias,
	}, opts...)
}

// NewNetwork builds the layered graph described by config: an input layer,
// HiddenDepth hidden layers of HiddenWidth nodes and an output layer. Each
// node takes every node of the previous layer as a parent.
func NewNetwork(config *nodenet.NetworkConfig, opts ...Option) (*Network, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("cannot build network: %w", err)
	}

	net := &Network{
		id:     uuid.New(),
		nodes:  make(map[uuid.UUID]*Node, config.NodeCount()),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(net)
	}

	// Input nodes have a single parent: the network, which is the source of
	// every externally injected value.
	inputs := make([]uuid.UUID, config.NumInputs)
	for i := range inputs {
		node := newNode(Input, []uuid.UUID{net.id}, 0, 0)
		net.nodes[node.id] = node
		inputs[i] = node.id
	}
	net.layers = append(net.layers, inputs)

	for d := 0; d < config.HiddenDepth; d++ {
		net.addLayer(Hidden, config.HiddenWidth, config.InitialWeight, config.Bias)
	}
	net.addLayer(Output, config.NumOutputs, config.InitialWeight, config.Bias)

	net.logger.Debug("Network built.",
		"network", net.id,
		"nodes", len(net.nodes),
		"layers", len(net.layers))
	return net, nil
}

// addLayer appends a layer of width nodes fully connected to the current
// last layer and registers the new nodes as children of that layer.
func (net *Network) addLayer(nodeType NodeType, width int, initialWeight, bias float64) {
	parentLayer := net.layers[len(net.layers)-1]
	layer := make([]uuid.UUID, width)
	for i := range layer {
		parents := append([]uuid.UUID(nil), parentLayer...)
		node := newNode(nodeType, parents, initialWeight, bias)
		net.nodes[node.id] = node
		layer[i] = node.id
		if nodeType == Output {
			net.logger.Debug("Node built without children, its activation goes to the network output.",
				"node", node.id,
				"type", nodeType.String(),
				"parents", len(parents))
		}
	}
	for _, pid := range parentLayer {
		net.nodes[pid].children = append([]uuid.UUID(nil), layer...)
	}
	net.layers = append(net.layers, layer)
}

// ID returns the network's identifier. It is the source id for values
// delivered to input nodes.
func (net *Network) ID() uuid.UUID {
	return net.id
}

// Node resolves an id through the registry.
func (net *Network) Node(id uuid.UUID) (*Node, bool) {
	node, ok := net.nodes[id]
	return node, ok
}

// NodeCount returns the number of nodes owned by the network.
func (net *Network) NodeCount() int {
	return len(net.nodes)
}

// Heads returns the input-layer node ids in order.
func (net *Network) Heads() []uuid.UUID {
	return append([]uuid.UUID(nil), net.layers[0]...)
}

// OutputNodes returns the output-layer node ids in order.
func (net *Network) OutputNodes() []uuid.UUID {
	return append([]uuid.UUID(nil), net.layers[len(net.layers)-1]...)
}

// Layers returns a copy of the layer lists, input layer first.
func (net *Network) Layers() [][]uuid.UUID {
	layers := make([][]uuid.UUID, len(net.layers))
	for i, layer := range net.layers {
		layers[i] = append([]uuid.UUID(nil), layer...)
	}
	return layers
}

// Output is the scalar network output published by the last completed pass.
func (net *Network) Output() float64 {
	return net.output
}

// Outputs returns the cached value of every output node in layer order.
func (net *Network) Outputs() []float64 {
	outputs := make([]float64, 0, len(net.layers[len(net.layers)-1]))
	for _, id := range net.layers[len(net.layers)-1] {
		outputs = append(outputs, net.nodes[id].output)
	}
	return outputs
}

// Passes counts completed forward passes.
func (net *Network) Passes() int {
	return net.passes
}

// mustNode resolves an id that the topology guarantees to exist.
func (net *Network) mustNode(id uuid.UUID) (*Node, error) {
	node, ok := net.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: node %s is not registered in network %s", nodenet.ErrInvariant, id, net.id)
	}
	return node, nil
}
