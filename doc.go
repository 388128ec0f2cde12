// Package nodenet provides a small feed-forward neural network in which every
// neuron is an explicit graph node.
//
// Each node owns its weights, buffers the values its parents push to it and
// fires once it has heard from all of them, pushing its own activation on to
// its children. Values injected at the input layer therefore cascade to the
// output layer without a separate scheduler. Training uses backpropagation
// over the same graph, one example at a time.
//
// Basic usage:
//
//	// Load configuration
//	config, err := nodenet.LoadConfig("path/to/config")
//	if err != nil {
//		log.Fatalf("Error loading config: %v", err)
//	}
//
//	// Build the network
//	net, err := nn.NewNetwork(&config.Network)
//	if err != nil {
//		log.Fatalf("Error building network: %v", err)
//	}
//
//	// Train it and inspect the per-epoch mean squared error
//	history, err := net.Train(config.Training.Epochs, nodenet.XORDataset(), config.Training.LearningRate)
//	if err != nil {
//		log.Fatalf("Error training network: %v", err)
//	}
//	fmt.Println(history[len(history)-1])
package nodenet
