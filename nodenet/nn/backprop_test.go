package nn

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baldhumanity/nodenet-go/nodenet"
)

func TestUpdateWeights_OutputNodeStep(t *testing.T) {
	var logs bytes.Buffer
	net, err := Build(1, 1, 0, 1, quietLogger(&logs))
	require.NoError(t, err)

	headID := net.Heads()[0]
	out, _ := net.Node(net.OutputNodes()[0])
	out.output = 0.5
	out.received[headID] = 0.3
	out.state = Activated

	deltas, err := net.computeDeltas(1)
	require.NoError(t, err)
	assert.InDelta(t, 0.125, deltas[out.ID()], 1e-15)

	require.NoError(t, net.UpdateWeights(1, 0.8))
	w, ok := out.Weight(headID)
	require.True(t, ok)
	assert.InDelta(t, 0.47, w, 1e-12)
}

func TestUpdateWeights_HiddenChain(t *testing.T) {
	var logs bytes.Buffer
	net, err := Build(1, 1, 1, 1, quietLogger(&logs))
	require.NoError(t, err)

	const (
		x       = 1.0
		desired = 1.0
		rate    = 0.5
	)
	o, err := net.Feed([]float64{x})
	require.NoError(t, err)

	hiddenID := net.Layers()[1][0]
	outID := net.OutputNodes()[0]
	h := nodenet.Sigmoid(1 + 0.5*x)

	deltaOut := o * (1 - o) * (desired - o)
	// The hidden delta uses the output node's weight from the forward pass.
	deltaHidden := h * (1 - h) * deltaOut * 0.5

	deltas, err := net.computeDeltas(desired)
	require.NoError(t, err)
	assert.InDelta(t, deltaOut, deltas[outID], 1e-15)
	assert.InDelta(t, deltaHidden, deltas[hiddenID], 1e-15)

	require.NoError(t, net.UpdateWeights(desired, rate))

	out, _ := net.Node(outID)
	hidden, _ := net.Node(hiddenID)
	want := map[string]float64{
		"output": 0.5 - rate*deltaOut*h,
		"hidden": 0.5 - rate*deltaHidden*x,
	}
	got := map[string]float64{
		"output": out.weights[hiddenID],
		"hidden": hidden.weights[net.Heads()[0]],
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("weights mismatch (-want +got):\n%s", diff)
	}

	// Inputs drop their pass state; the rest waits for Flush.
	head, _ := net.Node(net.Heads()[0])
	assert.Equal(t, Awaiting, head.State())
	assert.Equal(t, Activated, hidden.State())
	net.Flush()
	assert.Equal(t, Awaiting, hidden.State())
}

func TestUpdateWeights_OnlyTouchesWeights(t *testing.T) {
	var logs bytes.Buffer
	net, err := Build(2, 3, 2, 2, quietLogger(&logs))
	require.NoError(t, err)
	layersBefore := net.Layers()

	_, err = net.Feed([]float64{0.2, 0.9})
	require.NoError(t, err)
	before := weightSnapshot(net)
	require.NoError(t, net.UpdateWeights(0, 0.3))

	assert.Equal(t, layersBefore, net.Layers())
	after := weightSnapshot(net)
	changed := 0
	for id, weights := range after {
		node, _ := net.Node(id)
		if node.Type == Input {
			assert.Empty(t, weights)
			continue
		}
		assert.Equal(t, len(before[id]), len(weights))
		for pid, w := range weights {
			_, isParent := before[id][pid]
			assert.True(t, isParent)
			if w != before[id][pid] {
				changed++
			}
		}
	}
	assert.Positive(t, changed)
}

func TestUpdateWeights_RequiresForwardPass(t *testing.T) {
	t.Run("fresh network", func(t *testing.T) {
		var logs bytes.Buffer
		net, err := Build(2, 2, 1, 1, quietLogger(&logs))
		require.NoError(t, err)
		before := weightSnapshot(net)

		err = net.UpdateWeights(1, 0.8)
		assert.ErrorIs(t, err, nodenet.ErrInvariant)
		assert.ErrorContains(t, err, "no forward-pass state")
		assert.Equal(t, before, weightSnapshot(net))
	})

	t.Run("after flush", func(t *testing.T) {
		var logs bytes.Buffer
		net, err := Build(2, 2, 1, 1, quietLogger(&logs))
		require.NoError(t, err)
		_, err = net.Feed([]float64{1, 1})
		require.NoError(t, err)
		net.Flush()

		assert.ErrorIs(t, net.UpdateWeights(1, 0.8), nodenet.ErrInvariant)
	})

	t.Run("missing input snapshot leaves weights untouched", func(t *testing.T) {
		var logs bytes.Buffer
		net, err := Build(2, 2, 1, 1, quietLogger(&logs))
		require.NoError(t, err)
		_, err = net.Feed([]float64{1, 1})
		require.NoError(t, err)
		before := weightSnapshot(net)

		hidden, _ := net.Node(net.Layers()[1][1])
		delete(hidden.received, hidden.parents[0])

		err = net.UpdateWeights(1, 0.8)
		assert.ErrorIs(t, err, nodenet.ErrInvariant)
		assert.ErrorContains(t, err, "no recorded input")
		assert.Equal(t, before, weightSnapshot(net))
	})

	t.Run("missing child weight", func(t *testing.T) {
		var logs bytes.Buffer
		net, err := Build(1, 1, 1, 1, quietLogger(&logs))
		require.NoError(t, err)
		_, err = net.Feed([]float64{1})
		require.NoError(t, err)

		// Keep the output node's own checks passing but hide the edge the
		// hidden node looks up.
		out, _ := net.Node(net.OutputNodes()[0])
		hiddenID := net.Layers()[1][0]
		out.parents = nil
		delete(out.weights, hiddenID)

		err = net.UpdateWeights(1, 0.8)
		assert.ErrorIs(t, err, nodenet.ErrInvariant)
		assert.ErrorContains(t, err, "has no weight for parent")
	})
}
