package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// S5: orthogonal acceptance order. Both regions have a transition
// triggered by the same message; the first region's offered chance
// consumes it, the second region never sees it in this call.
func TestOrthogonalFirstRegionWins(t *testing.T) {
	m := NewModel("Machine")
	root := m.Root()

	orth := root.State("Orth")
	r1 := orth.Region("R1")
	r2 := orth.Region("R2")

	r1A := r1.State("R1A")
	r1B := r1.State("R1B")
	r1Init := r1.PseudoState("R1Init", PseudoInitial)
	r1Init.To(r1A)
	r1A.To(r1B).Guard(func(msg Message, inst Instance) bool { return msg.Name == "go" })

	r2A := r2.State("R2A")
	r2B := r2.State("R2B")
	r2Init := r2.PseudoState("R2Init", PseudoInitial)
	r2Init.To(r2A)
	r2A.To(r2B).Guard(func(msg Message, inst Instance) bool { return msg.Name == "go" })

	rootInit := root.PseudoState("RootInit", PseudoInitial)
	rootInit.To(orth)

	inst := NewInstance()
	require.NoError(t, Initialise(m, inst))
	require.Equal(t, "R1A", inst.GetCurrent(r1).Name())
	require.Equal(t, "R2A", inst.GetCurrent(r2).Name())

	consumed, err := Evaluate(m, NewMessage("go"), inst)
	require.NoError(t, err)
	require.True(t, consumed)
	require.Equal(t, "R1B", inst.GetCurrent(r1).Name(), "R1 fires")
	require.Equal(t, "R2A", inst.GetCurrent(r2).Name(), "R2 must not see the message in this call")
}
