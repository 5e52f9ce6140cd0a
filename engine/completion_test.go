package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// A composite state completing its sole region fires its own completion
// transition immediately (spec §4.5, invariant 7).
func TestCompositeCompletionFiresOwnerTransition(t *testing.T) {
	m := NewModel("Machine")
	root := m.Root()

	outer := root.State("Outer")
	work := outer.State("Work")
	done := outer.FinalState("Done")
	innerInit := outer.PseudoState("InnerInitial", PseudoInitial)
	innerInit.To(work)
	work.To(done).Guard(func(msg Message, inst Instance) bool { return msg.Name == "finish" })

	after := root.State("After")
	outer.To(after).Guard(func(msg Message, inst Instance) bool { return msg.IsCompletion() })

	rootInit := root.PseudoState("RootInitial", PseudoInitial)
	rootInit.To(outer)

	inst := NewInstance()
	require.NoError(t, Initialise(m, inst))
	require.Equal(t, "Work", inst.GetCurrent(work.region).Name())

	consumed, err := Evaluate(m, NewMessage("finish"), inst)
	require.NoError(t, err)
	require.True(t, consumed)
	require.Equal(t, "After", inst.GetCurrent(outer.region).Name())
}

// An orthogonal state only completes, and only then fires its own
// completion transition, once every one of its regions is complete
// (spec §4.5: "a region is complete... an orthogonal state is complete
// iff all of its regions are complete").
func TestOrthogonalCompletionWaitsForAllRegions(t *testing.T) {
	m := NewModel("Machine")
	root := m.Root()

	orth := root.State("Orth")
	r1 := orth.Region("R1")
	r2 := orth.Region("R2")

	r1Work := r1.State("R1Work")
	r1Done := r1.FinalState("R1Done")
	r1Init := r1.PseudoState("R1Init", PseudoInitial)
	r1Init.To(r1Work)
	r1Work.To(r1Done).Guard(func(msg Message, inst Instance) bool { return msg.Name == "go1" })

	r2Work := r2.State("R2Work")
	r2Done := r2.FinalState("R2Done")
	r2Init := r2.PseudoState("R2Init", PseudoInitial)
	r2Init.To(r2Work)
	r2Work.To(r2Done).Guard(func(msg Message, inst Instance) bool { return msg.Name == "go2" })

	after := root.State("After")
	orth.To(after).Guard(func(msg Message, inst Instance) bool { return msg.IsCompletion() })

	rootInit := root.PseudoState("RootInitial", PseudoInitial)
	rootInit.To(orth)

	inst := NewInstance()
	require.NoError(t, Initialise(m, inst))

	consumed, err := Evaluate(m, NewMessage("go1"), inst)
	require.NoError(t, err)
	require.True(t, consumed)
	require.Equal(t, "R1Done", inst.GetCurrent(r1).Name())
	require.Equal(t, "R2Work", inst.GetCurrent(r2).Name())
	require.Equal(t, "Orth", inst.GetCurrent(orth.region).Name(), "must not complete with only one region done")

	consumed, err = Evaluate(m, NewMessage("go2"), inst)
	require.NoError(t, err)
	require.True(t, consumed)
	require.Equal(t, "R2Done", inst.GetCurrent(r2).Name())
	require.Equal(t, "After", inst.GetCurrent(orth.region).Name(), "completes once every region is done")
}
