package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// S3: deep history restores the exact nested leaf reached before exit;
// shallow history restores only the direct child, then follows that
// child's own initial pseudo state.
func TestDeepHistoryRestoresNestedLeaf(t *testing.T) {
	m := NewModel("Machine")
	root := m.Root()

	a := root.State("A")
	adh := a.PseudoState("ADH", PseudoDeepHistory)

	b := a.State("B")
	bInit := b.PseudoState("BInit", PseudoInitial)
	b1 := b.State("B1")
	b2 := b.State("B2")
	bInit.To(b1)
	b1.To(b2).Guard(func(msg Message, inst Instance) bool { return msg.Name == "advance" })
	adh.To(b)

	x := root.State("X")
	b2.To(x).Guard(func(msg Message, inst Instance) bool { return msg.Name == "leave" })
	x.To(adh).Guard(func(msg Message, inst Instance) bool { return msg.Name == "back" })

	rootInit := root.PseudoState("RootInitial", PseudoInitial)
	rootInit.To(a)

	inst := NewInstance()
	require.NoError(t, Initialise(m, inst))

	bRegion := b.Regions()[0]
	require.Equal(t, "B1", inst.GetCurrent(bRegion).Name())

	consumed, err := Evaluate(m, NewMessage("advance"), inst)
	require.NoError(t, err)
	require.True(t, consumed)
	require.Equal(t, "B2", inst.GetCurrent(bRegion).Name())

	consumed, err = Evaluate(m, NewMessage("leave"), inst)
	require.NoError(t, err)
	require.True(t, consumed)
	require.Equal(t, "X", inst.GetCurrent(root.Regions()[0]).Name())
	require.Equal(t, "B2", inst.GetCurrent(bRegion).Name(), "history must not be cleared while A is inactive")

	consumed, err = Evaluate(m, NewMessage("back"), inst)
	require.NoError(t, err)
	require.True(t, consumed)
	require.Equal(t, "A", inst.GetCurrent(root.Regions()[0]).Name())
	require.Equal(t, "B", inst.GetCurrent(a.Regions()[0]).Name())
	require.Equal(t, "B2", inst.GetCurrent(bRegion).Name())
}

// Shallow history restores B as A's direct child but re-enters B via
// its own plain initial pseudo state, landing on B1 regardless of what
// was active in B when A was last exited.
func TestShallowHistoryRestoresOnlyDirectChild(t *testing.T) {
	m := NewModel("Machine")
	root := m.Root()

	a := root.State("A")
	ash := a.PseudoState("ASH", PseudoShallowHistory)

	b := a.State("B")
	bInit := b.PseudoState("BInit", PseudoInitial)
	b1 := b.State("B1")
	b2 := b.State("B2")
	bInit.To(b1)
	b1.To(b2).Guard(func(msg Message, inst Instance) bool { return msg.Name == "advance" })
	ash.To(b)

	x := root.State("X")
	b2.To(x).Guard(func(msg Message, inst Instance) bool { return msg.Name == "leave" })
	x.To(ash).Guard(func(msg Message, inst Instance) bool { return msg.Name == "back" })

	rootInit := root.PseudoState("RootInitial", PseudoInitial)
	rootInit.To(a)

	inst := NewInstance()
	require.NoError(t, Initialise(m, inst))

	_, err := Evaluate(m, NewMessage("advance"), inst)
	require.NoError(t, err)
	_, err = Evaluate(m, NewMessage("leave"), inst)
	require.NoError(t, err)

	consumed, err := Evaluate(m, NewMessage("back"), inst)
	require.NoError(t, err)
	require.True(t, consumed)
	require.Equal(t, "B1", inst.GetCurrent(b.Regions()[0]).Name())
}
