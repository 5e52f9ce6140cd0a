package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// S4: choice pseudo state picks among guarded branches, falling back to
// else when none match.
func TestChoicePseudoStateBranches(t *testing.T) {
	m := NewModel("Machine")
	root := m.Root()

	s := root.State("S")
	neg := root.State("Neg")
	zero := root.State("Zero")
	pos := root.State("Pos")

	choice := root.PseudoState("C", PseudoChoice)
	s.To(choice).Guard(func(msg Message, inst Instance) bool { return msg.Name == "check" })

	choice.To(neg).Guard(func(msg Message, inst Instance) bool { return msg.Data.(int) < 0 })
	choice.To(pos).Guard(func(msg Message, inst Instance) bool { return msg.Data.(int) > 0 })
	choice.To(zero).Else()

	init := root.PseudoState("Initial", PseudoInitial)
	init.To(s)

	for _, tc := range []struct {
		n    int
		want string
	}{
		{-5, "Neg"},
		{0, "Zero"},
		{7, "Pos"},
	} {
		inst := NewInstance()
		require.NoError(t, Initialise(m, inst))
		consumed, err := Evaluate(m, NewMessage("check").WithData(tc.n), inst)
		require.NoError(t, err)
		require.True(t, consumed)
		require.Equal(t, tc.want, inst.GetCurrent(root.Regions()[0]).Name())
	}
}

func TestJunctionAmbiguousGuardsIsAnError(t *testing.T) {
	m := NewModel("Machine")
	root := m.Root()

	s := root.State("S")
	a := root.State("A")
	b := root.State("B")

	junction := root.PseudoState("J", PseudoJunction)
	s.To(junction).Guard(func(msg Message, inst Instance) bool { return true })
	junction.To(a).Guard(func(msg Message, inst Instance) bool { return true })
	junction.To(b).Guard(func(msg Message, inst Instance) bool { return true })

	init := root.PseudoState("Initial", PseudoInitial)
	init.To(s)

	inst := NewInstance()
	require.NoError(t, Initialise(m, inst))

	_, err := Evaluate(m, NewMessage("go"), inst)
	require.Error(t, err)
	var te *TransitionError
	require.ErrorAs(t, err, &te)
}
