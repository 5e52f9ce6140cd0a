package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// S2: composite with entry/exit ordering.
func TestCompositeEntryExitOrdering(t *testing.T) {
	var log []string
	mark := func(label string) Action {
		return func(msg Message, inst Instance, historyFlag bool) {
			log = append(log, label)
		}
	}

	m := NewModel("Machine")
	root := m.Root()
	outer := root.State("Outer")
	outer.NamedEntry("enter-outer", mark("enter Outer"))
	outer.NamedExit("exit-outer", mark("exit Outer"))

	inner1 := outer.State("Inner1")
	inner1.NamedEntry("enter-inner1", mark("enter Inner1"))
	inner1.NamedExit("exit-inner1", mark("exit Inner1"))

	inner2 := outer.State("Inner2")
	inner2.NamedEntry("enter-inner2", mark("enter Inner2"))
	inner2.NamedExit("exit-inner2", mark("exit Inner2"))

	innerInit := outer.PseudoState("InnerInitial", PseudoInitial)
	innerInit.To(inner1)
	inner1.To(inner2).Guard(func(msg Message, inst Instance) bool { return msg.Name == "next" })

	sibling := root.State("Sibling")
	sibling.NamedEntry("enter-sibling", mark("enter Sibling"))
	inner2.To(sibling).Guard(func(msg Message, inst Instance) bool { return msg.Name == "out" })

	rootInit := root.PseudoState("RootInitial", PseudoInitial)
	rootInit.To(outer)

	inst := NewInstance()
	require.NoError(t, Initialise(m, inst))
	require.Equal(t, []string{"enter Outer", "enter Inner1"}, log)

	log = nil
	consumed, err := Evaluate(m, NewMessage("next"), inst)
	require.NoError(t, err)
	require.True(t, consumed)
	require.Equal(t, []string{"exit Inner1", "enter Inner2"}, log)

	log = nil
	consumed, err = Evaluate(m, NewMessage("out"), inst)
	require.NoError(t, err)
	require.True(t, consumed)
	require.Equal(t, []string{"exit Inner2", "exit Outer", "enter Sibling"}, log)
}
