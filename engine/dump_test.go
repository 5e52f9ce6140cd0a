package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDumpRendersRegionsAndTransitions(t *testing.T) {
	m := NewModel("M")
	root := m.Root()
	a := root.State("A")
	b := root.State("B")
	init := root.PseudoState("Initial", PseudoInitial)
	init.To(a)
	a.To(b).Guard(func(msg Message, inst Instance) bool { return true })

	require.NoError(t, Bootstrap(m))

	out, err := Dump(m)
	require.NoError(t, err)

	var doc dumpState
	require.NoError(t, yaml.Unmarshal(out, &doc))
	require.Equal(t, "M", doc.Name)
	require.Len(t, doc.Regions, 1)
	require.Len(t, doc.Regions[0].States, 3) // A, B, Initial
}
