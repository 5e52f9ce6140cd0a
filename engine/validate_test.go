package engine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuilderRejectsDuplicateInitialFamily(t *testing.T) {
	m := NewModel("M")
	root := m.Root()
	region := root.ensureRegion()
	region.PseudoState("Init1", PseudoInitial)

	require.Panics(t, func() {
		region.PseudoState("Init2", PseudoInitial)
	})
}

func TestBuilderRejectsOutboundFromFinalState(t *testing.T) {
	m := NewModel("M")
	root := m.Root()
	fs := root.FinalState("Done")

	require.Panics(t, func() {
		fs.To(root.State("Unreachable"))
	})
}

func TestValidateAggregatesMultipleViolations(t *testing.T) {
	m := NewModel("M")
	root := m.Root()
	term := root.PseudoState("Term", PseudoTerminate)
	term.To(root.State("ShouldNotHaveOutbound"))

	initOnly := root.PseudoState("Lonely", PseudoInitial)
	_ = initOnly // zero outbound transitions: a violation Validate should catch

	errs := m.Validate()
	require.False(t, errs.Empty())
	require.Len(t, errs.Errors, 2)
}

func TestValidatePassesWellFormedModel(t *testing.T) {
	m := NewModel("M")
	root := m.Root()
	a := root.State("A")
	init := root.PseudoState("Initial", PseudoInitial)
	init.To(a)

	errs := m.Validate()
	require.True(t, errs.Empty())
}
