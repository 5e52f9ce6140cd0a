package engine

// transitionKind is the derived classification of a Transition (spec
// §3/§4.2). It is never stored by the builder; Bootstrap computes and
// caches it once per transition.
type transitionKind int

const (
	transInternal transitionKind = iota
	transLocal
	transExternal
)

func (k transitionKind) String() string {
	switch k {
	case transInternal:
		return "internal"
	case transLocal:
		return "local"
	default:
		return "external"
	}
}

// Transition is an edge from a source Vertex to an optional target
// Vertex, guarded and with an ordered list of effect actions.
type Transition struct {
	id      string
	model   *Model
	source  *Vertex
	target  *Vertex
	guard   Guard
	isElse  bool
	effects []namedAction

	// compiled is filled in by Bootstrap.
	compiled *compiledTransition
}

// compiledTransition is the precomputed, instance-independent step list
// Bootstrap attaches to every Transition (spec §4.3).
type compiledTransition struct {
	kind transitionKind
	// exitBoundary is the single State to call leaveState on when firing
	// (nil when there is nothing to exit). leaveState recurses through
	// whatever is actually active beneath it at evaluation time, so only
	// this one static boundary vertex needs precomputing.
	exitBoundary *Vertex
	// entryPath is the ordered, top-down list of States/PseudoStates to
	// enter, ending in the transition's target. It is empty for internal
	// transitions (nil target) and for a local transition whose target
	// encloses its source; in that case nothing is entered.
	entryPath []*Vertex
}

// Guard sets the guard condition for this transition.
func (t *Transition) Guard(g Guard) *Transition {
	t.guard = g
	t.model.markDirty()
	return t
}

// When is an alias for Guard, matching spec §4.1's naming.
func (t *Transition) When(g Guard) *Transition { return t.Guard(g) }

// Effect appends an effect action, run in call order during traversal.
func (t *Transition) Effect(a Action) *Transition {
	return t.NamedEffect("", a)
}

// NamedEffect appends a labeled effect action. The label is stored with
// the action; neither evaluation nor Dump reads it.
func (t *Transition) NamedEffect(label string, a Action) *Transition {
	t.effects = append(t.effects, namedAction{label: label, fn: a})
	t.model.markDirty()
	return t
}

// Else marks this transition as the fallback taken when no other
// outbound transition at the same source matches (spec §4.1, §4.4).
func (t *Transition) Else() *Transition {
	t.isElse = true
	t.model.markDirty()
	return t
}

// Source returns the transition's source vertex.
func (t *Transition) Source() *Vertex { return t.source }

// Target returns the transition's target vertex, or nil for an internal
// transition.
func (t *Transition) Target() *Vertex { return t.target }

// Kind classifies the transition per spec §3/§4.2. Valid only after
// Bootstrap has run; until then it returns "uncompiled"
// (classification requires the final model shape).
func (t *Transition) Kind() string {
	if t.compiled == nil {
		return "uncompiled"
	}
	return t.compiled.kind.String()
}

func (t *Transition) runEffects(ev *evalCtx) {
	for _, na := range t.effects {
		ev.runAction(t.source, na.fn, false)
	}
}
