package engine

import orderedmap "github.com/wk8/go-ordered-map/v2"

// NewModel constructs an empty model with the given root StateMachine
// name. The model starts dirty; Bootstrap (or the first Initialise/
// Evaluate call) compiles it.
func NewModel(name string, opts ...Option) *Model {
	m := &Model{separator: ".", defaultRegionName: "region", logger: noopLogger{}}
	for _, opt := range opts {
		opt(m)
	}
	m.root = newVertex(m, nil, name, vertexState)
	m.root.isRoot = true
	m.dirty = true
	return m
}

// ensureRegion returns v's sole auto-created region, creating it on
// first use (spec §4.1: "Attaching a vertex to a State auto-creates
// (once) a default Region on that state"). It panics if v already has
// more than one region, since the auto-region can only stand in for a
// single implicit region — a caller that wants orthogonal regions must
// create them explicitly via Region().
func (v *Vertex) ensureRegion() *Region {
	if v.kind != vertexState {
		panic(newModelError(v.Path(), "only a State may own regions"))
	}
	if v.regions == nil {
		v.regions = orderedmap.New[string, *Region]()
	}
	if v.regions.Len() == 0 {
		r := newRegion(v.model, v, v.model.defaultRegionName)
		v.regions.Set(r.id, r)
		return r
	}
	if v.regions.Len() > 1 {
		panic(newModelError(v.Path(), "state has multiple regions; use Region(name) to pick one explicitly"))
	}
	pair := v.regions.Oldest()
	return pair.Value
}

// Region explicitly creates and returns a new named child region on v,
// enabling orthogonal (multi-region) states. Calling it a second time
// with the same name still creates a distinct region: regions are
// identified by identity, not by name, matching spec §3's "ordered list
// of child Regions".
func (v *Vertex) Region(name string) *Region {
	if v.kind != vertexState {
		panic(newModelError(v.Path(), "only a State may own regions"))
	}
	if v.regions == nil {
		v.regions = orderedmap.New[string, *Region]()
	}
	r := newRegion(v.model, v, name)
	v.regions.Set(r.id, r)
	v.model.markDirty()
	return r
}

// Regions returns v's child regions in declared order.
func (v *Vertex) Regions() []*Region {
	if v.regions == nil {
		return nil
	}
	out := make([]*Region, 0, v.regions.Len())
	for pair := v.regions.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// State creates a simple/composite State as a child of v's auto-created
// default region.
func (v *Vertex) State(name string) *Vertex {
	return v.ensureRegion().State(name)
}

// FinalState creates a FinalState as a child of v's auto-created default
// region.
func (v *Vertex) FinalState(name string) *Vertex {
	return v.ensureRegion().FinalState(name)
}

// PseudoState creates a PseudoState of the given kind as a child of v's
// auto-created default region.
func (v *Vertex) PseudoState(name string, kind PseudoStateKind) *Vertex {
	return v.ensureRegion().PseudoState(name, kind)
}

// State creates and registers a State vertex in this region.
func (r *Region) State(name string) *Vertex {
	v := newVertex(r.model, r, name, vertexState)
	r.vertices.Set(v.id, v)
	r.model.markDirty()
	return v
}

// FinalState creates and registers a FinalState vertex in this region.
// Per spec §3 a final state has zero outbound transitions and zero
// child regions, enforced by To/Internal and ensureRegion respectively.
func (r *Region) FinalState(name string) *Vertex {
	v := newVertex(r.model, r, name, vertexFinal)
	r.vertices.Set(v.id, v)
	r.model.markDirty()
	return v
}

// PseudoState creates and registers a PseudoState vertex of the given
// kind in this region. Creating a second Initial/ShallowHistory/
// DeepHistory pseudo state in the same region panics immediately per
// spec §4.1 ("creating a second such pseudo state in the same region is
// an error"); every other well-formedness rule is deferred to Validate/
// Bootstrap since it can only be checked once the model is otherwise
// complete.
func (r *Region) PseudoState(name string, kind PseudoStateKind) *Vertex {
	v := newVertex(r.model, r, name, vertexPseudo)
	v.pseudoKind = kind
	if kind.isInitialFamily() {
		if r.initial != nil {
			panic(newModelError(r.Path(), "region already has an initial-family pseudo state %q", r.initial.name))
		}
		r.initial = v
	}
	r.vertices.Set(v.id, v)
	r.model.markDirty()
	return v
}

// Vertices returns the region's child vertices in declared order.
func (r *Region) Vertices() []*Vertex {
	out := make([]*Vertex, 0, r.vertices.Len())
	for pair := r.vertices.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// Entry appends an action to run, in insertion order, whenever this
// state is entered.
func (v *Vertex) Entry(a Action) *Vertex { return v.NamedEntry("", a) }

// NamedEntry appends a labeled entry action. The label is stored with
// the action; neither evaluation nor Dump reads it.
func (v *Vertex) NamedEntry(label string, a Action) *Vertex {
	v.entry = append(v.entry, namedAction{label: label, fn: a})
	v.model.markDirty()
	return v
}

// Exit appends an action to run, in insertion order, whenever this state
// is exited.
func (v *Vertex) Exit(a Action) *Vertex { return v.NamedExit("", a) }

// NamedExit appends a labeled exit action.
func (v *Vertex) NamedExit(label string, a Action) *Vertex {
	v.exit = append(v.exit, namedAction{label: label, fn: a})
	v.model.markDirty()
	return v
}

// To creates a Transition from v to target and appends it to v's
// outbound set. target may be nil only via Internal(); calling To on a
// FinalState is an error (spec §4.1).
func (v *Vertex) To(target *Vertex) *Transition {
	if v.kind == vertexFinal {
		panic(newModelError(v.Path(), "cannot create an outbound transition from a final state"))
	}
	t := &Transition{id: newID(), model: v.model, source: v, target: target}
	v.outbound.Set(t.id, t)
	v.model.markDirty()
	return t
}

// Internal creates an internal transition on v (no target; traversal
// runs only the effect actions).
func (v *Vertex) Internal() *Transition {
	return v.To(nil)
}

// Outbound returns v's outbound transitions in declared order.
func (v *Vertex) Outbound() []*Transition {
	out := make([]*Transition, 0, v.outbound.Len())
	for pair := v.outbound.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}
