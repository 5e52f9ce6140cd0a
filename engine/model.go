package engine

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// PseudoStateKind enumerates the pseudo state kinds a runtime vertex can
// carry (spec glossary: "a transient vertex that controls traversal").
type PseudoStateKind int

const (
	// PseudoInitial is the default entry point of a region.
	PseudoInitial PseudoStateKind = iota
	// PseudoShallowHistory restores a region's direct child on re-entry,
	// then follows that child's own initial pseudo state.
	PseudoShallowHistory
	// PseudoDeepHistory restores a region's full active leaf path on
	// re-entry, propagating history through every nested region.
	PseudoDeepHistory
	// PseudoChoice evaluates all outbound guards and picks the first of
	// the matches in declared order (or the else transition if none match).
	PseudoChoice
	// PseudoJunction requires exactly one matching outbound guard, or an
	// else transition; more than one match is ill-formed.
	PseudoJunction
	// PseudoTerminate has no outbound transitions; entering it marks the
	// owning instance terminated.
	PseudoTerminate
)

func (k PseudoStateKind) String() string {
	switch k {
	case PseudoInitial:
		return "initial"
	case PseudoShallowHistory:
		return "shallow-history"
	case PseudoDeepHistory:
		return "deep-history"
	case PseudoChoice:
		return "choice"
	case PseudoJunction:
		return "junction"
	case PseudoTerminate:
		return "terminate"
	default:
		return "unknown"
	}
}

func (k PseudoStateKind) isInitialFamily() bool {
	return k == PseudoInitial || k == PseudoShallowHistory || k == PseudoDeepHistory
}

type vertexKind int

const (
	vertexState vertexKind = iota
	vertexFinal
	vertexPseudo
)

type namedAction struct {
	label string
	fn    Action
}

// Region is a container of vertices, owned by a State (or by the root
// StateMachine). It holds an ordered set of child vertices and a
// distinguished initial pseudo state.
type Region struct {
	id       string
	name     string
	model    *Model
	owner    *Vertex
	vertices *orderedmap.OrderedMap[string, *Vertex]
	initial  *Vertex
}

func newRegion(model *Model, owner *Vertex, name string) *Region {
	return &Region{
		id:       newID(),
		name:     name,
		model:    model,
		owner:    owner,
		vertices: orderedmap.New[string, *Vertex](),
	}
}

// Name returns the region's own name.
func (r *Region) Name() string { return r.name }

// Path returns the region's qualified name: its owner's qualified name
// joined with the region's own name using the model's separator.
func (r *Region) Path() string {
	if r.owner == nil {
		return r.name
	}
	return r.owner.Path() + r.model.separator + r.name
}

func (r *Region) String() string { return r.Path() }

// complete reports whether the region's current state in inst is a final
// state (spec §3: "A region is complete in a given instance iff its
// current state is a final state").
func (r *Region) complete(inst Instance) bool {
	cur := inst.GetCurrent(r)
	return cur != nil && cur.kind == vertexFinal
}

// Vertex is any node that can be a transition endpoint: a State, a
// FinalState, or a PseudoState. The kind field discriminates: one struct
// type serves every vertex kind, and code that needs per-kind behaviour
// switches on kind.
type Vertex struct {
	id         string
	name       string
	model      *Model
	kind       vertexKind
	pseudoKind PseudoStateKind
	region     *Region // owning region; nil only for the model root
	isRoot     bool

	// State/FinalState/root-only fields.
	regions *orderedmap.OrderedMap[string, *Region]
	entry   []namedAction
	exit    []namedAction

	outbound *orderedmap.OrderedMap[string, *Transition]

	// compiled caches, set by Bootstrap.
	compiled bool
}

func newVertex(model *Model, region *Region, name string, kind vertexKind) *Vertex {
	return &Vertex{
		id:       newID(),
		name:     name,
		model:    model,
		kind:     kind,
		region:   region,
		outbound: orderedmap.New[string, *Transition](),
	}
}

// Name returns the vertex's own name.
func (v *Vertex) Name() string { return v.name }

// Path returns the vertex's qualified name (spec §6 toString): ancestor
// names joined by the model's configured separator (default ".").
func (v *Vertex) Path() string {
	if v.isRoot || v.region == nil {
		return v.name
	}
	return v.region.Path() + v.model.separator + v.name
}

func (v *Vertex) String() string { return v.Path() }

// IsComposite reports whether the state has exactly one child region.
func (v *Vertex) IsComposite() bool {
	return v.regions != nil && v.regions.Len() == 1
}

// IsOrthogonal reports whether the state has two or more child regions.
func (v *Vertex) IsOrthogonal() bool {
	return v.regions != nil && v.regions.Len() >= 2
}

// IsSimple reports whether the state has no child regions.
func (v *Vertex) IsSimple() bool {
	return v.regions == nil || v.regions.Len() == 0
}

// stateChain returns the ordered list of owning States from v up to and
// including the model root, skipping Region nodes. This is equivalent
// to the alternating State/Region/.../Vertex chain spec §4.2 describes
// for ancestry purposes, because every vertex has exactly one owning
// region and every region exactly one owning state: the two chains are
// isomorphic, and the state-only chain is simpler to index.
func (v *Vertex) stateChain() []*Vertex {
	chain := make([]*Vertex, 0, 8)
	for cur := v; cur != nil; {
		chain = append(chain, cur)
		if cur.isRoot || cur.region == nil {
			break
		}
		cur = cur.region.owner
	}
	return chain
}

// isAncestorOf reports whether v is a proper or improper ancestor of u
// (u == v counts) by walking u's state chain.
func (v *Vertex) isAncestorOf(u *Vertex) bool {
	for cur := u; cur != nil; {
		if cur == v {
			return true
		}
		if cur.isRoot || cur.region == nil {
			return false
		}
		cur = cur.region.owner
	}
	return false
}

// lca returns the index pair (i, j) such that stateChain(a)[i] and
// stateChain(b)[j] are the two states directly below their common
// ancestor, and the common ancestor itself (stateChain(a)[i+1]).
// Mirrors the classic index-walk used by hierarchical-state-machine
// traversal code: walk both chains from the root end inward until they
// diverge.
func lca(a, b *Vertex) (i, j int, ancestor *Vertex) {
	ca, cb := a.stateChain(), b.stateChain()
	i, j = len(ca)-2, len(cb)-2
	for i >= 0 && j >= 0 && ca[i] == cb[j] {
		i--
		j--
	}
	ancestor = ca[i+1]
	return i, j, ancestor
}

// Model is the root container for a built state machine: the tree of
// regions/vertices/transitions plus the configuration needed to
// bootstrap and evaluate it. It corresponds to spec §3's StateMachine,
// generalized to also hold model-wide options (separator, default
// region naming, observers, logger).
type Model struct {
	root              *Vertex
	separator         string
	defaultRegionName string
	observers         []Observer
	logger            Logger
	dirty             bool
	recoverCallbacks  bool
}

// Root returns the model's root vertex (the StateMachine, itself a State).
func (m *Model) Root() *Vertex { return m.root }

// markDirty marks the model as requiring another bootstrap pass before
// the next Evaluate/Initialise call (spec §4.1: "Any mutation of the
// model marks the root as dirty").
func (m *Model) markDirty() { m.dirty = true }

func (m *Model) notify(fn func(Observer)) {
	for _, o := range m.observers {
		fn(o)
	}
}
