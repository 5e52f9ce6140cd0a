package engine

// Visitor is the double-dispatch hook for generic tree-walking tooling
// (diagram export, offline validators) that needs to traverse a model
// without depending on the engine's own recursive entry/exit logic
// (spec §4.6). It is never used by Bootstrap or Evaluate.
//
// There are three Accept entry points, one per concrete node type
// (Vertex, Region, Transition). Vertex.Accept switches on the tagged
// vertex kind to pick one of VisitStateMachine/VisitState/
// VisitFinalState/VisitPseudoState; the other two route directly.
type Visitor interface {
	VisitStateMachine(root *Vertex, arg any) any
	VisitState(v *Vertex, arg any) any
	VisitFinalState(v *Vertex, arg any) any
	VisitPseudoState(v *Vertex, arg any) any
	VisitRegion(r *Region, arg any) any
	VisitTransition(t *Transition, arg any) any
}

// Accept routes v to the Visitor method matching its kind.
func (v *Vertex) Accept(visitor Visitor, arg any) any {
	switch {
	case v.isRoot:
		return visitor.VisitStateMachine(v, arg)
	case v.kind == vertexFinal:
		return visitor.VisitFinalState(v, arg)
	case v.kind == vertexPseudo:
		return visitor.VisitPseudoState(v, arg)
	default:
		return visitor.VisitState(v, arg)
	}
}

// Accept routes r to VisitRegion.
func (r *Region) Accept(visitor Visitor, arg any) any {
	return visitor.VisitRegion(r, arg)
}

// Accept routes t to VisitTransition.
func (t *Transition) Accept(visitor Visitor, arg any) any {
	return visitor.VisitTransition(t, arg)
}

// BaseVisitor provides no-op handlers for every case, so a concrete
// Visitor only needs to implement the ones it cares about.
type BaseVisitor struct{}

func (BaseVisitor) VisitStateMachine(*Vertex, any) any  { return nil }
func (BaseVisitor) VisitState(*Vertex, any) any         { return nil }
func (BaseVisitor) VisitFinalState(*Vertex, any) any    { return nil }
func (BaseVisitor) VisitPseudoState(*Vertex, any) any   { return nil }
func (BaseVisitor) VisitRegion(*Region, any) any        { return nil }
func (BaseVisitor) VisitTransition(*Transition, any) any { return nil }
