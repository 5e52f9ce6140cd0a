// Package engine implements a hierarchical, orthogonal finite state
// machine runtime following UML 2 state-machine semantics.
//
// A Model is built once, fluently, through Region/State/PseudoState/
// Transition constructors. Bootstrap then compiles the model into
// per-transition step lists, and Evaluate drives one Instance at a
// time by delivering Messages to it. The model is read-only once
// bootstrapped; many instances may share it.
package engine
