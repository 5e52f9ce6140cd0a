package engine

import "fmt"

// ErrorCode classifies the error kinds named in the runtime's error taxonomy.
type ErrorCode int

const (
	// ErrCodeNone indicates no error.
	ErrCodeNone ErrorCode = iota
	// ErrCodeModelWellFormedness covers structural model defects: duplicate
	// initial-family pseudo states in one region, an outbound transition on
	// a final state, a transition with no source, or a reference to an
	// element never attached to the model.
	ErrCodeModelWellFormedness
	// ErrCodeIllformedTransition covers selection-time ambiguity: a
	// Junction with multiple matching guards and no else, a Choice with no
	// matches and no else, or an ambiguous non-Choice selection.
	ErrCodeIllformedTransition
	// ErrCodeInvalidUse covers host misuse such as calling Evaluate before
	// Initialise.
	ErrCodeInvalidUse
	// ErrCodeUserCallbackFault wraps a panic raised by a guard or action
	// callback.
	ErrCodeUserCallbackFault
)

func (c ErrorCode) String() string {
	switch c {
	case ErrCodeModelWellFormedness:
		return "model-well-formedness"
	case ErrCodeIllformedTransition:
		return "illformed-transition"
	case ErrCodeInvalidUse:
		return "invalid-use"
	case ErrCodeUserCallbackFault:
		return "user-callback-fault"
	default:
		return "none"
	}
}

// ModelError reports a structural defect in the model, raised at
// bootstrap time where possible (spec 4.3, 4.1) and otherwise at the
// first traversal that exercises the offending construct.
type ModelError struct {
	Code    ErrorCode
	Element string
	Message string
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("model error [%s] at %q: %s", e.Code, e.Element, e.Message)
}

func newModelError(element, format string, args ...any) *ModelError {
	return &ModelError{Code: ErrCodeModelWellFormedness, Element: element, Message: fmt.Sprintf(format, args...)}
}

// TransitionError reports an ill-formed selection at a Choice or Junction
// pseudo state: an ambiguous set of matching guards, or no match at all
// with no else transition to fall back on.
type TransitionError struct {
	Code    ErrorCode
	Vertex  string
	Message string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("transition error at %q: %s", e.Vertex, e.Message)
}

func newTransitionError(vertex, format string, args ...any) *TransitionError {
	return &TransitionError{Code: ErrCodeIllformedTransition, Vertex: vertex, Message: fmt.Sprintf(format, args...)}
}

// UseError reports a host-side protocol violation, such as evaluating a
// message before the instance has been initialised.
type UseError struct {
	Code    ErrorCode
	Message string
}

func (e *UseError) Error() string {
	return fmt.Sprintf("invalid use: %s", e.Message)
}

func newUseError(format string, args ...any) *UseError {
	return &UseError{Code: ErrCodeInvalidUse, Message: fmt.Sprintf(format, args...)}
}

// CallbackError wraps a panic recovered from a guard or action callback.
// By default UserCallbackFault propagates uninterpreted per spec 7; a
// host that wants it converted into a returned error instead of a crash
// can opt in with WithRecoverCallbacks.
type CallbackError struct {
	Code      ErrorCode
	Vertex    string
	Recovered any
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("callback fault at %q: %v", e.Vertex, e.Recovered)
}
