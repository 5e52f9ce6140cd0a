package engine

import (
	"log"
	"time"

	"github.com/google/uuid"
)

// Message is the single opaque event value the runtime delivers to an
// instance (spec §1: "signal/call-event distinction beyond a single
// opaque message value" is out of scope). Name and Data are free for the
// host to interpret in guards and actions.
type Message struct {
	ID         string
	Name       string
	Data       any
	Timestamp  time.Time
	completion bool
}

// NewMessage creates a Message with the given name, stamping it with a
// fresh ID and the current time.
func NewMessage(name string) Message {
	return Message{ID: uuid.NewString(), Name: name, Timestamp: time.Now()}
}

// WithData attaches a data payload and returns the message.
func (m Message) WithData(data any) Message {
	m.Data = data
	return m
}

// IsCompletion reports whether this message is the conventional
// "no-message" event used to drive the completion cascade (spec §4.5).
func (m Message) IsCompletion() bool { return m.completion }

// completionMessage is delivered internally to a newly-completed
// composite/orthogonal state's own outbound transitions to see whether
// any of them qualify as a completion transition.
var completionMessage = Message{Name: "<completion>", completion: true}

// Guard evaluates whether a transition should be taken.
type Guard func(msg Message, inst Instance) bool

// Action performs a side effect during entry, exit, or transition
// traversal. The historyFlag argument tells an entry action whether the
// state is being entered through history (shallow or deep) rather than
// through its own initial pseudo state. An Action returns nothing, so
// it reports failure the same way any user callback does: by
// panicking, which the evaluator documents as a UserCallbackFault that
// propagates out of Evaluate uninterpreted (spec §7).
type Action func(msg Message, inst Instance, historyFlag bool)

func newID() string { return uuid.NewString() }

// Logger is the structured-logging seam used by Bootstrap and by the
// evaluator (Initialise/Evaluate). A host that wants diagnostics wires one in
// through WithLogger; the default is a no-op, so the hot evaluation path
// never pays for formatting it doesn't need.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debugf(string, ...any) {}
func (noopLogger) Infof(string, ...any)  {}
func (noopLogger) Warnf(string, ...any)  {}

// StdLogger adapts the standard library's log package to Logger. No
// third-party logging library appears anywhere in the retrieved example
// pack, so this adapter is built on the standard library by necessity
// rather than by a library gap in the corpus (see DESIGN.md).
type StdLogger struct {
	*log.Logger
}

// NewStdLogger returns a StdLogger writing through the given
// *log.Logger, or the standard logger if l is nil.
func NewStdLogger(l *log.Logger) StdLogger {
	if l == nil {
		l = log.Default()
	}
	return StdLogger{Logger: l}
}

func (s StdLogger) Debugf(format string, args ...any) { s.Printf("DEBUG "+format, args...) }
func (s StdLogger) Infof(format string, args ...any)  { s.Printf("INFO "+format, args...) }
func (s StdLogger) Warnf(format string, args ...any)  { s.Printf("WARN "+format, args...) }

// Observer receives lifecycle notifications during live evaluation. It
// is distinct from the Visitor (engine/visitor.go), which performs a
// static tree walk for tooling; Observer fires as a side effect of
// Evaluate so a host can log or meter without the core depending on any
// particular logging or metrics library. Mirrors the notification
// surface of the teacher's StateMachineObserver.
type Observer interface {
	OnEnter(v *Vertex, msg Message)
	OnExit(v *Vertex, msg Message)
	OnTransition(t *Transition, msg Message)
	OnEvaluate(msg Message, consumed bool)
	OnError(err error)
}

// BaseObserver provides no-op implementations of every Observer method,
// so a host only needs to override the ones it cares about.
type BaseObserver struct{}

func (BaseObserver) OnEnter(*Vertex, Message)      {}
func (BaseObserver) OnExit(*Vertex, Message)       {}
func (BaseObserver) OnTransition(*Transition, Message) {}
func (BaseObserver) OnEvaluate(Message, bool)      {}
func (BaseObserver) OnError(error)                 {}

// Option configures a Model at construction time.
type Option func(*Model)

// WithSeparator overrides the qualified-name separator (default ".").
func WithSeparator(sep string) Option {
	return func(m *Model) { m.separator = sep }
}

// WithDefaultRegionName overrides the name given to an auto-created
// region (spec §4.1), default "region".
func WithDefaultRegionName(name string) Option {
	return func(m *Model) { m.defaultRegionName = name }
}

// WithObserver registers an Observer; it may be called more than once.
func WithObserver(o Observer) Option {
	return func(m *Model) { m.observers = append(m.observers, o) }
}

// WithLogger overrides the model's Logger (default no-op).
func WithLogger(l Logger) Option {
	return func(m *Model) { m.logger = l }
}

// WithRecoverCallbacks opts into catching a panicking guard or action and
// surfacing it as a *CallbackError return from Evaluate/Initialise
// instead of the default: letting it propagate out uninterpreted (spec
// 7). Observers are told of it via OnError only when this option is set.
func WithRecoverCallbacks() Option {
	return func(m *Model) { m.recoverCallbacks = true }
}
