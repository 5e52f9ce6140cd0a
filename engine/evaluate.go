package engine

// historyMode tracks, while entering a region, whether that entry is a
// plain default entry or a history restoration, and if so how far it
// propagates into nested regions (spec §4.3: deep history propagates
// through every descendant region entry, shallow restores one level and
// then behaves like a plain entry).
type historyMode int

const (
	historyNone historyMode = iota
	historyShallow
	historyDeep
)

// evalCtx carries the per-call state threaded through a single
// Initialise or Evaluate invocation.
type evalCtx struct {
	model *Model
	inst  Instance
	msg   Message
}

// actionPanic wraps a recovered guard/action panic with the vertex it
// came from, so a top-level recover (only installed when
// WithRecoverCallbacks is set) can build a CallbackError. It is only
// created when that option is set; by default runAction/runGuard do not
// recover, and the callback's own panic value unwinds out of
// Evaluate/Initialise unchanged.
type actionPanic struct {
	vertex    string
	recovered any
}

func (ev *evalCtx) runAction(v *Vertex, fn Action, historyFlag bool) {
	if fn == nil {
		return
	}
	if !ev.model.recoverCallbacks {
		fn(ev.msg, ev.inst, historyFlag)
		return
	}
	defer func() {
		if r := recover(); r != nil {
			panic(actionPanic{vertex: v.Path(), recovered: r})
		}
	}()
	fn(ev.msg, ev.inst, historyFlag)
}

func (ev *evalCtx) runGuard(v *Vertex, g Guard) bool {
	if g == nil {
		return true
	}
	if !ev.model.recoverCallbacks {
		return g(ev.msg, ev.inst)
	}
	defer func() {
		if r := recover(); r != nil {
			panic(actionPanic{vertex: v.Path(), recovered: r})
		}
	}()
	return g(ev.msg, ev.inst)
}

// Initialise enters a freshly created instance: the model root and, from
// there, every region down to its leaves, via each region's initial
// pseudo state (spec §4.1/§4.3). It bootstraps the model first if it is
// dirty.
func Initialise(model *Model, inst Instance) (err error) {
	model.logger.Debugf("initialise: %q", model.root.name)
	if model.dirty {
		if berr := Bootstrap(model); berr != nil {
			return berr
		}
	}
	if inst.IsTerminated() {
		model.logger.Warnf("initialise: instance already terminated")
		return newUseError("instance is already terminated")
	}
	if model.recoverCallbacks {
		defer func() {
			if r := recover(); r != nil {
				ap, ok := r.(actionPanic)
				if !ok {
					panic(r)
				}
				ce := &CallbackError{Code: ErrCodeUserCallbackFault, Vertex: ap.vertex, Recovered: ap.recovered}
				model.notify(func(o Observer) { o.OnError(ce) })
				err = ce
			}
		}()
	}

	ev := &evalCtx{model: model, inst: inst, msg: NewMessage("<initialise>")}
	root := model.root
	for _, na := range root.entry {
		ev.runAction(root, na.fn, false)
	}
	model.logger.Debugf("enter: %s", root.Path())
	model.notify(func(o Observer) { o.OnEnter(root, ev.msg) })
	for _, r := range root.Regions() {
		if err := enterRegion(ev, r, historyNone); err != nil {
			return err
		}
	}
	return nil
}

// Evaluate offers msg to inst's active configuration. Selection starts
// at the root and recurses into whichever region/vertex is currently
// active; because a vertex only tries its own outbound transitions
// after first offering the message to its child regions, the recursion
// unwinding naturally evaluates from the active leaf upward, first
// match wins, with no broadcast across orthogonal sibling regions
// (spec §4.4). It returns whether some transition consumed the message.
func Evaluate(model *Model, msg Message, inst Instance) (consumed bool, err error) {
	model.logger.Debugf("evaluate: %q", msg.Name)
	if model.dirty {
		if berr := Bootstrap(model); berr != nil {
			return false, berr
		}
	}
	if inst.IsTerminated() {
		return false, nil
	}
	for _, r := range model.root.Regions() {
		if inst.GetCurrent(r) == nil {
			return false, newUseError("instance has not been initialised")
		}
	}
	if model.recoverCallbacks {
		defer func() {
			if r := recover(); r != nil {
				ap, ok := r.(actionPanic)
				if !ok {
					panic(r)
				}
				ce := &CallbackError{Code: ErrCodeUserCallbackFault, Vertex: ap.vertex, Recovered: ap.recovered}
				model.notify(func(o Observer) { o.OnError(ce) })
				err = ce
				consumed = false
			}
		}()
	}

	ev := &evalCtx{model: model, inst: inst, msg: msg}
	consumed, err = vertexEvaluate(ev, model.root)
	model.notify(func(o Observer) { o.OnEvaluate(msg, consumed) })
	return consumed, err
}

func vertexEvaluate(ev *evalCtx, v *Vertex) (bool, error) {
	if !v.IsSimple() {
		for _, r := range v.Regions() {
			consumed, err := regionEvaluate(ev, r)
			if err != nil || consumed {
				return consumed, err
			}
		}
	}
	return selectAt(ev, v)
}

func regionEvaluate(ev *evalCtx, r *Region) (bool, error) {
	cur := ev.inst.GetCurrent(r)
	if cur == nil {
		return false, nil
	}
	return vertexEvaluate(ev, cur)
}

// selectAt tries v's own outbound transitions against ev.msg: first
// match among the non-else transitions, in declared order, wins; an
// else transition (if any) is tried only once nothing else matched
// (spec §4.4). The same function serves both ordinary message dispatch
// and the completion cascade, which simply calls it with the internal
// completion message as ev.msg (spec §4.5): a guard of nil matches
// anything, including completion, so an author who wants a completion
// transition that never fires on a real message must guard explicitly
// on msg.IsCompletion().
func selectAt(ev *evalCtx, v *Vertex) (bool, error) {
	var elseT *Transition
	for _, t := range v.Outbound() {
		if t.isElse {
			if elseT == nil {
				elseT = t
			}
			continue
		}
		if ev.runGuard(v, t.guard) {
			return true, fireTransition(ev, t)
		}
	}
	if elseT != nil && ev.runGuard(v, elseT.guard) {
		return true, fireTransition(ev, elseT)
	}
	return false, nil
}

func fireTransition(ev *evalCtx, t *Transition) error {
	c := t.compiled
	targetName := "<internal>"
	if t.target != nil {
		targetName = t.target.Path()
	}
	ev.model.logger.Debugf("transition: %s -> %s (%s)", t.source.Path(), targetName, c.kind)
	ev.model.notify(func(o Observer) { o.OnTransition(t, ev.msg) })

	switch c.kind {
	case transInternal:
		t.runEffects(ev)
		return nil
	case transLocal:
		if c.exitBoundary != nil {
			if err := leaveState(ev, c.exitBoundary); err != nil {
				return err
			}
		} else if err := leaveChildren(ev, t.source); err != nil {
			return err
		}
	case transExternal:
		if c.exitBoundary != nil {
			if err := leaveState(ev, c.exitBoundary); err != nil {
				return err
			}
		}
	}

	t.runEffects(ev)
	if len(c.entryPath) == 0 {
		return nil
	}
	return enterPath(ev, c.entryPath)
}

// enterPath walks a compiled entry path top-down. A composite/orthogonal
// state along the path enters every region by default except the one
// continuing the explicit path, which the loop itself descends into
// next; a pseudo state reached along the path takes over entirely
// (spec §4.3).
func enterPath(ev *evalCtx, path []*Vertex) error {
	for i, v := range path {
		switch v.kind {
		case vertexPseudo:
			return continueFromPseudo(ev, v)

		case vertexFinal:
			ev.inst.SetCurrent(v.region, v)
			for _, na := range v.entry {
				ev.runAction(v, na.fn, false)
			}
			ev.model.logger.Debugf("enter: %s (final)", v.Path())
			ev.model.notify(func(o Observer) { o.OnEnter(v, ev.msg) })
			return maybeComplete(ev, v.region)

		default:
			last := i == len(path)-1
			ev.inst.SetCurrent(v.region, v)
			for _, na := range v.entry {
				ev.runAction(v, na.fn, false)
			}
			ev.model.logger.Debugf("enter: %s", v.Path())
			ev.model.notify(func(o Observer) { o.OnEnter(v, ev.msg) })
			if v.IsSimple() {
				return nil
			}
			var cont *Region
			if !last {
				cont = path[i+1].region
			}
			for _, r := range v.Regions() {
				if r == cont {
					continue
				}
				if err := enterRegion(ev, r, historyNone); err != nil {
					return err
				}
			}
			if last {
				return nil
			}
			// fall through: the loop continues into cont on the next iteration
		}
	}
	return nil
}

// enterRegion enters r either through history (restoring the
// last-known state, falling back to r's initial-family pseudo state's
// own default path if the region has never been entered) or, for a
// plain default entry, directly through that default path.
func enterRegion(ev *evalCtx, r *Region, mode historyMode) error {
	if mode != historyNone {
		if last := ev.inst.GetCurrent(r); last != nil {
			propagate := historyNone
			if mode == historyDeep {
				propagate = historyDeep
			}
			return enterStateDirect(ev, last, mode, propagate)
		}
	}
	if r.initial == nil {
		return newModelError(r.Path(), "region has no initial pseudo state to enter")
	}
	return fireDefaultPath(ev, r.initial)
}

// fireDefaultPath fires v's sole outbound transition unconditionally.
// It serves both Initial pseudo states and a history pseudo state
// standing in for its region's default entry point when no history has
// been recorded yet (its own outbound transition is its documented
// default target, spec §3/§4.3).
func fireDefaultPath(ev *evalCtx, v *Vertex) error {
	ev.model.notify(func(o Observer) { o.OnEnter(v, ev.msg) })
	outs := v.Outbound()
	if len(outs) != 1 {
		return newModelError(v.Path(), "initial/history pseudo state must have exactly one outbound transition")
	}
	return fireTransition(ev, outs[0])
}

// enterStateDirect enters v as a history restoration rather than via a
// transition's compiled entry path: no transition fires, v is simply
// made current again, with flagMode reported to its entry actions and
// propagate carried into its own child regions.
func enterStateDirect(ev *evalCtx, v *Vertex, flagMode, propagate historyMode) error {
	ev.inst.SetCurrent(v.region, v)
	for _, na := range v.entry {
		ev.runAction(v, na.fn, flagMode != historyNone)
	}
	ev.model.logger.Debugf("enter: %s (history)", v.Path())
	ev.model.notify(func(o Observer) { o.OnEnter(v, ev.msg) })
	if v.kind == vertexFinal {
		return maybeComplete(ev, v.region)
	}
	if v.IsSimple() {
		return nil
	}
	for _, r := range v.Regions() {
		if err := enterRegion(ev, r, propagate); err != nil {
			return err
		}
	}
	return nil
}

func continueFromPseudo(ev *evalCtx, v *Vertex) error {
	switch v.pseudoKind {
	case PseudoInitial:
		return fireDefaultPath(ev, v)
	case PseudoShallowHistory:
		ev.model.notify(func(o Observer) { o.OnEnter(v, ev.msg) })
		return enterRegion(ev, v.region, historyShallow)
	case PseudoDeepHistory:
		ev.model.notify(func(o Observer) { o.OnEnter(v, ev.msg) })
		return enterRegion(ev, v.region, historyDeep)
	case PseudoChoice:
		ev.model.notify(func(o Observer) { o.OnEnter(v, ev.msg) })
		t, err := resolveChoice(ev, v)
		if err != nil {
			return err
		}
		return fireTransition(ev, t)
	case PseudoJunction:
		ev.model.notify(func(o Observer) { o.OnEnter(v, ev.msg) })
		t, err := resolveJunction(ev, v)
		if err != nil {
			return err
		}
		return fireTransition(ev, t)
	case PseudoTerminate:
		ev.model.notify(func(o Observer) { o.OnEnter(v, ev.msg) })
		ev.inst.SetTerminated(true)
		return nil
	default:
		return newModelError(v.Path(), "unknown pseudo state kind")
	}
}

// resolveChoice evaluates every non-else outbound guard against ev.msg
// and picks the first matching transition in declared order, falling back to the else transition if any
// (spec §4.3: Choice "evaluates guards dynamically... picks one of the
// matches").
func resolveChoice(ev *evalCtx, v *Vertex) (*Transition, error) {
	var elseT *Transition
	var matches []*Transition
	for _, t := range v.Outbound() {
		if t.isElse {
			if elseT == nil {
				elseT = t
			}
			continue
		}
		if ev.runGuard(v, t.guard) {
			matches = append(matches, t)
		}
	}
	if len(matches) > 0 {
		return matches[0], nil
	}
	if elseT != nil {
		return elseT, nil
	}
	return nil, newTransitionError(v.Path(), "choice pseudo state has no matching guard and no else transition")
}

// resolveJunction requires exactly one matching outbound transition, or
// an else transition; more than one match is ill-formed (spec §4.3).
func resolveJunction(ev *evalCtx, v *Vertex) (*Transition, error) {
	var elseT *Transition
	var matches []*Transition
	for _, t := range v.Outbound() {
		if t.isElse {
			if elseT == nil {
				elseT = t
			}
			continue
		}
		if ev.runGuard(v, t.guard) {
			matches = append(matches, t)
		}
	}
	switch {
	case len(matches) == 1:
		return matches[0], nil
	case len(matches) > 1:
		return nil, newTransitionError(v.Path(), "junction pseudo state has %d matching guards, expected at most one", len(matches))
	case elseT != nil:
		return elseT, nil
	default:
		return nil, newTransitionError(v.Path(), "junction pseudo state has no matching guard and no else transition")
	}
}

// leaveState exits v: recursively leaves whatever is active beneath it,
// innermost first as the recursion unwinds, then runs v's own exit
// actions (spec invariant 3). It never clears the region's recorded
// current state, so Instance.GetCurrent keeps serving history on a
// later re-entry.
func leaveState(ev *evalCtx, v *Vertex) error {
	if err := leaveChildren(ev, v); err != nil {
		return err
	}
	for _, na := range v.exit {
		ev.runAction(v, na.fn, false)
	}
	ev.model.logger.Debugf("exit: %s", v.Path())
	ev.model.notify(func(o Observer) { o.OnExit(v, ev.msg) })
	return nil
}

// leaveChildren exits v's currently active content without exiting v
// itself, used for a local transition whose target descends from its
// source (spec §4.2: "traversal does not exit source").
func leaveChildren(ev *evalCtx, v *Vertex) error {
	for _, r := range v.Regions() {
		cur := ev.inst.GetCurrent(r)
		if cur == nil {
			continue
		}
		if err := leaveState(ev, cur); err != nil {
			return err
		}
	}
	return nil
}

// maybeComplete is called whenever a final state becomes current in r.
// If that makes every region of r's owner complete, it delivers the
// completion message to the owner's own outbound transitions (spec
// §4.5). Firing a completion transition may itself enter a composite
// that completes immediately too; that further cascade happens
// naturally through the same entry path that got us here, not through
// an explicit loop.
func maybeComplete(ev *evalCtx, r *Region) error {
	owner := r.owner
	if owner == nil {
		return nil
	}
	for _, or := range owner.Regions() {
		if !or.complete(ev.inst) {
			return nil
		}
	}
	ev.model.logger.Debugf("complete: all regions of %s are done", owner.Path())
	return attemptCompletion(ev, owner)
}

func attemptCompletion(ev *evalCtx, owner *Vertex) error {
	if ev.inst.IsTerminated() {
		return nil
	}
	cctx := &evalCtx{model: ev.model, inst: ev.inst, msg: completionMessage}
	_, err := selectAt(cctx, owner)
	return err
}
