package engine

// Bootstrap compiles every transition in m into its ordered step list
// (spec §4.3). It is idempotent: compiling twice yields identical step
// lists, because compilation only reads the (by-then immutable) model
// shape and writes deterministic, derived data. It fails fast on the
// first well-formedness violation Validate finds, per spec §7 ("raised
// at bootstrap time where possible").
func Bootstrap(m *Model) error {
	m.logger.Debugf("bootstrap: validating model %q", m.root.name)
	if errs := m.Validate(); !errs.Empty() {
		m.logger.Warnf("bootstrap: %q failed validation: %v", m.root.name, errs.Errors[0])
		return errs.Errors[0]
	}
	count := 0
	walkVertices(m.root, func(v *Vertex) {
		for pair := v.outbound.Oldest(); pair != nil; pair = pair.Next() {
			compileTransition(pair.Value)
			count++
		}
		v.compiled = true
	})
	m.dirty = false
	m.logger.Infof("bootstrap: compiled %d transitions for %q", count, m.root.name)
	return nil
}

func walkVertices(v *Vertex, fn func(*Vertex)) {
	if v.regions != nil {
		for rp := v.regions.Oldest(); rp != nil; rp = rp.Next() {
			for vp := rp.Value.vertices.Oldest(); vp != nil; vp = vp.Next() {
				walkVertices(vp.Value, fn)
			}
		}
	}
	fn(v)
}

// pathBelow returns the top-down, inclusive list of states from the
// direct child of top down to bottom. top must be a proper ancestor of
// bottom (or top == bottom, yielding an empty slice).
func pathBelow(top, bottom *Vertex) []*Vertex {
	if top == bottom {
		return nil
	}
	chain := bottom.stateChain()
	idx := -1
	for k, v := range chain {
		if v == top {
			idx = k
			break
		}
	}
	seg := chain[:idx]
	out := make([]*Vertex, len(seg))
	for k, v := range seg {
		out[len(seg)-1-k] = v
	}
	return out
}

func compileTransition(t *Transition) {
	if t.target == nil {
		t.compiled = &compiledTransition{kind: transInternal}
		t.model.logger.Debugf("bootstrap: %s is internal", t.id)
		return
	}

	src, tgt := t.source, t.target
	defer func() {
		t.model.logger.Debugf("bootstrap: %s -> %s compiled as %s", src.Path(), tgt.Path(), t.compiled.kind)
	}()

	switch {
	case src == tgt:
		// Self-transition: always fully exits and re-enters (spec §4.2
		// only defines local/external for distinct source/target; a
		// self-loop is treated as external, the behavior a transition
		// author reaches for when they want full re-entry).
		t.compiled = &compiledTransition{
			kind:         transExternal,
			exitBoundary: src,
			entryPath:    []*Vertex{tgt},
		}

	case src.properAncestorOf(tgt):
		// Local, descending: target nests inside source. Source itself
		// is not exited or re-entered; only its currently active content
		// is torn down and the path to target is built back up.
		t.compiled = &compiledTransition{
			kind:         transLocal,
			exitBoundary: nil, // handled via leaveChildren in fireTransition
			entryPath:    pathBelow(src, tgt),
		}

	case tgt.properAncestorOf(src):
		// Local, ascending: source nests inside the already-active
		// target, possibly several levels down. Everything from src up
		// to (but excluding) tgt must be exited, not just src itself, or
		// an intermediate composite's exit actions never run and its
		// region is left pointing at a vertex that was never cleared.
		t.compiled = &compiledTransition{
			kind:         transLocal,
			exitBoundary: childBelow(tgt, src),
			entryPath:    nil,
		}

	default:
		_, _, ancestor := lca(src, tgt)
		t.compiled = &compiledTransition{
			kind:         transExternal,
			exitBoundary: childBelow(ancestor, src),
			entryPath:    pathBelow(ancestor, tgt),
		}
	}
}

func childBelow(top, bottom *Vertex) *Vertex {
	if top == bottom {
		return bottom
	}
	chain := bottom.stateChain()
	idx := -1
	for k, v := range chain {
		if v == top {
			idx = k
			break
		}
	}
	if idx <= 0 {
		return bottom
	}
	return chain[idx-1]
}

func (v *Vertex) properAncestorOf(u *Vertex) bool {
	return v != u && v.isAncestorOf(u)
}
