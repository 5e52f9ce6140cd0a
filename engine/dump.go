package engine

import "gopkg.in/yaml.v3"

// dumpState is the YAML-serializable projection of a State/FinalState/
// PseudoState node, built by yamlDumper as it walks the tree.
type dumpState struct {
	Name       string       `yaml:"name"`
	Kind       string       `yaml:"kind,omitempty"`
	Regions    []dumpRegion `yaml:"regions,omitempty"`
	Transitions []dumpEdge  `yaml:"transitions,omitempty"`
}

type dumpRegion struct {
	Name   string      `yaml:"name"`
	States []dumpState `yaml:"states"`
}

type dumpEdge struct {
	Kind   string `yaml:"kind"`
	Target string `yaml:"target,omitempty"`
	Else   bool   `yaml:"else,omitempty"`
}

// yamlDumper walks a model and renders it as a YAML document describing
// state names, region nesting, and transition edges, for the "diagrams,
// validators" tooling use case (spec §4.6). It never touches an
// instance and has no effect on evaluation.
type yamlDumper struct {
	BaseVisitor
}

// Dump renders model's tree to a YAML document.
func Dump(model *Model) ([]byte, error) {
	d := &yamlDumper{}
	root := d.buildState(model.root)
	return yaml.Marshal(root)
}

func (d *yamlDumper) buildState(v *Vertex) dumpState {
	ds := dumpState{Name: v.Name()}
	switch v.kind {
	case vertexFinal:
		ds.Kind = "final"
	case vertexPseudo:
		ds.Kind = v.pseudoKind.String()
	default:
		if v.IsOrthogonal() {
			ds.Kind = "orthogonal"
		} else if v.IsComposite() {
			ds.Kind = "composite"
		}
	}
	for _, r := range v.Regions() {
		ds.Regions = append(ds.Regions, d.buildRegion(r))
	}
	for _, t := range v.Outbound() {
		ds.Transitions = append(ds.Transitions, d.buildEdge(t))
	}
	return ds
}

func (d *yamlDumper) buildRegion(r *Region) dumpRegion {
	dr := dumpRegion{Name: r.Name()}
	for _, v := range r.Vertices() {
		dr.States = append(dr.States, d.buildState(v))
	}
	return dr
}

func (d *yamlDumper) buildEdge(t *Transition) dumpEdge {
	e := dumpEdge{Kind: t.Kind(), Else: t.isElse}
	if t.target != nil {
		e.Target = t.target.Path()
	}
	return e
}

// VisitStateMachine/VisitState/VisitFinalState/VisitPseudoState/
// VisitRegion/VisitTransition satisfy Visitor by delegating to the same
// build* helpers Dump uses directly, so a host can also drive the walk
// itself (e.g. to emit partial diagrams) via Accept.
func (d *yamlDumper) VisitStateMachine(v *Vertex, arg any) any { return d.buildState(v) }
func (d *yamlDumper) VisitState(v *Vertex, arg any) any        { return d.buildState(v) }
func (d *yamlDumper) VisitFinalState(v *Vertex, arg any) any   { return d.buildState(v) }
func (d *yamlDumper) VisitPseudoState(v *Vertex, arg any) any  { return d.buildState(v) }
func (d *yamlDumper) VisitRegion(r *Region, arg any) any       { return d.buildRegion(r) }
func (d *yamlDumper) VisitTransition(t *Transition, arg any) any { return d.buildEdge(t) }
