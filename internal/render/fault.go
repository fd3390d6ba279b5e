package render

import "fmt"

// Fault describes a recoverable rendering failure: an unsupported node
// type, a missing required attribute, or a subtree panic caught by a
// containment boundary. Faults travel as data through the fault callback,
// never as panics across package boundaries.
type Fault struct {
	// Msg is the human-readable description, e.g.
	// "Unsupported node type: foo".
	Msg string

	// NodeType names the offending node type when known.
	NodeType string
}

func (f Fault) String() string {
	if f.NodeType != "" {
		return fmt.Sprintf("%s (node %q)", f.Msg, f.NodeType)
	}
	return f.Msg
}

// FaultFunc observes rendering faults. A nil FaultFunc discards them.
type FaultFunc func(Fault)

func (fn FaultFunc) report(f Fault) {
	if fn != nil {
		fn(f)
	}
}
