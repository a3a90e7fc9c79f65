package ast

// Action controls traversal from a Visitor's Enter hook.
type Action int

// Enter results.
const (
	// Continue descends into the node's children.
	Continue Action = iota

	// SkipChildren skips the node's children but still fires Exit for the
	// node itself.
	SkipChildren

	// Stop aborts the entire traversal. No further Enter or Exit fires for
	// any node, including pending ancestors.
	Stop
)

// Visitor holds the traversal hooks. Either hook may be nil.
type Visitor struct {
	// Enter fires pre-order. A nil Enter is treated as Continue.
	Enter func(Node) Action

	// Exit fires post-order for every entered node, including nodes whose
	// children were skipped.
	Exit func(Node)
}

// Walk traverses the tree rooted at root depth-first and invokes the
// visitor's hooks. It returns true if the traversal was stopped early.
//
// A nil root is a no-op. Nodes whose Children() returns nil are leaves, so
// trees mixing in node types this package does not know about degrade to
// partial traversal rather than failing.
func Walk(root Node, v Visitor) bool {
	if root == nil {
		return false
	}
	return walk(root, v)
}

func walk(n Node, v Visitor) (stopped bool) {
	action := Continue
	if v.Enter != nil {
		action = v.Enter(n)
	}
	if action == Stop {
		return true
	}

	if action != SkipChildren {
		for _, child := range n.Children() {
			if child == nil {
				continue
			}
			if walk(child, v) {
				return true
			}
		}
	}

	if v.Exit != nil {
		v.Exit(n)
	}
	return false
}
