package ast

// FindAll returns every node under root (root included) matching the
// predicate, in traversal order.
func FindAll(root Node, pred func(Node) bool) []Node {
	var matches []Node
	Walk(root, Visitor{
		Enter: func(n Node) Action {
			if pred(n) {
				matches = append(matches, n)
			}
			return Continue
		},
	})
	return matches
}

// Find returns the first node under root matching the predicate, or nil.
// Traversal stops as soon as a match is found.
func Find(root Node, pred func(Node) bool) Node {
	var match Node
	Walk(root, Visitor{
		Enter: func(n Node) Action {
			if pred(n) {
				match = n
				return Stop
			}
			return Continue
		},
	})
	return match
}

// FindKind returns every node under root with the given Kind().
func FindKind(root Node, kind string) []Node {
	return FindAll(root, func(n Node) bool { return n.Kind() == kind })
}

// Path returns the chain of nodes from root to target inclusive, found by
// depth-first backtracking. It returns nil if target is not reachable from
// root. Nodes are compared by identity.
func Path(root Node, target Node) []Node {
	if root == nil || target == nil {
		return nil
	}
	var path []Node
	var search func(n Node) bool
	search = func(n Node) bool {
		path = append(path, n)
		if n == target {
			return true
		}
		for _, child := range n.Children() {
			if child == nil {
				continue
			}
			if search(child) {
				return true
			}
		}
		path = path[:len(path)-1]
		return false
	}
	if search(root) {
		return path
	}
	return nil
}
