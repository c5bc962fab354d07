package parser

// Node is one entry of the parse trace: a grammar rule, or a terminal
// consumed (or expected) by a rule.
type Node struct {
	Name     string  `json:"name"`
	Value    string  `json:"value,omitempty"`
	Note     string  `json:"note,omitempty"`
	Missing  bool    `json:"missing,omitempty"` // expected but absent
	Children []*Node `json:"children,omitempty"`
}

// add appends a child node and returns it.
func (n *Node) add(name, value string) *Node {
	c := &Node{Name: name, Value: value}
	n.Children = append(n.Children, c)
	return c
}

// addMissing appends a placeholder for an absent element.
func (n *Node) addMissing(name string) *Node {
	c := n.add(name, "")
	c.Missing = true
	return c
}

// Walk calls fn for n and every node below it in depth-first order.
// If fn returns false the children of that node are skipped.
func (n *Node) Walk(fn func(n *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}

// Find returns the first node named name in depth-first order, or nil.
func (n *Node) Find(name string) *Node {
	var found *Node
	n.Walk(func(c *Node, _ int) bool {
		if found != nil {
			return false
		}
		if c.Name == name {
			found = c
			return false
		}
		return true
	})
	return found
}
