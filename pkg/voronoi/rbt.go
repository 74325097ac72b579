package voronoi

// nilNode is the null link of the tree arrays.
const nilNode = -1

// rbt is a red-black tree whose order is positional: nodes are inserted right
// after a given node, never by comparing values. All links are indexes into
// the parallel slices, previous/next thread the in-order sequence.
type rbt struct {
	root     int
	size     int
	value    []int
	left     []int
	right    []int
	parent   []int
	previous []int
	next     []int
	red      []bool
}

func newRBTree(capacity int) *rbt {
	return &rbt{
		root:     nilNode,
		value:    make([]int, 0, capacity),
		left:     make([]int, 0, capacity),
		right:    make([]int, 0, capacity),
		parent:   make([]int, 0, capacity),
		previous: make([]int, 0, capacity),
		next:     make([]int, 0, capacity),
		red:      make([]bool, 0, capacity),
	}
}

func (t *rbt) newNode(value int) int {
	if len(t.value) == cap(t.value) {
		fatalf(ErrCapacity, "beach line holds %d nodes", cap(t.value))
	}
	t.value = append(t.value, value)
	t.left = append(t.left, nilNode)
	t.right = append(t.right, nilNode)
	t.parent = append(t.parent, nilNode)
	t.previous = append(t.previous, nilNode)
	t.next = append(t.next, nilNode)
	t.red = append(t.red, true)
	return len(t.value) - 1
}

func (t *rbt) isRed(node int) bool {
	return node != nilNode && t.red[node]
}

// insertSuccessor links a new node holding value right after node, or at the
// leftmost position when node is nilNode, and returns it.
func (t *rbt) insertSuccessor(node, value int) int {
	successor := t.newNode(value)
	t.size++

	var parent int
	if node != nilNode {
		t.previous[successor] = node
		t.next[successor] = t.next[node]
		if t.next[node] != nilNode {
			t.previous[t.next[node]] = successor
		}
		t.next[node] = successor
		if t.right[node] != nilNode {
			node = t.getFirst(t.right[node])
			t.left[node] = successor
		} else {
			t.right[node] = successor
		}
		parent = node
	} else if t.root != nilNode {
		node = t.getFirst(t.root)
		t.next[successor] = node
		t.previous[node] = successor
		t.left[node] = successor
		parent = node
	} else {
		t.root = successor
		parent = nilNode
	}
	t.parent[successor] = parent

	var grandpa, uncle int
	node = successor
	for parent != nilNode && t.red[parent] {
		grandpa = t.parent[parent]
		if parent == t.left[grandpa] {
			uncle = t.right[grandpa]
			if t.isRed(uncle) {
				t.red[parent] = false
				t.red[uncle] = false
				t.red[grandpa] = true
				node = grandpa
			} else {
				if node == t.right[parent] {
					t.rotateLeft(parent)
					node = parent
					parent = t.parent[node]
				}
				t.red[parent] = false
				t.red[grandpa] = true
				t.rotateRight(grandpa)
			}
		} else {
			uncle = t.left[grandpa]
			if t.isRed(uncle) {
				t.red[parent] = false
				t.red[uncle] = false
				t.red[grandpa] = true
				node = grandpa
			} else {
				if node == t.left[parent] {
					t.rotateRight(parent)
					node = parent
					parent = t.parent[node]
				}
				t.red[parent] = false
				t.red[grandpa] = true
				t.rotateLeft(grandpa)
			}
		}
		parent = t.parent[node]
	}
	t.red[t.root] = false
	return successor
}

func (t *rbt) removeNode(node int) {
	t.size--
	if t.next[node] != nilNode {
		t.previous[t.next[node]] = t.previous[node]
	}
	if t.previous[node] != nilNode {
		t.next[t.previous[node]] = t.next[node]
	}
	t.next[node] = nilNode
	t.previous[node] = nilNode

	parent := t.parent[node]
	left := t.left[node]
	right := t.right[node]
	var next int
	if left == nilNode {
		next = right
	} else if right == nilNode {
		next = left
	} else {
		next = t.getFirst(right)
	}
	if parent != nilNode {
		if t.left[parent] == node {
			t.left[parent] = next
		} else {
			t.right[parent] = next
		}
	} else {
		t.root = next
	}

	var isRed bool
	if left != nilNode && right != nilNode {
		isRed = t.red[next]
		t.red[next] = t.red[node]
		t.left[next] = left
		t.parent[left] = next
		if next != right {
			parent = t.parent[next]
			t.parent[next] = t.parent[node]
			node = t.right[next]
			t.left[parent] = node
			t.right[next] = right
			t.parent[right] = next
		} else {
			t.parent[next] = parent
			parent = next
			node = t.right[next]
		}
	} else {
		isRed = t.red[node]
		node = next
	}
	if node != nilNode {
		t.parent[node] = parent
	}
	if isRed {
		return
	}
	if t.isRed(node) {
		t.red[node] = false
		return
	}

	var sibling int
	for node != t.root {
		if node == t.left[parent] {
			sibling = t.right[parent]
			if t.red[sibling] {
				t.red[sibling] = false
				t.red[parent] = true
				t.rotateLeft(parent)
				sibling = t.right[parent]
			}
			if t.isRed(t.left[sibling]) || t.isRed(t.right[sibling]) {
				if !t.isRed(t.right[sibling]) {
					t.red[t.left[sibling]] = false
					t.red[sibling] = true
					t.rotateRight(sibling)
					sibling = t.right[parent]
				}
				t.red[sibling] = t.red[parent]
				t.red[parent] = false
				t.red[t.right[sibling]] = false
				t.rotateLeft(parent)
				node = t.root
				break
			}
		} else {
			sibling = t.left[parent]
			if t.red[sibling] {
				t.red[sibling] = false
				t.red[parent] = true
				t.rotateRight(parent)
				sibling = t.left[parent]
			}
			if t.isRed(t.left[sibling]) || t.isRed(t.right[sibling]) {
				if !t.isRed(t.left[sibling]) {
					t.red[t.right[sibling]] = false
					t.red[sibling] = true
					t.rotateLeft(sibling)
					sibling = t.left[parent]
				}
				t.red[sibling] = t.red[parent]
				t.red[parent] = false
				t.red[t.left[sibling]] = false
				t.rotateRight(parent)
				node = t.root
				break
			}
		}
		t.red[sibling] = true
		node = parent
		parent = t.parent[parent]
		if t.red[node] {
			break
		}
	}
	if node != nilNode {
		t.red[node] = false
	}
}

func (t *rbt) rotateLeft(p int) {
	q := t.right[p]
	parent := t.parent[p]
	if parent != nilNode {
		if t.left[parent] == p {
			t.left[parent] = q
		} else {
			t.right[parent] = q
		}
	} else {
		t.root = q
	}
	t.parent[q] = parent
	t.parent[p] = q
	t.right[p] = t.left[q]
	if t.right[p] != nilNode {
		t.parent[t.right[p]] = p
	}
	t.left[q] = p
}

func (t *rbt) rotateRight(p int) {
	q := t.left[p]
	parent := t.parent[p]
	if parent != nilNode {
		if t.left[parent] == p {
			t.left[parent] = q
		} else {
			t.right[parent] = q
		}
	} else {
		t.root = q
	}
	t.parent[q] = parent
	t.parent[p] = q
	t.left[p] = t.right[q]
	if t.left[p] != nilNode {
		t.parent[t.left[p]] = p
	}
	t.right[q] = p
}

func (t *rbt) getFirst(node int) int {
	for t.left[node] != nilNode {
		node = t.left[node]
	}
	return node
}

// first returns the leftmost node, nilNode for an empty tree.
func (t *rbt) first() int {
	if t.root == nilNode {
		return nilNode
	}
	return t.getFirst(t.root)
}
