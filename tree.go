package jsondiff

import (
	"strconv"
	"strings"
)

// stepKind is the way a node is reached from its parent
type stepKind uint8

const (
	stepRoot stepKind = iota
	stepKey
	stepIndex
)

// node is one entry in a flattened tree. nodes are stored in pre-order, so
// an index into the tree doubles as the node's leaf position
type node struct {
	parent int
	step   stepKind
	// member name when step is stepKey
	key string
	// element position when step is stepIndex
	index int
	value Value
	// byte-ish size of the subtree
	weight   int
	children []int

	unindexed []byte
	indexed   []byte
	cmp       string
}

// tree is an arena of nodes. parents & children refer to arena indices
type tree struct {
	nodes []node
}

// flatten walks v in pre-order, visiting object members in ascending key
// order & array elements in index order. the result only depends on v
func flatten(v Value) *tree {
	t := &tree{}
	t.add(-1, stepRoot, "", 0, orNull(v))
	return t
}

func (t *tree) add(parent int, step stepKind, key string, index int, v Value) int {
	i := len(t.nodes)
	n := node{parent: parent, step: step, key: key, index: index, value: v}

	var pu, pi []byte
	if parent >= 0 {
		pu, pi = t.nodes[parent].unindexed, t.nodes[parent].indexed
	}
	n.unindexed = unindexedHash(pu, step, key)
	n.indexed = indexedHash(pi, step, key, index)
	n.cmp = compareKey(n.unindexed, v)
	t.nodes = append(t.nodes, n)

	weight := 1
	var children []int
	switch x := v.(type) {
	case *Object:
		children = make([]int, 0, x.Len())
		for _, k := range x.SortedKeys() {
			ch := t.add(i, stepKey, k, 0, x.vals[k])
			children = append(children, ch)
			weight += t.nodes[ch].weight
		}
	case *Array:
		children = make([]int, 0, x.Len())
		for idx, el := range x.elems {
			ch := t.add(i, stepIndex, "", idx, el)
			children = append(children, ch)
			weight += t.nodes[ch].weight
		}
	default:
		weight = scalarWeight(v)
	}
	t.nodes[i].children = children
	t.nodes[i].weight = weight
	return i
}

func scalarWeight(v Value) int {
	switch x := v.(type) {
	case Bool:
		if x {
			return 4
		}
		return 5
	case Number:
		return len(x)
	case String:
		return len(x)
	}
	return 4
}

// Len is the number of leaves in the tree
func (t *tree) Len() int { return len(t.nodes) }

// keys lists the comparison key of every leaf, in leaf order
func (t *tree) keys() []string {
	keys := make([]string, len(t.nodes))
	for i, n := range t.nodes {
		keys[i] = n.cmp
	}
	return keys
}

// path renders the location of node i, eg: /a/0/b
func (t *tree) path(i int) string {
	var path []string
	for ; i > 0; i = t.nodes[i].parent {
		n := t.nodes[i]
		if n.step == stepIndex {
			path = append(path, strconv.Itoa(n.index))
		} else {
			path = append(path, n.key)
		}
	}
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
	return "/" + strings.Join(path, "/")
}
