package jsondiff

import "fmt"

// deletePlaceholder is the value written for deletes. appliers ignore it
var deletePlaceholder = Number("0")

// level collects the instructions for one object in the patch tree
type level struct {
	ins    []Instruction
	merges map[string]*level
	order  []Instruction
}

func newLevel() *level {
	return &level{merges: map[string]*level{}}
}

// child returns the nested level for a merge instruction, creating it on
// first use
func (l *level) child(in Instruction) *level {
	key := in.String()
	if ch, ok := l.merges[key]; ok {
		return ch
	}
	ch := newLevel()
	l.merges[key] = ch
	l.order = append(l.order, in)
	return ch
}

// encode writes mutations as a patch document. each object a mutation path
// passes through becomes a merge level, the last object member on the path
// carries the operation
func encode(muts []mutation, st *Stats) (*Object, error) {
	root := newLevel()
	for _, m := range muts {
		st.count(m.op)
		lvl := root
		start := 0
		for i := 1; i <= len(m.path); i++ {
			if i < len(m.path) && m.path[i].elem {
				continue
			}
			group := m.path[start:i]
			if i == len(m.path) {
				lvl.ins = append(lvl.ins, finalInstruction(m, group))
				break
			}
			lvl = lvl.child(Instruction{Op: OpMerge, Key: group[0].key, Indices: groupIndices(group, false)})
			start = i
		}
	}
	return root.object(st)
}

func finalInstruction(m mutation, group []step) Instruction {
	in := Instruction{Key: group[0].key}
	switch m.op {
	case OpDelete:
		in.Op = OpDelete
		in.Indices = groupIndices(group, true)
		in.Value = deletePlaceholder
	case OpInsert:
		in.Indices = groupIndices(group, false)
		in.Op = OpInsert
		if len(in.Indices) == 0 {
			// a new object member is a plain set
			in.Op = OpSet
		}
		in.Value = Clone(m.to)
	default:
		in.Op = OpSet
		in.Indices = groupIndices(group, false)
		in.Value = Clone(m.to)
	}
	return in
}

// groupIndices lists the array positions following an object member step.
// prior selects source positions
func groupIndices(group []step, prior bool) []int {
	var idx []int
	for _, s := range group[1:] {
		if prior {
			idx = append(idx, s.prior)
		} else {
			idx = append(idx, s.index)
		}
	}
	return idx
}

// object renders the level with members in apply order
func (l *level) object(st *Stats) (*Object, error) {
	ins := make([]Instruction, 0, len(l.ins)+len(l.order))
	ins = append(ins, l.ins...)
	for _, in := range l.order {
		sub, err := l.merges[in.String()].object(st)
		if err != nil {
			return nil, err
		}
		in.Value = sub
		ins = append(ins, in)
	}
	if err := sortInstructions(ins); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrStructuralConflict, err)
	}

	obj := NewObject()
	for _, in := range ins {
		if in.Op == OpMerge {
			st.count(OpMerge)
		}
		obj.Set(in.String(), in.Value)
	}
	return obj, nil
}
