package jsondiff

import (
	"fmt"
	"strings"
)

// step is one hop of a mutation path. array steps carry the element's
// position in both documents: Index in the destination, Prior in the source
type step struct {
	key   string
	elem  bool
	index int
	prior int
}

// mutation is a change at a single position
type mutation struct {
	op       Op
	path     []step
	from, to Value
}

// reconciler turns an edit script over two flattened trees into a
// consistent set of mutations. every mutation's array indices are the ones
// valid at the moment the encoded instruction executes
type reconciler struct {
	cfg      *DiffConfig
	from, to *tree
	// leaf matches from the edit script, from node -> to node or -1
	matches []int

	muts []mutation
	seen map[string]struct{}
}

func newReconciler(cfg *DiffConfig, from, to *tree) *reconciler {
	return &reconciler{
		cfg:  cfg,
		from: from,
		to:   to,
		seen: map[string]struct{}{},
	}
}

// align matches leaves based on the edit script, adjusting change ranges
// that start one array element too late
func (r *reconciler) align(script []EditScriptEntry) {
	fromChanged := make([]bool, r.from.Len())
	toChanged := make([]bool, r.to.Len())
	for _, e := range script {
		mark(fromChanged, e.DeletedStart, e.DeletedEnd)
		mark(toChanged, e.AddedStart, e.AddedEnd)
	}
	for i := range script {
		e := &script[i]
		e.DeletedStart, e.DeletedEnd = adjustBoundary(r.from, fromChanged, e.DeletedStart, e.DeletedEnd)
		e.AddedStart, e.AddedEnd = adjustBoundary(r.to, toChanged, e.AddedStart, e.AddedEnd)
	}

	r.matches = make([]int, r.from.Len())
	for i := range r.matches {
		r.matches[i] = -1
	}
	fi, ti := 0, 0
	for {
		for fi < len(fromChanged) && fromChanged[fi] {
			fi++
		}
		for ti < len(toChanged) && toChanged[ti] {
			ti++
		}
		if fi >= len(fromChanged) || ti >= len(toChanged) {
			break
		}
		if r.from.nodes[fi].cmp == r.to.nodes[ti].cmp {
			r.matches[fi] = ti
		}
		fi++
		ti++
	}
}

func mark(changed []bool, start, end int) {
	if start < 0 {
		return
	}
	for i := start; i <= end; i++ {
		changed[i] = true
	}
}

// adjustBoundary shifts a changed range left while the leaf entering the
// range and the leaf leaving it compare equal, stopping once the range
// starts on an array element. when two neighbouring elements share a shape
// the sequence matcher can report a range that straddles them, eg: the tail
// of the first element plus the head of the second. shifting realigns the
// range to whole elements. ranges that would move over changed leaves are
// left alone
func adjustBoundary(t *tree, changed []bool, start, end int) (int, int) {
	if start <= 0 || end <= 0 || end == start {
		return start, end
	}
	hasElem := false
	for i := start + 1; i <= end; i++ {
		if t.nodes[i].step == stepIndex {
			hasElem = true
			break
		}
	}
	if !hasElem {
		return start, end
	}

	for adj := 1; start-adj >= 0; adj++ {
		lo, hi := start-adj, end-adj+1
		if changed[lo] || t.nodes[lo].cmp != t.nodes[hi].cmp {
			return start, end
		}
		if t.nodes[lo].step == stepIndex {
			for i := lo; i < start; i++ {
				changed[i] = true
			}
			for i := hi; i <= end; i++ {
				changed[i] = false
			}
			return lo, end - adj
		}
	}
	return start, end
}

func (r *reconciler) emit(from, to Value) bool {
	if r.cfg == nil || r.cfg.ShouldEmit == nil {
		return true
	}
	return r.cfg.ShouldEmit(from, to)
}

// reconcile walks matched container pairs top down from the roots,
// recording mutations
func (r *reconciler) reconcile() error {
	return r.pair(0, 0, nil)
}

// pair compares two containers of the same kind
func (r *reconciler) pair(fi, ti int, path []step) error {
	fv, tv := r.from.nodes[fi].value, r.to.nodes[ti].value
	if !r.emit(fv, tv) {
		return nil
	}
	switch fv.(type) {
	case *Object:
		return r.pairObjects(fi, ti, path)
	case *Array:
		return r.pairArrays(fi, ti, path)
	}
	return nil
}

// pairObjects compares members by key. children are stored in ascending key
// order, so members pair up with a single merge pass
func (r *reconciler) pairObjects(fi, ti int, path []step) error {
	fcs, tcs := r.from.nodes[fi].children, r.to.nodes[ti].children
	a, b := 0, 0
	for a < len(fcs) || b < len(tcs) {
		var c int
		switch {
		case a == len(fcs):
			c = 1
		case b == len(tcs):
			c = -1
		default:
			c = strings.Compare(r.from.nodes[fcs[a]].key, r.to.nodes[tcs[b]].key)
		}

		var err error
		switch {
		case c < 0:
			f := r.from.nodes[fcs[a]]
			err = r.record(OpDelete, withStep(path, step{key: f.key}), f.value, nil)
			a++
		case c > 0:
			t := r.to.nodes[tcs[b]]
			err = r.record(OpInsert, withStep(path, step{key: t.key}), nil, t.value)
			b++
		default:
			err = r.replace(fcs[a], tcs[b], withStep(path, step{key: r.to.nodes[tcs[b]].key}))
			a++
			b++
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// pairArrays keeps the elements the edit script matched within this array
// pair. each gap between kept elements pairs removed & added elements in
// order, the surplus becomes deletes or inserts
func (r *reconciler) pairArrays(fi, ti int, path []step) error {
	fcs, tcs := r.from.nodes[fi].children, r.to.nodes[ti].children

	type keep struct{ a, b int }
	var kept []keep
	last := -1
	for a, f := range fcs {
		t := r.matches[f]
		if t < 0 || r.to.nodes[t].parent != ti {
			continue
		}
		fv, tv := r.from.nodes[f].value, r.to.nodes[t].value
		if fv.Kind() != tv.Kind() || (!isContainer(fv) && !Equal(fv, tv)) {
			continue
		}
		b := r.to.nodes[t].index
		if b <= last {
			return fmt.Errorf("%w: %s: element %d matched out of order", ErrStructuralConflict, r.from.path(fi), a)
		}
		last = b
		kept = append(kept, keep{a, b})
	}
	kept = append(kept, keep{len(fcs), len(tcs)})

	a0, b0 := 0, 0
	priorDeletes, priorInserts := 0, 0
	for _, k := range kept {
		n := min(k.a-a0, k.b-b0)
		for i := 0; i < n; i++ {
			a, b := a0+i, b0+i
			if err := r.checkShift(fi, a, b, priorDeletes, priorInserts); err != nil {
				return err
			}
			if err := r.replace(fcs[a], tcs[b], withStep(path, step{elem: true, index: b, prior: a})); err != nil {
				return err
			}
		}
		for a := a0 + n; a < k.a; a++ {
			if err := r.record(OpDelete, withStep(path, step{elem: true, index: -1, prior: a}), r.from.nodes[fcs[a]].value, nil); err != nil {
				return err
			}
			priorDeletes++
		}
		for b := b0 + n; b < k.b; b++ {
			if err := r.record(OpInsert, withStep(path, step{elem: true, index: b, prior: -1}), nil, r.to.nodes[tcs[b]].value); err != nil {
				return err
			}
			priorInserts++
		}

		if k.a == len(fcs) {
			break
		}
		if err := r.checkShift(fi, k.a, k.b, priorDeletes, priorInserts); err != nil {
			return err
		}
		if isContainer(r.from.nodes[fcs[k.a]].value) {
			if err := r.pair(fcs[k.a], tcs[k.b], withStep(path, step{elem: true, index: k.b, prior: k.a})); err != nil {
				return err
			}
		}
		a0, b0 = k.a+1, k.b+1
	}
	return nil
}

// checkShift confirms a surviving element lands where the destination has
// it once the preceding deletes & inserts ran
func (r *reconciler) checkShift(fi, a, b, priorDeletes, priorInserts int) error {
	if a-priorDeletes+priorInserts != b {
		return fmt.Errorf("%w: %s: element %d shifts to %d, expected %d", ErrStructuralConflict,
			r.from.path(fi), a, a-priorDeletes+priorInserts, b)
	}
	return nil
}

// replace handles two values sharing a position. containers of the same
// kind are compared member by member, anything else that differs is set
func (r *reconciler) replace(f, t int, path []step) error {
	fv, tv := r.from.nodes[f].value, r.to.nodes[t].value
	if isContainer(fv) && fv.Kind() == tv.Kind() {
		return r.pair(f, t, path)
	}
	if Equal(fv, tv) {
		return nil
	}
	return r.record(OpSet, path, fv, tv)
}

// record adds a mutation unless it's filtered out. two mutations on the
// same position are a conflict
func (r *reconciler) record(op Op, path []step, from, to Value) error {
	if !r.emit(from, to) {
		return nil
	}
	for _, s := range path {
		if !s.elem && !encodableKey(s.key) {
			return fmt.Errorf("%w: key %q can't be written in a patch", ErrStructuralConflict, s.key)
		}
	}
	pos := positionKey(op, path)
	if _, dup := r.seen[pos]; dup {
		return fmt.Errorf("%w: more than one change at %s", ErrStructuralConflict, formatPath(path))
	}
	r.seen[pos] = struct{}{}
	r.muts = append(r.muts, mutation{op: op, path: path, from: from, to: to})
	return nil
}

// positionKey is the indexed hash of the position a mutation applies to.
// deletes address source positions, everything else destination positions,
// so the two are kept apart
func positionKey(op Op, path []step) string {
	class := byte('s')
	if op == OpDelete {
		class = 'd'
	}
	final := finalGroup(path)
	sum := []byte{class}
	for i, s := range path {
		if !s.elem {
			sum = indexedHash(sum, stepKey, s.key, 0)
			continue
		}
		idx := s.index
		if op == OpDelete && i >= final {
			idx = s.prior
		}
		sum = indexedHash(sum, stepIndex, "", idx)
	}
	return hashStr(sum)
}

// finalGroup returns the position of the last object member step in path.
// the steps from there on make up the instruction carrying the operation
func finalGroup(path []step) int {
	for i := len(path) - 1; i >= 0; i-- {
		if !path[i].elem {
			return i
		}
	}
	return 0
}

// encodableKey reports whether key survives a trip through the patch key
// grammar. operation markers in front or an index suffix would be misread
func encodableKey(key string) bool {
	if strings.HasPrefix(key, "~") || strings.HasPrefix(key, "-") {
		return false
	}
	return !strings.HasSuffix(key, "]")
}

func formatPath(path []step) string {
	b := &strings.Builder{}
	for _, s := range path {
		if s.elem {
			idx := s.index
			if idx < 0 {
				idx = s.prior
			}
			fmt.Fprintf(b, "[%d]", idx)
			continue
		}
		b.WriteByte('/')
		b.WriteString(s.key)
	}
	return b.String()
}

func isContainer(v Value) bool {
	return IsObject(v) || IsArray(v)
}

// withStep extends path without sharing the backing array with siblings
func withStep(path []step, s step) []step {
	p := make([]step, len(path), len(path)+1)
	copy(p, path)
	return append(p, s)
}
