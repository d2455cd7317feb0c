package jsondiff

import "fmt"

// Apply runs a patch against target, modifying it in place. both target &
// patch must be objects.
// Apply is not atomic: if an instruction fails, the instructions before it
// stay applied. work on a Clone when that matters.
// inserts past the end of an array pad it with nulls, by at most
// MaxInsertPadding elements
func Apply(target, patch Value) error {
	obj, ok := target.(*Object)
	if !ok {
		return fmt.Errorf("%w: target is %s", ErrInvalidRoot, kindOf(target))
	}
	if _, ok := patch.(*Object); !ok {
		return fmt.Errorf("%w: patch is %s", ErrInvalidRoot, kindOf(patch))
	}
	return applyLevel(obj, patch, "")
}

// MaxInsertPadding is the most nulls an insert may add to reach its index.
// inserts further out fail with ErrIndexOutOfBounds
var MaxInsertPadding = 1 << 16

func kindOf(v Value) Kind { return orNull(v).Kind() }

// applyLevel runs one level of instructions against obj. path is used in
// error messages
func applyLevel(obj *Object, patch Value, path string) error {
	ins, err := parseInstructions(patch)
	if err != nil {
		if path != "" {
			return fmt.Errorf("%s: %w", path, err)
		}
		return err
	}
	for _, in := range ins {
		if err := applyInstruction(obj, in, path); err != nil {
			return err
		}
	}
	return nil
}

func applyInstruction(obj *Object, in Instruction, path string) error {
	p := path + "/" + in.String()
	if len(in.Indices) == 0 {
		switch in.Op {
		case OpSet:
			obj.Set(in.Key, Clone(in.Value))
		case OpDelete:
			obj.Remove(in.Key)
		case OpMerge:
			child, _ := obj.Get(in.Key)
			merged, err := merge(child, in.Value, p)
			if err != nil {
				return err
			}
			obj.Set(in.Key, merged)
		default:
			return fmt.Errorf("%s: %w: %s without an index", p, ErrMalformedInstruction, in.Op)
		}
		return nil
	}

	arr, err := arrayAt(obj, in, p)
	if err != nil {
		return err
	}
	i := in.Indices[len(in.Indices)-1]

	switch in.Op {
	case OpInsert:
		if i-arr.Len() > MaxInsertPadding {
			return fmt.Errorf("%s: %w: index %d, length %d", p, ErrIndexOutOfBounds, i, arr.Len())
		}
		for arr.Len() < i {
			arr.Push(Null{})
		}
		arr.Insert(i, Clone(in.Value))
		return nil
	case OpSet, OpDelete, OpMerge:
		if i >= arr.Len() {
			return fmt.Errorf("%s: %w: index %d, length %d", p, ErrIndexOutOfBounds, i, arr.Len())
		}
	}

	switch in.Op {
	case OpSet:
		arr.Set(i, Clone(in.Value))
	case OpDelete:
		arr.Remove(i)
	case OpMerge:
		merged, err := merge(arr.Get(i), in.Value, p)
		if err != nil {
			return err
		}
		arr.Set(i, merged)
	}
	return nil
}

// arrayAt resolves the array the last index of in addresses, walking
// through any arrays nested directly in arrays. inserting into a missing
// member creates it
func arrayAt(obj *Object, in Instruction, p string) (*Array, error) {
	v, ok := obj.Get(in.Key)
	if !ok && in.Op == OpInsert && len(in.Indices) == 1 {
		arr := NewArray()
		obj.Set(in.Key, arr)
		return arr, nil
	}
	arr, ok := v.(*Array)
	if !ok {
		return nil, fmt.Errorf("%s: %w: %q is %s, not an array", p, ErrStructuralConflict, in.Key, describe(v, ok))
	}
	for _, idx := range in.Indices[:len(in.Indices)-1] {
		if idx >= arr.Len() {
			return nil, fmt.Errorf("%s: %w: index %d, length %d", p, ErrIndexOutOfBounds, idx, arr.Len())
		}
		next, ok := arr.Get(idx).(*Array)
		if !ok {
			return nil, fmt.Errorf("%s: %w: element %d is %s, not an array", p, ErrStructuralConflict, idx, arr.Get(idx).Kind())
		}
		arr = next
	}
	return arr, nil
}

func describe(v Value, present bool) string {
	if v == nil && !present {
		return "missing"
	}
	return kindOf(v).String()
}

// merge applies a nested patch to target, returning the merged value. a
// payload that isn't a patch, or a target that isn't an object, turns the
// merge into a plain set
func merge(target, payload Value, p string) (Value, error) {
	obj, ok := target.(*Object)
	if !ok {
		return Clone(payload), nil
	}
	if _, isObj := payload.(*Object); !isObj && !isInstructionList(payload) {
		return Clone(payload), nil
	}
	if err := applyLevel(obj, payload, p); err != nil {
		return nil, err
	}
	return obj, nil
}
