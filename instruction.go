package jsondiff

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Op is the operation an instruction performs
type Op uint8

const (
	// OpSet replaces or creates an object member or array element
	OpSet Op = iota
	// OpInsert adds an array element, shifting later elements right
	OpInsert
	// OpDelete removes an object member or array element
	OpDelete
	// OpMerge applies a nested patch to an object member or array element
	OpMerge
)

func (o Op) String() string {
	switch o {
	case OpSet:
		return "set"
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	case OpMerge:
		return "merge"
	default:
		return "unknown"
	}
}

// Instruction is a single parsed patch member
type Instruction struct {
	Op  Op
	Key string
	// Indices address an element of the array at Key. more than one index
	// walks into arrays nested directly in arrays, only the last index can be
	// an insert position
	Indices []int
	// Value is the new value for sets & inserts, the nested patch for merges
	Value Value
}

// ParseInstruction reads a patch member key. val becomes the instruction's
// Value
func ParseInstruction(key string, val Value) (Instruction, error) {
	in := Instruction{Op: OpSet, Value: val}
	raw := key

	switch {
	case strings.HasPrefix(key, "~"):
		in.Op = OpMerge
		key = key[1:]
	case strings.HasPrefix(key, "-"):
		in.Op = OpDelete
		key = key[1:]
	}

	insert := false
	for strings.HasSuffix(key, "]") {
		open := strings.LastIndexByte(key, '[')
		if open < 0 {
			return in, fmt.Errorf("%w %q: unbalanced brackets", ErrMalformedInstruction, raw)
		}
		body := key[open+1 : len(key)-1]
		if strings.HasPrefix(body, "+") {
			if len(in.Indices) > 0 {
				return in, fmt.Errorf("%w %q: insert position must be the last index", ErrMalformedInstruction, raw)
			}
			insert = true
			body = body[1:]
		}
		idx, err := parseIndex(body)
		if err != nil {
			return in, fmt.Errorf("%w %q: %s", ErrMalformedInstruction, raw, err)
		}
		in.Indices = append([]int{idx}, in.Indices...)
		key = key[:open]
	}

	if insert {
		if in.Op != OpSet {
			return in, fmt.Errorf("%w %q: %s can't be combined with an insert", ErrMalformedInstruction, raw, in.Op)
		}
		in.Op = OpInsert
	}
	in.Key = key
	return in, nil
}

func parseIndex(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty array index")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("invalid array index %q", s)
		}
	}
	return strconv.Atoi(s)
}

// String formats the instruction as a patch member key
func (in Instruction) String() string {
	b := &strings.Builder{}
	switch in.Op {
	case OpMerge:
		b.WriteByte('~')
	case OpDelete:
		b.WriteByte('-')
	}
	b.WriteString(in.Key)
	for i, idx := range in.Indices {
		b.WriteByte('[')
		if in.Op == OpInsert && i == len(in.Indices)-1 {
			b.WriteByte('+')
		}
		b.WriteString(strconv.Itoa(idx))
		b.WriteByte(']')
	}
	return b.String()
}

func (in Instruction) rank() int {
	switch in.Op {
	case OpDelete:
		return 0
	case OpMerge:
		return 2
	default:
		return 1
	}
}

// compareInstructions is the order instructions run in at one patch level:
// deletes, then sets & inserts, then merges. within a rank instructions are
// ordered by key, then by index. deletes run highest index first so every
// delete can address the unmodified source array, everything else runs
// lowest index first. a set runs before an insert at the same position
func compareInstructions(a, b Instruction) int {
	if ra, rb := a.rank(), b.rank(); ra != rb {
		return ra - rb
	}
	if c := strings.Compare(a.Key, b.Key); c != 0 {
		return c
	}
	if c := compareIndices(a.Indices, b.Indices, a.Op == OpDelete); c != 0 {
		return c
	}
	return int(a.Op) - int(b.Op)
}

func compareIndices(a, b []int, descending bool) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] == b[i] {
			continue
		}
		if (a[i] < b[i]) != descending {
			return -1
		}
		return 1
	}
	return len(a) - len(b)
}

// sortInstructions puts ins in apply order, failing if any two
// instructions can't be told apart
func sortInstructions(ins []Instruction) error {
	sort.SliceStable(ins, func(i, j int) bool {
		return compareInstructions(ins[i], ins[j]) < 0
	})
	for i := 1; i < len(ins); i++ {
		if compareInstructions(ins[i-1], ins[i]) == 0 {
			return fmt.Errorf("%w: %q and %q", ErrDuplicateInstruction, ins[i-1], ins[i])
		}
	}
	return nil
}

// parseInstructions reads one level of a patch into instructions, sorted in
// apply order. a level is either an object or an array of single member
// objects
func parseInstructions(patch Value) ([]Instruction, error) {
	var ins []Instruction
	add := func(key string, val Value) error {
		in, err := ParseInstruction(key, val)
		if err != nil {
			return err
		}
		ins = append(ins, in)
		return nil
	}

	switch x := patch.(type) {
	case *Object:
		for _, k := range x.keys {
			if err := add(k, x.vals[k]); err != nil {
				return nil, err
			}
		}
	case *Array:
		for i, el := range x.elems {
			obj, ok := el.(*Object)
			if !ok || obj.Len() != 1 {
				return nil, fmt.Errorf("%w: merge list element %d is not a single member object", ErrMalformedInstruction, i)
			}
			k := obj.keys[0]
			if err := add(k, obj.vals[k]); err != nil {
				return nil, err
			}
		}
	default:
		return nil, ErrInvalidRoot
	}

	if err := sortInstructions(ins); err != nil {
		return nil, err
	}
	return ins, nil
}

// isInstructionList reports whether v is the array form of a nested patch
func isInstructionList(v Value) bool {
	arr, ok := v.(*Array)
	if !ok || arr.Len() == 0 {
		return false
	}
	for _, el := range arr.elems {
		if obj, ok := el.(*Object); !ok || obj.Len() != 1 {
			return false
		}
	}
	return true
}
