package jsondiff

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type PatchTestCase struct {
	description string
	tree, patch string
	expect      string
	expectErr   error
}

func RunPatchTestCases(t *testing.T, cases []PatchTestCase) {
	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			tree := mustDecode(t, c.tree)
			err := Apply(tree, mustDecode(t, c.patch))
			if c.expectErr != nil {
				if !errors.Is(err, c.expectErr) {
					t.Fatalf("expected error %q, got: %v", c.expectErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if diff := cmp.Diff(ToNative(mustDecode(t, c.expect)), ToNative(tree)); diff != "" {
				t.Errorf("patched result mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPatch(t *testing.T) {
	cases := []PatchTestCase{
		{"set new member", `{}`, `{"a":1}`, `{"a":1}`, nil},
		{"set existing member", `{"a":1,"b":2}`, `{"a":{"x":[]}}`, `{"a":{"x":[]},"b":2}`, nil},
		{"delete member", `{"a":1,"b":2}`, `{"-a":0}`, `{"b":2}`, nil},
		{"delete missing member", `{"a":1}`, `{"-b":0}`, `{"a":1}`, nil},
		{"delete value is ignored", `{"a":1}`, `{"-a":{"anything":true}}`, `{}`, nil},
		{"merge into member", `{"a":1,"b":{"c":1,"d":2}}`, `{"~b":{"c":2,"-d":0}}`, `{"a":1,"b":{"c":2}}`, nil},
		{"merge instruction list", `{"b":{"c":1,"d":2}}`, `{"~b":[{"c":2},{"-d":0}]}`, `{"b":{"c":2}}`, nil},
		{"merge into missing member sets it", `{}`, `{"~a":1}`, `{"a":1}`, nil},
		{"merge into primitive sets it", `{"a":1}`, `{"~a":{"b":1}}`, `{"a":{"b":1}}`, nil},
		{"merge primitive into object sets it", `{"a":{"b":1}}`, `{"~a":2}`, `{"a":2}`, nil},
		{"merge array into object sets it", `{"a":{"b":1}}`, `{"~a":[1,2]}`, `{"a":[1,2]}`, nil},
		{"set element", `{"a":[0,1,2]}`, `{"a[1]":"x"}`, `{"a":[0,"x",2]}`, nil},
		{"insert element", `{"a":[0,1,2]}`, `{"a[+1]":"x"}`, `{"a":[0,"x",1,2]}`, nil},
		{"insert at end", `{"a":[0]}`, `{"a[+1]":1}`, `{"a":[0,1]}`, nil},
		{"insert pads with null", `{"a":[0]}`, `{"a[+3]":3}`, `{"a":[0,null,null,3]}`, nil},
		{"insert creates array", `{}`, `{"a[+0]":1}`, `{"a":[1]}`, nil},
		{"delete element", `{"a":[0,1,2]}`, `{"-a[1]":0}`, `{"a":[0,2]}`, nil},
		{"delete highest index first", `{"a":[0,1,2,3]}`, `{"-a[1]":0,"-a[2]":0}`, `{"a":[0,3]}`, nil},
		{"delete then insert", `{"a":[0,1,2]}`, `{"-a[0]":null,"-a[1]":null,"a[+1]":3}`, `{"a":[2,3]}`, nil},
		{"inserts run lowest index first", `{"a":[]}`, `{"a[+1]":1,"a[+0]":0,"a[+2]":2}`, `{"a":[0,1,2]}`, nil},
		{"set before insert at same index", `{"a":[0,1]}`, `{"a[+1]":"new","a[1]":"set"}`, `{"a":[0,"new","set"]}`, nil},
		{"merge into element", `{"a":[0,{"b":1},3]}`, `{"~a[1]":{"c":2}}`, `{"a":[0,{"b":1,"c":2},3]}`, nil},
		{"merge into primitive element sets it", `{"a":[0,1]}`, `{"~a[1]":{"c":2}}`, `{"a":[0,{"c":2}]}`, nil},
		{"merges run last", `{"a":[{"x":1},{"y":2}]}`, `{"~a[0]":{"z":3},"-a[0]":0}`, `{"a":[{"y":2,"z":3}]}`, nil},
		{"nested arrays", `{"a":[1,[2,3]]}`, `{"-a[1][0]":0,"a[1][+1]":4}`, `{"a":[1,[3,4]]}`, nil},
		{"nested merge", `{"a":{"b":{"c":[1,2]}}}`, `{"~a":{"~b":{"c[0]":0}}}`, `{"a":{"b":{"c":[0,2]}}}`, nil},
		{"set and merge same member", `{"a":1}`, `{"a":{"b":1},"~a":{"c":2}}`, `{"a":{"b":1,"c":2}}`, nil},

		{"insert too far past the end", `{"a":[0]}`, `{"a[+999999999999]":1}`, ``, ErrIndexOutOfBounds},
		{"insert into missing member too far out", `{}`, `{"a[+70000]":1}`, ``, ErrIndexOutOfBounds},
		{"malformed index", `{}`, `{"a[bad]":2}`, ``, ErrMalformedInstruction},
		{"merge insert", `{"a":[]}`, `{"~a[+1]":{}}`, ``, ErrMalformedInstruction},
		{"delete insert", `{"a":[]}`, `{"-a[+1]":0}`, ``, ErrMalformedInstruction},
		{"nested malformed", `{"a":{}}`, `{"~a":{"b[x]":1}}`, ``, ErrMalformedInstruction},
		{"set out of bounds", `{"a":[0]}`, `{"a[1]":1}`, ``, ErrIndexOutOfBounds},
		{"delete out of bounds", `{"a":[0]}`, `{"-a[3]":0}`, ``, ErrIndexOutOfBounds},
		{"merge out of bounds", `{"a":[]}`, `{"~a[0]":{"b":1}}`, ``, ErrIndexOutOfBounds},
		{"outer index out of bounds", `{"a":[[0]]}`, `{"a[1][0]":1}`, ``, ErrIndexOutOfBounds},
		{"index into object", `{"a":{"0":1}}`, `{"a[0]":1}`, ``, ErrStructuralConflict},
		{"index into missing member", `{}`, `{"a[0]":1}`, ``, ErrStructuralConflict},
		{"outer element not an array", `{"a":[0]}`, `{"a[0][0]":1}`, ``, ErrStructuralConflict},
		{"patch not an object", `{}`, `[]`, ``, ErrInvalidRoot},
		{"target not an object", `[]`, `{}`, ``, ErrInvalidRoot},
	}
	RunPatchTestCases(t, cases)
}

func TestPatchDuplicateInstruction(t *testing.T) {
	// objects keep keys unique, so duplicates only show up in the list form
	tree := mustDecode(t, `{"a":{"b":[0,1]}}`)
	err := Apply(tree, mustDecode(t, `{"~a":[{"b[1]":1},{"b[1]":2}]}`))
	if !errors.Is(err, ErrDuplicateInstruction) {
		t.Errorf("expected a duplicate instruction error, got: %v", err)
	}
}

func TestPatchClonesValues(t *testing.T) {
	tree := mustDecode(t, `{}`)
	patch := mustDecode(t, `{"a":{"b":1}}`)
	if err := Apply(tree, patch); err != nil {
		t.Fatal(err)
	}
	a, _ := tree.(*Object).Get("a")
	a.(*Object).Set("b", Number("2"))

	if got := mustEncode(t, patch); got != `{"a":{"b":1}}` {
		t.Errorf("patch was modified through the target: %s", got)
	}
}

func TestPatchNotAtomic(t *testing.T) {
	tree := mustDecode(t, `{"a":[0]}`)
	err := Apply(tree, mustDecode(t, `{"-b":0,"a[5]":1,"c":1}`))
	if !errors.Is(err, ErrIndexOutOfBounds) {
		t.Fatalf("expected an index out of bounds error, got: %v", err)
	}
	// "-b" & "a[5]" sort ahead of "c", which never runs
	if got := mustEncode(t, tree); got != `{"a":[0]}` {
		t.Errorf("unexpected partial result: %s", got)
	}

	tree = mustDecode(t, `{"a":[0],"b":1}`)
	if err := Apply(tree, mustDecode(t, `{"-b":0,"a[5]":1}`)); err == nil {
		t.Fatal("expected an error")
	}
	if got := mustEncode(t, tree); got != `{"a":[0]}` {
		t.Errorf("expected the delete ahead of the failure to stay applied, got: %s", got)
	}
}
