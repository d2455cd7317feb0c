package jsondiff

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFlatten(t *testing.T) {
	tr := flatten(mustDecode(t, `{"b":[1,{"d":true,"c":null}],"a":"x"}`))

	var paths []string
	for i := range tr.nodes {
		paths = append(paths, tr.path(i))
	}
	expect := []string{
		"/",
		"/a",
		"/b",
		"/b/0",
		"/b/1",
		"/b/1/c",
		"/b/1/d",
	}
	if diff := cmp.Diff(expect, paths); diff != "" {
		t.Errorf("leaf order mismatch (-want +got):\n%s", diff)
	}

	for i, n := range tr.nodes {
		for _, ch := range n.children {
			if tr.nodes[ch].parent != i {
				t.Errorf("node %d lists child %d, which has parent %d", i, ch, tr.nodes[ch].parent)
			}
		}
	}
	if tr.nodes[0].weight != 1+1+(1+1+(1+4+4)) {
		t.Errorf("unexpected root weight: %d", tr.nodes[0].weight)
	}
}

func TestFlattenDeterministic(t *testing.T) {
	a := flatten(mustDecode(t, `{"x":[1,2],"y":{"q":1,"p":2}}`))
	b := flatten(mustDecode(t, `{"y":{"p":2,"q":1},"x":[1,2]}`))
	if diff := cmp.Diff(a.keys(), b.keys()); diff != "" {
		t.Errorf("equal documents flattened differently (-a +b):\n%s", diff)
	}
}

func TestStructuralHashes(t *testing.T) {
	from := flatten(mustDecode(t, `{"a":[{"b":1},{"c":2}]}`))
	to := flatten(mustDecode(t, `{"a":[{"c":2}]}`))

	// leaf 5 in from & leaf 3 in to are both /a/N/c
	fc, tc := from.nodes[5], to.nodes[3]
	if from.path(5) != "/a/1/c" || to.path(3) != "/a/0/c" {
		t.Fatalf("unexpected leaves: %s, %s", from.path(5), to.path(3))
	}
	if hashStr(fc.unindexed) != hashStr(tc.unindexed) {
		t.Error("expected moved element to keep its unindexed hash")
	}
	if hashStr(fc.indexed) == hashStr(tc.indexed) {
		t.Error("expected moved element to change its indexed hash")
	}
	if fc.cmp != tc.cmp {
		t.Error("expected moved element to keep its comparison key")
	}
}

func TestCompareKeysSeparateKinds(t *testing.T) {
	cases := []struct {
		a, b string
	}{
		{`{"a":{"0":1}}`, `{"a":[1]}`},
		{`{"a":"1"}`, `{"a":1}`},
		{`{"a":"true"}`, `{"a":true}`},
		{`{"a":null}`, `{"a":"null"}`},
		{`{"a":{}}`, `{"a":[]}`},
		{`{"a":1}`, `{"b":1}`},
	}
	for _, c := range cases {
		a, b := flatten(mustDecode(t, c.a)), flatten(mustDecode(t, c.b))
		if a.nodes[1].cmp == b.nodes[1].cmp {
			t.Errorf("expected %s and %s to have different comparison keys", c.a, c.b)
		}
	}

	a, b := flatten(mustDecode(t, `{"a":1}`)), flatten(mustDecode(t, `{"a":1.0}`))
	if a.nodes[1].cmp != b.nodes[1].cmp {
		t.Errorf("expected numerically equal values to share a comparison key")
	}
}

func TestEditScript(t *testing.T) {
	cases := []struct {
		description string
		a, b        []string
		expect      []EditScriptEntry
	}{
		{"equal", []string{"a", "b"}, []string{"a", "b"}, nil},
		{"delete head", []string{"a", "b", "c"}, []string{"b", "c"},
			[]EditScriptEntry{{0, 0, -1, -1}}},
		{"insert tail", []string{"a", "b"}, []string{"a", "b", "c", "d"},
			[]EditScriptEntry{{-1, -1, 2, 3}}},
		{"replace middle", []string{"a", "b", "c"}, []string{"a", "x", "y", "c"},
			[]EditScriptEntry{{1, 1, 1, 2}}},
		{"rotate", []string{"r", "q", "s1", "s2", "s3"}, []string{"r", "q", "s2", "s3", "s4"},
			[]EditScriptEntry{{2, 2, -1, -1}, {-1, -1, 4, 4}}},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			if diff := cmp.Diff(c.expect, editScript(c.a, c.b)); diff != "" {
				t.Errorf("edit script mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
