package jsondiff

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFormatPretty(t *testing.T) {
	patch := mustDecode(t, `{"a":99,"-bar":0,"foo[+3]":4,"~baz":{"c":"x","~d[0]":{"-e":0}},"baz":"x"}`).(*Object)

	str, err := FormatPrettyString(patch, false)
	if err != nil {
		t.Fatal(err)
	}
	expect := `- bar
~ a: 99
~ baz: "x"
+ foo[3]: 4
baz:
  ~ c: "x"
  d[0]:
    - e
`
	if diff := cmp.Diff(expect, str); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}

	color, err := FormatPrettyString(mustDecode(t, `{"-a":0}`).(*Object), true)
	if err != nil {
		t.Fatal(err)
	}
	if color != "\x1b[31m- a\x1b[0m\n" {
		t.Errorf("unexpected color output: %q", color)
	}
}

func TestFormatPrettyDegradedMerge(t *testing.T) {
	str, err := FormatPrettyString(mustDecode(t, `{"~a":1}`).(*Object), false)
	if err != nil {
		t.Fatal(err)
	}
	if str != "~ a: 1\n" {
		t.Errorf("unexpected output: %q", str)
	}
}

// failWriter accepts n writes, then fails
type failWriter struct{ n int }

var errWrite = errors.New("write failed")

func (w *failWriter) Write(p []byte) (int, error) {
	if w.n == 0 {
		return 0, errWrite
	}
	w.n--
	return len(p), nil
}

func TestFormatPrettyWriteErrors(t *testing.T) {
	cases := []struct {
		description string
		patch       string
		writes      int
	}{
		{"delete line", `{"-a":0}`, 0},
		{"merge line", `{"~a":{"b":1}}`, 0},
		{"nested line", `{"~a":{"b":1}}`, 1},
		{"set line", `{"a":1}`, 0},
	}
	for _, c := range cases {
		err := FormatPretty(&failWriter{n: c.writes}, mustDecode(t, c.patch).(*Object), false)
		if !errors.Is(err, errWrite) {
			t.Errorf("%s: expected a write error, got: %v", c.description, err)
		}
	}
}

func TestFormatStatsPretty(t *testing.T) {
	cases := []struct {
		description string
		input       *Stats
		expect      string
	}{
		{"all plural",
			&Stats{Left: 2, Right: 6, Inserts: 6, Sets: 2, Deletes: 2},
			"+4 elements. 6 inserts. 2 deletes. 2 sets.\n",
		},
		{"all singular",
			&Stats{Left: 2, Right: 1, Inserts: 1, Sets: 1, Deletes: 1, Merges: 1},
			"-1 element. 1 insert. 1 delete. 1 set. 1 merge.\n",
		},
		{"no change",
			&Stats{Left: 3, Right: 3, Merges: 2},
			"0 elements. 0 inserts. 0 deletes. 0 sets. 2 merges.\n",
		},
	}

	for i, c := range cases {
		got := FormatPrettyStats(c.input)
		if got != c.expect {
			t.Errorf("%d %s\nwant:\n%s\ngot:\n%s", i, c.description, c.expect, got)
		}
	}
}

func TestFormatStatsNull(t *testing.T) {
	got := FormatPrettyStats(nil)
	expect := ``
	if got != expect {
		t.Errorf("want:\n%s\ngot:\n%s", expect, got)
	}
}
