package jsondiff

import "github.com/pmezard/go-difflib/difflib"

// EditScriptEntry is one change in an edit script between two leaf lists.
// ranges are inclusive, a side with nothing in it is -1, -1
type EditScriptEntry struct {
	DeletedStart, DeletedEnd int
	AddedStart, AddedEnd     int
}

// editScript computes the changes that turn sequence a into b. the
// sequence matcher's automatic junk heuristic is disabled: leaf keys repeat
// a lot in documents with arrays of similar objects, and treating popular
// keys as junk would throw real matches away
func editScript(a, b []string) []EditScriptEntry {
	m := difflib.NewMatcherWithJunk(a, b, false, nil)

	var script []EditScriptEntry
	for _, op := range m.GetOpCodes() {
		e := EditScriptEntry{-1, -1, -1, -1}
		switch op.Tag {
		case 'e':
			continue
		case 'd':
			e.DeletedStart, e.DeletedEnd = op.I1, op.I2-1
		case 'i':
			e.AddedStart, e.AddedEnd = op.J1, op.J2-1
		case 'r':
			e.DeletedStart, e.DeletedEnd = op.I1, op.I2-1
			e.AddedStart, e.AddedEnd = op.J1, op.J2-1
		}
		script = append(script, e)
	}
	return script
}
