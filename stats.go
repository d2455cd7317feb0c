package jsondiff

// Stats holds statistical metadata about a diff
type Stats struct {
	Left  int `json:"leftNodes"`  // count of nodes in the left tree
	Right int `json:"rightNodes"` // count of nodes in the right tree

	LeftWeight  int `json:"leftWeight"`  // byte-ish count of left tree
	RightWeight int `json:"rightWeight"` // byte-ish count of right tree

	Sets    int `json:"sets,omitempty"`    // number of values replaced
	Inserts int `json:"inserts,omitempty"` // number of members & elements added
	Deletes int `json:"deletes,omitempty"` // number of members & elements removed
	Merges  int `json:"merges,omitempty"`  // number of nested patch levels
}

// NodeChange returns a count of the shift between left & right trees
func (s Stats) NodeChange() int {
	return s.Right - s.Left
}

// PctWeightChange returns a value from -1.0 to max(float64) representing the size shift
// between left & right trees
func (s Stats) PctWeightChange() float64 {
	if s.LeftWeight == 0 {
		return 0
	}
	return float64(s.RightWeight-s.LeftWeight) / float64(s.LeftWeight)
}

// Changes is the number of sets, inserts & deletes
func (s Stats) Changes() int {
	return s.Sets + s.Inserts + s.Deletes
}

func (s *Stats) count(op Op) {
	if s == nil {
		return
	}
	switch op {
	case OpSet:
		s.Sets++
	case OpInsert:
		s.Inserts++
	case OpDelete:
		s.Deletes++
	case OpMerge:
		s.Merges++
	}
}
