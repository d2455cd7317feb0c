package jsondiff

import "fmt"

// Diff computes a patch that turns from into to when passed to Apply. both
// values must be objects. neither input is modified, the patch shares no
// values with them
func Diff(from, to Value, opts ...DiffOption) (*Object, error) {
	cfg := &DiffConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if !IsObject(from) {
		return nil, fmt.Errorf("%w: from is %s", ErrInvalidRoot, kindOf(from))
	}
	if !IsObject(to) {
		return nil, fmt.Errorf("%w: to is %s", ErrInvalidRoot, kindOf(to))
	}

	d := &diff{cfg: cfg, d1: from, d2: to}
	return d.diff()
}

// DiffConfig are any possible configuration parameters for calculating diffs
type DiffConfig struct {
	// ShouldEmit filters the patch. it's called with the old & new value
	// before a change is recorded, and before descending into a pair of
	// containers. one side is nil for additions & removals. returning false
	// drops the change, or the whole subtree for containers
	ShouldEmit func(from, to Value) bool
	// Provide a non-nil stats pointer & diff will populate it with data from
	// the diff process
	Stats *Stats
}

// DiffOption is a function that adjust a config, zero or more DiffOptions
// can be passed to the Diff function
type DiffOption func(cfg *DiffConfig)

// OptionSetStats will set the passed-in stats pointer when Diff is called
func OptionSetStats(st *Stats) DiffOption {
	return func(cfg *DiffConfig) {
		cfg.Stats = st
	}
}

// OptionShouldEmit installs a filter for recorded changes
func OptionShouldEmit(fn func(from, to Value) bool) DiffOption {
	return func(cfg *DiffConfig) {
		cfg.ShouldEmit = fn
	}
}

// diff is a state machine for calculating the patch between two trees
type diff struct {
	cfg    *DiffConfig
	d1, d2 Value
	t1, t2 *tree
}

// diff calculates a patch for two object trees:
//
//  1. flatten - list every node of both trees in pre-order, each keyed by a
//     hash of its position (ignoring array indices) and its scalar value
//  2. editScript - run a sequence diff over the two key lists
//  3. align - nudge change ranges onto array element boundaries & match up
//     the leaves the edit script left in place
//  4. reconcile - walk both trees from the roots, keeping matched array
//     elements, pairing up the rest of each array in order and comparing
//     object members by key. every change is recorded with the array
//     positions valid when its instruction runs
//  5. encode - nest the changes into merge levels, ordered for apply
func (d *diff) diff() (*Object, error) {
	d.t1, d.t2 = flatten(d.d1), flatten(d.d2)
	if st := d.cfg.Stats; st != nil {
		st.Left, st.Right = d.t1.Len(), d.t2.Len()
		st.LeftWeight, st.RightWeight = d.t1.nodes[0].weight, d.t2.nodes[0].weight
	}

	script := editScript(d.t1.keys(), d.t2.keys())
	r := newReconciler(d.cfg, d.t1, d.t2)
	r.align(script)
	if err := r.reconcile(); err != nil {
		return nil, err
	}
	return encode(r.muts, d.cfg.Stats)
}

// DiffBytes decodes two documents with c, diffs them & encodes the patch
func DiffBytes(c Codec, from, to []byte, opts ...DiffOption) ([]byte, error) {
	fv, err := c.Decode(from)
	if err != nil {
		return nil, fmt.Errorf("reading from document: %w", err)
	}
	tv, err := c.Decode(to)
	if err != nil {
		return nil, fmt.Errorf("reading to document: %w", err)
	}
	patch, err := Diff(fv, tv, opts...)
	if err != nil {
		return nil, err
	}
	return c.Encode(patch)
}

// ApplyBytes decodes a document & a patch with c, applies the patch and
// encodes the result
func ApplyBytes(c Codec, orig, patch []byte) ([]byte, error) {
	ov, err := c.Decode(orig)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	pv, err := c.Decode(patch)
	if err != nil {
		return nil, fmt.Errorf("reading patch: %w", err)
	}
	if err := Apply(ov, pv); err != nil {
		return nil, err
	}
	return c.Encode(ov)
}
