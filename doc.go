// Package jsondiff computes structural patches between two JSON object trees
// and applies them back, so a document can be kept in sync by shipping only
// what changed.
//
// A patch is itself a JSON object. Each member key is an instruction:
//
//	"k"        set or replace member k
//	"-k"       remove member k (value ignored)
//	"~k"       merge the nested instruction object into member k
//	"k[n]"     replace element n of array k
//	"k[+n]"    insert at index n of array k, shifting later elements right
//	"-k[n]"    remove element n of array k
//	"~k[n]"    merge into the object at element n of array k
//	"k[n][m]"  address array k[n] nested directly in array k
//
// At every object level instructions run in a fixed order: removals first,
// highest array index first, which lets them use positions from the source
// document; then sets and inserts, lowest index first, using positions from
// the destination document; merges last.
//
// Diffing works on a flattened view of both documents. Every node becomes a
// leaf keyed by a hash of its structural path (without array indices) and
// its scalar value. An edit script over the two leaf lists aligns the
// documents, following array elements that shifted because earlier siblings
// were removed or added. The edit script is then reconciled into a
// consistent set of mutations and encoded.
//
// Values are represented by the closed Value sum type. Text formats are
// handled by a Codec, passed explicitly: JSON (streaming, key order
// preserving) and YAML are provided.
package jsondiff
