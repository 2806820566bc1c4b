// Package citation implements the document sequencer: parsing of legal
// reference names under two independent grammars, deterministic ordering
// of the citable pieces of a report, and compaction of the ordered names
// into the citation string rendered inside a generated document. The
// package is pure: no I/O, no state, and inputs are never mutated.
package citation
