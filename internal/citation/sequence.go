package citation

import (
	"sort"

	"github.com/openbesluit/reportgen/internal/domain"
)

// Sequence returns the pieces of one report in their deterministic
// display order. The input is never mutated; sequencing the same set
// twice yields the same order.
//
// Ordering policy, first matching rule wins:
//  1. every piece carries an explicit position: position ascending,
//     ties broken by creation time ascending;
//  2. the report is a minutes approval: minutes-grammar comparator,
//     names the grammar rejects placed after, newest first;
//  3. otherwise: general-grammar comparator, names the grammar rejects
//     placed after, newest first.
func Sequence(pieces []domain.Piece, minutesApproval bool) []domain.Piece {
	ordered := make([]domain.Piece, len(pieces))
	copy(ordered, pieces)

	if allPositioned(ordered) {
		sort.SliceStable(ordered, func(i, j int) bool {
			if *ordered[i].Position != *ordered[j].Position {
				return *ordered[i].Position < *ordered[j].Position
			}
			return ordered[i].Created.Before(ordered[j].Created)
		})
		return ordered
	}

	if minutesApproval {
		return sequenceByName(ordered, func(name string) (nameComparator, bool) {
			parsed, ok := ParseMinutesName(name)
			return parsed, ok
		})
	}
	return sequenceByName(ordered, func(name string) (nameComparator, bool) {
		parsed, ok := ParseDocumentName(name)
		return parsed, ok
	})
}

// nameComparator abstracts the two parsed-name comparators so both
// grammars share the valid-first/invalid-after mechanics.
type nameComparator interface {
	compareTo(other nameComparator) int
}

func (n DocumentName) compareTo(other nameComparator) int {
	return n.Compare(other.(DocumentName))
}

func (n MinutesName) compareTo(other nameComparator) int {
	return n.Compare(other.(MinutesName))
}

func sequenceByName(
	pieces []domain.Piece,
	parse func(name string) (nameComparator, bool),
) []domain.Piece {
	var valid, invalid []domain.Piece
	parsedByIndex := make(map[string]nameComparator, len(pieces))
	for _, piece := range pieces {
		if parsed, ok := parse(piece.Name); ok {
			parsedByIndex[piece.Name] = parsed
			valid = append(valid, piece)
		} else {
			invalid = append(invalid, piece)
		}
	}

	sort.SliceStable(valid, func(i, j int) bool {
		return parsedByIndex[valid[i].Name].compareTo(parsedByIndex[valid[j].Name]) < 0
	})

	// Unparseable names trail the parsed ones, most recent first.
	sort.SliceStable(invalid, func(i, j int) bool {
		return invalid[i].Created.After(invalid[j].Created)
	})

	return append(valid, invalid...)
}

func allPositioned(pieces []domain.Piece) bool {
	for _, piece := range pieces {
		if piece.Position == nil {
			return false
		}
	}
	return len(pieces) > 0
}
