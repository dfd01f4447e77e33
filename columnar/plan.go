package columnar

import (
	"sort"

	"github.com/robcaulk/columnar/format"
	"github.com/robcaulk/columnar/nullindex"
)

// planOrder maps every recorded row id through perm (if non-nil) and returns
// the resulting new row ids alongside an index permutation that visits the
// recorded values in ascending new-row-id order, stable on ties so that
// values recorded against the same row keep their original recording order.
func planOrder(rows []int, perm []int) (newRows []int, order []int) {
	n := len(rows)
	newRows = make([]int, n)
	for i, r := range rows {
		if perm != nil {
			newRows[i] = perm[r]
		} else {
			newRows[i] = r
		}
	}

	order = make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool { return newRows[order[i]] < newRows[order[j]] })

	return newRows, order
}

// countsPerRow tallies how many values land on each of numRows rows, given
// the new row id produced for each recorded value by planOrder.
func countsPerRow(newRows []int, numRows int) []int {
	counts := make([]int, numRows)
	for _, r := range newRows {
		counts[r]++
	}

	return counts
}

// cardinalityFor resolves a column's Cardinality tag from its per-row value
// counts: Required when every row has exactly one value, Optional when no
// row has more than one, Multivalued otherwise.
func cardinalityFor(counts []int) format.Cardinality {
	maxCount := 0
	allOne := true
	for _, c := range counts {
		if c > maxCount {
			maxCount = c
		}
		if c != 1 {
			allOne = false
		}
	}

	if allOne {
		return format.Required
	}
	if maxCount <= 1 {
		return format.Optional
	}

	return format.Multivalued
}

// buildNullIndex encodes the null/cardinality payload appropriate to card.
func buildNullIndex(card format.Cardinality, counts []int) []byte {
	switch card {
	case format.Required:
		return nil
	case format.Optional:
		present := make([]bool, len(counts))
		for i, c := range counts {
			present[i] = c > 0
		}

		return nullindex.BuildOptional(present).Encode()
	default: // format.Multivalued
		return nullindex.BuildMultivalued(counts).Encode()
	}
}

// firstRowOutOfRange returns the first row id in rows that is negative or not
// below numRows, or -1 if every row is in range. The caller turns an
// offending row into errs.ErrRowOutOfRange.
func firstRowOutOfRange(rows []int, numRows int) int {
	for _, r := range rows {
		if r < 0 || r >= numRows {
			return r
		}
	}

	return -1
}
