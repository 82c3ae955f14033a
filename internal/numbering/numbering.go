// Package numbering derives human-facing receipt identifiers.
//
// Numbers are computed on demand from a transaction's position in the
// date-sorted sequence of its type, never stored. Inserting or deleting an
// earlier-dated record of the same type therefore shifts the numbers of
// every later one. That is a documented property of the scheme, not a bug.
package numbering

import (
	"fmt"
	"sort"

	"github.com/nero-collectibles/kassa/internal/model"
)

// Number returns the document number for t, e.g. "A-2024-0007" for the
// seventh purchase of 2024. Prefix A stands for Ankauf (purchase), V for
// Verkauf (sale).
//
// The sort by date is stable: same-type records sharing a date keep their
// relative order from the input sequence. ISO dates compare correctly as
// strings. Returns "" when t is not part of all.
func Number(t model.Transaction, all []model.Transaction) string {
	sorted := make([]model.Transaction, len(all))
	copy(sorted, all)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})

	seq := 0
	for _, tr := range sorted {
		if tr.Type != t.Type {
			continue
		}
		seq++
		if tr.ID == t.ID {
			prefix := "A"
			if t.Type == model.TypeSale {
				prefix = "V"
			}
			return fmt.Sprintf("%s-%s-%04d", prefix, t.Year(), seq)
		}
	}
	return ""
}
