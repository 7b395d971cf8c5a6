package trials

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/ivnamo/isoVisor/internal/domain"
)

// Requests lists the distinct request ids of rows. Ids that parse as numbers
// come first in numeric order, then the rest in lexicographic order.
func Requests(rows []domain.FlatRow) []string {
	seen := make(map[string]bool)
	ids := make([]string, 0)
	for _, r := range rows {
		id := r.RequestKey()
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	SortRequestIDs(ids)
	return ids
}

// SortRequestIDs sorts ids in place using the natural request order.
func SortRequestIDs(ids []string) {
	sort.SliceStable(ids, func(i, j int) bool {
		a, aNum := numeric(ids[i])
		b, bNum := numeric(ids[j])
		switch {
		case aNum && bNum:
			if a != b {
				return a < b
			}
			return ids[i] < ids[j]
		case aNum != bNum:
			return aNum
		}
		return ids[i] < ids[j]
	})
}

func numeric(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// Metadata returns the request data of the first row of requestID in
// insertion order. Rows of one request are expected to agree; when they do
// not, the earliest row wins.
func Metadata(rows []domain.FlatRow, requestID string) (domain.RequestMetadata, bool) {
	for _, r := range rows {
		if r.RequestKey() == requestID {
			return r.Metadata(), true
		}
	}
	return domain.RequestMetadata{}, false
}
