// Package trials rebuilds per-trial structures from the flat table.
package trials

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ivnamo/isoVisor/internal/domain"
)

// Set is the ordered result of Group. Order is the report order.
type Set []domain.Trial

// Keys returns the trial keys in order.
func (s Set) Keys() []string {
	keys := make([]string, len(s))
	for i, t := range s {
		keys[i] = t.Key
	}
	return keys
}

// Key builds the external reference of a trial.
func Key(trialID, formulationName string) string {
	return trialID + "||" + formulationName
}

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2006/01/02",
}

// ParseDate reads a stored trial date. Unparseable or empty dates return the
// zero time, which sorts before every real date.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

type groupKey struct {
	id, name, date, comment string
	result                  domain.Result
}

func keyOf(r domain.FlatRow) groupKey {
	return groupKey{
		id:      r.TrialID,
		name:    r.FormulationName,
		date:    r.TrialDate,
		result:  r.Result,
		comment: r.Comment,
	}
}

// Group selects the rows of requestID (use domain.NoRequestID for rows without
// a request number), orders them by trial date, trial id and formulation name,
// and folds consecutive rows of the same trial into one Trial. The input slice
// is not modified.
//
// Trial keys are Key(id, name); a later group with an already used key gets a
// "||2", "||3"... suffix.
func Group(rows []domain.FlatRow, requestID string) Set {
	type dated struct {
		row  domain.FlatRow
		date time.Time
	}
	selected := make([]dated, 0)
	for _, r := range rows {
		if r.RequestKey() == requestID {
			selected = append(selected, dated{row: r, date: ParseDate(r.TrialDate)})
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		a, b := selected[i], selected[j]
		if !a.date.Equal(b.date) {
			return a.date.Before(b.date)
		}
		if a.row.TrialID != b.row.TrialID {
			return a.row.TrialID < b.row.TrialID
		}
		return a.row.FormulationName < b.row.FormulationName
	})

	set := make(Set, 0)
	used := make(map[string]int)
	var current groupKey
	for i, d := range selected {
		k := keyOf(d.row)
		if i == 0 || k != current {
			current = k
			key := Key(d.row.TrialID, d.row.FormulationName)
			used[key]++
			if n := used[key]; n > 1 {
				key = fmt.Sprintf("%s||%d", key, n)
			}
			set = append(set, domain.Trial{
				Key:             key,
				ID:              d.row.TrialID,
				FormulationName: d.row.FormulationName,
				Date:            d.row.TrialDate,
				Result:          d.row.Result,
				Comment:         d.row.Comment,
				Ingredients:     make([]domain.Ingredient, 0),
			})
		}
		last := &set[len(set)-1]
		last.Ingredients = append(last.Ingredients, domain.Ingredient{
			RawMaterial: d.row.RawMaterial,
			WeightPct:   d.row.WeightPct,
		})
	}
	return set
}
