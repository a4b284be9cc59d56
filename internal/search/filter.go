// Package search filters an in-memory listing catalog by the browse criteria.
package search

import (
	"strings"

	"kickswap/internal/models"
)

// Filter holds the optional browse criteria. A nil field places no restriction.
type Filter struct {
	Search    *string
	Brand     *string
	Size      *string
	Condition *string
	State     *string // matched against the seller's state

	// OpenToTrades restricts to listings flagged for trades; false means no restriction.
	OpenToTrades bool
}

// set reports whether an optional criterion restricts anything. An empty
// string counts as absent.
func set(p *string) bool { return p != nil && *p != "" }

// HasRefinements reports whether anything beyond the free-text search is set.
func (f Filter) HasRefinements() bool {
	return set(f.Brand) || set(f.Size) || set(f.Condition) || set(f.State) || f.OpenToTrades
}

// IsZero reports whether the filter restricts nothing.
func (f Filter) IsZero() bool {
	return !f.HasRefinements() && !set(f.Search)
}

type predicate func(*models.Listing) bool

func (f Filter) predicates() []predicate {
	var ps []predicate
	if set(f.Search) {
		q := strings.ToLower(*f.Search)
		ps = append(ps, func(l *models.Listing) bool {
			return strings.Contains(strings.ToLower(l.Title), q) ||
				strings.Contains(strings.ToLower(l.Brand), q) ||
				strings.Contains(strings.ToLower(l.ModelName()), q)
		})
	}
	if set(f.Brand) {
		brand := *f.Brand
		ps = append(ps, func(l *models.Listing) bool { return l.Brand == brand })
	}
	if set(f.Size) {
		size := *f.Size
		ps = append(ps, func(l *models.Listing) bool { return l.Size == size })
	}
	if set(f.Condition) {
		cond := models.Condition(*f.Condition)
		ps = append(ps, func(l *models.Listing) bool { return l.Condition == cond })
	}
	if set(f.State) {
		state := *f.State
		ps = append(ps, func(l *models.Listing) bool { return l.Seller.State == state })
	}
	if f.OpenToTrades {
		ps = append(ps, func(l *models.Listing) bool { return l.OpenToTrades })
	}
	return ps
}

// Apply returns the listings matching every criterion, in catalog order.
// The input slice is never modified.
func Apply(listings []models.Listing, f Filter) []models.Listing {
	ps := f.predicates()
	out := make([]models.Listing, 0, len(listings))
next:
	for i := range listings {
		for _, p := range ps {
			if !p(&listings[i]) {
				continue next
			}
		}
		out = append(out, listings[i])
	}
	return out
}
