package search

import (
	"net/url"
	"strings"
)

// Query parameter names used by the browse page.
const (
	ParamSearch    = "q"
	ParamBrand     = "brand"
	ParamSize      = "size"
	ParamCondition = "condition"
	ParamState     = "state"
	ParamTrades    = "trades"
)

func optional(v url.Values, key string) *string {
	s := strings.TrimSpace(v.Get(key))
	if s == "" {
		return nil
	}
	return &s
}

// FromQuery reads a Filter from URL query parameters. Empty values are absent;
// only trades=true enables the trade restriction. The search text is kept as
// typed, surrounding spaces included; the other values are trimmed.
func FromQuery(v url.Values) Filter {
	var q *string
	if s := v.Get(ParamSearch); s != "" {
		q = &s
	}
	return Filter{
		Search:       q,
		Brand:        optional(v, ParamBrand),
		Size:         optional(v, ParamSize),
		Condition:    optional(v, ParamCondition),
		State:        optional(v, ParamState),
		OpenToTrades: v.Get(ParamTrades) == "true",
	}
}

// Query encodes f back into URL query parameters, omitting absent fields.
func (f Filter) Query() url.Values {
	v := url.Values{}
	put := func(key string, p *string) {
		if set(p) {
			v.Set(key, *p)
		}
	}
	put(ParamSearch, f.Search)
	put(ParamBrand, f.Brand)
	put(ParamCondition, f.Condition)
	put(ParamSize, f.Size)
	put(ParamState, f.State)
	if f.OpenToTrades {
		v.Set(ParamTrades, "true")
	}
	return v
}

// Value dereferences an optional field for templates.
func Value(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// Criteria names the parameters that are set, in a fixed order.
func (f Filter) Criteria() []string {
	var out []string
	for _, c := range []struct {
		name string
		set  bool
	}{
		{ParamSearch, set(f.Search)},
		{ParamBrand, set(f.Brand)},
		{ParamSize, set(f.Size)},
		{ParamCondition, set(f.Condition)},
		{ParamState, set(f.State)},
		{ParamTrades, f.OpenToTrades},
	} {
		if c.set {
			out = append(out, c.name)
		}
	}
	return out
}

// Without returns a copy of f with the named parameter cleared.
func (f Filter) Without(param string) Filter {
	switch param {
	case ParamSearch:
		f.Search = nil
	case ParamBrand:
		f.Brand = nil
	case ParamSize:
		f.Size = nil
	case ParamCondition:
		f.Condition = nil
	case ParamState:
		f.State = nil
	case ParamTrades:
		f.OpenToTrades = false
	}
	return f
}

// Link is the browse URL showing the listings f selects.
func (f Filter) Link() string {
	if q := f.Query().Encode(); q != "" {
		return "/browse?" + q
	}
	return "/browse"
}
