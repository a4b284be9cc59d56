package models

var Brands = []string{"Nike", "Adidas", "Jordan", "New Balance", "Yeezy", "Puma", "Reebok", "Converse", "Vans", "Other"}

var Sizes = []string{
	"5M", "5.5M", "6M", "6.5M", "7M", "7.5M", "8M", "8.5M", "9M", "9.5M",
	"10M", "10.5M", "11M", "11.5M", "12M", "12.5M", "13M", "14M", "15M",
}

var States = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "FL", "GA",
	"HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME", "MD",
	"MA", "MI", "MN", "MS", "MO", "MT", "NE", "NV", "NH", "NJ",
	"NM", "NY", "NC", "ND", "OH", "OK", "OR", "PA", "RI", "SC",
	"SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI", "WY",
}

// ConditionOption pairs a condition with its display label.
type ConditionOption struct {
	Value Condition
	Label string
}

var Conditions = []ConditionOption{
	{ConditionDeadstock, "Deadstock (DS)"},
	{ConditionLikeNew, "Like New (VNDS)"},
	{ConditionUsed, "Used"},
	{ConditionWorn, "Worn"},
}

// Label returns the display label, or the raw value when unknown.
func (c Condition) Label() string {
	for _, o := range Conditions {
		if o.Value == c {
			return o.Label
		}
	}
	return string(c)
}

// Valid reports whether c is a known condition.
func (c Condition) Valid() bool {
	for _, o := range Conditions {
		if o.Value == c {
			return true
		}
	}
	return false
}

// ValidState reports whether s is a known two-letter state code.
func ValidState(s string) bool {
	for _, st := range States {
		if st == s {
			return true
		}
	}
	return false
}
