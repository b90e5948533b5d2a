package menu

import "strings"

// Criteria holds the raw values of the storefront filter form.
// Empty fields impose no constraint.
type Criteria struct {
	Region     string `form:"region" json:"region"`
	MaxPrice   string `form:"maxPrice" json:"maxPrice"`
	Type       string `form:"type" json:"type"`
	SearchTerm string `form:"q" json:"searchTerm"`
}

func (c Criteria) IsEmpty() bool {
	return c.Region == "" && c.MaxPrice == "" && c.Type == "" && c.SearchTerm == ""
}

// ApplyFilters returns the dishes matching every set criterion, in input
// order. The input slice is never modified.
func ApplyFilters(dishes []Dish, c Criteria) []Dish {
	preds := c.predicates()

	out := make([]Dish, 0, len(dishes))
	for _, d := range dishes {
		if matchesAll(d, preds) {
			out = append(out, d)
		}
	}
	return out
}

type predicate func(d Dish) bool

func matchesAll(d Dish, preds []predicate) bool {
	for _, p := range preds {
		if !p(d) {
			return false
		}
	}
	return true
}

func (c Criteria) predicates() []predicate {
	var preds []predicate

	if c.Region != "" {
		region := strings.ToLower(c.Region)
		preds = append(preds, func(d Dish) bool {
			return strings.ToLower(d.Category) == region
		})
	}

	if c.MaxPrice != "" {
		// an unparsable bound is ignored rather than matching nothing
		if max, ok := parseLeadingInt(c.MaxPrice); ok {
			limit := float64(max)
			preds = append(preds, func(d Dish) bool {
				return d.Price <= limit
			})
		}
	}

	if c.Type != "" {
		preds = append(preds, typePredicate(strings.ToLower(c.Type)))
	}

	if c.SearchTerm != "" {
		term := strings.ToLower(c.SearchTerm)
		preds = append(preds, func(d Dish) bool {
			return strings.Contains(strings.ToLower(d.Name), term)
		})
	}

	return preds
}

func typePredicate(selector string) predicate {
	switch selector {
	case "ăn vặt":
		return func(d Dish) bool {
			cat := strings.ToLower(d.Category)
			return strings.Contains(cat, "ăn vặt") || strings.Contains(cat, "đồ ăn vặt")
		}
	case "nước uống":
		// NOTE: the type comparison here is case-sensitive while every other
		// comparison is not. Kept as the storefront has always behaved.
		return func(d Dish) bool {
			return strings.Contains(strings.ToLower(d.Category), "nước uống") || d.Type == "nước"
		}
	case "cơm":
		return func(d Dish) bool {
			return strings.Contains(strings.ToLower(d.Name), "cơm")
		}
	case "nước lọc":
		return func(d Dish) bool {
			return strings.Contains(strings.ToLower(d.Name), "nước lọc")
		}
	default:
		return func(d Dish) bool {
			return strings.ToLower(d.Type) == selector
		}
	}
}

// parseLeadingInt reads an optionally signed run of decimal digits after any
// leading whitespace and ignores whatever follows, so "120k" is 120.
func parseLeadingInt(s string) (int64, bool) {
	s = strings.TrimLeft(s, " \t\n\r\v\f")

	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	var n int64
	digits := 0
	for ; digits < len(s); digits++ {
		ch := s[digits]
		if ch < '0' || ch > '9' {
			break
		}
		if n > (1<<62)/10 {
			// saturate instead of overflowing
			n = 1 << 62
			continue
		}
		n = n*10 + int64(ch-'0')
	}
	if digits == 0 {
		return 0, false
	}

	if neg {
		n = -n
	}
	return n, true
}
