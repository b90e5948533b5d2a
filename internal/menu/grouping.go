package menu

// CategoryGroup is one rendered menu section.
type CategoryGroup struct {
	Key    string `json:"key"`
	Title  string `json:"title"`
	Dishes []Dish `json:"dishes"`
}

// CategoryGroups is ordered: canonical sections first in fixed order, then
// fallback sections in first-seen order.
type CategoryGroups []CategoryGroup

func (gs CategoryGroups) Keys() []string {
	keys := make([]string, len(gs))
	for i, g := range gs {
		keys[i] = g.Key
	}
	return keys
}

func (gs CategoryGroups) Get(key string) ([]Dish, bool) {
	for _, g := range gs {
		if g.Key == key {
			return g.Dishes, true
		}
	}
	return nil, false
}

// Len is the total number of dishes across all sections.
func (gs CategoryGroups) Len() int {
	n := 0
	for _, g := range gs {
		n += len(g.Dishes)
	}
	return n
}

// GroupByCategory partitions dishes into display sections. Every dish lands
// in exactly one section and keeps its relative order.
func GroupByCategory(dishes []Dish) CategoryGroups {
	canonical := make(map[GroupKind][]Dish, len(canonicalOrder))
	fallback := map[string][]Dish{}
	var fallbackOrder []string

	for _, d := range dishes {
		g := d.Group()
		if g.Canonical() {
			canonical[g.Kind] = append(canonical[g.Kind], d)
			continue
		}

		if _, seen := fallback[g.Key]; !seen {
			fallbackOrder = append(fallbackOrder, g.Key)
		}
		fallback[g.Key] = append(fallback[g.Key], d)
	}

	out := make(CategoryGroups, 0, len(canonical)+len(fallbackOrder))
	for _, kind := range canonicalOrder {
		members := canonical[kind]
		if len(members) == 0 {
			continue
		}
		key := canonicalKeys[kind]
		out = append(out, CategoryGroup{Key: key, Title: DisplayTitle(key), Dishes: members})
	}
	for _, key := range fallbackOrder {
		out = append(out, CategoryGroup{Key: key, Title: DisplayTitle(key), Dishes: fallback[key]})
	}

	return out
}
