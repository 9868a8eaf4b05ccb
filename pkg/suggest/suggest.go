/*
Package suggest is the search core: it turns free text and the store
collection into ranked, deduplicated suggestions across three facets
(city, street, store name).

Matching is substring containment over normalized text (see utils.Normalize),
grouping is by the raw facet value, and each facet's suggestions are ordered
by how many stores share the value. Ties keep the order the values were first
encountered in, so the whole pipeline is deterministic for a given dataset.
*/
package suggest

import (
	"sort"
	"strings"

	"storefind/internal/utils"
	"storefind/pkg/store"
)

// Facet type labels, also used verbatim in suggestion IDs (lowercased).
const (
	TypeCity   = "City"
	TypeStreet = "Street"
	TypeStore  = "Store"
)

// Suggestion is one ranked search candidate. Data holds the stores that
// produced the match, in dataset order. Ephemeral: built fresh per query and
// never merged across queries.
type Suggestion struct {
	ID    string        `json:"id" msgpack:"id"`
	Text  string        `json:"text" msgpack:"text"`
	Type  string        `json:"type" msgpack:"type"`
	Count int           `json:"count" msgpack:"count"`
	Data  []store.Store `json:"data" msgpack:"-"`
}

// grouping is an insertion-ordered map from raw facet value to the stores
// carrying it. Insertion order is what makes equal-count ties stable.
type grouping struct {
	keys    []string
	members map[string][]store.Store
}

func newGrouping() *grouping {
	return &grouping{members: make(map[string][]store.Store)}
}

func (g *grouping) add(key string, s store.Store) {
	if _, seen := g.members[key]; !seen {
		g.keys = append(g.keys, key)
	}
	g.members[key] = append(g.members[key], s)
}

// suggestions flattens a grouping into one Suggestion per distinct raw value,
// sorted by descending count. sort.SliceStable keeps first-encountered order
// among equal counts.
func (g *grouping) suggestions(facetType string) []Suggestion {
	out := make([]Suggestion, 0, len(g.keys))
	for _, key := range g.keys {
		data := g.members[key]
		out = append(out, Suggestion{
			ID:    strings.ToLower(facetType) + "-" + key,
			Text:  key,
			Type:  facetType,
			Count: len(data),
			Data:  data,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// Get returns the ranked suggestions for a query: all matching city values,
// then street values, then store names. An empty query matches everything,
// so callers driving interactive input should gate on non-empty text first.
func Get(query string, stores []store.Store) []Suggestion {
	normalizedQuery := utils.Normalize(query)

	cities := newGrouping()
	streets := newGrouping()
	names := newGrouping()

	for _, s := range stores {
		city := s.Location.Address.City
		street := s.Location.Address.Street
		name := s.Name

		normalizedCity := utils.Normalize(city)
		normalizedStreet := utils.Normalize(street)
		normalizedName := utils.Normalize(name)

		if !strings.Contains(normalizedCity, normalizedQuery) &&
			!strings.Contains(normalizedStreet, normalizedQuery) &&
			!strings.Contains(normalizedName, normalizedQuery) {
			continue
		}

		if strings.Contains(normalizedCity, normalizedQuery) {
			cities.add(city, s)
		}
		if strings.Contains(normalizedStreet, normalizedQuery) {
			streets.add(street, s)
		}
		if strings.Contains(normalizedName, normalizedQuery) {
			names.add(name, s)
		}
	}

	var out []Suggestion
	out = append(out, cities.suggestions(TypeCity)...)
	out = append(out, streets.suggestions(TypeStreet)...)
	out = append(out, names.suggestions(TypeStore)...)
	return out
}
