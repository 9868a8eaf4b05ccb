package suggest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefind/internal/utils"
	"storefind/pkg/store"
)

func testStore(id, name, city, street string) store.Store {
	return store.Store{
		StoreID: id,
		Name:    name,
		Location: store.Location{
			Address: store.Address{City: city, Street: street},
		},
	}
}

// testStores mirrors the shape of the real dataset: two stores sharing a
// city, one street value that collides with a store name on a query.
func testStores() []store.Store {
	return []store.Store{
		testStore("4881", "Jumbo Nuenen Kernkwartier", "NUENEN", "Hoge Brake"),
		testStore("4902", "Jumbo St. Oedenrode Pieter Christiaanstraat", "ST. OEDENRODE", "Pieter Christiaanstraat"),
		testStore("6608", "Jumbo St. Oedenrode Borchgrave", "ST. OEDENRODE", "Borchgrave"),
	}
}

func TestGetMatchesAcrossFacets(t *testing.T) {
	suggestions := Get("oedenrode", testStores())

	var cities, streets, names []Suggestion
	for _, s := range suggestions {
		switch s.Type {
		case TypeCity:
			cities = append(cities, s)
		case TypeStreet:
			streets = append(streets, s)
		case TypeStore:
			names = append(names, s)
		}
	}

	require.Len(t, cities, 1)
	assert.Equal(t, "ST. OEDENRODE", cities[0].Text)
	assert.Equal(t, 2, cities[0].Count)
	assert.Empty(t, streets)
	require.Len(t, names, 2, "each store name is a distinct suggestion")
}

func TestGetCountMatchesData(t *testing.T) {
	for _, s := range Get("jumbo", testStores()) {
		assert.Equal(t, len(s.Data), s.Count, "count must equal attached stores for %q", s.ID)
	}
}

func TestGetSubstringNotPrefix(t *testing.T) {
	suggestions := Get("brake", testStores())
	require.Len(t, suggestions, 1)
	assert.Equal(t, TypeStreet, suggestions[0].Type)
	assert.Equal(t, "Hoge Brake", suggestions[0].Text)
}

func TestGetNormalizesQueryAndFacets(t *testing.T) {
	// punctuation and case differences disappear under normalization
	for _, q := range []string{"st. oedenrode", "ST OEDENRODE", "stoedenrode"} {
		suggestions := Get(q, testStores())
		require.NotEmpty(t, suggestions, "query %q", q)
		assert.Equal(t, "ST. OEDENRODE", suggestions[0].Text)
	}
}

func TestGetFacetOrder(t *testing.T) {
	suggestions := Get("", testStores())

	// all city suggestions come first, then streets, then store names
	lastFacet := 0
	rank := map[string]int{TypeCity: 1, TypeStreet: 2, TypeStore: 3}
	for _, s := range suggestions {
		r := rank[s.Type]
		assert.GreaterOrEqual(t, r, lastFacet, "facet blocks must not interleave")
		lastFacet = r
	}
}

func TestGetEmptyQueryEnumeratesAll(t *testing.T) {
	suggestions := Get("", testStores())

	// 2 cities + 3 streets + 3 names
	assert.Len(t, suggestions, 8)
}

func TestGetSortsByCountDescending(t *testing.T) {
	suggestions := Get("", testStores())

	require.Equal(t, TypeCity, suggestions[0].Type)
	assert.Equal(t, "ST. OEDENRODE", suggestions[0].Text)
	assert.Equal(t, 2, suggestions[0].Count)
	assert.Equal(t, "NUENEN", suggestions[1].Text)
	assert.Equal(t, 1, suggestions[1].Count)
}

func TestGetStableTieOrder(t *testing.T) {
	stores := []store.Store{
		testStore("1", "A", "DELFT", "Markt"),
		testStore("2", "B", "GOUDA", "Kleiweg"),
		testStore("3", "C", "DELFT", "Markt"),
		testStore("4", "D", "GOUDA", "Kleiweg"),
	}

	for i := 0; i < 5; i++ {
		suggestions := Get("", stores)
		require.GreaterOrEqual(t, len(suggestions), 2)
		assert.Equal(t, "DELFT", suggestions[0].Text, "equal counts keep first-encountered order")
		assert.Equal(t, "GOUDA", suggestions[1].Text)
	}
}

func TestGetSuggestionIDs(t *testing.T) {
	suggestions := Get("nuenen", testStores())
	require.NotEmpty(t, suggestions)

	for _, s := range suggestions {
		assert.Equal(t, strings.ToLower(s.Type)+"-"+s.Text, s.ID)
	}
}

func TestGetNoMatch(t *testing.T) {
	assert.Empty(t, Get("zzzqqq", testStores()))
}

func TestGetMultiFacetStore(t *testing.T) {
	// "pieterchristiaanstraat" appears in both the street and the store name,
	// so the same store backs a suggestion in two facets
	suggestions := Get("christiaan", testStores())

	var foundStreet, foundName bool
	for _, s := range suggestions {
		switch s.Type {
		case TypeStreet:
			foundStreet = true
			assert.Equal(t, "Pieter Christiaanstraat", s.Text)
		case TypeStore:
			foundName = true
		}
		require.Len(t, s.Data, 1)
		assert.Equal(t, "4902", s.Data[0].StoreID)
	}
	assert.True(t, foundStreet)
	assert.True(t, foundName)
}

func TestGetQueryNormalizationMatchesUtils(t *testing.T) {
	// sanity: the engine and the index must agree on normalization
	assert.Equal(t, utils.Normalize("St. Oedenrode"), utils.Normalize("ST OEDENRODE"))
}
