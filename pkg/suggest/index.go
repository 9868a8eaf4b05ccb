package suggest

import (
	"sort"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"

	"storefind/internal/utils"
	"storefind/pkg/store"
)

// FacetValue is one distinct facet value as held by the index.
type FacetValue struct {
	Text  string
	Type  string
	Count int
}

// FacetIndex is a patricia trie over normalized facet values, for fast
// prefix-only lookups from interactive surfaces. It is an extra fast path:
// Get remains the source of truth for full substring matching, and the trie's
// lexicographic visit order is why the index never backs Get itself.
type FacetIndex struct {
	trie   *patricia.Trie
	values []FacetValue
}

// NewFacetIndex builds the index from the store collection. Distinct values
// and their counts come from the engine's own empty-query enumeration, so the
// two stay consistent by construction.
func NewFacetIndex(stores []store.Store) *FacetIndex {
	ix := &FacetIndex{trie: patricia.NewTrie()}

	for _, s := range Get("", stores) {
		key := utils.Normalize(s.Text)
		if key == "" {
			// all-punctuation values normalize away entirely
			continue
		}
		ix.values = append(ix.values, FacetValue{Text: s.Text, Type: s.Type, Count: s.Count})
		pos := len(ix.values) - 1

		// normalization can collide ("St. Oedenrode" / "ST OEDENRODE"),
		// so a leaf holds every value behind its key
		if item := ix.trie.Get(patricia.Prefix(key)); item != nil {
			ix.trie.Set(patricia.Prefix(key), append(item.([]int), pos))
		} else {
			ix.trie.Insert(patricia.Prefix(key), []int{pos})
		}
	}
	return ix
}

// Len returns the number of distinct facet values indexed.
func (ix *FacetIndex) Len() int {
	return len(ix.values)
}

// PrefixSearch returns facet values whose normalized form starts with the
// normalized prefix, ordered by descending store count. limit <= 0 means all.
func (ix *FacetIndex) PrefixSearch(prefix string, limit int) []FacetValue {
	key := utils.Normalize(prefix)

	var out []FacetValue
	err := ix.trie.VisitSubtree(patricia.Prefix(key), func(p patricia.Prefix, item patricia.Item) error {
		for _, pos := range item.([]int) {
			out = append(out, ix.values[pos])
		}
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting facet trie subtree: %v", err)
		return nil
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
