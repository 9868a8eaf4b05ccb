/*
Package view owns one session's state over the store collection: the active
filter, the current page, and the derived slices the UI renders.

There is no hidden reactivity. State mutates through the methods below and
every derived value (FilteredStores, PagedStores, MaxPage, PopularCities) is
recomputed on demand from current state. One View belongs to exactly one
logical session; the store collection behind it may be shared read-only.
*/
package view

import (
	"context"
	"math"
	"sort"

	"github.com/charmbracelet/log"

	"storefind/pkg/store"
	"storefind/pkg/suggest"
)

// CityCount is one entry of the popular-cities ranking.
type CityCount struct {
	Name  string `json:"name" msgpack:"name"`
	Count int    `json:"count" msgpack:"count"`
}

// View is a single session's view state. Not safe for concurrent use; each
// session gets its own.
type View struct {
	source store.Source

	stores  []store.Store
	loading bool
	err     string
	fetched bool

	currentPage        int
	pageSize           int
	searchText         string
	selectedCity       string
	selectedSuggestion *suggest.Suggestion

	popularLimit int
}

// New creates a view over the given dataset source. pageSize and popularLimit
// below 1 fall back to the usual defaults (10 each).
func New(source store.Source, pageSize, popularLimit int) *View {
	if pageSize < 1 {
		pageSize = 10
	}
	if popularLimit < 1 {
		popularLimit = 10
	}
	return &View{
		source:       source,
		currentPage:  1,
		pageSize:     pageSize,
		popularLimit: popularLimit,
	}
}

// FetchAllStores loads the collection once per session. Repeat calls return
// the cached collection without touching the source. A failed fetch records
// the error message, leaves the collection empty and keeps the fetched flag
// unset so a later call retries.
func (v *View) FetchAllStores(ctx context.Context) ([]store.Store, error) {
	if v.fetched {
		return v.stores, nil
	}
	v.loading = true
	v.err = ""
	defer func() { v.loading = false }()

	data, err := v.source.Fetch(ctx)
	if err != nil {
		v.err = err.Error()
		log.Warnf("Store fetch failed: %v", err)
		return nil, err
	}

	v.stores = data.Stores
	v.fetched = true
	return v.stores, nil
}

// FilteredStores derives the visible subset: a selected suggestion wins and
// returns its attached stores verbatim, then a selected city filters by exact
// (case-sensitive) address city equality, otherwise the full collection.
func (v *View) FilteredStores() []store.Store {
	if v.selectedSuggestion != nil {
		return v.selectedSuggestion.Data
	}
	if v.selectedCity != "" {
		var out []store.Store
		for _, s := range v.stores {
			if s.Location.Address.City == v.selectedCity {
				out = append(out, s)
			}
		}
		return out
	}
	return v.stores
}

// PagedStores slices FilteredStores for the current page. Out-of-range pages
// yield a shorter or empty slice, never an error.
func (v *View) PagedStores() []store.Store {
	filtered := v.FilteredStores()
	start := (v.currentPage - 1) * v.pageSize
	if start >= len(filtered) || start < 0 {
		return nil
	}
	end := start + v.pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}

// MaxPage is ceil(len(filtered)/pageSize); 0 when the filtered set is empty.
func (v *View) MaxPage() int {
	return int(math.Ceil(float64(len(v.FilteredStores())) / float64(v.pageSize)))
}

// PopularCities ranks all cities of the unfiltered collection by store count,
// descending, ties in first-seen order, truncated to the configured limit.
func (v *View) PopularCities() []CityCount {
	counts := make(map[string]int)
	var order []string
	for _, s := range v.stores {
		city := s.Location.Address.City
		if _, seen := counts[city]; !seen {
			order = append(order, city)
		}
		counts[city]++
	}

	out := make([]CityCount, 0, len(order))
	for _, city := range order {
		out = append(out, CityCount{Name: city, Count: counts[city]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if len(out) > v.popularLimit {
		out = out[:v.popularLimit]
	}
	return out
}

// ChangeCurrentPage moves to a page; out-of-range requests are a no-op.
func (v *View) ChangeCurrentPage(page int) {
	if page < 1 || page > v.MaxPage() {
		return
	}
	v.currentPage = page
}

// FilterByCity activates the city filter. The city filter and a selected
// suggestion are mutually exclusive, so the suggestion and search text are
// cleared and the page resets.
func (v *View) FilterByCity(city string) {
	v.selectedCity = city
	v.searchText = ""
	v.selectedSuggestion = nil
	v.currentPage = 1
}

// ClearSearch drops the search text and selected suggestion and resets the
// page. The city filter survives.
func (v *View) ClearSearch() {
	v.searchText = ""
	v.selectedSuggestion = nil
	v.currentPage = 1
}

// Select activates a suggestion (stored as a shallow copy), clears the city
// filter and resets the page.
func (v *View) Select(s suggest.Suggestion) {
	copied := s
	v.selectedSuggestion = &copied
	v.selectedCity = ""
	v.currentPage = 1
}

// SetSearchText records the raw search input the session currently holds.
func (v *View) SetSearchText(text string) {
	v.searchText = text
}

func (v *View) Stores() []store.Store                     { return v.stores }
func (v *View) Loading() bool                             { return v.loading }
func (v *View) Err() string                               { return v.err }
func (v *View) Fetched() bool                             { return v.fetched }
func (v *View) CurrentPage() int                          { return v.currentPage }
func (v *View) PageSize() int                             { return v.pageSize }
func (v *View) SearchText() string                        { return v.searchText }
func (v *View) SelectedCity() string                      { return v.selectedCity }
func (v *View) SelectedSuggestion() *suggest.Suggestion   { return v.selectedSuggestion }
