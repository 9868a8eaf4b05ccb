/*
Package server implements the msgpack IPC surface for the store locator.

The server speaks binary msgpack over stdin/stdout on a request/response
model. One connected client is one session: the server owns that session's
view state (current filter, page, selected suggestion) and mutates it through
the same operations a UI would.

# IPC

Every request carries an ID, an action, and the fields the action needs:

	{"id": "req_001", "action": "suggest", "q": "nuen", "l": 10}

The server answers suggestions ranked per facet, with timing info:

	{"id": "req_001", "s": [{"id": "city-NUENEN", "text": "NUENEN", "type": "City", "count": 1}], "c": 1, "t": 0}

Selecting a suggestion references the ID from the last suggest response:

	{"id": "req_002", "action": "select", "sid": "city-NUENEN"}

State-changing actions (select, filter_city, clear, page) answer with the
current session summary so clients never need a second round trip to know
which page they are on.

# Actions

suggest {q, l}: faceted suggestions for a query.
prefix {q, l}: trie-backed facet values for prefix-only input (fast path).
select {sid}: activate a suggestion from the last suggest response.
filter_city {city}: exact-match city filter, clears any selected suggestion.
clear: drop search text and selection, keep the city filter.
page {page}: change page; out-of-range requests leave the page unchanged.
stores {page}: the current page of the filtered collection.
store {store_id}: full store record plus live opening status.
cities: popular cities ranking.
health: liveness probe.

Malformed requests and unknown actions answer an error payload with the
request ID echoed back; nothing is ever fatal to the session.
*/
package server

// Request is the envelope every client message uses. Fields beyond ID and
// Action are read per action and ignored otherwise.
type Request struct {
	ID      string `msgpack:"id"`
	Action  string `msgpack:"action"`
	Query   string `msgpack:"q,omitempty"`
	Limit   int    `msgpack:"l,omitempty"`
	Page    int    `msgpack:"page,omitempty"`
	SID     string `msgpack:"sid,omitempty"`
	City    string `msgpack:"city,omitempty"`
	StoreID string `msgpack:"store_id,omitempty"`
}

// SuggestionEntry is one suggestion in a suggest response. The matched
// stores stay server-side; clients select by ID.
type SuggestionEntry struct {
	ID    string `msgpack:"id"`
	Text  string `msgpack:"text"`
	Type  string `msgpack:"type"`
	Count int    `msgpack:"count"`
}

// SuggestResponse answers a suggest action.
type SuggestResponse struct {
	ID          string            `msgpack:"id"`
	Suggestions []SuggestionEntry `msgpack:"s"`
	Count       int               `msgpack:"c"`
	TimeTaken   int64             `msgpack:"t"`
}

// PrefixEntry is one facet value in a prefix response.
type PrefixEntry struct {
	Text  string `msgpack:"text"`
	Type  string `msgpack:"type"`
	Count int    `msgpack:"count"`
}

// PrefixResponse answers a prefix action.
type PrefixResponse struct {
	ID     string        `msgpack:"id"`
	Values []PrefixEntry `msgpack:"v"`
	Count  int           `msgpack:"c"`
}

// StoreEntry is the list-level summary of one store.
type StoreEntry struct {
	StoreID     string `msgpack:"store_id"`
	Name        string `msgpack:"name"`
	City        string `msgpack:"city"`
	Street      string `msgpack:"street"`
	HouseNumber string `msgpack:"house_number"`
	IsOpen      bool   `msgpack:"is_open"`
	Until       string `msgpack:"until"`
}

// StoresResponse answers a stores action with the current page slice.
type StoresResponse struct {
	ID      string       `msgpack:"id"`
	Stores  []StoreEntry `msgpack:"stores"`
	Page    int          `msgpack:"page"`
	MaxPage int          `msgpack:"max_page"`
	Total   int          `msgpack:"total"`
}

// StoreResponse answers a store detail action.
type StoreResponse struct {
	ID           string  `msgpack:"id"`
	StoreID      string  `msgpack:"store_id"`
	Name         string  `msgpack:"name"`
	WebsiteURL   string  `msgpack:"website_url"`
	City         string  `msgpack:"city"`
	Street       string  `msgpack:"street"`
	HouseNumber  string  `msgpack:"house_number"`
	PostalCode   string  `msgpack:"postal_code"`
	Latitude     float64 `msgpack:"lat"`
	Longitude    float64 `msgpack:"lon"`
	IsOpen       bool    `msgpack:"is_open"`
	ClosesAt     string  `msgpack:"closes_at,omitempty"`
	NextOpensAt  string  `msgpack:"next_opens_at,omitempty"`
	Parking      string  `msgpack:"parking"`
	PickUpType   string  `msgpack:"pick_up_type"`
	HomeDelivery bool    `msgpack:"home_delivery"`
	Collection   bool    `msgpack:"collection"`
}

// CityEntry is one entry of the popular cities ranking.
type CityEntry struct {
	Name  string `msgpack:"name"`
	Count int    `msgpack:"count"`
}

// CitiesResponse answers a cities action.
type CitiesResponse struct {
	ID     string      `msgpack:"id"`
	Cities []CityEntry `msgpack:"cities"`
}

// StateResponse answers every state-changing action with the session summary.
type StateResponse struct {
	ID           string `msgpack:"id"`
	Status       string `msgpack:"status"`
	Page         int    `msgpack:"page"`
	MaxPage      int    `msgpack:"max_page"`
	SelectedCity string `msgpack:"selected_city,omitempty"`
	SelectedSID  string `msgpack:"selected_sid,omitempty"`
}

// ErrorResponse reports a failed request.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
