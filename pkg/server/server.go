package server

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"storefind/internal/utils"
	"storefind/pkg/config"
	"storefind/pkg/hours"
	"storefind/pkg/suggest"
	"storefind/pkg/view"
)

// Server handles the IPC for one store locator session.
type Server struct {
	view    *view.View
	index   *suggest.FacetIndex
	cfg     config.ServerConfig
	decoder *msgpack.Decoder
	encoder *msgpack.Encoder

	// suggestions from the last suggest action; select resolves IDs here
	lastSuggestions []suggest.Suggestion

	clock func() time.Time
}

// NewServer creates a completion server using stdin/stdout for IPC.
func NewServer(v *view.View, index *suggest.FacetIndex, cfg config.ServerConfig) *Server {
	return &Server{
		view:    v,
		index:   index,
		cfg:     cfg,
		decoder: msgpack.NewDecoder(os.Stdin),
		encoder: msgpack.NewEncoder(os.Stdout),
		clock:   time.Now,
	}
}

// NewServerIO is NewServer with explicit streams, for tests and embedding.
func NewServerIO(v *view.View, index *suggest.FacetIndex, cfg config.ServerConfig, r io.Reader, w io.Writer) *Server {
	return &Server{
		view:    v,
		index:   index,
		cfg:     cfg,
		decoder: msgpack.NewDecoder(r),
		encoder: msgpack.NewEncoder(w),
		clock:   time.Now,
	}
}

// Start begins listening for IPC requests. Returns nil on clean EOF.
func (s *Server) Start() error {
	log.Debug("Starting server.")

	// signal readiness before the first request
	s.send(StateResponse{Status: "ready", Page: s.view.CurrentPage(), MaxPage: s.view.MaxPage()})

	for {
		var req Request
		if err := s.decoder.Decode(&req); err != nil {
			if err == io.EOF {
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			return err
		}
		s.handle(req)
	}
}

func (s *Server) handle(req Request) {
	switch req.Action {
	case "suggest":
		s.handleSuggest(req)
	case "prefix":
		s.handlePrefix(req)
	case "select":
		s.handleSelect(req)
	case "filter_city":
		s.view.FilterByCity(req.City)
		s.sendState(req.ID)
	case "clear":
		s.view.ClearSearch()
		s.sendState(req.ID)
	case "page":
		// out-of-range pages are a no-op; the answer shows the unchanged state
		s.view.ChangeCurrentPage(req.Page)
		s.sendState(req.ID)
	case "stores":
		s.handleStores(req)
	case "store":
		s.handleStore(req)
	case "cities":
		s.handleCities(req)
	case "health":
		s.send(StateResponse{ID: req.ID, Status: "ok", Page: s.view.CurrentPage(), MaxPage: s.view.MaxPage()})
	default:
		s.sendError(req.ID, fmt.Sprintf("Unknown action: %s", req.Action), 400)
	}
}

func (s *Server) handleSuggest(req Request) {
	q := req.Query
	if len(q) < s.cfg.MinQuery {
		s.sendError(req.ID, "Query is too short", 400)
		return
	}
	if len(q) > s.cfg.MaxQuery {
		s.sendError(req.ID, fmt.Sprintf("Query exceeds maximum length of %d characters", s.cfg.MaxQuery), 400)
		return
	}
	if s.cfg.EnableFilter && !utils.IsValidQuery(q) {
		s.send(SuggestResponse{ID: req.ID, Suggestions: []SuggestionEntry{}})
		return
	}

	limit := req.Limit
	if limit < 1 {
		limit = 10
	}
	if limit > s.cfg.MaxLimit {
		limit = s.cfg.MaxLimit
	}

	start := s.clock()
	s.view.SetSearchText(q)
	suggestions := suggest.Get(q, s.view.Stores())
	elapsed := s.clock().Sub(start)

	// keep the full list so select can resolve any returned ID
	s.lastSuggestions = suggestions

	entries := make([]SuggestionEntry, 0, len(suggestions))
	for _, sg := range suggestions {
		if len(entries) >= limit {
			break
		}
		entries = append(entries, SuggestionEntry{ID: sg.ID, Text: sg.Text, Type: sg.Type, Count: sg.Count})
	}

	s.send(SuggestResponse{
		ID:          req.ID,
		Suggestions: entries,
		Count:       len(entries),
		TimeTaken:   elapsed.Milliseconds(),
	})
}

func (s *Server) handlePrefix(req Request) {
	if s.index == nil {
		s.sendError(req.ID, "Prefix index not available", 500)
		return
	}
	limit := req.Limit
	if limit < 1 {
		limit = 10
	}
	if limit > s.cfg.MaxLimit {
		limit = s.cfg.MaxLimit
	}

	values := s.index.PrefixSearch(req.Query, limit)
	entries := make([]PrefixEntry, 0, len(values))
	for _, v := range values {
		entries = append(entries, PrefixEntry{Text: v.Text, Type: v.Type, Count: v.Count})
	}
	s.send(PrefixResponse{ID: req.ID, Values: entries, Count: len(entries)})
}

func (s *Server) handleSelect(req Request) {
	for _, sg := range s.lastSuggestions {
		if sg.ID == req.SID {
			s.view.Select(sg)
			s.sendState(req.ID)
			return
		}
	}
	s.sendError(req.ID, fmt.Sprintf("Unknown suggestion id: %s", req.SID), 404)
}

func (s *Server) handleStores(req Request) {
	if req.Page > 0 {
		s.view.ChangeCurrentPage(req.Page)
	}

	now := s.clock()
	paged := s.view.PagedStores()
	entries := make([]StoreEntry, 0, len(paged))
	for _, st := range paged {
		status := hours.Get(st.OpeningHours, now)
		until := status.NextOpensAt
		if status.IsOpen {
			until = status.ClosesAt
		}
		entries = append(entries, StoreEntry{
			StoreID:     st.StoreID,
			Name:        st.Name,
			City:        st.Location.Address.City,
			Street:      st.Location.Address.Street,
			HouseNumber: st.Location.Address.HouseNumber,
			IsOpen:      status.IsOpen,
			Until:       until,
		})
	}

	s.send(StoresResponse{
		ID:      req.ID,
		Stores:  entries,
		Page:    s.view.CurrentPage(),
		MaxPage: s.view.MaxPage(),
		Total:   len(s.view.FilteredStores()),
	})
}

func (s *Server) handleStore(req Request) {
	var found *StoreResponse
	for _, st := range s.view.Stores() {
		if st.StoreID != req.StoreID {
			continue
		}
		status := hours.Get(st.OpeningHours, s.clock())
		found = &StoreResponse{
			ID:           req.ID,
			StoreID:      st.StoreID,
			Name:         st.Name,
			WebsiteURL:   st.WebsiteURL,
			City:         st.Location.Address.City,
			Street:       st.Location.Address.Street,
			HouseNumber:  st.Location.Address.HouseNumber,
			PostalCode:   st.Location.Address.PostalCode,
			Latitude:     st.Location.Latitude,
			Longitude:    st.Location.Longitude,
			IsOpen:       status.IsOpen,
			ClosesAt:     status.ClosesAt,
			NextOpensAt:  status.NextOpensAt,
			Parking:      st.Facilities.Parking,
			PickUpType:   st.Facilities.PickUpType,
			HomeDelivery: st.Commerce.HomeDelivery.Available,
			Collection:   st.Commerce.Collection.Available,
		}
		break
	}
	if found == nil {
		s.sendError(req.ID, fmt.Sprintf("Unknown store id: %s", req.StoreID), 404)
		return
	}
	s.send(*found)
}

func (s *Server) handleCities(req Request) {
	popular := s.view.PopularCities()
	entries := make([]CityEntry, 0, len(popular))
	for _, c := range popular {
		entries = append(entries, CityEntry{Name: c.Name, Count: c.Count})
	}
	s.send(CitiesResponse{ID: req.ID, Cities: entries})
}

func (s *Server) sendState(id string) {
	resp := StateResponse{
		ID:           id,
		Status:       "ok",
		Page:         s.view.CurrentPage(),
		MaxPage:      s.view.MaxPage(),
		SelectedCity: s.view.SelectedCity(),
	}
	if sel := s.view.SelectedSuggestion(); sel != nil {
		resp.SelectedSID = sel.ID
	}
	s.send(resp)
}

// send marshals a response onto stdout. Encoding trouble is logged and the
// client gets an error payload instead.
func (s *Server) send(response interface{}) {
	if err := s.encoder.Encode(response); err != nil {
		log.Errorf("Encoding response: %v", err)
	}
}

func (s *Server) sendError(id, message string, code int) {
	s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
