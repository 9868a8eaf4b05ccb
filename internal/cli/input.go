// Package cli is the interactive search loop used for debugging and for
// poking at a dataset without a client attached.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"storefind/internal/utils"
	"storefind/pkg/config"
	"storefind/pkg/hours"
	"storefind/pkg/suggest"
	"storefind/pkg/view"
)

// InputHandler reads queries from stdin and prints ranked suggestions.
// Colon commands drive the session state the way a UI would:
// :sel N, :city NAME, :page N, :stores, :cities, :clear.
type InputHandler struct {
	view     *view.View
	index    *suggest.FacetIndex
	minQuery int
	maxQuery int
	limit    int
	noFilter bool

	watch   *view.Watch
	settled chan string
	last    []suggest.Suggestion
}

// NewInputHandler wires the handler to a session view and facet index.
func NewInputHandler(v *view.View, index *suggest.FacetIndex, cfg *config.Config, limit int, noFilter bool) *InputHandler {
	h := &InputHandler{
		view:     v,
		index:    index,
		minQuery: cfg.Server.MinQuery,
		maxQuery: cfg.Server.MaxQuery,
		limit:    limit,
		noFilter: noFilter,
		settled:  make(chan string, 1),
	}
	// same single-slot debounce a UI would sit behind; the loop waits for
	// the settled value before querying. The empty guard keeps an immediate
	// leading call on a blank session from pre-filling the channel.
	h.watch = view.DebouncedWatch(
		v.SearchText,
		func(q string) {
			if q == "" {
				return
			}
			h.settled <- q
		},
		time.Duration(cfg.Search.DebounceMs)*time.Millisecond,
		cfg.Search.Immediate,
	)
	return h
}

// Start begins the interface loop. It terminates on stdin EOF or read error.
func (h *InputHandler) Start() error {
	log.Print("storefind CLI")
	log.Print("type a city, street or store name and press Enter (Ctrl+C to exit):")
	reader := bufio.NewReader(os.Stdin)

	for {
		log.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			h.watch.Stop()
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			h.handleCommand(line)
			continue
		}
		h.handleQuery(line)
	}
}

func (h *InputHandler) handleQuery(query string) {
	if len(query) < h.minQuery {
		log.Errorf("Query too short: %s", query)
		return
	}
	if len(query) > h.maxQuery {
		log.Errorf("Query too long: %s", query)
		return
	}
	if !h.noFilter && !utils.IsValidQuery(query) {
		log.Infof("No results found for: '%s'", query)
		return
	}

	h.view.SetSearchText(query)
	h.watch.Notify()
	settled := <-h.settled

	start := time.Now()
	h.last = suggest.Get(settled, h.view.Stores())
	elapsed := time.Since(start)
	log.Debugf("Took [ %v ] for query '%s'", elapsed, settled)

	if len(h.last) == 0 {
		log.Warnf("No suggestions found for: '%s'", settled)
		return
	}

	shown := h.last
	if h.limit > 0 && len(shown) > h.limit {
		shown = shown[:h.limit]
	}
	log.Printf("Found %d suggestions for '%s':", len(h.last), settled)
	for i, s := range shown {
		log.Printf("%2d. [%-6s] %-40s (%d stores)", i+1, s.Type, s.Text, s.Count)
	}
}

func (h *InputHandler) handleCommand(line string) {
	fields := strings.Fields(line)
	cmd, arg := fields[0], ""
	if len(fields) > 1 {
		arg = strings.Join(fields[1:], " ")
	}

	switch cmd {
	case ":sel":
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 || n > len(h.last) {
			log.Errorf("Usage: :sel N (1..%d)", len(h.last))
			return
		}
		h.view.Select(h.last[n-1])
		log.Printf("Selected %s, %d stores, page reset", h.last[n-1].Text, h.last[n-1].Count)
	case ":city":
		h.view.FilterByCity(arg)
		log.Printf("City filter: %q, %d stores", arg, len(h.view.FilteredStores()))
	case ":clear":
		h.view.ClearSearch()
		log.Print("Search cleared")
	case ":page":
		n, err := strconv.Atoi(arg)
		if err != nil {
			log.Errorf("Usage: :page N")
			return
		}
		h.view.ChangeCurrentPage(n)
		log.Printf("Page %d/%d", h.view.CurrentPage(), h.view.MaxPage())
	case ":stores":
		h.printStores()
	case ":cities":
		for i, c := range h.view.PopularCities() {
			log.Printf("%2d. %-30s %d stores", i+1, c.Name, c.Count)
		}
	case ":prefix":
		for i, v := range h.index.PrefixSearch(arg, h.limit) {
			log.Printf("%2d. [%-6s] %-40s (%d stores)", i+1, v.Type, v.Text, v.Count)
		}
	default:
		log.Errorf("Unknown command: %s", cmd)
	}
}

func (h *InputHandler) printStores() {
	now := time.Now()
	for _, s := range h.view.PagedStores() {
		status := hours.Get(s.OpeningHours, now)
		state := fmt.Sprintf("closed, opens %s", status.NextOpensAt)
		if status.IsOpen {
			state = fmt.Sprintf("open until %s", status.ClosesAt)
		}
		log.Printf("%-8s %-45s %s (%s)", s.StoreID, s.Name, s.Location.Address.City, state)
	}
	log.Printf("Page %d/%d", h.view.CurrentPage(), h.view.MaxPage())
}
