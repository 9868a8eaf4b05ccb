package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefind/pkg/config"
	"storefind/pkg/store"
	"storefind/pkg/suggest"
	"storefind/pkg/view"
)

type staticSource struct{ data *store.Data }

func (s staticSource) Fetch(_ context.Context) (*store.Data, error) { return s.data, nil }

func testView(t *testing.T) *view.View {
	t.Helper()
	data := &store.Data{Stores: []store.Store{
		{
			StoreID: "4881",
			Name:    "Jumbo Nuenen Kernkwartier",
			Location: store.Location{
				Address: store.Address{City: "NUENEN", Street: "Hoge Brake"},
			},
		},
	}}
	v := view.New(staticSource{data: data}, 10, 10)
	_, err := v.FetchAllStores(context.Background())
	require.NoError(t, err)
	return v
}

func fastConfig(immediate bool) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Search.DebounceMs = 10
	cfg.Search.Immediate = immediate
	return cfg
}

func TestNewInputHandlerImmediateBlankSession(t *testing.T) {
	v := testView(t)
	h := NewInputHandler(v, suggest.NewFacetIndex(v.Stores()), fastConfig(true), 10, false)
	defer h.watch.Stop()

	// the leading call sees an empty search text and must not queue it
	select {
	case q := <-h.settled:
		t.Fatalf("unexpected settled value %q on a blank session", q)
	default:
	}
}

func TestNewInputHandlerImmediateWithText(t *testing.T) {
	v := testView(t)
	v.SetSearchText("nuenen")
	h := NewInputHandler(v, suggest.NewFacetIndex(v.Stores()), fastConfig(true), 10, false)
	defer h.watch.Stop()

	// immediate fires synchronously with the current text
	select {
	case q := <-h.settled:
		assert.Equal(t, "nuenen", q)
	default:
		t.Fatal("expected an immediate settled value")
	}
}

func TestNewInputHandlerDebouncedDelivery(t *testing.T) {
	v := testView(t)
	h := NewInputHandler(v, suggest.NewFacetIndex(v.Stores()), fastConfig(false), 10, false)
	defer h.watch.Stop()

	// without immediate nothing fires until a Notify settles
	select {
	case q := <-h.settled:
		t.Fatalf("unexpected settled value %q before any input", q)
	default:
	}

	v.SetSearchText("hoge")
	h.watch.Notify()

	select {
	case q := <-h.settled:
		assert.Equal(t, "hoge", q)
	case <-time.After(time.Second):
		t.Fatal("debounced value never settled")
	}
}
