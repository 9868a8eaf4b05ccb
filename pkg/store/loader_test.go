package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTestdata(t *testing.T) *Data {
	t.Helper()
	data, err := LoadFile(filepath.Join("testdata", "stores.json"))
	require.NoError(t, err)
	require.Len(t, data.Stores, 3)
	return data
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		filename string
		expected Format
	}{
		{"stores.json", FormatJSON},
		{"STORES.JSON", FormatJSON},
		{"stores.bin", FormatBinary},
		{"stores.msgpack", FormatBinary},
		{"stores.toml", FormatUnknown},
		{"stores", FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectFormat(tt.filename))
		})
	}
}

func TestLoadFileJSON(t *testing.T) {
	data := loadTestdata(t)

	first := data.Stores[0]
	assert.Equal(t, "4881", first.StoreID)
	assert.Equal(t, "Jumbo Nuenen Kernkwartier", first.Name)
	assert.Equal(t, "NUENEN", first.Location.Address.City)
	assert.Equal(t, "Hoge Brake", first.Location.Address.Street)
	assert.Equal(t, "36-40", first.Location.Address.HouseNumber)
	assert.Equal(t, "08:00+01:00", first.OpeningHours.Monday.OpensAt)
	assert.True(t, first.Commerce.HomeDelivery.Available)
	assert.True(t, first.Facilities.Wifi)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join("testdata", "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "stores.toml")
	require.NoError(t, os.WriteFile(bad, []byte("not a dataset"), 0644))
	_, err = LoadFile(bad)
	assert.ErrorContains(t, err, "unsupported dataset format")

	broken := filepath.Join(t.TempDir(), "stores.json")
	require.NoError(t, os.WriteFile(broken, []byte("{invalid"), 0644))
	_, err = LoadFile(broken)
	assert.Error(t, err)
}

func TestWriteBinaryRoundTrip(t *testing.T) {
	data := loadTestdata(t)

	path := filepath.Join(t.TempDir(), "stores.bin")
	require.NoError(t, WriteBinary(data, path))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, loaded.Stores, len(data.Stores))
	assert.Equal(t, data.Stores, loaded.Stores)
}

func TestByID(t *testing.T) {
	data := loadTestdata(t)

	s := data.ByID("4902")
	require.NotNil(t, s)
	assert.Equal(t, "Jumbo St. Oedenrode Pieter Christiaanstraat", s.Name)

	assert.Nil(t, data.ByID("0000"))
	assert.Nil(t, data.ByID(""))
}

func TestByCity(t *testing.T) {
	data := loadTestdata(t)

	assert.Len(t, data.ByCity("ST. OEDENRODE"), 2)
	assert.Len(t, data.ByCity("oedenrode"), 2, "lookup is case-insensitive")
	assert.Len(t, data.ByCity("nuen"), 1, "lookup matches substrings")
	assert.Empty(t, data.ByCity("eindhoven"))
}

func TestWithFacility(t *testing.T) {
	data := loadTestdata(t)

	assert.Len(t, data.WithFacility("flowers"), 3)
	assert.Len(t, data.WithFacility("dryCleaning"), 1)
	assert.Len(t, data.WithFacility("postOffice"), 1)
	assert.Empty(t, data.WithFacility("pharmacy"))
	assert.Empty(t, data.WithFacility("teleporter"), "unknown names match nothing")
}

func TestOpeningHoursDay(t *testing.T) {
	h := OpeningHours{
		Sunday:    OpeningHoursDay{OpensAt: "10:00"},
		Monday:    OpeningHoursDay{OpensAt: "08:00"},
		Saturday:  OpeningHoursDay{OpensAt: "09:00"},
		Wednesday: OpeningHoursDay{OpensAt: "08:30"},
	}

	assert.Equal(t, "10:00", h.Day(0).OpensAt)
	assert.Equal(t, "08:00", h.Day(1).OpensAt)
	assert.Equal(t, "08:30", h.Day(3).OpensAt)
	assert.Equal(t, "09:00", h.Day(6).OpensAt)
	assert.Equal(t, "10:00", h.Day(7).OpensAt, "indices wrap modulo 7")
}

func TestFileSourceFetch(t *testing.T) {
	src := FileSource{Path: filepath.Join("testdata", "stores.json")}
	data, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, data.Stores, 3)

	src = FileSource{Path: filepath.Join("testdata", "missing.json")}
	_, err = src.Fetch(context.Background())
	assert.Error(t, err)
}

func TestHTTPSourceFetch(t *testing.T) {
	data := loadTestdata(t)
	payload, err := json.Marshal(data)
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL, 2*time.Second)
	fetched, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, fetched.Stores, 3)
	assert.Equal(t, "4881", fetched.Stores[0].StoreID)
}

func TestHTTPSourceFetchErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL, 2*time.Second)
	_, err := src.Fetch(context.Background())
	assert.Error(t, err)
}
