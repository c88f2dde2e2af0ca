package nominatim

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSearchRequestShape(t *testing.T) {
	var gotQuery, gotFormat, gotLimit, gotUA string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotFormat = r.URL.Query().Get("format")
		gotLimit = r.URL.Query().Get("limit")
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"osm_type":"relation","osm_id":112871,"lat":"48.1371079","lon":"11.5753822","class":"boundary","type":"administrative","display_name":"Munich, Bavaria, Germany"}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-agent/1.0", 5*time.Second)
	results, err := client.Search(context.Background(), "munich")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if gotQuery != "munich" {
		t.Errorf("Expected q=munich, got %q", gotQuery)
	}
	if gotFormat != "json" {
		t.Errorf("Expected format=json, got %q", gotFormat)
	}
	if gotLimit != "1" {
		t.Errorf("Expected limit=1, got %q", gotLimit)
	}
	if gotUA != "test-agent/1.0" {
		t.Errorf("Expected fixed user agent, got %q", gotUA)
	}

	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if results[0].OsmID != 112871 {
		t.Errorf("Expected osm_id 112871, got %d", results[0].OsmID)
	}
	if results[0].Lat != "48.1371079" {
		t.Errorf("Expected string latitude, got %q", results[0].Lat)
	}
}

func TestDetailsRequestShape(t *testing.T) {
	tests := []struct {
		name        string
		osmType     string
		wantInitial string
	}{
		{name: "relation", osmType: "relation", wantInitial: "R"},
		{name: "way", osmType: "way", wantInitial: "W"},
		{name: "node", osmType: "node", wantInitial: "N"},
		{name: "empty", osmType: "", wantInitial: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotOsmID, gotOsmType string

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotOsmID = r.URL.Query().Get("osmid")
				gotOsmType = r.URL.Query().Get("osmtype")
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"category":"place","localname":"Munich","country_code":"de","names":{"name":"München"},"addresstags":[],"extratags":{"linked_place":"city"}}`))
			}))
			defer server.Close()

			client := NewClient(server.URL, "test-agent/1.0", 5*time.Second)
			details, err := client.Details(context.Background(), 112871, tt.osmType)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if gotOsmID != "112871" {
				t.Errorf("Expected osmid=112871, got %q", gotOsmID)
			}
			if gotOsmType != tt.wantInitial {
				t.Errorf("Expected osmtype=%q, got %q", tt.wantInitial, gotOsmType)
			}
			if details.LocalName != "Munich" {
				t.Errorf("Expected localname Munich, got %q", details.LocalName)
			}
		})
	}
}

func TestReverseRequestShape(t *testing.T) {
	var gotLat, gotLon string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLat = r.URL.Query().Get("lat")
		gotLon = r.URL.Query().Get("lon")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"lat":"48.1371079","lon":"11.5753822","display_name":"Munich, Bavaria, Germany","address":{"city":"Munich","state":"Bavaria","country":"Germany","country_code":"de"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-agent/1.0", 5*time.Second)
	reverse, err := client.Reverse(context.Background(), 48.1371079, 11.5753822)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if gotLat != "48.1371079" {
		t.Errorf("Expected full precision lat, got %q", gotLat)
	}
	if gotLon != "11.5753822" {
		t.Errorf("Expected full precision lon, got %q", gotLon)
	}
	if reverse.Address.City != "Munich" {
		t.Errorf("Expected city Munich, got %q", reverse.Address.City)
	}
}

func TestClientUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Bandwidth limit exceeded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-agent/1.0", 5*time.Second)
	if _, err := client.Search(context.Background(), "munich"); err == nil {
		t.Error("Expected error for non-200 status")
	}
}

func TestClientMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-agent/1.0", 5*time.Second)
	if _, err := client.Reverse(context.Background(), 48.1, 11.5); err == nil {
		t.Error("Expected error for malformed body")
	}
}

func TestClientContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-agent/1.0", 5*time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := client.Search(ctx, "munich"); err == nil {
		t.Error("Expected error for cancelled context")
	}
}
