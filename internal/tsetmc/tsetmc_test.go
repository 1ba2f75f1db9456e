package tsetmc_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/navassist/nav-reconciler/internal/config"
	"github.com/navassist/nav-reconciler/internal/tsetmc"
)

func marketConfig(searchURL, priceURL string) config.MarketConfig {
	return config.MarketConfig{
		SearchURL: searchURL,
		PriceURL:  priceURL,
		PricePath: "$.closingPriceInfo.pDrCotVal",
		Timeout:   5 * time.Second,
	}
}

func TestMarketClient_FetchBoardPrice(t *testing.T) {
	t.Run("resolves symbol then fetches closing price", func(t *testing.T) {
		var searchHits, priceHits int

		search := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			searchHits++
			if got := r.URL.Query().Get("skey"); got != "ETFX" {
				t.Errorf("Expected skey=ETFX, got %q", got)
			}
			_, _ = w.Write([]byte("ETFX,ETF Example Fund,778253364357513,ETFX1,1;OTHER,Other,999,O1,1;"))
		}))
		defer search.Close()

		price := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			priceHits++
			if r.URL.Path != "/778253364357513" {
				t.Errorf("Expected resolved key in path, got %q", r.URL.Path)
			}
			if searchHits == 0 {
				t.Error("Price lookup ran before symbol resolution")
			}
			_, _ = w.Write([]byte(`{"closingPriceInfo":{"pDrCotVal":996.0,"priceChange":-2}}`))
		}))
		defer price.Close()

		client := tsetmc.NewMarketClient(marketConfig(search.URL, price.URL))

		got, err := client.FetchBoardPrice(context.Background(), "ETFX")
		if err != nil {
			t.Fatalf("FetchBoardPrice failed: %v", err)
		}
		if got != 996.0 {
			t.Errorf("Expected board price 996.0, got %v", got)
		}
		if searchHits != 1 || priceHits != 1 {
			t.Errorf("Expected one call per endpoint, got search=%d price=%d", searchHits, priceHits)
		}
	})

	t.Run("follows redirects on the search endpoint", func(t *testing.T) {
		final := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ETFX,ETF Example Fund,12345,ETFX1,1;"))
		}))
		defer final.Close()

		redirecting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, final.URL+"/?"+r.URL.RawQuery, http.StatusFound)
		}))
		defer redirecting.Close()

		client := tsetmc.NewMarketClient(marketConfig(redirecting.URL, "http://unused.invalid"))

		key, err := client.ResolveSymbol(context.Background(), "ETFX")
		if err != nil {
			t.Fatalf("ResolveSymbol failed: %v", err)
		}
		if key != "12345" {
			t.Errorf("Expected key 12345, got %q", key)
		}
	})

	t.Run("empty search response is an error", func(t *testing.T) {
		search := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(""))
		}))
		defer search.Close()

		client := tsetmc.NewMarketClient(marketConfig(search.URL, "http://unused.invalid"))

		if _, err := client.ResolveSymbol(context.Background(), "ETFX"); err == nil {
			t.Error("Expected error for empty search response")
		}
	})

	t.Run("malformed search record is an error", func(t *testing.T) {
		search := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("only-two,fields;"))
		}))
		defer search.Close()

		client := tsetmc.NewMarketClient(marketConfig(search.URL, "http://unused.invalid"))

		if _, err := client.ResolveSymbol(context.Background(), "ETFX"); err == nil {
			t.Error("Expected error for malformed search record")
		}
	})

	t.Run("non-numeric closing price is an error", func(t *testing.T) {
		search := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ETFX,ETF Example Fund,12345,ETFX1,1;"))
		}))
		defer search.Close()

		price := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"closingPriceInfo":{"pDrCotVal":"n/a"}}`))
		}))
		defer price.Close()

		client := tsetmc.NewMarketClient(marketConfig(search.URL, price.URL))

		if _, err := client.FetchBoardPrice(context.Background(), "ETFX"); err == nil {
			t.Error("Expected error for non-numeric closing price")
		}
	})

	t.Run("timeout behaves like any other failure", func(t *testing.T) {
		slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte("ETFX,ETF Example Fund,12345,ETFX1,1;"))
		}))
		defer slow.Close()

		cfg := marketConfig(slow.URL, "http://unused.invalid")
		cfg.Timeout = 20 * time.Millisecond
		client := tsetmc.NewMarketClient(cfg)

		if _, err := client.ResolveSymbol(context.Background(), "ETFX"); err == nil {
			t.Error("Expected error on timeout")
		}
	})
}
