package tsetmc

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/navassist/nav-reconciler/internal/config"
)

// Client is the board price source consumed by services. It is an interface
// so tests can substitute a mock without network access.
type Client interface {
	// ResolveSymbol turns a fund's display symbol into the internal
	// instrument key via the search endpoint.
	ResolveSymbol(ctx context.Context, symbol string) (string, error)

	// FetchBoardPrice resolves the symbol and then queries the pricing
	// endpoint for the latest official closing price. The two calls are
	// strictly ordered within one invocation.
	FetchBoardPrice(ctx context.Context, symbol string) (float64, error)
}

// MarketClient fetches board prices from the exchange's public endpoints.
// Both outbound calls share one http.Client whose Timeout comes from
// configuration; redirects are followed by the default transport policy.
type MarketClient struct {
	httpClient *http.Client
	searchURL  string
	priceURL   string
	pricePath  string
}

// NewMarketClient creates a new market data client from the given configuration.
func NewMarketClient(cfg config.MarketConfig) *MarketClient {
	return &MarketClient{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		searchURL:  cfg.SearchURL,
		priceURL:   cfg.PriceURL,
		pricePath:  cfg.PricePath,
	}
}

// ResolveSymbol queries the search endpoint with the fund's display symbol
// and extracts the internal instrument key from the delimited text response:
// records are separated by ';', fields by ',', and the key is the third
// field of the first record.
func (c *MarketClient) ResolveSymbol(ctx context.Context, symbol string) (string, error) {
	addr := c.searchURL + "?skey=" + url.QueryEscape(symbol)

	body, err := c.get(ctx, addr)
	if err != nil {
		return "", fmt.Errorf("symbol search for %q: %w", symbol, err)
	}

	key, err := parseSearchResponse(string(body))
	if err != nil {
		return "", fmt.Errorf("symbol search for %q: %w", symbol, err)
	}

	return key, nil
}

// FetchBoardPrice resolves the symbol and then fetches the closing price.
func (c *MarketClient) FetchBoardPrice(ctx context.Context, symbol string) (float64, error) {
	insCode, err := c.ResolveSymbol(ctx, symbol)
	if err != nil {
		return 0, err
	}

	return c.closingPrice(ctx, symbol, insCode)
}

// closingPrice queries the pricing endpoint with the resolved instrument key
// and extracts the nested closing price field from the JSON body.
func (c *MarketClient) closingPrice(ctx context.Context, symbol, insCode string) (float64, error) {
	addr := strings.TrimRight(c.priceURL, "/") + "/" + url.PathEscape(insCode)

	body, err := c.get(ctx, addr)
	if err != nil {
		return 0, fmt.Errorf("price lookup for %q: %w", symbol, err)
	}

	var jobj any
	if err := json.Unmarshal(body, &jobj); err != nil {
		return 0, fmt.Errorf("price lookup for %q: invalid JSON: %w", symbol, err)
	}

	jval, err := jsonpath.Get(c.pricePath, jobj)
	if err != nil {
		return 0, fmt.Errorf("price lookup for %q: %q: %w", symbol, c.pricePath, err)
	}

	// jsonpath may return a list of one answer instead of a single answer;
	// keep the first element if so.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}

	price, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("price lookup for %q: %q is not a number: %v", symbol, c.pricePath, jval)
	}

	return price, nil
}

// get executes one HTTP GET and returns the response body.
func (c *MarketClient) get(ctx context.Context, addr string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "*/*")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	return io.ReadAll(resp.Body)
}

// parseSearchResponse extracts the instrument key from the search endpoint's
// delimited text body.
func parseSearchResponse(body string) (string, error) {
	for _, record := range strings.Split(body, ";") {
		record = strings.TrimSpace(record)
		if record == "" {
			continue
		}

		fields := strings.Split(record, ",")
		if len(fields) < 3 {
			return "", fmt.Errorf("malformed search record %q", record)
		}

		key := strings.TrimSpace(fields[2])
		if key == "" {
			return "", fmt.Errorf("empty instrument key in record %q", record)
		}
		return key, nil
	}

	return "", fmt.Errorf("empty search response")
}
