package testutil

import (
	"context"

	"github.com/navassist/nav-reconciler/internal/apperrors"
)

// MockMarketClient is a mock implementation of tsetmc.Client for testing.
// It returns predefined data instead of calling the market endpoints.
type MockMarketClient struct {
	// BoardPrice is the price returned from FetchBoardPrice
	BoardPrice float64
	// InsCode is the instrument key returned from ResolveSymbol
	InsCode string
	// FetchError is the error to return from FetchBoardPrice
	FetchError error
	// ResolveError is the error to return from ResolveSymbol
	ResolveError error
	// FetchCount tracks how many times FetchBoardPrice was called
	FetchCount int
	// ResolveCount tracks how many times ResolveSymbol was called
	ResolveCount int
}

// NewMockMarketClient creates a mock market client with a default price.
func NewMockMarketClient() *MockMarketClient {
	return &MockMarketClient{
		BoardPrice: 990.0,
		InsCode:    "7745894403636165",
	}
}

// ResolveSymbol returns the configured instrument key.
func (m *MockMarketClient) ResolveSymbol(_ context.Context, _ string) (string, error) {
	m.ResolveCount++
	if m.ResolveError != nil {
		return "", m.ResolveError
	}
	return m.InsCode, nil
}

// FetchBoardPrice returns the configured price.
func (m *MockMarketClient) FetchBoardPrice(_ context.Context, _ string) (float64, error) {
	m.FetchCount++
	if m.FetchError != nil {
		return 0, m.FetchError
	}
	return m.BoardPrice, nil
}

// WithBoardPrice configures the mock to return the given price.
func (m *MockMarketClient) WithBoardPrice(price float64) *MockMarketClient {
	m.BoardPrice = price
	return m
}

// WithFetchError configures FetchBoardPrice to fail.
func (m *MockMarketClient) WithFetchError(err error) *MockMarketClient {
	m.FetchError = err
	return m
}

// WithResolveError configures ResolveSymbol to fail.
func (m *MockMarketClient) WithResolveError(err error) *MockMarketClient {
	m.ResolveError = err
	return m
}

// Unavailable configures both methods to fail as an unreachable source.
func (m *MockMarketClient) Unavailable() *MockMarketClient {
	m.FetchError = apperrors.ErrBoardPriceUnavailable
	m.ResolveError = apperrors.ErrSymbolNotFound
	return m
}
