package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/go-chi/chi/v5"
)

// NewRequestWithURLParams creates an HTTP request with chi URL parameters.
// This helper simplifies testing chi handlers that use chi.URLParam() to extract path parameters.
//
// Example:
//
//	req := testutil.NewRequestWithURLParams(
//	    http.MethodGet,
//	    "/api/fund/Growth Fund",
//	    map[string]string{"name": "Growth Fund"},
//	)
func NewRequestWithURLParams(method, path string, params map[string]string) *http.Request {
	// Escape the path so targets containing spaces (e.g. "/api/fund/Growth Fund")
	// form a valid request line for httptest.NewRequest.
	req := httptest.NewRequest(method, (&url.URL{Path: path}).RequestURI(), nil)

	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for key, value := range params {
			rctx.URLParams.Add(key, value)
		}
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	return req
}

// NewRequestWithQueryParams creates an HTTP request with query parameters.
// This helper simplifies testing handlers that use r.URL.Query() to extract query string parameters.
//
// Example:
//
//	req := testutil.NewRequestWithQueryParams(
//	    http.MethodGet,
//	    "/api/log",
//	    map[string]string{"fund": "Growth Fund"},
//	)
func NewRequestWithQueryParams(method, path string, queryParams map[string]string) *http.Request {
	req := httptest.NewRequest(method, path, nil)

	if len(queryParams) > 0 {
		q := req.URL.Query()
		for key, value := range queryParams {
			q.Add(key, value)
		}
		req.URL.RawQuery = q.Encode()
	}

	return req
}

// NewJSONRequest creates an HTTP request carrying a JSON-encoded body,
// optionally with chi URL parameters.
//
// Example:
//
//	req := testutil.NewJSONRequest(t, http.MethodPost, "/api/reconcile",
//	    request.ReconcileRequest{FundName: "Growth Fund"}, nil)
func NewJSONRequest(t *testing.T, method, path string, body any, params map[string]string) *http.Request {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal request body: %v", err)
	}

	req := httptest.NewRequest(method, (&url.URL{Path: path}).RequestURI(), bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	if len(params) > 0 {
		rctx := chi.NewRouteContext()
		for key, value := range params {
			rctx.URLParams.Add(key, value)
		}
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	return req
}

// DecodeJSONResponse unmarshals a recorded response body into dest.
func DecodeJSONResponse(t *testing.T, rec *httptest.ResponseRecorder, dest any) {
	t.Helper()

	if err := json.Unmarshal(rec.Body.Bytes(), dest); err != nil {
		t.Fatalf("Failed to decode response body %q: %v", rec.Body.String(), err)
	}
}
