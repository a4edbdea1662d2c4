package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

// testContext stands in for testing.T.Context (Go 1.24+): it returns a
// context that is canceled when the test finishes.
func testContext(t testing.TB) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}

// newRequestWithContext stands in for httptest.NewRequestWithContext (Go 1.23+).
func newRequestWithContext(ctx context.Context, method, target string, body io.Reader) *http.Request {
	return httptest.NewRequest(method, target, body).WithContext(ctx)
}
