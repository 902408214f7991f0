package eutils

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
)

func testClient(ts *httptest.Server) *Client {
	return &Client{
		HTTP:         ts.Client(),
		APIKey:       "test-key",
		ContactEmail: "ops@example.org",
		UserAgent:    "pharma-papers-test/0.1",
	}
}

func searchXML(count int, ids []string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0"?><eSearchResult>`)
	fmt.Fprintf(&b, "<Count>%d</Count>", count)
	b.WriteString("<IdList>")
	for _, id := range ids {
		fmt.Fprintf(&b, "<Id>%s</Id>", id)
	}
	b.WriteString("</IdList></eSearchResult>")
	return b.String()
}

func TestSearchSinglePage(t *testing.T) {
	var gotTerm, gotKey, gotEmail string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTerm = r.URL.Query().Get("term")
		gotKey = r.URL.Query().Get("api_key")
		gotEmail = r.URL.Query().Get("email")
		fmt.Fprint(w, searchXML(2, []string{"111", "222"}))
	}))
	defer ts.Close()
	esearchBase = ts.URL

	ids, err := testClient(ts).Search(context.Background(), "cancer treatment", 100)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(ids) != 2 || ids[0] != "111" || ids[1] != "222" {
		t.Errorf("ids = %v, want [111 222]", ids)
	}
	if gotTerm != "cancer treatment" {
		t.Errorf("term = %q, want query passed through unmodified", gotTerm)
	}
	if gotKey != "test-key" || gotEmail != "ops@example.org" {
		t.Errorf("credentials not sent: api_key=%q email=%q", gotKey, gotEmail)
	}
}

func TestSearchPagesThroughResults(t *testing.T) {
	const total = 1200
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		retstart, _ := strconv.Atoi(r.URL.Query().Get("retstart"))
		retmax, _ := strconv.Atoi(r.URL.Query().Get("retmax"))
		var ids []string
		for i := retstart; i < retstart+retmax && i < total; i++ {
			ids = append(ids, strconv.Itoa(i))
		}
		fmt.Fprint(w, searchXML(total, ids))
	}))
	defer ts.Close()
	esearchBase = ts.URL

	ids, err := testClient(ts).Search(context.Background(), "covid", 2500)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(ids) != total {
		t.Fatalf("len(ids) = %d, want %d", len(ids), total)
	}
	if ids[0] != "0" || ids[total-1] != strconv.Itoa(total-1) {
		t.Errorf("ids out of order: first=%s last=%s", ids[0], ids[total-1])
	}
}

func TestSearchCapsAtMaxResults(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		retmax, _ := strconv.Atoi(r.URL.Query().Get("retmax"))
		var ids []string
		for i := 0; i < retmax; i++ {
			ids = append(ids, strconv.Itoa(i))
		}
		fmt.Fprint(w, searchXML(5000, ids))
	}))
	defer ts.Close()
	esearchBase = ts.URL

	ids, err := testClient(ts).Search(context.Background(), "diabetes", 50)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(ids) != 50 {
		t.Errorf("len(ids) = %d, want 50", len(ids))
	}
}

func TestSearchZeroResultsIsNotAnError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, searchXML(0, nil))
	}))
	defer ts.Close()
	esearchBase = ts.URL

	ids, err := testClient(ts).Search(context.Background(), "xyzzy", 100)
	if err != nil {
		t.Fatalf("Search error: %v, want nil for zero matches", err)
	}
	if len(ids) != 0 {
		t.Errorf("ids = %v, want empty", ids)
	}
}

func TestSearchHTTPErrorSurfacesAsAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()
	esearchBase = ts.URL

	_, err := testClient(ts).Search(context.Background(), "cancer", 100)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", apiErr.StatusCode)
	}
}

func TestSearchNetworkErrorSurfacesAsAPIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // refuse connections
	esearchBase = ts.URL

	_, err := (&Client{HTTP: &http.Client{}}).Search(context.Background(), "cancer", 100)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0 for transport failure", apiErr.StatusCode)
	}
	if apiErr.Unwrap() == nil {
		t.Error("transport APIError should wrap the underlying error")
	}
}
