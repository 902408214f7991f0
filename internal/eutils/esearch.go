// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package eutils queries the NCBI E-utilities API: esearch for PMID lists
// and efetch for full article records.
package eutils

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/meshintel/pharma-papers/internal/httputil"
)

// Endpoint URLs. Declared as vars so tests can substitute an httptest server.
var (
	esearchBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/esearch.fcgi"
	efetchBase  = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/efetch.fcgi"
)

// toolName is sent as the E-utilities tool parameter.
const toolName = "pharma-papers"

// searchPageSize is the retmax used per esearch page. NCBI allows up to
// 10000 per call; smaller pages keep responses quick.
const searchPageSize = 1000

// Client issues requests against the E-utilities endpoints. The zero
// value is not usable; HTTP must be set.
type Client struct {
	HTTP *http.Client

	// APIKey and ContactEmail are attached to every request when set.
	APIKey       string
	ContactEmail string

	UserAgent string

	// Log receives progress and warning lines. Nil means silent.
	Log io.Writer
}

// eSearchResult mirrors the esearch XML payload.
type eSearchResult struct {
	Count int      `xml:"Count"`
	IDs   []string `xml:"IdList>Id"`
}

// Search runs the query against PubMed and returns the matching PMIDs in
// relevance order, paging through esearch until maxResults or the total
// hit count is reached. The query string is passed through to PubMed
// unmodified. Zero matches is a normal outcome: empty slice, nil error.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]string, error) {
	if maxResults <= 0 {
		maxResults = 100
	}

	var ids []string
	for retstart := 0; ; {
		retmax := searchPageSize
		if remaining := maxResults - len(ids); remaining < retmax {
			retmax = remaining
		}

		params := c.baseParams()
		params.Set("db", "pubmed")
		params.Set("term", query)
		params.Set("retstart", fmt.Sprintf("%d", retstart))
		params.Set("retmax", fmt.Sprintf("%d", retmax))
		params.Set("retmode", "xml")

		var page eSearchResult
		if err := c.getXML(ctx, esearchBase, params, &page); err != nil {
			return nil, err
		}

		ids = append(ids, page.IDs...)
		c.logf("esearch: %d/%d identifiers (total matches: %d)", len(ids), maxResults, page.Count)

		retstart += len(page.IDs)
		if len(page.IDs) == 0 || len(ids) >= maxResults || retstart >= page.Count {
			break
		}
	}

	if len(ids) > maxResults {
		ids = ids[:maxResults]
	}
	return ids, nil
}

// baseParams returns the parameters every E-utilities request carries.
func (c *Client) baseParams() url.Values {
	params := url.Values{"tool": {toolName}}
	if c.APIKey != "" {
		params.Set("api_key", c.APIKey)
	}
	if c.ContactEmail != "" {
		params.Set("email", c.ContactEmail)
	}
	return params
}

// getXML issues a GET against base with params and decodes the XML body
// into dst. Transport failures and non-200 statuses surface as *APIError.
func (c *Client) getXML(ctx context.Context, base string, params url.Values, dst any) error {
	reqURL := base + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := httputil.DoWithRetry(ctx, c.HTTP, req, 0)
	if err != nil {
		return &APIError{Endpoint: base, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &APIError{Endpoint: base, StatusCode: resp.StatusCode}
	}

	if err := xml.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("parsing %s response: %w", base, err)
	}
	return nil
}

func (c *Client) logf(format string, args ...any) {
	if c.Log != nil {
		fmt.Fprintf(c.Log, format+"\n", args...)
	}
}
