package eutils

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const sampleFetchXML = `<?xml version="1.0"?>
<PubmedArticleSet>
  <PubmedArticle>
    <MedlineCitation>
      <PMID Version="1">11111</PMID>
      <Article>
        <Journal>
          <JournalIssue>
            <PubDate><Year>2024</Year><Month>Mar</Month><Day>15</Day></PubDate>
          </JournalIssue>
        </Journal>
        <ArticleTitle>Industry study</ArticleTitle>
        <AuthorList>
          <Author>
            <LastName>Smith</LastName>
            <ForeName>Jane</ForeName>
            <AffiliationInfo>
              <Affiliation>Pfizer Inc., New York, NY. jane.smith@pfizer.com.</Affiliation>
            </AffiliationInfo>
          </Author>
          <Author>
            <LastName>Jones</LastName>
            <ForeName>Bob</ForeName>
            <AffiliationInfo>
              <Affiliation>Harvard Medical School, Boston, MA.</Affiliation>
            </AffiliationInfo>
          </Author>
        </AuthorList>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
  <PubmedArticle>
    <MedlineCitation>
      <PMID Version="1">22222</PMID>
      <Article>
        <Journal>
          <JournalIssue>
            <PubDate><MedlineDate>2023 Nov-Dec</MedlineDate></PubDate>
          </JournalIssue>
        </Journal>
        <ArticleTitle>Titled but authorless</ArticleTitle>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
  <PubmedArticle>
    <MedlineCitation>
      <PMID Version="1">33333</PMID>
      <Article>
        <ArticleTitle></ArticleTitle>
      </Article>
    </MedlineCitation>
  </PubmedArticle>
</PubmedArticleSet>`

func TestFetchBatchParsesRecords(t *testing.T) {
	var gotIDs string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIDs = r.URL.Query().Get("id")
		fmt.Fprint(w, sampleFetchXML)
	}))
	defer ts.Close()
	efetchBase = ts.URL

	var log bytes.Buffer
	c := testClient(ts)
	c.Log = &log

	articles, err := c.FetchBatch(context.Background(), []string{"11111", "22222", "33333"})
	if err != nil {
		t.Fatalf("FetchBatch error: %v", err)
	}
	if gotIDs != "11111,22222,33333" {
		t.Errorf("id param = %q, want comma-joined PMIDs", gotIDs)
	}

	// The titleless record is skipped, the batch survives.
	if len(articles) != 2 {
		t.Fatalf("len(articles) = %d, want 2", len(articles))
	}
	if !strings.Contains(log.String(), "skipping record") {
		t.Errorf("skipped record should be logged, got %q", log.String())
	}

	first := articles[0]
	if first.PMID != "11111" || first.Title != "Industry study" {
		t.Errorf("first article = %+v", first)
	}
	if first.PubDate != "2024-Mar-15" {
		t.Errorf("PubDate = %q, want 2024-Mar-15", first.PubDate)
	}
	if len(first.Authors) != 2 {
		t.Fatalf("len(Authors) = %d, want 2", len(first.Authors))
	}
	if first.Authors[0].Name != "Jane Smith" {
		t.Errorf("author name = %q, want %q", first.Authors[0].Name, "Jane Smith")
	}
	if !strings.HasPrefix(first.Authors[0].Affiliation, "Pfizer Inc.") {
		t.Errorf("affiliation = %q", first.Authors[0].Affiliation)
	}
	if first.CorrespondingEmail != "jane.smith@pfizer.com" {
		t.Errorf("CorrespondingEmail = %q, want trailing period stripped", first.CorrespondingEmail)
	}

	second := articles[1]
	if second.PMID != "22222" {
		t.Errorf("second PMID = %q", second.PMID)
	}
	if len(second.Authors) != 0 {
		t.Errorf("authorless record should keep an empty author list, got %v", second.Authors)
	}
	if second.PubDate != "2023 Nov-Dec" {
		t.Errorf("PubDate = %q, want MedlineDate fallback", second.PubDate)
	}
	if second.CorrespondingEmail != "" {
		t.Errorf("CorrespondingEmail = %q, want empty", second.CorrespondingEmail)
	}
}

func TestFetchBatchEmptyInput(t *testing.T) {
	c := &Client{HTTP: &http.Client{}}
	articles, err := c.FetchBatch(context.Background(), nil)
	if err != nil || articles != nil {
		t.Errorf("FetchBatch(nil) = (%v, %v), want (nil, nil)", articles, err)
	}
}

func TestFetchBatchRejectsOversizeBatch(t *testing.T) {
	ids := make([]string, MaxBatchSize+1)
	for i := range ids {
		ids[i] = fmt.Sprintf("%d", i)
	}
	c := &Client{HTTP: &http.Client{}}
	if _, err := c.FetchBatch(context.Background(), ids); err == nil {
		t.Fatal("expected error for oversize batch")
	}
}

func TestAuthorName(t *testing.T) {
	tests := []struct {
		author authorElem
		want   string
	}{
		{authorElem{LastName: "Smith", ForeName: "Jane"}, "Jane Smith"},
		{authorElem{LastName: "Smith"}, "Smith"},
		{authorElem{CollectiveName: "COVID Research Consortium"}, "COVID Research Consortium"},
		{authorElem{}, ""},
	}
	for _, tt := range tests {
		if got := authorName(tt.author); got != tt.want {
			t.Errorf("authorName(%+v) = %q, want %q", tt.author, got, tt.want)
		}
	}
}

func TestJoinDate(t *testing.T) {
	tests := []struct {
		date dateElem
		want string
	}{
		{dateElem{Year: "2024", Month: "Mar", Day: "15"}, "2024-Mar-15"},
		{dateElem{Year: "2024", Month: "Mar"}, "2024-Mar"},
		{dateElem{Year: "2024"}, "2024"},
		{dateElem{}, ""},
	}
	for _, tt := range tests {
		if got := joinDate(tt.date); got != tt.want {
			t.Errorf("joinDate(%+v) = %q, want %q", tt.date, got, tt.want)
		}
	}
}

func TestFirstEmail(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Pfizer Inc., New York. jane@pfizer.com.", "jane@pfizer.com"},
		{"two addresses a@b.org then c@d.org", "a@b.org"},
		{"no address here", ""},
	}
	for _, tt := range tests {
		if got := firstEmail(tt.text); got != tt.want {
			t.Errorf("firstEmail(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}
