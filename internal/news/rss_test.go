package news

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Yahoo! Finance: GOOGL News</title>
    <item>
      <title>Alphabet shares climb on cloud growth</title>
      <link>https://finance.yahoo.com/news/alphabet-cloud.html</link>
      <pubDate>Mon, 02 Jun 2025 14:00:00 +0000</pubDate>
    </item>
    <item>
      <title>Regulators open new inquiry</title>
      <link>https://finance.yahoo.com/news/inquiry.html</link>
      <pubDate>Mon, 02 Jun 2025 09:30:00 +0000</pubDate>
    </item>
    <item>
      <title>Analyst raises price target</title>
      <link>https://finance.yahoo.com/news/target.html</link>
      <pubDate>not a date</pubDate>
    </item>
  </channel>
</rss>`

func TestParseFeed(t *testing.T) {
	headlines, err := parseFeed([]byte(sampleFeed))
	if err != nil {
		t.Fatalf("parseFeed: %v", err)
	}
	if len(headlines) != 3 {
		t.Fatalf("expected 3 headlines, got %d", len(headlines))
	}
	first := headlines[0]
	if first.Title != "Alphabet shares climb on cloud growth" {
		t.Errorf("title: got %q", first.Title)
	}
	if first.Link != "https://finance.yahoo.com/news/alphabet-cloud.html" {
		t.Errorf("link: got %q", first.Link)
	}
	want := time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC)
	if !first.PublishedAt.Equal(want) {
		t.Errorf("published: got %v, want %v", first.PublishedAt, want)
	}
	// Unparseable dates leave the zero time rather than dropping the item.
	if !headlines[2].PublishedAt.IsZero() {
		t.Errorf("bad pubDate should yield zero time, got %v", headlines[2].PublishedAt)
	}
}

func TestParseFeed_Invalid(t *testing.T) {
	if _, err := parseFeed([]byte("not xml at all <<<")); err == nil {
		t.Error("expected decode error")
	}
}

func TestHeadlines_Limit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	c := NewClient("")
	c.HTTP = srv.Client()

	// Point the request at the test server by rewriting through its transport.
	c.HTTP.Transport = rewriteHost(srv)

	headlines, err := c.Headlines("GOOGL", 2)
	if err != nil {
		t.Fatalf("Headlines: %v", err)
	}
	if len(headlines) != 2 {
		t.Errorf("expected 2 headlines with limit, got %d", len(headlines))
	}
}

type hostRewriter struct {
	srv *httptest.Server
}

func rewriteHost(srv *httptest.Server) http.RoundTripper {
	return hostRewriter{srv: srv}
}

func (h hostRewriter) RoundTrip(req *http.Request) (*http.Response, error) {
	u := *req.URL
	u.Scheme = "http"
	u.Host = h.srv.Listener.Addr().String()
	clone := req.Clone(req.Context())
	clone.URL = &u
	return http.DefaultTransport.RoundTrip(clone)
}
