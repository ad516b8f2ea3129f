// Package news fetches recent headlines for a ticker from the Yahoo
// Finance RSS feed.
package news

import (
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Headline is a single news item from the feed.
type Headline struct {
	Title       string
	Link        string
	PublishedAt time.Time
}

// Client fetches headline feeds.
type Client struct {
	HTTP *http.Client
}

// NewClient creates a news client, optionally routed through a proxy.
func NewClient(proxyURL string) *Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &Client{
		HTTP: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

type rssFeed struct {
	Channel struct {
		Items []struct {
			Title   string `xml:"title"`
			Link    string `xml:"link"`
			PubDate string `xml:"pubDate"`
		} `xml:"item"`
	} `xml:"channel"`
}

// Headlines returns up to limit recent headlines for the symbol,
// newest first as the feed orders them.
func (c *Client) Headlines(symbol string, limit int) ([]Headline, error) {
	u := fmt.Sprintf("https://feeds.finance.yahoo.com/rss/2.0/headline?s=%s&region=US&lang=en-US",
		url.QueryEscape(symbol))

	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("news read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news: status %d", resp.StatusCode)
	}

	items, err := parseFeed(body)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func parseFeed(body []byte) ([]Headline, error) {
	var feed rssFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("news decode: %w", err)
	}

	headlines := make([]Headline, 0, len(feed.Channel.Items))
	for _, item := range feed.Channel.Items {
		h := Headline{Title: item.Title, Link: item.Link}
		if t, err := time.Parse(time.RFC1123Z, item.PubDate); err == nil {
			h.PublishedAt = t
		} else if t, err := time.Parse(time.RFC1123, item.PubDate); err == nil {
			h.PublishedAt = t
		}
		headlines = append(headlines, h)
	}
	return headlines, nil
}
