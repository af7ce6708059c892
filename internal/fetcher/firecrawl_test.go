package fetcher

import (
	"context"
	"testing"

	"skillsense-go/internal/errs"
)

func TestFirecrawlHasKey(t *testing.T) {
	if fetcher := NewFirecrawlFetcher(""); fetcher.HasKey() {
		t.Error("HasKey() = true for empty key")
	}
	if fetcher := NewFirecrawlFetcher("fc-key"); !fetcher.HasKey() {
		t.Error("HasKey() = false for configured key")
	}
}

func TestFirecrawlScrapeWithoutKey(t *testing.T) {
	fetcher := NewFirecrawlFetcher("")

	_, err := fetcher.Scrape(context.Background(), "https://example.com")
	if !errs.Is(err, errs.ConfigError) {
		t.Errorf("error kind = %v, want ConfigError", errs.KindOf(err))
	}
}
