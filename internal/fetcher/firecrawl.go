package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"skillsense-go/internal/errs"
)

const firecrawlScrapeURL = "https://api.firecrawl.dev/v1/scrape"

// FirecrawlFetcher Firecrawl网页抓取器
type FirecrawlFetcher struct {
	apiKey     string
	scrapeURL  string
	httpClient *http.Client
}

// NewFirecrawlFetcher 创建Firecrawl获取器
func NewFirecrawlFetcher(apiKey string) *FirecrawlFetcher {
	return &FirecrawlFetcher{
		apiKey:    apiKey,
		scrapeURL: firecrawlScrapeURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// NewFirecrawlFetcherWithURL 指定抓取端点创建获取器（测试用）
func NewFirecrawlFetcherWithURL(apiKey, scrapeURL string) *FirecrawlFetcher {
	f := NewFirecrawlFetcher(apiKey)
	f.scrapeURL = scrapeURL
	return f
}

// HasKey 是否配置了凭证
func (f *FirecrawlFetcher) HasKey() bool {
	return f.apiKey != ""
}

type firecrawlRequest struct {
	URL             string   `json:"url"`
	Formats         []string `json:"formats"`
	OnlyMainContent bool     `json:"onlyMainContent,omitempty"`
}

type firecrawlResponse struct {
	Success bool `json:"success"`
	Data    struct {
		HTML     string `json:"html"`
		Markdown string `json:"markdown"`
	} `json:"data"`
	Error string `json:"error,omitempty"`
}

// ScrapedPage 抓取结果
type ScrapedPage struct {
	Markdown string
	HTML     string
}

// Scrape 抓取目标URL，返回markdown和HTML
func (f *FirecrawlFetcher) Scrape(ctx context.Context, targetURL string) (*ScrapedPage, error) {
	if f.apiKey == "" {
		return nil, errs.New(errs.ConfigError, "FIRECRAWL_API_KEY is not configured")
	}

	reqBody := firecrawlRequest{
		URL:             targetURL,
		Formats:         []string{"markdown", "html"},
		OnlyMainContent: true,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.scrapeURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+f.apiKey)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, errs.Wrap(errs.UpstreamError, fmt.Errorf("failed to scrape page: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errs.New(errs.UpstreamError, "firecrawl returned status %d: %s", resp.StatusCode, string(body))
	}

	var fcResp firecrawlResponse
	if err := json.Unmarshal(body, &fcResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if !fcResp.Success {
		return nil, errs.New(errs.UpstreamError, "firecrawl error: %s", fcResp.Error)
	}

	return &ScrapedPage{
		Markdown: fcResp.Data.Markdown,
		HTML:     fcResp.Data.HTML,
	}, nil
}
