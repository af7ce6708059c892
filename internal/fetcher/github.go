package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"skillsense-go/internal/errs"
)

const (
	githubAPIBase   = "https://api.github.com"
	githubUserAgent = "SkillSense-App"
)

// GitHubClient GitHub REST API客户端
type GitHubClient struct {
	token      string
	baseURL    string
	httpClient *http.Client
}

// NewGitHubClient 创建GitHub客户端，token可为空（使用公开配额）
func NewGitHubClient(token string) *GitHubClient {
	return &GitHubClient{
		token:   token,
		baseURL: githubAPIBase,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewGitHubClientWithBaseURL 指定API地址创建客户端（测试用）
func NewGitHubClientWithBaseURL(token, baseURL string) *GitHubClient {
	c := NewGitHubClient(token)
	c.baseURL = baseURL
	return c
}

// GitHubUser 用户档案（REST返回）
type GitHubUser struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	Bio         string `json:"bio"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	CreatedAt   string `json:"created_at"`
}

// GitHubRepo 仓库信息（REST返回）
type GitHubRepo struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Language        string   `json:"language"`
	StargazersCount int      `json:"stargazers_count"`
	ForksCount      int      `json:"forks_count"`
	Topics          []string `json:"topics"`
	Fork            bool     `json:"fork"`
	HTMLURL         string   `json:"html_url"`
}

func (c *GitHubClient) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", githubUserAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errs.Wrap(errs.UpstreamError, fmt.Errorf("github request failed: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return errs.New(errs.UpstreamError, "github API returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode github response: %w", err)
	}
	return nil
}

// FetchUser 获取用户档案
func (c *GitHubClient) FetchUser(ctx context.Context, username string) (*GitHubUser, error) {
	var user GitHubUser
	if err := c.get(ctx, "/users/"+username, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FetchRepos 获取用户仓库列表，按更新时间排序，最多100个
func (c *GitHubClient) FetchRepos(ctx context.Context, username string) ([]GitHubRepo, error) {
	var repos []GitHubRepo
	path := fmt.Sprintf("/users/%s/repos?sort=updated&per_page=100", username)
	if err := c.get(ctx, path, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}
