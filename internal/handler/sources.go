package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"skillsense-go/internal/errs"
	"skillsense-go/internal/service"
)

// SourcesHandler 外部数据源采集HTTP处理器
type SourcesHandler struct {
	github   *service.GitHubService
	linkedin *service.LinkedInService
}

// NewSourcesHandler 创建处理器
func NewSourcesHandler(github *service.GitHubService, linkedin *service.LinkedInService) *SourcesHandler {
	return &SourcesHandler{github: github, linkedin: linkedin}
}

// FetchGitHub 拉取GitHub档案快照
// POST /api/fetch-github
// Body: {"github_url": "https://github.com/xxx"}
func (h *SourcesHandler) FetchGitHub(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GithubURL string `json:"github_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errs.New(errs.InvalidInput, "invalid request body"))
		return
	}

	snapshot, err := h.github.Fetch(r.Context(), req.GithubURL)
	if err != nil {
		log.Printf("[GitHub] fetch failed for %s: %v", req.GithubURL, err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snapshot)
}

// ScrapeLinkedIn 抓取LinkedIn公开资料快照
// POST /api/scrape-linkedin
// Body: {"linkedin_url": "https://linkedin.com/in/xxx"}
func (h *SourcesHandler) ScrapeLinkedIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LinkedinURL string `json:"linkedin_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errs.New(errs.InvalidInput, "invalid request body"))
		return
	}

	snapshot, err := h.linkedin.Scrape(r.Context(), req.LinkedinURL)
	if err != nil {
		log.Printf("[LinkedIn] scrape failed for %s: %v", req.LinkedinURL, err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snapshot)
}
