package service

import (
	"context"
	"log"

	"skillsense-go/internal/errs"
	"skillsense-go/internal/model"
	"skillsense-go/internal/sse"
	"skillsense-go/internal/store"
)

// AnalyzeRequest 综合分析请求
type AnalyzeRequest struct {
	UserID             string `json:"user_id"`
	CVText             string `json:"cv_text"`
	GithubURL          string `json:"github_url"`
	LinkedinURL        string `json:"linkedin_url"`
	BlogPosts          string `json:"blog_posts"`
	Publications       string `json:"publications"`
	PerformanceReviews string `json:"performance_reviews"`
	Goals              string `json:"goals"`
	ReferenceLetters   string `json:"reference_letters"`
}

// Analyzer 综合分析服务：采集数据源、提取技能、生成时间线并落库
type Analyzer struct {
	github    *GitHubService
	linkedin  *LinkedInService
	extractor *SkillExtractor
	store     store.ProfileStore
}

// NewAnalyzer 创建综合分析服务
func NewAnalyzer(github *GitHubService, linkedin *LinkedInService, extractor *SkillExtractor, st store.ProfileStore) *Analyzer {
	return &Analyzer{
		github:    github,
		linkedin:  linkedin,
		extractor: extractor,
		store:     st,
	}
}

// CollectSources 采集各数据源
// GitHub和LinkedIn是可选源：失败时记录警告并跳过，分析继续
func (a *Analyzer) CollectSources(ctx context.Context, req AnalyzeRequest, w *sse.Writer) Sources {
	sources := Sources{
		CVText:             req.CVText,
		BlogPosts:          req.BlogPosts,
		Publications:       req.Publications,
		PerformanceReviews: req.PerformanceReviews,
		Goals:              req.Goals,
		ReferenceLetters:   req.ReferenceLetters,
	}

	if req.GithubURL != "" {
		if w != nil {
			w.SourcePending("github")
			w.SetAction(20, "Fetching GitHub profile")
		}
		snapshot, err := a.github.Fetch(ctx, req.GithubURL)
		if err != nil {
			log.Printf("[Analyzer] GitHub fetch failed, continuing without this source: %v", err)
			if w != nil {
				w.SourceSkipped("github", err.Error())
			}
		} else {
			sources.GitHub = snapshot
			if w != nil {
				w.SourceDone("github")
			}
		}
	}

	if req.LinkedinURL != "" {
		if w != nil {
			w.SourcePending("linkedin")
			w.SetAction(40, "Scraping LinkedIn profile")
		}
		snapshot, err := a.linkedin.Scrape(ctx, req.LinkedinURL)
		if err != nil {
			log.Printf("[Analyzer] LinkedIn scrape failed, continuing without this source: %v", err)
			if w != nil {
				w.SourceSkipped("linkedin", err.Error())
			}
		} else {
			sources.LinkedIn = snapshot
			if w != nil {
				w.SourceDone("linkedin")
			}
		}
	}

	return sources
}

// Analyze 执行完整分析流程并返回档案
// 技能提取失败时不保存任何部分结果
func (a *Analyzer) Analyze(ctx context.Context, req AnalyzeRequest, w *sse.Writer) (*model.SkillProfile, error) {
	sources := a.CollectSources(ctx, req, w)
	if sources.IsEmpty() {
		return nil, errs.New(errs.InvalidInput, "no data sources provided")
	}

	if w != nil {
		w.SetAction(60, "Extracting skills")
	}
	profile, err := a.extractor.Extract(ctx, &sources)
	if err != nil {
		return nil, err
	}

	if w != nil {
		w.SetAction(85, "Generating skill timeline")
	}
	entries := GenerateTimeline(profile, req.UserID)

	if w != nil {
		w.SetAction(92, "Saving profile")
	}
	id, err := a.store.SaveProfile(ctx, req.UserID, profile)
	if err != nil {
		return nil, errs.Wrap(errs.UpstreamError, err)
	}
	profile.ID = id

	if err := a.store.ReplaceTimeline(ctx, req.UserID, entries); err != nil {
		return nil, errs.Wrap(errs.UpstreamError, err)
	}

	log.Printf("[Analyzer] analysis completed for user %s: %d skills", req.UserID, profile.SkillCount())
	return profile, nil
}

// AnalyzeWithSSE 通过SSE流式推送进度的分析入口
func (a *Analyzer) AnalyzeWithSSE(ctx context.Context, req AnalyzeRequest, w *sse.Writer) error {
	defer w.StopHeartbeat()

	if err := w.SetAction(5, "Starting analysis"); err != nil {
		return err
	}

	profile, err := a.Analyze(ctx, req, w)
	if err != nil {
		log.Printf("[Analyzer] analysis failed: %v", err)
		return w.SendGlobalError(err.Error())
	}

	return w.SendProfile(profile)
}
