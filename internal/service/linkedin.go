package service

import (
	"context"
	"log"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"skillsense-go/internal/errs"
	"skillsense-go/internal/fetcher"
	"skillsense-go/internal/model"
)

// 每个section保留的最大条目数
const (
	maxExperienceItems = 10
	maxSkillItems      = 20
	maxEducationItems  = 5
)

// LinkedInService 通过Firecrawl抓取并启发式解析LinkedIn档案
type LinkedInService struct {
	firecrawl *fetcher.FirecrawlFetcher
}

// NewLinkedInService 创建LinkedIn服务
func NewLinkedInService(firecrawl *fetcher.FirecrawlFetcher) *LinkedInService {
	return &LinkedInService{firecrawl: firecrawl}
}

// Scrape 抓取LinkedIn档案并提取结构化快照
// 尽力而为：缺失的section返回空数组，不报错
func (s *LinkedInService) Scrape(ctx context.Context, linkedinURL string) (*model.LinkedInSnapshot, error) {
	linkedinURL = strings.TrimSpace(linkedinURL)
	if linkedinURL == "" {
		return nil, errs.New(errs.InvalidInput, "linkedin URL is required")
	}

	log.Printf("[LinkedIn] Scraping profile: %s", linkedinURL)

	page, err := s.firecrawl.Scrape(ctx, linkedinURL)
	if err != nil {
		return nil, err
	}

	snapshot := ParseLinkedInContent(page.Markdown, page.HTML)
	log.Printf("[LinkedIn] Extracted %d experience, %d skills, %d education items",
		len(snapshot.Experience), len(snapshot.Skills), len(snapshot.Education))

	return snapshot, nil
}

var headingRe = regexp.MustCompile(`(?m)^#{1,2}\s*(.+)$`)

// ParseLinkedInContent 从抓取到的markdown/HTML中启发式提取档案数据
func ParseLinkedInContent(markdown, html string) *model.LinkedInSnapshot {
	snapshot := &model.LinkedInSnapshot{
		Experience: []string{},
		Skills:     []string{},
		Education:  []string{},
	}

	// 标题：第一个markdown heading，markdown里没有时从HTML的h1取
	if m := headingRe.FindStringSubmatch(markdown); len(m) > 1 {
		snapshot.Headline = strings.TrimSpace(m[1])
	} else if html != "" {
		snapshot.Headline = headlineFromHTML(html)
	}

	if about := extractSection(markdown, []string{"About", "Summary"}); about != "" {
		snapshot.About = about
	}

	if experience := extractSection(markdown, []string{"Experience", "Work Experience"}); experience != "" {
		snapshot.Experience = splitBlocks(experience, maxExperienceItems)
	}

	if skills := extractSection(markdown, []string{"Skills", "Skills & Endorsements"}); skills != "" {
		snapshot.Skills = splitItems(skills, maxSkillItems)
	}

	if education := extractSection(markdown, []string{"Education"}); education != "" {
		snapshot.Education = splitBlocks(education, maxEducationItems)
	}

	return snapshot
}

// extractSection 找到匹配标题的section，截取到下一个同级或更高级标题为止
func extractSection(content string, titles []string) string {
	for _, title := range titles {
		re := regexp.MustCompile(`(?is)#{1,3}\s*` + regexp.QuoteMeta(title) + `\s*\n([\s\S]*?)(?:\n#{1,3}\s|\z)`)
		if m := re.FindStringSubmatch(content); len(m) > 1 {
			if section := strings.TrimSpace(m[1]); section != "" {
				return section
			}
		}
	}
	return ""
}

var blockSplitRe = regexp.MustCompile(`\n\s*\n`)

// splitBlocks 按空行分割成条目
func splitBlocks(section string, max int) []string {
	blocks := blockSplitRe.Split(section, -1)
	items := make([]string, 0, max)
	for _, block := range blocks {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		items = append(items, block)
		if len(items) >= max {
			break
		}
	}
	return items
}

// bullet前缀的分支要在裸换行之前，否则"\n- "只消费掉换行
var itemSplitRe = regexp.MustCompile(`(?:^|\s)[-*]\s|[•\n]`)

// splitItems 按bullet或换行分割成短条目
func splitItems(section string, max int) []string {
	parts := itemSplitRe.Split(section, -1)
	items := make([]string, 0, max)
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		items = append(items, part)
		if len(items) >= max {
			break
		}
	}
	return items
}

// headlineFromHTML 从HTML中提取h1作为标题兜底
func headlineFromHTML(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}
