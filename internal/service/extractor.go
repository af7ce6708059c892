package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"skillsense-go/internal/errs"
	"skillsense-go/internal/fetcher"
	"skillsense-go/internal/model"
)

// Sources 可用的数据源集合，缺失的源直接跳过
type Sources struct {
	CVText             string
	GitHub             *model.GitHubSnapshot
	LinkedIn           *model.LinkedInSnapshot
	BlogPosts          string
	Publications       string
	PerformanceReviews string
	Goals              string
	ReferenceLetters   string
}

// Names 已提供的数据源名称列表
func (s *Sources) Names() []string {
	var names []string
	if strings.TrimSpace(s.CVText) != "" {
		names = append(names, "cv")
	}
	if s.GitHub != nil {
		names = append(names, "github")
	}
	if s.LinkedIn != nil && !s.LinkedIn.IsEmpty() {
		names = append(names, "linkedin")
	}
	if strings.TrimSpace(s.BlogPosts) != "" {
		names = append(names, "blog")
	}
	if strings.TrimSpace(s.Publications) != "" {
		names = append(names, "publications")
	}
	if strings.TrimSpace(s.PerformanceReviews) != "" {
		names = append(names, "reviews")
	}
	if strings.TrimSpace(s.Goals) != "" {
		names = append(names, "goals")
	}
	if strings.TrimSpace(s.ReferenceLetters) != "" {
		names = append(names, "references")
	}
	return names
}

// IsEmpty 没有任何数据源
func (s *Sources) IsEmpty() bool {
	return len(s.Names()) == 0
}

const extractSystemPrompt = `You are an expert career analyst and skill assessment specialist with deep knowledge in technical competencies, professional development, and talent evaluation.

Your task is to perform a comprehensive skill analysis by examining the provided professional data sources and create a structured skill profile.

ANALYSIS OBJECTIVES:

1. Extract ALL skills, both explicit and implicit:
   - Explicit: directly mentioned skills (e.g., "Python", "Project Management")
   - Implicit: inferred from context (e.g., leading a team -> Leadership, debugging complex systems -> Problem-solving)

2. Cite evidence for EVERY skill: each skill must quote which source text supports it, prefixed with the source name (e.g., "From GitHub: 20+ repositories using Python").

3. Calibrate confidence by corroboration: a skill mentioned in a single source scores lower than a skill corroborated across multiple sources. Use 95-100 only when three or more independent sources agree.

4. Categorize skills into:
   - Technical Skills: programming languages, frameworks, tools, databases, DevOps
   - Domain Expertise: industry-specific knowledge, business domains
   - Soft Skills: communication, leadership, teamwork, problem-solving
   - Professional Skills: project management, agile, documentation, mentoring

5. Where applicable, map skills to the SFIA framework (sfia_category label and sfia_level 1-7).

Return ONLY a valid JSON object with this exact structure:
{
  "summary": "3-4 sentence professional summary based on all analyzed data",
  "categories": {
    "Technical Skills": [
      {
        "name": "Python",
        "confidence": 92,
        "type": "explicit",
        "evidence": ["From CV: ...", "From GitHub: ..."],
        "sfia_category": "Programming/software development",
        "sfia_level": 5
      }
    ],
    "Domain Expertise": [...],
    "Soft Skills": [...],
    "Professional Skills": [...]
  }
}

Field rules:
- confidence: integer 0-100 reflecting evidence strength
- type: "explicit" or "implicit"
- evidence: array of source-attributed quotes, never empty
- sfia_category/sfia_level: optional, include only when a reasonable mapping exists
- Be realistic about proficiency. Do not invent skills without evidence.`

// SkillExtractor 拼装多源上下文并调用LLM提取技能档案
type SkillExtractor struct {
	gateway *fetcher.GatewayClient
}

// NewSkillExtractor 创建技能提取器
func NewSkillExtractor(gateway *fetcher.GatewayClient) *SkillExtractor {
	return &SkillExtractor{gateway: gateway}
}

// Extract 执行一次技能提取，除网络调用外无副作用
func (e *SkillExtractor) Extract(ctx context.Context, sources *Sources) (*model.SkillProfile, error) {
	if sources == nil || sources.IsEmpty() {
		return nil, errs.New(errs.InvalidInput, "at least one data source is required")
	}

	userPrompt := fmt.Sprintf(`Perform a comprehensive skill analysis on the following professional data and generate a structured skill profile.

%s

Return a JSON object with "summary" and "categories" keys following the schema in the system instructions.`, BuildContext(sources))

	log.Printf("[Extractor] Extracting skills from sources: %v", sources.Names())

	response, err := e.gateway.ChatJSON(ctx, extractSystemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}

	jsonStr := fetcher.ExtractJSON(response)

	var profile model.SkillProfile
	if err := json.Unmarshal([]byte(jsonStr), &profile); err != nil {
		return nil, errs.Wrap(errs.MalformedResponse, fmt.Errorf("LLM returned invalid JSON: %w", err))
	}
	if profile.Summary == "" || profile.Categories == nil {
		return nil, errs.New(errs.MalformedResponse, "LLM response missing summary or categories")
	}

	profile.DataSources = sources.Names()

	log.Printf("[Extractor] Extracted %d skills in %d categories", profile.SkillCount(), len(profile.Categories))
	return &profile, nil
}

// BuildContext 把所有存在的数据源拼成带标题的上下文块，缺失的源完全跳过
func BuildContext(sources *Sources) string {
	var b strings.Builder
	b.WriteString("=== PROFESSIONAL DATA SOURCES ===\n\n")

	if text := strings.TrimSpace(sources.CVText); text != "" {
		writeSection(&b, "CV/RESUME", text)
	}
	if sources.GitHub != nil {
		data, _ := json.MarshalIndent(sources.GitHub, "", "  ")
		writeSection(&b, "GITHUB PROFILE", string(data))
	}
	if sources.LinkedIn != nil && !sources.LinkedIn.IsEmpty() {
		data, _ := json.MarshalIndent(sources.LinkedIn, "", "  ")
		writeSection(&b, "LINKEDIN PROFILE", string(data))
	}
	if text := strings.TrimSpace(sources.BlogPosts); text != "" {
		writeSection(&b, "BLOG POSTS", text)
	}
	if text := strings.TrimSpace(sources.Publications); text != "" {
		writeSection(&b, "PUBLICATIONS", text)
	}
	if text := strings.TrimSpace(sources.PerformanceReviews); text != "" {
		writeSection(&b, "PERFORMANCE REVIEWS", text)
	}
	if text := strings.TrimSpace(sources.Goals); text != "" {
		writeSection(&b, "CAREER GOALS", text)
	}
	if text := strings.TrimSpace(sources.ReferenceLetters); text != "" {
		writeSection(&b, "REFERENCE LETTERS", text)
	}

	return b.String()
}

func writeSection(b *strings.Builder, label, content string) {
	fmt.Fprintf(b, "=== %s ===\n%s\n\n", label, content)
}
