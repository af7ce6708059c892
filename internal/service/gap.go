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

const gapSystemPrompt = `You are an expert career advisor specializing in skill gap analysis and career development.

You compare a candidate's skill profile against a job description and produce an honest assessment. Do NOT inflate the match percentage to be encouraging.

Rules:
- matches: ONLY skills that appear in BOTH the candidate profile and the job description
- gaps: skills the job requires that the candidate profile does not contain
- untappedStrengths: candidate skills the job does not require but that add value
- tailoredContent: a resume summary and bullet points using ONLY facts already present in the candidate profile. NEVER invent achievements, employers, or metrics that are not in the profile.

Return ONLY a valid JSON object:
{
  "matchPercentage": <integer 0-100>,
  "matches": [{"name": "skill name", "confidence": <integer>}],
  "gaps": ["skill 1", "skill 2"],
  "untappedStrengths": ["skill 1", "skill 2"],
  "tailoredContent": {
    "summary": "2-3 sentence resume summary tailored to this job",
    "bulletPoints": ["achievement-style bullet grounded in the profile"]
  },
  "honestAssessment": "2-3 frank sentences on fit and what to do next"
}`

// GapAnalyzer 技能档案与职位描述的差距分析
type GapAnalyzer struct {
	gateway *fetcher.GatewayClient
}

// NewGapAnalyzer 创建差距分析器
func NewGapAnalyzer(gateway *fetcher.GatewayClient) *GapAnalyzer {
	return &GapAnalyzer{gateway: gateway}
}

// Analyze 对比档案与职位描述，结果不持久化
func (a *GapAnalyzer) Analyze(ctx context.Context, profile *model.SkillProfile, jobDescription string) (*model.GapAnalysis, error) {
	if profile == nil || len(profile.Categories) == 0 {
		return nil, errs.New(errs.MissingProfile, "no skill profile available, generate one first")
	}
	if strings.TrimSpace(jobDescription) == "" {
		return nil, errs.New(errs.EmptyInput, "job description is required")
	}

	skills := profile.FlattenSkills()
	skillLines := make([]map[string]interface{}, 0, len(skills))
	for _, s := range skills {
		skillLines = append(skillLines, map[string]interface{}{
			"name":       s.Name,
			"confidence": s.Confidence,
		})
	}
	skillsJSON, _ := json.MarshalIndent(skillLines, "", "  ")

	userPrompt := fmt.Sprintf(`Compare the candidate's skills against this job description.

CANDIDATE SKILLS:
%s

JOB DESCRIPTION:
%s

Provide the gap analysis JSON.`, string(skillsJSON), jobDescription)

	log.Printf("[Gap] Analyzing %d skills against job description (%d chars)", len(skills), len(jobDescription))

	response, err := a.gateway.ChatJSON(ctx, gapSystemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}

	jsonStr := fetcher.ExtractJSON(response)

	var result model.GapAnalysis
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil, errs.Wrap(errs.MalformedResponse, fmt.Errorf("LLM returned invalid JSON: %w", err))
	}

	if result.MatchPercentage < 0 {
		result.MatchPercentage = 0
	}
	if result.MatchPercentage > 100 {
		result.MatchPercentage = 100
	}

	log.Printf("[Gap] Match %d%%, %d matches, %d gaps", result.MatchPercentage, len(result.Matches), len(result.Gaps))
	return &result, nil
}
