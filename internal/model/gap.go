package model

// SkillMatch 职位要求与候选人技能的匹配项
type SkillMatch struct {
	Name       string `json:"name"`
	Confidence int    `json:"confidence,omitempty"`
	Evidence   string `json:"evidence,omitempty"`
}

// TailoredContent 基于已有事实生成的简历内容
type TailoredContent struct {
	Summary      string   `json:"summary"`
	BulletPoints []string `json:"bulletPoints"`
}

// GapAnalysis 技能差距分析结果，每次调用重新生成，不持久化
type GapAnalysis struct {
	MatchPercentage   int              `json:"matchPercentage"` // 0-100
	Matches           []SkillMatch     `json:"matches"`
	Gaps              []string         `json:"gaps"`
	UntappedStrengths []string         `json:"untappedStrengths"`
	TailoredContent   *TailoredContent `json:"tailoredContent,omitempty"`
	Recommendations   string           `json:"recommendations,omitempty"`
	HonestAssessment  string           `json:"honestAssessment,omitempty"`
}
