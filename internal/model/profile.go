package model

// SkillType 技能提取方式
type SkillType string

const (
	SkillExplicit SkillType = "explicit" // 简历中直接提到
	SkillImplicit SkillType = "implicit" // 从上下文推断
)

// Skill 单项技能及其证据
type Skill struct {
	Name         string    `json:"name"`
	Confidence   int       `json:"confidence"` // 0-100
	Type         SkillType `json:"type"`
	Evidence     []string  `json:"evidence"`
	Category     string    `json:"category,omitempty"`
	SfiaCategory string    `json:"sfia_category,omitempty"`
	SfiaLevel    int       `json:"sfia_level,omitempty"` // 1-7
}

// FrameworkMapping SFIA等外部框架映射（仅作展示标签）
type FrameworkMapping struct {
	Skill     string `json:"skill"`
	Framework string `json:"framework"`
	Category  string `json:"category"`
	Level     int    `json:"level,omitempty"`
}

// SkillProfile 技能档案，由一次提取调用整体生成
type SkillProfile struct {
	ID               string             `json:"id,omitempty"`
	Summary          string             `json:"summary"`
	Categories       map[string][]Skill `json:"categories"`
	DataSources      []string           `json:"dataSources,omitempty"`
	FrameworkMapping []FrameworkMapping `json:"framework_mapping,omitempty"`
}

// FlattenSkills 按类别展开为扁平技能列表，并回填Category字段
func (p *SkillProfile) FlattenSkills() []Skill {
	if p == nil {
		return nil
	}
	var skills []Skill
	for category, list := range p.Categories {
		for _, s := range list {
			s.Category = category
			skills = append(skills, s)
		}
	}
	return skills
}

// SkillCount 技能总数
func (p *SkillProfile) SkillCount() int {
	if p == nil {
		return 0
	}
	count := 0
	for _, list := range p.Categories {
		count += len(list)
	}
	return count
}

// ValidationStatus 技能确认状态
type ValidationStatus string

const (
	ValidationConfirmed ValidationStatus = "confirmed"
	ValidationRejected  ValidationStatus = "rejected"
	ValidationEdited    ValidationStatus = "edited"
)

// ValidatedSkill 一次用户确认动作的记录，只追加不修改
type ValidatedSkill struct {
	ID                 string           `json:"id,omitempty"`
	UserID             string           `json:"user_id"`
	SkillName          string           `json:"skill_name"`
	Category           string           `json:"category"`
	Status             ValidationStatus `json:"status"`
	OriginalConfidence int              `json:"original_confidence"`
	EditedConfidence   *int             `json:"edited_confidence,omitempty"`
	OriginalEvidence   []string         `json:"original_evidence,omitempty"`
	EditedEvidence     []string         `json:"edited_evidence,omitempty"`
	UserFeedback       string           `json:"user_feedback,omitempty"`
}
