package model

// Milestone 技能时间线上的一个里程碑
type Milestone struct {
	Date        string `json:"date"` // YYYY-MM-DD
	Source      string `json:"source"`
	Description string `json:"description"`
}

// TimelineEntry 每项技能一条的时间线记录
type TimelineEntry struct {
	UserID            string      `json:"user_id"`
	SkillName         string      `json:"skill_name"`
	Category          string      `json:"category"`
	FirstObservedDate string      `json:"first_observed_date"` // YYYY-MM-DD
	LastObservedDate  string      `json:"last_observed_date"`  // YYYY-MM-DD
	Milestones        []Milestone `json:"milestones,omitempty"`
}
