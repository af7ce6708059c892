package model

// GitHubProfile GitHub用户基础信息
type GitHubProfile struct {
	Username    string `json:"username"`
	Name        string `json:"name"`
	Bio         string `json:"bio"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	PublicRepos int    `json:"publicRepos"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
	CreatedAt   string `json:"createdAt"`
}

// LanguageCount 语言直方图条目
type LanguageCount struct {
	Language  string `json:"language"`
	RepoCount int    `json:"repoCount"`
}

// TopicCount 话题直方图条目
type TopicCount struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

// GitHubStatistics 从仓库列表确定性聚合的统计
type GitHubStatistics struct {
	TotalRepositories int             `json:"totalRepositories"`
	TotalStars        int             `json:"totalStars"`
	TotalForks        int             `json:"totalForks"`
	TopLanguages      []LanguageCount `json:"topLanguages"`
	TopTopics         []TopicCount    `json:"topTopics"`
}

// NotableRepo 非fork仓库按star数取前几
type NotableRepo struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Language    string   `json:"language"`
	Stars       int      `json:"stars"`
	Forks       int      `json:"forks"`
	URL         string   `json:"url"`
	Topics      []string `json:"topics"`
}

// GitHubSnapshot GitHub档案的即时快照，不单独持久化
type GitHubSnapshot struct {
	Profile      GitHubProfile    `json:"profile"`
	Statistics   GitHubStatistics `json:"statistics"`
	NotableRepos []NotableRepo    `json:"notableRepos"`
}

// LinkedInSnapshot LinkedIn档案的尽力而为提取结果，缺失的部分为空
type LinkedInSnapshot struct {
	Headline   string   `json:"headline,omitempty"`
	About      string   `json:"about,omitempty"`
	Experience []string `json:"experience"`
	Skills     []string `json:"skills"`
	Education  []string `json:"education"`
}

// IsEmpty 所有字段均为空时返回true
func (s *LinkedInSnapshot) IsEmpty() bool {
	if s == nil {
		return true
	}
	return s.Headline == "" && s.About == "" &&
		len(s.Experience) == 0 && len(s.Skills) == 0 && len(s.Education) == 0
}
