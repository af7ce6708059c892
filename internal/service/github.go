package service

import (
	"context"
	"log"
	"regexp"
	"sort"
	"strings"

	"skillsense-go/internal/errs"
	"skillsense-go/internal/fetcher"
	"skillsense-go/internal/model"
)

// GitHubService 获取并聚合GitHub档案数据
type GitHubService struct {
	client *fetcher.GitHubClient
}

// NewGitHubService 创建GitHub服务
func NewGitHubService(client *fetcher.GitHubClient) *GitHubService {
	return &GitHubService{client: client}
}

var (
	githubPathRe = regexp.MustCompile(`(?i)github\.com/([^/?#]+)`)
	usernameRe   = regexp.MustCompile(`^[a-zA-Z0-9](?:[a-zA-Z0-9-]*[a-zA-Z0-9])?$`)
)

// ExtractUsername 从profile URL或裸用户名中提取GitHub用户名
func ExtractUsername(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", errs.New(errs.InvalidInput, "github URL is required")
	}

	if m := githubPathRe.FindStringSubmatch(input); len(m) > 1 {
		return m[1], nil
	}
	if usernameRe.MatchString(input) {
		return input, nil
	}

	return "", errs.New(errs.InvalidInput, "invalid github URL format: %s", input)
}

// Fetch 获取用户档案和仓库并聚合为快照
func (s *GitHubService) Fetch(ctx context.Context, githubURL string) (*model.GitHubSnapshot, error) {
	username, err := ExtractUsername(githubURL)
	if err != nil {
		return nil, err
	}

	log.Printf("[GitHub] Fetching data for user: %s", username)

	user, err := s.client.FetchUser(ctx, username)
	if err != nil {
		return nil, err
	}

	repos, err := s.client.FetchRepos(ctx, username)
	if err != nil {
		return nil, err
	}

	snapshot := &model.GitHubSnapshot{
		Profile: model.GitHubProfile{
			Username:    user.Login,
			Name:        user.Name,
			Bio:         user.Bio,
			Company:     user.Company,
			Location:    user.Location,
			PublicRepos: user.PublicRepos,
			Followers:   user.Followers,
			Following:   user.Following,
			CreatedAt:   user.CreatedAt,
		},
		Statistics:   aggregateStatistics(repos),
		NotableRepos: notableRepos(repos),
	}

	log.Printf("[GitHub] Fetched %d repos for %s", len(repos), username)
	return snapshot, nil
}

// aggregateStatistics 对仓库列表做确定性聚合
func aggregateStatistics(repos []fetcher.GitHubRepo) model.GitHubStatistics {
	stats := model.GitHubStatistics{TotalRepositories: len(repos)}

	languageCounts := make(map[string]int)
	topicCounts := make(map[string]int)
	var languageOrder, topicOrder []string

	for _, repo := range repos {
		if repo.Language != "" {
			if languageCounts[repo.Language] == 0 {
				languageOrder = append(languageOrder, repo.Language)
			}
			languageCounts[repo.Language]++
		}
		for _, topic := range repo.Topics {
			if topicCounts[topic] == 0 {
				topicOrder = append(topicOrder, topic)
			}
			topicCounts[topic]++
		}

		// fork也计入star/fork总数
		stats.TotalStars += repo.StargazersCount
		stats.TotalForks += repo.ForksCount
	}

	// 按出现次数降序，相同次数保持首次出现顺序
	sort.SliceStable(languageOrder, func(i, j int) bool {
		return languageCounts[languageOrder[i]] > languageCounts[languageOrder[j]]
	})
	sort.SliceStable(topicOrder, func(i, j int) bool {
		return topicCounts[topicOrder[i]] > topicCounts[topicOrder[j]]
	})

	for i, lang := range languageOrder {
		if i >= 10 {
			break
		}
		stats.TopLanguages = append(stats.TopLanguages, model.LanguageCount{
			Language:  lang,
			RepoCount: languageCounts[lang],
		})
	}
	for i, topic := range topicOrder {
		if i >= 10 {
			break
		}
		stats.TopTopics = append(stats.TopTopics, model.TopicCount{
			Topic: topic,
			Count: topicCounts[topic],
		})
	}

	return stats
}

// notableRepos 非fork仓库按star数降序取前5
func notableRepos(repos []fetcher.GitHubRepo) []model.NotableRepo {
	var nonForks []fetcher.GitHubRepo
	for _, repo := range repos {
		if !repo.Fork {
			nonForks = append(nonForks, repo)
		}
	}

	sort.SliceStable(nonForks, func(i, j int) bool {
		return nonForks[i].StargazersCount > nonForks[j].StargazersCount
	})

	notable := make([]model.NotableRepo, 0, 5)
	for i, repo := range nonForks {
		if i >= 5 {
			break
		}
		topics := repo.Topics
		if topics == nil {
			topics = []string{}
		}
		notable = append(notable, model.NotableRepo{
			Name:        repo.Name,
			Description: repo.Description,
			Language:    repo.Language,
			Stars:       repo.StargazersCount,
			Forks:       repo.ForksCount,
			URL:         repo.HTMLURL,
			Topics:      topics,
		})
	}
	return notable
}
