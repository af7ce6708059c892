package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"skillsense-go/internal/errs"
	"skillsense-go/internal/fetcher"
)

func TestExtractUsername(t *testing.T) {
	testCases := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"https://github.com/octocat", "octocat", false},
		{"https://github.com/octocat/", "octocat", false},
		{"https://github.com/octocat?tab=repositories", "octocat", false},
		{"http://GitHub.com/Octo-Cat", "Octo-Cat", false},
		{"github.com/octocat/some-repo", "octocat", false},
		{"octocat", "octocat", false},
		{"  octocat  ", "octocat", false},
		{"", "", true},
		{"   ", "", true},
		{"https://gitlab.com/someone", "", true},
		{"-leading-dash", "", true},
	}

	for _, tc := range testCases {
		got, err := ExtractUsername(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ExtractUsername(%q) = %q, want error", tc.input, got)
			} else if !errs.Is(err, errs.InvalidInput) {
				t.Errorf("ExtractUsername(%q) error kind = %v, want InvalidInput", tc.input, errs.KindOf(err))
			}
			continue
		}
		if err != nil {
			t.Errorf("ExtractUsername(%q) unexpected error: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ExtractUsername(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func fakeGitHubServer(t *testing.T, user fetcher.GitHubUser, repos []fetcher.GitHubRepo) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/users/"+user.Login, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(user)
	})
	mux.HandleFunc("/users/"+user.Login+"/repos", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(repos)
	})
	return httptest.NewServer(mux)
}

func TestFetchAggregation(t *testing.T) {
	user := fetcher.GitHubUser{Login: "octocat", Name: "The Octocat", PublicRepos: 4}
	repos := []fetcher.GitHubRepo{
		{Name: "ml-toolkit", Language: "Python", StargazersCount: 10, ForksCount: 2, Topics: []string{"machine-learning"}},
		{Name: "scraper", Language: "Python", StargazersCount: 1, Topics: []string{"machine-learning", "cli"}},
		{Name: "server", Language: "Go", StargazersCount: 0},
		{Name: "forked-lib", Language: "C", StargazersCount: 2, ForksCount: 1, Fork: true},
	}

	srv := fakeGitHubServer(t, user, repos)
	defer srv.Close()

	svc := NewGitHubService(fetcher.NewGitHubClientWithBaseURL("", srv.URL))
	snapshot, err := svc.Fetch(context.Background(), "https://github.com/octocat")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	stats := snapshot.Statistics
	if stats.TotalRepositories != 4 {
		t.Errorf("TotalRepositories = %d, want 4", stats.TotalRepositories)
	}
	// fork也计入star/fork总数
	if stats.TotalStars != 13 {
		t.Errorf("TotalStars = %d, want 13", stats.TotalStars)
	}
	if stats.TotalForks != 3 {
		t.Errorf("TotalForks = %d, want 3", stats.TotalForks)
	}

	if len(stats.TopLanguages) != 3 {
		t.Fatalf("TopLanguages length = %d, want 3", len(stats.TopLanguages))
	}
	if stats.TopLanguages[0].Language != "Python" || stats.TopLanguages[0].RepoCount != 2 {
		t.Errorf("top language = %+v, want Python x2", stats.TopLanguages[0])
	}
	if stats.TopTopics[0].Topic != "machine-learning" || stats.TopTopics[0].Count != 2 {
		t.Errorf("top topic = %+v, want machine-learning x2", stats.TopTopics[0])
	}

	// fork不进入notable列表
	if len(snapshot.NotableRepos) != 3 {
		t.Fatalf("NotableRepos length = %d, want 3", len(snapshot.NotableRepos))
	}
	if snapshot.NotableRepos[0].Name != "ml-toolkit" {
		t.Errorf("top notable repo = %s, want ml-toolkit", snapshot.NotableRepos[0].Name)
	}
	for _, repo := range snapshot.NotableRepos {
		if repo.Topics == nil {
			t.Errorf("notable repo %s has nil topics, want empty slice", repo.Name)
		}
	}
}

func TestFetchDeterministic(t *testing.T) {
	user := fetcher.GitHubUser{Login: "octocat"}
	repos := []fetcher.GitHubRepo{
		{Name: "a", Language: "Go", StargazersCount: 5, Topics: []string{"cli", "tools"}},
		{Name: "b", Language: "Rust", StargazersCount: 5, Topics: []string{"tools"}},
		{Name: "c", Language: "Go", StargazersCount: 5},
	}

	srv := fakeGitHubServer(t, user, repos)
	defer srv.Close()

	svc := NewGitHubService(fetcher.NewGitHubClientWithBaseURL("", srv.URL))

	first, err := svc.Fetch(context.Background(), "octocat")
	if err != nil {
		t.Fatalf("first Fetch failed: %v", err)
	}
	second, err := svc.Fetch(context.Background(), "octocat")
	if err != nil {
		t.Fatalf("second Fetch failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("two fetches of identical data produced different snapshots")
	}
	// 相同次数时保持首次出现顺序
	if first.Statistics.TopLanguages[0].Language != "Go" {
		t.Errorf("top language = %s, want Go (higher count)", first.Statistics.TopLanguages[0].Language)
	}
}

func TestFetchUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Not Found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	svc := NewGitHubService(fetcher.NewGitHubClientWithBaseURL("", srv.URL))
	_, err := svc.Fetch(context.Background(), "ghost")
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	if !errs.Is(err, errs.UpstreamError) {
		t.Errorf("error kind = %v, want UpstreamError", errs.KindOf(err))
	}
}
