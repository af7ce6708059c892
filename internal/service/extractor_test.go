package service

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"skillsense-go/internal/errs"
	"skillsense-go/internal/fetcher"
	"skillsense-go/internal/model"
)

func TestBuildContextOmitsAbsentSources(t *testing.T) {
	sources := &Sources{
		CVText: "Senior engineer, Python and SQL since 2019",
		Goals:  "Move into a staff role",
	}

	got := BuildContext(sources)

	if !strings.Contains(got, "=== CV/RESUME ===") {
		t.Error("context missing CV section")
	}
	if !strings.Contains(got, "=== CAREER GOALS ===") {
		t.Error("context missing goals section")
	}
	for _, absent := range []string{"GITHUB PROFILE", "LINKEDIN PROFILE", "BLOG POSTS", "PUBLICATIONS", "PERFORMANCE REVIEWS", "REFERENCE LETTERS"} {
		if strings.Contains(got, absent) {
			t.Errorf("context contains heading for absent source %s", absent)
		}
	}
}

func TestBuildContextEmbedsGitHubJSON(t *testing.T) {
	sources := &Sources{
		GitHub: &model.GitHubSnapshot{
			Profile: model.GitHubProfile{Username: "octocat"},
		},
	}

	got := BuildContext(sources)
	if !strings.Contains(got, "=== GITHUB PROFILE ===") {
		t.Error("context missing GitHub section")
	}
	if !strings.Contains(got, `"octocat"`) {
		t.Error("GitHub section missing serialized profile data")
	}
}

func TestSourcesNames(t *testing.T) {
	sources := &Sources{
		CVText:   "some cv",
		GitHub:   &model.GitHubSnapshot{},
		LinkedIn: &model.LinkedInSnapshot{Headline: "Engineer"},
		Goals:    "grow",
	}

	want := []string{"cv", "github", "linkedin", "goals"}
	if got := sources.Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	empty := &Sources{LinkedIn: &model.LinkedInSnapshot{}}
	if !empty.IsEmpty() {
		t.Error("sources with only an empty LinkedIn snapshot should be empty")
	}
}

func TestExtractNoSources(t *testing.T) {
	extractor := NewSkillExtractor(fetcher.NewGatewayClient("http://unused", "", "test-model"))

	_, err := extractor.Extract(context.Background(), &Sources{})
	if !errs.Is(err, errs.InvalidInput) {
		t.Errorf("error kind = %v, want InvalidInput", errs.KindOf(err))
	}
}

func TestExtractFromCV(t *testing.T) {
	content := "```json\n" + `{
		"summary": "Experienced backend engineer.",
		"categories": {
			"Technical Skills": [
				{"name": "Python", "confidence": 90, "type": "explicit", "evidence": ["From CV: 5 years of Python"]}
			],
			"Soft Skills": [
				{"name": "Leadership", "confidence": 60, "type": "implicit", "evidence": ["From CV: led a team of 4"]}
			]
		}
	}` + "\n```"

	srv := fakeGateway(t, content)
	defer srv.Close()

	extractor := NewSkillExtractor(fetcher.NewGatewayClient(srv.URL, "key", "test-model"))
	profile, err := extractor.Extract(context.Background(), &Sources{CVText: "Python engineer leading a team of 4"})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if profile.Summary == "" {
		t.Error("profile summary is empty")
	}
	if profile.SkillCount() != 2 {
		t.Errorf("SkillCount() = %d, want 2", profile.SkillCount())
	}
	if !reflect.DeepEqual(profile.DataSources, []string{"cv"}) {
		t.Errorf("DataSources = %v, want [cv]", profile.DataSources)
	}

	skills := profile.FlattenSkills()
	for _, s := range skills {
		if s.Category == "" {
			t.Errorf("flattened skill %s missing category", s.Name)
		}
	}
}

func TestExtractMalformedResponse(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{"not json", "I could not process that"},
		{"missing summary", `{"categories": {}}`},
		{"missing categories", `{"summary": "x"}`},
	}

	for _, tc := range testCases {
		srv := fakeGateway(t, tc.content)
		extractor := NewSkillExtractor(fetcher.NewGatewayClient(srv.URL, "key", "test-model"))

		_, err := extractor.Extract(context.Background(), &Sources{CVText: "some cv"})
		if !errs.Is(err, errs.MalformedResponse) {
			t.Errorf("%s: error kind = %v, want MalformedResponse", tc.name, errs.KindOf(err))
		}
		srv.Close()
	}
}
