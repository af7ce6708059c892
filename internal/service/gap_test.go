package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"skillsense-go/internal/errs"
	"skillsense-go/internal/fetcher"
	"skillsense-go/internal/model"
)

// fakeGateway 返回固定content的OpenAI兼容网关
func fakeGateway(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"content": content}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func testProfile() *model.SkillProfile {
	return &model.SkillProfile{
		Summary: "Backend engineer with data experience",
		Categories: map[string][]model.Skill{
			"Technical Skills": {
				{Name: "Python", Confidence: 90, Type: model.SkillExplicit},
				{Name: "SQL", Confidence: 80, Type: model.SkillExplicit},
			},
		},
	}
}

func TestGapAnalyzeEmptyJobDescription(t *testing.T) {
	analyzer := NewGapAnalyzer(fetcher.NewGatewayClient("http://unused", "", "test-model"))

	_, err := analyzer.Analyze(context.Background(), testProfile(), "   ")
	if !errs.Is(err, errs.EmptyInput) {
		t.Errorf("error kind = %v, want EmptyInput", errs.KindOf(err))
	}
}

func TestGapAnalyzeMissingProfile(t *testing.T) {
	analyzer := NewGapAnalyzer(fetcher.NewGatewayClient("http://unused", "", "test-model"))

	_, err := analyzer.Analyze(context.Background(), nil, "Some job")
	if !errs.Is(err, errs.MissingProfile) {
		t.Errorf("error kind for nil profile = %v, want MissingProfile", errs.KindOf(err))
	}

	_, err = analyzer.Analyze(context.Background(), &model.SkillProfile{}, "Some job")
	if !errs.Is(err, errs.MissingProfile) {
		t.Errorf("error kind for empty profile = %v, want MissingProfile", errs.KindOf(err))
	}
}

func TestGapAnalyzeResult(t *testing.T) {
	content := `{
		"matchPercentage": 40,
		"matches": [{"name": "Python", "confidence": 90}],
		"gaps": ["AWS", "Leadership"],
		"untappedStrengths": ["SQL"],
		"tailoredContent": {"summary": "Backend engineer.", "bulletPoints": ["Built pipelines in Python"]},
		"honestAssessment": "Partial fit, close the cloud gap."
	}`

	srv := fakeGateway(t, content)
	defer srv.Close()

	analyzer := NewGapAnalyzer(fetcher.NewGatewayClient(srv.URL, "key", "test-model"))
	result, err := analyzer.Analyze(context.Background(), testProfile(), "Senior Python engineer with AWS and leadership experience")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if result.MatchPercentage != 40 {
		t.Errorf("MatchPercentage = %d, want 40", result.MatchPercentage)
	}
	if len(result.Matches) != 1 || result.Matches[0].Name != "Python" {
		t.Errorf("Matches = %+v, want only Python", result.Matches)
	}
	if len(result.Gaps) != 2 || result.Gaps[0] != "AWS" || result.Gaps[1] != "Leadership" {
		t.Errorf("Gaps = %v, want [AWS Leadership]", result.Gaps)
	}
	if len(result.UntappedStrengths) != 1 || result.UntappedStrengths[0] != "SQL" {
		t.Errorf("UntappedStrengths = %v, want [SQL]", result.UntappedStrengths)
	}
	if result.TailoredContent == nil || len(result.TailoredContent.BulletPoints) != 1 {
		t.Errorf("TailoredContent = %+v, want summary plus one bullet", result.TailoredContent)
	}
}

func TestGapAnalyzeClampsPercentage(t *testing.T) {
	srv := fakeGateway(t, `{"matchPercentage": 140, "matches": [], "gaps": [], "untappedStrengths": [], "honestAssessment": "x"}`)
	defer srv.Close()

	analyzer := NewGapAnalyzer(fetcher.NewGatewayClient(srv.URL, "key", "test-model"))
	result, err := analyzer.Analyze(context.Background(), testProfile(), "Any job")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if result.MatchPercentage != 100 {
		t.Errorf("MatchPercentage = %d, want clamped to 100", result.MatchPercentage)
	}
}

func TestGapAnalyzeMalformedResponse(t *testing.T) {
	srv := fakeGateway(t, "sorry, I cannot answer that")
	defer srv.Close()

	analyzer := NewGapAnalyzer(fetcher.NewGatewayClient(srv.URL, "key", "test-model"))
	_, err := analyzer.Analyze(context.Background(), testProfile(), "Any job")
	if !errs.Is(err, errs.MalformedResponse) {
		t.Errorf("error kind = %v, want MalformedResponse", errs.KindOf(err))
	}
}
