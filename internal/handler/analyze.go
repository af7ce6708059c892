package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"skillsense-go/internal/errs"
	"skillsense-go/internal/service"
	"skillsense-go/internal/sse"
)

// AnalyzeHandler 综合技能分析HTTP处理器
type AnalyzeHandler struct {
	analyzer *service.Analyzer
}

// NewAnalyzeHandler 创建处理器
func NewAnalyzeHandler(analyzer *service.Analyzer) *AnalyzeHandler {
	return &AnalyzeHandler{analyzer: analyzer}
}

func decodeAnalyzeRequest(r *http.Request) (service.AnalyzeRequest, error) {
	var req service.AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, errs.New(errs.InvalidInput, "invalid request body")
	}
	if req.UserID == "" {
		req.UserID = userID(r)
	}
	return req, nil
}

// AnalyzeSSE 处理SSE综合分析请求
// POST /api/analyze/sse
// Body: {"user_id": "...", "cv_text": "...", "github_url": "...", "linkedin_url": "..."}
func (h *AnalyzeHandler) AnalyzeSSE(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAnalyzeRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	writer, err := sse.NewWriter(w)
	if err != nil {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	log.Printf("[Analyze] starting SSE analysis for user %s", req.UserID)

	if err := h.analyzer.AnalyzeWithSSE(r.Context(), req, writer); err != nil {
		log.Printf("[Analyze] SSE analysis error for user %s: %v", req.UserID, err)
	}

	log.Printf("[Analyze] SSE analysis finished for user %s", req.UserID)
}

// ExtractSkills 同步提取技能档案
// POST /api/extract-skills
func (h *AnalyzeHandler) ExtractSkills(w http.ResponseWriter, r *http.Request) {
	req, err := decodeAnalyzeRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	profile, err := h.analyzer.Analyze(r.Context(), req, nil)
	if err != nil {
		log.Printf("[Analyze] extraction failed for user %s: %v", req.UserID, err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}
