package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"skillsense-go/internal/errs"
	"skillsense-go/internal/model"
	"skillsense-go/internal/service"
	"skillsense-go/internal/store"
)

// GapHandler 岗位差距分析HTTP处理器
type GapHandler struct {
	analyzer *service.GapAnalyzer
	store    store.ProfileStore
}

// NewGapHandler 创建处理器
func NewGapHandler(analyzer *service.GapAnalyzer, st store.ProfileStore) *GapHandler {
	return &GapHandler{analyzer: analyzer, store: st}
}

// AnalyzeGap 对比技能档案与职位描述
// POST /api/analyze-gap
// Body: {"user_id": "...", "job_description": "...", "profile": {...可选，缺省时读取已保存档案}}
func (h *GapHandler) AnalyzeGap(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID         string              `json:"user_id"`
		JobDescription string              `json:"job_description"`
		Profile        *model.SkillProfile `json:"profile"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errs.New(errs.InvalidInput, "invalid request body"))
		return
	}
	if req.UserID == "" {
		req.UserID = userID(r)
	}

	profile := req.Profile
	if profile == nil {
		loaded, err := h.store.LoadProfile(r.Context(), req.UserID)
		if err != nil {
			writeError(w, errs.Wrap(errs.UpstreamError, err))
			return
		}
		profile = loaded
	}

	result, err := h.analyzer.Analyze(r.Context(), profile, req.JobDescription)
	if err != nil {
		log.Printf("[Gap] analysis failed for user %s: %v", req.UserID, err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
