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

// ProfileHandler 技能档案与时间线HTTP处理器
type ProfileHandler struct {
	store store.ProfileStore
}

// NewProfileHandler 创建处理器
func NewProfileHandler(st store.ProfileStore) *ProfileHandler {
	return &ProfileHandler{store: st}
}

// Get 读取当前用户的技能档案
// GET /api/profile?user_id=xxx
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	profile, err := h.store.LoadProfile(r.Context(), uid)
	if err != nil {
		writeError(w, errs.Wrap(errs.UpstreamError, err))
		return
	}
	if profile == nil {
		writeError(w, errs.New(errs.MissingProfile, "no skill profile found for user %s", uid))
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// Delete 删除当前用户的技能档案
// DELETE /api/profile?user_id=xxx
func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	if err := h.store.ClearProfile(r.Context(), uid); err != nil {
		writeError(w, errs.Wrap(errs.UpstreamError, err))
		return
	}
	log.Printf("[Profile] cleared profile for user %s", uid)
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// Validate 记录用户对技能的确认/拒绝/修改
// POST /api/skills/validate
// Body: {"user_id": "...", "validations": [{...}]}
func (h *ProfileHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID      string                 `json:"user_id"`
		Validations []model.ValidatedSkill `json:"validations"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errs.New(errs.InvalidInput, "invalid request body"))
		return
	}
	if req.UserID == "" {
		req.UserID = userID(r)
	}
	if len(req.Validations) == 0 {
		writeError(w, errs.New(errs.InvalidInput, "no validations provided"))
		return
	}

	for i := range req.Validations {
		record := &req.Validations[i]
		record.UserID = req.UserID
		if record.SkillName == "" {
			writeError(w, errs.New(errs.InvalidInput, "validation %d missing skill_name", i))
			return
		}
		switch record.Status {
		case model.ValidationConfirmed, model.ValidationRejected, model.ValidationEdited:
		default:
			writeError(w, errs.New(errs.InvalidInput, "validation %d has unknown status %q", i, record.Status))
			return
		}
		if err := h.store.InsertValidation(r.Context(), record); err != nil {
			writeError(w, errs.Wrap(errs.UpstreamError, err))
			return
		}
	}

	log.Printf("[Profile] recorded %d validations for user %s", len(req.Validations), req.UserID)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "recorded",
		"recorded": len(req.Validations),
	})
}

// GenerateTimeline 从已保存档案重建技能时间线
// POST /api/generate-timeline
// Body: {"user_id": "..."}
func (h *ProfileHandler) GenerateTimeline(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"user_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errs.New(errs.InvalidInput, "invalid request body"))
		return
	}
	if req.UserID == "" {
		req.UserID = userID(r)
	}

	profile, err := h.store.LoadProfile(r.Context(), req.UserID)
	if err != nil {
		writeError(w, errs.Wrap(errs.UpstreamError, err))
		return
	}
	if profile == nil {
		writeError(w, errs.New(errs.MissingProfile, "no skill profile found for user %s", req.UserID))
		return
	}

	entries := service.GenerateTimeline(profile, req.UserID)
	if err := h.store.ReplaceTimeline(r.Context(), req.UserID, entries); err != nil {
		writeError(w, errs.Wrap(errs.UpstreamError, err))
		return
	}

	log.Printf("[Profile] generated timeline for user %s: %d entries", req.UserID, len(entries))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	})
}

// GetTimeline 读取技能时间线
// GET /api/timeline?user_id=xxx
func (h *ProfileHandler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	entries, err := h.store.LoadTimeline(r.Context(), uid)
	if err != nil {
		writeError(w, errs.Wrap(errs.UpstreamError, err))
		return
	}
	if entries == nil {
		entries = []model.TimelineEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	})
}
