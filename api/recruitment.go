package api

import (
	"net/http"
	"time"

	"github.com/garnizeh/bectrack/pkg/models"
	"github.com/garnizeh/bectrack/pkg/repository"
)

type RecruitmentHandler struct {
	recruitmentRepo repository.RecruitmentRepo
	validator       Validator
}

func NewRecruitmentHandler(rr repository.RecruitmentRepo, v Validator) *RecruitmentHandler {
	return &RecruitmentHandler{recruitmentRepo: rr, validator: v}
}

func (h *RecruitmentHandler) ListStages(w http.ResponseWriter, r *http.Request) {
	stages, err := h.recruitmentRepo.ListRecruitmentStages(r.Context())
	if err != nil {
		writeFailure(w, r, "get recruitment stages", err)
		return
	}

	writeJSON(w, stages, http.StatusOK)
}

func (h *RecruitmentHandler) ListUserProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	progress, err := h.recruitmentRepo.ListUserRecruitmentProgress(r.Context(), userID)
	if err != nil {
		writeFailure(w, r, "get recruitment progress", err)
		return
	}

	writeJSON(w, progress, http.StatusOK)
}

func (h *RecruitmentHandler) CreateProgress(w http.ResponseWriter, r *http.Request) {
	rp := models.NewRecruitmentProgress()
	if !decodeCreate(w, r, h.validator, models.KindRecruitmentProgress, "recruitment progress", "create recruitment progress", &rp) {
		return
	}
	rp.ID = 0
	rp.CompletedAt = nil
	rp.CreatedAt = time.Time{}

	created, err := h.recruitmentRepo.CreateRecruitmentProgress(r.Context(), &rp)
	if err != nil {
		writeFailure(w, r, "create recruitment progress", err)
		return
	}

	writeJSON(w, created, http.StatusCreated)
}

func (h *RecruitmentHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	patch, ok := decodePatch(w, r, "recruitment progress")
	if !ok {
		return
	}

	rp, err := h.recruitmentRepo.UpdateRecruitmentProgress(r.Context(), id, patch)
	writeUpdated(w, r, rp, err, "recruitment progress", "Recruitment progress", "update recruitment progress")
}
