package api

import (
	"net/http"

	"github.com/garnizeh/bectrack/pkg/models"
	"github.com/garnizeh/bectrack/pkg/repository"
)

type SkillsHandler struct {
	skillRepo repository.SkillRepo
	validator Validator
}

func NewSkillsHandler(sr repository.SkillRepo, v Validator) *SkillsHandler {
	return &SkillsHandler{skillRepo: sr, validator: v}
}

func (h *SkillsHandler) ListUserSkills(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	skills, err := h.skillRepo.ListUserSkills(r.Context(), userID)
	if err != nil {
		writeFailure(w, r, "get skills", err)
		return
	}

	writeJSON(w, skills, http.StatusOK)
}

func (h *SkillsHandler) CreateSkill(w http.ResponseWriter, r *http.Request) {
	sk := models.NewSkill()
	if !decodeCreate(w, r, h.validator, models.KindSkill, "skill", "create skill", &sk) {
		return
	}
	sk.ID = 0

	created, err := h.skillRepo.CreateSkill(r.Context(), &sk)
	if err != nil {
		writeFailure(w, r, "create skill", err)
		return
	}

	writeJSON(w, created, http.StatusCreated)
}

func (h *SkillsHandler) UpdateSkill(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	patch, ok := decodePatch(w, r, "skill")
	if !ok {
		return
	}

	sk, err := h.skillRepo.UpdateSkill(r.Context(), id, patch)
	writeUpdated(w, r, sk, err, "skill", "Skill", "update skill")
}
