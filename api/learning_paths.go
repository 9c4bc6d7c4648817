package api

import (
	"net/http"
	"time"

	"github.com/garnizeh/bectrack/pkg/models"
	"github.com/garnizeh/bectrack/pkg/repository"
)

type LearningPathsHandler struct {
	pathRepo  repository.LearningPathRepo
	validator Validator
}

func NewLearningPathsHandler(lr repository.LearningPathRepo, v Validator) *LearningPathsHandler {
	return &LearningPathsHandler{pathRepo: lr, validator: v}
}

func (h *LearningPathsHandler) ListUserLearningPaths(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	paths, err := h.pathRepo.ListUserLearningPaths(r.Context(), userID)
	if err != nil {
		writeFailure(w, r, "get learning paths", err)
		return
	}

	writeJSON(w, paths, http.StatusOK)
}

func (h *LearningPathsHandler) CreateLearningPath(w http.ResponseWriter, r *http.Request) {
	lp := models.NewLearningPath()
	if !decodeCreate(w, r, h.validator, models.KindLearningPath, "learning path", "create learning path", &lp) {
		return
	}
	lp.ID = 0
	lp.CreatedAt = time.Time{}

	created, err := h.pathRepo.CreateLearningPath(r.Context(), &lp)
	if err != nil {
		writeFailure(w, r, "create learning path", err)
		return
	}

	writeJSON(w, created, http.StatusCreated)
}

func (h *LearningPathsHandler) UpdateLearningPath(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	patch, ok := decodePatch(w, r, "learning path")
	if !ok {
		return
	}

	lp, err := h.pathRepo.UpdateLearningPath(r.Context(), id, patch)
	writeUpdated(w, r, lp, err, "learning path", "Learning path", "update learning path")
}
