package api

import (
	"net/http"
	"time"

	"github.com/garnizeh/bectrack/pkg/models"
	"github.com/garnizeh/bectrack/pkg/repository"
)

type ActivitiesHandler struct {
	activityRepo repository.ActivityRepo
	validator    Validator
}

func NewActivitiesHandler(ar repository.ActivityRepo, v Validator) *ActivitiesHandler {
	return &ActivitiesHandler{activityRepo: ar, validator: v}
}

func (h *ActivitiesHandler) CreateActivity(w http.ResponseWriter, r *http.Request) {
	var a models.Activity
	if !decodeCreate(w, r, h.validator, models.KindActivity, "activity", "create activity", &a) {
		return
	}
	a.ID = 0
	a.CreatedAt = time.Time{}

	created, err := h.activityRepo.CreateActivity(r.Context(), &a)
	if err != nil {
		writeFailure(w, r, "create activity", err)
		return
	}

	writeJSON(w, created, http.StatusCreated)
}

// ListActivities returns a user's feed, most recent first.
func (h *ActivitiesHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	acts, err := h.activityRepo.ListUserActivities(r.Context(), userID)
	if err != nil {
		writeFailure(w, r, "get activities", err)
		return
	}

	writeJSON(w, acts, http.StatusOK)
}
