package api

import (
	"net/http"
	"time"

	"github.com/garnizeh/bectrack/pkg/models"
	"github.com/garnizeh/bectrack/pkg/repository"
)

type AchievementsHandler struct {
	achievementRepo repository.AchievementRepo
	validator       Validator
}

func NewAchievementsHandler(ar repository.AchievementRepo, v Validator) *AchievementsHandler {
	return &AchievementsHandler{achievementRepo: ar, validator: v}
}

// joinAchievements attaches the catalog entry to each unlock. Unlocks of
// ids missing from the catalog get a nil achievement.
func joinAchievements(unlocks []models.UserAchievement, catalog []models.Achievement) []models.UnlockedAchievement {
	byID := make(map[int64]*models.Achievement, len(catalog))
	for i := range catalog {
		byID[catalog[i].ID] = &catalog[i]
	}

	out := make([]models.UnlockedAchievement, 0, len(unlocks))
	for _, ua := range unlocks {
		out = append(out, models.UnlockedAchievement{UserAchievement: ua, Achievement: byID[ua.AchievementID]})
	}
	return out
}

func (h *AchievementsHandler) ListAchievements(w http.ResponseWriter, r *http.Request) {
	all, err := h.achievementRepo.ListAchievements(r.Context())
	if err != nil {
		writeFailure(w, r, "get achievements", err)
		return
	}

	writeJSON(w, all, http.StatusOK)
}

func (h *AchievementsHandler) ListUserAchievements(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	unlocks, err := h.achievementRepo.ListUserAchievements(r.Context(), userID)
	if err != nil {
		writeFailure(w, r, "get user achievements", err)
		return
	}
	catalog, err := h.achievementRepo.ListAchievements(r.Context())
	if err != nil {
		writeFailure(w, r, "get user achievements", err)
		return
	}

	writeJSON(w, joinAchievements(unlocks, catalog), http.StatusOK)
}

// UnlockAchievement records an unlock. The same achievement may be
// unlocked more than once by the same user.
func (h *AchievementsHandler) UnlockAchievement(w http.ResponseWriter, r *http.Request) {
	var ua models.UserAchievement
	if !decodeCreate(w, r, h.validator, models.KindUserAchievement, "user achievement", "unlock achievement", &ua) {
		return
	}
	ua.ID = 0
	ua.UnlockedAt = time.Time{}

	created, err := h.achievementRepo.CreateUserAchievement(r.Context(), &ua)
	if err != nil {
		writeFailure(w, r, "unlock achievement", err)
		return
	}

	writeJSON(w, created, http.StatusCreated)
}
