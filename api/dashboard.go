package api

import (
	"context"
	"net/http"

	"github.com/garnizeh/bectrack/pkg/models"
	"github.com/garnizeh/bectrack/pkg/repository"
	"golang.org/x/sync/errgroup"
)

// Placeholder figures until hours and collaborations are derived from
// activity data.
const (
	placeholderHoursThisWeek  = 28.5
	placeholderCollaborations = 8
)

const (
	recentAchievementsLimit = 3
	recentActivitiesLimit   = 5
)

type DashboardStats struct {
	ProjectsCompleted int     `json:"projectsCompleted"`
	TotalProjects     int     `json:"totalProjects"`
	HoursThisWeek     float64 `json:"hoursThisWeek"`
	Collaborations    int     `json:"collaborations"`
}

// Dashboard is the one-shot payload behind the member home screen.
type Dashboard struct {
	User               *models.User                 `json:"user"`
	CurrentProject     *models.Project              `json:"currentProject,omitempty"`
	ProjectStages      []models.ProjectStage        `json:"projectStages"`
	Skills             []models.Skill               `json:"skills"`
	RecentAchievements []models.UnlockedAchievement `json:"recentAchievements"`
	RecentActivities   []models.Activity            `json:"recentActivities"`
	Stats              DashboardStats               `json:"stats"`
	LevelProgress      models.LevelProgress         `json:"levelProgress"`
}

type DashboardHandler struct {
	store repository.Store
}

func NewDashboardHandler(s repository.Store) *DashboardHandler {
	return &DashboardHandler{store: s}
}

// BuildDashboard assembles the dashboard for userID. It returns nil, nil
// when the user does not exist. Any fetch error fails the whole payload.
func BuildDashboard(ctx context.Context, store repository.Store, userID int64) (*Dashboard, error) {
	var (
		user       *models.User
		projects   []models.Project
		skills     []models.Skill
		unlocks    []models.UserAchievement
		activities []models.Activity
		catalog    []models.Achievement
	)

	eg, ectx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		user, err = store.GetUser(ectx, userID)
		return err
	})
	eg.Go(func() error {
		var err error
		projects, err = store.ListUserProjects(ectx, userID)
		return err
	})
	eg.Go(func() error {
		var err error
		skills, err = store.ListUserSkills(ectx, userID)
		return err
	})
	eg.Go(func() error {
		var err error
		unlocks, err = store.ListUserAchievements(ectx, userID)
		return err
	})
	eg.Go(func() error {
		var err error
		activities, err = store.ListUserActivities(ectx, userID)
		return err
	})
	eg.Go(func() error {
		var err error
		catalog, err = store.ListAchievements(ectx)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}

	d := &Dashboard{
		User:          user,
		ProjectStages: []models.ProjectStage{},
		Skills:        skills,
		LevelProgress: models.ProgressFor(*user),
	}

	for i := range projects {
		if projects[i].Status == models.ProjectActive {
			d.CurrentProject = &projects[i]
			break
		}
	}
	if d.CurrentProject != nil {
		stages, err := store.ListProjectStages(ctx, d.CurrentProject.ID)
		if err != nil {
			return nil, err
		}
		d.ProjectStages = stages
	}

	d.RecentAchievements = joinAchievements(unlocks[:min(len(unlocks), recentAchievementsLimit)], catalog)
	d.RecentActivities = activities[:min(len(activities), recentActivitiesLimit)]

	completed := 0
	for _, p := range projects {
		if p.Status == models.ProjectCompleted {
			completed++
		}
	}
	d.Stats = DashboardStats{
		ProjectsCompleted: completed,
		TotalProjects:     len(projects),
		HoursThisWeek:     placeholderHoursThisWeek,
		Collaborations:    placeholderCollaborations,
	}

	return d, nil
}

func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	d, err := BuildDashboard(r.Context(), h.store, userID)
	if err != nil {
		writeFailure(w, r, "get dashboard data", err)
		return
	}
	if d == nil {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}

	writeJSON(w, d, http.StatusOK)
}
