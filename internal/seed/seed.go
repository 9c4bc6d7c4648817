// Package seed loads the sample member, project and catalog data the
// dashboard is demonstrated with. It only uses the repository contract,
// so any store can be seeded.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/garnizeh/bectrack/pkg/models"
	"github.com/garnizeh/bectrack/pkg/repository"
)

const day = 24 * time.Hour

// Empty reports whether the store holds no users yet. Used to seed a
// fresh database exactly once.
func Empty(ctx context.Context, store repository.UserRepo) (bool, error) {
	u, err := store.GetUser(ctx, 1)
	if err != nil {
		return false, fmt.Errorf("probe users: %w", err)
	}
	return u == nil, nil
}

// Load creates the sample data relative to now. On an empty store the
// records get ids 1..n in the order they are listed here.
func Load(ctx context.Context, store repository.Store, now time.Time) error {
	user := models.NewUser()
	user.Username = "john_doe"
	user.Email = "john@bec.com"
	user.Name = "John Smith"
	user.XP = 2847
	user.Level = 12
	user.Streak = 7
	user.LastActive = now
	user.CreatedAt = now
	u, err := store.CreateUser(ctx, &user)
	if err != nil {
		return fmt.Errorf("seed user: %w", err)
	}

	catalog := []models.Achievement{
		{Name: "Code Master", Description: "Completed 10 coding challenges", Icon: "fas fa-trophy", Category: "skill", XPReward: 150},
		{Name: "Team Player", Description: "Collaborated on 5 projects", Icon: "fas fa-medal", Category: "collaboration", XPReward: 200},
		{Name: "Fast Learner", Description: "Completed course in record time", Icon: "fas fa-star", Category: "milestone", XPReward: 100},
	}
	achievementIDs := make([]int64, 0, len(catalog))
	for i := range catalog {
		a, err := store.CreateAchievement(ctx, &catalog[i])
		if err != nil {
			return fmt.Errorf("seed achievement %q: %w", catalog[i].Name, err)
		}
		achievementIDs = append(achievementIDs, a.ID)
	}

	end := now.Add(60 * day)
	project := models.NewProject()
	project.UserID = u.ID
	project.Name = "E-Commerce Platform Development"
	project.Description = ptr("Building a full-stack e-commerce solution with React and Node.js")
	project.Status = models.ProjectActive
	project.CurrentStage = 3
	project.TotalStages = 5
	project.StartDate = now.Add(-30 * day)
	project.ExpectedEndDate = &end
	p, err := store.CreateProject(ctx, &project)
	if err != nil {
		return fmt.Errorf("seed project: %w", err)
	}

	stages := []struct {
		name, desc string
		xp         int64
		doneAgo    time.Duration
	}{
		{"Planning & Research", "Initial project planning and research", 150, 25 * day},
		{"UI/UX Design", "Design user interface and experience", 200, 20 * day},
		{"Frontend Development", "Implement frontend components", 250, 0},
		{"Backend Development", "Build backend API and database", 300, 0},
		{"Testing & Deployment", "Test and deploy the application", 200, 0},
	}
	for i, st := range stages {
		s := models.NewProjectStage()
		s.ProjectID = p.ID
		s.StageNumber = i + 1
		s.Name = st.name
		s.Description = ptr(st.desc)
		s.XPReward = st.xp
		if st.doneAgo > 0 {
			at := now.Add(-st.doneAgo)
			s.IsCompleted = true
			s.CompletedAt = &at
		}
		if _, err := store.CreateProjectStage(ctx, &s); err != nil {
			return fmt.Errorf("seed stage %q: %w", st.name, err)
		}
	}

	skills := []models.Skill{
		{Name: "React.js", Category: "technical", Proficiency: 85, Level: "advanced", XPEarned: 850},
		{Name: "Node.js", Category: "technical", Proficiency: 65, Level: "intermediate", XPEarned: 650},
		{Name: "UI/UX Design", Category: "design", Proficiency: 70, Level: "intermediate", XPEarned: 700},
		{Name: "Project Management", Category: "management", Proficiency: 35, Level: "beginner", XPEarned: 350},
	}
	for i := range skills {
		skills[i].UserID = u.ID
		if _, err := store.CreateSkill(ctx, &skills[i]); err != nil {
			return fmt.Errorf("seed skill %q: %w", skills[i].Name, err)
		}
	}

	for i, ago := range []time.Duration{2 * day, 7 * day, 14 * day} {
		ua := models.UserAchievement{UserID: u.ID, AchievementID: achievementIDs[i], UnlockedAt: now.Add(-ago)}
		if _, err := store.CreateUserAchievement(ctx, &ua); err != nil {
			return fmt.Errorf("seed unlock: %w", err)
		}
	}

	pipeline := []struct {
		name, desc string
		xp         int64
		resources  []string
	}{
		{"Application", "Submit your application form and initial documents", 100, []string{
			"Application form template",
			"Personal statement in English",
			"Business-focused CV requirements",
		}},
		{"Case Study & Pitching", "Solve business case and present your solution", 300, []string{
			"Business case study framework",
			"English presentation template",
			"Market analysis guidelines",
			"Professional pitching in English",
		}},
		{"Interview", "Final interview with BEC leadership team", 200, []string{
			"English interview preparation",
			"Business leadership questions",
			"BEC values and club culture",
		}},
	}
	for i, st := range pipeline {
		res, err := json.Marshal(st.resources)
		if err != nil {
			return fmt.Errorf("encode resources: %w", err)
		}
		rs := models.RecruitmentStage{
			Name:        st.name,
			Description: ptr(st.desc),
			Position:    i + 1,
			XPReward:    st.xp,
			Resources:   res,
		}
		if _, err := store.CreateRecruitmentStage(ctx, &rs); err != nil {
			return fmt.Errorf("seed recruitment stage %q: %w", st.name, err)
		}
	}

	return nil
}

func ptr[T any](v T) *T { return &v }
