// Package memory is the process-local implementation of repository.Store.
// All state is lost when the process exits.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/garnizeh/bectrack/pkg/models"
	"github.com/garnizeh/bectrack/pkg/repository"
)

// Store keeps one table per entity type behind a single lock.
type Store struct {
	mu    sync.RWMutex
	clock func() time.Time

	users        *table[models.User]
	projects     *table[models.Project]
	stages       *table[models.ProjectStage]
	branches     *table[models.ProjectBranch]
	tasks        *table[models.ProjectTask]
	skills       *table[models.Skill]
	achievements *table[models.Achievement]
	unlocks      *table[models.UserAchievement]
	paths        *table[models.LearningPath]
	activities   *table[models.Activity]
	recStages    *table[models.RecruitmentStage]
	recProgress  *table[models.RecruitmentProgress]
}

var _ repository.Store = (*Store)(nil)

type Option func(*Store)

// WithClock replaces the time source used for default timestamps.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// New returns an empty store. Use seed.Load to populate sample data.
func New(opts ...Option) *Store {
	s := &Store{
		clock:        func() time.Time { return time.Now().UTC() },
		users:        newTable[models.User](),
		projects:     newTable[models.Project](),
		stages:       newTable[models.ProjectStage](),
		branches:     newTable[models.ProjectBranch](),
		tasks:        newTable[models.ProjectTask](),
		skills:       newTable[models.Skill](),
		achievements: newTable[models.Achievement](),
		unlocks:      newTable[models.UserAchievement](),
		paths:        newTable[models.LearningPath](),
		activities:   newTable[models.Activity](),
		recStages:    newTable[models.RecruitmentStage](),
		recProgress:  newTable[models.RecruitmentProgress](),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// User methods
func (s *Store) GetUser(ctx context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, _ := s.users.get(id)
	return u, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	found := s.users.filter(func(u *models.User) bool { return u.Username == username })
	if len(found) == 0 {
		return nil, nil
	}
	return &found[0], nil
}

// CreateUser does not check username or email uniqueness.
func (s *Store) CreateUser(ctx context.Context, u *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	return s.users.insert(func(id int64) models.User {
		v := *u
		v.ID = id
		if v.CreatedAt.IsZero() {
			v.CreatedAt = now
		}
		if v.LastActive.IsZero() {
			v.LastActive = now
		}
		return v
	}), nil
}

func (s *Store) UpdateUser(ctx context.Context, id int64, p models.Patch) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.users.patch(id, p, nil)
}

// Project methods
func (s *Store) GetProject(ctx context.Context, id int64) (*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, _ := s.projects.get(id)
	return p, nil
}

func (s *Store) ListUserProjects(ctx context.Context, userID int64) ([]models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.projects.filter(func(p *models.Project) bool { return p.UserID == userID }), nil
}

func (s *Store) CreateProject(ctx context.Context, p *models.Project) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	return s.projects.insert(func(id int64) models.Project {
		v := *p
		v.ID = id
		if v.StartDate.IsZero() {
			v.StartDate = now
		}
		return v
	}), nil
}

func (s *Store) UpdateProject(ctx context.Context, id int64, p models.Patch) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.projects.patch(id, p, nil)
}

// Stage methods
func (s *Store) ListProjectStages(ctx context.Context, projectID int64) ([]models.ProjectStage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.stages.filter(func(st *models.ProjectStage) bool { return st.ProjectID == projectID })
	models.SortStages(out)
	return out, nil
}

func (s *Store) CreateProjectStage(ctx context.Context, st *models.ProjectStage) (*models.ProjectStage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	return s.stages.insert(func(id int64) models.ProjectStage {
		v := *st
		v.ID = id
		models.SyncCompletion(v.IsCompleted, nil, &v.CompletedAt, now)
		return v
	}), nil
}

func (s *Store) UpdateProjectStage(ctx context.Context, id int64, p models.Patch) (*models.ProjectStage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	return s.stages.patch(id, p, func(prev, v *models.ProjectStage) {
		models.SyncCompletion(v.IsCompleted, prev.CompletedAt, &v.CompletedAt, now)
	})
}

// Branch methods
func (s *Store) ListProjectBranches(ctx context.Context, projectID int64) ([]models.ProjectBranch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.branches.filter(func(b *models.ProjectBranch) bool { return b.ProjectID == projectID })
	models.SortBranches(out)
	return out, nil
}

func (s *Store) CreateProjectBranch(ctx context.Context, b *models.ProjectBranch) (*models.ProjectBranch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	return s.branches.insert(func(id int64) models.ProjectBranch {
		v := *b
		v.ID = id
		models.SyncCompletion(v.IsCompleted, nil, &v.CompletedAt, now)
		return v
	}), nil
}

func (s *Store) UpdateProjectBranch(ctx context.Context, id int64, p models.Patch) (*models.ProjectBranch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	return s.branches.patch(id, p, func(prev, v *models.ProjectBranch) {
		models.SyncCompletion(v.IsCompleted, prev.CompletedAt, &v.CompletedAt, now)
	})
}

// Task methods
func (s *Store) ListBranchTasks(ctx context.Context, branchID int64) ([]models.ProjectTask, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.tasks.filter(func(t *models.ProjectTask) bool { return t.BranchID == branchID }), nil
}

func (s *Store) CreateProjectTask(ctx context.Context, t *models.ProjectTask) (*models.ProjectTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	return s.tasks.insert(func(id int64) models.ProjectTask {
		v := *t
		v.ID = id
		if v.CreatedAt.IsZero() {
			v.CreatedAt = now
		}
		models.SyncCompletion(v.Status == models.TaskCompleted, nil, &v.CompletedAt, now)
		return v
	}), nil
}

func (s *Store) UpdateProjectTask(ctx context.Context, id int64, p models.Patch) (*models.ProjectTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	return s.tasks.patch(id, p, func(prev, v *models.ProjectTask) {
		models.SyncCompletion(v.Status == models.TaskCompleted, prev.CompletedAt, &v.CompletedAt, now)
	})
}

// Skill methods
func (s *Store) ListUserSkills(ctx context.Context, userID int64) ([]models.Skill, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.skills.filter(func(sk *models.Skill) bool { return sk.UserID == userID }), nil
}

func (s *Store) CreateSkill(ctx context.Context, sk *models.Skill) (*models.Skill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.skills.insert(func(id int64) models.Skill {
		v := *sk
		v.ID = id
		return v
	}), nil
}

func (s *Store) UpdateSkill(ctx context.Context, id int64, p models.Patch) (*models.Skill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.skills.patch(id, p, nil)
}

// Achievement methods
func (s *Store) ListAchievements(ctx context.Context) ([]models.Achievement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.achievements.filter(nil), nil
}

func (s *Store) CreateAchievement(ctx context.Context, a *models.Achievement) (*models.Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.achievements.insert(func(id int64) models.Achievement {
		v := *a
		v.ID = id
		return v
	}), nil
}

func (s *Store) ListUserAchievements(ctx context.Context, userID int64) ([]models.UserAchievement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.unlocks.filter(func(ua *models.UserAchievement) bool { return ua.UserID == userID })
	models.SortUnlocks(out)
	return out, nil
}

// CreateUserAchievement records an unlock. Repeated unlocks of the same
// achievement by the same user are stored as separate records.
func (s *Store) CreateUserAchievement(ctx context.Context, ua *models.UserAchievement) (*models.UserAchievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	return s.unlocks.insert(func(id int64) models.UserAchievement {
		v := *ua
		v.ID = id
		if v.UnlockedAt.IsZero() {
			v.UnlockedAt = now
		}
		return v
	}), nil
}

// Learning path methods
func (s *Store) ListUserLearningPaths(ctx context.Context, userID int64) ([]models.LearningPath, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.paths.filter(func(lp *models.LearningPath) bool { return lp.UserID == userID }), nil
}

func (s *Store) CreateLearningPath(ctx context.Context, lp *models.LearningPath) (*models.LearningPath, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	return s.paths.insert(func(id int64) models.LearningPath {
		v := *lp
		v.ID = id
		if v.CreatedAt.IsZero() {
			v.CreatedAt = now
		}
		return v
	}), nil
}

func (s *Store) UpdateLearningPath(ctx context.Context, id int64, p models.Patch) (*models.LearningPath, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.paths.patch(id, p, nil)
}

// Activity methods
func (s *Store) ListUserActivities(ctx context.Context, userID int64) ([]models.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.activities.filter(func(a *models.Activity) bool { return a.UserID == userID })
	models.SortActivities(out)
	return out, nil
}

func (s *Store) CreateActivity(ctx context.Context, a *models.Activity) (*models.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	return s.activities.insert(func(id int64) models.Activity {
		v := *a
		v.ID = id
		if v.CreatedAt.IsZero() {
			v.CreatedAt = now
		}
		return v
	}), nil
}

// Recruitment methods
func (s *Store) ListRecruitmentStages(ctx context.Context) ([]models.RecruitmentStage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.recStages.filter(nil)
	models.SortRecruitmentStages(out)
	return out, nil
}

func (s *Store) CreateRecruitmentStage(ctx context.Context, rs *models.RecruitmentStage) (*models.RecruitmentStage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.recStages.insert(func(id int64) models.RecruitmentStage {
		v := *rs
		v.ID = id
		return v
	}), nil
}

func (s *Store) ListUserRecruitmentProgress(ctx context.Context, userID int64) ([]models.RecruitmentProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.recProgress.filter(func(rp *models.RecruitmentProgress) bool { return rp.UserID == userID }), nil
}

func (s *Store) CreateRecruitmentProgress(ctx context.Context, rp *models.RecruitmentProgress) (*models.RecruitmentProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	return s.recProgress.insert(func(id int64) models.RecruitmentProgress {
		v := *rp
		v.ID = id
		if v.CreatedAt.IsZero() {
			v.CreatedAt = now
		}
		models.SyncCompletion(v.Status == models.RecruitmentCompleted, nil, &v.CompletedAt, now)
		return v
	}), nil
}

func (s *Store) UpdateRecruitmentProgress(ctx context.Context, id int64, p models.Patch) (*models.RecruitmentProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	return s.recProgress.patch(id, p, func(prev, v *models.RecruitmentProgress) {
		models.SyncCompletion(v.Status == models.RecruitmentCompleted, prev.CompletedAt, &v.CompletedAt, now)
	})
}
