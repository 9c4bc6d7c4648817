package sqlite

import (
	"context"

	"github.com/garnizeh/bectrack/pkg/models"
)

// User methods
func (s *Store) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return getRecord[models.User](ctx, s, models.KindUser, id)
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	found, err := listRecords[models.User](ctx, s, models.KindUser, "username", username)
	if err != nil || len(found) == 0 {
		return nil, err
	}
	return &found[0], nil
}

// CreateUser does not check username or email uniqueness.
func (s *Store) CreateUser(ctx context.Context, u *models.User) (*models.User, error) {
	now := s.clock()
	return insertRecord(ctx, s, models.KindUser, func(id int64) models.User {
		v := *u
		v.ID = id
		if v.CreatedAt.IsZero() {
			v.CreatedAt = now
		}
		if v.LastActive.IsZero() {
			v.LastActive = now
		}
		return v
	})
}

func (s *Store) UpdateUser(ctx context.Context, id int64, p models.Patch) (*models.User, error) {
	return patchRecord[models.User](ctx, s, models.KindUser, id, p, nil)
}

// Project methods
func (s *Store) GetProject(ctx context.Context, id int64) (*models.Project, error) {
	return getRecord[models.Project](ctx, s, models.KindProject, id)
}

func (s *Store) ListUserProjects(ctx context.Context, userID int64) ([]models.Project, error) {
	return listRecords[models.Project](ctx, s, models.KindProject, "userId", userID)
}

func (s *Store) CreateProject(ctx context.Context, p *models.Project) (*models.Project, error) {
	now := s.clock()
	return insertRecord(ctx, s, models.KindProject, func(id int64) models.Project {
		v := *p
		v.ID = id
		if v.StartDate.IsZero() {
			v.StartDate = now
		}
		return v
	})
}

func (s *Store) UpdateProject(ctx context.Context, id int64, p models.Patch) (*models.Project, error) {
	return patchRecord[models.Project](ctx, s, models.KindProject, id, p, nil)
}

// Stage methods
func (s *Store) ListProjectStages(ctx context.Context, projectID int64) ([]models.ProjectStage, error) {
	out, err := listRecords[models.ProjectStage](ctx, s, models.KindProjectStage, "projectId", projectID)
	if err != nil {
		return nil, err
	}
	models.SortStages(out)
	return out, nil
}

func (s *Store) CreateProjectStage(ctx context.Context, st *models.ProjectStage) (*models.ProjectStage, error) {
	now := s.clock()
	return insertRecord(ctx, s, models.KindProjectStage, func(id int64) models.ProjectStage {
		v := *st
		v.ID = id
		models.SyncCompletion(v.IsCompleted, nil, &v.CompletedAt, now)
		return v
	})
}

func (s *Store) UpdateProjectStage(ctx context.Context, id int64, p models.Patch) (*models.ProjectStage, error) {
	now := s.clock()
	return patchRecord(ctx, s, models.KindProjectStage, id, p, func(prev, v *models.ProjectStage) {
		models.SyncCompletion(v.IsCompleted, prev.CompletedAt, &v.CompletedAt, now)
	})
}

// Branch methods
func (s *Store) ListProjectBranches(ctx context.Context, projectID int64) ([]models.ProjectBranch, error) {
	out, err := listRecords[models.ProjectBranch](ctx, s, models.KindProjectBranch, "projectId", projectID)
	if err != nil {
		return nil, err
	}
	models.SortBranches(out)
	return out, nil
}

func (s *Store) CreateProjectBranch(ctx context.Context, b *models.ProjectBranch) (*models.ProjectBranch, error) {
	now := s.clock()
	return insertRecord(ctx, s, models.KindProjectBranch, func(id int64) models.ProjectBranch {
		v := *b
		v.ID = id
		models.SyncCompletion(v.IsCompleted, nil, &v.CompletedAt, now)
		return v
	})
}

func (s *Store) UpdateProjectBranch(ctx context.Context, id int64, p models.Patch) (*models.ProjectBranch, error) {
	now := s.clock()
	return patchRecord(ctx, s, models.KindProjectBranch, id, p, func(prev, v *models.ProjectBranch) {
		models.SyncCompletion(v.IsCompleted, prev.CompletedAt, &v.CompletedAt, now)
	})
}

// Task methods
func (s *Store) ListBranchTasks(ctx context.Context, branchID int64) ([]models.ProjectTask, error) {
	return listRecords[models.ProjectTask](ctx, s, models.KindProjectTask, "branchId", branchID)
}

func (s *Store) CreateProjectTask(ctx context.Context, t *models.ProjectTask) (*models.ProjectTask, error) {
	now := s.clock()
	return insertRecord(ctx, s, models.KindProjectTask, func(id int64) models.ProjectTask {
		v := *t
		v.ID = id
		if v.CreatedAt.IsZero() {
			v.CreatedAt = now
		}
		models.SyncCompletion(v.Status == models.TaskCompleted, nil, &v.CompletedAt, now)
		return v
	})
}

func (s *Store) UpdateProjectTask(ctx context.Context, id int64, p models.Patch) (*models.ProjectTask, error) {
	now := s.clock()
	return patchRecord(ctx, s, models.KindProjectTask, id, p, func(prev, v *models.ProjectTask) {
		models.SyncCompletion(v.Status == models.TaskCompleted, prev.CompletedAt, &v.CompletedAt, now)
	})
}

// Skill methods
func (s *Store) ListUserSkills(ctx context.Context, userID int64) ([]models.Skill, error) {
	return listRecords[models.Skill](ctx, s, models.KindSkill, "userId", userID)
}

func (s *Store) CreateSkill(ctx context.Context, sk *models.Skill) (*models.Skill, error) {
	return insertRecord(ctx, s, models.KindSkill, func(id int64) models.Skill {
		v := *sk
		v.ID = id
		return v
	})
}

func (s *Store) UpdateSkill(ctx context.Context, id int64, p models.Patch) (*models.Skill, error) {
	return patchRecord[models.Skill](ctx, s, models.KindSkill, id, p, nil)
}

// Achievement methods
func (s *Store) ListAchievements(ctx context.Context) ([]models.Achievement, error) {
	return listRecords[models.Achievement](ctx, s, models.KindAchievement, "", nil)
}

func (s *Store) CreateAchievement(ctx context.Context, a *models.Achievement) (*models.Achievement, error) {
	return insertRecord(ctx, s, models.KindAchievement, func(id int64) models.Achievement {
		v := *a
		v.ID = id
		return v
	})
}

func (s *Store) ListUserAchievements(ctx context.Context, userID int64) ([]models.UserAchievement, error) {
	out, err := listRecords[models.UserAchievement](ctx, s, models.KindUserAchievement, "userId", userID)
	if err != nil {
		return nil, err
	}
	models.SortUnlocks(out)
	return out, nil
}

// CreateUserAchievement records an unlock. Repeated unlocks of the same
// achievement by the same user are stored as separate records.
func (s *Store) CreateUserAchievement(ctx context.Context, ua *models.UserAchievement) (*models.UserAchievement, error) {
	now := s.clock()
	return insertRecord(ctx, s, models.KindUserAchievement, func(id int64) models.UserAchievement {
		v := *ua
		v.ID = id
		if v.UnlockedAt.IsZero() {
			v.UnlockedAt = now
		}
		return v
	})
}

// Learning path methods
func (s *Store) ListUserLearningPaths(ctx context.Context, userID int64) ([]models.LearningPath, error) {
	return listRecords[models.LearningPath](ctx, s, models.KindLearningPath, "userId", userID)
}

func (s *Store) CreateLearningPath(ctx context.Context, lp *models.LearningPath) (*models.LearningPath, error) {
	now := s.clock()
	return insertRecord(ctx, s, models.KindLearningPath, func(id int64) models.LearningPath {
		v := *lp
		v.ID = id
		if v.CreatedAt.IsZero() {
			v.CreatedAt = now
		}
		return v
	})
}

func (s *Store) UpdateLearningPath(ctx context.Context, id int64, p models.Patch) (*models.LearningPath, error) {
	return patchRecord[models.LearningPath](ctx, s, models.KindLearningPath, id, p, nil)
}

// Activity methods
func (s *Store) ListUserActivities(ctx context.Context, userID int64) ([]models.Activity, error) {
	out, err := listRecords[models.Activity](ctx, s, models.KindActivity, "userId", userID)
	if err != nil {
		return nil, err
	}
	models.SortActivities(out)
	return out, nil
}

func (s *Store) CreateActivity(ctx context.Context, a *models.Activity) (*models.Activity, error) {
	now := s.clock()
	return insertRecord(ctx, s, models.KindActivity, func(id int64) models.Activity {
		v := *a
		v.ID = id
		if v.CreatedAt.IsZero() {
			v.CreatedAt = now
		}
		return v
	})
}

// Recruitment methods
func (s *Store) ListRecruitmentStages(ctx context.Context) ([]models.RecruitmentStage, error) {
	out, err := listRecords[models.RecruitmentStage](ctx, s, models.KindRecruitmentStage, "", nil)
	if err != nil {
		return nil, err
	}
	models.SortRecruitmentStages(out)
	return out, nil
}

func (s *Store) CreateRecruitmentStage(ctx context.Context, rs *models.RecruitmentStage) (*models.RecruitmentStage, error) {
	return insertRecord(ctx, s, models.KindRecruitmentStage, func(id int64) models.RecruitmentStage {
		v := *rs
		v.ID = id
		return v
	})
}

func (s *Store) ListUserRecruitmentProgress(ctx context.Context, userID int64) ([]models.RecruitmentProgress, error) {
	return listRecords[models.RecruitmentProgress](ctx, s, models.KindRecruitmentProgress, "userId", userID)
}

func (s *Store) CreateRecruitmentProgress(ctx context.Context, rp *models.RecruitmentProgress) (*models.RecruitmentProgress, error) {
	now := s.clock()
	return insertRecord(ctx, s, models.KindRecruitmentProgress, func(id int64) models.RecruitmentProgress {
		v := *rp
		v.ID = id
		if v.CreatedAt.IsZero() {
			v.CreatedAt = now
		}
		models.SyncCompletion(v.Status == models.RecruitmentCompleted, nil, &v.CompletedAt, now)
		return v
	})
}

func (s *Store) UpdateRecruitmentProgress(ctx context.Context, id int64, p models.Patch) (*models.RecruitmentProgress, error) {
	now := s.clock()
	return patchRecord(ctx, s, models.KindRecruitmentProgress, id, p, func(prev, v *models.RecruitmentProgress) {
		models.SyncCompletion(v.Status == models.RecruitmentCompleted, prev.CompletedAt, &v.CompletedAt, now)
	})
}
