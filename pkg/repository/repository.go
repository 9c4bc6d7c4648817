package repository

import (
	"context"

	"github.com/garnizeh/bectrack/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// the HTTP layer depends on; concrete implementations live under internal/.
//
// Conventions shared by every implementation:
//   - Get* and Update* return (nil, nil) when the id does not exist.
//   - List* never return a nil slice.
//   - Create* assign the next id of the entity type and stamp zero
//     timestamps with the current time.
//   - Update* apply a shallow, field-level merge of the patch.

type UserRepo interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) (*models.User, error)
	UpdateUser(ctx context.Context, id int64, p models.Patch) (*models.User, error)
}

type ProjectRepo interface {
	GetProject(ctx context.Context, id int64) (*models.Project, error)
	ListUserProjects(ctx context.Context, userID int64) ([]models.Project, error)
	CreateProject(ctx context.Context, p *models.Project) (*models.Project, error)
	UpdateProject(ctx context.Context, id int64, p models.Patch) (*models.Project, error)
}

type StageRepo interface {
	ListProjectStages(ctx context.Context, projectID int64) ([]models.ProjectStage, error)
	CreateProjectStage(ctx context.Context, s *models.ProjectStage) (*models.ProjectStage, error)
	UpdateProjectStage(ctx context.Context, id int64, p models.Patch) (*models.ProjectStage, error)
}

type BranchRepo interface {
	ListProjectBranches(ctx context.Context, projectID int64) ([]models.ProjectBranch, error)
	CreateProjectBranch(ctx context.Context, b *models.ProjectBranch) (*models.ProjectBranch, error)
	UpdateProjectBranch(ctx context.Context, id int64, p models.Patch) (*models.ProjectBranch, error)
}

type TaskRepo interface {
	ListBranchTasks(ctx context.Context, branchID int64) ([]models.ProjectTask, error)
	CreateProjectTask(ctx context.Context, t *models.ProjectTask) (*models.ProjectTask, error)
	UpdateProjectTask(ctx context.Context, id int64, p models.Patch) (*models.ProjectTask, error)
}

type SkillRepo interface {
	ListUserSkills(ctx context.Context, userID int64) ([]models.Skill, error)
	CreateSkill(ctx context.Context, s *models.Skill) (*models.Skill, error)
	UpdateSkill(ctx context.Context, id int64, p models.Patch) (*models.Skill, error)
}

type AchievementRepo interface {
	ListAchievements(ctx context.Context) ([]models.Achievement, error)
	CreateAchievement(ctx context.Context, a *models.Achievement) (*models.Achievement, error)
	ListUserAchievements(ctx context.Context, userID int64) ([]models.UserAchievement, error)
	CreateUserAchievement(ctx context.Context, ua *models.UserAchievement) (*models.UserAchievement, error)
}

type LearningPathRepo interface {
	ListUserLearningPaths(ctx context.Context, userID int64) ([]models.LearningPath, error)
	CreateLearningPath(ctx context.Context, lp *models.LearningPath) (*models.LearningPath, error)
	UpdateLearningPath(ctx context.Context, id int64, p models.Patch) (*models.LearningPath, error)
}

type ActivityRepo interface {
	ListUserActivities(ctx context.Context, userID int64) ([]models.Activity, error)
	CreateActivity(ctx context.Context, a *models.Activity) (*models.Activity, error)
}

type RecruitmentRepo interface {
	ListRecruitmentStages(ctx context.Context) ([]models.RecruitmentStage, error)
	CreateRecruitmentStage(ctx context.Context, s *models.RecruitmentStage) (*models.RecruitmentStage, error)
	ListUserRecruitmentProgress(ctx context.Context, userID int64) ([]models.RecruitmentProgress, error)
	CreateRecruitmentProgress(ctx context.Context, rp *models.RecruitmentProgress) (*models.RecruitmentProgress, error)
	UpdateRecruitmentProgress(ctx context.Context, id int64, p models.Patch) (*models.RecruitmentProgress, error)
}

// Store is the full capability set served by one backing store.
type Store interface {
	UserRepo
	ProjectRepo
	StageRepo
	BranchRepo
	TaskRepo
	SkillRepo
	AchievementRepo
	LearningPathRepo
	ActivityRepo
	RecruitmentRepo
}
