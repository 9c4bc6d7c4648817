package mock

import (
	"context"
	"errors"

	"github.com/garnizeh/bectrack/pkg/models"
	"github.com/garnizeh/bectrack/pkg/repository"
)

// ErrInjected is the default error returned by failing methods.
var ErrInjected = errors.New("injected failure")

// FailingStore wraps a real store and fails selected methods. It is used
// to drive handlers down their 500 paths.
type FailingStore struct {
	base repository.Store
	err  error
	fail map[string]bool
}

var _ repository.Store = (*FailingStore)(nil)

// NewFailingStore fails the named methods of base with err. With no
// method names every call fails. A nil err means ErrInjected.
func NewFailingStore(base repository.Store, err error, methods ...string) *FailingStore {
	if err == nil {
		err = ErrInjected
	}
	fail := make(map[string]bool, len(methods))
	for _, m := range methods {
		fail[m] = true
	}
	return &FailingStore{base: base, err: err, fail: fail}
}

func (f *FailingStore) check(method string) error {
	if len(f.fail) == 0 || f.fail[method] {
		return f.err
	}
	return nil
}

func (f *FailingStore) GetUser(ctx context.Context, id int64) (*models.User, error) {
	if err := f.check("GetUser"); err != nil {
		return nil, err
	}
	return f.base.GetUser(ctx, id)
}

func (f *FailingStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if err := f.check("GetUserByUsername"); err != nil {
		return nil, err
	}
	return f.base.GetUserByUsername(ctx, username)
}

func (f *FailingStore) CreateUser(ctx context.Context, u *models.User) (*models.User, error) {
	if err := f.check("CreateUser"); err != nil {
		return nil, err
	}
	return f.base.CreateUser(ctx, u)
}

func (f *FailingStore) UpdateUser(ctx context.Context, id int64, p models.Patch) (*models.User, error) {
	if err := f.check("UpdateUser"); err != nil {
		return nil, err
	}
	return f.base.UpdateUser(ctx, id, p)
}

func (f *FailingStore) GetProject(ctx context.Context, id int64) (*models.Project, error) {
	if err := f.check("GetProject"); err != nil {
		return nil, err
	}
	return f.base.GetProject(ctx, id)
}

func (f *FailingStore) ListUserProjects(ctx context.Context, userID int64) ([]models.Project, error) {
	if err := f.check("ListUserProjects"); err != nil {
		return nil, err
	}
	return f.base.ListUserProjects(ctx, userID)
}

func (f *FailingStore) CreateProject(ctx context.Context, p *models.Project) (*models.Project, error) {
	if err := f.check("CreateProject"); err != nil {
		return nil, err
	}
	return f.base.CreateProject(ctx, p)
}

func (f *FailingStore) UpdateProject(ctx context.Context, id int64, p models.Patch) (*models.Project, error) {
	if err := f.check("UpdateProject"); err != nil {
		return nil, err
	}
	return f.base.UpdateProject(ctx, id, p)
}

func (f *FailingStore) ListProjectStages(ctx context.Context, projectID int64) ([]models.ProjectStage, error) {
	if err := f.check("ListProjectStages"); err != nil {
		return nil, err
	}
	return f.base.ListProjectStages(ctx, projectID)
}

func (f *FailingStore) CreateProjectStage(ctx context.Context, s *models.ProjectStage) (*models.ProjectStage, error) {
	if err := f.check("CreateProjectStage"); err != nil {
		return nil, err
	}
	return f.base.CreateProjectStage(ctx, s)
}

func (f *FailingStore) UpdateProjectStage(ctx context.Context, id int64, p models.Patch) (*models.ProjectStage, error) {
	if err := f.check("UpdateProjectStage"); err != nil {
		return nil, err
	}
	return f.base.UpdateProjectStage(ctx, id, p)
}

func (f *FailingStore) ListProjectBranches(ctx context.Context, projectID int64) ([]models.ProjectBranch, error) {
	if err := f.check("ListProjectBranches"); err != nil {
		return nil, err
	}
	return f.base.ListProjectBranches(ctx, projectID)
}

func (f *FailingStore) CreateProjectBranch(ctx context.Context, b *models.ProjectBranch) (*models.ProjectBranch, error) {
	if err := f.check("CreateProjectBranch"); err != nil {
		return nil, err
	}
	return f.base.CreateProjectBranch(ctx, b)
}

func (f *FailingStore) UpdateProjectBranch(ctx context.Context, id int64, p models.Patch) (*models.ProjectBranch, error) {
	if err := f.check("UpdateProjectBranch"); err != nil {
		return nil, err
	}
	return f.base.UpdateProjectBranch(ctx, id, p)
}

func (f *FailingStore) ListBranchTasks(ctx context.Context, branchID int64) ([]models.ProjectTask, error) {
	if err := f.check("ListBranchTasks"); err != nil {
		return nil, err
	}
	return f.base.ListBranchTasks(ctx, branchID)
}

func (f *FailingStore) CreateProjectTask(ctx context.Context, t *models.ProjectTask) (*models.ProjectTask, error) {
	if err := f.check("CreateProjectTask"); err != nil {
		return nil, err
	}
	return f.base.CreateProjectTask(ctx, t)
}

func (f *FailingStore) UpdateProjectTask(ctx context.Context, id int64, p models.Patch) (*models.ProjectTask, error) {
	if err := f.check("UpdateProjectTask"); err != nil {
		return nil, err
	}
	return f.base.UpdateProjectTask(ctx, id, p)
}

func (f *FailingStore) ListUserSkills(ctx context.Context, userID int64) ([]models.Skill, error) {
	if err := f.check("ListUserSkills"); err != nil {
		return nil, err
	}
	return f.base.ListUserSkills(ctx, userID)
}

func (f *FailingStore) CreateSkill(ctx context.Context, s *models.Skill) (*models.Skill, error) {
	if err := f.check("CreateSkill"); err != nil {
		return nil, err
	}
	return f.base.CreateSkill(ctx, s)
}

func (f *FailingStore) UpdateSkill(ctx context.Context, id int64, p models.Patch) (*models.Skill, error) {
	if err := f.check("UpdateSkill"); err != nil {
		return nil, err
	}
	return f.base.UpdateSkill(ctx, id, p)
}

func (f *FailingStore) ListAchievements(ctx context.Context) ([]models.Achievement, error) {
	if err := f.check("ListAchievements"); err != nil {
		return nil, err
	}
	return f.base.ListAchievements(ctx)
}

func (f *FailingStore) CreateAchievement(ctx context.Context, a *models.Achievement) (*models.Achievement, error) {
	if err := f.check("CreateAchievement"); err != nil {
		return nil, err
	}
	return f.base.CreateAchievement(ctx, a)
}

func (f *FailingStore) ListUserAchievements(ctx context.Context, userID int64) ([]models.UserAchievement, error) {
	if err := f.check("ListUserAchievements"); err != nil {
		return nil, err
	}
	return f.base.ListUserAchievements(ctx, userID)
}

func (f *FailingStore) CreateUserAchievement(ctx context.Context, ua *models.UserAchievement) (*models.UserAchievement, error) {
	if err := f.check("CreateUserAchievement"); err != nil {
		return nil, err
	}
	return f.base.CreateUserAchievement(ctx, ua)
}

func (f *FailingStore) ListUserLearningPaths(ctx context.Context, userID int64) ([]models.LearningPath, error) {
	if err := f.check("ListUserLearningPaths"); err != nil {
		return nil, err
	}
	return f.base.ListUserLearningPaths(ctx, userID)
}

func (f *FailingStore) CreateLearningPath(ctx context.Context, lp *models.LearningPath) (*models.LearningPath, error) {
	if err := f.check("CreateLearningPath"); err != nil {
		return nil, err
	}
	return f.base.CreateLearningPath(ctx, lp)
}

func (f *FailingStore) UpdateLearningPath(ctx context.Context, id int64, p models.Patch) (*models.LearningPath, error) {
	if err := f.check("UpdateLearningPath"); err != nil {
		return nil, err
	}
	return f.base.UpdateLearningPath(ctx, id, p)
}

func (f *FailingStore) ListUserActivities(ctx context.Context, userID int64) ([]models.Activity, error) {
	if err := f.check("ListUserActivities"); err != nil {
		return nil, err
	}
	return f.base.ListUserActivities(ctx, userID)
}

func (f *FailingStore) CreateActivity(ctx context.Context, a *models.Activity) (*models.Activity, error) {
	if err := f.check("CreateActivity"); err != nil {
		return nil, err
	}
	return f.base.CreateActivity(ctx, a)
}

func (f *FailingStore) ListRecruitmentStages(ctx context.Context) ([]models.RecruitmentStage, error) {
	if err := f.check("ListRecruitmentStages"); err != nil {
		return nil, err
	}
	return f.base.ListRecruitmentStages(ctx)
}

func (f *FailingStore) CreateRecruitmentStage(ctx context.Context, s *models.RecruitmentStage) (*models.RecruitmentStage, error) {
	if err := f.check("CreateRecruitmentStage"); err != nil {
		return nil, err
	}
	return f.base.CreateRecruitmentStage(ctx, s)
}

func (f *FailingStore) ListUserRecruitmentProgress(ctx context.Context, userID int64) ([]models.RecruitmentProgress, error) {
	if err := f.check("ListUserRecruitmentProgress"); err != nil {
		return nil, err
	}
	return f.base.ListUserRecruitmentProgress(ctx, userID)
}

func (f *FailingStore) CreateRecruitmentProgress(ctx context.Context, rp *models.RecruitmentProgress) (*models.RecruitmentProgress, error) {
	if err := f.check("CreateRecruitmentProgress"); err != nil {
		return nil, err
	}
	return f.base.CreateRecruitmentProgress(ctx, rp)
}

func (f *FailingStore) UpdateRecruitmentProgress(ctx context.Context, id int64, p models.Patch) (*models.RecruitmentProgress, error) {
	if err := f.check("UpdateRecruitmentProgress"); err != nil {
		return nil, err
	}
	return f.base.UpdateRecruitmentProgress(ctx, id, p)
}
