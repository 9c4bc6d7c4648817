package sqlite_test

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	dbfs "github.com/garnizeh/bectrack/db"
	dbpkg "github.com/garnizeh/bectrack/internal/db"
	sqlite "github.com/garnizeh/bectrack/internal/repository/sqlite"
	"github.com/garnizeh/bectrack/pkg/models"
)

func setupRepo(t *testing.T) (*sqlite.Store, func()) {
	t.Helper()
	ctx := context.Background()
	d, err := dbpkg.New(ctx, filepath.Join(t.TempDir(), "bec.db"))
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := dbpkg.Migrate(ctx, d, dbfs.Migrations); err != nil {
		d.Close()
		t.Fatalf("failed to migrate: %v", err)
	}

	repo := sqlite.New(d, nil)
	return repo, func() { d.Close() }
}

func TestUserCRUD(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	// Non-existing ID should return nil, nil
	got, err := repo.GetUser(ctx, 9999)
	if err != nil {
		t.Fatalf("expected no error when getting non-existing ID: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil when getting non-existing ID got: %#v", got)
	}

	u := models.NewUser()
	u.Username, u.Email, u.Name = "john_doe", "john@bec.com", "John Smith"
	created, err := repo.CreateUser(ctx, &u)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if created.ID != 1 || created.Level != 1 || created.RecruitmentStage != "application" {
		t.Fatalf("unexpected created user: %#v", created)
	}

	byName, err := repo.GetUserByUsername(ctx, "john_doe")
	if err != nil || byName == nil || byName.Email != "john@bec.com" {
		t.Fatalf("GetUserByUsername: %#v, %v", byName, err)
	}
	none, err := repo.GetUserByUsername(ctx, "nobody")
	if err != nil || none != nil {
		t.Fatalf("expected nil, nil for unknown username, got %#v, %v", none, err)
	}

	updated, err := repo.UpdateUser(ctx, created.ID, models.Patch{"xp": json.RawMessage(`2847`), "streak": json.RawMessage(`7`)})
	if err != nil {
		t.Fatalf("UpdateUser: %v", err)
	}
	if updated.XP != 2847 || updated.Streak != 7 || updated.Username != "john_doe" {
		t.Fatalf("unexpected update: %#v", updated)
	}

	reread, _ := repo.GetUser(ctx, created.ID)
	if reread.XP != 2847 {
		t.Fatalf("update not persisted: %#v", reread)
	}

	missing, err := repo.UpdateUser(ctx, 42, models.Patch{"xp": json.RawMessage(`1`)})
	if err != nil || missing != nil {
		t.Fatalf("expected nil, nil updating missing user, got %#v, %v", missing, err)
	}
}

func TestUpdate_InvalidPatch(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	sk := models.NewSkill()
	sk.UserID, sk.Name, sk.Category = 1, "Go", "technical"
	created, _ := repo.CreateSkill(ctx, &sk)

	_, err := repo.UpdateSkill(ctx, created.ID, models.Patch{"proficiency": json.RawMessage(`"high"`)})
	if !errors.Is(err, models.ErrInvalidPatch) {
		t.Fatalf("expected ErrInvalidPatch, got %v", err)
	}

	list, _ := repo.ListUserSkills(ctx, 1)
	if len(list) != 1 || list[0].Proficiency != 0 {
		t.Fatalf("failed patch must leave record untouched: %#v", list)
	}
}

func TestIDsArePerKind(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	p := models.NewProject()
	p.UserID, p.Name = 1, "E-Commerce"
	proj, _ := repo.CreateProject(ctx, &p)

	sk := models.NewSkill()
	sk.UserID, sk.Name, sk.Category = 1, "Go", "technical"
	skill, _ := repo.CreateSkill(ctx, &sk)

	if proj.ID != 1 || skill.ID != 1 {
		t.Fatalf("expected independent sequences, got project %d skill %d", proj.ID, skill.ID)
	}
	if proj.StartDate.IsZero() {
		t.Fatalf("expected startDate defaulted")
	}
}

func TestListUserProjects_FilterAndOrder(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	for i, owner := range []int64{1, 2, 1} {
		p := models.NewProject()
		p.UserID = owner
		p.Name = string(rune('A' + i))
		if _, err := repo.CreateProject(ctx, &p); err != nil {
			t.Fatalf("CreateProject: %v", err)
		}
	}

	list, err := repo.ListUserProjects(ctx, 1)
	if err != nil {
		t.Fatalf("ListUserProjects: %v", err)
	}
	if len(list) != 2 || list[0].Name != "A" || list[1].Name != "C" {
		t.Fatalf("unexpected projects: %#v", list)
	}

	empty, err := repo.ListUserProjects(ctx, 99)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v, %v", empty, err)
	}
}

func TestStages_SortedAndCompletionSynced(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo.SetClock(func() time.Time { return fixed })

	for _, n := range []int{2, 1} {
		st := models.NewProjectStage()
		st.ProjectID, st.StageNumber, st.Name = 7, n, "stage"
		if _, err := repo.CreateProjectStage(ctx, &st); err != nil {
			t.Fatalf("CreateProjectStage: %v", err)
		}
	}

	list, _ := repo.ListProjectStages(ctx, 7)
	if len(list) != 2 || list[0].StageNumber != 1 || list[1].StageNumber != 2 {
		t.Fatalf("stages not sorted by stageNumber: %#v", list)
	}

	done, err := repo.UpdateProjectStage(ctx, list[0].ID, models.Patch{"isCompleted": json.RawMessage(`true`)})
	if err != nil {
		t.Fatalf("UpdateProjectStage: %v", err)
	}
	if done.CompletedAt == nil || !done.CompletedAt.Equal(fixed) {
		t.Fatalf("expected completedAt %v, got %v", fixed, done.CompletedAt)
	}
}

func TestUnlocks_RecentFirst(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, aid := range []int64{1, 2, 3} {
		ua := models.UserAchievement{UserID: 1, AchievementID: aid, UnlockedAt: base.AddDate(0, 0, -7*i)}
		if _, err := repo.CreateUserAchievement(ctx, &ua); err != nil {
			t.Fatalf("CreateUserAchievement: %v", err)
		}
	}
	// other users' unlocks are not listed
	if _, err := repo.CreateUserAchievement(ctx, &models.UserAchievement{UserID: 2, AchievementID: 1}); err != nil {
		t.Fatalf("CreateUserAchievement: %v", err)
	}

	list, err := repo.ListUserAchievements(ctx, 1)
	if err != nil {
		t.Fatalf("ListUserAchievements: %v", err)
	}
	if len(list) != 3 || list[0].AchievementID != 1 || list[2].AchievementID != 3 {
		t.Fatalf("unexpected unlock order: %#v", list)
	}
}

func TestTreeAndRecruitment(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	for _, pos := range []int{1, 0} {
		b := models.NewProjectBranch()
		b.ProjectID, b.Name, b.Position = 3, "branch", pos
		if _, err := repo.CreateProjectBranch(ctx, &b); err != nil {
			t.Fatalf("CreateProjectBranch: %v", err)
		}
	}
	branches, _ := repo.ListProjectBranches(ctx, 3)
	if len(branches) != 2 || branches[0].Position != 0 || branches[0].Color != "#dc2626" {
		t.Fatalf("unexpected branches: %#v", branches)
	}

	task := models.NewProjectTask()
	task.BranchID, task.Name = branches[0].ID, "Book venue"
	created, _ := repo.CreateProjectTask(ctx, &task)
	done, err := repo.UpdateProjectTask(ctx, created.ID, models.Patch{"status": json.RawMessage(`"completed"`)})
	if err != nil || done.CompletedAt == nil {
		t.Fatalf("expected completed task to carry completedAt: %#v, %v", done, err)
	}
	tasks, _ := repo.ListBranchTasks(ctx, branches[0].ID)
	if len(tasks) != 1 || tasks[0].Status != models.TaskCompleted {
		t.Fatalf("unexpected tasks: %#v", tasks)
	}

	for _, pos := range []int{3, 1, 2} {
		rs := models.RecruitmentStage{Name: "stage", Position: pos, Resources: json.RawMessage(`["a","b"]`)}
		if _, err := repo.CreateRecruitmentStage(ctx, &rs); err != nil {
			t.Fatalf("CreateRecruitmentStage: %v", err)
		}
	}
	stages, _ := repo.ListRecruitmentStages(ctx)
	for i, st := range stages {
		if st.Position != i+1 {
			t.Fatalf("recruitment stages not ordered by position: %#v", stages)
		}
	}
	if string(stages[0].Resources) != `["a","b"]` {
		t.Fatalf("resources not preserved: %s", stages[0].Resources)
	}
}

func TestLearningPathsAndActivities(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	lp := models.NewLearningPath()
	lp.UserID, lp.Name = 1, "Backend track"
	created, _ := repo.CreateLearningPath(ctx, &lp)
	if !created.IsActive || created.CreatedAt.IsZero() {
		t.Fatalf("unexpected learning path defaults: %#v", created)
	}
	moved, err := repo.UpdateLearningPath(ctx, created.ID, models.Patch{"progress": json.RawMessage(`40`)})
	if err != nil || moved.Progress != 40 || moved.Name != "Backend track" {
		t.Fatalf("UpdateLearningPath: %#v, %v", moved, err)
	}

	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range 3 {
		a := models.Activity{UserID: 1, Type: "task", Description: "did work", CreatedAt: base.Add(time.Duration(i) * time.Hour)}
		if _, err := repo.CreateActivity(ctx, &a); err != nil {
			t.Fatalf("CreateActivity: %v", err)
		}
	}
	acts, _ := repo.ListUserActivities(ctx, 1)
	if len(acts) != 3 || acts[0].ID != 3 {
		t.Fatalf("activities not most recent first: %#v", acts)
	}
}

func TestUpdateTask_RepeatIsIdempotent(t *testing.T) {
	repo, cleanup := setupRepo(t)
	defer cleanup()
	ctx := context.Background()

	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo.SetClock(func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	})

	task := models.NewProjectTask()
	task.BranchID, task.Name = 1, "Book venue"
	created, err := repo.CreateProjectTask(ctx, &task)
	if err != nil {
		t.Fatalf("CreateProjectTask: %v", err)
	}

	p := models.Patch{"status": json.RawMessage(`"completed"`), "completedAt": json.RawMessage(`null`)}
	first, err := repo.UpdateProjectTask(ctx, created.ID, p)
	if err != nil || first == nil || first.CompletedAt == nil {
		t.Fatalf("first update: %#v, %v", first, err)
	}
	second, err := repo.UpdateProjectTask(ctx, created.ID, p)
	if err != nil {
		t.Fatalf("second update: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeating an update changed the record:\n%#v\n%#v", first, second)
	}
}
