package api_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/garnizeh/bectrack/api"
	"github.com/garnizeh/bectrack/pkg/models"
)

func TestAchievementRoutes(t *testing.T) {
	r, _ := newRouter(t)

	w := do(t, r, http.MethodGet, "/api/achievements", "")
	expectStatus(t, w, http.StatusOK)
	if all := decode[[]models.Achievement](t, w); len(all) != 3 || all[0].Name != "Code Master" {
		t.Fatalf("unexpected catalog: %#v", all)
	}

	w = do(t, r, http.MethodGet, "/api/users/1/achievements", "")
	expectStatus(t, w, http.StatusOK)
	unlocks := decode[[]models.UnlockedAchievement](t, w)
	if len(unlocks) != 3 {
		t.Fatalf("expected 3 unlocks, got %d", len(unlocks))
	}
	if unlocks[0].Achievement == nil || unlocks[0].Achievement.Name != "Code Master" {
		t.Fatalf("expected most recent unlock joined with its catalog entry: %#v", unlocks[0])
	}

	expectValidation(t, do(t, r, http.MethodPost, "/api/user-achievements", `{"userId":1}`), "Invalid user achievement data")

	w = do(t, r, http.MethodPost, "/api/user-achievements", `{"userId":1,"achievementId":99}`)
	expectStatus(t, w, http.StatusCreated)
	if ua := decode[models.UserAchievement](t, w); ua.ID != 4 || ua.UnlockedAt.IsZero() {
		t.Fatalf("unexpected unlock: %#v", ua)
	}

	unlocks = decode[[]models.UnlockedAchievement](t, do(t, r, http.MethodGet, "/api/users/1/achievements", ""))
	if len(unlocks) != 4 || unlocks[0].AchievementID != 99 || unlocks[0].Achievement != nil {
		t.Fatalf("unknown catalog id must join to null and sort first: %#v", unlocks[0])
	}
}

func TestLearningPathRoutes(t *testing.T) {
	r, _ := newRouter(t)

	w := do(t, r, http.MethodGet, "/api/users/1/learning-paths", "")
	expectStatus(t, w, http.StatusOK)
	if w.Body.String() != "[]\n" {
		t.Fatalf("expected empty array, got %q", w.Body.String())
	}

	expectValidation(t, do(t, r, http.MethodPost, "/api/learning-paths", `{"userId":1,"name":"Track","progress":140}`), "Invalid learning path data")

	w = do(t, r, http.MethodPost, "/api/learning-paths", `{"userId":1,"name":"Business English","steps":[{"title":"Pitching"}]}`)
	expectStatus(t, w, http.StatusCreated)
	lp := decode[models.LearningPath](t, w)
	if lp.ID != 1 || !lp.IsActive || lp.Progress != 0 || lp.CreatedAt.IsZero() {
		t.Fatalf("unexpected learning path: %#v", lp)
	}

	w = do(t, r, http.MethodPut, "/api/learning-paths/1", `{"steps":[]}`)
	expectStatus(t, w, http.StatusOK)
	if got := decode[models.LearningPath](t, w); string(got.Steps) != "[]" || got.Name != "Business English" {
		t.Fatalf("nested fields are replaced wholesale: %#v", got)
	}
	expectMessage(t, do(t, r, http.MethodPut, "/api/learning-paths/9", `{"progress":1}`), http.StatusNotFound, "Learning path not found")
}

func TestActivityRoutes(t *testing.T) {
	r, _ := newRouter(t)

	expectValidation(t, do(t, r, http.MethodPost, "/api/activities", `{"userId":1,"type":"task"}`), "Invalid activity data")

	for i := range 3 {
		body := fmt.Sprintf(`{"userId":1,"type":"task","description":"step %d","xpGained":10,"metadata":{"n":%d}}`, i, i)
		expectStatus(t, do(t, r, http.MethodPost, "/api/activities", body), http.StatusCreated)
	}

	w := do(t, r, http.MethodGet, "/api/users/1/activities", "")
	expectStatus(t, w, http.StatusOK)
	acts := decode[[]models.Activity](t, w)
	if len(acts) != 3 || acts[0].Description != "step 2" || acts[2].Description != "step 0" {
		t.Fatalf("activities must be most recent first: %#v", acts)
	}
}

func TestRecruitmentRoutes(t *testing.T) {
	r, _ := newRouter(t)

	w := do(t, r, http.MethodGet, "/api/recruitment-stages", "")
	expectStatus(t, w, http.StatusOK)
	stages := decode[[]models.RecruitmentStage](t, w)
	if len(stages) != 3 || stages[0].Name != "Application" || stages[2].Name != "Interview" {
		t.Fatalf("unexpected recruitment stages: %#v", stages)
	}

	expectValidation(t, do(t, r, http.MethodPost, "/api/recruitment-progress", `{"userId":1,"stageId":1,"status":"lost"}`), "Invalid recruitment progress data")

	w = do(t, r, http.MethodPost, "/api/recruitment-progress", `{"userId":1,"stageId":2}`)
	expectStatus(t, w, http.StatusCreated)
	rp := decode[models.RecruitmentProgress](t, w)
	if rp.Status != models.RecruitmentPending || rp.CompletedAt != nil {
		t.Fatalf("unexpected progress: %#v", rp)
	}

	w = do(t, r, http.MethodPut, fmt.Sprintf("/api/recruitment-progress/%d", rp.ID), `{"status":"completed","score":75}`)
	expectStatus(t, w, http.StatusOK)
	if got := decode[models.RecruitmentProgress](t, w); got.CompletedAt == nil || got.Score == nil || *got.Score != 75 {
		t.Fatalf("unexpected updated progress: %#v", got)
	}

	list := decode[[]models.RecruitmentProgress](t, do(t, r, http.MethodGet, "/api/users/1/recruitment", ""))
	if len(list) != 1 {
		t.Fatalf("expected 1 progress record, got %d", len(list))
	}
	expectMessage(t, do(t, r, http.MethodPut, "/api/recruitment-progress/99", `{"status":"failed"}`), http.StatusNotFound, "Recruitment progress not found")
}

func TestTreeRoutes(t *testing.T) {
	r, _ := newRouter(t)

	expectValidation(t, do(t, r, http.MethodPost, "/api/project-branches", `{"name":"no project"}`), "Invalid branch data")

	for _, body := range []string{
		`{"projectId":1,"name":"Marketing","position":1}`,
		`{"projectId":1,"name":"Logistics","position":0}`,
		`{"projectId":1,"name":"Social media","parentBranchId":1}`,
	} {
		expectStatus(t, do(t, r, http.MethodPost, "/api/project-branches", body), http.StatusCreated)
	}
	expectStatus(t, do(t, r, http.MethodPost, "/api/project-tasks", `{"branchId":3,"name":"Schedule posts","priority":"high"}`), http.StatusCreated)
	expectValidation(t, do(t, r, http.MethodPost, "/api/project-tasks", `{"branchId":3,"name":"x","status":"blocked"}`), "Invalid task data")

	branches := decode[[]models.ProjectBranch](t, do(t, r, http.MethodGet, "/api/projects/1/branches", ""))
	if len(branches) != 3 || branches[0].Name != "Logistics" || branches[0].Color != "#dc2626" {
		t.Fatalf("unexpected branches: %#v", branches)
	}

	w := do(t, r, http.MethodGet, "/api/projects/1/tree", "")
	expectStatus(t, w, http.StatusOK)
	tree := decode[[]api.BranchNode](t, w)
	if len(tree) != 2 || tree[0].Name != "Logistics" || tree[1].Name != "Marketing" {
		t.Fatalf("unexpected roots: %#v", tree)
	}
	if len(tree[1].Children) != 1 || tree[1].Children[0].Name != "Social media" {
		t.Fatalf("child branch must nest under its parent: %#v", tree[1])
	}
	if tasks := tree[1].Children[0].Tasks; len(tasks) != 1 || tasks[0].Priority != "high" || tasks[0].Status != models.TaskTodo {
		t.Fatalf("unexpected tasks: %#v", tasks)
	}

	w = do(t, r, http.MethodPut, "/api/project-tasks/1", `{"status":"completed"}`)
	expectStatus(t, w, http.StatusOK)
	if got := decode[models.ProjectTask](t, w); got.CompletedAt == nil {
		t.Fatalf("completed task must carry completedAt: %#v", got)
	}
	tasks := decode[[]models.ProjectTask](t, do(t, r, http.MethodGet, "/api/project-branches/3/tasks", ""))
	if len(tasks) != 1 || tasks[0].Status != models.TaskCompleted {
		t.Fatalf("unexpected tasks: %#v", tasks)
	}

	w = do(t, r, http.MethodPut, "/api/project-branches/2", `{"isCompleted":true}`)
	expectStatus(t, w, http.StatusOK)
	expectMessage(t, do(t, r, http.MethodPut, "/api/project-branches/99", `{"isCompleted":true}`), http.StatusNotFound, "Project branch not found")
	expectMessage(t, do(t, r, http.MethodPut, "/api/project-tasks/99", `{"status":"todo"}`), http.StatusNotFound, "Task not found")
}

func TestBuildTree_OrphansAndCycles(t *testing.T) {
	p := func(v int64) *int64 { return &v }
	branches := []models.ProjectBranch{
		{ID: 1, Name: "root"},
		{ID: 2, Name: "orphan", ParentBranchID: p(42)},
		{ID: 3, Name: "self", ParentBranchID: p(3)},
		{ID: 4, Name: "cycle-a", ParentBranchID: p(5)},
		{ID: 5, Name: "cycle-b", ParentBranchID: p(4)},
		{ID: 6, Name: "child", ParentBranchID: p(1)},
	}

	roots := api.BuildTree(branches, nil)
	names := make([]string, 0, len(roots))
	for _, n := range roots {
		names = append(names, n.Name)
		if n.Tasks == nil || n.Children == nil {
			t.Fatalf("tasks and children must be non-nil: %#v", n)
		}
	}
	if fmt.Sprint(names) != "[root orphan self]" {
		t.Fatalf("unexpected roots: %v", names)
	}
	if len(roots[0].Children) != 1 || roots[0].Children[0].Name != "child" {
		t.Fatalf("unexpected children: %#v", roots[0].Children)
	}
}
