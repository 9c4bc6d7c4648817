package api

import (
	"net/http"
	"time"

	"github.com/garnizeh/bectrack/pkg/models"
	"github.com/garnizeh/bectrack/pkg/repository"
)

// TreeHandler serves a project's branch/task work tree.
type TreeHandler struct {
	branchRepo repository.BranchRepo
	taskRepo   repository.TaskRepo
	validator  Validator
}

func NewTreeHandler(br repository.BranchRepo, tr repository.TaskRepo, v Validator) *TreeHandler {
	return &TreeHandler{branchRepo: br, taskRepo: tr, validator: v}
}

// BranchNode is a branch with its sub-branches and tasks attached.
type BranchNode struct {
	models.ProjectBranch
	Children []*BranchNode       `json:"children"`
	Tasks    []models.ProjectTask `json:"tasks"`
}

// BuildTree nests branches under their parents. branches must already be
// in display order. A branch whose parent is not among branches is a root;
// branches caught in a parent cycle are unreachable and left out.
func BuildTree(branches []models.ProjectBranch, tasks map[int64][]models.ProjectTask) []*BranchNode {
	nodes := make(map[int64]*BranchNode, len(branches))
	for _, b := range branches {
		t := tasks[b.ID]
		if t == nil {
			t = []models.ProjectTask{}
		}
		nodes[b.ID] = &BranchNode{ProjectBranch: b, Children: []*BranchNode{}, Tasks: t}
	}

	roots := make([]*BranchNode, 0)
	for _, b := range branches {
		n := nodes[b.ID]
		if b.ParentBranchID != nil && *b.ParentBranchID != b.ID {
			if parent, ok := nodes[*b.ParentBranchID]; ok {
				parent.Children = append(parent.Children, n)
				continue
			}
		}
		roots = append(roots, n)
	}
	return roots
}

func (h *TreeHandler) ListBranches(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(w, r, "projectId")
	if !ok {
		return
	}

	branches, err := h.branchRepo.ListProjectBranches(r.Context(), projectID)
	if err != nil {
		writeFailure(w, r, "get project branches", err)
		return
	}

	writeJSON(w, branches, http.StatusOK)
}

func (h *TreeHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(w, r, "projectId")
	if !ok {
		return
	}

	branches, err := h.branchRepo.ListProjectBranches(r.Context(), projectID)
	if err != nil {
		writeFailure(w, r, "get project tree", err)
		return
	}
	tasks := make(map[int64][]models.ProjectTask, len(branches))
	for _, b := range branches {
		t, err := h.taskRepo.ListBranchTasks(r.Context(), b.ID)
		if err != nil {
			writeFailure(w, r, "get project tree", err)
			return
		}
		tasks[b.ID] = t
	}

	writeJSON(w, BuildTree(branches, tasks), http.StatusOK)
}

func (h *TreeHandler) CreateBranch(w http.ResponseWriter, r *http.Request) {
	b := models.NewProjectBranch()
	if !decodeCreate(w, r, h.validator, models.KindProjectBranch, "branch", "create project branch", &b) {
		return
	}
	b.ID = 0
	b.CompletedAt = nil

	created, err := h.branchRepo.CreateProjectBranch(r.Context(), &b)
	if err != nil {
		writeFailure(w, r, "create project branch", err)
		return
	}

	writeJSON(w, created, http.StatusCreated)
}

func (h *TreeHandler) UpdateBranch(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	patch, ok := decodePatch(w, r, "branch")
	if !ok {
		return
	}

	b, err := h.branchRepo.UpdateProjectBranch(r.Context(), id, patch)
	writeUpdated(w, r, b, err, "branch", "Project branch", "update project branch")
}

func (h *TreeHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	branchID, ok := pathID(w, r, "branchId")
	if !ok {
		return
	}

	tasks, err := h.taskRepo.ListBranchTasks(r.Context(), branchID)
	if err != nil {
		writeFailure(w, r, "get tasks", err)
		return
	}

	writeJSON(w, tasks, http.StatusOK)
}

func (h *TreeHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	t := models.NewProjectTask()
	if !decodeCreate(w, r, h.validator, models.KindProjectTask, "task", "create task", &t) {
		return
	}
	t.ID = 0
	t.CompletedAt = nil
	t.CreatedAt = time.Time{}

	created, err := h.taskRepo.CreateProjectTask(r.Context(), &t)
	if err != nil {
		writeFailure(w, r, "create task", err)
		return
	}

	writeJSON(w, created, http.StatusCreated)
}

func (h *TreeHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	patch, ok := decodePatch(w, r, "task")
	if !ok {
		return
	}

	t, err := h.taskRepo.UpdateProjectTask(r.Context(), id, patch)
	writeUpdated(w, r, t, err, "task", "Task", "update task")
}
