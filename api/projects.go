package api

import (
	"net/http"

	"github.com/garnizeh/bectrack/internal/validation"
	"github.com/garnizeh/bectrack/pkg/models"
	"github.com/garnizeh/bectrack/pkg/repository"
)

type ProjectsHandler struct {
	projectRepo repository.ProjectRepo
	stageRepo   repository.StageRepo
	validator   Validator
}

func NewProjectsHandler(pr repository.ProjectRepo, sr repository.StageRepo, v Validator) *ProjectsHandler {
	return &ProjectsHandler{projectRepo: pr, stageRepo: sr, validator: v}
}

func (h *ProjectsHandler) ListUserProjects(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	projects, err := h.projectRepo.ListUserProjects(r.Context(), userID)
	if err != nil {
		writeFailure(w, r, "get projects", err)
		return
	}

	writeJSON(w, projects, http.StatusOK)
}

func (h *ProjectsHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	p, err := h.projectRepo.GetProject(r.Context(), id)
	if err != nil {
		writeFailure(w, r, "get project", err)
		return
	}
	if p == nil {
		writeMessage(w, http.StatusNotFound, "Project not found")
		return
	}

	writeJSON(w, p, http.StatusOK)
}

func (h *ProjectsHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	p := models.NewProject()
	if !decodeCreate(w, r, h.validator, models.KindProject, "project", "create project", &p) {
		return
	}
	// schemas cannot compare two fields
	if p.CurrentStage > p.TotalStages {
		writeValidation(w, "project", []validation.FieldError{{
			Path:    "/currentStage",
			Message: "currentStage must not exceed totalStages",
		}})
		return
	}
	p.ID = 0
	p.CompletedAt = nil

	created, err := h.projectRepo.CreateProject(r.Context(), &p)
	if err != nil {
		writeFailure(w, r, "create project", err)
		return
	}

	writeJSON(w, created, http.StatusCreated)
}

func (h *ProjectsHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	patch, ok := decodePatch(w, r, "project")
	if !ok {
		return
	}

	p, err := h.projectRepo.UpdateProject(r.Context(), id, patch)
	writeUpdated(w, r, p, err, "project", "Project", "update project")
}

func (h *ProjectsHandler) ListStages(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(w, r, "projectId")
	if !ok {
		return
	}

	stages, err := h.stageRepo.ListProjectStages(r.Context(), projectID)
	if err != nil {
		writeFailure(w, r, "get project stages", err)
		return
	}

	writeJSON(w, stages, http.StatusOK)
}

func (h *ProjectsHandler) CreateStage(w http.ResponseWriter, r *http.Request) {
	st := models.NewProjectStage()
	if !decodeCreate(w, r, h.validator, models.KindProjectStage, "stage", "create project stage", &st) {
		return
	}
	st.ID = 0
	st.CompletedAt = nil

	created, err := h.stageRepo.CreateProjectStage(r.Context(), &st)
	if err != nil {
		writeFailure(w, r, "create project stage", err)
		return
	}

	writeJSON(w, created, http.StatusCreated)
}

func (h *ProjectsHandler) UpdateStage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	patch, ok := decodePatch(w, r, "stage")
	if !ok {
		return
	}

	st, err := h.stageRepo.UpdateProjectStage(r.Context(), id, patch)
	writeUpdated(w, r, st, err, "stage", "Project stage", "update project stage")
}
