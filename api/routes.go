package api

import (
	"net/http"

	"github.com/garnizeh/bectrack/internal/config"
	"github.com/garnizeh/bectrack/pkg/repository"
	"github.com/gorilla/mux"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, store repository.Store, v Validator) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	var metrics *Metrics
	if cfg == nil || cfg.Metrics {
		metrics = NewMetrics()
		r.Use(metrics.Middleware)
	}
	r.Use(RecoveryMiddleware)

	// mux skips middleware when no route matches; answer CORS preflights here.
	methodNotAllowed := CORSMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	}))
	notFound := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeMessage(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowedHandler = methodNotAllowed
	r.NotFoundHandler = notFound

	// Create handlers
	systemHandler := NewSystemHandler(version, buildTime)
	usersHandler := NewUsersHandler(store, v)
	projectsHandler := NewProjectsHandler(store, store, v)
	treeHandler := NewTreeHandler(store, store, v)
	skillsHandler := NewSkillsHandler(store, v)
	achievementsHandler := NewAchievementsHandler(store, v)
	learningHandler := NewLearningPathsHandler(store, v)
	activitiesHandler := NewActivitiesHandler(store, v)
	recruitmentHandler := NewRecruitmentHandler(store, v)
	dashboardHandler := NewDashboardHandler(store)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.Version).Methods("GET")
	r.HandleFunc("/health", systemHandler.Health).Methods("GET")
	if metrics != nil {
		r.Handle("/metrics", metrics.Handler()).Methods("GET")
	}

	apiRouter := r.PathPrefix("/api").Subrouter()
	// the subrouter answers its own misses, the root handlers never see them
	apiRouter.MethodNotAllowedHandler = methodNotAllowed
	apiRouter.NotFoundHandler = notFound

	// Users
	apiRouter.HandleFunc("/users", usersHandler.CreateUser).Methods("POST")
	apiRouter.HandleFunc("/users/by-username/{username}", usersHandler.GetUserByUsername).Methods("GET")
	apiRouter.HandleFunc("/users/{id}", usersHandler.GetUser).Methods("GET")
	apiRouter.HandleFunc("/users/{id}", usersHandler.UpdateUser).Methods("PUT")

	// Projects and stages
	apiRouter.HandleFunc("/users/{userId}/projects", projectsHandler.ListUserProjects).Methods("GET")
	apiRouter.HandleFunc("/projects", projectsHandler.CreateProject).Methods("POST")
	apiRouter.HandleFunc("/projects/{id}", projectsHandler.GetProject).Methods("GET")
	apiRouter.HandleFunc("/projects/{id}", projectsHandler.UpdateProject).Methods("PUT")
	apiRouter.HandleFunc("/projects/{projectId}/stages", projectsHandler.ListStages).Methods("GET")
	apiRouter.HandleFunc("/project-stages", projectsHandler.CreateStage).Methods("POST")
	apiRouter.HandleFunc("/project-stages/{id}", projectsHandler.UpdateStage).Methods("PUT")

	// Branch/task tree
	apiRouter.HandleFunc("/projects/{projectId}/branches", treeHandler.ListBranches).Methods("GET")
	apiRouter.HandleFunc("/projects/{projectId}/tree", treeHandler.GetTree).Methods("GET")
	apiRouter.HandleFunc("/project-branches", treeHandler.CreateBranch).Methods("POST")
	apiRouter.HandleFunc("/project-branches/{id}", treeHandler.UpdateBranch).Methods("PUT")
	apiRouter.HandleFunc("/project-branches/{branchId}/tasks", treeHandler.ListTasks).Methods("GET")
	apiRouter.HandleFunc("/project-tasks", treeHandler.CreateTask).Methods("POST")
	apiRouter.HandleFunc("/project-tasks/{id}", treeHandler.UpdateTask).Methods("PUT")

	// Skills
	apiRouter.HandleFunc("/users/{userId}/skills", skillsHandler.ListUserSkills).Methods("GET")
	apiRouter.HandleFunc("/skills", skillsHandler.CreateSkill).Methods("POST")
	apiRouter.HandleFunc("/skills/{id}", skillsHandler.UpdateSkill).Methods("PUT")

	// Achievements
	apiRouter.HandleFunc("/achievements", achievementsHandler.ListAchievements).Methods("GET")
	apiRouter.HandleFunc("/users/{userId}/achievements", achievementsHandler.ListUserAchievements).Methods("GET")
	apiRouter.HandleFunc("/user-achievements", achievementsHandler.UnlockAchievement).Methods("POST")

	// Learning paths
	apiRouter.HandleFunc("/users/{userId}/learning-paths", learningHandler.ListUserLearningPaths).Methods("GET")
	apiRouter.HandleFunc("/learning-paths", learningHandler.CreateLearningPath).Methods("POST")
	apiRouter.HandleFunc("/learning-paths/{id}", learningHandler.UpdateLearningPath).Methods("PUT")

	// Activities
	apiRouter.HandleFunc("/users/{userId}/activities", activitiesHandler.ListActivities).Methods("GET")
	apiRouter.HandleFunc("/activities", activitiesHandler.CreateActivity).Methods("POST")

	// Recruitment
	apiRouter.HandleFunc("/recruitment-stages", recruitmentHandler.ListStages).Methods("GET")
	apiRouter.HandleFunc("/users/{userId}/recruitment", recruitmentHandler.ListUserProgress).Methods("GET")
	apiRouter.HandleFunc("/recruitment-progress", recruitmentHandler.CreateProgress).Methods("POST")
	apiRouter.HandleFunc("/recruitment-progress/{id}", recruitmentHandler.UpdateProgress).Methods("PUT")

	// Dashboard
	apiRouter.HandleFunc("/users/{userId}/dashboard", dashboardHandler.GetDashboard).Methods("GET")

	return r
}
