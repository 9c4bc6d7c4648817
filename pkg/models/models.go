package models

import (
	"encoding/json"
	"time"
)

// Record kinds. Used as schema names by the validator and as the
// partition key of the SQLite document table.
const (
	KindUser                = "user"
	KindProject             = "project"
	KindProjectStage        = "project_stage"
	KindProjectBranch       = "project_branch"
	KindProjectTask         = "project_task"
	KindSkill               = "skill"
	KindAchievement         = "achievement"
	KindUserAchievement     = "user_achievement"
	KindLearningPath        = "learning_path"
	KindActivity            = "activity"
	KindRecruitmentStage    = "recruitment_stage"
	KindRecruitmentProgress = "recruitment_progress"
)

// Project statuses.
const (
	ProjectPlanning  = "planning"
	ProjectActive    = "active"
	ProjectCompleted = "completed"
)

// Task statuses.
const (
	TaskTodo       = "todo"
	TaskInProgress = "in_progress"
	TaskCompleted  = "completed"
)

// Recruitment progress statuses.
const (
	RecruitmentPending    = "pending"
	RecruitmentInProgress = "in_progress"
	RecruitmentCompleted  = "completed"
	RecruitmentFailed     = "failed"
)

type User struct {
	ID               int64      `json:"id"`
	Username         string     `json:"username"`
	Email            string     `json:"email"`
	Name             string     `json:"name"`
	RecruitmentStage string     `json:"recruitmentStage"`
	XP               int64      `json:"xp"`
	Level            int        `json:"level"`
	Streak           int        `json:"streak"`
	LastActive       time.Time  `json:"lastActive"`
	Avatar           *string    `json:"avatar"`
	BecRole          *string    `json:"becRole"`
	JoinedDate       *time.Time `json:"joinedDate"`
	CreatedAt        time.Time  `json:"createdAt"`
}

// NewUser returns a User carrying the creation defaults. Decoding a
// payload into it keeps the defaults for absent keys.
func NewUser() User {
	return User{RecruitmentStage: "application", Level: 1}
}

type Project struct {
	ID              int64      `json:"id"`
	UserID          int64      `json:"userId"`
	Name            string     `json:"name"`
	Description     *string    `json:"description"`
	Status          string     `json:"status"`
	CurrentStage    int        `json:"currentStage"`
	TotalStages     int        `json:"totalStages"`
	XPReward        int64      `json:"xpReward"`
	StartDate       time.Time  `json:"startDate"`
	ExpectedEndDate *time.Time `json:"expectedEndDate"`
	CompletedAt     *time.Time `json:"completedAt"`
}

func NewProject() Project {
	return Project{Status: ProjectPlanning, TotalStages: 1, XPReward: 1000}
}

type ProjectStage struct {
	ID          int64      `json:"id"`
	ProjectID   int64      `json:"projectId"`
	StageNumber int        `json:"stageNumber"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	XPReward    int64      `json:"xpReward"`
	IsCompleted bool       `json:"isCompleted"`
	CompletedAt *time.Time `json:"completedAt"`
}

func NewProjectStage() ProjectStage {
	return ProjectStage{XPReward: 100}
}

// ProjectBranch is a grouping node of a project's work tree.
type ProjectBranch struct {
	ID             int64      `json:"id"`
	ProjectID      int64      `json:"projectId"`
	ParentBranchID *int64     `json:"parentBranchId"`
	Name           string     `json:"name"`
	Description    *string    `json:"description"`
	Position       int        `json:"position"`
	Color          string     `json:"color"`
	IsCompleted    bool       `json:"isCompleted"`
	CompletedAt    *time.Time `json:"completedAt"`
}

func NewProjectBranch() ProjectBranch {
	return ProjectBranch{Color: "#dc2626"}
}

// ProjectTask is a leaf work item hanging off a branch.
type ProjectTask struct {
	ID             int64      `json:"id"`
	BranchID       int64      `json:"branchId"`
	AssignedUserID *int64     `json:"assignedUserId"`
	Name           string     `json:"name"`
	Description    *string    `json:"description"`
	Type           string     `json:"type"`
	Priority       string     `json:"priority"`
	Status         string     `json:"status"`
	DueDate        *time.Time `json:"dueDate"`
	XPReward       int64      `json:"xpReward"`
	CompletedAt    *time.Time `json:"completedAt"`
	CreatedAt      time.Time  `json:"createdAt"`
}

func NewProjectTask() ProjectTask {
	return ProjectTask{Type: "task", Priority: "medium", Status: TaskTodo, XPReward: 50}
}

type Skill struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"userId"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Proficiency int    `json:"proficiency"`
	Level       string `json:"level"`
	XPEarned    int64  `json:"xpEarned"`
}

func NewSkill() Skill {
	return Skill{Level: "beginner"}
}

// Achievement is an immutable catalog entry.
type Achievement struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Icon        string          `json:"icon"`
	Category    string          `json:"category"`
	XPReward    int64           `json:"xpReward"`
	Condition   json.RawMessage `json:"condition"`
}

// UserAchievement records one unlock of a catalog achievement by a user.
type UserAchievement struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"userId"`
	AchievementID int64     `json:"achievementId"`
	UnlockedAt    time.Time `json:"unlockedAt"`
}

// UnlockedAchievement is an unlock joined with its catalog entry.
// Achievement is nil when the catalog no longer knows the id.
type UnlockedAchievement struct {
	UserAchievement
	Achievement *Achievement `json:"achievement"`
}

type LearningPath struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"userId"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Duration    *string         `json:"duration"`
	Progress    int             `json:"progress"`
	IsActive    bool            `json:"isActive"`
	Steps       json.RawMessage `json:"steps"`
	CreatedAt   time.Time       `json:"createdAt"`
}

func NewLearningPath() LearningPath {
	return LearningPath{IsActive: true}
}

type Activity struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"userId"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	XPGained    int64           `json:"xpGained"`
	Metadata    json.RawMessage `json:"metadata"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// RecruitmentStage is a catalog step of the recruitment pipeline.
type RecruitmentStage struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description"`
	Position    int             `json:"position"`
	XPReward    int64           `json:"xpReward"`
	Resources   json.RawMessage `json:"resources"`
}

// RecruitmentProgress tracks one user's state in one recruitment stage.
type RecruitmentProgress struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"userId"`
	StageID     int64      `json:"stageId"`
	Status      string     `json:"status"`
	Score       *int       `json:"score"`
	Feedback    *string    `json:"feedback"`
	CompletedAt *time.Time `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func NewRecruitmentProgress() RecruitmentProgress {
	return RecruitmentProgress{Status: RecruitmentPending}
}
