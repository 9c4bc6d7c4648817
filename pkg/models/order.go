package models

import (
	"cmp"
	"slices"
)

// Ordering rules shared by every store implementation. Timestamp orders
// break ties on id so that equal timestamps still sort deterministically.

func SortStages(s []ProjectStage) {
	slices.SortStableFunc(s, func(a, b ProjectStage) int {
		return cmp.Compare(a.StageNumber, b.StageNumber)
	})
}

func SortBranches(b []ProjectBranch) {
	slices.SortStableFunc(b, func(x, y ProjectBranch) int {
		if c := cmp.Compare(x.Position, y.Position); c != 0 {
			return c
		}
		return cmp.Compare(x.ID, y.ID)
	})
}

func SortRecruitmentStages(s []RecruitmentStage) {
	slices.SortStableFunc(s, func(a, b RecruitmentStage) int {
		return cmp.Compare(a.Position, b.Position)
	})
}

// SortUnlocks orders unlocks most recent first.
func SortUnlocks(u []UserAchievement) {
	slices.SortStableFunc(u, func(a, b UserAchievement) int {
		if c := b.UnlockedAt.Compare(a.UnlockedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})
}

// SortActivities orders activities most recent first.
func SortActivities(a []Activity) {
	slices.SortStableFunc(a, func(x, y Activity) int {
		if c := y.CreatedAt.Compare(x.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(y.ID, x.ID)
	})
}
