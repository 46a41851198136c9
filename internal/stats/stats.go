// Package stats derives display metrics from a user's challenges and
// projects. Every function is pure, total and independent of input
// ordering: empty collections, non-positive goals and future start dates
// all produce defined zero results rather than errors.
package stats

import (
	"math"
	"time"

	"github.com/hundreddays-io/hundreddays/internal/models"
)

// Milestone is one fractional-goal threshold for progress display.
type Milestone struct {
	Threshold int  `json:"threshold"`
	Reached   bool `json:"reached"`
}

// CompletedCount returns how many projects have completed status.
func CompletedCount(projects []*models.Project) int {
	n := 0
	for _, p := range projects {
		if p.Status == models.StatusCompleted {
			n++
		}
	}
	return n
}

// ProgressPercentage returns completed/goal as a percentage. A goal of zero
// or less means progress is undefined and reports 0.
func ProgressPercentage(projects []*models.Project, goal int) float64 {
	if goal <= 0 {
		return 0
	}
	return float64(CompletedCount(projects)) / float64(goal) * 100
}

// DaysElapsed returns the number of whole days since start, rounded up.
// A zero or future start reports 0.
func DaysElapsed(start, now time.Time) int {
	if start.IsZero() || start.After(now) {
		return 0
	}
	return int(math.Ceil(now.Sub(start).Hours() / 24))
}

// DailyAverage returns completed projects per elapsed day, 0 when no days
// have elapsed.
func DailyAverage(completed, daysElapsed int) float64 {
	if daysElapsed <= 0 {
		return 0
	}
	return float64(completed) / float64(daysElapsed)
}

// Milestones returns the 25/50/75/100% thresholds of a goal, each marked
// reached once completed meets it.
func Milestones(goal, completed int) []Milestone {
	thresholds := []int{
		int(math.Floor(float64(goal) * 0.25)),
		int(math.Floor(float64(goal) * 0.5)),
		int(math.Floor(float64(goal) * 0.75)),
		goal,
	}
	milestones := make([]Milestone, len(thresholds))
	for i, t := range thresholds {
		milestones[i] = Milestone{Threshold: t, Reached: completed >= t}
	}
	return milestones
}

// TechStackDistribution counts tag occurrences across all projects. A
// project contributes once per tag in its tech stack.
func TechStackDistribution(projects []*models.Project) map[string]int {
	dist := map[string]int{}
	for _, p := range projects {
		for _, tag := range p.TechStack {
			dist[tag]++
		}
	}
	return dist
}
