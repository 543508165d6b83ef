package service

import (
	"time"

	"tasktracker/internal/domain"
)

// UpcomingLimit is the number of tasks shown in the dashboard preview.
const UpcomingLimit = 3

// Timeline is the schedule view of a user's tasks.
type Timeline struct {
	Overdue  []*domain.Task
	Today    []*domain.Task
	Tomorrow []*domain.Task
	Upcoming []*domain.Task
}

// calendarDay strips the time of day and location from t. Stored due dates
// carry wall-clock time only, so comparison happens on the civil date.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// BucketTasks partitions tasks by due date relative to today. Undated tasks
// and completed overdue tasks land in no bucket. Input order is preserved.
func BucketTasks(tasks []*domain.Task, today time.Time) Timeline {
	var tl Timeline
	day := calendarDay(today)
	tomorrow := day.AddDate(0, 0, 1)

	for _, t := range tasks {
		if t.DueDate == nil {
			continue
		}
		due := calendarDay(*t.DueDate)
		switch {
		case due.Before(day):
			if !t.IsCompleted() {
				tl.Overdue = append(tl.Overdue, t)
			}
		case due.Equal(day):
			tl.Today = append(tl.Today, t)
		case due.Equal(tomorrow):
			tl.Tomorrow = append(tl.Tomorrow, t)
		default:
			tl.Upcoming = append(tl.Upcoming, t)
		}
	}
	return tl
}

// UpcomingTasks returns up to limit pending tasks due strictly after today,
// in input order.
func UpcomingTasks(tasks []*domain.Task, today time.Time, limit int) []*domain.Task {
	day := calendarDay(today)
	var out []*domain.Task
	for _, t := range tasks {
		if len(out) >= limit {
			break
		}
		if t.DueDate == nil || t.IsCompleted() {
			continue
		}
		if calendarDay(*t.DueDate).After(day) {
			out = append(out, t)
		}
	}
	return out
}

// ComputeStats summarises a user's tasks. CompletionRate is an integer
// percentage, 0 for an empty list.
func ComputeStats(tasks []*domain.Task) domain.TaskStats {
	var st domain.TaskStats
	st.Total = len(tasks)
	for _, t := range tasks {
		switch t.Status {
		case domain.TaskStatusCompleted:
			st.Completed++
		case domain.TaskStatusPending:
			st.Pending++
		}
	}
	if st.Total > 0 {
		st.CompletionRate = 100 * st.Completed / st.Total
	}
	return st
}
