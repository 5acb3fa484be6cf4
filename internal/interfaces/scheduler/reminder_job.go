package scheduler

import (
	"context"
	"time"

	"meusaldo/internal/domain/caldate"
	"meusaldo/internal/domain/reminder"
)

// ReminderJob runs the daily due-date check for one user.
type ReminderJob struct {
	userID    string
	reminders *reminder.Service
	now       func() time.Time
}

// NewReminderJob creates a reminder job for the given user.
func NewReminderJob(userID string, reminders *reminder.Service) *ReminderJob {
	return &ReminderJob{
		userID:    userID,
		reminders: reminders,
		now:       time.Now,
	}
}

// Execute runs the reminder check as of today's local calendar date.
func (j *ReminderJob) Execute(ctx context.Context) error {
	today := caldate.FromTime(j.now())
	return j.reminders.RunDailyCheck(ctx, j.userID, today)
}

// UserID returns the user this job checks.
func (j *ReminderJob) UserID() string {
	return j.userID
}

// Description returns a human-readable description of this job.
func (j *ReminderJob) Description() string {
	return "due-date reminder check"
}
