// Package streak computes, for one project, the run of consecutive calendar
// days on which every collaborator checked in. The reference instant and
// location are explicit parameters so callers (and tests) control what
// "today" means.
package streak

import (
	"time"

	"buddycheck/backend/models"

	"github.com/google/uuid"
)

const dayKeyLayout = "2006-01-02"

// Calculate returns the current streak for a project's collaborators.
//
// A day is complete when every collaborator has at least one check-in on it.
// The walk starts at yesterday and moves backward until the first incomplete
// day. Today is evaluated separately: when complete it adds one, even if
// yesterday broke the chain, because a fresh streak can start today.
func Calculate(collaborators []models.Collaborator, now time.Time, loc *time.Location) int {
	if len(collaborators) == 0 {
		return 0
	}

	counts := dailyCompletionCounts(collaborators, loc)
	total := len(collaborators)

	streak := 0
	if counts[dayKey(now, loc)] == total {
		streak++
	}

	day := now.In(loc).AddDate(0, 0, -1)
	for counts[dayKey(day, loc)] == total {
		streak++
		day = day.AddDate(0, 0, -1)
	}

	return streak
}

// IsTodayComplete reports whether every collaborator has checked in on the
// calendar day containing now.
func IsTodayComplete(collaborators []models.Collaborator, now time.Time, loc *time.Location) bool {
	if len(collaborators) == 0 {
		return false
	}
	counts := dailyCompletionCounts(collaborators, loc)
	return counts[dayKey(now, loc)] == len(collaborators)
}

// StartOfDayUTC returns midnight UTC of the day containing t. Check-in writes
// and the "already checked in today" query are scoped by this boundary, which
// matches the stored UTC instants. Streak bucketing above deliberately uses a
// caller-supplied location instead; see the calendar note in DESIGN.md.
func StartOfDayUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// dailyCompletionCounts maps each calendar day to the number of distinct
// collaborators with at least one check-in on it. Same-day duplicate rows for
// one collaborator count once.
func dailyCompletionCounts(collaborators []models.Collaborator, loc *time.Location) map[string]int {
	seen := make(map[string]map[uuid.UUID]struct{})
	for _, collaborator := range collaborators {
		for _, checkin := range collaborator.Checkins {
			key := dayKey(checkin.CreatedAt, loc)
			if seen[key] == nil {
				seen[key] = make(map[uuid.UUID]struct{})
			}
			seen[key][collaborator.User.ID] = struct{}{}
		}
	}

	counts := make(map[string]int, len(seen))
	for key, users := range seen {
		counts[key] = len(users)
	}
	return counts
}

func dayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dayKeyLayout)
}
