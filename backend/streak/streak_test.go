package streak

import (
	"testing"
	"time"

	"buddycheck/backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// Fixed reference instant: 2025-03-15 12:00 UTC.
var testNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func checkinDaysAgo(days int) models.Checkin {
	return models.Checkin{
		ID:        uuid.New(),
		CreatedAt: testNow.AddDate(0, 0, -days),
	}
}

func collaborator(checkins ...models.Checkin) models.Collaborator {
	userID := uuid.New()
	for i := range checkins {
		checkins[i].UserID = userID
	}
	return models.Collaborator{
		ID:       uuid.New(),
		User:     models.User{ID: userID},
		Role:     models.RoleCollaborator,
		Checkins: checkins,
	}
}

func TestCalculateEmptyProject(t *testing.T) {
	assert.Equal(t, 0, Calculate(nil, testNow, time.UTC))
	assert.Equal(t, 0, Calculate([]models.Collaborator{}, testNow, time.UTC))
}

func TestCalculateEveryoneCheckedInToday(t *testing.T) {
	collaborators := []models.Collaborator{
		collaborator(checkinDaysAgo(0)),
		collaborator(checkinDaysAgo(0)),
	}

	assert.True(t, IsTodayComplete(collaborators, testNow, time.UTC))
	assert.GreaterOrEqual(t, Calculate(collaborators, testNow, time.UTC), 1)
}

func TestCalculateTodayBonusWithoutYesterday(t *testing.T) {
	// Both checked in today, nobody yesterday: a fresh streak starts today.
	collaborators := []models.Collaborator{
		collaborator(checkinDaysAgo(0)),
		collaborator(checkinDaysAgo(0)),
	}

	assert.Equal(t, 1, Calculate(collaborators, testNow, time.UTC))
}

func TestCalculatePartialToday(t *testing.T) {
	// A checked in today and yesterday, B yesterday only. Yesterday is
	// complete, the day before is missing, today is incomplete: streak 1.
	collaborators := []models.Collaborator{
		collaborator(checkinDaysAgo(0), checkinDaysAgo(1)),
		collaborator(checkinDaysAgo(1)),
	}

	assert.False(t, IsTodayComplete(collaborators, testNow, time.UTC))
	assert.Equal(t, 1, Calculate(collaborators, testNow, time.UTC))
}

func TestCalculateLongRunWithTodayBonus(t *testing.T) {
	var first, second []models.Checkin
	for days := 0; days <= 5; days++ {
		first = append(first, checkinDaysAgo(days))
		second = append(second, checkinDaysAgo(days))
	}
	collaborators := []models.Collaborator{collaborator(first...), collaborator(second...)}

	assert.Equal(t, 6, Calculate(collaborators, testNow, time.UTC))
}

func TestCalculateBreakStopsBackwardWalk(t *testing.T) {
	// Complete on D-3 and D-4 but not D-1/D-2: older completed days never
	// count once the chain is broken.
	collaborators := []models.Collaborator{
		collaborator(checkinDaysAgo(3), checkinDaysAgo(4)),
		collaborator(checkinDaysAgo(3), checkinDaysAgo(4)),
	}

	assert.Equal(t, 0, Calculate(collaborators, testNow, time.UTC))
}

func TestCalculateIncompleteDayBreaksChain(t *testing.T) {
	// D-1 had only one of two collaborators: the walk stops immediately even
	// though D-2 was complete.
	collaborators := []models.Collaborator{
		collaborator(checkinDaysAgo(1), checkinDaysAgo(2)),
		collaborator(checkinDaysAgo(2)),
	}

	assert.Equal(t, 0, Calculate(collaborators, testNow, time.UTC))
}

func TestCalculateDuplicateSameDayRowsCountOnce(t *testing.T) {
	// A has two rows today, B has none: today must not read as complete.
	collaborators := []models.Collaborator{
		collaborator(checkinDaysAgo(0), checkinDaysAgo(0)),
		collaborator(),
	}

	assert.False(t, IsTodayComplete(collaborators, testNow, time.UTC))
	assert.Equal(t, 0, Calculate(collaborators, testNow, time.UTC))
}

func TestIsTodayCompleteEmptyProject(t *testing.T) {
	assert.False(t, IsTodayComplete(nil, testNow, time.UTC))
}

func TestIsTodayCompleteIgnoresOldCheckins(t *testing.T) {
	collaborators := []models.Collaborator{
		collaborator(checkinDaysAgo(1)),
	}

	assert.False(t, IsTodayComplete(collaborators, testNow, time.UTC))
}

func TestDayBucketingUsesProvidedLocation(t *testing.T) {
	// 23:30 UTC is already the next calendar day at UTC+3.
	zone := time.FixedZone("UTC+3", 3*60*60)
	lateEvening := time.Date(2025, 3, 14, 23, 30, 0, 0, time.UTC)
	now := time.Date(2025, 3, 15, 1, 0, 0, 0, time.UTC)

	collaborators := []models.Collaborator{
		collaborator(models.Checkin{ID: uuid.New(), CreatedAt: lateEvening}),
	}

	assert.True(t, IsTodayComplete(collaborators, now, zone))
	assert.False(t, IsTodayComplete(collaborators, now, time.UTC))
}

func TestStartOfDayUTC(t *testing.T) {
	zone := time.FixedZone("UTC-5", -5*60*60)
	instant := time.Date(2025, 3, 15, 1, 30, 0, 0, zone) // 06:30 UTC

	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), StartOfDayUTC(instant))
}
