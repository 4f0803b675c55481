package store

import (
	"context"
	"errors"
	"time"

	"buddycheck/backend/models"

	"github.com/google/uuid"
)

// ErrUserNotFound is returned by GetUserByEmail when no user row matches.
var ErrUserNotFound = errors.New("store: user not found")

// Store is the persistence boundary for the check-in tracker. Every read is a
// keyed lookup; the nested project graph is assembled above this layer, not by
// the database. Implementations do not retry; transient-failure recovery is a
// caller concern.
type Store interface {
	// ListProjectIDsByUser returns the ids of every project in which the user
	// appears as a collaborator.
	ListProjectIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)

	// ListProjectsByIDs returns project rows for the given ids, each with its
	// creator populated. An empty id set yields an empty result without
	// touching the database.
	ListProjectsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Project, error)

	// ListCollaboratorsByProjectIDs returns collaborator rows for the given
	// project ids, each with its user populated.
	ListCollaboratorsByProjectIDs(ctx context.Context, ids []uuid.UUID) ([]models.Collaborator, error)

	// ListCheckinsByProjectIDs returns all check-in rows for the given
	// project ids.
	ListCheckinsByProjectIDs(ctx context.Context, ids []uuid.UUID) ([]models.Checkin, error)

	// ListCheckinsForUserInProjectSince returns the user's check-ins in one
	// project created at or after the given instant.
	ListCheckinsForUserInProjectSince(ctx context.Context, projectID, userID uuid.UUID, since time.Time) ([]models.Checkin, error)

	InsertCheckin(ctx context.Context, checkin *models.Checkin) error
	DeleteCheckinByID(ctx context.Context, id uuid.UUID) error

	// GetUserByEmail returns ErrUserNotFound when no row matches.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUserByID returns ErrUserNotFound when no row matches.
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	InsertUser(ctx context.Context, user *models.User) error
}
