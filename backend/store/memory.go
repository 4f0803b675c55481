package store

import (
	"context"
	"sync"
	"time"

	"buddycheck/backend/models"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store for tests and local development. Rows are
// held in normalized slices, like the database tables they stand in for.
type MemoryStore struct {
	mu            sync.Mutex
	Users         []models.User
	Projects      []models.Project
	Collaborators []models.Collaborator
	Checkins      []models.Checkin
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) ListProjectIDsByUser(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []uuid.UUID
	for _, collaborator := range s.Collaborators {
		if collaborator.UserID == userID {
			ids = append(ids, collaborator.ProjectID)
		}
	}
	return ids, nil
}

func (s *MemoryStore) ListProjectsByIDs(_ context.Context, ids []uuid.UUID) ([]models.Project, error) {
	if len(ids) == 0 {
		return []models.Project{}, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var projects []models.Project
	for _, project := range s.Projects {
		if wanted[project.ID] {
			project.Collaborators = nil
			projects = append(projects, project)
		}
	}
	return projects, nil
}

func (s *MemoryStore) ListCollaboratorsByProjectIDs(_ context.Context, ids []uuid.UUID) ([]models.Collaborator, error) {
	if len(ids) == 0 {
		return []models.Collaborator{}, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var collaborators []models.Collaborator
	for _, collaborator := range s.Collaborators {
		if wanted[collaborator.ProjectID] {
			collaborator.Checkins = nil
			collaborators = append(collaborators, collaborator)
		}
	}
	return collaborators, nil
}

func (s *MemoryStore) ListCheckinsByProjectIDs(_ context.Context, ids []uuid.UUID) ([]models.Checkin, error) {
	if len(ids) == 0 {
		return []models.Checkin{}, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	var checkins []models.Checkin
	for _, checkin := range s.Checkins {
		if wanted[checkin.ProjectID] {
			checkins = append(checkins, checkin)
		}
	}
	return checkins, nil
}

func (s *MemoryStore) ListCheckinsForUserInProjectSince(_ context.Context, projectID, userID uuid.UUID, since time.Time) ([]models.Checkin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var checkins []models.Checkin
	for _, checkin := range s.Checkins {
		if checkin.ProjectID == projectID && checkin.UserID == userID && !checkin.CreatedAt.Before(since) {
			checkins = append(checkins, checkin)
		}
	}
	return checkins, nil
}

func (s *MemoryStore) InsertCheckin(_ context.Context, checkin *models.Checkin) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Checkins = append(s.Checkins, *checkin)
	return nil
}

func (s *MemoryStore) DeleteCheckinByID(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.Checkins {
		if s.Checkins[i].ID == id {
			s.Checkins = append(s.Checkins[:i], s.Checkins[i+1:]...)
			return nil
		}
	}
	// Deleting an absent row is not an error, matching SQL DELETE semantics.
	return nil
}

func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.Users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (s *MemoryStore) GetUserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.Users {
		if user.ID == id {
			u := user
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (s *MemoryStore) InsertUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Users = append(s.Users, *user)
	return nil
}
