package services

import (
	"context"
	"errors"
	"log"
	"time"

	"buddycheck/backend/models"
	"buddycheck/backend/store"
	"buddycheck/backend/streak"

	"github.com/google/uuid"
)

var (
	// ErrNotSignedIn means the caller had no current user id; checked before
	// any storage call.
	ErrNotSignedIn = errors.New("services: not signed in")

	// ErrProjectNotFound means no project row exists for the requested id.
	ErrProjectNotFound = errors.New("services: project not found")
)

// ProjectService assembles the nested project graph from keyed storage reads
// and records daily check-ins. The graph is owned by the caller; mutations
// patch it in place instead of re-fetching.
type ProjectService struct {
	Store  store.Store
	Logger *log.Logger
}

func NewProjectService(st store.Store, logger *log.Logger) *ProjectService {
	return &ProjectService{Store: st, Logger: logger}
}

// LoadProjects returns every project the user collaborates on, each fully
// populated with collaborators and their check-ins. Any read failure aborts
// the whole assembly; no partial graph is returned.
func (s *ProjectService) LoadProjects(ctx context.Context, userID uuid.UUID) ([]models.Project, error) {
	projectIDs, err := s.Store.ListProjectIDsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(projectIDs) == 0 {
		// Must not reach the id-set queries: an empty IN list could read as
		// "all rows".
		return []models.Project{}, nil
	}
	return s.assembleProjects(ctx, projectIDs)
}

// LoadProject assembles the graph for a single project.
func (s *ProjectService) LoadProject(ctx context.Context, projectID uuid.UUID) (*models.Project, error) {
	projects, err := s.assembleProjects(ctx, []uuid.UUID{projectID})
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		return nil, ErrProjectNotFound
	}
	return &projects[0], nil
}

// assembleProjects performs the client-side join: projects, collaborators and
// check-ins are fetched independently by project-id set, then nested via
// lookup maps keyed on (project id, user id) and project id.
func (s *ProjectService) assembleProjects(ctx context.Context, projectIDs []uuid.UUID) ([]models.Project, error) {
	projects, err := s.Store.ListProjectsByIDs(ctx, projectIDs)
	if err != nil {
		return nil, err
	}

	collaborators, err := s.Store.ListCollaboratorsByProjectIDs(ctx, projectIDs)
	if err != nil {
		return nil, err
	}

	checkins, err := s.Store.ListCheckinsByProjectIDs(ctx, projectIDs)
	if err != nil {
		return nil, err
	}

	type membership struct {
		projectID uuid.UUID
		userID    uuid.UUID
	}

	checkinsByMembership := make(map[membership][]models.Checkin)
	for _, checkin := range checkins {
		key := membership{projectID: checkin.ProjectID, userID: checkin.UserID}
		checkinsByMembership[key] = append(checkinsByMembership[key], checkin)
	}

	collaboratorsByProject := make(map[uuid.UUID][]models.Collaborator)
	for _, collaborator := range collaborators {
		key := membership{projectID: collaborator.ProjectID, userID: collaborator.User.ID}
		collaborator.Checkins = checkinsByMembership[key]
		if collaborator.Checkins == nil {
			collaborator.Checkins = []models.Checkin{}
		}
		collaboratorsByProject[collaborator.ProjectID] = append(collaboratorsByProject[collaborator.ProjectID], collaborator)
	}

	for i := range projects {
		projects[i].Collaborators = collaboratorsByProject[projects[i].ID]
		if projects[i].Collaborators == nil {
			projects[i].Collaborators = []models.Collaborator{}
		}
	}

	return projects, nil
}

// CheckIn records one check-in for today, unless one already exists. The
// returned checkin is nil (with nil error) when the user had already checked
// in today; the second call performs no write. On success the new row is
// appended to the matching collaborator in the caller's graph.
func (s *ProjectService) CheckIn(ctx context.Context, projects []models.Project, projectID, userID uuid.UUID) (*models.Checkin, error) {
	if userID == uuid.Nil {
		return nil, ErrNotSignedIn
	}

	now := time.Now()
	existing, err := s.Store.ListCheckinsForUserInProjectSince(ctx, projectID, userID, streak.StartOfDayUTC(now))
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		s.Logger.Printf("check-in skipped, already checked in today: project=%s user=%s", projectID, userID)
		return nil, nil
	}

	checkin := &models.Checkin{
		ID:        uuid.New(),
		ProjectID: projectID,
		UserID:    userID,
		CreatedAt: now.UTC(),
	}
	if err := s.Store.InsertCheckin(ctx, checkin); err != nil {
		return nil, err
	}

	s.appendLocal(projects, checkin)
	return checkin, nil
}

// UnCheckIn deletes today's check-in, if any, and removes it from the
// caller's graph. Nothing to delete is a benign no-op, reported as nil/nil.
func (s *ProjectService) UnCheckIn(ctx context.Context, projects []models.Project, projectID, userID uuid.UUID) (*models.Checkin, error) {
	if userID == uuid.Nil {
		return nil, ErrNotSignedIn
	}

	existing, err := s.Store.ListCheckinsForUserInProjectSince(ctx, projectID, userID, streak.StartOfDayUTC(time.Now()))
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		s.Logger.Printf("un-check-in skipped, nothing to delete: project=%s user=%s", projectID, userID)
		return nil, nil
	}

	checkin := existing[0]
	if err := s.Store.DeleteCheckinByID(ctx, checkin.ID); err != nil {
		return nil, err
	}

	s.removeLocal(projects, projectID, userID, checkin.ID)
	return &checkin, nil
}

// appendLocal patches the in-memory graph after a successful insert. A
// missing collaborator means the graph is stale; the patch is skipped and the
// row will appear on the next full load.
func (s *ProjectService) appendLocal(projects []models.Project, checkin *models.Checkin) {
	for i := range projects {
		if projects[i].ID != checkin.ProjectID {
			continue
		}
		for j := range projects[i].Collaborators {
			if projects[i].Collaborators[j].User.ID == checkin.UserID {
				projects[i].Collaborators[j].Checkins = append(projects[i].Collaborators[j].Checkins, *checkin)
				return
			}
		}
	}
	s.Logger.Printf("local graph patch skipped, collaborator not loaded: project=%s user=%s", checkin.ProjectID, checkin.UserID)
}

func (s *ProjectService) removeLocal(projects []models.Project, projectID, userID, checkinID uuid.UUID) {
	for i := range projects {
		if projects[i].ID != projectID {
			continue
		}
		for j := range projects[i].Collaborators {
			if projects[i].Collaborators[j].User.ID != userID {
				continue
			}
			checkins := projects[i].Collaborators[j].Checkins
			for k := range checkins {
				if checkins[k].ID == checkinID {
					projects[i].Collaborators[j].Checkins = append(checkins[:k], checkins[k+1:]...)
					return
				}
			}
		}
	}
}
