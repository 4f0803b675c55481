package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"buddycheck/backend/config"
	"buddycheck/backend/models"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type gormStore struct {
	db *gorm.DB
}

// Open connects to Postgres using the given config, runs migrations and
// returns a ready Store.
func Open(cfg *config.Config) (Store, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Collaborator{},
		&models.Checkin{},
	); err != nil {
		return nil, err
	}

	return &gormStore{db: db}, nil
}

// NewGormStore wraps an existing connection, primarily for tests.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) ListProjectIDsByUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.db.WithContext(ctx).
		Model(&models.Collaborator{}).
		Where("user_id = ?", userID).
		Pluck("project_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *gormStore) ListProjectsByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Project, error) {
	// An empty IN list must not fall through to an unscoped query.
	if len(ids) == 0 {
		return []models.Project{}, nil
	}
	var projects []models.Project
	err := s.db.WithContext(ctx).
		Preload("CreatedBy").
		Where("id IN ?", ids).
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *gormStore) ListCollaboratorsByProjectIDs(ctx context.Context, ids []uuid.UUID) ([]models.Collaborator, error) {
	if len(ids) == 0 {
		return []models.Collaborator{}, nil
	}
	var collaborators []models.Collaborator
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("project_id IN ?", ids).
		Find(&collaborators).Error
	if err != nil {
		return nil, err
	}
	return collaborators, nil
}

func (s *gormStore) ListCheckinsByProjectIDs(ctx context.Context, ids []uuid.UUID) ([]models.Checkin, error) {
	if len(ids) == 0 {
		return []models.Checkin{}, nil
	}
	var checkins []models.Checkin
	err := s.db.WithContext(ctx).
		Where("project_id IN ?", ids).
		Find(&checkins).Error
	if err != nil {
		return nil, err
	}
	return checkins, nil
}

func (s *gormStore) ListCheckinsForUserInProjectSince(ctx context.Context, projectID, userID uuid.UUID, since time.Time) ([]models.Checkin, error) {
	var checkins []models.Checkin
	err := s.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ? AND created_at >= ?", projectID, userID, since).
		Find(&checkins).Error
	if err != nil {
		return nil, err
	}
	return checkins, nil
}

func (s *gormStore) InsertCheckin(ctx context.Context, checkin *models.Checkin) error {
	return s.db.WithContext(ctx).Create(checkin).Error
}

func (s *gormStore) DeleteCheckinByID(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Delete(&models.Checkin{}, "id = ?", id).Error
}

func (s *gormStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *gormStore) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *gormStore) InsertUser(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}
