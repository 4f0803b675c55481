package models

import (
	"time"

	"github.com/google/uuid"
)

// Collaborator roles. A project has exactly one owner row; everyone else
// joins as a collaborator.
const (
	RoleOwner        = "owner"
	RoleCollaborator = "collaborator"
)

// Checkin is one timestamped completion record for a (project, user) pair.
// Storage does not enforce one row per calendar day; read logic must treat
// same-day duplicates as a single completion.
type Checkin struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;index;not null" json:"project_id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Collaborator is a (project, user) membership row. Checkins is populated in
// memory by the aggregation service, restricted to this project, and is never
// written by GORM.
type Collaborator struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_collaborators_project_user;not null" json:"project_id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_collaborators_project_user;not null" json:"-"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	Role      string    `gorm:"default:collaborator" json:"role"`
	JoinedAt  time.Time `json:"joined_at"`
	Checkins  []Checkin `gorm:"-" json:"checkins"`
}

// Project is a shared check-in group. Collaborators is assembled in memory
// from independent table reads; see services.ProjectService.
type Project struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title         string         `gorm:"not null" json:"title"`
	Description   *string        `json:"description,omitempty"`
	CreatedByID   uuid.UUID      `gorm:"type:uuid;not null" json:"-"`
	CreatedBy     User           `gorm:"foreignKey:CreatedByID" json:"created_by"`
	CreatedAt     time.Time      `json:"created_at"`
	Collaborators []Collaborator `gorm:"-" json:"collaborators"`
}
