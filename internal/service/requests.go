package service

import "github.com/Biriato/ProyectoWeb/internal/models"

// RegisterRequest is the self-service sign-up payload.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=1"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,password"`
}

// CreateUserRequest is the admin payload for creating an account.
type CreateUserRequest struct {
	Name     string      `json:"name" binding:"required,min=1"`
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,password"`
	Role     models.Role `json:"role" binding:"omitempty,role"`
}

// LoginRequest holds the login credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordRequest replaces the caller's password.
type ChangePasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,password"`
}

// UpdateProfileRequest changes the caller's own name or email.
type UpdateProfileRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1"`
	Email *string `json:"email" binding:"omitempty,email"`
}

// UpdateUserRequest is the admin payload for editing an account.
type UpdateUserRequest struct {
	Name     *string      `json:"name" binding:"omitempty,min=1"`
	Email    *string      `json:"email" binding:"omitempty,email"`
	Role     *models.Role `json:"role" binding:"omitempty,role"`
	Password *string      `json:"password" binding:"omitempty,password"`
}

// CreateSeriesRequest is the admin payload for a new catalog entry.
type CreateSeriesRequest struct {
	Title       string              `json:"title" binding:"required,min=1"`
	Description *string             `json:"description"`
	Genre       *string             `json:"genre"`
	Year        *int                `json:"year" binding:"omitempty,gte=1900,maxyear"`
	ImageURL    *string             `json:"imageUrl" binding:"omitempty,url"`
	Episodes    *int                `json:"episodes" binding:"omitempty,gt=0"`
	Status      models.SeriesStatus `json:"status" binding:"required,seriesstatus"`
	StartedAt   *string             `json:"startedAt" binding:"omitempty,date"`
	EndedAt     *string             `json:"endedAt" binding:"omitempty,date"`
	Studio      *string             `json:"studio"`
	Source      *string             `json:"source"`
	Genres      []string            `json:"genres" binding:"max=3,dive,min=1,max=50"`
}

// UpdateSeriesRequest is a partial catalog update; nil fields are left unchanged.
type UpdateSeriesRequest struct {
	Title       *string              `json:"title" binding:"omitempty,min=1"`
	Description *string              `json:"description"`
	Genre       *string              `json:"genre"`
	Year        *int                 `json:"year" binding:"omitempty,gte=1900,maxyear"`
	ImageURL    *string              `json:"imageUrl" binding:"omitempty,url"`
	Episodes    *int                 `json:"episodes" binding:"omitempty,gt=0"`
	Status      *models.SeriesStatus `json:"status" binding:"omitempty,seriesstatus"`
	StartedAt   *string              `json:"startedAt" binding:"omitempty,date"`
	EndedAt     *string              `json:"endedAt" binding:"omitempty,date"`
	Studio      *string              `json:"studio"`
	Source      *string              `json:"source"`
	Genres      []string             `json:"genres" binding:"omitempty,max=3,dive,min=1,max=50"`
}

// AddListEntryRequest adds a series to the caller's list.
type AddListEntryRequest struct {
	SeriesID int64 `json:"seriesId" binding:"required,gt=0"`
	ListEntryFields
}

// UpdateListEntryRequest changes an existing list entry.
type UpdateListEntryRequest struct {
	ListEntryFields
}

// ListEntryFields are the mutable attributes of a list entry. Rating is only
// kept when Status is VISTA.
type ListEntryFields struct {
	Status         models.ListStatus `json:"status" binding:"required,liststatus"`
	Rating         *int              `json:"rating"`
	StartedAt      *string           `json:"startedAt" binding:"omitempty,date"`
	EndedAt        *string           `json:"endedAt" binding:"omitempty,date"`
	CurrentEpisode *int              `json:"currentEpisode" binding:"omitempty,gte=0"`
}
