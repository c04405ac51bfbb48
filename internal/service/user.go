package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Biriato/ProyectoWeb/internal/models"
	"github.com/Biriato/ProyectoWeb/internal/repository"
	"github.com/Biriato/ProyectoWeb/internal/validation"
)

// Default page size of the admin user listing.
const DefaultUserPageSize = 10

// UserPage is one page of the admin user listing.
type UserPage struct {
	Data       []models.User `json:"data"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"totalPages"`
	TotalItems int64         `json:"totalItems"`
}

// UserService holds the administrative user operations.
type UserService interface {
	Create(ctx context.Context, req CreateUserRequest) (*models.User, error)
	Page(ctx context.Context, filter models.UserFilter, page, limit int) (*UserPage, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	Update(ctx context.Context, id int64, req UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

type userService struct {
	store  repository.Store
	scores ScoreRecomputer
}

// NewUserService creates a new UserService instance.
func NewUserService(store repository.Store, scores ScoreRecomputer) UserService {
	return &userService{store: store, scores: scores}
}

func (s *userService) Create(ctx context.Context, req CreateUserRequest) (*models.User, error) {
	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	return createUser(ctx, s.store.Users(), req.Name, req.Email, req.Password, role)
}

func (s *userService) Page(ctx context.Context, filter models.UserFilter, page, limit int) (*UserPage, error) {
	if filter.Role != "" && !filter.Role.Valid() {
		return nil, validation.New("role", "invalid role")
	}
	filter.Name = strings.TrimSpace(filter.Name)
	filter.Email = strings.TrimSpace(filter.Email)
	page, limit = normalizePage(page, limit, DefaultUserPageSize)

	users, total, err := s.store.Users().Page(ctx, filter, models.Offset(page, limit), limit)
	if err != nil {
		return nil, err
	}

	pagination := models.NewPagination(total, page, limit)
	return &UserPage{
		Data:       users,
		Page:       page,
		Limit:      limit,
		TotalPages: pagination.TotalPages,
		TotalItems: total,
	}, nil
}

func (s *userService) Get(ctx context.Context, id int64) (*models.User, error) {
	return findUser(ctx, s.store.Users(), id)
}

func (s *userService) Update(ctx context.Context, id int64, req UpdateUserRequest) (*models.User, error) {
	user, err := findUser(ctx, s.store.Users(), id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		user.Email = normalizeEmail(*req.Email)
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.Password != nil {
		hash, err := hashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}

	if err := saveUser(ctx, s.store.Users(), user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the user with its list and recomputes the score of every
// series the user had rated.
func (s *userService) Delete(ctx context.Context, id int64) error {
	return s.store.Transaction(ctx, func(tx repository.Store) error {
		var events []RatingChanged
		list, err := tx.Lists().FindByUserID(ctx, id)
		switch {
		case err == nil:
			seriesIDs, err := tx.Lists().RatedSeriesIDs(ctx, list.ID)
			if err != nil {
				return err
			}
			for _, seriesID := range seriesIDs {
				events = append(events, RatingChanged{SeriesID: seriesID})
			}
		case !errors.Is(err, repository.ErrNotFound):
			return err
		}

		if err := tx.Users().Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		return publish(ctx, tx, s.scores, events...)
	})
}
