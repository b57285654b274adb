package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/openblogdev/blogapi/internal/dto"
	"github.com/openblogdev/blogapi/internal/model"
	"github.com/openblogdev/blogapi/internal/permission"
	"github.com/openblogdev/blogapi/internal/repository"
	"github.com/openblogdev/blogapi/pkg/apperror"
)

type UserService interface {
	Register(ctx context.Context, req dto.RegisterRequest, version dto.Version) (*dto.UserDetail, error)
	List(ctx context.Context, actor *model.User, opts repository.ListOptions) ([]dto.UserListItem, int64, error)
	Get(ctx context.Context, actor *model.User, id uuid.UUID, version dto.Version) (*dto.UserDetail, error)
	Update(ctx context.Context, actor *model.User, id uuid.UUID, req dto.UpdateUserRequest, version dto.Version) (*dto.UserDetail, error)
	Delete(ctx context.Context, actor *model.User, id uuid.UUID) error
}

type userService struct {
	users    repository.UserRepository
	posts    repository.PostRepository
	comments repository.CommentRepository
}

func NewUserService(
	users repository.UserRepository,
	posts repository.PostRepository,
	comments repository.CommentRepository,
) UserService {
	return &userService{users: users, posts: posts, comments: comments}
}

func (s *userService) Register(ctx context.Context, req dto.RegisterRequest, version dto.Version) (*dto.UserDetail, error) {
	if err := s.checkUnique(ctx, req.Username, req.Email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PhoneNumber:  req.PhoneNumber,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	detail := dto.NewUserDetail(user, 0, version)
	return &detail, nil
}

func (s *userService) checkUnique(ctx context.Context, username, email string) error {
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return apperror.Validation(fmt.Errorf("username: %q is already taken", username))
	} else if !errors.Is(err, gorm.ErrRecordNotFound) && !errors.Is(err, apperror.ErrNotFound) {
		return err
	}
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return apperror.Validation(fmt.Errorf("email: %q is already registered", email))
	} else if !errors.Is(err, gorm.ErrRecordNotFound) && !errors.Is(err, apperror.ErrNotFound) {
		return err
	}
	return nil
}

func (s *userService) List(ctx context.Context, actor *model.User, opts repository.ListOptions) ([]dto.UserListItem, int64, error) {
	if err := permission.AdminOnly(actor, true, uuid.Nil); err != nil {
		return nil, 0, err
	}

	users, total, err := s.users.List(ctx, opts)
	if err != nil {
		return nil, 0, err
	}

	items := make([]dto.UserListItem, 0, len(users))
	for _, user := range users {
		postsCount, err := s.posts.CountByAuthor(ctx, user.ID)
		if err != nil {
			return nil, 0, err
		}
		commentsCount, err := s.comments.CountByAuthor(ctx, user.ID)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, dto.NewUserListItem(user, postsCount, commentsCount))
	}
	return items, total, nil
}

func (s *userService) Get(ctx context.Context, actor *model.User, id uuid.UUID, version dto.Version) (*dto.UserDetail, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := permission.SelfOrAdmin(actor, true, user.ID); err != nil {
		return nil, err
	}
	return s.mapDetail(ctx, user, version)
}

func (s *userService) Update(ctx context.Context, actor *model.User, id uuid.UUID, req dto.UpdateUserRequest, version dto.Version) (*dto.UserDetail, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := permission.SelfOrAdmin(actor, false, user.ID); err != nil {
		return nil, err
	}

	if req.Username != user.Username {
		if _, err := s.users.FindByUsername(ctx, req.Username); err == nil {
			return nil, apperror.Validation(fmt.Errorf("username: %q is already taken", req.Username))
		} else if !errors.Is(err, gorm.ErrRecordNotFound) && !errors.Is(err, apperror.ErrNotFound) {
			return nil, err
		}
	}

	user.Username = req.Username
	user.Email = req.Email
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.PhoneNumber = req.PhoneNumber

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return s.mapDetail(ctx, user, version)
}

func (s *userService) Delete(ctx context.Context, actor *model.User, id uuid.UUID) error {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := permission.SelfOrAdmin(actor, false, user.ID); err != nil {
		return err
	}
	return s.users.Delete(ctx, id)
}

func (s *userService) mapDetail(ctx context.Context, user *model.User, version dto.Version) (*dto.UserDetail, error) {
	commentsCount, err := s.comments.CountByAuthor(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	detail := dto.NewUserDetail(user, commentsCount, version)
	return &detail, nil
}
