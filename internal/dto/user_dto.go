package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/openblogdev/blogapi/internal/model"
)

type RegisterRequest struct {
	Username        string `json:"username" binding:"required,min=3,max=50"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" binding:"required,eqfield=Password"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	PhoneNumber     string `json:"phone_number"`
}

type UpdateUserRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=50"`
	Email       string `json:"email" binding:"required,email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int64     `json:"expires_in"`
	User        UserBrief `json:"user"`
}

type UserBrief struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

type AuthorSummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Slug     string    `json:"slug"`
}

type UserListItem struct {
	ID            uuid.UUID `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	PostsCount    int64     `json:"posts_count"`
	CommentsCount int64     `json:"comments_count"`
}

// UserDetail is version dependent: phone_number only exists from V2 on.
type UserDetail struct {
	ID            uuid.UUID     `json:"id"`
	Username      string        `json:"username"`
	Email         string        `json:"email"`
	FirstName     string        `json:"first_name"`
	LastName      string        `json:"last_name"`
	PhoneNumber   *string       `json:"phone_number,omitempty"`
	DateJoined    time.Time     `json:"date_joined"`
	Posts         []PostSummary `json:"posts"`
	CommentsCount int64         `json:"comments_count"`
}

func NewAuthorSummary(user *model.User) AuthorSummary {
	return AuthorSummary{ID: user.ID, Username: user.Username, Slug: user.Slug}
}

func NewUserBrief(user *model.User) UserBrief {
	return UserBrief{ID: user.ID, Username: user.Username, Email: user.Email}
}

func NewUserListItem(user *model.User, postsCount, commentsCount int64) UserListItem {
	return UserListItem{
		ID:            user.ID,
		Username:      user.Username,
		Email:         user.Email,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		PostsCount:    postsCount,
		CommentsCount: commentsCount,
	}
}

// NewUserDetail maps a user to the detail shape of the given API version.
func NewUserDetail(user *model.User, commentsCount int64, version Version) UserDetail {
	detail := UserDetail{
		ID:            user.ID,
		Username:      user.Username,
		Email:         user.Email,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		DateJoined:    user.DateJoined,
		CommentsCount: commentsCount,
		Posts: lo.Map(user.Posts, func(p model.Post, _ int) PostSummary {
			return NewPostSummary(&p)
		}),
	}
	if version >= V2 {
		phone := user.PhoneNumber
		detail.PhoneNumber = &phone
	}
	return detail
}
