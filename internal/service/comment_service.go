package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openblogdev/blogapi/internal/dto"
	"github.com/openblogdev/blogapi/internal/model"
	"github.com/openblogdev/blogapi/internal/permission"
	"github.com/openblogdev/blogapi/internal/relation"
	"github.com/openblogdev/blogapi/internal/repository"
	"github.com/openblogdev/blogapi/pkg/apperror"
)

type CommentService interface {
	Get(ctx context.Context, id uuid.UUID) (*dto.CommentDetail, error)
	Update(ctx context.Context, actor *model.User, id uuid.UUID, req dto.UpdateCommentRequest) (*dto.CommentDetail, error)
	Delete(ctx context.Context, actor *model.User, id uuid.UUID) error

	ListForPost(ctx context.Context, actor *model.User, postID uuid.UUID, opts repository.ListOptions) ([]dto.CommentListItem, int64, error)
	CreateForPost(ctx context.Context, actor *model.User, postID uuid.UUID, req dto.CreateCommentRequest) (*dto.CommentDetail, error)

	ListForUser(ctx context.Context, actor *model.User, userID uuid.UUID, opts repository.ListOptions) ([]dto.CommentListItem, int64, error)
	CreateForUser(ctx context.Context, actor *model.User, userID uuid.UUID, req dto.CreateUserCommentRequest) (*dto.CommentDetail, error)
}

type commentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
	replies  repository.ReplyRepository

	postComments *relation.Controller[model.Post, model.Comment]
	userComments *relation.Controller[model.User, model.Comment]
}

func NewCommentService(
	comments repository.CommentRepository,
	posts repository.PostRepository,
	replies repository.ReplyRepository,
	users repository.UserRepository,
) CommentService {
	postComments := relation.MustNew(relation.Config[model.Post, model.Comment]{
		Resolve: func(ctx context.Context, id uuid.UUID) (*model.Post, error) {
			return posts.FindByID(ctx, id)
		},
		Collections: map[string]relation.Lister[model.Post, model.Comment]{
			"comments": func(ctx context.Context, p *model.Post, opts repository.ListOptions) ([]*model.Comment, int64, error) {
				return comments.ListByPost(ctx, p.ID, opts)
			},
		},
		Create: func(ctx context.Context, c *model.Comment) error {
			return comments.Create(ctx, c)
		},
		Stamp: func(actor *model.User, parent *model.Post, child *model.Comment) {
			child.PostID = parent.ID
			child.AuthorID = actor.ID
		},
		Permit: permission.AuthenticatedOrReadOnly,
	})

	userComments := relation.MustNew(relation.Config[model.User, model.Comment]{
		Resolve: func(ctx context.Context, id uuid.UUID) (*model.User, error) {
			return users.FindByID(ctx, id)
		},
		Collections: map[string]relation.Lister[model.User, model.Comment]{
			"comments": func(ctx context.Context, u *model.User, opts repository.ListOptions) ([]*model.Comment, int64, error) {
				return comments.ListByAuthor(ctx, u.ID, opts)
			},
		},
		Create: func(ctx context.Context, c *model.Comment) error {
			return comments.Create(ctx, c)
		},
		Stamp: func(_ *model.User, parent *model.User, child *model.Comment) {
			child.AuthorID = parent.ID
		},
		Owner:  func(u *model.User) uuid.UUID { return u.ID },
		Permit: permission.SelfOrAdminReadOnly,
	})

	return &commentService{
		comments:     comments,
		posts:        posts,
		replies:      replies,
		postComments: postComments,
		userComments: userComments,
	}
}

func (s *commentService) Get(ctx context.Context, id uuid.UUID) (*dto.CommentDetail, error) {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.mapDetail(ctx, comment)
}

func (s *commentService) Update(ctx context.Context, actor *model.User, id uuid.UUID, req dto.UpdateCommentRequest) (*dto.CommentDetail, error) {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := permission.OwnerOrReadOnly(actor, false, comment.AuthorID); err != nil {
		return nil, err
	}

	comment.Comment = req.Comment
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}

	updated, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.mapDetail(ctx, updated)
}

func (s *commentService) Delete(ctx context.Context, actor *model.User, id uuid.UUID) error {
	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := permission.OwnerOrReadOnly(actor, false, comment.AuthorID); err != nil {
		return err
	}
	return s.comments.Delete(ctx, id)
}

func (s *commentService) ListForPost(ctx context.Context, actor *model.User, postID uuid.UUID, opts repository.ListOptions) ([]dto.CommentListItem, int64, error) {
	page, err := s.postComments.List(ctx, postID, actor, opts)
	if err != nil {
		return nil, 0, err
	}
	items, err := s.mapListItems(ctx, page.Items)
	if err != nil {
		return nil, 0, err
	}
	return items, page.Total, nil
}

func (s *commentService) CreateForPost(ctx context.Context, actor *model.User, postID uuid.UUID, req dto.CreateCommentRequest) (*dto.CommentDetail, error) {
	comment := &model.Comment{Comment: req.Comment}
	if _, err := s.postComments.Create(ctx, postID, actor, comment); err != nil {
		return nil, err
	}

	created, err := s.comments.FindByID(ctx, comment.ID)
	if err != nil {
		return nil, err
	}
	return s.mapDetail(ctx, created)
}

func (s *commentService) ListForUser(ctx context.Context, actor *model.User, userID uuid.UUID, opts repository.ListOptions) ([]dto.CommentListItem, int64, error) {
	page, err := s.userComments.List(ctx, userID, actor, opts)
	if err != nil {
		return nil, 0, err
	}
	items, err := s.mapListItems(ctx, page.Items)
	if err != nil {
		return nil, 0, err
	}
	return items, page.Total, nil
}

func (s *commentService) CreateForUser(ctx context.Context, actor *model.User, userID uuid.UUID, req dto.CreateUserCommentRequest) (*dto.CommentDetail, error) {
	// The target post arrives in the body here, not in the path, so a bad
	// identifier is a validation failure rather than a missing resource.
	if _, err := s.posts.FindByID(ctx, req.Post); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Validation(fmt.Errorf("post: unknown identifier %s", req.Post))
		}
		return nil, err
	}

	comment := &model.Comment{PostID: req.Post, Comment: req.Comment}
	if _, err := s.userComments.Create(ctx, userID, actor, comment); err != nil {
		return nil, err
	}

	created, err := s.comments.FindByID(ctx, comment.ID)
	if err != nil {
		return nil, err
	}
	return s.mapDetail(ctx, created)
}

func (s *commentService) mapListItems(ctx context.Context, comments []*model.Comment) ([]dto.CommentListItem, error) {
	items := make([]dto.CommentListItem, 0, len(comments))
	for _, comment := range comments {
		count, err := s.replies.CountByComment(ctx, comment.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, dto.NewCommentListItem(comment, count))
	}
	return items, nil
}

func (s *commentService) mapDetail(ctx context.Context, comment *model.Comment) (*dto.CommentDetail, error) {
	summaries := make([]dto.ReplySummary, 0, len(comment.Replies))
	for i := range comment.Replies {
		reply := &comment.Replies[i]
		count, err := s.replies.CountAdds(ctx, reply.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, dto.NewReplySummary(reply, count))
	}

	detail := dto.NewCommentDetail(comment, summaries)
	return &detail, nil
}
