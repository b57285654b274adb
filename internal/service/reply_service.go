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

type ReplyService interface {
	Get(ctx context.Context, id uuid.UUID) (*dto.ReplyDetail, error)
	Update(ctx context.Context, actor *model.User, id uuid.UUID, req dto.UpdateReplyRequest) (*dto.ReplyDetail, error)
	Delete(ctx context.Context, actor *model.User, id uuid.UUID) error

	ListForComment(ctx context.Context, actor *model.User, commentID uuid.UUID, opts repository.ListOptions) ([]dto.ReplyListItem, int64, error)
	CreateForComment(ctx context.Context, actor *model.User, commentID uuid.UUID, req dto.CreateReplyRequest) (*dto.ReplyDetail, error)

	// ListAdds and CreateAdd serve the replies addressed at an existing
	// reply. A created add lands in the same comment thread as its target
	// and points back at it.
	ListAdds(ctx context.Context, actor *model.User, replyID uuid.UUID, opts repository.ListOptions) ([]dto.ReplyListItem, int64, error)
	CreateAdd(ctx context.Context, actor *model.User, replyID uuid.UUID, req dto.CreateReplyRequest) (*dto.ReplyDetail, error)

	ListForUser(ctx context.Context, actor *model.User, userID uuid.UUID, opts repository.ListOptions) ([]dto.ReplyListItem, int64, error)
	CreateForUser(ctx context.Context, actor *model.User, userID uuid.UUID, req dto.CreateUserReplyRequest) (*dto.ReplyDetail, error)
}

type replyService struct {
	replies  repository.ReplyRepository
	comments repository.CommentRepository

	commentReplies *relation.Controller[model.Comment, model.Reply]
	replyAdds      *relation.Controller[model.Reply, model.Reply]
	userReplies    *relation.Controller[model.User, model.Reply]
}

func NewReplyService(
	replies repository.ReplyRepository,
	comments repository.CommentRepository,
	users repository.UserRepository,
) ReplyService {
	commentReplies := relation.MustNew(relation.Config[model.Comment, model.Reply]{
		Name: "replies",
		Resolve: func(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
			return comments.FindByID(ctx, id)
		},
		Collections: map[string]relation.Lister[model.Comment, model.Reply]{
			"replies": func(ctx context.Context, c *model.Comment, opts repository.ListOptions) ([]*model.Reply, int64, error) {
				return replies.ListByComment(ctx, c.ID, opts)
			},
		},
		Create: func(ctx context.Context, r *model.Reply) error {
			return replies.Create(ctx, r)
		},
		Stamp: func(actor *model.User, parent *model.Comment, child *model.Reply) {
			child.CommentID = parent.ID
			child.AuthorID = actor.ID
		},
		Permit: permission.AuthenticatedOrReadOnly,
	})

	replyAdds := relation.MustNew(relation.Config[model.Reply, model.Reply]{
		Name: "adds",
		Resolve: func(ctx context.Context, id uuid.UUID) (*model.Reply, error) {
			return replies.FindByID(ctx, id)
		},
		Collections: map[string]relation.Lister[model.Reply, model.Reply]{
			"adds": func(ctx context.Context, r *model.Reply, opts repository.ListOptions) ([]*model.Reply, int64, error) {
				return replies.ListAdds(ctx, r.ID, opts)
			},
		},
		Create: func(ctx context.Context, r *model.Reply) error {
			return replies.Create(ctx, r)
		},
		Stamp: func(actor *model.User, parent *model.Reply, child *model.Reply) {
			child.CommentID = parent.CommentID
			child.AddsignID = &parent.ID
			child.AuthorID = actor.ID
		},
		Permit: permission.AuthenticatedOrReadOnly,
	})

	userReplies := relation.MustNew(relation.Config[model.User, model.Reply]{
		Name: "replies",
		Resolve: func(ctx context.Context, id uuid.UUID) (*model.User, error) {
			return users.FindByID(ctx, id)
		},
		Collections: map[string]relation.Lister[model.User, model.Reply]{
			"replies": func(ctx context.Context, u *model.User, opts repository.ListOptions) ([]*model.Reply, int64, error) {
				return replies.ListByAuthor(ctx, u.ID, opts)
			},
		},
		Create: func(ctx context.Context, r *model.Reply) error {
			return replies.Create(ctx, r)
		},
		Stamp: func(_ *model.User, parent *model.User, child *model.Reply) {
			child.AuthorID = parent.ID
		},
		Owner:  func(u *model.User) uuid.UUID { return u.ID },
		Permit: permission.SelfOrAdminReadOnly,
	})

	return &replyService{
		replies:        replies,
		comments:       comments,
		commentReplies: commentReplies,
		replyAdds:      replyAdds,
		userReplies:    userReplies,
	}
}

func (s *replyService) Get(ctx context.Context, id uuid.UUID) (*dto.ReplyDetail, error) {
	reply, err := s.replies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.mapDetail(ctx, reply)
}

func (s *replyService) Update(ctx context.Context, actor *model.User, id uuid.UUID, req dto.UpdateReplyRequest) (*dto.ReplyDetail, error) {
	reply, err := s.replies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := permission.OwnerOrReadOnly(actor, false, reply.AuthorID); err != nil {
		return nil, err
	}

	reply.Reply = req.Reply
	if err := s.replies.Update(ctx, reply); err != nil {
		return nil, err
	}

	updated, err := s.replies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.mapDetail(ctx, updated)
}

func (s *replyService) Delete(ctx context.Context, actor *model.User, id uuid.UUID) error {
	reply, err := s.replies.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := permission.OwnerOrReadOnly(actor, false, reply.AuthorID); err != nil {
		return err
	}
	return s.replies.Delete(ctx, id)
}

func (s *replyService) ListForComment(ctx context.Context, actor *model.User, commentID uuid.UUID, opts repository.ListOptions) ([]dto.ReplyListItem, int64, error) {
	page, err := s.commentReplies.List(ctx, commentID, actor, opts)
	if err != nil {
		return nil, 0, err
	}
	items, err := s.mapListItems(ctx, page.Items)
	if err != nil {
		return nil, 0, err
	}
	return items, page.Total, nil
}

func (s *replyService) CreateForComment(ctx context.Context, actor *model.User, commentID uuid.UUID, req dto.CreateReplyRequest) (*dto.ReplyDetail, error) {
	reply := &model.Reply{Reply: req.Reply}
	if req.Addsign != nil {
		if err := s.checkAddsign(ctx, *req.Addsign); err != nil {
			return nil, err
		}
		reply.AddsignID = req.Addsign
	}

	if _, err := s.commentReplies.Create(ctx, commentID, actor, reply); err != nil {
		return nil, err
	}
	return s.reload(ctx, reply.ID)
}

func (s *replyService) ListAdds(ctx context.Context, actor *model.User, replyID uuid.UUID, opts repository.ListOptions) ([]dto.ReplyListItem, int64, error) {
	page, err := s.replyAdds.List(ctx, replyID, actor, opts)
	if err != nil {
		return nil, 0, err
	}
	items, err := s.mapListItems(ctx, page.Items)
	if err != nil {
		return nil, 0, err
	}
	return items, page.Total, nil
}

func (s *replyService) CreateAdd(ctx context.Context, actor *model.User, replyID uuid.UUID, req dto.CreateReplyRequest) (*dto.ReplyDetail, error) {
	reply := &model.Reply{Reply: req.Reply}
	if _, err := s.replyAdds.Create(ctx, replyID, actor, reply); err != nil {
		return nil, err
	}
	return s.reload(ctx, reply.ID)
}

func (s *replyService) ListForUser(ctx context.Context, actor *model.User, userID uuid.UUID, opts repository.ListOptions) ([]dto.ReplyListItem, int64, error) {
	page, err := s.userReplies.List(ctx, userID, actor, opts)
	if err != nil {
		return nil, 0, err
	}
	items, err := s.mapListItems(ctx, page.Items)
	if err != nil {
		return nil, 0, err
	}
	return items, page.Total, nil
}

func (s *replyService) CreateForUser(ctx context.Context, actor *model.User, userID uuid.UUID, req dto.CreateUserReplyRequest) (*dto.ReplyDetail, error) {
	if _, err := s.comments.FindByID(ctx, req.Comment); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Validation(fmt.Errorf("comment: unknown identifier %s", req.Comment))
		}
		return nil, err
	}

	reply := &model.Reply{CommentID: req.Comment, Reply: req.Reply}
	if req.Addsign != nil {
		if err := s.checkAddsign(ctx, *req.Addsign); err != nil {
			return nil, err
		}
		reply.AddsignID = req.Addsign
	}

	if _, err := s.userReplies.Create(ctx, userID, actor, reply); err != nil {
		return nil, err
	}
	return s.reload(ctx, reply.ID)
}

func (s *replyService) checkAddsign(ctx context.Context, id uuid.UUID) error {
	if _, err := s.replies.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, apperror.ErrNotFound) {
			return apperror.Validation(fmt.Errorf("addsign: unknown identifier %s", id))
		}
		return err
	}
	return nil
}

func (s *replyService) reload(ctx context.Context, id uuid.UUID) (*dto.ReplyDetail, error) {
	reply, err := s.replies.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.mapDetail(ctx, reply)
}

func (s *replyService) mapListItems(ctx context.Context, replies []*model.Reply) ([]dto.ReplyListItem, error) {
	items := make([]dto.ReplyListItem, 0, len(replies))
	for _, reply := range replies {
		count, err := s.replies.CountAdds(ctx, reply.ID)
		if err != nil {
			return nil, err
		}

		var addsign *dto.ReplySummary
		if reply.Addsign != nil {
			addsignCount, err := s.replies.CountAdds(ctx, reply.Addsign.ID)
			if err != nil {
				return nil, err
			}
			summary := dto.NewReplySummary(reply.Addsign, addsignCount)
			addsign = &summary
		}

		items = append(items, dto.NewReplyListItem(reply, count, addsign))
	}
	return items, nil
}

func (s *replyService) mapDetail(ctx context.Context, reply *model.Reply) (*dto.ReplyDetail, error) {
	var addsign *dto.ReplySummary
	if reply.Addsign != nil {
		count, err := s.replies.CountAdds(ctx, reply.Addsign.ID)
		if err != nil {
			return nil, err
		}
		summary := dto.NewReplySummary(reply.Addsign, count)
		addsign = &summary
	}

	adds := make([]dto.ReplySummary, 0, len(reply.Adds))
	for i := range reply.Adds {
		add := &reply.Adds[i]
		count, err := s.replies.CountAdds(ctx, add.ID)
		if err != nil {
			return nil, err
		}
		adds = append(adds, dto.NewReplySummary(add, count))
	}

	detail := dto.NewReplyDetail(reply, addsign, adds)
	return &detail, nil
}
