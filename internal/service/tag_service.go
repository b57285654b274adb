package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/openblogdev/blogapi/internal/dto"
	"github.com/openblogdev/blogapi/internal/model"
	"github.com/openblogdev/blogapi/internal/relation"
	"github.com/openblogdev/blogapi/internal/repository"
)

type TagService interface {
	Get(ctx context.Context, id uuid.UUID) (*dto.TagDetail, error)
	ListForPost(ctx context.Context, actor *model.User, postID uuid.UUID, opts repository.ListOptions) ([]dto.TagListItem, int64, error)
}

type tagService struct {
	tags     repository.TagRepository
	comments repository.CommentRepository

	postTags *relation.Controller[model.Post, model.Tag]
}

func NewTagService(
	tags repository.TagRepository,
	posts repository.PostRepository,
	comments repository.CommentRepository,
) TagService {
	// List-only: tags attach to a post through the post payload, never
	// through this relation.
	postTags := relation.MustNew(relation.Config[model.Post, model.Tag]{
		Resolve: func(ctx context.Context, id uuid.UUID) (*model.Post, error) {
			return posts.FindByID(ctx, id)
		},
		Collections: map[string]relation.Lister[model.Post, model.Tag]{
			"tags": func(ctx context.Context, p *model.Post, opts repository.ListOptions) ([]*model.Tag, int64, error) {
				return tags.ListByPost(ctx, p.ID, opts)
			},
		},
	})

	return &tagService{tags: tags, comments: comments, postTags: postTags}
}

func (s *tagService) Get(ctx context.Context, id uuid.UUID) (*dto.TagDetail, error) {
	tag, err := s.tags.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	posts := make([]dto.PostListItem, 0, len(tag.Posts))
	for i := range tag.Posts {
		post := &tag.Posts[i]
		count, err := s.comments.CountByPost(ctx, post.ID)
		if err != nil {
			return nil, err
		}
		posts = append(posts, dto.NewPostListItem(post, count))
	}

	detail := dto.NewTagDetail(tag, posts)
	return &detail, nil
}

func (s *tagService) ListForPost(ctx context.Context, actor *model.User, postID uuid.UUID, opts repository.ListOptions) ([]dto.TagListItem, int64, error) {
	page, err := s.postTags.List(ctx, postID, actor, opts)
	if err != nil {
		return nil, 0, err
	}

	items := make([]dto.TagListItem, 0, len(page.Items))
	for _, tag := range page.Items {
		items = append(items, dto.NewTagListItem(tag))
	}
	return items, page.Total, nil
}
