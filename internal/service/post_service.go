package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/openblogdev/blogapi/internal/dto"
	"github.com/openblogdev/blogapi/internal/model"
	"github.com/openblogdev/blogapi/internal/permission"
	"github.com/openblogdev/blogapi/internal/relation"
	"github.com/openblogdev/blogapi/internal/repository"
	"github.com/openblogdev/blogapi/internal/search"
)

type PostService interface {
	List(ctx context.Context, actor *model.User, q dto.PostFilterQuery, offset, limit int) ([]dto.PostListItem, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.PostDetail, error)
	Create(ctx context.Context, actor *model.User, req dto.CreatePostRequest) (*dto.PostDetail, error)
	Update(ctx context.Context, actor *model.User, id uuid.UUID, req dto.UpdatePostRequest) (*dto.PostDetail, error)
	Delete(ctx context.Context, actor *model.User, id uuid.UUID) error

	ListForUser(ctx context.Context, actor *model.User, userID uuid.UUID, opts repository.ListOptions) ([]dto.PostListItem, int64, error)
	CreateForUser(ctx context.Context, actor *model.User, userID uuid.UUID, req dto.CreatePostRequest) (*dto.PostDetail, error)
}

type postService struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
	replies  repository.ReplyRepository
	tags     repository.TagRepository
	indexer  search.PostIndexer

	userPosts *relation.Controller[model.User, model.Post]
}

func NewPostService(
	posts repository.PostRepository,
	comments repository.CommentRepository,
	replies repository.ReplyRepository,
	tags repository.TagRepository,
	users repository.UserRepository,
	indexer search.PostIndexer,
) PostService {
	userPosts := relation.MustNew(relation.Config[model.User, model.Post]{
		Resolve: func(ctx context.Context, id uuid.UUID) (*model.User, error) {
			return users.FindByID(ctx, id)
		},
		Collections: map[string]relation.Lister[model.User, model.Post]{
			"posts": func(ctx context.Context, u *model.User, opts repository.ListOptions) ([]*model.Post, int64, error) {
				return posts.ListByAuthor(ctx, u.ID, opts)
			},
		},
		Create: func(ctx context.Context, p *model.Post) error {
			return posts.Create(ctx, p)
		},
		Stamp: func(_ *model.User, parent *model.User, child *model.Post) {
			child.AuthorID = parent.ID
		},
		Owner:  func(u *model.User) uuid.UUID { return u.ID },
		Permit: permission.SelfOrReadOnly,
	})

	return &postService{
		posts:     posts,
		comments:  comments,
		replies:   replies,
		tags:      tags,
		indexer:   indexer,
		userPosts: userPosts,
	}
}

func (s *postService) List(ctx context.Context, actor *model.User, q dto.PostFilterQuery, offset, limit int) ([]dto.PostListItem, int64, error) {
	filter := repository.PostFilter{
		Actor:       actor,
		Title:       q.Title,
		Description: q.Description,
		Status:      q.Status,
		Author:      q.Author,
		Topic:       q.Topic,
		Ordering:    q.Ordering,
		Offset:      offset,
		Limit:       limit,
	}

	if q.Search != "" {
		// Full-text queries go through the search index when one is
		// configured; otherwise the repository falls back to SQL matching.
		filter.Search = q.Search
		if s.indexer != nil {
			ids, err := s.indexer.SearchPosts(q.Search)
			if err != nil {
				log.Warn().Err(err).Msg("search index unavailable, falling back to sql matching")
			} else {
				if ids == nil {
					ids = []uuid.UUID{}
				}
				filter.IDs = ids
				filter.Search = ""
			}
		}
	}

	posts, total, err := s.posts.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	items, err := s.mapListItems(ctx, posts)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *postService) Get(ctx context.Context, id uuid.UUID) (*dto.PostDetail, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.mapDetail(ctx, post)
}

func (s *postService) Create(ctx context.Context, actor *model.User, req dto.CreatePostRequest) (*dto.PostDetail, error) {
	if err := permission.AuthenticatedOrReadOnly(actor, false, uuid.Nil); err != nil {
		return nil, err
	}

	post := &model.Post{
		Title:       req.Title,
		Description: req.Description,
		Thumbnail:   req.Thumbnail,
		Status:      req.Status,
		AuthorID:    actor.ID,
	}

	tags, err := s.tags.FindOrCreate(ctx, req.Tags)
	if err != nil {
		return nil, err
	}
	post.Tags = tags

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	created, err := s.posts.FindByID(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	s.index(created)
	return s.mapDetail(ctx, created)
}

func (s *postService) Update(ctx context.Context, actor *model.User, id uuid.UUID, req dto.UpdatePostRequest) (*dto.PostDetail, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := permission.OwnerOrReadOnly(actor, false, post.AuthorID); err != nil {
		return nil, err
	}

	post.Title = req.Title
	post.Description = req.Description
	post.Thumbnail = req.Thumbnail

	// A published post never reverts to draft; such updates are ignored,
	// not rejected.
	if req.Status != "" && !(post.Published() && req.Status == model.StatusDraft) {
		post.Status = req.Status
	}

	tags, err := s.tags.FindOrCreate(ctx, req.Tags)
	if err != nil {
		return nil, err
	}
	if err := s.posts.ReplaceTags(ctx, post, tags); err != nil {
		return nil, err
	}

	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}

	updated, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.index(updated)
	return s.mapDetail(ctx, updated)
}

func (s *postService) Delete(ctx context.Context, actor *model.User, id uuid.UUID) error {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := permission.OwnerOrReadOnly(actor, false, post.AuthorID); err != nil {
		return err
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}

	if s.indexer != nil {
		if err := s.indexer.DeletePost(id); err != nil {
			log.Warn().Err(err).Str("post_id", id.String()).Msg("failed to deindex post")
		}
	}
	return nil
}

func (s *postService) ListForUser(ctx context.Context, actor *model.User, userID uuid.UUID, opts repository.ListOptions) ([]dto.PostListItem, int64, error) {
	page, err := s.userPosts.List(ctx, userID, actor, opts)
	if err != nil {
		return nil, 0, err
	}
	items, err := s.mapListItems(ctx, page.Items)
	if err != nil {
		return nil, 0, err
	}
	return items, page.Total, nil
}

func (s *postService) CreateForUser(ctx context.Context, actor *model.User, userID uuid.UUID, req dto.CreatePostRequest) (*dto.PostDetail, error) {
	post := &model.Post{
		Title:       req.Title,
		Description: req.Description,
		Thumbnail:   req.Thumbnail,
		Status:      req.Status,
	}

	tags, err := s.tags.FindOrCreate(ctx, req.Tags)
	if err != nil {
		return nil, err
	}
	post.Tags = tags

	if _, err := s.userPosts.Create(ctx, userID, actor, post); err != nil {
		return nil, err
	}

	created, err := s.posts.FindByID(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	s.index(created)
	return s.mapDetail(ctx, created)
}

func (s *postService) index(post *model.Post) {
	if s.indexer == nil {
		return
	}
	if err := s.indexer.IndexPost(post); err != nil {
		log.Warn().Err(err).Str("post_id", post.ID.String()).Msg("failed to index post")
	}
}

func (s *postService) mapListItems(ctx context.Context, posts []*model.Post) ([]dto.PostListItem, error) {
	items := make([]dto.PostListItem, 0, len(posts))
	for _, post := range posts {
		count, err := s.comments.CountByPost(ctx, post.ID)
		if err != nil {
			return nil, err
		}
		items = append(items, dto.NewPostListItem(post, count))
	}
	return items, nil
}

func (s *postService) mapDetail(ctx context.Context, post *model.Post) (*dto.PostDetail, error) {
	summaries := make([]dto.CommentSummary, 0, len(post.Comments))
	for i := range post.Comments {
		comment := &post.Comments[i]
		count, err := s.replies.CountByComment(ctx, comment.ID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, dto.NewCommentSummary(comment, count))
	}

	detail := dto.NewPostDetail(post, summaries)
	return &detail, nil
}
