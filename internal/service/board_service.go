package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"banterhall/internal/middleware"
	"banterhall/internal/models"
	"banterhall/internal/repository"

	"github.com/google/uuid"
)

const (
	maxPostLen    = 500
	maxCommentLen = 300
)

// BoardService manages banter board posts, comments, and voting.
type BoardService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	isAdmin     func(ctx context.Context, username string) (bool, error)
}

// NewBoardService returns a new BoardService. isAdmin is consulted for
// moderation deletes of other users' content.
func NewBoardService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	isAdmin func(ctx context.Context, username string) (bool, error),
) *BoardService {
	return &BoardService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		isAdmin:     isAdmin,
	}
}

// CreatePost publishes a new post with a zeroed vote tally.
func (s *BoardService) CreatePost(ctx context.Context, author, content string) (*models.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.NewValidationError("Post content is required")
	}
	if len(content) > maxPostLen {
		return nil, models.NewValidationError("Post content must be 500 characters or less")
	}

	post := &models.Post{
		ID:        uuid.NewString(),
		Author:    author,
		Content:   content,
		Votes:     0,
		Voters:    []models.Vote{},
		CreatedAt: time.Now().UTC(),
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	middleware.Logger.InfoContext(ctx, "post created", "post_id", post.ID, "author", author)
	return post, nil
}

// ListPosts returns every post, highest tally first. Ties break toward the
// older post so rankings stay stable as votes move.
func (s *BoardService) ListPosts(ctx context.Context) ([]models.Post, error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].Votes != posts[j].Votes {
			return posts[i].Votes > posts[j].Votes
		}
		return posts[i].CreatedAt.Before(posts[j].CreatedAt)
	})
	return posts, nil
}

// VotePost applies the voter's up/down toggle to the post.
func (s *BoardService) VotePost(ctx context.Context, postID, username, direction string) (*models.Post, error) {
	if !models.IsValidVoteDirection(direction) {
		return nil, models.NewValidationError("Invalid vote direction")
	}
	return s.postRepo.Update(ctx, postID, func(p *models.Post) error {
		p.Votes, p.Voters = models.ApplyVote(p.Votes, p.Voters, username, direction)
		return nil
	})
}

// DeletePost removes a post and its entire comment thread. Only the author
// or an admin may delete.
func (s *BoardService) DeletePost(ctx context.Context, postID, username string) error {
	post, err := s.postRepo.Get(ctx, postID)
	if err != nil {
		return err
	}

	if post.Author != username {
		admin, err := s.isAdmin(ctx, username)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewForbiddenError("Unauthorized to delete this post")
		}
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return err
	}
	if err := s.commentRepo.DeleteByPost(ctx, postID); err != nil {
		return err
	}

	middleware.Logger.InfoContext(ctx, "post deleted", "post_id", postID, "username", username)
	return nil
}

// CreateComment replies to a post. The post must still exist.
func (s *BoardService) CreateComment(ctx context.Context, postID, author, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.NewValidationError("Comment content is required")
	}
	if len(content) > maxCommentLen {
		return nil, models.NewValidationError("Comment content must be 300 characters or less")
	}

	if _, err := s.postRepo.Get(ctx, postID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ID:        uuid.NewString(),
		PostID:    postID,
		Author:    author,
		Content:   content,
		Votes:     0,
		Voters:    []models.Vote{},
		CreatedAt: time.Now().UTC(),
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	middleware.Logger.InfoContext(ctx, "comment created",
		"comment_id", comment.ID, "post_id", postID, "author", author)
	return comment, nil
}

// ListComments returns a post's thread, highest tally first with older
// comments winning ties.
func (s *BoardService) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	sort.Slice(comments, func(i, j int) bool {
		if comments[i].Votes != comments[j].Votes {
			return comments[i].Votes > comments[j].Votes
		}
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments, nil
}

// VoteComment applies the voter's up/down toggle to the comment.
func (s *BoardService) VoteComment(ctx context.Context, postID, commentID, username, direction string) (*models.Comment, error) {
	if !models.IsValidVoteDirection(direction) {
		return nil, models.NewValidationError("Invalid vote direction")
	}
	return s.commentRepo.Update(ctx, postID, commentID, func(c *models.Comment) error {
		c.Votes, c.Voters = models.ApplyVote(c.Votes, c.Voters, username, direction)
		return nil
	})
}

// DeleteComment removes a single comment. Only the author or an admin may
// delete.
func (s *BoardService) DeleteComment(ctx context.Context, postID, commentID, username string) error {
	comment, err := s.commentRepo.Get(ctx, postID, commentID)
	if err != nil {
		return err
	}

	if comment.Author != username {
		admin, err := s.isAdmin(ctx, username)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewForbiddenError("Unauthorized to delete this comment")
		}
	}

	if err := s.commentRepo.Delete(ctx, postID, commentID); err != nil {
		return err
	}

	middleware.Logger.InfoContext(ctx, "comment deleted",
		"comment_id", commentID, "post_id", postID, "username", username)
	return nil
}
