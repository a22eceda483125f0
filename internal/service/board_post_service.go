package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	apperrors "boardapi/internal/errors"
	"boardapi/internal/model"
	"boardapi/internal/repository"
)

// BoardPostService manages posts on the community board.
type BoardPostService interface {
	Create(ctx context.Context, callerID uint, name, message string) (*model.BoardPost, error)
	List(ctx context.Context) ([]model.BoardPost, error)
	Get(ctx context.Context, id uint) (*model.BoardPost, error)
	ListMine(ctx context.Context, callerID uint) ([]model.BoardPost, error)
	Update(ctx context.Context, callerID, postID uint, name, message string) (*model.BoardPost, error)
	Delete(ctx context.Context, callerID, postID uint) error
}

type boardPostService struct {
	postRepo repository.BoardPostRepository
	log      *zap.Logger
}

// NewBoardPostService creates a new board post service.
func NewBoardPostService(postRepo repository.BoardPostRepository, log *zap.Logger) BoardPostService {
	return &boardPostService{postRepo: postRepo, log: log}
}

// Create stores a post authored by the caller. created_at is stamped by the store in UTC.
func (s *boardPostService) Create(ctx context.Context, callerID uint, name, message string) (*model.BoardPost, error) {
	post := &model.BoardPost{
		Name:      name,
		Message:   message,
		AccountID: callerID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Author was deleted between token issue and this request.
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("create board post: %w", err)
	}
	return post, nil
}

func (s *boardPostService) List(ctx context.Context) ([]model.BoardPost, error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list board posts: %w", err)
	}
	return posts, nil
}

func (s *boardPostService) Get(ctx context.Context, id uint) (*model.BoardPost, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, postError(err)
	}
	return post, nil
}

func (s *boardPostService) ListMine(ctx context.Context, callerID uint) ([]model.BoardPost, error) {
	posts, err := s.postRepo.ListByAccount(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("list board posts for account %d: %w", callerID, err)
	}
	return posts, nil
}

// Update overwrites name and message of a post the caller owns.
func (s *boardPostService) Update(ctx context.Context, callerID, postID uint, name, message string) (*model.BoardPost, error) {
	post, err := s.postRepo.FindOwned(ctx, postID, callerID)
	if err != nil {
		return nil, postError(err)
	}

	post.Name = name
	post.Message = message
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("update board post: %w", err)
	}
	return post, nil
}

func (s *boardPostService) Delete(ctx context.Context, callerID, postID uint) error {
	if _, err := s.postRepo.FindOwned(ctx, postID, callerID); err != nil {
		return postError(err)
	}
	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return postError(err)
	}
	s.log.Debug("board post deleted", zap.Uint("account_id", callerID), zap.Uint("post_id", postID))
	return nil
}

func postError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.ErrPostNotFound
	}
	return fmt.Errorf("board post: %w", err)
}
