package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"

	apperrors "boardapi/internal/errors"
	"boardapi/internal/model"
	"boardapi/internal/repository"
)

// SaveImageInput carries the attributes of an image being bookmarked.
type SaveImageInput struct {
	ImageURL     string
	Title        string
	Photographer string
	SourceLink   string
}

// SavedImageService manages per-account image bookmarks and their counts.
type SavedImageService interface {
	Save(ctx context.Context, callerID uint, in SaveImageInput) (*model.SavedImage, error)
	ListMine(ctx context.Context, callerID uint) ([]model.SavedImage, error)
	Delete(ctx context.Context, callerID, imageID uint) error
	CountDistinctSavers(ctx context.Context) (int64, error)
	CountSaversForImage(ctx context.Context, encodedURL string) (int64, error)
}

type savedImageService struct {
	imageRepo       repository.SavedImageRepository
	allowDuplicates bool
	log             *zap.Logger
}

// NewSavedImageService creates a new saved image service. With allowDuplicates
// unset, saving the same URL twice for one account is a conflict.
func NewSavedImageService(imageRepo repository.SavedImageRepository, allowDuplicates bool, log *zap.Logger) SavedImageService {
	return &savedImageService{
		imageRepo:       imageRepo,
		allowDuplicates: allowDuplicates,
		log:             log,
	}
}

func (s *savedImageService) Save(ctx context.Context, callerID uint, in SaveImageInput) (*model.SavedImage, error) {
	if !s.allowDuplicates {
		exists, err := s.imageRepo.ExistsForAccount(ctx, callerID, in.ImageURL)
		if err != nil {
			return nil, fmt.Errorf("check saved image: %w", err)
		}
		if exists {
			return nil, apperrors.ErrImageAlreadySaved
		}
	}

	image := &model.SavedImage{
		AccountID:    callerID,
		ImageURL:     in.ImageURL,
		Title:        in.Title,
		Photographer: in.Photographer,
		SourceLink:   in.SourceLink,
		SavedAt:      time.Now().UTC(),
	}
	if err := s.imageRepo.Create(ctx, image); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("save image: %w", err)
	}
	return image, nil
}

func (s *savedImageService) ListMine(ctx context.Context, callerID uint) ([]model.SavedImage, error) {
	images, err := s.imageRepo.ListByAccount(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("list saved images: %w", err)
	}
	return images, nil
}

func (s *savedImageService) Delete(ctx context.Context, callerID, imageID uint) error {
	if _, err := s.imageRepo.FindOwned(ctx, imageID, callerID); err != nil {
		return imageError(err)
	}
	if err := s.imageRepo.Delete(ctx, imageID); err != nil {
		return imageError(err)
	}
	return nil
}

func (s *savedImageService) CountDistinctSavers(ctx context.Context) (int64, error) {
	n, err := s.imageRepo.CountDistinctAccounts(ctx)
	if err != nil {
		return 0, fmt.Errorf("count savers: %w", err)
	}
	return n, nil
}

// CountSaversForImage decodes a percent-encoded URL taken from a path segment
// and counts the distinct accounts that saved it.
func (s *savedImageService) CountSaversForImage(ctx context.Context, encodedURL string) (int64, error) {
	imageURL, err := url.PathUnescape(encodedURL)
	if err != nil {
		s.log.Debug("rejecting badly encoded image url", zap.String("encoded", encodedURL), zap.Error(err))
		return 0, apperrors.ErrInvalidImageURL
	}

	n, err := s.imageRepo.CountDistinctAccountsForURL(ctx, imageURL)
	if err != nil {
		return 0, fmt.Errorf("count savers for image: %w", err)
	}
	return n, nil
}

func imageError(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.ErrImageNotFound
	}
	return fmt.Errorf("saved image: %w", err)
}
