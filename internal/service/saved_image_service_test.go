package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "boardapi/internal/errors"
	"boardapi/internal/model"
	"boardapi/internal/repository"
)

var sampleImage = SaveImageInput{
	ImageURL:     "https://images.example/photo-1.jpg",
	Title:        "Fjord",
	Photographer: "Kari",
	SourceLink:   "https://images.example/photos/1",
}

func TestSavedImageService_Save(t *testing.T) {
	tests := []struct {
		name            string
		allowDuplicates bool
		setupMock       func(*MockSavedImageRepository)
		expectedError   error
	}{
		{
			name: "new image",
			setupMock: func(m *MockSavedImageRepository) {
				m.On("ExistsForAccount", mock.Anything, uint(1), sampleImage.ImageURL).Return(false, nil)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.SavedImage")).Return(nil)
			},
		},
		{
			name: "duplicate rejected",
			setupMock: func(m *MockSavedImageRepository) {
				m.On("ExistsForAccount", mock.Anything, uint(1), sampleImage.ImageURL).Return(true, nil)
			},
			expectedError: apperrors.ErrImageAlreadySaved,
		},
		{
			name:            "duplicate allowed",
			allowDuplicates: true,
			setupMock: func(m *MockSavedImageRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.SavedImage")).Return(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockSavedImageRepository)
			tt.setupMock(mockRepo)
			service := NewSavedImageService(mockRepo, tt.allowDuplicates, zap.NewNop())

			image, err := service.Save(context.Background(), 1, sampleImage)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, image)
			} else {
				require.NoError(t, err)
				assert.Equal(t, uint(1), image.AccountID)
				assert.Equal(t, sampleImage.Photographer, image.Photographer)
				assert.False(t, image.SavedAt.IsZero())
				assert.Equal(t, "UTC", image.SavedAt.Location().String())
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestSavedImageService_Delete(t *testing.T) {
	mockRepo := new(MockSavedImageRepository)
	mockRepo.On("FindOwned", mock.Anything, uint(3), uint(2)).Return(nil, repository.ErrNotFound)
	mockRepo.On("FindOwned", mock.Anything, uint(3), uint(1)).Return(&model.SavedImage{ID: 3, AccountID: 1}, nil)
	mockRepo.On("Delete", mock.Anything, uint(3)).Return(nil).Once()
	service := NewSavedImageService(mockRepo, false, zap.NewNop())

	assert.Equal(t, apperrors.ErrImageNotFound, service.Delete(context.Background(), 2, 3))
	require.NoError(t, service.Delete(context.Background(), 1, 3))
	mockRepo.AssertExpectations(t)
}

func TestSavedImageService_CountSaversForImage(t *testing.T) {
	tests := []struct {
		name          string
		encoded       string
		decoded       string
		count         int64
		expectedError error
	}{
		{
			name:    "percent-encoded url",
			encoded: "https%3A%2F%2Fimages.example%2Fphoto-1.jpg",
			decoded: "https://images.example/photo-1.jpg",
			count:   2,
		},
		{
			name:    "plain value",
			encoded: "photo-1",
			decoded: "photo-1",
			count:   0,
		},
		{
			name:          "bad escape",
			encoded:       "https%3A%2",
			expectedError: apperrors.ErrInvalidImageURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockSavedImageRepository)
			if tt.expectedError == nil {
				mockRepo.On("CountDistinctAccountsForURL", mock.Anything, tt.decoded).Return(tt.count, nil)
			}
			service := NewSavedImageService(mockRepo, false, zap.NewNop())

			n, err := service.CountSaversForImage(context.Background(), tt.encoded)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				mockRepo.AssertNotCalled(t, "CountDistinctAccountsForURL", mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.count, n)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestSavedImageService_CountDistinctSavers(t *testing.T) {
	mockRepo := new(MockSavedImageRepository)
	mockRepo.On("CountDistinctAccounts", mock.Anything).Return(int64(4), nil)
	service := NewSavedImageService(mockRepo, false, zap.NewNop())

	n, err := service.CountDistinctSavers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}
