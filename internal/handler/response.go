package handler

import (
	"time"

	"boardapi/internal/model"
)

// AccountResponse is the public view of an account.
type AccountResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuthResponse is returned on registration.
type AuthResponse struct {
	Account AccountResponse `json:"account"`
	Token   string          `json:"token"`
}

// LoginResponse is returned on a successful login.
type LoginResponse struct {
	Message string          `json:"message"`
	Account AccountResponse `json:"account"`
	Token   string          `json:"token"`
}

// MessageResponse carries a human readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// BoardPostResponse is a post with a summary of its author.
type BoardPostResponse struct {
	ID        uint            `json:"id"`
	Name      string          `json:"name"`
	Message   string          `json:"message"`
	CreatedAt time.Time       `json:"createdAt"`
	AccountID uint            `json:"accountId"`
	Owner     AccountResponse `json:"owner"`
}

// SavedImageResponse is a stored image bookmark.
type SavedImageResponse struct {
	ID           uint      `json:"id"`
	AccountID    uint      `json:"accountId"`
	ImageURL     string    `json:"imageUrl"`
	Title        string    `json:"title"`
	Photographer string    `json:"photographer"`
	SourceLink   string    `json:"sourceLink"`
	SavedAt      time.Time `json:"savedAt"`
}

func toAccountResponse(a *model.Account) AccountResponse {
	return AccountResponse{ID: a.ID, Name: a.Name, Email: a.Email}
}

func toAccountResponses(accounts []model.Account) []AccountResponse {
	out := make([]AccountResponse, 0, len(accounts))
	for i := range accounts {
		out = append(out, toAccountResponse(&accounts[i]))
	}
	return out
}

func toBoardPostResponse(p *model.BoardPost) BoardPostResponse {
	return BoardPostResponse{
		ID:        p.ID,
		Name:      p.Name,
		Message:   p.Message,
		CreatedAt: p.CreatedAt.UTC(),
		AccountID: p.AccountID,
		Owner:     toAccountResponse(&p.Account),
	}
}

func toBoardPostResponses(posts []model.BoardPost) []BoardPostResponse {
	out := make([]BoardPostResponse, 0, len(posts))
	for i := range posts {
		out = append(out, toBoardPostResponse(&posts[i]))
	}
	return out
}

func toSavedImageResponse(img *model.SavedImage) SavedImageResponse {
	return SavedImageResponse{
		ID:           img.ID,
		AccountID:    img.AccountID,
		ImageURL:     img.ImageURL,
		Title:        img.Title,
		Photographer: img.Photographer,
		SourceLink:   img.SourceLink,
		SavedAt:      img.SavedAt.UTC(),
	}
}

func toSavedImageResponses(images []model.SavedImage) []SavedImageResponse {
	out := make([]SavedImageResponse, 0, len(images))
	for i := range images {
		out = append(out, toSavedImageResponse(&images[i]))
	}
	return out
}
