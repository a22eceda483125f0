package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"boardapi/internal/repository"
	"boardapi/internal/service"
)

//go:embed fixture.json
var defaultFixture []byte

var fixtureClient = &http.Client{Timeout: 30 * time.Second}

// Fixture is the seed data set.
type Fixture struct {
	Accounts []SeedAccount `json:"accounts"`
}

// SeedAccount is one demo account with the content it owns.
type SeedAccount struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Posts    []SeedPost  `json:"posts"`
	Images   []SeedImage `json:"images"`
}

// SeedPost is a board post owned by a SeedAccount.
type SeedPost struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// SeedImage is a saved image owned by a SeedAccount.
type SeedImage struct {
	ImageURL     string `json:"imageUrl"`
	Title        string `json:"title"`
	Photographer string `json:"photographer"`
	SourceLink   string `json:"sourceLink"`
}

// Stats summarizes a seed run.
type Stats struct {
	Accounts int
	Skipped  int
	Posts    int
	Images   int
}

// loadFixture reads the data set from source, which may be empty (embedded
// default), a file path, or an http(s) URL.
func loadFixture(source string) (*Fixture, error) {
	var raw []byte
	switch {
	case source == "":
		raw = defaultFixture
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		body, err := fetchFixture(source)
		if err != nil {
			return nil, err
		}
		raw = body
	default:
		body, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("read fixture: %w", err)
		}
		raw = body
	}

	var f Fixture
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	return &f, nil
}

func fetchFixture(url string) ([]byte, error) {
	resp, err := fixtureClient.Get(url)
	if err != nil {
		return nil, fmt.Errorf("fetch fixture: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch fixture: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// seeder inserts fixture data through the services so hashing and ownership
// rules apply exactly as they do for API clients.
type seeder struct {
	accountRepo repository.AccountRepository
	accounts    service.AccountService
	posts       service.BoardPostService
	images      service.SavedImageService
	log         *zap.Logger
}

// run seeds every account that does not exist yet. Accounts already present
// (matched by email) are left untouched along with their content.
func (s *seeder) run(ctx context.Context, f *Fixture) (Stats, error) {
	var stats Stats
	for _, acc := range f.Accounts {
		_, err := s.accountRepo.FindByEmail(ctx, acc.Email)
		if err == nil {
			s.log.Info("account exists, skipping", zap.String("email", acc.Email))
			stats.Skipped++
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return stats, fmt.Errorf("check account %s: %w", acc.Email, err)
		}

		created, err := s.accounts.Register(ctx, acc.Name, acc.Email, acc.Password)
		if err != nil {
			return stats, fmt.Errorf("create account %s: %w", acc.Email, err)
		}
		stats.Accounts++
		owner := created.Account.ID

		for _, p := range acc.Posts {
			if _, err := s.posts.Create(ctx, owner, p.Name, p.Message); err != nil {
				return stats, fmt.Errorf("create post for %s: %w", acc.Email, err)
			}
			stats.Posts++
		}
		for _, img := range acc.Images {
			_, err := s.images.Save(ctx, owner, service.SaveImageInput{
				ImageURL:     img.ImageURL,
				Title:        img.Title,
				Photographer: img.Photographer,
				SourceLink:   img.SourceLink,
			})
			if err != nil {
				return stats, fmt.Errorf("save image for %s: %w", acc.Email, err)
			}
			stats.Images++
		}
	}
	return stats, nil
}
