package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"boardapi/internal/config"
	"boardapi/internal/db"
	"boardapi/internal/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.Open(config.DatabaseConfig{Driver: "sqlite", DSN: "file::memory:?_foreign_keys=on"})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb, false, zap.NewNop()))
	return gdb
}

func createAccount(t *testing.T, repo AccountRepository, name, email string) *model.Account {
	t.Helper()
	acc := &model.Account{Name: name, Email: email, PasswordHash: "hash"}
	require.NoError(t, repo.Create(context.Background(), acc))
	return acc
}

func TestAccountRepository_CreateAndFind(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewAccountRepository(gdb)
	ctx := context.Background()

	ann := createAccount(t, repo, "Ann", "ann@x.com")
	assert.NotZero(t, ann.ID)

	byID, err := repo.FindByID(ctx, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, "ann@x.com", byID.Email)

	byEmail, err := repo.FindByEmail(ctx, "ann@x.com")
	require.NoError(t, err)
	assert.Equal(t, ann.ID, byEmail.ID)

	_, err = repo.FindByEmail(ctx, "ANN@x.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.FindByID(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAccountRepository_DuplicateEmail(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewAccountRepository(gdb)

	createAccount(t, repo, "Ann", "ann@x.com")
	err := repo.Create(context.Background(), &model.Account{Name: "Other", Email: "ann@x.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, ErrDuplicateEntry)

	accounts, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, accounts, 1)
}

func TestAccountRepository_Updates(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewAccountRepository(gdb)
	ctx := context.Background()
	ann := createAccount(t, repo, "Ann", "ann@x.com")

	require.NoError(t, repo.UpdateName(ctx, ann.ID, "Annie"))
	require.NoError(t, repo.UpdatePasswordHash(ctx, ann.ID, "new-hash"))

	got, err := repo.FindByID(ctx, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, "Annie", got.Name)
	assert.Equal(t, "new-hash", got.PasswordHash)
	assert.Equal(t, "ann@x.com", got.Email)
}

func TestAccountRepository_DeleteCascades(t *testing.T) {
	gdb := setupTestDB(t)
	accounts := NewAccountRepository(gdb)
	posts := NewBoardPostRepository(gdb)
	images := NewSavedImageRepository(gdb)
	ctx := context.Background()

	ann := createAccount(t, accounts, "Ann", "ann@x.com")
	bob := createAccount(t, accounts, "Bob", "bob@x.com")

	require.NoError(t, posts.Create(ctx, &model.BoardPost{Name: "hi", AccountID: ann.ID}))
	require.NoError(t, posts.Create(ctx, &model.BoardPost{Name: "yo", AccountID: bob.ID}))
	require.NoError(t, images.Create(ctx, &model.SavedImage{AccountID: ann.ID, ImageURL: "u", SavedAt: time.Now()}))

	require.NoError(t, accounts.Delete(ctx, ann.ID))

	_, err := accounts.FindByID(ctx, ann.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	annPosts, err := posts.ListByAccount(ctx, ann.ID)
	require.NoError(t, err)
	assert.Empty(t, annPosts)

	annImages, err := images.ListByAccount(ctx, ann.ID)
	require.NoError(t, err)
	assert.Empty(t, annImages)

	all, err := posts.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	assert.ErrorIs(t, accounts.Delete(ctx, ann.ID), ErrNotFound)
}

func TestBoardPostRepository_ListOrdering(t *testing.T) {
	gdb := setupTestDB(t)
	accounts := NewAccountRepository(gdb)
	posts := NewBoardPostRepository(gdb)
	ctx := context.Background()
	ann := createAccount(t, accounts, "Ann", "ann@x.com")

	same := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	first := &model.BoardPost{Name: "first", AccountID: ann.ID, CreatedAt: same}
	second := &model.BoardPost{Name: "second", AccountID: ann.ID, CreatedAt: same}
	newest := &model.BoardPost{Name: "newest", AccountID: ann.ID, CreatedAt: same.Add(time.Hour)}
	for _, p := range []*model.BoardPost{first, second, newest} {
		require.NoError(t, posts.Create(ctx, p))
	}

	list, err := posts.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "newest", list[0].Name)
	assert.Equal(t, "second", list[1].Name)
	assert.Equal(t, "first", list[2].Name)
	assert.Equal(t, "ann@x.com", list[0].Account.Email)
}

func TestBoardPostRepository_FindOwnedAndUpdate(t *testing.T) {
	gdb := setupTestDB(t)
	accounts := NewAccountRepository(gdb)
	posts := NewBoardPostRepository(gdb)
	ctx := context.Background()
	ann := createAccount(t, accounts, "Ann", "ann@x.com")
	bob := createAccount(t, accounts, "Bob", "bob@x.com")

	post := &model.BoardPost{Name: "hello", Message: "world", AccountID: ann.ID}
	require.NoError(t, posts.Create(ctx, post))
	assert.Equal(t, "Ann", post.Account.Name)
	created := post.CreatedAt

	_, err := posts.FindOwned(ctx, post.ID, bob.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	owned, err := posts.FindOwned(ctx, post.ID, ann.ID)
	require.NoError(t, err)

	owned.Name = "edited"
	owned.Message = ""
	require.NoError(t, posts.Update(ctx, owned))

	got, err := posts.FindByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Name)
	assert.Empty(t, got.Message)
	assert.True(t, created.Equal(got.CreatedAt))

	require.NoError(t, posts.Delete(ctx, post.ID))
	assert.ErrorIs(t, posts.Delete(ctx, post.ID), ErrNotFound)
}

func TestSavedImageRepository_Counts(t *testing.T) {
	gdb := setupTestDB(t)
	accounts := NewAccountRepository(gdb)
	images := NewSavedImageRepository(gdb)
	ctx := context.Background()
	ann := createAccount(t, accounts, "Ann", "ann@x.com")
	bob := createAccount(t, accounts, "Bob", "bob@x.com")
	createAccount(t, accounts, "Cy", "cy@x.com")

	const shared = "https://img.example/a.jpg"
	for _, img := range []*model.SavedImage{
		{AccountID: ann.ID, ImageURL: shared, SavedAt: time.Now()},
		{AccountID: ann.ID, ImageURL: shared, SavedAt: time.Now()},
		{AccountID: bob.ID, ImageURL: shared, SavedAt: time.Now()},
		{AccountID: bob.ID, ImageURL: "https://img.example/b.jpg", SavedAt: time.Now()},
	} {
		require.NoError(t, images.Create(ctx, img))
	}

	total, err := images.CountDistinctAccounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	forURL, err := images.CountDistinctAccountsForURL(ctx, shared)
	require.NoError(t, err)
	assert.Equal(t, int64(2), forURL)

	none, err := images.CountDistinctAccountsForURL(ctx, "https://nope")
	require.NoError(t, err)
	assert.Zero(t, none)

	exists, err := images.ExistsForAccount(ctx, bob.ID, shared)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSavedImageRepository_OwnershipAndOrder(t *testing.T) {
	gdb := setupTestDB(t)
	accounts := NewAccountRepository(gdb)
	images := NewSavedImageRepository(gdb)
	ctx := context.Background()
	ann := createAccount(t, accounts, "Ann", "ann@x.com")
	bob := createAccount(t, accounts, "Bob", "bob@x.com")

	a := &model.SavedImage{AccountID: ann.ID, ImageURL: "a", SavedAt: time.Now()}
	b := &model.SavedImage{AccountID: ann.ID, ImageURL: "b", SavedAt: time.Now()}
	require.NoError(t, images.Create(ctx, a))
	require.NoError(t, images.Create(ctx, b))

	list, err := images.ListByAccount(ctx, ann.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ImageURL)
	assert.Equal(t, "b", list[1].ImageURL)

	_, err = images.FindOwned(ctx, a.ID, bob.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, images.Delete(ctx, a.ID))
	list, err = images.ListByAccount(ctx, ann.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
