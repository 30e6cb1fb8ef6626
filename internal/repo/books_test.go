package repo

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-admin-console/internal/models"
)

func sampleBooks() []models.Book {
	return []models.Book{
		{ID: 1, Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", ISBN: "9780743273565", PublicationYear: 1925, Quantity: 5, AvailableQuantity: 3},
		{ID: 2, Title: "1984", Author: "George Orwell", ISBN: "9780451524935", PublicationYear: 1949, Quantity: 10, AvailableQuantity: 7},
	}
}

func TestBookListMirrorsToCache(t *testing.T) {
	store := newTestStore(t)
	client := onlineClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(sampleBooks())
	}))
	repo := NewBookRepository(client, store)

	books, degraded, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.False(t, degraded)
	assert.Len(t, books, 2)

	cached, err := store.Books()
	require.NoError(t, err)
	assert.Equal(t, books, cached)
}

func TestBookListFallsBackToCache(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SaveBooks(sampleBooks()))
	repo := NewBookRepository(offlineClient(t), store)

	books, degraded, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.True(t, degraded)
	assert.Len(t, books, 2)
}

func TestBookSearch(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SaveBooks(sampleBooks()))
	repo := NewBookRepository(offlineClient(t), store)

	results, _, err := repo.Search(context.Background(), "orwell")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "1984", results[0].Title)

	// Fraza pasująca do fragmentu ISBN
	results, _, err = repo.Search(context.Background(), "0743")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "The Great Gatsby", results[0].Title)

	results, _, err = repo.Search(context.Background(), "tolkien")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestBookGetFromCache(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SaveBooks(sampleBooks()))
	repo := NewBookRepository(offlineClient(t), store)

	book, degraded, err := repo.Get(context.Background(), 2)
	require.NoError(t, err)
	assert.True(t, degraded)
	assert.Equal(t, "1984", book.Title)

	_, _, err = repo.Get(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestBookCreateOnlineAppendsToCache(t *testing.T) {
	store := newTestStore(t)
	client := onlineClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var book models.Book
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&book))
		book.ID = 42
		json.NewEncoder(w).Encode(book)
	}))
	repo := NewBookRepository(client, store)

	created, degraded, err := repo.Create(context.Background(), models.Book{
		Title: "Solaris", Author: "Stanisław Lem", PublicationYear: 1961, Quantity: 4,
	})
	require.NoError(t, err)
	assert.False(t, degraded)
	assert.Equal(t, int64(42), created.ID)
	// Dostępność nowej książki zawsze równa liczbie egzemplarzy
	assert.Equal(t, 4, created.AvailableQuantity)

	cached, err := store.Books()
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.Equal(t, int64(42), cached[0].ID)
}

func TestBookCreateOfflineAssignsLocalID(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SaveBooks(sampleBooks()))
	repo := NewBookRepository(offlineClient(t), store)

	created, degraded, err := repo.Create(context.Background(), models.Book{
		Title: "Solaris", Author: "Stanisław Lem", PublicationYear: 1961, Quantity: 4,
	})
	require.NoError(t, err)
	assert.True(t, degraded)
	assert.Equal(t, int64(3), created.ID)

	cached, err := store.Books()
	require.NoError(t, err)
	assert.Len(t, cached, 3)
}

func TestBookCreateRejectsInvalid(t *testing.T) {
	repo := NewBookRepository(offlineClient(t), newTestStore(t))

	_, _, err := repo.Create(context.Background(), models.Book{Title: "Bez autora", Quantity: 1})
	require.Error(t, err)
}

func TestBookUpdateOfflineMergesFields(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SaveBooks(sampleBooks()))
	repo := NewBookRepository(offlineClient(t), store)

	title := "Rok 1984"
	updated, degraded, err := repo.Update(context.Background(), 2, models.BookUpdate{Title: &title})
	require.NoError(t, err)
	assert.True(t, degraded)
	assert.Equal(t, "Rok 1984", updated.Title)
	assert.Equal(t, "George Orwell", updated.Author)

	_, _, err = repo.Update(context.Background(), 99, models.BookUpdate{Title: &title})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestBookDeleteIsIdempotent(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SaveBooks(sampleBooks()))
	repo := NewBookRepository(offlineClient(t), store)

	degraded, err := repo.Delete(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, degraded)

	_, _, err = repo.Get(context.Background(), 1)
	assert.True(t, errors.Is(err, ErrNotFound))

	// Ponowne usunięcie nie jest błędem
	_, err = repo.Delete(context.Background(), 1)
	require.NoError(t, err)
}
