package localstore

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-admin-console/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestGetSetDelete(t *testing.T) {
	store := newTestStore(t)

	_, ok, err := store.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set("key", "value"))
	value, ok, err := store.Get("key")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "value", value)

	require.NoError(t, store.Set("key", "updated"))
	value, _, err = store.Get("key")
	require.NoError(t, err)
	assert.Equal(t, "updated", value)

	require.NoError(t, store.Delete("key"))
	_, ok, err = store.Get("key")
	require.NoError(t, err)
	assert.False(t, ok)

	// Usunięcie nieistniejącego klucza nie jest błędem
	require.NoError(t, store.Delete("key"))
}

func TestCollectionsDefaultEmpty(t *testing.T) {
	store := newTestStore(t)

	books, err := store.Books()
	require.NoError(t, err)
	assert.Empty(t, books)

	members, err := store.Members()
	require.NoError(t, err)
	assert.Empty(t, members)

	borrowings, err := store.Borrowings()
	require.NoError(t, err)
	assert.Empty(t, borrowings)
}

func TestBooksRoundTrip(t *testing.T) {
	store := newTestStore(t)

	books := []models.Book{
		{ID: 1, Title: "1984", Author: "George Orwell", ISBN: "9780451524935", PublicationYear: 1949, Quantity: 10, AvailableQuantity: 7},
	}
	require.NoError(t, store.SaveBooks(books))

	loaded, err := store.Books()
	require.NoError(t, err)
	assert.Equal(t, books, loaded)
}

func TestBorrowingsRoundTripWithDates(t *testing.T) {
	store := newTestStore(t)

	returnDate := models.NewDate(2023, time.April, 23)
	borrowings := []models.Borrowing{
		{ID: 1, BookID: 1, MemberID: 1, BorrowDate: models.NewDate(2023, time.May, 1), DueDate: models.NewDate(2023, time.May, 15)},
		{ID: 2, BookID: 2, MemberID: 2, BorrowDate: models.NewDate(2023, time.April, 15), DueDate: models.NewDate(2023, time.April, 25), Returned: true, ReturnDate: &returnDate},
	}
	require.NoError(t, store.SaveBorrowings(borrowings))

	loaded, err := store.Borrowings()
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	assert.Equal(t, "2023-05-01", loaded[0].BorrowDate.String())
	assert.Nil(t, loaded[0].ReturnDate)
	require.NotNil(t, loaded[1].ReturnDate)
	assert.Equal(t, "2023-04-23", loaded[1].ReturnDate.String())
}

func TestToken(t *testing.T) {
	store := newTestStore(t)

	token, err := store.Token()
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, store.SaveToken("abc123"))
	token, err = store.Token()
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	require.NoError(t, store.ClearToken())
	token, err = store.Token()
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestSeedFillsOnlyMissingPartitions(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Seed())

	books, err := store.Books()
	require.NoError(t, err)
	assert.Len(t, books, 3)
	members, err := store.Members()
	require.NoError(t, err)
	assert.Len(t, members, 3)
	borrowings, err := store.Borrowings()
	require.NoError(t, err)
	assert.Len(t, borrowings, 3)

	// Ponowne zasilenie nie nadpisuje istniejących danych
	require.NoError(t, store.SaveBooks(books[:1]))
	require.NoError(t, store.Seed())
	books, err = store.Books()
	require.NoError(t, err)
	assert.Len(t, books, 1)
}

func TestForceSeedOverwrites(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SaveBooks([]models.Book{}))
	require.NoError(t, store.ForceSeed())

	books, err := store.Books()
	require.NoError(t, err)
	assert.Len(t, books, 3)

	// Dane startowe zawierają konto administratora do pierwszego logowania
	members, err := store.Members()
	require.NoError(t, err)
	hasAdmin := false
	for _, member := range members {
		if member.IsAdmin() {
			hasAdmin = true
		}
	}
	assert.True(t, hasAdmin)
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.SaveToken("trwały"))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	token, err := reopened.Token()
	require.NoError(t, err)
	assert.Equal(t, "trwały", token)
}
