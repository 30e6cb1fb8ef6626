package repo

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-admin-console/internal/models"
)

func seedBorrowingFixtures(t *testing.T) *BorrowingRepository {
	t.Helper()
	store := newTestStore(t)
	require.NoError(t, store.SaveBooks(sampleBooks()))
	require.NoError(t, store.SaveMembers(sampleMembers()))
	require.NoError(t, store.SaveBorrowings([]models.Borrowing{
		{ID: 1, BookID: 1, MemberID: 1, BorrowDate: models.NewDate(2023, time.May, 1), DueDate: models.NewDate(2023, time.May, 15), BookTitle: "The Great Gatsby", MemberName: "John Doe"},
	}))
	return NewBorrowingRepository(offlineClient(t), store)
}

func TestBorrowingCreateOfflineAdjustsAvailability(t *testing.T) {
	repo := seedBorrowingFixtures(t)

	created, degraded, err := repo.Create(context.Background(), models.Borrowing{BookID: 2, MemberID: 1})
	require.NoError(t, err)
	assert.True(t, degraded)
	assert.Equal(t, int64(2), created.ID)
	assert.Equal(t, models.Today(), created.BorrowDate)
	assert.Equal(t, models.Today().AddDays(models.DefaultLoanDays), created.DueDate)
	// Pola denormalizowane uzupełnione z pamięci podręcznej
	assert.Equal(t, "1984", created.BookTitle)
	assert.Equal(t, "John Doe", created.MemberName)

	books, err := repo.store.Books()
	require.NoError(t, err)
	assert.Equal(t, 6, books[1].AvailableQuantity)
}

func TestBorrowingCreateOfflineRejectsUnavailableBook(t *testing.T) {
	repo := seedBorrowingFixtures(t)

	books, err := repo.store.Books()
	require.NoError(t, err)
	books[0].AvailableQuantity = 0
	require.NoError(t, repo.store.SaveBooks(books))

	_, _, err = repo.Create(context.Background(), models.Borrowing{BookID: 1, MemberID: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nie jest dostępna")
}

func TestBorrowingCreateOfflineUnknownBookOrMember(t *testing.T) {
	repo := seedBorrowingFixtures(t)

	_, _, err := repo.Create(context.Background(), models.Borrowing{BookID: 99, MemberID: 1})
	assert.True(t, errors.Is(err, ErrNotFound))

	_, _, err = repo.Create(context.Background(), models.Borrowing{BookID: 1, MemberID: 99})
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestBorrowingReturnOfflineSetsFineAndRestoresAvailability(t *testing.T) {
	repo := seedBorrowingFixtures(t)

	returned, degraded, err := repo.Return(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, degraded)
	assert.True(t, returned.Returned)
	require.NotNil(t, returned.ReturnDate)
	assert.Equal(t, models.Today(), *returned.ReturnDate)
	// Termin minął dawno temu - kara według stawki dziennej
	expected := float64(models.Today().DaysSince(models.NewDate(2023, time.May, 15))) * models.FinePerDay
	assert.Equal(t, expected, returned.FineAmount)

	books, err := repo.store.Books()
	require.NoError(t, err)
	assert.Equal(t, 4, books[0].AvailableQuantity)

	// Ponowny zwrot jest odrzucany
	_, _, err = repo.Return(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zostało już zwrócone")
}

func TestBorrowingReturnOnlineMirrorsServerRecord(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SaveBooks(sampleBooks()))
	returnDate := models.Today()
	client := onlineClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/borrowings/1/return", r.URL.Path)
		json.NewEncoder(w).Encode(models.Borrowing{
			ID: 1, BookID: 1, MemberID: 1, Returned: true, ReturnDate: &returnDate, FineAmount: 2,
		})
	}))
	repo := NewBorrowingRepository(client, store)

	returned, degraded, err := repo.Return(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, degraded)
	assert.Equal(t, 2.0, returned.FineAmount)

	// Rekord z serwera trafia do pamięci podręcznej, dostępność rośnie
	borrowings, err := store.Borrowings()
	require.NoError(t, err)
	require.Len(t, borrowings, 1)
	assert.True(t, borrowings[0].Returned)

	books, err := store.Books()
	require.NoError(t, err)
	assert.Equal(t, 4, books[0].AvailableQuantity)
}

func TestBorrowingForMember(t *testing.T) {
	repo := seedBorrowingFixtures(t)

	results, _, err := repo.ForMember(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, results, 1)

	results, _, err = repo.ForMember(context.Background(), 2)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestBorrowingDeleteIsIdempotent(t *testing.T) {
	repo := seedBorrowingFixtures(t)

	_, err := repo.Delete(context.Background(), 1)
	require.NoError(t, err)

	_, _, err = repo.Get(context.Background(), 1)
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = repo.Delete(context.Background(), 1)
	require.NoError(t, err)
}
