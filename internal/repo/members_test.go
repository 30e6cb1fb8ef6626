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

func sampleMembers() []models.Member {
	return []models.Member{
		{ID: 1, Name: "John Doe", Email: "john@example.com", Role: models.RoleUser, Active: true, MaxAllowedBooks: 5, MaxAllowedDays: 14},
		{ID: 2, Name: "Admin User", Email: "admin@example.com", Role: models.RoleAdmin, Active: true, MaxAllowedBooks: 10, MaxAllowedDays: 30},
	}
}

func TestMemberListFallsBackToCache(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SaveMembers(sampleMembers()))
	repo := NewMemberRepository(offlineClient(t), store)

	members, degraded, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.True(t, degraded)
	assert.Len(t, members, 2)
}

func TestMemberCreateOfflineAppliesDefaultsAndStripsPassword(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SaveMembers(sampleMembers()))
	repo := NewMemberRepository(offlineClient(t), store)

	created, degraded, err := repo.Create(context.Background(), models.Member{
		Name: "Jane Smith", Email: "jane@example.com", Password: "tajne123",
	})
	require.NoError(t, err)
	assert.True(t, degraded)
	assert.Equal(t, int64(3), created.ID)
	assert.Equal(t, models.RoleUser, created.Role)
	assert.True(t, created.Active)
	assert.Equal(t, models.DefaultMaxAllowedBooks, created.MaxAllowedBooks)
	assert.Empty(t, created.Password)

	cached, err := store.Members()
	require.NoError(t, err)
	require.Len(t, cached, 3)
	assert.Empty(t, cached[2].Password)
}

func TestMemberCreateOnlineStripsPasswordFromCache(t *testing.T) {
	store := newTestStore(t)
	client := onlineClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var member models.Member
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&member))
		// Serwer widzi hasło w żądaniu, ale nie zwraca go w odpowiedzi
		assert.Equal(t, "tajne123", member.Password)
		member.ID = 7
		member.Password = ""
		json.NewEncoder(w).Encode(member)
	}))
	repo := NewMemberRepository(client, store)

	created, _, err := repo.Create(context.Background(), models.Member{
		Name: "Jane Smith", Email: "jane@example.com", Password: "tajne123",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)

	cached, err := store.Members()
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.Empty(t, cached[0].Password)
}

func TestMemberUpdateOfflineValidatesMergedRecord(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SaveMembers(sampleMembers()))
	repo := NewMemberRepository(offlineClient(t), store)

	badEmail := "nie-email"
	_, _, err := repo.Update(context.Background(), 1, models.MemberUpdate{Email: &badEmail})
	require.Error(t, err)

	role := models.RoleAdmin
	updated, degraded, err := repo.Update(context.Background(), 1, models.MemberUpdate{Role: &role})
	require.NoError(t, err)
	assert.True(t, degraded)
	assert.Equal(t, models.RoleAdmin, updated.Role)
}

func TestMemberDeleteLeavesBorrowingsUntouched(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.SaveMembers(sampleMembers()))
	require.NoError(t, store.SaveBorrowings([]models.Borrowing{
		{ID: 1, BookID: 1, MemberID: 1, BorrowDate: models.Today(), DueDate: models.Today().AddDays(14)},
	}))
	repo := NewMemberRepository(offlineClient(t), store)

	_, err := repo.Delete(context.Background(), 1)
	require.NoError(t, err)

	_, _, err = repo.Get(context.Background(), 1)
	assert.True(t, errors.Is(err, ErrNotFound))

	borrowings, err := store.Borrowings()
	require.NoError(t, err)
	assert.Len(t, borrowings, 1)
}
