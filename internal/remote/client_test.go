package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-admin-console/internal/models"
)

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]models.Book{})
	}))
	defer server.Close()

	client := New(server.URL, time.Second)
	client.SetToken("sekretny-token")

	_, err := client.ListBooks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer sekretny-token", gotAuth)

	client.ClearToken()
	_, err = client.ListBooks(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestServerErrorKindAndMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"message": "baza danych niedostępna"})
	}))
	defer server.Close()

	client := New(server.URL, time.Second)
	_, err := client.ListBooks(context.Background())
	require.Error(t, err)

	var remoteErr *Error
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, KindServer, remoteErr.Kind)
	assert.Equal(t, http.StatusInternalServerError, remoteErr.Status)
	assert.Equal(t, "baza danych niedostępna", remoteErr.Message)

	// Zakończona wymiana HTTP oznacza serwer osiągalny, nawet przy 5xx
	assert.True(t, client.Online())
}

func TestUnauthorizedClearsSessionHook(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := New(server.URL, time.Second)
	var fired atomic.Bool
	client.OnUnauthorized(func() { fired.Store(true) })

	_, err := client.Me(context.Background())
	require.Error(t, err)

	var remoteErr *Error
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, KindAuth, remoteErr.Kind)
	assert.True(t, fired.Load())
}

func TestForbiddenIsAuthKindWithoutHook(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := New(server.URL, time.Second)
	var fired atomic.Bool
	client.OnUnauthorized(func() { fired.Store(true) })

	_, err := client.Me(context.Background())
	require.Error(t, err)

	var remoteErr *Error
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, KindAuth, remoteErr.Kind)
	assert.False(t, fired.Load())
}

func TestNetworkErrorSwitchesOffline(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	serverURL := server.URL
	server.Close() // adres istnieje, serwer już nie

	client := New(serverURL, time.Second)
	var transitions []bool
	client.OnConnectivityChange(func(online bool) { transitions = append(transitions, online) })

	_, err := client.ListBooks(context.Background())
	require.Error(t, err)

	var remoteErr *Error
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, KindNetwork, remoteErr.Kind)
	assert.False(t, client.Online())
	assert.Equal(t, []bool{false}, transitions)
}

func TestOfflineFailsFastWithoutNetwork(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	client := New(server.URL, time.Second)
	client.setOnline(false)

	_, err := client.ListBooks(context.Background())
	require.Error(t, err)

	var remoteErr *Error
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, KindNetwork, remoteErr.Kind)
	assert.Equal(t, int32(0), hits.Load())
}

func TestProbeRestoresConnectivity(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.DashboardStats{})
	}))
	defer server.Close()

	client := New(server.URL, time.Second)
	client.setOnline(false)

	restored := make(chan bool, 1)
	client.OnConnectivityChange(func(online bool) {
		if online {
			restored <- true
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	client.StartProbe(ctx, 10*time.Millisecond)

	select {
	case <-restored:
	case <-time.After(2 * time.Second):
		t.Fatal("sonda nie przywróciła stanu online")
	}
	assert.True(t, client.Online())
}

func TestLoginReturnsTokenAndUser(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)

		var req LoginRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "admin@example.com", req.Email)

		json.NewEncoder(w).Encode(LoginResponse{
			AccessToken: "wydany-token",
			User:        &models.Member{ID: 3, Email: req.Email, Role: models.RoleAdmin},
		})
	}))
	defer server.Close()

	client := New(server.URL, time.Second)
	resp, err := client.Login(context.Background(), "admin@example.com", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "wydany-token", resp.AccessToken)
	require.NotNil(t, resp.User)
	assert.Equal(t, models.RoleAdmin, resp.User.Role)
}

func TestReturnBorrowingUsesDedicatedEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/borrowings/7/return", r.URL.Path)
		json.NewEncoder(w).Encode(models.Borrowing{ID: 7, BookID: 1, MemberID: 2, Returned: true})
	}))
	defer server.Close()

	client := New(server.URL, time.Second)
	returned, err := client.ReturnBorrowing(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, returned.Returned)
}
