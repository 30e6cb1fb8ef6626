package remote

import (
	"context"
	"fmt"
	"net/http"

	"library-admin-console/internal/models"
)

// LoginRequest to ciało żądania logowania
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse to odpowiedź serwera na logowanie. Pole User może być
// puste - wtedy tożsamość trzeba dociągnąć przez Me.
type LoginResponse struct {
	AccessToken string         `json:"accessToken"`
	User        *models.Member `json:"user"`
}

// Login uwierzytelnia użytkownika emailem i hasłem
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Signup rejestruje nowego członka (bez automatycznego logowania)
func (c *Client) Signup(ctx context.Context, member models.Member) (*models.Member, error) {
	var created models.Member
	if err := c.do(ctx, http.MethodPost, "/auth/signup", member, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Me zwraca aktualnie zalogowanego członka
func (c *Client) Me(ctx context.Context) (*models.Member, error) {
	var member models.Member
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

// ListBooks pobiera wszystkie książki
func (c *Client) ListBooks(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	if err := c.do(ctx, http.MethodGet, "/books", nil, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// GetBook pobiera książkę po ID
func (c *Client) GetBook(ctx context.Context, id int64) (*models.Book, error) {
	var book models.Book
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/books/%d", id), nil, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// CreateBook tworzy nową książkę
func (c *Client) CreateBook(ctx context.Context, book models.Book) (*models.Book, error) {
	var created models.Book
	if err := c.do(ctx, http.MethodPost, "/books", book, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateBook aktualizuje wskazane pola książki
func (c *Client) UpdateBook(ctx context.Context, id int64, update models.BookUpdate) (*models.Book, error) {
	var updated models.Book
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/books/%d", id), update, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteBook usuwa książkę
func (c *Client) DeleteBook(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/books/%d", id), nil, nil)
}

// ListMembers pobiera wszystkich członków
func (c *Client) ListMembers(ctx context.Context) ([]models.Member, error) {
	var members []models.Member
	if err := c.do(ctx, http.MethodGet, "/members", nil, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// GetMember pobiera członka po ID
func (c *Client) GetMember(ctx context.Context, id int64) (*models.Member, error) {
	var member models.Member
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/members/%d", id), nil, &member); err != nil {
		return nil, err
	}
	return &member, nil
}

// CreateMember tworzy nowego członka
func (c *Client) CreateMember(ctx context.Context, member models.Member) (*models.Member, error) {
	var created models.Member
	if err := c.do(ctx, http.MethodPost, "/members", member, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateMember aktualizuje wskazane pola członka
func (c *Client) UpdateMember(ctx context.Context, id int64, update models.MemberUpdate) (*models.Member, error) {
	var updated models.Member
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/members/%d", id), update, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteMember usuwa członka
func (c *Client) DeleteMember(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/members/%d", id), nil, nil)
}

// ListBorrowings pobiera wszystkie wypożyczenia
func (c *Client) ListBorrowings(ctx context.Context) ([]models.Borrowing, error) {
	var borrowings []models.Borrowing
	if err := c.do(ctx, http.MethodGet, "/borrowings", nil, &borrowings); err != nil {
		return nil, err
	}
	return borrowings, nil
}

// GetBorrowing pobiera wypożyczenie po ID
func (c *Client) GetBorrowing(ctx context.Context, id int64) (*models.Borrowing, error) {
	var borrowing models.Borrowing
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/borrowings/%d", id), nil, &borrowing); err != nil {
		return nil, err
	}
	return &borrowing, nil
}

// CreateBorrowing tworzy nowe wypożyczenie
func (c *Client) CreateBorrowing(ctx context.Context, borrowing models.Borrowing) (*models.Borrowing, error) {
	var created models.Borrowing
	if err := c.do(ctx, http.MethodPost, "/borrowings", borrowing, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateBorrowing aktualizuje wskazane pola wypożyczenia
func (c *Client) UpdateBorrowing(ctx context.Context, id int64, update models.BorrowingUpdate) (*models.Borrowing, error) {
	var updated models.Borrowing
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/borrowings/%d", id), update, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteBorrowing usuwa wypożyczenie
func (c *Client) DeleteBorrowing(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/borrowings/%d", id), nil, nil)
}

// ReturnBorrowing oznacza wypożyczenie jako zwrócone
func (c *Client) ReturnBorrowing(ctx context.Context, id int64) (*models.Borrowing, error) {
	var returned models.Borrowing
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/borrowings/%d/return", id), nil, &returned); err != nil {
		return nil, err
	}
	return &returned, nil
}

// DashboardStats pobiera liczniki pulpitu z dedykowanego endpointu
func (c *Client) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	if err := c.do(ctx, http.MethodGet, "/stats/dashboard", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
