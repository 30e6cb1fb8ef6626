package models

import (
	"fmt"
	"strings"
)

// Role określa rolę członka w systemie
type Role string

const (
	RoleUser  Role = "USER"  // Czytelnik - korzysta z wypożyczalni
	RoleAdmin Role = "ADMIN" // Administrator - pełny dostęp do konsoli
)

// Domyślne limity członkostwa nadawane przy rejestracji
const (
	DefaultMaxAllowedBooks = 5
	DefaultMaxAllowedDays  = 14
)

// Member reprezentuje członka biblioteki
type Member struct {
	ID                  int64  `json:"id"`
	Name                string `json:"name"`
	Email               string `json:"email"`
	Password            string `json:"password,omitempty"` // Tylko przy tworzeniu, nigdy nie zwracane
	PhoneNumber         string `json:"phoneNumber"`
	Address             string `json:"address"`
	Role                Role   `json:"role"`
	Active              bool   `json:"active"`
	MembershipStartDate Date   `json:"membershipStartDate"`
	MembershipEndDate   Date   `json:"membershipEndDate"`
	MaxAllowedBooks     int    `json:"maxAllowedBooks"`
	MaxAllowedDays      int    `json:"maxAllowedDays"`
}

// IsAdmin sprawdza czy członek jest administratorem
func (m *Member) IsAdmin() bool {
	return m.Role == RoleAdmin
}

// ApplySignupDefaults uzupełnia brakujące pola wartościami domyślnymi
// nadawanymi przy rejestracji (rola USER, członkostwo na rok od dziś)
func (m *Member) ApplySignupDefaults() {
	if m.Role == "" {
		m.Role = RoleUser
	}
	m.Active = true
	if m.MembershipStartDate.IsZero() {
		m.MembershipStartDate = Today()
	}
	if m.MembershipEndDate.IsZero() {
		m.MembershipEndDate = m.MembershipStartDate.AddYears(1)
	}
	if m.MaxAllowedBooks == 0 {
		m.MaxAllowedBooks = DefaultMaxAllowedBooks
	}
	if m.MaxAllowedDays == 0 {
		m.MaxAllowedDays = DefaultMaxAllowedDays
	}
}

// Validate sprawdza poprawność danych członka
func (m *Member) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("imię i nazwisko jest wymagane")
	}
	if !isValidEmail(m.Email) {
		return fmt.Errorf("nieprawidłowy adres email: %q", m.Email)
	}
	if m.Role != "" && m.Role != RoleUser && m.Role != RoleAdmin {
		return fmt.Errorf("nieprawidłowa rola: %q", m.Role)
	}
	if !m.MembershipEndDate.IsZero() && m.MembershipEndDate.Before(m.MembershipStartDate) {
		return fmt.Errorf("data końca członkostwa nie może być wcześniejsza niż data początku")
	}
	return nil
}

// isValidEmail sprawdza podstawowy kształt adresu email
func isValidEmail(email string) bool {
	at := strings.Index(email, "@")
	if at < 1 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	return strings.Contains(domain, ".") && !strings.Contains(email, " ")
}
