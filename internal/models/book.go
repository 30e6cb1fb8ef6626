package models

import (
	"fmt"
	"strings"
	"time"
)

// Book reprezentuje książkę w systemie bibliotecznym
type Book struct {
	ID                int64  `json:"id"`
	Title             string `json:"title"`
	Author            string `json:"author"`
	ISBN              string `json:"isbn"`
	Publisher         string `json:"publisher"`
	PublicationYear   int    `json:"publicationYear"`
	Quantity          int    `json:"quantity"`
	AvailableQuantity int    `json:"availableQuantity"`
}

// IsAvailable sprawdza czy książka jest dostępna do wypożyczenia
func (b *Book) IsAvailable() bool {
	return b.AvailableQuantity > 0
}

// DecrementAvailable zmniejsza liczbę dostępnych egzemplarzy
func (b *Book) DecrementAvailable() {
	if b.AvailableQuantity > 0 {
		b.AvailableQuantity--
	}
}

// IncrementAvailable zwiększa liczbę dostępnych egzemplarzy
func (b *Book) IncrementAvailable() {
	if b.AvailableQuantity < b.Quantity {
		b.AvailableQuantity++
	}
}

// MatchesSearch sprawdza czy książka pasuje do frazy wyszukiwania
// (tytuł, autor lub ISBN, bez rozróżniania wielkości liter)
func (b *Book) MatchesSearch(term string) bool {
	if term == "" {
		return true
	}
	termLower := strings.ToLower(term)
	return strings.Contains(strings.ToLower(b.Title), termLower) ||
		strings.Contains(strings.ToLower(b.Author), termLower) ||
		strings.Contains(strings.ToLower(b.ISBN), termLower)
}

// Validate sprawdza poprawność danych książki
func (b *Book) Validate() error {
	if b.Title == "" {
		return fmt.Errorf("tytuł książki jest wymagany")
	}
	if b.Author == "" {
		return fmt.Errorf("autor książki jest wymagany")
	}
	currentYear := time.Now().Year()
	if b.PublicationYear < 1000 || b.PublicationYear > currentYear {
		return fmt.Errorf("rok wydania musi być z zakresu 1000-%d", currentYear)
	}
	if b.Quantity < 1 {
		return fmt.Errorf("liczba egzemplarzy musi być większa od zera")
	}
	if b.AvailableQuantity < 0 || b.AvailableQuantity > b.Quantity {
		return fmt.Errorf("liczba dostępnych egzemplarzy musi być z zakresu 0-%d", b.Quantity)
	}
	return nil
}
