package localstore

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"library-admin-console/internal/models"
)

// Klucze partycji pamięci podręcznej. Każda encja ma dokładnie jedną
// partycję (tablica JSON), token sesji jest zwykłym stringiem.
const (
	KeyBooks      = "books"
	KeyMembers    = "members"
	KeyBorrowings = "borrowings"
	KeyToken      = "token"
)

// Store to lokalna pamięć podręczna konsoli: trwały magazyn klucz/wartość
// przechowujący ostatni znany stan każdej kolekcji oraz token sesji.
// Nie jest bezpieczny dla wielu procesów - ostatni zapis wygrywa.
type Store struct {
	db *sql.DB
}

// Open otwiera (i w razie potrzeby tworzy) plik pamięci podręcznej
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("błąd tworzenia katalogu pamięci podręcznej: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("błąd otwierania pamięci podręcznej: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS cache (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("błąd inicjalizacji schematu pamięci podręcznej: %w", err)
	}

	return &Store{db: db}, nil
}

// Close zamyka plik pamięci podręcznej
func (s *Store) Close() error {
	return s.db.Close()
}

// Get zwraca surową wartość pod kluczem; drugi wynik mówi czy klucz istnieje
func (s *Store) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM cache WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("błąd odczytu klucza %q: %w", key, err)
	}
	return value, true, nil
}

// Set zapisuje surową wartość pod kluczem, nadpisując poprzednią
func (s *Store) Set(key, value string) error {
	_, err := s.db.Exec(`INSERT INTO cache (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("błąd zapisu klucza %q: %w", key, err)
	}
	return nil
}

// Delete usuwa klucz; brak klucza nie jest błędem
func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM cache WHERE key = ?`, key); err != nil {
		return fmt.Errorf("błąd usuwania klucza %q: %w", key, err)
	}
	return nil
}

// loadJSON odczytuje partycję JSON do wskazanej struktury.
// Brak partycji zostawia wartość docelową bez zmian.
func (s *Store) loadJSON(key string, out any) error {
	raw, ok, err := s.Get(key)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("błąd parsowania partycji %q: %w", key, err)
	}
	return nil
}

// saveJSON serializuje wartość i zapisuje ją jako partycję JSON
func (s *Store) saveJSON(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("błąd serializacji partycji %q: %w", key, err)
	}
	return s.Set(key, string(raw))
}

// Books zwraca zapisaną kolekcję książek (pustą gdy partycja nie istnieje)
func (s *Store) Books() ([]models.Book, error) {
	books := []models.Book{}
	if err := s.loadJSON(KeyBooks, &books); err != nil {
		return nil, err
	}
	return books, nil
}

// SaveBooks nadpisuje kolekcję książek
func (s *Store) SaveBooks(books []models.Book) error {
	return s.saveJSON(KeyBooks, books)
}

// Members zwraca zapisaną kolekcję członków (pustą gdy partycja nie istnieje)
func (s *Store) Members() ([]models.Member, error) {
	members := []models.Member{}
	if err := s.loadJSON(KeyMembers, &members); err != nil {
		return nil, err
	}
	return members, nil
}

// SaveMembers nadpisuje kolekcję członków
func (s *Store) SaveMembers(members []models.Member) error {
	return s.saveJSON(KeyMembers, members)
}

// Borrowings zwraca zapisaną kolekcję wypożyczeń (pustą gdy partycja nie istnieje)
func (s *Store) Borrowings() ([]models.Borrowing, error) {
	borrowings := []models.Borrowing{}
	if err := s.loadJSON(KeyBorrowings, &borrowings); err != nil {
		return nil, err
	}
	return borrowings, nil
}

// SaveBorrowings nadpisuje kolekcję wypożyczeń
func (s *Store) SaveBorrowings(borrowings []models.Borrowing) error {
	return s.saveJSON(KeyBorrowings, borrowings)
}

// Token zwraca zapisany token sesji (pusty string gdy brak)
func (s *Store) Token() (string, error) {
	token, _, err := s.Get(KeyToken)
	return token, err
}

// SaveToken zapisuje token sesji
func (s *Store) SaveToken(token string) error {
	return s.Set(KeyToken, token)
}

// ClearToken usuwa token sesji
func (s *Store) ClearToken() error {
	return s.Delete(KeyToken)
}
