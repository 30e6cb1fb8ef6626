package localstore

import (
	"fmt"

	"library-admin-console/internal/models"
)

// sampleData zwraca przykładowe rekordy zapisywane przy pierwszym
// uruchomieniu, żeby konsola była używalna bez dostępu do serwera.
func sampleData() ([]models.Book, []models.Member, []models.Borrowing) {
	books := []models.Book{
		{ID: 1, Title: "The Great Gatsby", Author: "F. Scott Fitzgerald", ISBN: "9780743273565", Publisher: "Scribner", PublicationYear: 1925, Quantity: 5, AvailableQuantity: 3},
		{ID: 2, Title: "To Kill a Mockingbird", Author: "Harper Lee", ISBN: "9780061120084", Publisher: "HarperCollins", PublicationYear: 1960, Quantity: 8, AvailableQuantity: 6},
		{ID: 3, Title: "1984", Author: "George Orwell", ISBN: "9780451524935", Publisher: "Signet Classic", PublicationYear: 1949, Quantity: 10, AvailableQuantity: 7},
	}

	members := []models.Member{
		{ID: 1, Name: "John Doe", Email: "john@example.com", PhoneNumber: "1234567890", Address: "123 Main St", Role: models.RoleUser, Active: true,
			MembershipStartDate: models.NewDate(2023, 1, 1), MembershipEndDate: models.NewDate(2024, 1, 1), MaxAllowedBooks: 5, MaxAllowedDays: 14},
		{ID: 2, Name: "Jane Smith", Email: "jane@example.com", PhoneNumber: "0987654321", Address: "456 Oak Ave", Role: models.RoleUser, Active: true,
			MembershipStartDate: models.NewDate(2023, 2, 15), MembershipEndDate: models.NewDate(2024, 2, 15), MaxAllowedBooks: 3, MaxAllowedDays: 10},
		{ID: 3, Name: "Admin User", Email: "admin@example.com", PhoneNumber: "5555555555", Address: "789 Admin Blvd", Role: models.RoleAdmin, Active: true,
			MembershipStartDate: models.NewDate(2023, 1, 1), MembershipEndDate: models.NewDate(2025, 1, 1), MaxAllowedBooks: 10, MaxAllowedDays: 30},
	}

	returnDate := models.NewDate(2023, 4, 23)
	borrowings := []models.Borrowing{
		{ID: 1, BookID: 1, MemberID: 1, BorrowDate: models.NewDate(2023, 5, 1), DueDate: models.NewDate(2023, 5, 15), Returned: false, BookTitle: "The Great Gatsby", MemberName: "John Doe"},
		{ID: 2, BookID: 2, MemberID: 2, BorrowDate: models.NewDate(2023, 4, 15), DueDate: models.NewDate(2023, 4, 25), Returned: true, ReturnDate: &returnDate, FineAmount: 0, BookTitle: "To Kill a Mockingbird", MemberName: "Jane Smith"},
		{ID: 3, BookID: 3, MemberID: 1, BorrowDate: models.NewDate(2023, 5, 10), DueDate: models.NewDate(2023, 5, 24), Returned: false, BookTitle: "1984", MemberName: "John Doe"},
	}

	return books, members, borrowings
}

// Seed zapisuje przykładowe dane do partycji, które jeszcze nie istnieją.
// Wywołanie na zainicjalizowanej pamięci podręcznej niczego nie zmienia.
func (s *Store) Seed() error {
	books, members, borrowings := sampleData()

	if _, ok, err := s.Get(KeyBooks); err != nil {
		return err
	} else if !ok {
		if err := s.SaveBooks(books); err != nil {
			return fmt.Errorf("błąd zapisu przykładowych książek: %w", err)
		}
	}

	if _, ok, err := s.Get(KeyMembers); err != nil {
		return err
	} else if !ok {
		if err := s.SaveMembers(members); err != nil {
			return fmt.Errorf("błąd zapisu przykładowych członków: %w", err)
		}
	}

	if _, ok, err := s.Get(KeyBorrowings); err != nil {
		return err
	} else if !ok {
		if err := s.SaveBorrowings(borrowings); err != nil {
			return fmt.Errorf("błąd zapisu przykładowych wypożyczeń: %w", err)
		}
	}

	return nil
}

// ForceSeed nadpisuje wszystkie partycje przykładowymi danymi
func (s *Store) ForceSeed() error {
	books, members, borrowings := sampleData()

	if err := s.SaveBooks(books); err != nil {
		return err
	}
	if err := s.SaveMembers(members); err != nil {
		return err
	}
	return s.SaveBorrowings(borrowings)
}
