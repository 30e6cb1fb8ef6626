package models

import "fmt"

// FinePerDay to kara za każdy dzień opóźnienia zwrotu
const FinePerDay = 1.0

// DefaultLoanDays to domyślny okres wypożyczenia w dniach
const DefaultLoanDays = 14

// Borrowing reprezentuje wypożyczenie książki
type Borrowing struct {
	ID         int64   `json:"id"`
	BookID     int64   `json:"bookId"`
	MemberID   int64   `json:"memberId"`
	BorrowDate Date    `json:"borrowDate"`
	DueDate    Date    `json:"dueDate"`
	Returned   bool    `json:"returned"`
	ReturnDate *Date   `json:"returnDate,omitempty"` // Ustawiana dopiero przy zwrocie
	FineAmount float64 `json:"fineAmount"`
	BookTitle  string  `json:"bookTitle"`  // Denormalizacja dla łatwiejszego wyświetlania
	MemberName string  `json:"memberName"` // Denormalizacja dla łatwiejszego wyświetlania
}

// IsOverdue sprawdza czy wypożyczenie jest przeterminowane.
// Status jest wyliczany, nigdy nie zapisywany.
func (b *Borrowing) IsOverdue() bool {
	return b.IsOverdueAt(Today())
}

// IsOverdueAt sprawdza przeterminowanie względem podanej daty
func (b *Borrowing) IsOverdueAt(asOf Date) bool {
	return !b.Returned && b.DueDate.Before(asOf)
}

// CalculateFine oblicza karę za opóźnienie względem podanej daty zwrotu
func (b *Borrowing) CalculateFine(returnedAt Date) float64 {
	if !returnedAt.After(b.DueDate) {
		return 0
	}
	daysLate := returnedAt.DaysSince(b.DueDate)
	return float64(daysLate) * FinePerDay
}

// Validate sprawdza poprawność danych wypożyczenia
func (b *Borrowing) Validate() error {
	if b.BookID == 0 {
		return fmt.Errorf("ID książki jest wymagane")
	}
	if b.MemberID == 0 {
		return fmt.Errorf("ID członka jest wymagane")
	}
	if !b.DueDate.IsZero() && !b.BorrowDate.IsZero() && b.DueDate.Before(b.BorrowDate) {
		return fmt.Errorf("termin zwrotu nie może być wcześniejszy niż data wypożyczenia")
	}
	if b.FineAmount < 0 {
		return fmt.Errorf("kara nie może być ujemna")
	}
	return nil
}

// DashboardStats zawiera liczniki wyświetlane na pulpicie
type DashboardStats struct {
	TotalBooks        int `json:"totalBooks"`
	TotalMembers      int `json:"totalMembers"`
	TotalBorrowings   int `json:"totalBorrowings"`
	ActiveBorrowings  int `json:"activeBorrowings"`
	OverdueBorrowings int `json:"overdueBorrowings"`
}
