package models

// Struktury częściowej aktualizacji: tylko pola nie-nil są nakładane na
// istniejący rekord. Dzięki temu scalanie jest jawne i typowane, a nieznane
// pola nie mają jak trafić do danych.

// BookUpdate zawiera zmieniane pola książki
type BookUpdate struct {
	Title             *string `json:"title,omitempty"`
	Author            *string `json:"author,omitempty"`
	ISBN              *string `json:"isbn,omitempty"`
	Publisher         *string `json:"publisher,omitempty"`
	PublicationYear   *int    `json:"publicationYear,omitempty"`
	Quantity          *int    `json:"quantity,omitempty"`
	AvailableQuantity *int    `json:"availableQuantity,omitempty"`
}

// Apply nakłada niepuste pola na książkę
func (u BookUpdate) Apply(b *Book) {
	if u.Title != nil {
		b.Title = *u.Title
	}
	if u.Author != nil {
		b.Author = *u.Author
	}
	if u.ISBN != nil {
		b.ISBN = *u.ISBN
	}
	if u.Publisher != nil {
		b.Publisher = *u.Publisher
	}
	if u.PublicationYear != nil {
		b.PublicationYear = *u.PublicationYear
	}
	if u.Quantity != nil {
		b.Quantity = *u.Quantity
	}
	if u.AvailableQuantity != nil {
		b.AvailableQuantity = *u.AvailableQuantity
	}
}

// MemberUpdate zawiera zmieniane pola członka
type MemberUpdate struct {
	Name                *string `json:"name,omitempty"`
	Email               *string `json:"email,omitempty"`
	PhoneNumber         *string `json:"phoneNumber,omitempty"`
	Address             *string `json:"address,omitempty"`
	Role                *Role   `json:"role,omitempty"`
	Active              *bool   `json:"active,omitempty"`
	MembershipStartDate *Date   `json:"membershipStartDate,omitempty"`
	MembershipEndDate   *Date   `json:"membershipEndDate,omitempty"`
	MaxAllowedBooks     *int    `json:"maxAllowedBooks,omitempty"`
	MaxAllowedDays      *int    `json:"maxAllowedDays,omitempty"`
}

// Apply nakłada niepuste pola na członka
func (u MemberUpdate) Apply(m *Member) {
	if u.Name != nil {
		m.Name = *u.Name
	}
	if u.Email != nil {
		m.Email = *u.Email
	}
	if u.PhoneNumber != nil {
		m.PhoneNumber = *u.PhoneNumber
	}
	if u.Address != nil {
		m.Address = *u.Address
	}
	if u.Role != nil {
		m.Role = *u.Role
	}
	if u.Active != nil {
		m.Active = *u.Active
	}
	if u.MembershipStartDate != nil {
		m.MembershipStartDate = *u.MembershipStartDate
	}
	if u.MembershipEndDate != nil {
		m.MembershipEndDate = *u.MembershipEndDate
	}
	if u.MaxAllowedBooks != nil {
		m.MaxAllowedBooks = *u.MaxAllowedBooks
	}
	if u.MaxAllowedDays != nil {
		m.MaxAllowedDays = *u.MaxAllowedDays
	}
}

// BorrowingUpdate zawiera zmieniane pola wypożyczenia
type BorrowingUpdate struct {
	BorrowDate *Date    `json:"borrowDate,omitempty"`
	DueDate    *Date    `json:"dueDate,omitempty"`
	Returned   *bool    `json:"returned,omitempty"`
	ReturnDate *Date    `json:"returnDate,omitempty"`
	FineAmount *float64 `json:"fineAmount,omitempty"`
}

// Apply nakłada niepuste pola na wypożyczenie
func (u BorrowingUpdate) Apply(b *Borrowing) {
	if u.BorrowDate != nil {
		b.BorrowDate = *u.BorrowDate
	}
	if u.DueDate != nil {
		b.DueDate = *u.DueDate
	}
	if u.Returned != nil {
		b.Returned = *u.Returned
	}
	if u.ReturnDate != nil {
		b.ReturnDate = u.ReturnDate
	}
	if u.FineAmount != nil {
		b.FineAmount = *u.FineAmount
	}
}
