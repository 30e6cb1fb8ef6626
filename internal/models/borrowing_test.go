package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBorrowingIsOverdueAt(t *testing.T) {
	borrowing := Borrowing{
		BookID:     1,
		MemberID:   1,
		BorrowDate: NewDate(2023, time.May, 1),
		DueDate:    NewDate(2023, time.May, 15),
	}

	assert.False(t, borrowing.IsOverdueAt(NewDate(2023, time.May, 15)))
	assert.True(t, borrowing.IsOverdueAt(NewDate(2023, time.May, 16)))

	// Zwrócone wypożyczenie nigdy nie jest przeterminowane
	borrowing.Returned = true
	assert.False(t, borrowing.IsOverdueAt(NewDate(2023, time.June, 1)))
}

func TestBorrowingCalculateFine(t *testing.T) {
	borrowing := Borrowing{DueDate: NewDate(2023, time.May, 15)}

	assert.Equal(t, 0.0, borrowing.CalculateFine(NewDate(2023, time.May, 10)))
	assert.Equal(t, 0.0, borrowing.CalculateFine(NewDate(2023, time.May, 15)))
	assert.Equal(t, 1.0, borrowing.CalculateFine(NewDate(2023, time.May, 16)))
	assert.Equal(t, 3.0, borrowing.CalculateFine(NewDate(2023, time.May, 18)))
}

func TestBorrowingValidate(t *testing.T) {
	borrowing := Borrowing{
		BookID:     1,
		MemberID:   2,
		BorrowDate: NewDate(2023, time.May, 1),
		DueDate:    NewDate(2023, time.May, 15),
	}
	assert.NoError(t, borrowing.Validate())

	missingBook := borrowing
	missingBook.BookID = 0
	assert.Error(t, missingBook.Validate())

	missingMember := borrowing
	missingMember.MemberID = 0
	assert.Error(t, missingMember.Validate())

	badDueDate := borrowing
	badDueDate.DueDate = NewDate(2023, time.April, 30)
	assert.Error(t, badDueDate.Validate())

	negativeFine := borrowing
	negativeFine.FineAmount = -1
	assert.Error(t, negativeFine.Validate())
}
