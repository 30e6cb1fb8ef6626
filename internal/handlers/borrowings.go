package handlers

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"library-admin-console/internal/models"
	"library-admin-console/internal/repo"
	"library-admin-console/internal/session"
)

// BorrowingsHandler obsługuje ekrany wypożyczeń i zwrotów
type BorrowingsHandler struct {
	sessions     *session.Manager
	borrowings   *repo.BorrowingRepository
	books        *repo.BookRepository
	members      *repo.MemberRepository
	listTemplate *template.Template
	formTemplate *template.Template
}

// NewBorrowingsHandler tworzy nowy handler wypożyczeń
func NewBorrowingsHandler(sessions *session.Manager, borrowings *repo.BorrowingRepository, books *repo.BookRepository, members *repo.MemberRepository) *BorrowingsHandler {
	listTmpl, err := template.ParseFiles("internal/templates/borrowings/list.html")
	if err != nil {
		log.Printf("Błąd ładowania szablonu borrowings/list.html: %v", err)
	}

	formTmpl, err := template.ParseFiles("internal/templates/borrowings/form.html")
	if err != nil {
		log.Printf("Błąd ładowania szablonu borrowings/form.html: %v", err)
	}

	return &BorrowingsHandler{
		sessions:     sessions,
		borrowings:   borrowings,
		books:        books,
		members:      members,
		listTemplate: listTmpl,
		formTemplate: formTmpl,
	}
}

// ListBorrowings wyświetla listę wypożyczeń (GET /borrowings)
func (h *BorrowingsHandler) ListBorrowings(w http.ResponseWriter, r *http.Request) {
	borrowings, degraded, err := h.borrowings.List(r.Context())
	if err != nil {
		log.Printf("Błąd pobierania wypożyczeń: %v", err)
		http.Error(w, "Nie udało się pobrać listy wypożyczeń", http.StatusInternalServerError)
		return
	}

	data := NewTemplateData(h.sessions).
		Set("Borrowings", borrowings).
		Set("Degraded", degraded)
	h.render(w, h.listTemplate, data)
}

// ShowNewBorrowingForm wyświetla formularz nowego wypożyczenia z listami
// dostępnych książek i aktywnych członków (GET /borrowings/new)
func (h *BorrowingsHandler) ShowNewBorrowingForm(w http.ResponseWriter, r *http.Request) {
	books, _, err := h.books.List(r.Context())
	if err != nil {
		log.Printf("Błąd pobierania książek do formularza: %v", err)
	}
	members, _, err := h.members.List(r.Context())
	if err != nil {
		log.Printf("Błąd pobierania członków do formularza: %v", err)
	}

	available := []models.Book{}
	for _, book := range books {
		if book.IsAvailable() {
			available = append(available, book)
		}
	}
	active := []models.Member{}
	for _, member := range members {
		if member.Active {
			active = append(active, member)
		}
	}

	data := NewTemplateData(h.sessions).
		Set("Books", available).
		Set("Members", active)
	h.render(w, h.formTemplate, data)
}

// CreateBorrowing rejestruje nowe wypożyczenie (POST /borrowings)
func (h *BorrowingsHandler) CreateBorrowing(w http.ResponseWriter, r *http.Request) {
	bookID, err := strconv.ParseInt(r.FormValue("bookId"), 10, 64)
	if err != nil {
		http.Error(w, "Nieprawidłowe ID książki", http.StatusBadRequest)
		return
	}
	memberID, err := strconv.ParseInt(r.FormValue("memberId"), 10, 64)
	if err != nil {
		http.Error(w, "Nieprawidłowe ID członka", http.StatusBadRequest)
		return
	}

	borrowing := models.Borrowing{BookID: bookID, MemberID: memberID}
	if raw := r.FormValue("dueDate"); raw != "" {
		dueDate, err := models.ParseDate(raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		borrowing.DueDate = dueDate
	}

	if _, _, err := h.borrowings.Create(r.Context(), borrowing); err != nil {
		log.Printf("Błąd tworzenia wypożyczenia: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	http.Redirect(w, r, "/borrowings", http.StatusSeeOther)
}

// ReturnBorrowing oznacza wypożyczenie jako zwrócone
// (POST /borrowings/{id}/return)
func (h *BorrowingsHandler) ReturnBorrowing(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, _, err := h.borrowings.Return(r.Context(), id); err != nil {
		log.Printf("Błąd zwrotu wypożyczenia %d: %v", id, err)
		status := http.StatusBadRequest
		if errors.Is(err, repo.ErrNotFound) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}

	http.Redirect(w, r, "/borrowings", http.StatusSeeOther)
}

// DeleteBorrowing usuwa rekord wypożyczenia (POST /borrowings/{id}/delete)
func (h *BorrowingsHandler) DeleteBorrowing(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := h.borrowings.Delete(r.Context(), id); err != nil {
		log.Printf("Błąd usuwania wypożyczenia %d: %v", id, err)
		http.Error(w, "Nie udało się usunąć wypożyczenia", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/borrowings", http.StatusSeeOther)
}

// render wykonuje szablon z obsługą błędów
func (h *BorrowingsHandler) render(w http.ResponseWriter, tmpl *template.Template, data TemplateData) {
	if tmpl == nil {
		http.Error(w, "Szablon nie został załadowany", http.StatusInternalServerError)
		return
	}
	if err := tmpl.Execute(w, data); err != nil {
		log.Printf("Błąd renderowania strony wypożyczeń: %v", err)
		http.Error(w, "Błąd renderowania strony", http.StatusInternalServerError)
	}
}
