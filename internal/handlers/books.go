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

// BooksHandler obsługuje ekrany zarządzania książkami
type BooksHandler struct {
	sessions     *session.Manager
	books        *repo.BookRepository
	listTemplate *template.Template
	formTemplate *template.Template
}

// NewBooksHandler tworzy nowy handler książek
func NewBooksHandler(sessions *session.Manager, books *repo.BookRepository) *BooksHandler {
	listTmpl, err := template.ParseFiles("internal/templates/books/list.html")
	if err != nil {
		log.Printf("Błąd ładowania szablonu books/list.html: %v", err)
	}

	formTmpl, err := template.ParseFiles("internal/templates/books/form.html")
	if err != nil {
		log.Printf("Błąd ładowania szablonu books/form.html: %v", err)
	}

	return &BooksHandler{
		sessions:     sessions,
		books:        books,
		listTemplate: listTmpl,
		formTemplate: formTmpl,
	}
}

// ListBooks wyświetla listę książek z opcjonalnym wyszukiwaniem
// (GET /books?q=fraza)
func (h *BooksHandler) ListBooks(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")

	books, degraded, err := h.books.Search(r.Context(), term)
	if err != nil {
		log.Printf("Błąd pobierania książek: %v", err)
		http.Error(w, "Nie udało się pobrać listy książek", http.StatusInternalServerError)
		return
	}

	data := NewTemplateData(h.sessions).
		Set("Books", books).
		Set("SearchTerm", term).
		Set("Degraded", degraded)
	h.render(w, h.listTemplate, data)
}

// ShowNewBookForm wyświetla formularz nowej książki (GET /books/new)
func (h *BooksHandler) ShowNewBookForm(w http.ResponseWriter, r *http.Request) {
	data := NewTemplateData(h.sessions).Set("Book", nil)
	h.render(w, h.formTemplate, data)
}

// CreateBook dodaje nową książkę (POST /books)
func (h *BooksHandler) CreateBook(w http.ResponseWriter, r *http.Request) {
	book, err := bookFromForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, _, err := h.books.Create(r.Context(), book); err != nil {
		log.Printf("Błąd tworzenia książki: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	http.Redirect(w, r, "/books", http.StatusSeeOther)
}

// ShowEditBookForm wyświetla formularz edycji książki (GET /books/{id}/edit)
func (h *BooksHandler) ShowEditBookForm(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	book, degraded, err := h.books.Get(r.Context(), id)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repo.ErrNotFound) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}

	data := NewTemplateData(h.sessions).
		Set("Book", book).
		Set("Degraded", degraded)
	h.render(w, h.formTemplate, data)
}

// UpdateBook zapisuje zmiany książki (POST /books/{id})
func (h *BooksHandler) UpdateBook(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	update, err := bookUpdateFromForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, _, err := h.books.Update(r.Context(), id, update); err != nil {
		log.Printf("Błąd aktualizacji książki %d: %v", id, err)
		status := http.StatusBadRequest
		if errors.Is(err, repo.ErrNotFound) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}

	http.Redirect(w, r, "/books", http.StatusSeeOther)
}

// DeleteBook usuwa książkę (POST /books/{id}/delete)
func (h *BooksHandler) DeleteBook(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := h.books.Delete(r.Context(), id); err != nil {
		log.Printf("Błąd usuwania książki %d: %v", id, err)
		http.Error(w, "Nie udało się usunąć książki", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/books", http.StatusSeeOther)
}

// render wykonuje szablon z obsługą błędów
func (h *BooksHandler) render(w http.ResponseWriter, tmpl *template.Template, data TemplateData) {
	if tmpl == nil {
		http.Error(w, "Szablon nie został załadowany", http.StatusInternalServerError)
		return
	}
	if err := tmpl.Execute(w, data); err != nil {
		log.Printf("Błąd renderowania strony książek: %v", err)
		http.Error(w, "Błąd renderowania strony", http.StatusInternalServerError)
	}
}

// bookFromForm buduje książkę z pól formularza
func bookFromForm(r *http.Request) (models.Book, error) {
	year, err := strconv.Atoi(r.FormValue("publicationYear"))
	if err != nil {
		return models.Book{}, errors.New("nieprawidłowy rok wydania")
	}
	quantity, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil {
		return models.Book{}, errors.New("nieprawidłowa liczba egzemplarzy")
	}

	return models.Book{
		Title:           r.FormValue("title"),
		Author:          r.FormValue("author"),
		ISBN:            r.FormValue("isbn"),
		Publisher:       r.FormValue("publisher"),
		PublicationYear: year,
		Quantity:        quantity,
	}, nil
}

// bookUpdateFromForm buduje częściową aktualizację z pól formularza edycji
func bookUpdateFromForm(r *http.Request) (models.BookUpdate, error) {
	year, err := strconv.Atoi(r.FormValue("publicationYear"))
	if err != nil {
		return models.BookUpdate{}, errors.New("nieprawidłowy rok wydania")
	}
	quantity, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil {
		return models.BookUpdate{}, errors.New("nieprawidłowa liczba egzemplarzy")
	}
	available, err := strconv.Atoi(r.FormValue("availableQuantity"))
	if err != nil {
		return models.BookUpdate{}, errors.New("nieprawidłowa liczba dostępnych egzemplarzy")
	}

	return models.BookUpdate{
		Title:             strPtr(r.FormValue("title")),
		Author:            strPtr(r.FormValue("author")),
		ISBN:              strPtr(r.FormValue("isbn")),
		Publisher:         strPtr(r.FormValue("publisher")),
		PublicationYear:   intPtr(year),
		Quantity:          intPtr(quantity),
		AvailableQuantity: intPtr(available),
	}, nil
}
