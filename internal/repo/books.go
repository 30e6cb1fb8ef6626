package repo

import (
	"context"
	"fmt"
	"log"

	"library-admin-console/internal/localstore"
	"library-admin-console/internal/models"
	"library-admin-console/internal/remote"
)

// BookRepository zarządza kolekcją książek z awaryjnym zapasem w pamięci
// podręcznej. Jest wyłącznym właścicielem partycji "books".
type BookRepository struct {
	remote *remote.Client
	store  *localstore.Store
}

// NewBookRepository tworzy repozytorium książek
func NewBookRepository(rc *remote.Client, store *localstore.Store) *BookRepository {
	return &BookRepository{remote: rc, store: store}
}

// List pobiera wszystkie książki. Sukces nadpisuje partycję pamięci
// podręcznej; niepowodzenie zwraca jej zawartość z flagą degraded.
func (r *BookRepository) List(ctx context.Context) ([]models.Book, bool, error) {
	books, err := r.remote.ListBooks(ctx)
	if err == nil {
		if saveErr := r.store.SaveBooks(books); saveErr != nil {
			log.Printf("Błąd zapisu książek do pamięci podręcznej: %v", saveErr)
		}
		return books, false, nil
	}

	log.Printf("Pobieranie książek z API nieudane, używam pamięci podręcznej: %v", err)
	cached, cacheErr := r.store.Books()
	if cacheErr != nil {
		return nil, true, cacheErr
	}
	return cached, true, nil
}

// Search zwraca książki pasujące do frazy (tytuł, autor lub ISBN,
// bez rozróżniania wielkości liter). Filtrowanie odbywa się po stronie
// konsoli na wyniku List.
func (r *BookRepository) Search(ctx context.Context, term string) ([]models.Book, bool, error) {
	books, degraded, err := r.List(ctx)
	if err != nil {
		return nil, degraded, err
	}
	if term == "" {
		return books, degraded, nil
	}

	results := []models.Book{}
	for _, book := range books {
		if book.MatchesSearch(term) {
			results = append(results, book)
		}
	}
	return results, degraded, nil
}

// Get pobiera książkę po ID, w razie niepowodzenia szuka jej w pamięci
// podręcznej. Zwraca ErrNotFound gdy rekordu nie ma w żadnym źródle.
func (r *BookRepository) Get(ctx context.Context, id int64) (*models.Book, bool, error) {
	book, err := r.remote.GetBook(ctx, id)
	if err == nil {
		r.mirror(*book)
		return book, false, nil
	}

	books, cacheErr := r.store.Books()
	if cacheErr != nil {
		return nil, true, cacheErr
	}
	for i := range books {
		if books[i].ID == id {
			return &books[i], true, nil
		}
	}
	return nil, true, fmt.Errorf("książka o ID %d: %w (błąd API: %v)", id, ErrNotFound, err)
}

// Create tworzy nową książkę. Liczba dostępnych egzemplarzy jest zawsze
// wyprowadzana z liczby egzemplarzy. Offline identyfikator jest nadawany
// lokalnie, a rekord trafia do pamięci podręcznej.
func (r *BookRepository) Create(ctx context.Context, book models.Book) (*models.Book, bool, error) {
	book.ID = 0
	book.AvailableQuantity = book.Quantity
	if err := book.Validate(); err != nil {
		return nil, false, err
	}

	created, err := r.remote.CreateBook(ctx, book)
	if err == nil {
		r.appendToCache(*created)
		return created, false, nil
	}

	log.Printf("Tworzenie książki przez API nieudane, zapisuję lokalnie: %v", err)
	books, cacheErr := r.store.Books()
	if cacheErr != nil {
		return nil, true, cacheErr
	}
	book.ID = nextID(bookIDs(books))
	books = append(books, book)
	if err := r.store.SaveBooks(books); err != nil {
		return nil, true, err
	}
	return &book, true, nil
}

// Update aktualizuje wskazane pola książki. Offline scala je z rekordem
// w pamięci podręcznej; brak rekordu to ErrNotFound.
func (r *BookRepository) Update(ctx context.Context, id int64, update models.BookUpdate) (*models.Book, bool, error) {
	updated, err := r.remote.UpdateBook(ctx, id, update)
	if err == nil {
		r.mirror(*updated)
		return updated, false, nil
	}

	books, cacheErr := r.store.Books()
	if cacheErr != nil {
		return nil, true, cacheErr
	}
	for i := range books {
		if books[i].ID != id {
			continue
		}
		update.Apply(&books[i])
		if err := books[i].Validate(); err != nil {
			return nil, true, err
		}
		if err := r.store.SaveBooks(books); err != nil {
			return nil, true, err
		}
		return &books[i], true, nil
	}
	return nil, true, fmt.Errorf("książka o ID %d: %w (błąd API: %v)", id, ErrNotFound, err)
}

// Delete usuwa książkę. Usunięcie z pamięci podręcznej jest idempotentne -
// brak rekordu nie jest błędem. Powiązane wypożyczenia nie są ruszane.
func (r *BookRepository) Delete(ctx context.Context, id int64) (bool, error) {
	err := r.remote.DeleteBook(ctx, id)
	degraded := err != nil
	if degraded {
		log.Printf("Usuwanie książki przez API nieudane, usuwam lokalnie: %v", err)
	}

	books, cacheErr := r.store.Books()
	if cacheErr != nil {
		return degraded, cacheErr
	}
	filtered := books[:0]
	for _, book := range books {
		if book.ID != id {
			filtered = append(filtered, book)
		}
	}
	if err := r.store.SaveBooks(filtered); err != nil {
		return degraded, err
	}
	return degraded, nil
}

// mirror nanosi rekord z serwera na partycję pamięci podręcznej,
// żeby oba źródła pozostały spójne
func (r *BookRepository) mirror(book models.Book) {
	books, err := r.store.Books()
	if err != nil {
		log.Printf("Błąd odczytu pamięci podręcznej przy synchronizacji książki: %v", err)
		return
	}
	found := false
	for i := range books {
		if books[i].ID == book.ID {
			books[i] = book
			found = true
			break
		}
	}
	if !found {
		books = append(books, book)
	}
	if err := r.store.SaveBooks(books); err != nil {
		log.Printf("Błąd zapisu pamięci podręcznej przy synchronizacji książki: %v", err)
	}
}

// appendToCache dopisuje nowo utworzony rekord do pamięci podręcznej
func (r *BookRepository) appendToCache(book models.Book) {
	books, err := r.store.Books()
	if err != nil {
		log.Printf("Błąd odczytu pamięci podręcznej przy dopisywaniu książki: %v", err)
		return
	}
	books = append(books, book)
	if err := r.store.SaveBooks(books); err != nil {
		log.Printf("Błąd zapisu pamięci podręcznej przy dopisywaniu książki: %v", err)
	}
}

// bookIDs zwraca identyfikatory wszystkich książek z kolekcji
func bookIDs(books []models.Book) []int64 {
	ids := make([]int64, 0, len(books))
	for _, book := range books {
		ids = append(ids, book.ID)
	}
	return ids
}
