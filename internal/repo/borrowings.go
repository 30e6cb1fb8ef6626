package repo

import (
	"context"
	"fmt"
	"log"

	"library-admin-console/internal/localstore"
	"library-admin-console/internal/models"
	"library-admin-console/internal/remote"
)

// BorrowingRepository zarządza kolekcją wypożyczeń z awaryjnym zapasem
// w pamięci podręcznej. Jest wyłącznym właścicielem partycji "borrowings",
// ale przy wypożyczeniu i zwrocie modyfikuje też dostępność książek, bo na
// ścieżce offline nie ma serwera, który przeliczyłby pola denormalizowane.
type BorrowingRepository struct {
	remote *remote.Client
	store  *localstore.Store
}

// NewBorrowingRepository tworzy repozytorium wypożyczeń
func NewBorrowingRepository(rc *remote.Client, store *localstore.Store) *BorrowingRepository {
	return &BorrowingRepository{remote: rc, store: store}
}

// List pobiera wszystkie wypożyczenia. Sukces nadpisuje partycję pamięci
// podręcznej; niepowodzenie zwraca jej zawartość z flagą degraded.
func (r *BorrowingRepository) List(ctx context.Context) ([]models.Borrowing, bool, error) {
	borrowings, err := r.remote.ListBorrowings(ctx)
	if err == nil {
		if saveErr := r.store.SaveBorrowings(borrowings); saveErr != nil {
			log.Printf("Błąd zapisu wypożyczeń do pamięci podręcznej: %v", saveErr)
		}
		return borrowings, false, nil
	}

	log.Printf("Pobieranie wypożyczeń z API nieudane, używam pamięci podręcznej: %v", err)
	cached, cacheErr := r.store.Borrowings()
	if cacheErr != nil {
		return nil, true, cacheErr
	}
	return cached, true, nil
}

// ForMember zwraca wypożyczenia danego członka (filtrowanie po stronie
// konsoli na wyniku List)
func (r *BorrowingRepository) ForMember(ctx context.Context, memberID int64) ([]models.Borrowing, bool, error) {
	borrowings, degraded, err := r.List(ctx)
	if err != nil {
		return nil, degraded, err
	}
	results := []models.Borrowing{}
	for _, borrowing := range borrowings {
		if borrowing.MemberID == memberID {
			results = append(results, borrowing)
		}
	}
	return results, degraded, nil
}

// Get pobiera wypożyczenie po ID, w razie niepowodzenia szuka go w pamięci
// podręcznej. Zwraca ErrNotFound gdy rekordu nie ma w żadnym źródle.
func (r *BorrowingRepository) Get(ctx context.Context, id int64) (*models.Borrowing, bool, error) {
	borrowing, err := r.remote.GetBorrowing(ctx, id)
	if err == nil {
		r.mirror(*borrowing)
		return borrowing, false, nil
	}

	borrowings, cacheErr := r.store.Borrowings()
	if cacheErr != nil {
		return nil, true, cacheErr
	}
	for i := range borrowings {
		if borrowings[i].ID == id {
			return &borrowings[i], true, nil
		}
	}
	return nil, true, fmt.Errorf("wypożyczenie o ID %d: %w (błąd API: %v)", id, ErrNotFound, err)
}

// Create tworzy nowe wypożyczenie i zmniejsza dostępność wypożyczanej
// książki. Na ścieżce offline pola denormalizowane (tytuł, nazwisko) są
// uzupełniane z pamięci podręcznej, a zmiana dostępności jest zapisywana
// dopiero po potwierdzonym zapisie rekordu wypożyczenia.
func (r *BorrowingRepository) Create(ctx context.Context, borrowing models.Borrowing) (*models.Borrowing, bool, error) {
	borrowing.ID = 0
	borrowing.Returned = false
	borrowing.ReturnDate = nil
	if borrowing.BorrowDate.IsZero() {
		borrowing.BorrowDate = models.Today()
	}
	if borrowing.DueDate.IsZero() {
		borrowing.DueDate = borrowing.BorrowDate.AddDays(models.DefaultLoanDays)
	}
	if err := borrowing.Validate(); err != nil {
		return nil, false, err
	}

	created, err := r.remote.CreateBorrowing(ctx, borrowing)
	if err == nil {
		r.mirror(*created)
		r.adjustCachedBookAvailability(created.BookID, -1)
		return created, false, nil
	}

	log.Printf("Tworzenie wypożyczenia przez API nieudane, zapisuję lokalnie: %v", err)
	borrowings, cacheErr := r.store.Borrowings()
	if cacheErr != nil {
		return nil, true, cacheErr
	}
	books, cacheErr := r.store.Books()
	if cacheErr != nil {
		return nil, true, cacheErr
	}
	members, cacheErr := r.store.Members()
	if cacheErr != nil {
		return nil, true, cacheErr
	}

	bookIdx := -1
	for i := range books {
		if books[i].ID == borrowing.BookID {
			bookIdx = i
			break
		}
	}
	var member *models.Member
	for i := range members {
		if members[i].ID == borrowing.MemberID {
			member = &members[i]
			break
		}
	}
	if bookIdx == -1 || member == nil {
		return nil, true, fmt.Errorf("książka lub członek wypożyczenia: %w (błąd API: %v)", ErrNotFound, err)
	}
	if !books[bookIdx].IsAvailable() {
		return nil, true, fmt.Errorf("książka %q nie jest dostępna do wypożyczenia", books[bookIdx].Title)
	}

	borrowing.ID = nextID(borrowingIDs(borrowings))
	borrowing.BookTitle = books[bookIdx].Title
	borrowing.MemberName = member.Name

	borrowings = append(borrowings, borrowing)
	if err := r.store.SaveBorrowings(borrowings); err != nil {
		return nil, true, err
	}

	// Dostępność zmieniamy dopiero po potwierdzonym zapisie wypożyczenia
	books[bookIdx].DecrementAvailable()
	if err := r.store.SaveBooks(books); err != nil {
		return nil, true, err
	}

	return &borrowing, true, nil
}

// Update aktualizuje wskazane pola wypożyczenia. Offline scala je z rekordem
// w pamięci podręcznej; brak rekordu to ErrNotFound.
func (r *BorrowingRepository) Update(ctx context.Context, id int64, update models.BorrowingUpdate) (*models.Borrowing, bool, error) {
	updated, err := r.remote.UpdateBorrowing(ctx, id, update)
	if err == nil {
		r.mirror(*updated)
		return updated, false, nil
	}

	borrowings, cacheErr := r.store.Borrowings()
	if cacheErr != nil {
		return nil, true, cacheErr
	}
	for i := range borrowings {
		if borrowings[i].ID != id {
			continue
		}
		update.Apply(&borrowings[i])
		if err := borrowings[i].Validate(); err != nil {
			return nil, true, err
		}
		if err := r.store.SaveBorrowings(borrowings); err != nil {
			return nil, true, err
		}
		return &borrowings[i], true, nil
	}
	return nil, true, fmt.Errorf("wypożyczenie o ID %d: %w (błąd API: %v)", id, ErrNotFound, err)
}

// Delete usuwa wypożyczenie. Usunięcie z pamięci podręcznej jest
// idempotentne - brak rekordu nie jest błędem.
func (r *BorrowingRepository) Delete(ctx context.Context, id int64) (bool, error) {
	err := r.remote.DeleteBorrowing(ctx, id)
	degraded := err != nil
	if degraded {
		log.Printf("Usuwanie wypożyczenia przez API nieudane, usuwam lokalnie: %v", err)
	}

	borrowings, cacheErr := r.store.Borrowings()
	if cacheErr != nil {
		return degraded, cacheErr
	}
	filtered := borrowings[:0]
	for _, borrowing := range borrowings {
		if borrowing.ID != id {
			filtered = append(filtered, borrowing)
		}
	}
	if err := r.store.SaveBorrowings(filtered); err != nil {
		return degraded, err
	}
	return degraded, nil
}

// Return oznacza wypożyczenie jako zwrócone i zwiększa dostępność książki.
// Offline data zwrotu to dzisiaj, a kara liczona jest według stawki dziennej.
func (r *BorrowingRepository) Return(ctx context.Context, id int64) (*models.Borrowing, bool, error) {
	returned, err := r.remote.ReturnBorrowing(ctx, id)
	if err == nil {
		r.mirror(*returned)
		r.adjustCachedBookAvailability(returned.BookID, 1)
		return returned, false, nil
	}

	log.Printf("Zwrot wypożyczenia przez API nieudany, zapisuję lokalnie: %v", err)
	borrowings, cacheErr := r.store.Borrowings()
	if cacheErr != nil {
		return nil, true, cacheErr
	}
	for i := range borrowings {
		if borrowings[i].ID != id {
			continue
		}
		if borrowings[i].Returned {
			return nil, true, fmt.Errorf("wypożyczenie o ID %d zostało już zwrócone", id)
		}

		today := models.Today()
		borrowings[i].Returned = true
		borrowings[i].ReturnDate = &today
		borrowings[i].FineAmount = borrowings[i].CalculateFine(today)
		if err := r.store.SaveBorrowings(borrowings); err != nil {
			return nil, true, err
		}

		// Dostępność zmieniamy dopiero po potwierdzonym zapisie zwrotu
		r.adjustCachedBookAvailability(borrowings[i].BookID, 1)
		return &borrowings[i], true, nil
	}
	return nil, true, fmt.Errorf("wypożyczenie o ID %d: %w (błąd API: %v)", id, ErrNotFound, err)
}

// adjustCachedBookAvailability koryguje dostępność książki w pamięci
// podręcznej o +1 lub -1, utrzymując spójność pól denormalizowanych
func (r *BorrowingRepository) adjustCachedBookAvailability(bookID int64, delta int) {
	books, err := r.store.Books()
	if err != nil {
		log.Printf("Błąd odczytu pamięci podręcznej przy korekcie dostępności: %v", err)
		return
	}
	for i := range books {
		if books[i].ID != bookID {
			continue
		}
		if delta > 0 {
			books[i].IncrementAvailable()
		} else {
			books[i].DecrementAvailable()
		}
		if err := r.store.SaveBooks(books); err != nil {
			log.Printf("Błąd zapisu pamięci podręcznej przy korekcie dostępności: %v", err)
		}
		return
	}
}

// mirror nanosi rekord z serwera na partycję pamięci podręcznej
func (r *BorrowingRepository) mirror(borrowing models.Borrowing) {
	borrowings, err := r.store.Borrowings()
	if err != nil {
		log.Printf("Błąd odczytu pamięci podręcznej przy synchronizacji wypożyczenia: %v", err)
		return
	}
	found := false
	for i := range borrowings {
		if borrowings[i].ID == borrowing.ID {
			borrowings[i] = borrowing
			found = true
			break
		}
	}
	if !found {
		borrowings = append(borrowings, borrowing)
	}
	if err := r.store.SaveBorrowings(borrowings); err != nil {
		log.Printf("Błąd zapisu pamięci podręcznej przy synchronizacji wypożyczenia: %v", err)
	}
}

// borrowingIDs zwraca identyfikatory wszystkich wypożyczeń z kolekcji
func borrowingIDs(borrowings []models.Borrowing) []int64 {
	ids := make([]int64, 0, len(borrowings))
	for _, borrowing := range borrowings {
		ids = append(ids, borrowing.ID)
	}
	return ids
}
