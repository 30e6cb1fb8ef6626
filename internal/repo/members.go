package repo

import (
	"context"
	"fmt"
	"log"

	"library-admin-console/internal/localstore"
	"library-admin-console/internal/models"
	"library-admin-console/internal/remote"
)

// MemberRepository zarządza kolekcją członków z awaryjnym zapasem w pamięci
// podręcznej. Jest wyłącznym właścicielem partycji "members".
type MemberRepository struct {
	remote *remote.Client
	store  *localstore.Store
}

// NewMemberRepository tworzy repozytorium członków
func NewMemberRepository(rc *remote.Client, store *localstore.Store) *MemberRepository {
	return &MemberRepository{remote: rc, store: store}
}

// List pobiera wszystkich członków. Sukces nadpisuje partycję pamięci
// podręcznej; niepowodzenie zwraca jej zawartość z flagą degraded.
func (r *MemberRepository) List(ctx context.Context) ([]models.Member, bool, error) {
	members, err := r.remote.ListMembers(ctx)
	if err == nil {
		if saveErr := r.store.SaveMembers(members); saveErr != nil {
			log.Printf("Błąd zapisu członków do pamięci podręcznej: %v", saveErr)
		}
		return members, false, nil
	}

	log.Printf("Pobieranie członków z API nieudane, używam pamięci podręcznej: %v", err)
	cached, cacheErr := r.store.Members()
	if cacheErr != nil {
		return nil, true, cacheErr
	}
	return cached, true, nil
}

// Get pobiera członka po ID, w razie niepowodzenia szuka go w pamięci
// podręcznej. Zwraca ErrNotFound gdy rekordu nie ma w żadnym źródle.
func (r *MemberRepository) Get(ctx context.Context, id int64) (*models.Member, bool, error) {
	member, err := r.remote.GetMember(ctx, id)
	if err == nil {
		r.mirror(*member)
		return member, false, nil
	}

	members, cacheErr := r.store.Members()
	if cacheErr != nil {
		return nil, true, cacheErr
	}
	for i := range members {
		if members[i].ID == id {
			return &members[i], true, nil
		}
	}
	return nil, true, fmt.Errorf("członek o ID %d: %w (błąd API: %v)", id, ErrNotFound, err)
}

// Create tworzy nowego członka. Offline rekord dostaje lokalny identyfikator
// i domyślne wartości rejestracyjne, a hasło nie jest utrwalane.
func (r *MemberRepository) Create(ctx context.Context, member models.Member) (*models.Member, bool, error) {
	member.ID = 0
	member.ApplySignupDefaults()
	if err := member.Validate(); err != nil {
		return nil, false, err
	}

	created, err := r.remote.CreateMember(ctx, member)
	if err == nil {
		r.appendToCache(*created)
		return created, false, nil
	}

	log.Printf("Tworzenie członka przez API nieudane, zapisuję lokalnie: %v", err)
	members, cacheErr := r.store.Members()
	if cacheErr != nil {
		return nil, true, cacheErr
	}
	member.ID = nextID(memberIDs(members))
	member.Password = "" // Hasło jest tylko do zapisu, nie trafia do pamięci podręcznej
	members = append(members, member)
	if err := r.store.SaveMembers(members); err != nil {
		return nil, true, err
	}
	return &member, true, nil
}

// Update aktualizuje wskazane pola członka. Offline scala je z rekordem
// w pamięci podręcznej; brak rekordu to ErrNotFound.
func (r *MemberRepository) Update(ctx context.Context, id int64, update models.MemberUpdate) (*models.Member, bool, error) {
	updated, err := r.remote.UpdateMember(ctx, id, update)
	if err == nil {
		r.mirror(*updated)
		return updated, false, nil
	}

	members, cacheErr := r.store.Members()
	if cacheErr != nil {
		return nil, true, cacheErr
	}
	for i := range members {
		if members[i].ID != id {
			continue
		}
		update.Apply(&members[i])
		if err := members[i].Validate(); err != nil {
			return nil, true, err
		}
		if err := r.store.SaveMembers(members); err != nil {
			return nil, true, err
		}
		return &members[i], true, nil
	}
	return nil, true, fmt.Errorf("członek o ID %d: %w (błąd API: %v)", id, ErrNotFound, err)
}

// Delete usuwa członka. Usunięcie z pamięci podręcznej jest idempotentne -
// brak rekordu nie jest błędem. Powiązane wypożyczenia nie są ruszane.
func (r *MemberRepository) Delete(ctx context.Context, id int64) (bool, error) {
	err := r.remote.DeleteMember(ctx, id)
	degraded := err != nil
	if degraded {
		log.Printf("Usuwanie członka przez API nieudane, usuwam lokalnie: %v", err)
	}

	members, cacheErr := r.store.Members()
	if cacheErr != nil {
		return degraded, cacheErr
	}
	filtered := members[:0]
	for _, member := range members {
		if member.ID != id {
			filtered = append(filtered, member)
		}
	}
	if err := r.store.SaveMembers(filtered); err != nil {
		return degraded, err
	}
	return degraded, nil
}

// mirror nanosi rekord z serwera na partycję pamięci podręcznej
func (r *MemberRepository) mirror(member models.Member) {
	member.Password = ""
	members, err := r.store.Members()
	if err != nil {
		log.Printf("Błąd odczytu pamięci podręcznej przy synchronizacji członka: %v", err)
		return
	}
	found := false
	for i := range members {
		if members[i].ID == member.ID {
			members[i] = member
			found = true
			break
		}
	}
	if !found {
		members = append(members, member)
	}
	if err := r.store.SaveMembers(members); err != nil {
		log.Printf("Błąd zapisu pamięci podręcznej przy synchronizacji członka: %v", err)
	}
}

// appendToCache dopisuje nowo utworzony rekord do pamięci podręcznej
func (r *MemberRepository) appendToCache(member models.Member) {
	member.Password = ""
	members, err := r.store.Members()
	if err != nil {
		log.Printf("Błąd odczytu pamięci podręcznej przy dopisywaniu członka: %v", err)
		return
	}
	members = append(members, member)
	if err := r.store.SaveMembers(members); err != nil {
		log.Printf("Błąd zapisu pamięci podręcznej przy dopisywaniu członka: %v", err)
	}
}

// memberIDs zwraca identyfikatory wszystkich członków z kolekcji
func memberIDs(members []models.Member) []int64 {
	ids := make([]int64, 0, len(members))
	for _, member := range members {
		ids = append(ids, member.ID)
	}
	return ids
}
