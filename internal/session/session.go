// Pakiet session utrzymuje stan zalogowanego operatora konsoli: token,
// bieżącego użytkownika i doradcze komunikaty o trybie offline. Stan jest
// jawnym obiektem z cyklem życia Init/Logout, przekazywanym konsumentom
// przez referencję - bez globalnych zmiennych pakietowych.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"

	"library-admin-console/internal/localstore"
	"library-admin-console/internal/models"
	"library-admin-console/internal/remote"
)

// Options konfiguruje zachowanie managera sesji
type Options struct {
	// OfflineAdminFallback włącza historyczne zachowanie: gdy serwer jest
	// nieosiągalny a token istnieje, pierwszy administrator z pamięci
	// podręcznej staje się tożsamością zastępczą. Domyślnie wyłączone -
	// nieudane pobranie tożsamości zamyka sesję (fail closed).
	OfflineAdminFallback bool
}

// Manager zarządza sesją operatora konsoli. Jest wyłącznym właścicielem
// tokenu i bieżącego użytkownika; synchronizuje token między pamięcią
// podręczną a klientem API.
type Manager struct {
	remote *remote.Client
	store  *localstore.Store
	opts   Options

	mu          sync.RWMutex
	currentUser *models.Member
	advisory    string
}

// NewManager tworzy manager sesji i podpina go pod globalną obsługę 401
// oraz powiadomienia o zmianie łączności klienta API
func NewManager(rc *remote.Client, store *localstore.Store, opts Options) *Manager {
	m := &Manager{remote: rc, store: store, opts: opts}
	rc.OnUnauthorized(m.handleUnauthorized)
	rc.OnConnectivityChange(m.handleConnectivity)
	return m
}

// Init wczytuje utrwalony token i próbuje odtworzyć tożsamość operatora.
// Brak tokenu zostawia sesję anonimową i nie jest błędem.
func (m *Manager) Init(ctx context.Context) error {
	token, err := m.store.Token()
	if err != nil {
		return fmt.Errorf("błąd odczytu tokenu z pamięci podręcznej: %w", err)
	}
	if token == "" {
		return nil
	}

	m.remote.SetToken(token)
	m.FetchCurrentUser(ctx)
	return nil
}

// Login uwierzytelnia operatora. Zwraca true przy sukcesie; szczegóły
// niepowodzenia trafiają do komunikatu doradczego, nigdy do panics/błędów.
// Gdy serwer jest nieosiągalny, logowanie odbywa się na podstawie pamięci
// podręcznej (znany email wystarcza - hasła nie są utrwalane lokalnie).
func (m *Manager) Login(ctx context.Context, email, password string) bool {
	resp, err := m.remote.Login(ctx, email, password)
	if err == nil {
		if saveErr := m.store.SaveToken(resp.AccessToken); saveErr != nil {
			log.Printf("Błąd utrwalania tokenu: %v", saveErr)
		}
		m.remote.SetToken(resp.AccessToken)

		if resp.User != nil {
			m.setUser(resp.User, "")
		} else {
			// Serwer nie zwrócił użytkownika - dociągnij tożsamość
			m.FetchCurrentUser(ctx)
		}
		log.Printf("Użytkownik zalogowany: %s", email)
		return true
	}

	var remoteErr *remote.Error
	if errors.As(err, &remoteErr) && remoteErr.Kind == remote.KindNetwork {
		return m.loginFromCache(email)
	}

	m.setAdvisory(fmt.Sprintf("Logowanie nieudane: %v", err))
	return false
}

// loginFromCache loguje operatora w trybie offline na podstawie partycji
// członków. Token jest syntetyczny i nieprzezroczysty, jak każdy inny.
func (m *Manager) loginFromCache(email string) bool {
	members, err := m.store.Members()
	if err != nil {
		m.setAdvisory(fmt.Sprintf("Logowanie offline nieudane: %v", err))
		return false
	}

	for i := range members {
		if !strings.EqualFold(members[i].Email, email) {
			continue
		}
		token := "offline-" + uuid.NewString()
		if err := m.store.SaveToken(token); err != nil {
			m.setAdvisory(fmt.Sprintf("Logowanie offline nieudane: %v", err))
			return false
		}
		m.remote.SetToken(token)
		m.setUser(&members[i], "Brak połączenia z serwerem - zalogowano na danych lokalnych")
		log.Printf("Użytkownik zalogowany offline: %s", email)
		return true
	}

	m.setAdvisory("Nieprawidłowy email lub hasło")
	return false
}

// Register rejestruje nowego członka (bez automatycznego logowania).
// Gdy serwer jest nieosiągalny, rekord powstaje lokalnie z wymuszoną rolą
// USER i domyślnym oknem członkostwa, żeby praca offline była możliwa.
func (m *Manager) Register(ctx context.Context, member models.Member) bool {
	member.ApplySignupDefaults()
	if err := member.Validate(); err != nil {
		m.setAdvisory(fmt.Sprintf("Rejestracja nieudana: %v", err))
		return false
	}

	if _, err := m.remote.Signup(ctx, member); err == nil {
		log.Printf("Zarejestrowano członka: %s", member.Email)
		return true
	} else {
		var remoteErr *remote.Error
		if !errors.As(err, &remoteErr) || remoteErr.Kind != remote.KindNetwork {
			m.setAdvisory(fmt.Sprintf("Rejestracja nieudana: %v", err))
			return false
		}
	}

	members, err := m.store.Members()
	if err != nil {
		m.setAdvisory(fmt.Sprintf("Rejestracja offline nieudana: %v", err))
		return false
	}
	member.ID = 1
	for _, existing := range members {
		if existing.ID >= member.ID {
			member.ID = existing.ID + 1
		}
	}
	member.Role = models.RoleUser // Offline nie da się nadać wyższej roli
	member.Password = ""
	members = append(members, member)
	if err := m.store.SaveMembers(members); err != nil {
		m.setAdvisory(fmt.Sprintf("Rejestracja offline nieudana: %v", err))
		return false
	}

	m.setAdvisory("Brak połączenia z serwerem - konto utworzono lokalnie")
	log.Printf("Zarejestrowano członka offline: %s", member.Email)
	return true
}

// FetchCurrentUser pobiera tożsamość operatora z serwera. Przy
// niepowodzeniu zachowanie zależy od konfiguracji: domyślnie sesja jest
// zamykana (fail closed); z włączonym OfflineAdminFallback tożsamością
// zastępczą zostaje pierwszy administrator z pamięci podręcznej.
func (m *Manager) FetchCurrentUser(ctx context.Context) {
	member, err := m.remote.Me(ctx)
	if err == nil {
		m.setUser(member, "")
		return
	}
	log.Printf("Pobieranie bieżącego użytkownika nieudane: %v", err)

	if m.opts.OfflineAdminFallback {
		members, cacheErr := m.store.Members()
		if cacheErr == nil {
			for i := range members {
				if members[i].IsAdmin() {
					m.setUser(&members[i], "Brak połączenia z serwerem - tożsamość zastępcza administratora")
					return
				}
			}
		}
	}

	// Fail closed: bez potwierdzonej tożsamości sesja nie istnieje
	m.clearSession(fmt.Sprintf("Nie udało się potwierdzić tożsamości: %v", err))
}

// Logout czyści token (w pamięci podręcznej i kliencie API) oraz bieżącego
// użytkownika. Wywołanie na anonimowej sesji niczego nie zmienia.
func (m *Manager) Logout() {
	m.clearSession("")
}

// CurrentUser zwraca bieżącego użytkownika (nil dla sesji anonimowej)
func (m *Manager) CurrentUser() *models.Member {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentUser
}

// IsAdmin sprawdza czy bieżący użytkownik jest administratorem
func (m *Manager) IsAdmin() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentUser != nil && m.currentUser.IsAdmin()
}

// Offline zwraca ostatni znany stan łączności klienta API
func (m *Manager) Offline() bool {
	return !m.remote.Online()
}

// Advisory zwraca doradczy komunikat dla operatora (pusty gdy brak)
func (m *Manager) Advisory() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.advisory
}

// handleUnauthorized to globalna reakcja na odpowiedź 401: token jest
// czyszczony, a operator wraca do ekranu logowania
func (m *Manager) handleUnauthorized() {
	log.Println("Serwer odrzucił token (401) - czyszczę sesję")
	m.clearSession("Sesja wygasła - zaloguj się ponownie")
}

// handleConnectivity reaguje na zmiany łączności: powrót online odświeża
// tożsamość zalogowanego operatora, przejście offline zostawia stan sesji
// i ustawia tylko komunikat doradczy
func (m *Manager) handleConnectivity(online bool) {
	if online {
		log.Println("Aplikacja wróciła do trybu online")
		m.setAdvisory("")
		if m.CurrentUser() != nil {
			m.FetchCurrentUser(context.Background())
		}
		return
	}

	log.Println("Aplikacja przeszła w tryb offline")
	m.setAdvisory("Brak połączenia z serwerem - używam danych lokalnych")
}

// setUser ustawia bieżącego użytkownika i komunikat doradczy
func (m *Manager) setUser(member *models.Member, advisory string) {
	m.mu.Lock()
	m.currentUser = member
	m.advisory = advisory
	m.mu.Unlock()
}

// setAdvisory ustawia sam komunikat doradczy
func (m *Manager) setAdvisory(advisory string) {
	m.mu.Lock()
	m.advisory = advisory
	m.mu.Unlock()
}

// clearSession czyści token i użytkownika; idempotentne
func (m *Manager) clearSession(advisory string) {
	if err := m.store.ClearToken(); err != nil {
		log.Printf("Błąd czyszczenia tokenu: %v", err)
	}
	m.remote.ClearToken()
	m.mu.Lock()
	m.currentUser = nil
	m.advisory = advisory
	m.mu.Unlock()
}
