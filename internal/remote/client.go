package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"
)

// ErrorKind klasyfikuje błędy zdalnego API
type ErrorKind int

const (
	KindNetwork ErrorKind = iota // Błąd transportu lub timeout - brak łączności
	KindServer                   // Serwer odpowiedział statusem spoza 2xx
	KindAuth                     // Odmowa autoryzacji (401/403)
)

// Error to ustrukturyzowany błąd wywołania zdalnego API. Każdy rodzaj
// traktowany jest przez repozytoria jako "serwer niedostępny" i uruchamia
// ścieżkę awaryjną; rodzaj ma znaczenie dla komunikatów i sesji.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
}

// Error zwraca komunikat błędu
func (e *Error) Error() string {
	return e.Message
}

// Client wykonuje wywołania HTTP do API biblioteki. Dokłada token sesji do
// każdego żądania i śledzi stan łączności na podstawie wyników wywołań.
type Client struct {
	baseURL string
	http    *http.Client

	mu             sync.RWMutex
	token          string
	online         bool
	onConnectivity func(online bool)
	onUnauthorized func()
}

// New tworzy klienta API z podanym adresem bazowym i budżetem czasowym
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		online:  true,
	}
}

// SetToken ustawia token dołączany do wszystkich kolejnych żądań
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// ClearToken usuwa token z klienta
func (c *Client) ClearToken() {
	c.SetToken("")
}

// Token zwraca aktualny token (pusty string gdy brak)
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Online zwraca ostatni znany stan łączności
func (c *Client) Online() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.online
}

// OnConnectivityChange rejestruje funkcję wywoływaną przy każdej zmianie
// stanu łączności (odpowiednik zdarzeń online/offline przeglądarki)
func (c *Client) OnConnectivityChange(fn func(online bool)) {
	c.mu.Lock()
	c.onConnectivity = fn
	c.mu.Unlock()
}

// OnUnauthorized rejestruje funkcję wywoływaną po odpowiedzi 401
// (globalne czyszczenie tokenu)
func (c *Client) OnUnauthorized(fn func()) {
	c.mu.Lock()
	c.onUnauthorized = fn
	c.mu.Unlock()
}

// setOnline zapisuje stan łączności i powiadamia o zmianie
func (c *Client) setOnline(online bool) {
	c.mu.Lock()
	changed := c.online != online
	c.online = online
	fn := c.onConnectivity
	c.mu.Unlock()

	if changed && fn != nil {
		fn(online)
	}
}

// StartProbe cyklicznie sprawdza łączność gdy klient jest offline.
// Udana wymiana HTTP przywraca stan online i powiadamia słuchaczy.
// Pętla kończy się wraz z anulowaniem kontekstu.
func (c *Client) StartProbe(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if c.Online() {
					continue
				}
				req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/stats/dashboard", nil)
				if err != nil {
					continue
				}
				resp, err := c.http.Do(req)
				if err != nil {
					continue
				}
				resp.Body.Close()
				// Jakakolwiek odpowiedź HTTP oznacza odzyskaną łączność
				log.Println("Łączność z serwerem przywrócona")
				c.setOnline(true)
			}
		}
	}()
}

// do wykonuje żądanie HTTP z serializacją JSON i klasyfikacją błędów.
// Gdy klient jest offline, żądanie kończy się natychmiast błędem KindNetwork
// bez dotykania sieci, żeby uniknąć zbędnych timeoutów.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	if !c.Online() {
		return &Error{Kind: KindNetwork, Message: "brak połączenia z serwerem (tryb offline)"}
	}

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("błąd serializacji żądania: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("błąd tworzenia żądania: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.setOnline(false)
		return &Error{Kind: KindNetwork, Message: fmt.Sprintf("brak połączenia z serwerem: %v", err)}
	}
	defer resp.Body.Close()

	// Każda zakończona wymiana HTTP oznacza, że serwer jest osiągalny
	c.setOnline(true)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindServer, Status: resp.StatusCode, Message: fmt.Sprintf("błąd odczytu odpowiedzi: %v", err)}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.mu.RLock()
		fn := c.onUnauthorized
		c.mu.RUnlock()
		if fn != nil {
			fn()
		}
		return &Error{Kind: KindAuth, Status: resp.StatusCode, Message: serverMessage(raw, "sesja wygasła - zaloguj się ponownie")}
	}
	if resp.StatusCode == http.StatusForbidden {
		return &Error{Kind: KindAuth, Status: resp.StatusCode, Message: serverMessage(raw, "brak uprawnień do tej operacji")}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Kind: KindServer, Status: resp.StatusCode, Message: serverMessage(raw, fmt.Sprintf("serwer zwrócił status %d", resp.StatusCode))}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return &Error{Kind: KindServer, Status: resp.StatusCode, Message: fmt.Sprintf("błąd parsowania odpowiedzi: %v", err)}
		}
	}
	return nil
}

// serverMessage wyciąga komunikat błędu z odpowiedzi serwera
func serverMessage(raw []byte, fallback string) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return fallback
}
