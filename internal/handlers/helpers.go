package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"library-admin-console/internal/models"
	"library-admin-console/internal/session"
)

// TemplateData zawiera wspólne dane dla wszystkich szablonów
type TemplateData map[string]interface{}

// NewTemplateData tworzy dane szablonu z automatycznym dodaniem stanu sesji
// i trybu offline (baner danych lokalnych)
func NewTemplateData(sessions *session.Manager) TemplateData {
	data := make(TemplateData)

	if user := sessions.CurrentUser(); user != nil {
		data["User"] = user
		data["IsLoggedIn"] = true
		data["IsAdmin"] = user.IsAdmin()
	} else {
		data["User"] = nil
		data["IsLoggedIn"] = false
		data["IsAdmin"] = false
	}

	data["Offline"] = sessions.Offline()
	data["Advisory"] = sessions.Advisory()
	return data
}

// Set ustawia wartość w danych szablonu
func (t TemplateData) Set(key string, value interface{}) TemplateData {
	t[key] = value
	return t
}

// parseID odczytuje parametr {id} z trasy
func parseID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("nieprawidłowe ID %q", raw)
	}
	return id, nil
}

// Pomocnicze konstruktory wskaźników do struktur częściowej aktualizacji

func strPtr(v string) *string { return &v }

func intPtr(v int) *int { return &v }

func boolPtr(v bool) *bool { return &v }

func rolePtr(v models.Role) *models.Role { return &v }

func datePtr(v models.Date) *models.Date { return &v }
