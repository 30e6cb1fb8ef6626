package handlers

import (
	"html/template"
	"log"
	"net/http"

	"library-admin-console/internal/session"
	"library-admin-console/internal/stats"
)

// DashboardHandler obsługuje pulpit ze statystykami biblioteki
type DashboardHandler struct {
	sessions  *session.Manager
	stats     *stats.Aggregator
	dashboard *template.Template
}

// NewDashboardHandler tworzy nowy handler pulpitu
func NewDashboardHandler(sessions *session.Manager, aggregator *stats.Aggregator) *DashboardHandler {
	tmpl, err := template.ParseFiles("internal/templates/dashboard.html")
	if err != nil {
		log.Printf("Błąd ładowania szablonu dashboard.html: %v", err)
	}

	return &DashboardHandler{
		sessions:  sessions,
		stats:     aggregator,
		dashboard: tmpl,
	}
}

// ShowDashboard wyświetla pulpit (GET /)
func (h *DashboardHandler) ShowDashboard(w http.ResponseWriter, r *http.Request) {
	if h.dashboard == nil {
		http.Error(w, "Szablon pulpitu nie został załadowany", http.StatusInternalServerError)
		return
	}

	dashboardStats, degraded, err := h.stats.Dashboard(r.Context())
	if err != nil {
		log.Printf("Błąd pobierania statystyk pulpitu: %v", err)
	}

	data := NewTemplateData(h.sessions).
		Set("Stats", dashboardStats).
		Set("Degraded", degraded)
	if err != nil {
		data.Set("Error", err.Error())
	}

	if err := h.dashboard.Execute(w, data); err != nil {
		log.Printf("Błąd renderowania pulpitu: %v", err)
		http.Error(w, "Błąd renderowania strony", http.StatusInternalServerError)
	}
}
