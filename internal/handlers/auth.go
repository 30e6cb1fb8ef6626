package handlers

import (
	"html/template"
	"log"
	"net/http"

	"library-admin-console/internal/models"
	"library-admin-console/internal/session"
)

// AuthHandler obsługuje logowanie, rejestrację i wylogowanie operatora
type AuthHandler struct {
	sessions         *session.Manager
	loginTemplate    *template.Template
	registerTemplate *template.Template
}

// NewAuthHandler tworzy nowy handler autoryzacji
func NewAuthHandler(sessions *session.Manager) *AuthHandler {
	loginTmpl, err := template.ParseFiles("internal/templates/auth/login.html")
	if err != nil {
		log.Printf("Błąd ładowania szablonu login.html: %v", err)
	}

	registerTmpl, err := template.ParseFiles("internal/templates/auth/register.html")
	if err != nil {
		log.Printf("Błąd ładowania szablonu register.html: %v", err)
	}

	return &AuthHandler{
		sessions:         sessions,
		loginTemplate:    loginTmpl,
		registerTemplate: registerTmpl,
	}
}

// ShowLoginPage wyświetla stronę logowania (GET /login)
func (h *AuthHandler) ShowLoginPage(w http.ResponseWriter, r *http.Request) {
	h.renderLogin(w, "")
}

// HandleLogin obsługuje logowanie (POST /login)
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	if email == "" || password == "" {
		h.renderLogin(w, "Email i hasło są wymagane")
		return
	}

	if !h.sessions.Login(r.Context(), email, password) {
		h.renderLogin(w, h.sessions.Advisory())
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ShowRegisterPage wyświetla stronę rejestracji (GET /register)
func (h *AuthHandler) ShowRegisterPage(w http.ResponseWriter, r *http.Request) {
	h.renderRegister(w, "")
}

// HandleRegister obsługuje rejestrację (POST /register).
// Po udanej rejestracji operator loguje się własnymi danymi.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	member := models.Member{
		Name:        r.FormValue("name"),
		Email:       r.FormValue("email"),
		Password:    r.FormValue("password"),
		PhoneNumber: r.FormValue("phoneNumber"),
		Address:     r.FormValue("address"),
	}

	if member.Password == "" {
		h.renderRegister(w, "Hasło jest wymagane")
		return
	}

	if !h.sessions.Register(r.Context(), member) {
		h.renderRegister(w, h.sessions.Advisory())
		return
	}

	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// HandleLogout obsługuje wylogowanie (POST /logout)
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Logout()
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// renderLogin renderuje stronę logowania z opcjonalnym błędem
func (h *AuthHandler) renderLogin(w http.ResponseWriter, errMsg string) {
	if h.loginTemplate == nil {
		http.Error(w, "Szablon logowania nie został załadowany", http.StatusInternalServerError)
		return
	}

	data := NewTemplateData(h.sessions).Set("Error", errMsg)
	if err := h.loginTemplate.Execute(w, data); err != nil {
		log.Printf("Błąd renderowania strony logowania: %v", err)
		http.Error(w, "Błąd renderowania strony", http.StatusInternalServerError)
	}
}

// renderRegister renderuje stronę rejestracji z opcjonalnym błędem
func (h *AuthHandler) renderRegister(w http.ResponseWriter, errMsg string) {
	if h.registerTemplate == nil {
		http.Error(w, "Szablon rejestracji nie został załadowany", http.StatusInternalServerError)
		return
	}

	data := NewTemplateData(h.sessions).Set("Error", errMsg)
	if err := h.registerTemplate.Execute(w, data); err != nil {
		log.Printf("Błąd renderowania strony rejestracji: %v", err)
		http.Error(w, "Błąd renderowania strony", http.StatusInternalServerError)
	}
}
