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

// MembersHandler obsługuje ekrany zarządzania członkami
type MembersHandler struct {
	sessions     *session.Manager
	members      *repo.MemberRepository
	borrowings   *repo.BorrowingRepository
	listTemplate *template.Template
	formTemplate *template.Template
}

// NewMembersHandler tworzy nowy handler członków
func NewMembersHandler(sessions *session.Manager, members *repo.MemberRepository, borrowings *repo.BorrowingRepository) *MembersHandler {
	listTmpl, err := template.ParseFiles("internal/templates/members/list.html")
	if err != nil {
		log.Printf("Błąd ładowania szablonu members/list.html: %v", err)
	}

	formTmpl, err := template.ParseFiles("internal/templates/members/form.html")
	if err != nil {
		log.Printf("Błąd ładowania szablonu members/form.html: %v", err)
	}

	return &MembersHandler{
		sessions:     sessions,
		members:      members,
		borrowings:   borrowings,
		listTemplate: listTmpl,
		formTemplate: formTmpl,
	}
}

// ListMembers wyświetla listę członków (GET /members)
func (h *MembersHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, degraded, err := h.members.List(r.Context())
	if err != nil {
		log.Printf("Błąd pobierania członków: %v", err)
		http.Error(w, "Nie udało się pobrać listy członków", http.StatusInternalServerError)
		return
	}

	data := NewTemplateData(h.sessions).
		Set("Members", members).
		Set("Degraded", degraded)
	h.render(w, h.listTemplate, data)
}

// ShowNewMemberForm wyświetla formularz nowego członka (GET /members/new)
func (h *MembersHandler) ShowNewMemberForm(w http.ResponseWriter, r *http.Request) {
	data := NewTemplateData(h.sessions).Set("Member", nil).Set("MemberBorrowings", nil)
	h.render(w, h.formTemplate, data)
}

// CreateMember dodaje nowego członka (POST /members)
func (h *MembersHandler) CreateMember(w http.ResponseWriter, r *http.Request) {
	member := models.Member{
		Name:        r.FormValue("name"),
		Email:       r.FormValue("email"),
		Password:    r.FormValue("password"),
		PhoneNumber: r.FormValue("phoneNumber"),
		Address:     r.FormValue("address"),
		Role:        models.Role(r.FormValue("role")),
	}

	if _, _, err := h.members.Create(r.Context(), member); err != nil {
		log.Printf("Błąd tworzenia członka: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	http.Redirect(w, r, "/members", http.StatusSeeOther)
}

// ShowEditMemberForm wyświetla formularz edycji członka wraz z jego
// wypożyczeniami (GET /members/{id}/edit)
func (h *MembersHandler) ShowEditMemberForm(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	member, degraded, err := h.members.Get(r.Context(), id)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, repo.ErrNotFound) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}

	memberBorrowings, _, err := h.borrowings.ForMember(r.Context(), id)
	if err != nil {
		log.Printf("Błąd pobierania wypożyczeń członka %d: %v", id, err)
	}

	data := NewTemplateData(h.sessions).
		Set("Member", member).
		Set("MemberBorrowings", memberBorrowings).
		Set("Degraded", degraded)
	h.render(w, h.formTemplate, data)
}

// UpdateMember zapisuje zmiany członka (POST /members/{id})
func (h *MembersHandler) UpdateMember(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	update, err := memberUpdateFromForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, _, err := h.members.Update(r.Context(), id, update); err != nil {
		log.Printf("Błąd aktualizacji członka %d: %v", id, err)
		status := http.StatusBadRequest
		if errors.Is(err, repo.ErrNotFound) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}

	http.Redirect(w, r, "/members", http.StatusSeeOther)
}

// DeleteMember usuwa członka (POST /members/{id}/delete)
func (h *MembersHandler) DeleteMember(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, err := h.members.Delete(r.Context(), id); err != nil {
		log.Printf("Błąd usuwania członka %d: %v", id, err)
		http.Error(w, "Nie udało się usunąć członka", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/members", http.StatusSeeOther)
}

// render wykonuje szablon z obsługą błędów
func (h *MembersHandler) render(w http.ResponseWriter, tmpl *template.Template, data TemplateData) {
	if tmpl == nil {
		http.Error(w, "Szablon nie został załadowany", http.StatusInternalServerError)
		return
	}
	if err := tmpl.Execute(w, data); err != nil {
		log.Printf("Błąd renderowania strony członków: %v", err)
		http.Error(w, "Błąd renderowania strony", http.StatusInternalServerError)
	}
}

// memberUpdateFromForm buduje częściową aktualizację z pól formularza edycji
func memberUpdateFromForm(r *http.Request) (models.MemberUpdate, error) {
	maxBooks, err := strconv.Atoi(r.FormValue("maxAllowedBooks"))
	if err != nil {
		return models.MemberUpdate{}, errors.New("nieprawidłowy limit książek")
	}
	maxDays, err := strconv.Atoi(r.FormValue("maxAllowedDays"))
	if err != nil {
		return models.MemberUpdate{}, errors.New("nieprawidłowy limit dni")
	}

	update := models.MemberUpdate{
		Name:            strPtr(r.FormValue("name")),
		Email:           strPtr(r.FormValue("email")),
		PhoneNumber:     strPtr(r.FormValue("phoneNumber")),
		Address:         strPtr(r.FormValue("address")),
		Role:            rolePtr(models.Role(r.FormValue("role"))),
		Active:          boolPtr(r.FormValue("active") == "on"),
		MaxAllowedBooks: intPtr(maxBooks),
		MaxAllowedDays:  intPtr(maxDays),
	}

	if raw := r.FormValue("membershipEndDate"); raw != "" {
		endDate, err := models.ParseDate(raw)
		if err != nil {
			return models.MemberUpdate{}, err
		}
		update.MembershipEndDate = datePtr(endDate)
	}

	return update, nil
}
