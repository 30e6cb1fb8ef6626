package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"library-admin-console/internal/config"
	"library-admin-console/internal/handlers"
	"library-admin-console/internal/localstore"
	authmw "library-admin-console/internal/middleware"
	"library-admin-console/internal/models"
	"library-admin-console/internal/remote"
	"library-admin-console/internal/repo"
	"library-admin-console/internal/session"
	"library-admin-console/internal/stats"
)

func main() {
	cfg := config.Load()

	// Lokalna pamięć podręczna - działa także bez serwera API
	store, err := localstore.Open(cfg.CachePath)
	if err != nil {
		log.Fatalf("Nie można otworzyć lokalnej pamięci podręcznej: %v", err)
	}
	defer store.Close()

	if err := store.Seed(); err != nil {
		log.Printf("UWAGA: nie udało się zasilić pamięci podręcznej danymi startowymi: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Klient zdalnego API z sondą odzyskiwania łączności
	rc := remote.New(cfg.APIBaseURL, cfg.RequestTimeout)
	rc.StartProbe(ctx, cfg.ProbeInterval)

	// Sesja operatora konsoli
	sessions := session.NewManager(rc, store, session.Options{
		OfflineAdminFallback: cfg.OfflineAdminFallback,
	})
	if err := sessions.Init(ctx); err != nil {
		log.Printf("UWAGA: nie udało się przywrócić sesji: %v", err)
	}

	// Repozytoria z przezroczystym trybem awaryjnym
	books := repo.NewBookRepository(rc, store)
	members := repo.NewMemberRepository(rc, store)
	borrowings := repo.NewBorrowingRepository(rc, store)

	// Agregator statystyk pulpitu z odświeżaniem w tle
	aggregator := stats.NewAggregator(rc, books, members, borrowings)
	aggregator.StartRefresher(ctx, cfg.StatsRefresh, func(s models.DashboardStats, degraded bool) {
		if degraded {
			log.Printf("Statystyki (lokalnie): książki=%d członkowie=%d wypożyczenia=%d aktywne=%d przeterminowane=%d",
				s.TotalBooks, s.TotalMembers, s.TotalBorrowings, s.ActiveBorrowings, s.OverdueBorrowings)
		}
	})

	// Inicjalizacja routera Chi
	r := chi.NewRouter()

	// Middleware do logowania requestów
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Serwowanie plików statycznych (CSS)
	fileServer := http.FileServer(http.Dir("./static"))
	r.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	// Inicjalizacja handlerów
	authHandler := handlers.NewAuthHandler(sessions)
	dashboardHandler := handlers.NewDashboardHandler(sessions, aggregator)
	booksHandler := handlers.NewBooksHandler(sessions, books)
	membersHandler := handlers.NewMembersHandler(sessions, members, borrowings)
	borrowingsHandler := handlers.NewBorrowingsHandler(sessions, borrowings, books, members)

	// Routy dla autoryzacji
	r.Get("/login", authHandler.ShowLoginPage)
	r.Post("/login", authHandler.HandleLogin)
	r.Get("/register", authHandler.ShowRegisterPage)
	r.Post("/register", authHandler.HandleRegister)
	r.Post("/logout", authHandler.HandleLogout)

	// Pulpit (wymaga logowania)
	r.Group(func(r chi.Router) {
		r.Use(authmw.RequireLogin(sessions))
		r.Get("/", dashboardHandler.ShowDashboard)
	})

	// Zarządzanie książkami
	r.Route("/books", func(r chi.Router) {
		r.Use(authmw.RequireLogin(sessions))
		r.Get("/", booksHandler.ListBooks)

		// Modyfikacje katalogu (tylko dla adminów)
		r.Group(func(r chi.Router) {
			r.Use(authmw.RequireAdmin(sessions))
			r.Get("/new", booksHandler.ShowNewBookForm)
			r.Post("/", booksHandler.CreateBook)
			r.Get("/{id}/edit", booksHandler.ShowEditBookForm)
			r.Post("/{id}", booksHandler.UpdateBook)
			r.Post("/{id}/delete", booksHandler.DeleteBook)
		})
	})

	// Zarządzanie członkami (tylko dla adminów)
	r.Route("/members", func(r chi.Router) {
		r.Use(authmw.RequireLogin(sessions))
		r.Use(authmw.RequireAdmin(sessions))
		r.Get("/", membersHandler.ListMembers)
		r.Get("/new", membersHandler.ShowNewMemberForm)
		r.Post("/", membersHandler.CreateMember)
		r.Get("/{id}/edit", membersHandler.ShowEditMemberForm)
		r.Post("/{id}", membersHandler.UpdateMember)
		r.Post("/{id}/delete", membersHandler.DeleteMember)
	})

	// Zarządzanie wypożyczeniami
	r.Route("/borrowings", func(r chi.Router) {
		r.Use(authmw.RequireLogin(sessions))
		r.Get("/", borrowingsHandler.ListBorrowings)
		r.Get("/new", borrowingsHandler.ShowNewBorrowingForm)
		r.Post("/", borrowingsHandler.CreateBorrowing)
		r.Post("/{id}/return", borrowingsHandler.ReturnBorrowing)

		r.Group(func(r chi.Router) {
			r.Use(authmw.RequireAdmin(sessions))
			r.Post("/{id}/delete", borrowingsHandler.DeleteBorrowing)
		})
	})

	// Start serwera
	log.Printf("Konsola administracyjna uruchomiona na porcie %s (API: %s)", cfg.Port, cfg.APIBaseURL)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalf("Nie można uruchomić serwera: %v", err)
	}
}
