package main

import (
	"log"

	"library-admin-console/internal/config"
	"library-admin-console/internal/localstore"
)

func main() {
	cfg := config.Load()

	store, err := localstore.Open(cfg.CachePath)
	if err != nil {
		log.Fatalf("Nie można otworzyć lokalnej pamięci podręcznej: %v", err)
	}
	defer store.Close()

	log.Printf("Zapisywanie przykładowych danych do %s...", cfg.CachePath)

	// ForceSeed nadpisuje wszystkie partycje - istniejące dane zostaną utracone
	if err := store.ForceSeed(); err != nil {
		log.Fatalf("Błąd zapisu przykładowych danych: %v", err)
	}

	log.Println("Przykładowe dane zapisane pomyślnie")
}
