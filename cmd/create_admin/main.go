package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"library-admin-console/internal/config"
	"library-admin-console/internal/localstore"
	"library-admin-console/internal/models"
	"library-admin-console/internal/remote"
)

func main() {
	cfg := config.Load()

	fmt.Println("=== Tworzenie konta administratora ===")

	reader := bufio.NewReader(os.Stdin)

	name := prompt(reader, "Imię i nazwisko")
	email := prompt(reader, "Email")

	fmt.Print("Hasło: ")
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		log.Fatalf("Błąd odczytu hasła: %v", err)
	}
	password := strings.TrimSpace(string(bytePassword))
	if password == "" {
		log.Fatal("Hasło nie może być puste")
	}

	admin := models.Member{
		Name:     name,
		Email:    email,
		Password: password,
		Role:     models.RoleAdmin,
	}
	admin.ApplySignupDefaults()
	if err := admin.Validate(); err != nil {
		log.Fatalf("Nieprawidłowe dane administratora: %v", err)
	}

	store, err := localstore.Open(cfg.CachePath)
	if err != nil {
		log.Fatalf("Nie można otworzyć lokalnej pamięci podręcznej: %v", err)
	}
	defer store.Close()

	rc := remote.New(cfg.APIBaseURL, cfg.RequestTimeout)
	ctx := context.Background()

	created, err := rc.Signup(ctx, admin)
	if err != nil {
		var remoteErr *remote.Error
		if !errors.As(err, &remoteErr) || remoteErr.Kind != remote.KindNetwork {
			log.Fatalf("Serwer odrzucił rejestrację: %v", err)
		}

		// Serwer niedostępny - zapisz konto w lokalnej pamięci podręcznej
		log.Printf("UWAGA: serwer niedostępny (%v) - zapisuję konto lokalnie", err)
		created, err = createLocally(store, admin)
		if err != nil {
			log.Fatalf("Błąd zapisu lokalnego: %v", err)
		}
	} else if err := mirrorToCache(store, *created); err != nil {
		log.Printf("UWAGA: nie udało się zapisać kopii lokalnej: %v", err)
	}

	fmt.Println("\n=== Konto administratora utworzone pomyślnie ===")
	fmt.Printf("ID: %d\n", created.ID)
	fmt.Printf("Email: %s\n", created.Email)
	fmt.Printf("Rola: %s\n", created.Role)
	fmt.Println("\nMożesz teraz zalogować się do konsoli.")
}

// prompt odczytuje niepustą linię ze standardowego wejścia
func prompt(reader *bufio.Reader, label string) string {
	for {
		fmt.Printf("%s: ", label)
		line, err := reader.ReadString('\n')
		if err != nil {
			log.Fatalf("Błąd odczytu: %v", err)
		}
		if value := strings.TrimSpace(line); value != "" {
			return value
		}
		fmt.Println("Wartość nie może być pusta")
	}
}

// createLocally dopisuje administratora do lokalnej pamięci podręcznej
func createLocally(store *localstore.Store, admin models.Member) (*models.Member, error) {
	members, err := store.Members()
	if err != nil {
		return nil, err
	}

	for _, existing := range members {
		if strings.EqualFold(existing.Email, admin.Email) {
			return nil, fmt.Errorf("członek z adresem %s już istnieje", admin.Email)
		}
	}

	admin.ID = 1
	for _, existing := range members {
		if existing.ID >= admin.ID {
			admin.ID = existing.ID + 1
		}
	}
	admin.Password = ""

	members = append(members, admin)
	if err := store.SaveMembers(members); err != nil {
		return nil, err
	}
	return &admin, nil
}

// mirrorToCache odkłada utworzone konto do lokalnej pamięci podręcznej
func mirrorToCache(store *localstore.Store, admin models.Member) error {
	members, err := store.Members()
	if err != nil {
		return err
	}

	admin.Password = ""
	replaced := false
	for i, existing := range members {
		if existing.ID == admin.ID {
			members[i] = admin
			replaced = true
			break
		}
	}
	if !replaced {
		members = append(members, admin)
	}
	return store.SaveMembers(members)
}
