// Pakiet config wczytuje konfigurację konsoli z pliku .env i zmiennych
// środowiskowych, z rozsądnymi wartościami domyślnymi.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config zawiera pełną konfigurację konsoli administracyjnej
type Config struct {
	Port                 string        // Port serwera konsoli
	APIBaseURL           string        // Adres bazowy API biblioteki (ze ścieżką /api)
	RequestTimeout       time.Duration // Budżet czasowy pojedynczego wywołania API
	CachePath            string        // Ścieżka pliku lokalnej pamięci podręcznej
	StatsRefresh         time.Duration // Interwał odświeżania statystyk pulpitu
	ProbeInterval        time.Duration // Interwał sprawdzania odzyskania łączności
	OfflineAdminFallback bool          // Tożsamość zastępcza administratora w trybie offline
}

// Load wczytuje konfigurację. Plik .env jest opcjonalny.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Brak pliku .env - używam zmiennych systemowych")
	}

	return Config{
		Port:                 getenv("PORT", "8080"),
		APIBaseURL:           getenv("API_BASE_URL", "http://localhost:8081/api"),
		RequestTimeout:       time.Duration(getenvInt("API_TIMEOUT_SECONDS", 5)) * time.Second,
		CachePath:            getenv("CACHE_PATH", "./console-cache.db"),
		StatsRefresh:         time.Duration(getenvInt("STATS_REFRESH_SECONDS", 30)) * time.Second,
		ProbeInterval:        time.Duration(getenvInt("CONNECTIVITY_PROBE_SECONDS", 15)) * time.Second,
		OfflineAdminFallback: getenvBool("OFFLINE_ADMIN_FALLBACK", false),
	}
}

// getenv zwraca wartość zmiennej środowiskowej lub wartość domyślną
func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getenvInt parsuje zmienną liczbową; nieprawidłowa wartość daje domyślną
func getenvInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		log.Printf("Nieprawidłowa wartość %s=%q - używam %d", key, raw, fallback)
		return fallback
	}
	return value
}

// getenvBool parsuje zmienną logiczną; nieprawidłowa wartość daje domyślną
func getenvBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("Nieprawidłowa wartość %s=%q - używam %t", key, raw, fallback)
		return fallback
	}
	return value
}
