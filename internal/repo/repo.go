// Pakiet repo zawiera repozytoria odporne na brak łączności: każda operacja
// najpierw próbuje zdalnego API, a przy niepowodzeniu przezroczyście czyta
// i modyfikuje lokalną pamięć podręczną. Wyniki ze ścieżki awaryjnej są
// oznaczane flagą degraded, żeby konsument mógł pokazać tryb offline.
package repo

import "errors"

// ErrNotFound oznacza brak rekordu zarówno na serwerze, jak i w pamięci
// podręcznej. Sprawdzany przez errors.Is.
var ErrNotFound = errors.New("nie znaleziono rekordu")

// nextID wyznacza lokalnie unikalny identyfikator: największe istniejące
// ID plus jeden, lub 1 dla pustej kolekcji
func nextID(ids []int64) int64 {
	var max int64
	for _, id := range ids {
		if id > max {
			max = id
		}
	}
	return max + 1
}
