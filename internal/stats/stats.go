// Pakiet stats wylicza liczniki pulpitu: z dedykowanego endpointu API,
// a przy jego niedostępności przez przeliczenie trzech kolekcji z repozytoriów.
package stats

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"library-admin-console/internal/models"
	"library-admin-console/internal/remote"
	"library-admin-console/internal/repo"
)

// Aggregator dostarcza statystyki pulpitu
type Aggregator struct {
	remote     *remote.Client
	books      *repo.BookRepository
	members    *repo.MemberRepository
	borrowings *repo.BorrowingRepository
}

// NewAggregator tworzy agregator statystyk
func NewAggregator(rc *remote.Client, books *repo.BookRepository, members *repo.MemberRepository, borrowings *repo.BorrowingRepository) *Aggregator {
	return &Aggregator{remote: rc, books: books, members: members, borrowings: borrowings}
}

// Dashboard zwraca liczniki pulpitu. Gdy dedykowany endpoint zawiedzie,
// liczniki są przeliczane z trzech równoległych odczytów kolekcji (każdy
// z nich sam ma ścieżkę awaryjną). Żadne pole nie jest nigdy pomijane -
// brak danych daje zero.
func (a *Aggregator) Dashboard(ctx context.Context) (models.DashboardStats, bool, error) {
	if stats, err := a.remote.DashboardStats(ctx); err == nil {
		return *stats, false, nil
	} else {
		log.Printf("Endpoint statystyk niedostępny, przeliczam z kolekcji: %v", err)
	}

	var (
		books      []models.Book
		members    []models.Member
		borrowings []models.Borrowing
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		books, _, err = a.books.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		members, _, err = a.members.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		borrowings, _, err = a.borrowings.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.DashboardStats{}, true, err
	}

	return Compute(books, members, borrowings, models.Today()), true, nil
}

// Compute przelicza liczniki pulpitu z podanych kolekcji względem daty asOf
func Compute(books []models.Book, members []models.Member, borrowings []models.Borrowing, asOf models.Date) models.DashboardStats {
	stats := models.DashboardStats{
		TotalBooks:      len(books),
		TotalMembers:    len(members),
		TotalBorrowings: len(borrowings),
	}
	for _, borrowing := range borrowings {
		if borrowing.Returned {
			continue
		}
		stats.ActiveBorrowings++
		if borrowing.IsOverdueAt(asOf) {
			stats.OverdueBorrowings++
		}
	}
	return stats
}

// StartRefresher cyklicznie odświeża statystyki i przekazuje wynik do fn
// wraz z flagą degraded. Pętla kończy się wraz z anulowaniem kontekstu,
// żeby nie zostawiać osieroconego tickera po opuszczeniu pulpitu.
func (a *Aggregator) StartRefresher(ctx context.Context, interval time.Duration, fn func(models.DashboardStats, bool)) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				stats, degraded, err := a.Dashboard(ctx)
				if err != nil {
					log.Printf("Błąd odświeżania statystyk: %v", err)
					continue
				}
				fn(stats, degraded)
			}
		}
	}()
}
