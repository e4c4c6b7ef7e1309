// Package worker runs the periodic maintenance loops of the service.
package worker

import (
    "context"
    "log"
    "time"

    "github.com/iliyamo/student-housing-marketplace/internal/model"
    "github.com/iliyamo/student-housing-marketplace/internal/queue"
    "github.com/iliyamo/student-housing-marketplace/internal/repository"
    queue_publisher "github.com/iliyamo/student-housing-marketplace/internal/service"
)

// ReservationExpiry cancels pending reservations that were never
// confirmed and releases their listings back to disponible.  A
// reservation is stale when it has waited longer than MaxAge or its
// rental window has already started.
type ReservationExpiry struct {
    Reservations *repository.ReservationRepo
    Listings     *repository.ListingRepo
    MaxAge       time.Duration
    Interval     time.Duration
}

// NewReservationExpiry constructs the sweep with a one-minute tick.
func NewReservationExpiry(reservations *repository.ReservationRepo, listings *repository.ListingRepo, maxAge time.Duration) *ReservationExpiry {
    return &ReservationExpiry{
        Reservations: reservations,
        Listings:     listings,
        MaxAge:       maxAge,
        Interval:     time.Minute,
    }
}

// Run blocks until ctx is cancelled, sweeping once per interval.
// Errors are logged and the loop keeps going; a failed sweep is
// retried on the next tick.
func (w *ReservationExpiry) Run(ctx context.Context) {
    ticker := time.NewTicker(w.Interval)
    defer ticker.Stop()

    for {
        select {
        case <-ctx.Done():
            return
        case <-ticker.C:
            if n, err := w.sweep(ctx); err != nil {
                log.Printf("reservation-expiry: sweep failed: %v", err)
            } else if n > 0 {
                log.Printf("reservation-expiry: cancelled %d stale reservation(s)", n)
            }
        }
    }
}

// sweep cancels every stale pending reservation in one transaction
// and returns how many were cancelled.
func (w *ReservationExpiry) sweep(ctx context.Context) (int, error) {
    opCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
    defer cancel()

    tx, err := w.Reservations.DB().BeginTx(opCtx, nil)
    if err != nil {
        return 0, err
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()

    stale, err := w.Reservations.ListStalePendingTx(opCtx, tx, w.MaxAge)
    if err != nil {
        return 0, err
    }
    if len(stale) == 0 {
        return 0, tx.Commit()
    }

    cancelled := make([]repository.StalePending, 0, len(stale))
    for _, s := range stale {
        moved, err := w.Reservations.UpdateStatusIfTx(opCtx, tx, s.ID, model.ReservationPending, model.ReservationCancelled)
        if err != nil {
            return 0, err
        }
        if !moved {
            continue
        }
        // Release the listing only when this reservation still holds it.
        if _, err := w.Listings.UpdateStatusIfTx(opCtx, tx, s.ListingID, model.StatusReserved, model.StatusAvailable); err != nil {
            return 0, err
        }
        cancelled = append(cancelled, s)
    }
    if err := tx.Commit(); err != nil {
        return 0, err
    }
    committed = true

    now := time.Now().UTC().Format(time.RFC3339)
    for _, s := range cancelled {
        ev := queue.ReservationExpiredEvent{ReservationID: s.ID, ListingID: s.ListingID, ExpiredAt: now}
        pubCtx, pubCancel := context.WithTimeout(context.Background(), 10*time.Second)
        _ = queue_publisher.PublishReservationExpired(pubCtx, ev)
        pubCancel()
    }
    return len(cancelled), nil
}
