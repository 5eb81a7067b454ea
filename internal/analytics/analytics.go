// Package analytics derives the admin dashboard figures from a snapshot of
// the store's products and orders.
//
// Every calculator is a pure function of its inputs. The reference instant is
// always passed in by the caller; nothing in this package reads the wall clock
// except the HTTP layer that decides what "now" is.
package analytics

import (
	"context"
	"errors"
	"time"

	"github.com/rogerio-castellano/storefront-analytics/internal/models"
)

// ErrSourceUnavailable is returned when the snapshot could not be fetched.
var ErrSourceUnavailable = errors.New("analytics data source unavailable")

// DataSource supplies the complete current collections. Pagination, if ever
// needed, belongs behind this interface.
type DataSource interface {
	FetchAllProducts(ctx context.Context) ([]models.Product, error)
	FetchAllOrders(ctx context.Context) ([]models.Order, error)
}

// civilDay identifies a calendar day in a given location.
type civilDay struct {
	year  int
	month time.Month
	day   int
}

func dayOf(t time.Time, loc *time.Location) civilDay {
	y, m, d := t.In(loc).Date()
	return civilDay{year: y, month: m, day: d}
}

// withinTrailingDays reports whether t falls in [now - days, now].
func withinTrailingDays(t, now time.Time, days int) bool {
	if t.IsZero() {
		return false
	}
	start := now.AddDate(0, 0, -days)
	return !t.Before(start) && !t.After(now)
}
