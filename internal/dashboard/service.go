package dashboard

import (
	"context"
	"fmt"
	"sort"

	pkgerrors "github.com/ninamwrites/bookstore-backend/pkg/errors"
	"github.com/ninamwrites/bookstore-backend/pkg/types"
)

const monthLabelLayout = "Jan 2006"

type counter interface {
	Count(ctx context.Context) (int64, error)
}

type monthlyCounter interface {
	counter
	CountByMonth(ctx context.Context) ([]types.MonthlyCount, error)
}

// SeriesPoint is one month of a dashboard chart, labelled like "Mar 2026".
type SeriesPoint struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

// Overview aggregates the headline numbers and charts for the staff dashboard.
type Overview struct {
	Books              int64         `json:"books"`
	Merchandise        int64         `json:"merchandise"`
	Orders             int64         `json:"orders"`
	Subscribers        int64         `json:"subscribers"`
	OrdersByMonth      []SeriesPoint `json:"orders_by_month"`
	SubscribersByMonth []SeriesPoint `json:"subscribers_by_month"`
}

// Service assembles the staff dashboard overview.
type Service interface {
	Overview(ctx context.Context) (*Overview, error)
}

type service struct {
	books       counter
	merch       counter
	orders      monthlyCounter
	subscribers monthlyCounter
}

// NewService builds a dashboard service over the catalog, orders and
// newsletter repositories.
func NewService(books, merch counter, orders, subscribers monthlyCounter) (Service, error) {
	if books == nil || merch == nil {
		return nil, fmt.Errorf("catalog counters required")
	}
	if orders == nil {
		return nil, fmt.Errorf("orders counter required")
	}
	if subscribers == nil {
		return nil, fmt.Errorf("subscribers counter required")
	}
	return &service{books: books, merch: merch, orders: orders, subscribers: subscribers}, nil
}

func (s *service) Overview(ctx context.Context) (*Overview, error) {
	out := &Overview{}

	var err error
	if out.Books, err = s.books.Count(ctx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count books")
	}
	if out.Merchandise, err = s.merch.Count(ctx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count merchandise")
	}
	if out.Orders, err = s.orders.Count(ctx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count orders")
	}
	if out.Subscribers, err = s.subscribers.Count(ctx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count subscribers")
	}

	ordersSeries, err := s.orders.CountByMonth(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "orders by month")
	}
	out.OrdersByMonth = toSeries(ordersSeries)

	subscriberSeries, err := s.subscribers.CountByMonth(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "subscribers by month")
	}
	out.SubscribersByMonth = toSeries(subscriberSeries)

	return out, nil
}

func toSeries(counts []types.MonthlyCount) []SeriesPoint {
	sort.Slice(counts, func(i, j int) bool {
		return counts[i].Month.Before(counts[j].Month)
	})
	out := make([]SeriesPoint, len(counts))
	for i, c := range counts {
		out[i] = SeriesPoint{Month: c.Month.Format(monthLabelLayout), Count: c.Count}
	}
	return out
}
