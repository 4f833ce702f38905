package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ninamwrites/bookstore-backend/pkg/types"
)

type stubCounter struct {
	count int64
	err   error
}

func (s *stubCounter) Count(context.Context) (int64, error) {
	return s.count, s.err
}

type stubMonthlyCounter struct {
	stubCounter
	months    []types.MonthlyCount
	monthsErr error
}

func (s *stubMonthlyCounter) CountByMonth(context.Context) ([]types.MonthlyCount, error) {
	return s.months, s.monthsErr
}

func month(year int, m time.Month) time.Time {
	return time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
}

func TestOverviewAggregatesCounts(t *testing.T) {
	t.Parallel()

	orders := &stubMonthlyCounter{
		stubCounter: stubCounter{count: 12},
		months: []types.MonthlyCount{
			{Month: month(2026, time.February), Count: 7},
			{Month: month(2026, time.January), Count: 5},
		},
	}
	subscribers := &stubMonthlyCounter{
		stubCounter: stubCounter{count: 40},
		months: []types.MonthlyCount{
			{Month: month(2026, time.January), Count: 40},
		},
	}

	svc, err := NewService(&stubCounter{count: 25}, &stubCounter{count: 9}, orders, subscribers)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	overview, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if overview.Books != 25 || overview.Merchandise != 9 || overview.Orders != 12 || overview.Subscribers != 40 {
		t.Fatalf("unexpected counts: %+v", overview)
	}

	if len(overview.OrdersByMonth) != 2 {
		t.Fatalf("expected 2 order points, got %d", len(overview.OrdersByMonth))
	}
	if overview.OrdersByMonth[0].Month != "Jan 2026" || overview.OrdersByMonth[0].Count != 5 {
		t.Fatalf("expected oldest month first, got %+v", overview.OrdersByMonth[0])
	}
	if overview.OrdersByMonth[1].Month != "Feb 2026" || overview.OrdersByMonth[1].Count != 7 {
		t.Fatalf("unexpected second point: %+v", overview.OrdersByMonth[1])
	}
	if len(overview.SubscribersByMonth) != 1 || overview.SubscribersByMonth[0].Month != "Jan 2026" {
		t.Fatalf("unexpected subscriber series: %+v", overview.SubscribersByMonth)
	}
}

func TestOverviewEmptySeries(t *testing.T) {
	t.Parallel()

	svc, err := NewService(&stubCounter{}, &stubCounter{}, &stubMonthlyCounter{}, &stubMonthlyCounter{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	overview, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if len(overview.OrdersByMonth) != 0 || len(overview.SubscribersByMonth) != 0 {
		t.Fatalf("expected empty series, got %+v", overview)
	}
}

func TestOverviewPropagatesFailures(t *testing.T) {
	t.Parallel()

	svc, err := NewService(
		&stubCounter{err: errors.New("db down")},
		&stubCounter{},
		&stubMonthlyCounter{},
		&stubMonthlyCounter{},
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if _, err := svc.Overview(context.Background()); err == nil {
		t.Fatal("expected error when a counter fails")
	}
}
