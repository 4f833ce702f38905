package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestIsUniqueViolationPgx(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("create: %w", &pgconn.PgError{Code: "23505", ConstraintName: "idx_customers_email"})

	if !IsUniqueViolation(err, "") {
		t.Fatal("expected unique violation without constraint filter")
	}
	if !IsUniqueViolation(err, "idx_customers_email") {
		t.Fatal("expected unique violation for matching constraint")
	}
	if IsUniqueViolation(err, "idx_books_isbn") {
		t.Fatal("did not expect match for different constraint")
	}
}

func TestIsUniqueViolationPq(t *testing.T) {
	t.Parallel()

	err := &pq.Error{Code: "23505", Constraint: "idx_books_isbn"}
	if !IsUniqueViolation(err, "idx_books_isbn") {
		t.Fatal("expected pq unique violation to match")
	}
}

func TestIsUniqueViolationOtherErrors(t *testing.T) {
	t.Parallel()

	if IsUniqueViolation(nil, "") {
		t.Fatal("nil error is not a violation")
	}
	if IsUniqueViolation(errors.New("duplicate key value"), "") {
		t.Fatal("plain errors are not violations")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}, "") {
		t.Fatal("foreign key violations are not unique violations")
	}
}
