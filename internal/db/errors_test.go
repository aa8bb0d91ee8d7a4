package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsInvalidID(t *testing.T) {
	badCast := &pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "ghost"`}

	if !IsInvalidID(badCast) {
		t.Fatalf("uuid cast failure not recognised")
	}
	if !IsInvalidID(fmt.Errorf("exec update: %w", badCast)) {
		t.Fatalf("wrapped uuid cast failure not recognised")
	}
	if IsInvalidID(&pgconn.PgError{Code: "23505"}) {
		t.Fatalf("unique violation misclassified as invalid id")
	}
	if IsInvalidID(errors.New("connection refused")) {
		t.Fatalf("plain error misclassified as invalid id")
	}
	if IsInvalidID(nil) {
		t.Fatalf("nil error misclassified as invalid id")
	}
}
