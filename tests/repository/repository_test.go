package repository_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"brandforge/pkg/repository"
)

var (
	errMissing = errors.New("brand not found")
	errTaken   = errors.New("brand name already exists")
)

func TestMapError(t *testing.T) {
	otherErr := errors.New("connection reset")
	fkErr := &pgconn.PgError{Code: "23503"}

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil passes through", nil, nil},
		{"no rows becomes not-found", sql.ErrNoRows, errMissing},
		{"wrapped no rows becomes not-found", fmt.Errorf("find: %w", sql.ErrNoRows), errMissing},
		{"unique violation becomes duplicate", &pgconn.PgError{Code: "23505"}, errTaken},
		{"other pg codes pass through", fkErr, fkErr},
		{"unrelated errors pass through", otherErr, otherErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := repository.MapError(tt.in, errMissing, errTaken)

			if tt.want == nil {
				if got != nil {
					t.Errorf("MapError = %v, want nil", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Errorf("MapError = %v, want %v", got, tt.want)
			}
		})
	}
}
