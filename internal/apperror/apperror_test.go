package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "tagged not found", err: New(NotFound, "interview not found"), want: NotFound},
		{name: "wrapped keeps kind", err: fmt.Errorf("outer: %w", New(Validation, "bad")), want: Validation},
		{name: "plain error is transient", err: errors.New("boom"), want: Transient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestStatus(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, Status(New(Unauthenticated, "no session")))
	assert.Equal(t, http.StatusBadRequest, Status(New(Validation, "bad input")))
	assert.Equal(t, http.StatusNotFound, Status(New(NotFound, "gone")))
	assert.Equal(t, http.StatusInternalServerError, Status(errors.New("boom")))
}

func TestMessage_HidesWrappedDetail(t *testing.T) {
	err := Wrap(NotFound, "interview not found", errors.New("pq: permission denied for table interviews"))

	assert.Equal(t, "interview not found", Message(err))
	assert.NotContains(t, Message(err), "permission denied")
}

func TestMessage_UnclassifiedIsGeneric(t *testing.T) {
	assert.Equal(t, "something went wrong", Message(errors.New("dial tcp: refused")))
}

func TestFromStore(t *testing.T) {
	t.Run("no rows becomes not found", func(t *testing.T) {
		err := FromStore(fmt.Errorf("scan: %w", pgx.ErrNoRows), "interview not found")
		require.Error(t, err)
		assert.Equal(t, NotFound, KindOf(err))
		assert.Equal(t, "interview not found", Message(err))
	})

	t.Run("unique violation becomes validation", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23505"}
		err := FromStore(fmt.Errorf("insert: %w", pgErr), "interview not found")
		require.Error(t, err)
		assert.Equal(t, Validation, KindOf(err))
	})

	t.Run("other pg error becomes transient", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: "23503"}
		err := FromStore(fmt.Errorf("insert: %w", pgErr), "interview not found")
		require.Error(t, err)
		assert.Equal(t, Transient, KindOf(err))
	})

	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, FromStore(nil, "whatever"))
	})
}

func TestErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	err := Wrap(Transient, "outer", inner)
	assert.True(t, errors.Is(err, inner))
}
