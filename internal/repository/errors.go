package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// ErrDuplicate marks unique constraint violations surfaced by the store. The
// uniqueness pre-checks in the services are read-then-write, so the database
// constraints are the authoritative backstop under concurrent writes.
var ErrDuplicate = errors.New("duplicate key value")

func wrapWriteError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return fmt.Errorf("%s: %w", op, ErrDuplicate)
	}
	return fmt.Errorf("%s: %w", op, err)
}
