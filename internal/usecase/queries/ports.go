package queries

import (
	"kapkurtar/internal/infra"
	"kapkurtar/internal/pkg/errs"
)

// markIfNotFound converts the read store's NOT_FOUND kind into the given
// domain sentinel; other errors pass through for the generic failure path.
func markIfNotFound(err error, sentinel error) error {
	if err == nil {
		return nil
	}
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, sentinel)
	}
	return err
}
