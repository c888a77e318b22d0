package pgdb

import (
	"database/sql"
	"errors"
	"fmt"
	"tender-service/internal/repo/repoerrs"

	"github.com/lib/pq"
)

// dbRunner is satisfied by both *sql.DB and *sql.Tx, letting queries run
// either on the pool or inside a caller's transaction.
type dbRunner interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// finishRollback rolls the transaction back and returns err, keeping the
// rollback's own failure only when it is not the usual "already done".
func finishRollback(tx *sql.Tx, err error) error {
	if e := tx.Rollback(); e != nil && !errors.Is(e, sql.ErrTxDone) {
		return e
	}

	return err
}

// wrapConstraint maps postgres integrity violations onto ErrConstraint so the
// service layer can treat them as one persistence failure kind.
func wrapConstraint(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23503", "23505", "23514":
			return fmt.Errorf("%w: %s", repoerrs.ErrConstraint, pqErr.Constraint)
		}
	}

	return err
}
