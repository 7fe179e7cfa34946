package database

import (
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrConflict    = errors.New("conflicts with an existing row")
	ErrRejected    = errors.New("rejected by the store")
	ErrUnavailable = errors.New("store unavailable")
	ErrNotFound    = errors.New("record not found")
)

// Kind says how a write failed.
type Kind int

const (
	KindUnavailable Kind = iota
	KindConflict
	KindRejected
)

func (k Kind) String() string {
	switch k {
	case KindConflict:
		return "conflict"
	case KindRejected:
		return "rejected"
	default:
		return "unavailable"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindConflict:
		return ErrConflict
	case KindRejected:
		return ErrRejected
	default:
		return ErrUnavailable
	}
}

// ConnectionError is returned when a session to the store cannot be
// established.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connect to database: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// WriteError is returned by every failed insert. errors.Is matches it
// against ErrConflict, ErrRejected or ErrUnavailable depending on Kind.
type WriteError struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

func (e *WriteError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

func writeError(op string, err error) *WriteError {
	return &WriteError{Op: op, Kind: classify(err), Err: err}
}

func rejected(op string, err error) *WriteError {
	return &WriteError{Op: op, Kind: KindRejected, Err: err}
}

// classify maps a driver or gorm error onto a Kind. Errors the server
// answered with are Conflict or Rejected; everything else means the
// store never gave a verdict.
func classify(err error) Kind {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return KindConflict
	case errors.Is(err, gorm.ErrForeignKeyViolated),
		errors.Is(err, gorm.ErrCheckConstraintViolated),
		errors.Is(err, gorm.ErrInvalidField),
		errors.Is(err, gorm.ErrInvalidData),
		errors.Is(err, gorm.ErrInvalidValue),
		errors.Is(err, gorm.ErrModelValueRequired),
		errors.Is(err, gorm.ErrPrimaryKeyRequired):
		// translated server verdicts, or gorm refusing the statement itself
		return KindRejected
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgerrcode.UniqueViolation:
			return KindConflict
		case pgerrcode.IsConnectionException(pgErr.Code),
			pgerrcode.IsInsufficientResources(pgErr.Code),
			pgerrcode.IsOperatorIntervention(pgErr.Code):
			return KindUnavailable
		default:
			return KindRejected
		}
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1062: // ER_DUP_ENTRY
			return KindConflict
		case 1040, 1053, 1205, 1213: // too many connections, shutdown, lock wait timeout, deadlock
			return KindUnavailable
		default:
			return KindRejected
		}
	}

	// Broken connections, timeouts and cancellations land here too.
	return KindUnavailable
}
