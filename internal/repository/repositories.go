package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrDuplicateKey is returned when an insert hits a unique index
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrStaleVersion is returned when a versioned update matched no row
	ErrStaleVersion = errors.New("stale version")
)

// Repositories holds all repository instances
type Repositories struct {
	db *gorm.DB

	User            UserRepository
	RefreshToken    RefreshTokenRepository
	Property        PropertyRepository
	Reservation     ReservationRepository
	Contract        ContractRepository
	PaymentSchedule PaymentScheduleRepository
	PlanRevision    PlanRevisionRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		db:              db,
		User:            NewUserRepository(db),
		RefreshToken:    NewRefreshTokenRepository(db),
		Property:        NewPropertyRepository(db),
		Reservation:     NewReservationRepository(db),
		Contract:        NewContractRepository(db),
		PaymentSchedule: NewPaymentScheduleRepository(db),
		PlanRevision:    NewPlanRevisionRepository(db),
	}
}

// DB exposes the underlying connection
func (r *Repositories) DB() *gorm.DB {
	return r.db
}

// Transaction runs fn with repositories bound to a single database
// transaction. Any error returned by fn rolls the transaction back.
func (r *Repositories) Transaction(ctx context.Context, fn func(tx *Repositories) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}

// translateError maps driver-level unique violations to ErrDuplicateKey
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if isDuplicateKeyError(err) {
		return errors.Join(ErrDuplicateKey, err)
	}
	return err
}

func isDuplicateKeyError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// sqlite reports unique violations by message when translation is off
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// ListQuery represents common query parameters
type ListQuery struct {
	Page    int
	PerPage int
	Search  string
	SortBy  string
	SortDir string
	Filters map[string]string
}

// NewListQuery creates a ListQuery with defaults
func NewListQuery() *ListQuery {
	return &ListQuery{
		Page:    1,
		PerPage: 20,
		Filters: make(map[string]string),
	}
}

// apply adds sorting and pagination. SortBy is looked up in sortable, which
// maps public sort keys to column expressions.
func (q *ListQuery) apply(db *gorm.DB, sortable map[string]string, defaultOrder string) *gorm.DB {
	if column, ok := sortable[q.SortBy]; ok {
		order := column
		if strings.EqualFold(q.SortDir, "desc") {
			order += " DESC"
		}
		db = db.Order(order)
	} else {
		db = db.Order(defaultOrder)
	}

	if q.PerPage > 0 {
		page := q.Page
		if page < 1 {
			page = 1
		}
		db = db.Offset((page - 1) * q.PerPage).Limit(q.PerPage)
	}
	return db
}

func likePattern(search string) string {
	return "%" + strings.ToLower(search) + "%"
}
