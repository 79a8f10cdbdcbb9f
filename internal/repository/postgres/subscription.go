package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/internal/domain"
	apperrors "github.com/Mwasi-svg/kranian-farms-kenya-sub000/pkg/errors"
	"github.com/Mwasi-svg/kranian-farms-kenya-sub000/pkg/database"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrations returns the schema migrations for database.RunMigrations.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

const uniqueViolation = "23505"

const insertSubscriptionSQL = `
	INSERT INTO newsletter_subscribers (email, subscribed_at, status)
	VALUES ($1, $2, $3)
	RETURNING id`

// SubscriptionRepository implements repository.SubscriptionRepository.
type SubscriptionRepository struct {
	db database.DBTX
}

// NewSubscriptionRepository creates a PostgreSQL-backed subscription repository.
func NewSubscriptionRepository(db database.DBTX) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

// Create inserts sub and sets its ID.
func (r *SubscriptionRepository) Create(ctx context.Context, sub *domain.Subscription) (err error) {
	ctx, end := database.TraceQuery(ctx, "InsertSubscription", insertSubscriptionSQL)
	defer func() { end(err) }()

	err = r.db.QueryRow(ctx, insertSubscriptionSQL, sub.Email, sub.SubscribedAt, sub.Status).Scan(&sub.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("subscription", "email", sub.Email)
		}
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
