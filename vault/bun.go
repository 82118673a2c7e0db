package vault

import (
	"context"
	"database/sql"
	"errors"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	console "github.com/goliatone/go-console"
)

var _ console.Vault = (*Bun)(nil)

// identityRow is the persisted shape of a vault slot.
type identityRow struct {
	bun.BaseModel `bun:"table:console_identities,alias:cid"`
	ID            uuid.UUID `bun:"id,pk,type:uuid"`
	Role          string    `bun:"role,notnull,unique"`
	UserID        string    `bun:"user_id,notnull"`
	Name          string    `bun:"name"`
	Email         string    `bun:"email"`
	Token         string    `bun:"token"`
	UpdatedAt     time.Time `bun:"updated_at,notnull"`
}

// Bun persists identity slots in a bun-managed sqlite database.
type Bun struct {
	db *bun.DB
}

// OpenSQLite opens a sqlite-backed bun handle for the vault, e.g. with a
// file DSN or "file::memory:?cache=shared" in tests.
func OpenSQLite(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to open vault database")
	}
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// NewBun builds a bun vault and ensures its table exists.
func NewBun(ctx context.Context, db *bun.DB) (*Bun, error) {
	if db == nil {
		return nil, goerrors.New("vault database is required", goerrors.CategoryBadInput)
	}

	if _, err := db.NewCreateTable().
		Model((*identityRow)(nil)).
		IfNotExists().
		Exec(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create vault table")
	}

	return &Bun{db: db}, nil
}

func (b *Bun) Load(ctx context.Context, role console.Role) (*console.Identity, error) {
	row := &identityRow{}
	err := b.db.NewSelect().
		Model(row).
		Where("role = ?", string(role)).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to load vault slot")
	}

	return &console.Identity{
		ID:    row.UserID,
		Name:  row.Name,
		Email: row.Email,
		Token: row.Token,
		Role:  console.Role(row.Role),
	}, nil
}

func (b *Bun) Store(ctx context.Context, role console.Role, identity *console.Identity) error {
	if identity == nil {
		return b.Clear(ctx, role)
	}

	// The row ID is derived from the role so each slot maps to a stable
	// primary key across restarts.
	id, err := hashid.NewUUID(string(role))
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to derive vault slot id")
	}

	row := &identityRow{
		ID:        id,
		Role:      string(role),
		UserID:    identity.ID,
		Name:      identity.Name,
		Email:     identity.Email,
		Token:     identity.Token,
		UpdatedAt: time.Now(),
	}

	if _, err := b.db.NewInsert().
		Model(row).
		On("CONFLICT (role) DO UPDATE").
		Set("user_id = EXCLUDED.user_id").
		Set("name = EXCLUDED.name").
		Set("email = EXCLUDED.email").
		Set("token = EXCLUDED.token").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to write vault slot")
	}

	return nil
}

func (b *Bun) Clear(ctx context.Context, role console.Role) error {
	if _, err := b.db.NewDelete().
		Model((*identityRow)(nil)).
		Where("role = ?", string(role)).
		Exec(ctx); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to clear vault slot")
	}
	return nil
}
