package identity

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/authzkit/authzkit/pkg/roles"
	"github.com/authzkit/authzkit/pkg/scopes"
)

// Config holds the postgres connection settings for the identity store.
type Config struct {
	ConnectionString string        `env:"AUTHZ_PG_CONN_URL,required"`              // ConnectionString is the connection string to the database.
	MaxOpenConns     int32         `env:"AUTHZ_PG_MAX_OPEN_CONNS" envDefault:"10"` // MaxOpenConns is the maximum number of open connections.
	MaxIdleConns     int32         `env:"AUTHZ_PG_MAX_IDLE_CONNS" envDefault:"5"`  // MaxIdleConns is the maximum number of idle connections.
	RetryAttempts    int           `env:"AUTHZ_PG_RETRY_ATTEMPTS" envDefault:"3"`  // RetryAttempts is the number of connection attempts.
	RetryInterval    time.Duration `env:"AUTHZ_PG_RETRY_INTERVAL" envDefault:"5s"` // RetryInterval is the interval between attempts.
}

// Connect establishes a postgres connection pool with retry and backoff so
// the store survives transient startup ordering issues.
func Connect(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	connConfig, err := pgxpool.ParseConfig(cfg.ConnectionString)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseDBConfig, err)
	}
	connConfig.MaxConns = cfg.MaxOpenConns
	connConfig.MinConns = cfg.MaxIdleConns

	for i := 0; i < cfg.RetryAttempts; i++ {
		pool, err := pgxpool.NewWithConfig(ctx, connConfig)
		if err == nil {
			if err = pool.Ping(ctx); err == nil {
				return pool, nil
			}
			pool.Close()
		}

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrDBNotReady, ctx.Err())
		case <-time.After(time.Duration(i+1) * cfg.RetryInterval):
		}
	}

	return nil, ErrDBNotReady
}

// PostgresStore persists grants and role assignments in postgres. Run
// Migrate before first use to create the schema.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps an existing connection pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) InsertGrant(ctx context.Context, grant Grant) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO user_permission_grants (user_id, directive_type, identifier, description, granted_by, granted_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		grant.UserID, string(grant.Type), grant.Identifier, grant.Description, grant.GrantedBy, grant.GrantedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return ErrGrantExists
		}
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}

func (s *PostgresStore) DeleteGrant(ctx context.Context, userID uuid.UUID, identifier string) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM user_permission_grants
		WHERE user_id = $1 AND identifier = $2`,
		userID, identifier,
	)
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrGrantNotFound
	}
	return nil
}

func (s *PostgresStore) ListGrants(ctx context.Context, userID uuid.UUID) ([]Grant, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT user_id, directive_type, identifier, description, granted_by, granted_at
		FROM user_permission_grants
		WHERE user_id = $1
		ORDER BY granted_at, identifier`,
		userID,
	)
	if err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}
	defer rows.Close()

	var grants []Grant
	for rows.Next() {
		var g Grant
		var directiveType string
		if err := rows.Scan(&g.UserID, &directiveType, &g.Identifier, &g.Description, &g.GrantedBy, &g.GrantedAt); err != nil {
			return nil, errors.Join(ErrStoreFailure, err)
		}
		g.Type = scopes.DirectiveType(directiveType)
		grants = append(grants, g)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}
	return grants, nil
}

func (s *PostgresStore) UpsertAssignment(ctx context.Context, userID uuid.UUID, assignment roles.Assignment) error {
	values, err := json.Marshal(assignment.Values)
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO user_role_assignments (user_id, role_code, parameter_values)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, role_code)
		DO UPDATE SET parameter_values = EXCLUDED.parameter_values`,
		userID, assignment.RoleCode, values,
	)
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	return nil
}

func (s *PostgresStore) DeleteAssignment(ctx context.Context, userID uuid.UUID, roleCode string) error {
	tag, err := s.pool.Exec(ctx, `
		DELETE FROM user_role_assignments
		WHERE user_id = $1 AND role_code = $2`,
		userID, roleCode,
	)
	if err != nil {
		return errors.Join(ErrStoreFailure, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrAssignmentNotFound
	}
	return nil
}

func (s *PostgresStore) ListAssignments(ctx context.Context, userID uuid.UUID) ([]roles.Assignment, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT role_code, parameter_values
		FROM user_role_assignments
		WHERE user_id = $1
		ORDER BY role_code`,
		userID,
	)
	if err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}
	defer rows.Close()

	var assignments []roles.Assignment
	for rows.Next() {
		var roleCode string
		var raw []byte
		if err := rows.Scan(&roleCode, &raw); err != nil {
			return nil, errors.Join(ErrStoreFailure, err)
		}

		var values map[string]string
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &values); err != nil {
				return nil, errors.Join(ErrStoreFailure, err)
			}
		}
		assignments = append(assignments, roles.NewAssignment(roleCode, values))
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrStoreFailure, err)
	}
	return assignments, nil
}

// compile-time interface checks
var (
	_ Store = (*PostgresStore)(nil)
	_ Store = (*MemoryStore)(nil)
)
