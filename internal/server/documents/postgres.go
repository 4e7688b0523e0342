package documents

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/dmitrijs2005/ledgersync/internal/dbx"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

//go:embed migrations/*.sql
var migrations embed.FS

type PostgresRepository struct {
	db dbx.DBTX
}

var _ Repository = (*PostgresRepository)(nil)

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// OpenPostgres opens dsn with the pgx driver and applies migrations.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return db, nil
}

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, "migrations")
}

func (r *PostgresRepository) Put(ctx context.Context, owner, collection string, doc Document) error {
	s, err := Normalize(doc.Fields)
	if err != nil {
		return err
	}
	body, err := protojson.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	query := `INSERT INTO documents (owner, collection, id, body, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (owner, collection, id) DO UPDATE SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at`

	if _, err := r.db.ExecContext(ctx, query, owner, collection, doc.ID, string(body), doc.UpdatedAt); err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, owner, collection, id string) error {
	query := `DELETE FROM documents WHERE owner = $1 AND collection = $2 AND id = $3`
	if _, err := r.db.ExecContext(ctx, query, owner, collection, id); err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context, owner, collection string) ([]Document, error) {
	query := `SELECT id, body, updated_at FROM documents WHERE owner = $1 AND collection = $2 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, owner, collection)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	docs, err := dbx.ScanAll(rows, scanDocument)
	if err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []Document{}
	}
	return docs, nil
}

func scanDocument(rows *sql.Rows) (Document, error) {
	var (
		d         Document
		body      []byte
		updatedAt time.Time
	)
	if err := rows.Scan(&d.ID, &body, &updatedAt); err != nil {
		return d, err
	}
	var s structpb.Struct
	if err := protojson.Unmarshal(body, &s); err != nil {
		return d, fmt.Errorf("decode document %s: %w", d.ID, err)
	}
	d.Fields = s.AsMap()
	d.UpdatedAt = updatedAt.UTC()
	return d, nil
}
