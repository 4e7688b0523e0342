package localstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/ledgersync/internal/common"
	"github.com/dmitrijs2005/ledgersync/internal/dbx"
	"github.com/dmitrijs2005/ledgersync/internal/logging"
	"github.com/dmitrijs2005/ledgersync/internal/models"
)

// RowScanner is satisfied by both *sql.Row and *sql.Rows.
type RowScanner interface {
	Scan(dest ...any) error
}

// Schema maps an entity type onto one SQLite table.
type Schema[E models.Entity] struct {
	Table string
	// Columns lists every column; the first one is the primary key.
	Columns []string
	// Values returns column values in Columns order.
	Values func(E) []any
	// Scan reads one row selected in Columns order.
	Scan func(RowScanner) (E, error)
}

// Table is a Store backed by a single SQLite table.
type Table[E models.Entity] struct {
	db     dbx.DBTX
	schema Schema[E]
	logger logging.Logger
	n      *notifier

	selectOne string
	selectAll string
	upsert    string
	deleteOne string
}

var _ Store[models.Account] = (*Table[models.Account])(nil)

// NewTable builds a Table for schema over db. The schema's table must
// already exist (see RunMigrations).
func NewTable[E models.Entity](db dbx.DBTX, schema Schema[E], logger logging.Logger) *Table[E] {
	if logger == nil {
		logger = logging.Nop()
	}
	cols := strings.Join(schema.Columns, ", ")
	pk := schema.Columns[0]

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(schema.Columns)), ", ")
	updates := make([]string, 0, len(schema.Columns)-1)
	for _, c := range schema.Columns[1:] {
		updates = append(updates, fmt.Sprintf("%s = excluded.%s", c, c))
	}

	return &Table[E]{
		db:        db,
		schema:    schema,
		logger:    logger.With("module", "localstore", "table", schema.Table),
		n:         newNotifier(),
		selectOne: fmt.Sprintf("SELECT %s FROM %s WHERE %s = ?", cols, schema.Table, pk),
		selectAll: fmt.Sprintf("SELECT %s FROM %s ORDER BY %s", cols, schema.Table, pk),
		upsert: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT(%s) DO UPDATE SET %s",
			schema.Table, cols, placeholders, pk, strings.Join(updates, ", ")),
		deleteOne: fmt.Sprintf("DELETE FROM %s WHERE %s = ?", schema.Table, pk),
	}
}

func (t *Table[E]) Get(ctx context.Context, id string) (E, error) {
	row := t.db.QueryRowContext(ctx, t.selectOne, id)
	e, err := t.schema.Scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		var zero E
		return zero, common.ErrNotFound
	}
	if err != nil {
		var zero E
		return zero, fmt.Errorf("failed to select %s %s: %w", t.schema.Table, id, err)
	}
	return e, nil
}

func (t *Table[E]) GetAll(ctx context.Context) ([]E, error) {
	rows, err := t.db.QueryContext(ctx, t.selectAll)
	if err != nil {
		return nil, fmt.Errorf("failed to select %s: %w", t.schema.Table, err)
	}
	items, err := dbx.ScanAll(rows, func(r *sql.Rows) (E, error) { return t.schema.Scan(r) })
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", t.schema.Table, err)
	}
	if items == nil {
		items = []E{}
	}
	return items, nil
}

func (t *Table[E]) Upsert(ctx context.Context, e E) error {
	if _, err := t.db.ExecContext(ctx, t.upsert, t.schema.Values(e)...); err != nil {
		return fmt.Errorf("failed to upsert %s %s: %w", t.schema.Table, e.EntityID(), err)
	}
	t.n.notify()
	return nil
}

func (t *Table[E]) Delete(ctx context.Context, e E) error {
	if _, err := t.db.ExecContext(ctx, t.deleteOne, e.EntityID()); err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", t.schema.Table, e.EntityID(), err)
	}
	t.n.notify()
	return nil
}

func (t *Table[E]) ObserveAll(ctx context.Context) <-chan []E {
	return observe(ctx, t.n, t.logger, t.GetAll)
}
