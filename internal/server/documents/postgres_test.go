package documents

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/ledgersync/internal/common"
	"github.com/dmitrijs2005/ledgersync/internal/wire"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

// jsonArg matches a JSON argument by value, ignoring formatting.
type jsonArg struct{ want map[string]any }

func (a jsonArg) Match(v driver.Value) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	var got map[string]any
	if err := json.Unmarshal([]byte(s), &got); err != nil {
		return false
	}
	return assert.ObjectsAreEqual(a.want, got)
}

func TestPostgresPut_Upserts(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	q := regexp.MustCompile(`INSERT INTO documents .* ON CONFLICT \(owner, collection, id\) DO UPDATE SET body = EXCLUDED\.body`)
	mock.ExpectExec(q.String()).
		WithArgs("u1", "accounts", "a1",
			jsonArg{want: map[string]any{"id": "a1", "balance": "1.5", "opened_at": float64(1700000000000)}},
			at).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Put(context.Background(), "u1", "accounts", Document{
		ID:        "a1",
		Fields:    wire.Fields{"id": "a1", "balance": "1.5", "opened_at": int64(1700000000000)},
		UpdatedAt: at,
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPut_RejectsNested(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	err := repo.Put(context.Background(), "u1", "accounts", Document{ID: "a1", Fields: wire.Fields{"x": []any{1}}})
	assert.ErrorIs(t, err, common.ErrInvalidDocument)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPut_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO documents`).WillReturnError(errors.New("db down"))
	err := repo.Put(context.Background(), "u1", "accounts", Document{ID: "a1", Fields: wire.Fields{"id": "a1"}})
	assert.ErrorContains(t, err, "db down")
}

func TestPostgresDelete(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM documents WHERE owner = \$1 AND collection = \$2 AND id = \$3`).
		WithArgs("u1", "accounts", "a1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), "u1", "accounts", "a1"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresList_DecodesRows(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	at := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "body", "updated_at"}).
		AddRow("a1", []byte(`{"id":"a1","balance":"2","paid":true}`), at).
		AddRow("a2", []byte(`{"id":"a2","opened_at":1700000000000}`), at)

	mock.ExpectQuery(`SELECT id, body, updated_at FROM documents WHERE owner = \$1 AND collection = \$2 ORDER BY id`).
		WithArgs("u1", "accounts").
		WillReturnRows(rows)

	docs, err := repo.List(context.Background(), "u1", "accounts")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, wire.Fields{"id": "a1", "balance": "2", "paid": true}, docs[0].Fields)
	assert.Equal(t, float64(1700000000000), docs[1].Fields["opened_at"])
	assert.Equal(t, at, docs[1].UpdatedAt)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresList_EmptyIsNonNil(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, body, updated_at FROM documents`).
		WithArgs("u1", "accounts").
		WillReturnRows(sqlmock.NewRows([]string{"id", "body", "updated_at"}))

	docs, err := repo.List(context.Background(), "u1", "accounts")
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestPostgresList_CorruptBody(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, body, updated_at FROM documents`).
		WithArgs("u1", "accounts").
		WillReturnRows(sqlmock.NewRows([]string{"id", "body", "updated_at"}).
			AddRow("a1", []byte(`not json`), time.Now()))

	_, err := repo.List(context.Background(), "u1", "accounts")
	assert.ErrorContains(t, err, "decode document a1")
}

func TestPostgresList_QueryError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, body, updated_at FROM documents`).WillReturnError(errors.New("boom"))
	_, err := repo.List(context.Background(), "u1", "accounts")
	assert.ErrorContains(t, err, "boom")
}
