package adapter

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/leapstack-labs/dumpnav/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func peopleDB() *core.Database {
	db := core.NewDatabase()
	db.Add(&core.Table{
		Name: "people",
		Columns: []core.Column{
			{Name: "id", Type: "int(11)"},
			{Name: "name", Type: "varchar(20)"},
			{Name: "score", Type: "decimal(3,1)"},
		},
		Rows: []core.Row{
			{core.Number("1"), core.String("Ann"), core.Number("9.5")},
			{core.Number("2"), core.String("O\"Neil"), core.Null()},
		},
	})
	db.Add(&core.Table{Name: "empty", Columns: []core.Column{{Name: "x", Type: "text"}}})
	return db
}

func TestLoad_StatementSequence(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE "people" ("id" INTEGER, "name" TEXT, "score" REAL)`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectBegin()
	prep := mock.ExpectPrepare(regexp.QuoteMeta(`INSERT INTO "people" ("id", "name", "score") VALUES (?, ?, ?)`))
	prep.ExpectExec().WithArgs("1", "Ann", "9.5").WillReturnResult(sqlmock.NewResult(1, 1))
	prep.ExpectExec().WithArgs("2", `O"Neil`, nil).WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()
	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE "empty" ("x" TEXT)`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, Load(context.Background(), conn, peopleDB(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoad_RollsBackOnInsertError(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	mock.ExpectExec("CREATE TABLE").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectBegin()
	prep := mock.ExpectPrepare("INSERT INTO")
	prep.ExpectExec().WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err = Load(context.Background(), conn, peopleDB(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load table people")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMirror_Close(t *testing.T) {
	tests := []struct {
		name    string
		setupDB bool
	}{
		{name: "close with nil DB", setupDB: false},
		{name: "close with open DB", setupDB: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Mirror{}

			if tt.setupDB {
				db, mock, err := sqlmock.New()
				require.NoError(t, err)
				mock.ExpectClose()
				m.DB = db
			}

			assert.NoError(t, m.Close())
		})
	}
}

func TestMirror_ExecAndQuery(t *testing.T) {
	tests := []struct {
		name      string
		setupDB   bool
		setupMock func(mock sqlmock.Sqlmock)
		query     bool
		sql       string
		errMsg    string
	}{
		{name: "exec without connection", sql: "SELECT 1", errMsg: "database connection not established"},
		{name: "query without connection", query: true, sql: "SELECT 1", errMsg: "database connection not established"},
		{
			name:    "exec with error",
			setupDB: true,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("DELETE").WillReturnError(assert.AnError)
			},
			sql:    "DELETE FROM people",
			errMsg: "failed to execute SQL",
		},
		{
			name:    "query success",
			setupDB: true,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
			},
			query: true,
			sql:   "SELECT id FROM people",
		},
		{
			name:    "query with error",
			setupDB: true,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("INVALID").WillReturnError(assert.AnError)
			},
			query:  true,
			sql:    "INVALID",
			errMsg: "failed to execute query",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			m := &Mirror{}
			if tt.setupDB {
				db, mock, err := sqlmock.New()
				require.NoError(t, err)
				defer func() { _ = db.Close() }()
				if tt.setupMock != nil {
					tt.setupMock(mock)
				}
				m.DB = db
			}
			assert.Equal(t, tt.setupDB, m.IsConnected())

			var err error
			if tt.query {
				rows, qerr := m.Query(ctx, tt.sql)
				if rows != nil {
					_ = rows.Close()
				}
				err = qerr
			} else {
				err = m.Exec(ctx, tt.sql)
			}

			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestAffinity(t *testing.T) {
	tests := map[string]string{
		"int(11)":             "INTEGER",
		"bigint(20) unsigned": "INTEGER",
		"TINYINT":             "INTEGER",
		"decimal(3,1)":        "REAL",
		"double":              "REAL",
		"float(7,4)":          "REAL",
		"varchar(255)":        "TEXT",
		"enum('M','F')":       "TEXT",
		"datetime":            "TEXT",
		"point":               "TEXT",
		"multipoint":          "TEXT",
		"enum('int','x')":     "TEXT",
		"integer":             "INTEGER",
		"mediumint(8)":        "INTEGER",
		"numeric(10,2)":       "REAL",
		"":                    "TEXT",
	}
	for declared, want := range tests {
		assert.Equal(t, want, Affinity(declared), declared)
	}
}

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, `"movies"`, QuoteIdent("movies"))
	assert.Equal(t, `"a""b"`, QuoteIdent(`a"b`))
}
