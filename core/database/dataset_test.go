package database

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"data-reconciler/core/reconcile"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

const assetQuery = "SELECT a.asset_id, a.name, a.status FROM assets a"

func TestLoadDataset(t *testing.T) {
	db, mock := setupMockDB(t)
	created := time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"a.asset_id", "name", "Status", "created"}).
		AddRow("A1", "Foo", "Active", created).
		AddRow(int64(2), []byte("Bar"), nil, nil)
	mock.ExpectQuery(regexp.QuoteMeta(assetQuery)).WillReturnRows(rows)

	ds, err := LoadDataset(context.Background(), db, assetQuery, "asset_id", zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, reconcile.Dataset{
		"A1": {"ASSET_ID": "A1", "NAME": "Foo", "STATUS": "Active", "CREATED": "2023-01-02 03:04:05"},
		"2":  {"ASSET_ID": "2", "NAME": "Bar", "STATUS": reconcile.NullValue, "CREATED": reconcile.NullValue},
	}, ds)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadDataset_Errors(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		setup    func(mock sqlmock.Sqlmock)
		wantKind error
		wantMsg  string
	}{
		{
			name: "query fails",
			key:  "asset_id",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(assetQuery)).WillReturnError(errors.New("connection refused"))
			},
			wantKind: reconcile.ErrConnectivity,
			wantMsg:  "connection refused",
		},
		{
			name: "key column missing",
			key:  "id",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(assetQuery)).
					WillReturnRows(sqlmock.NewRows([]string{"asset_id", "name"}).AddRow("A1", "Foo"))
			},
			wantKind: reconcile.ErrConfiguration,
			wantMsg:  `"ID"`,
		},
		{
			name: "duplicate key",
			key:  "asset_id",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(assetQuery)).
					WillReturnRows(sqlmock.NewRows([]string{"asset_id", "name"}).AddRow("A1", "Foo").AddRow("A1", "Bar"))
			},
			wantKind: reconcile.ErrDataIntegrity,
			wantMsg:  `"A1"`,
		},
		{
			name: "null key",
			key:  "asset_id",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(assetQuery)).
					WillReturnRows(sqlmock.NewRows([]string{"asset_id", "name"}).AddRow(nil, "Foo"))
			},
			wantKind: reconcile.ErrDataIntegrity,
			wantMsg:  "NULL primary key",
		},
		{
			name: "ambiguous columns",
			key:  "asset_id",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(assetQuery)).
					WillReturnRows(sqlmock.NewRows([]string{"a.asset_id", "b.asset_id"}).AddRow("A1", "A1"))
			},
			wantKind: reconcile.ErrConfiguration,
			wantMsg:  "both normalize",
		},
		{
			name: "row error",
			key:  "asset_id",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(assetQuery)).
					WillReturnRows(sqlmock.NewRows([]string{"asset_id"}).AddRow("A1").AddRow("A2").RowError(1, errors.New("broken pipe")))
			},
			wantKind: reconcile.ErrConnectivity,
			wantMsg:  "broken pipe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			tt.setup(mock)

			ds, err := LoadDataset(context.Background(), db, assetQuery, tt.key, nil)
			require.Error(t, err)
			assert.Nil(t, ds)
			assert.ErrorIs(t, err, tt.wantKind)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoadDataset_InvalidArguments(t *testing.T) {
	db, _ := setupMockDB(t)

	_, err := LoadDataset(context.Background(), db, "  ", "id", nil)
	assert.ErrorIs(t, err, reconcile.ErrConfiguration)

	_, err = LoadDataset(context.Background(), db, assetQuery, "", nil)
	assert.ErrorIs(t, err, reconcile.ErrConfiguration)
}

func TestLoadDataset_SQLite(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	defer Close(db)

	require.NoError(t, db.Exec("CREATE TABLE assets (id INTEGER PRIMARY KEY, name TEXT, price REAL)").Error)
	require.NoError(t, db.Exec("INSERT INTO assets (id, name, price) VALUES (1, 'chair', 9.5), (2, NULL, 3)").Error)

	ds, err := LoadDataset(context.Background(), db, "SELECT assets.id, assets.name, assets.price FROM assets", "assets.id", nil)
	require.NoError(t, err)

	assert.Equal(t, reconcile.Dataset{
		"1": {"ID": "1", "NAME": "chair", "PRICE": "9.5"},
		"2": {"ID": "2", "NAME": reconcile.NullValue, "PRICE": "3"},
	}, ds)
}

func TestNormalizeColumn(t *testing.T) {
	assert.Equal(t, "ASSET_ID", NormalizeColumn("a.asset_id"))
	assert.Equal(t, "NAME", NormalizeColumn(" Name "))
	assert.Equal(t, "X", NormalizeColumn("db.tbl.x"))
}
