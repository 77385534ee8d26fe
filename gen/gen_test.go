package gen

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sqlgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"driver: postgres\ndsn: postgres://localhost/app\nout: dbconst/constants.go\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Driver)
	assert.Equal(t, "dbconst", cfg.Package, "package defaults when omitted")
	assert.Equal(t, "dbconst/constants.go", cfg.Out)
}

func TestConfigValidate(t *testing.T) {
	err := (&Config{Driver: "oracle", DSN: "x", Out: "y"}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported driver")

	err = (&Config{Driver: "postgres", Out: "y"}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dsn is required")

	err = (&Config{Driver: "sqlite", DSN: "file.db"}).Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out is required")
}

func TestListTablesPostgres(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("select table_name from information_schema.tables").
		WithArgs("public").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("orders").AddRow("users"))
	mock.ExpectQuery("select column_name from information_schema.columns").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("id").AddRow("total"))
	mock.ExpectQuery("select column_name from information_schema.columns").
		WillReturnRows(sqlmock.NewRows([]string{"column_name"}).AddRow("id").AddRow("name"))

	db.SetMaxOpenConns(1)
	cfg := &Config{Driver: "postgres", DSN: "x", Out: "y"}
	tables, err := ListTables(context.Background(), db, cfg)
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, "orders", tables[0].Name)
	assert.Equal(t, "users", tables[1].Name)
}

func TestGenerate(t *testing.T) {
	cfg := &Config{Driver: "postgres", DSN: "x", Package: "dbconst", Out: "constants.go"}
	tables := []*Table{
		{Name: "order_items", Columns: []string{"order_id", "qty"}},
		{Name: "users", Columns: []string{"id", "first_name"}},
	}

	src, err := Generate(cfg, tables)
	require.NoError(t, err)
	out := string(src)
	assert.Contains(t, out, "package dbconst")
	assert.Contains(t, out, "Code generated by sqlgen. DO NOT EDIT.")
	assert.Contains(t, out, `TableOrderItems = "order_items"`)
	assert.Contains(t, out, `TableUsers = "users"`)
	assert.Contains(t, out, `OrderItemsOrderId = "order_id"`)
	assert.Contains(t, out, `UsersFirstName = "first_name"`)
}
