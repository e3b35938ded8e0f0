package migration

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/migrations"
)

func TestSanitizeName(t *testing.T) {
	tests := map[string]string{
		"add ledger index":        "add_ledger_index",
		"Add-Ledger-Index":        "add_ledger_index",
		"add__ledger__index":      "add_ledger_index",
		"   spaces   ":            "spaces",
		"producción área 2":       "producci_n_rea_2",
		"special!@#$chars":        "special_chars",
		"":                        "",
	}
	for input, want := range tests {
		assert.Equal(t, want, sanitizeName(input), input)
	}
}

func TestCreateMigrationNumbersSequentially(t *testing.T) {
	dir := t.TempDir()

	first, err := CreateMigration(dir, "create production orders", "Production order tables")
	require.NoError(t, err)
	assert.Equal(t, uint(1), first.Version)
	assert.Equal(t, "000001_create_production_orders.up.sql", filepath.Base(first.UpPath))
	assert.Equal(t, "000001_create_production_orders.down.sql", filepath.Base(first.DownPath))

	up, err := os.ReadFile(first.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "Production order tables")

	second, err := CreateMigration(dir, "add ledger index", "")
	require.NoError(t, err)
	assert.Equal(t, uint(2), second.Version)

	listed, err := ListMigrations(os.DirFS(dir))
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, "000002_add_ledger_index", listed[1].String())
}

func TestCreateMigrationRejectsEmptyName(t *testing.T) {
	_, err := CreateMigration(t.TempDir(), "!!!", "")
	assert.Error(t, err)
}

func TestListMigrationsMissingDir(t *testing.T) {
	listed, err := ListMigrations(os.DirFS(filepath.Join(t.TempDir(), "missing")))
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	listed, err := ListMigrations(migrations.FS)
	require.NoError(t, err)
	require.NotEmpty(t, listed)

	for i, m := range listed {
		assert.Equal(t, uint(i+1), m.Version, "versions have no gaps")
		down, err := fs.ReadFile(migrations.FS, m.String()+".down.sql")
		require.NoError(t, err, m.String())
		assert.NotEmpty(t, strings.TrimSpace(string(down)))
	}
}

func TestEmbeddedMigrationsCreateEveryTable(t *testing.T) {
	var schema strings.Builder
	listed, err := ListMigrations(migrations.FS)
	require.NoError(t, err)
	for _, m := range listed {
		up, err := fs.ReadFile(migrations.FS, m.String()+".up.sql")
		require.NoError(t, err)
		schema.Write(up)
	}

	for _, table := range []string{
		"production_areas", "products", "product_production_areas",
		"companies", "orders", "order_lines",
		"warehouses", "inventory_stocks", "stock_ledger_entries", "stock_ledger_lines",
		"production_orders", "production_order_areas", "production_order_products",
		"production_order_orders", "production_order_order_lines",
	} {
		assert.Contains(t, schema.String(), "CREATE TABLE IF NOT EXISTS "+table+" (", table)
	}
}
