package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Import.MaxRows)
	assert.Equal(t, "Car Parts", cfg.Import.ProductType)
	assert.Equal(t, "DEL THIS ITEM", cfg.Import.DeletionMarker)
	assert.Equal(t, 70, cfg.Import.SEOTitleMax)
	assert.Equal(t, 11, cfg.Import.Columns.Category)
	assert.Equal(t, 14, cfg.Import.Columns.SEODescription)
	assert.False(t, cfg.Database.Enabled)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoadFileWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "loader.yaml")
	yaml := `
saleor:
  base_url: https://shop.example.com/graphql/
  token: from-file
import:
  max_rows: 10
  columns:
    sku: 3
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	t.Setenv("SALEOR_TOKEN", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://shop.example.com/graphql/", cfg.Saleor.BaseURL)
	assert.Equal(t, "from-env", cfg.Saleor.Token)
	assert.Equal(t, 10, cfg.Import.MaxRows)
	assert.Equal(t, 3, cfg.Import.Columns.SKU)
	assert.Equal(t, 0, cfg.Import.Columns.Name)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load("does-not-exist.yaml")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Saleor: SaleorConfig{BaseURL: ""},
		Import: ImportConfig{SEOTitleMax: 70},
	}
	assert.Error(t, cfg.Validate())

	cfg.Saleor.BaseURL = "http://localhost:8000/graphql/"
	assert.NoError(t, cfg.Validate())

	cfg.Import.SEOTitleMax = 0
	assert.Error(t, cfg.Validate())
}

func TestDSN(t *testing.T) {
	db := DatabaseConfig{Host: "db", Port: 5433, Name: "catalog", User: "u", Password: "p"}
	assert.Equal(t, "host=db port=5433 user=u password=p dbname=catalog sslmode=disable", db.DSN())
}
