package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
primary_table: workorders
columns:
  - id
  - title
  - statuses.name
filters:
  - column: priority
    operator: eq
    value: HIGH
  - column: id
    operator: between
    value: "1"
    value2: "100"
sorting:
  column: created_at
  order: desc
limit: 25
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "workorders", cfg.PrimaryTable)
	assert.Equal(t, []string{"id", "title", "statuses.name"}, cfg.Columns)
	require.Len(t, cfg.Filters, 2)
	assert.Equal(t, OpEq, cfg.Filters[0].Operator)
	assert.Equal(t, "100", cfg.Filters[1].Value2)
	require.NotNil(t, cfg.Sorting)
	assert.Equal(t, "created_at", cfg.Sorting.Column)
	assert.Equal(t, 25, cfg.Limit)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
