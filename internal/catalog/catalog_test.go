package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAreSelfConsistent(t *testing.T) {
	c := Default()

	require.NotEmpty(t, c.Equipment)
	require.NotEmpty(t, c.Insurance)
	require.NotEmpty(t, c.Staff)

	seen := map[string]bool{}
	for _, e := range c.Equipment {
		require.False(t, seen[e.ID], "duplicate equipment id %s", e.ID)
		seen[e.ID] = true
		if e.IsChair {
			assert.Greater(t, e.PatientsPerDay, 0)
		}
	}

	for _, p := range c.Insurance {
		assert.GreaterOrEqual(t, p.Reimbursement, 0.0)
		assert.LessOrEqual(t, p.Reimbursement, 1.0)
		assert.GreaterOrEqual(t, p.Cannibalization, 0.0)
		assert.Less(t, p.Cannibalization, 1.0)
	}
}

func TestLookupMissReturnsZeroValue(t *testing.T) {
	c := Default()

	e, ok := c.EquipmentByID("no_such_thing")
	assert.False(t, ok)
	assert.Zero(t, e)

	p, ok := c.InsuranceByID("no_such_plan")
	assert.False(t, ok)
	assert.Zero(t, p)
}

func TestLoadBackfillsFromDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yml")
	yml := `
insurance:
  - id: test_plan
    name: Test Plan
    reimbursement: 0.5
    patient_pool: 2
    cannibalization: 0.1
    acceptance_rate: 0.8
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o644))

	c, err := Load(path)
	require.NoError(t, err)

	// Overridden section.
	require.Len(t, c.Insurance, 1)
	assert.Equal(t, "test_plan", c.Insurance[0].ID)

	// Untouched sections fall back to built-ins.
	assert.NotEmpty(t, c.Equipment)
	assert.NotEmpty(t, c.Staff)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	assert.Error(t, err)
}
