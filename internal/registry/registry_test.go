package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anujpndt/bizdev-agent/internal/types"
)

func TestAdd_InsertionOrder(t *testing.T) {
	reg := New(types.UnlimitedTarget)

	for _, name := range []string{"Gamma Energy", "Alpha Solar", "Beta Wind"} {
		_, err := reg.Add(types.CompanyRecord{Name: name})
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"Gamma Energy", "Alpha Solar", "Beta Wind"}, reg.Names())
	assert.Equal(t, "Alpha Solar", reg.At(1).Name)
}

func TestAdd_DuplicateDetection(t *testing.T) {
	reg := New(types.UnlimitedTarget)

	size, err := reg.Add(types.CompanyRecord{Name: "Acme Corp"})
	require.NoError(t, err)
	assert.Equal(t, 1, size)

	// Case and surrounding whitespace do not make a new company
	size, err = reg.Add(types.CompanyRecord{Name: "  acme corp "})
	require.Error(t, err)
	assert.Equal(t, 1, size)

	var dup *DuplicateError
	require.ErrorAs(t, err, &dup)
	assert.Contains(t, err.Error(), "already exists")

	size, err = reg.Add(types.CompanyRecord{Name: "Beta LLC"})
	require.NoError(t, err)
	assert.Equal(t, 2, size)
	assert.Equal(t, []string{"Acme Corp", "Beta LLC"}, reg.Names())
}

func TestAdd_EmptyName(t *testing.T) {
	reg := New(types.UnlimitedTarget)

	_, err := reg.Add(types.CompanyRecord{Name: "   "})
	assert.ErrorIs(t, err, ErrEmptyName)
	assert.Equal(t, 0, reg.Size())
}

func TestAdd_CapacityReached(t *testing.T) {
	reg := New(2)

	_, err := reg.Add(types.CompanyRecord{Name: "First"})
	require.NoError(t, err)
	_, err = reg.Add(types.CompanyRecord{Name: "Second"})
	require.NoError(t, err)
	assert.True(t, reg.IsComplete())

	size, err := reg.Add(types.CompanyRecord{Name: "Third"})
	require.Error(t, err)
	assert.Equal(t, 2, size)

	var cap *CapacityError
	require.ErrorAs(t, err, &cap)
	assert.Equal(t, 2, cap.Target)
}

func TestAdd_TrimsFields(t *testing.T) {
	reg := New(types.UnlimitedTarget)

	_, err := reg.Add(types.CompanyRecord{
		Name:     "  Acme Corp  ",
		Location: " Berlin ",
		Website:  " https://acme.example ",
	})
	require.NoError(t, err)

	rec := reg.At(0)
	assert.Equal(t, "Acme Corp", rec.Name)
	assert.Equal(t, "Berlin", rec.Location)
	assert.Equal(t, "https://acme.example", rec.Website)
}

func TestUnlimitedRegistryNeverCompletes(t *testing.T) {
	reg := New(types.UnlimitedTarget)

	for i := 0; i < 100; i++ {
		_, err := reg.Add(types.CompanyRecord{Name: string(rune('A'+i%26)) + string(rune('a'+i/26))})
		require.NoError(t, err)
	}
	assert.False(t, reg.IsComplete())
}

func TestSetReport(t *testing.T) {
	reg := New(types.UnlimitedTarget)

	_, err := reg.Add(types.CompanyRecord{Name: "Acme Corp"})
	require.NoError(t, err)

	updated := reg.SetReport(0, "A detailed report.")
	assert.Equal(t, "A detailed report.", updated.DetailedReport)
	assert.Equal(t, "A detailed report.", reg.At(0).DetailedReport)
}
