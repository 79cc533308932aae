package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCompanyExtraction_Valid(t *testing.T) {
	doc := `{
		"found": true,
		"name": "Acme Corp",
		"location": "Berlin",
		"website": "https://acme.example",
		"services": "Solar panels",
		"email": "info@acme.example",
		"contact_details": "+49 30 1234"
	}`
	assert.NoError(t, ValidateCompanyExtraction(doc))
}

func TestValidateCompanyExtraction_NotFound(t *testing.T) {
	// A not-found document needs no name
	assert.NoError(t, ValidateCompanyExtraction(`{"found": false}`))
}

func TestValidateCompanyExtraction_FoundWithoutName(t *testing.T) {
	err := ValidateCompanyExtraction(`{"found": true}`)
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.NotEmpty(t, verr.Errors)
	assert.Contains(t, err.Error(), "name")
}

func TestValidateCompanyExtraction_EmptyName(t *testing.T) {
	err := ValidateCompanyExtraction(`{"found": true, "name": ""}`)
	assert.Error(t, err)
}

func TestValidateCompanyExtraction_MissingFound(t *testing.T) {
	err := ValidateCompanyExtraction(`{"name": "Acme Corp"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "found")
}

func TestValidateCompanyExtraction_WrongTypes(t *testing.T) {
	err := ValidateCompanyExtraction(`{"found": "yes", "name": 42}`)
	assert.Error(t, err)
}

func TestValidateCompanyExtraction_MalformedJSON(t *testing.T) {
	err := ValidateCompanyExtraction(`{"found": true,`)
	assert.Error(t, err)
}
