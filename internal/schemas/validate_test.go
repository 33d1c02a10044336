package schemas

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalContent = `{
	"languages": ["en", "fr"],
	"defaultLanguage": "en",
	"globals": {"siteName": {"en": "Jo", "fr": "Jo"}},
	"pages": [{"id": "home", "slug": {"en": "", "fr": ""}, "sections": [{"id": "hero", "type": "HeroSection"}]}],
	"sections": {"hero": {"type": "HeroSection", "components": []}}
}`

func TestValidateContent_Valid(t *testing.T) {
	assert.NoError(t, ValidateContent([]byte(minimalContent)))
}

func TestValidateContent_SiteContentFile(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "..", "data", "content.json"))
	require.NoError(t, err)
	assert.NoError(t, ValidateContent(data))
}

func TestValidateContent_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		wantField string
	}{
		{
			name:      "missing sections",
			doc:       `{"languages": ["en"], "defaultLanguage": "en", "globals": {"siteName": {"en": "x"}}, "pages": []}`,
			wantField: "(root)",
		},
		{
			name:      "unsupported language",
			doc:       `{"languages": ["de"], "defaultLanguage": "en", "globals": {"siteName": {"en": "x"}}, "pages": [], "sections": {}}`,
			wantField: "languages.0",
		},
		{
			name:      "empty languages",
			doc:       `{"languages": [], "defaultLanguage": "en", "globals": {"siteName": {"en": "x"}}, "pages": [], "sections": {}}`,
			wantField: "languages",
		},
		{
			name:      "section without components",
			doc:       `{"languages": ["en"], "defaultLanguage": "en", "globals": {"siteName": {"en": "x"}}, "pages": [], "sections": {"hero": {"type": "HeroSection"}}}`,
			wantField: "sections.hero",
		},
		{
			name:      "bilingual text with extra locale",
			doc:       `{"languages": ["en"], "defaultLanguage": "en", "globals": {"siteName": {"en": "x", "de": "y"}}, "pages": [], "sections": {}}`,
			wantField: "globals.siteName",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateContent([]byte(tt.doc))
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "error should be ValidationError, got %T", err)
			var fields []string
			for _, fe := range verr.Errors {
				fields = append(fields, fe.Field)
			}
			assert.Contains(t, fields, tt.wantField)
		})
	}
}

func TestValidateContent_Malformed(t *testing.T) {
	err := ValidateContent([]byte("{ invalid json }"))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestValidateJSON_File(t *testing.T) {
	tmpDir := t.TempDir()
	schemaPath := filepath.Join(tmpDir, "schema.json")
	okPath := filepath.Join(tmpDir, "ok.json")
	badPath := filepath.Join(tmpDir, "bad.json")

	require.NoError(t, os.WriteFile(schemaPath, []byte(`{"type": "object", "required": ["name"], "properties": {"name": {"type": "string"}}}`), 0644))
	require.NoError(t, os.WriteFile(okPath, []byte(`{"name": "test"}`), 0644))
	require.NoError(t, os.WriteFile(badPath, []byte(`{"name": 42}`), 0644))

	assert.NoError(t, ValidateJSON(schemaPath, okPath))

	err := ValidateJSON(schemaPath, badPath)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "name", verr.Errors[0].Field)
}

func TestValidateJSON_NonExistentFiles(t *testing.T) {
	tmpDir := t.TempDir()
	jsonPath := filepath.Join(tmpDir, "doc.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{}`), 0644))

	err := ValidateJSON(filepath.Join(tmpDir, "nonexistent_schema.json"), jsonPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	err = ValidateJSON(jsonPath, filepath.Join(tmpDir, "nonexistent.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{
		{Field: "pages.0.id", Message: "String length must be greater than or equal to 1"},
	}}
	assert.Contains(t, err.Error(), "1. pages.0.id")
}
