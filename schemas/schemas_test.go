package schemas

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentSchema_ValidJSON(t *testing.T) {
	var v map[string]interface{}
	require.NoError(t, json.Unmarshal(Content, &v), "embedded schema should be valid JSON")

	_, hasSchema := v["$schema"]
	assert.True(t, hasSchema)
	assert.Equal(t, "object", v["type"])
}

func TestContentSchema_RequiresTopLevelKeys(t *testing.T) {
	var v struct {
		Required []string `json:"required"`
	}
	require.NoError(t, json.Unmarshal(Content, &v))

	assert.ElementsMatch(t,
		[]string{"languages", "defaultLanguage", "globals", "pages", "sections"},
		v.Required)
}
