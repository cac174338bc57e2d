package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"
)

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	schemaFiles := []string{
		"automation_rules.schema.json",
	}

	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(".", schemaFile))
			require.NoError(t, err, "should be able to read schema file")

			var v interface{}
			err = json.Unmarshal(data, &v)
			assert.NoError(t, err, "schema file should be valid JSON: %s", schemaFile)
		})
	}
}

func TestSchemaFiles_ValidJSONSchema(t *testing.T) {
	loader := gojsonschema.NewReferenceLoader("file://" + mustAbs(t, "automation_rules.schema.json"))
	_, err := gojsonschema.NewSchema(loader)
	assert.NoError(t, err, "schema should compile as a JSON Schema")
}

func TestDefaultRulesSnapshot_MatchesSchema(t *testing.T) {
	schemaLoader := gojsonschema.NewReferenceLoader("file://" + mustAbs(t, "automation_rules.schema.json"))
	documentLoader := gojsonschema.NewReferenceLoader("file://" + mustAbs(t, "default_rules.json"))

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	require.NoError(t, err)
	assert.True(t, result.Valid(), "default rule snapshot should validate: %v", result.Errors())
}

func mustAbs(t *testing.T, rel string) string {
	t.Helper()
	abs, err := filepath.Abs(rel)
	require.NoError(t, err)
	return abs
}
