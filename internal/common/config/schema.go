// internal/common/config/schema.go
package config

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	stderrors "template-normalizer/internal/common/errors"
)

// configSchema constrains the raw config document before unmarshalling,
// so type mistakes (a string where a bool is expected, an unknown
// logging level) surface as one clear CONFIG_INVALID-style report
// instead of a mapstructure decode error.
var configSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"app": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"name":        map[string]interface{}{"type": "string"},
				"version":     map[string]interface{}{"type": "string"},
				"environment": map[string]interface{}{"type": "string"},
			},
		},
		"input": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"path": map[string]interface{}{"type": "string"},
				"format": map[string]interface{}{
					"type": "string",
					"enum": []interface{}{"auto", "json", "yaml", ""},
				},
			},
		},
		"output": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"path": map[string]interface{}{"type": "string"},
			},
		},
		"normalize": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"parameters": map[string]interface{}{"type": "boolean"},
			},
		},
		"manifest": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"enabled": map[string]interface{}{"type": "boolean"},
				"path":    map[string]interface{}{"type": "string"},
			},
		},
		"aws": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"region": map[string]interface{}{"type": "string"},
			},
		},
		"logging": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"level": map[string]interface{}{
					"type": "string",
					"enum": []interface{}{"debug", "info", "warn", "error", ""},
				},
				"format": map[string]interface{}{"type": "string"},
				"output": map[string]interface{}{"type": "string"},
			},
		},
	},
}

// validateSchema checks the merged settings map against configSchema.
func validateSchema(settings map[string]interface{}) error {
	schemaLoader := gojsonschema.NewGoLoader(configSchema)
	documentLoader := gojsonschema.NewGoLoader(settings)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("config schema validation failed to run: %w", err)
	}

	if !result.Valid() {
		var problems []string
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return stderrors.NewConfigInvalidError(
			fmt.Sprintf("config schema validation failed: %s", strings.Join(problems, "; ")))
	}

	return nil
}
