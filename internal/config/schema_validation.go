package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/calcg-config.schema.json
var schemaJSON []byte

const schemaURL = "https://github.com/githubnext/calcg/blob/main/internal/config/schemas/calcg-config.schema.json"

// validateJSONSchema validates a JSON-encoded configuration document against the embedded schema
func validateJSONSchema(data []byte) error {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7

	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return fmt.Errorf("failed to add schema resource: %w", err)
	}

	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return fmt.Errorf("failed to compile schema: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse configuration JSON: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return formatSchemaError(err)
	}
	return nil
}

// formatSchemaError turns a jsonschema.ValidationError tree into an indented, readable message
func formatSchemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return fmt.Errorf("configuration validation error: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("Configuration validation error:\n\n")
	formatValidationError(ve, &sb, 0)
	sb.WriteString("\nJSON Schema reference:\n")
	sb.WriteString(schemaURL)

	return errors.New(sb.String())
}

func formatValidationError(ve *jsonschema.ValidationError, sb *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)

	location := ve.InstanceLocation
	if location == "" {
		location = "<root>"
	}
	fmt.Fprintf(sb, "%sLocation: %s\n", indent, location)
	fmt.Fprintf(sb, "%sError: %s\n", indent, ve.Message)

	if strings.Contains(ve.Message, "additionalProperties") {
		fmt.Fprintf(sb, "%sDetails: Configuration contains field(s) that are not defined in the schema\n", indent)
	}

	for _, cause := range ve.Causes {
		formatValidationError(cause, sb, depth+1)
	}
}
