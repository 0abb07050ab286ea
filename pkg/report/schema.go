package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema/analysis_result.schema.json
var schemaJSON []byte

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
		if err != nil {
			schemaErr = fmt.Errorf("parsing embedded schema: %w", err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("analysis_result.schema.json", doc); err != nil {
			schemaErr = fmt.Errorf("registering embedded schema: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile("analysis_result.schema.json")
	})
	return schema, schemaErr
}

// ValidateJSON checks a serialized result against the embedded JSON
// schema. It returns nil when the document conforms.
func ValidateJSON(data []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("parsing result document: %w", err)
	}
	if err := s.Validate(inst); err != nil {
		return fmt.Errorf("result does not match schema: %w", err)
	}
	return nil
}
