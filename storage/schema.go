package storage

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed tasks.schema.json
var tasksSchemaSource string

const tasksSchemaURL = "tasks.schema.json"

var tasksSchema = mustCompileSchema()

func mustCompileSchema() *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(tasksSchemaURL, strings.NewReader(tasksSchemaSource)); err != nil {
		panic(fmt.Sprintf("add tasks schema: %v", err))
	}
	return compiler.MustCompile(tasksSchemaURL)
}

// SchemaError lists every violation found in a stored document.
type SchemaError struct {
	Problems []Problem
}

// Problem is a single schema violation.
type Problem struct {
	Path    string
	Message string
}

func (e *SchemaError) Error() string {
	parts := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		if p.Path == "" {
			parts = append(parts, p.Message)
			continue
		}
		parts = append(parts, p.Path+": "+p.Message)
	}
	return "schema validation failed: " + strings.Join(parts, "; ")
}

// ValidateDocument checks a decoded JSON document against the stored task
// schema.
func ValidateDocument(doc any) error {
	err := tasksSchema.Validate(doc)
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	result := &SchemaError{}
	collectProblems(result, ve)
	return result
}

func collectProblems(result *SchemaError, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		result.Problems = append(result.Problems, Problem{
			Path:    pointerToPath(err.InstanceLocation),
			Message: err.Message,
		})
		return
	}
	for _, cause := range err.Causes {
		collectProblems(result, cause)
	}
}

// pointerToPath turns "/0/text" into "[0].text".
func pointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(strings.TrimPrefix(ptr, "#"), "/")
	if ptr == "" {
		return ""
	}
	var b strings.Builder
	for _, part := range strings.Split(ptr, "/") {
		if part != "" && strings.Trim(part, "0123456789") == "" {
			b.WriteString("[" + part + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteString(".")
		}
		b.WriteString(part)
	}
	return b.String()
}
