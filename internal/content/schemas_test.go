package content_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Every shipped data file must validate against its schema; contentcheck
// runs the same gate before shipping.
func TestSchemas_ValidateShippedData(t *testing.T) {
	compile := func(name string) *jsonschema.Schema {
		t.Helper()
		s, err := jsonschema.Compile(filepath.Join("..", "..", "schemas", name))
		if err != nil {
			t.Fatalf("compile %s: %v", name, err)
		}
		return s
	}

	validate := func(s *jsonschema.Schema, path string) {
		t.Helper()
		raw, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read %s: %v", path, err)
		}
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			t.Fatalf("unmarshal %s: %v", path, err)
		}
		if err := s.Validate(v); err != nil {
			t.Fatalf("validate %s: %v", path, err)
		}
	}

	dataDir := filepath.Join("..", "..", "data")

	validate(compile("resource_types.schema.json"), filepath.Join(dataDir, "resource_types.json"))

	materials := compile("materials.schema.json")
	entries, err := os.ReadDir(filepath.Join(dataDir, "materials"))
	if err != nil {
		t.Fatalf("read materials dir: %v", err)
	}
	for _, e := range entries {
		validate(materials, filepath.Join(dataDir, "materials", e.Name()))
	}

	validate(compile("technologies.schema.json"), filepath.Join(dataDir, "technologies.json"))
	validate(compile("craftables.schema.json"), filepath.Join(dataDir, "craftables.json"))
}
