// contentcheck is the content-integrity gate. It schema-validates the data
// files, loads them, and runs every cross-reference and graph check. It
// exits non-zero on any violation, so CI can block shipping broken content.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"paleotrek.quest/internal/content"
	"paleotrek.quest/internal/content/verify"
	"paleotrek.quest/internal/tuning"
)

func main() {
	var (
		dataDir    = flag.String("data", "./data", "content data directory")
		schemaDir  = flag.String("schemas", "./schemas", "JSON schema directory")
		tuningPath = flag.String("tuning", "", "path to tuning.yaml (default: <data>/tuning.yaml)")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[contentcheck] ", log.LstdFlags)

	failed := false

	if err := validateSchemas(*schemaDir, *dataDir); err != nil {
		logger.Printf("schema validation: %v", err)
		failed = true
	}

	c, err := content.Load(*dataDir)
	if err != nil {
		logger.Fatalf("load content: %v", err)
	}

	for _, p := range verify.Check(c) {
		logger.Printf("content: %s", p)
		failed = true
	}

	tp := *tuningPath
	if tp == "" {
		tp = filepath.Join(*dataDir, "tuning.yaml")
	}
	if _, err := tuning.Load(tp); err != nil {
		logger.Printf("tuning: %v", err)
		failed = true
	}

	if failed {
		os.Exit(1)
	}

	logger.Printf("ok: %d types (digest %s), %d materials (digest %s), %d technologies (digest %s), %d craftables (digest %s)",
		len(c.Types.Order), short(c.Types.Digest),
		len(c.Materials.ByID), short(c.Materials.Digest),
		len(c.Technologies.Order), short(c.Technologies.Digest),
		len(c.Craftables.Order), short(c.Craftables.Digest),
	)
}

func short(digest string) string {
	if len(digest) > 12 {
		return digest[:12]
	}
	return digest
}

// validateSchemas checks every data file against its schema. Material files
// are located through resource_types.json, which must itself validate first.
func validateSchemas(schemaDir, dataDir string) error {
	compile := func(name string) (*jsonschema.Schema, error) {
		return jsonschema.Compile(filepath.Join(schemaDir, name))
	}
	validateFile := func(s *jsonschema.Schema, path string) error {
		raw, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		return s.Validate(v)
	}

	typesSchema, err := compile("resource_types.schema.json")
	if err != nil {
		return err
	}
	typesPath := filepath.Join(dataDir, "resource_types.json")
	if err := validateFile(typesSchema, typesPath); err != nil {
		return err
	}

	materialsSchema, err := compile("materials.schema.json")
	if err != nil {
		return err
	}
	raw, err := os.ReadFile(typesPath)
	if err != nil {
		return err
	}
	var types []struct {
		MaterialFile string `json:"material_file"`
	}
	if err := json.Unmarshal(raw, &types); err != nil {
		return err
	}
	for _, t := range types {
		if t.MaterialFile == "" {
			continue
		}
		p := filepath.Join(dataDir, "materials", t.MaterialFile)
		if err := validateFile(materialsSchema, p); err != nil {
			return err
		}
	}

	techSchema, err := compile("technologies.schema.json")
	if err != nil {
		return err
	}
	if err := validateFile(techSchema, filepath.Join(dataDir, "technologies.json")); err != nil {
		return err
	}

	craftSchema, err := compile("craftables.schema.json")
	if err != nil {
		return err
	}
	return validateFile(craftSchema, filepath.Join(dataDir, "craftables.json"))
}
