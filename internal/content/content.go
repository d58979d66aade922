package content

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Content holds every static definition table, loaded once at startup and
// never mutated afterwards. Order slices preserve file declaration order and
// are the source of truth for deterministic listings; ByID maps are derived.
type Content struct {
	Types        TypeCatalog
	Materials    MaterialCatalog
	Technologies TechCatalog
	Craftables   CraftCatalog
}

type TypeCatalog struct {
	Order  []string
	ByID   map[string]ResourceType
	Digest string
}

type MaterialCatalog struct {
	// ByType keeps per-type declaration order; material ids are unique
	// across all types.
	ByType map[string][]Material
	ByID   map[string]Material
	TypeOf map[string]string
	Digest string
}

type TechCatalog struct {
	Order  []string
	ByID   map[string]Technology
	Digest string
}

type CraftCatalog struct {
	Order  []string
	ByID   map[string]Craftable
	Digest string
}

// Load reads every content table under dataDir. It fails on malformed JSON,
// empty ids and duplicate ids; cross-reference and graph integrity is the
// verify package's job.
func Load(dataDir string) (*Content, error) {
	var c Content

	if err := loadTypes(filepath.Join(dataDir, "resource_types.json"), &c.Types); err != nil {
		return nil, err
	}
	if err := loadMaterials(dataDir, c.Types, &c.Materials); err != nil {
		return nil, err
	}
	if err := loadTechnologies(filepath.Join(dataDir, "technologies.json"), &c.Technologies); err != nil {
		return nil, err
	}
	if err := loadCraftables(filepath.Join(dataDir, "craftables.json"), &c.Craftables); err != nil {
		return nil, err
	}

	return &c, nil
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func loadTypes(path string, out *TypeCatalog) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	out.Digest = sha256Hex(raw)

	var defs []ResourceType
	if err := json.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("resource_types.json: %w", err)
	}
	out.ByID = map[string]ResourceType{}
	for _, d := range defs {
		if d.ID == "" {
			return fmt.Errorf("resource_types.json: empty id")
		}
		if _, ok := out.ByID[d.ID]; ok {
			return fmt.Errorf("resource_types.json: duplicate id %q", d.ID)
		}
		out.ByID[d.ID] = d
		out.Order = append(out.Order, d.ID)
	}
	return nil
}

func loadMaterials(dataDir string, types TypeCatalog, out *MaterialCatalog) error {
	out.ByType = map[string][]Material{}
	out.ByID = map[string]Material{}
	out.TypeOf = map[string]string{}

	var concat bytes.Buffer
	for _, typeID := range types.Order {
		rt := types.ByID[typeID]
		if rt.MaterialFile == "" {
			return fmt.Errorf("resource type %q: missing material_file", typeID)
		}
		p := filepath.Join(dataDir, "materials", rt.MaterialFile)
		raw, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		concat.Write(raw)
		concat.WriteByte('\n')

		var defs []Material
		if err := json.Unmarshal(raw, &defs); err != nil {
			return fmt.Errorf("%s: %w", rt.MaterialFile, err)
		}
		for _, m := range defs {
			if m.ID == "" {
				return fmt.Errorf("%s: empty id", rt.MaterialFile)
			}
			if prev, ok := out.TypeOf[m.ID]; ok {
				return fmt.Errorf("material %q declared for both %q and %q", m.ID, prev, typeID)
			}
			out.ByType[typeID] = append(out.ByType[typeID], m)
			out.ByID[m.ID] = m
			out.TypeOf[m.ID] = typeID
		}
	}
	out.Digest = sha256Hex(concat.Bytes())
	return nil
}

func loadTechnologies(path string, out *TechCatalog) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	out.Digest = sha256Hex(raw)

	var defs []Technology
	if err := json.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("technologies.json: %w", err)
	}
	out.ByID = map[string]Technology{}
	for _, d := range defs {
		if d.ID == "" {
			return fmt.Errorf("technologies.json: empty id")
		}
		if _, ok := out.ByID[d.ID]; ok {
			return fmt.Errorf("technologies.json: duplicate id %q", d.ID)
		}
		out.ByID[d.ID] = d
		out.Order = append(out.Order, d.ID)
	}
	return nil
}

func loadCraftables(path string, out *CraftCatalog) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	out.Digest = sha256Hex(raw)

	var defs []Craftable
	if err := json.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("craftables.json: %w", err)
	}
	out.ByID = map[string]Craftable{}
	for _, d := range defs {
		if d.ID == "" {
			return fmt.Errorf("craftables.json: empty id")
		}
		if _, ok := out.ByID[d.ID]; ok {
			return fmt.Errorf("craftables.json: duplicate id %q", d.ID)
		}
		out.ByID[d.ID] = d
		out.Order = append(out.Order, d.ID)
	}
	return nil
}
