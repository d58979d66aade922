package content

// ResourceType is a data-driven resource category (stone, wood, food, ...).
// The valid set is whatever resource_types.json declares; the engine never
// hardcodes category names.
type ResourceType struct {
	ID           string   `json:"id"`
	DisplayName  string   `json:"display_name"`
	PropertyAxes []string `json:"property_axes"`
	MaterialFile string   `json:"material_file"`
}

// Material is one concrete gatherable within a resource type. Properties are
// numeric axes on a 1..10 scale; the axis set is the owning type's.
type Material struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Category   string             `json:"category"`
	Rarity     float64            `json:"rarity"`
	Flags      []string           `json:"flags,omitempty"`
	Properties map[string]float64 `json:"properties"`
}

func (m Material) HasFlag(flag string) bool {
	for _, f := range m.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// FlagToolstone marks stone suitable for knapping into edged tools.
const FlagToolstone = "toolstone"

type ResourceCost struct {
	ResourceType string `json:"resource_type"`
	Quantity     int    `json:"quantity"`
}

type Technology struct {
	ID                  string         `json:"id"`
	Era                 string         `json:"era"`
	Prerequisites       []string       `json:"prerequisites,omitempty"`
	Cost                []ResourceCost `json:"cost,omitempty"`
	UnlocksTechnologies []string       `json:"unlocks_technologies,omitempty"`
	EnablesRecipes      []string       `json:"enables_recipes,omitempty"`
}

type ItemCount struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}

// MaterialSlot is one raw-material requirement of a craftable. RequiredFlag,
// when set, constrains which materials may fill the slot (e.g. "toolstone").
type MaterialSlot struct {
	ResourceType string `json:"resource_type"`
	Quantity     int    `json:"quantity"`
	RequiredFlag string `json:"required_flag,omitempty"`
}

type Craftable struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	Kind               string             `json:"kind"` // "TOOL","COMPONENT"
	RequiredTools      []ItemCount        `json:"required_tools,omitempty"`
	RequiredComponents []ItemCount        `json:"required_components,omitempty"`
	MaterialSlots      []MaterialSlot     `json:"material_slots,omitempty"`
	QualityWeights     map[string]float64 `json:"quality_weights,omitempty"`
}

// Requirements returns the craftable's full requirement list, tools first,
// in declaration order.
func (c Craftable) Requirements() []ItemCount {
	out := make([]ItemCount, 0, len(c.RequiredTools)+len(c.RequiredComponents))
	out = append(out, c.RequiredTools...)
	out = append(out, c.RequiredComponents...)
	return out
}
