// Package verify is the content-integrity gate: it cross-checks the loaded
// definition tables and reports every violation. A non-empty report is fatal
// at load/ship time; nothing here is a per-session condition.
package verify

import (
	"fmt"
	"math"

	"paleotrek.quest/internal/content"
	"paleotrek.quest/internal/game/techtree"
)

const (
	CodeDanglingRef = "DANGLING_REF"
	CodeCycle       = "CYCLE"
	CodeNoRoot      = "NO_ROOT"
	CodeBadWeights  = "BAD_WEIGHTS"
	CodeBadRarity   = "BAD_RARITY"
	CodeBadProperty = "BAD_PROPERTY"
	CodeBadSlot     = "BAD_SLOT"
	CodeBadCost     = "BAD_COST"
)

type Problem struct {
	Code   string
	ID     string
	Detail string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s %s: %s", p.Code, p.ID, p.Detail)
}

const weightTolerance = 1e-9

// Check runs every integrity rule over the loaded content and returns the
// full violation list, empty when the content is shippable.
func Check(c *content.Content) []Problem {
	var out []Problem
	out = append(out, checkMaterials(c)...)
	out = append(out, checkTechnologies(c)...)
	out = append(out, checkCraftables(c)...)
	out = append(out, checkGraphs(c)...)
	return out
}

func checkMaterials(c *content.Content) []Problem {
	var out []Problem
	for _, typeID := range c.Types.Order {
		rt := c.Types.ByID[typeID]
		axes := map[string]struct{}{}
		for _, a := range rt.PropertyAxes {
			axes[a] = struct{}{}
		}
		for _, m := range c.Materials.ByType[typeID] {
			if m.Rarity < 0 || m.Rarity > 1 {
				out = append(out, Problem{CodeBadRarity, m.ID,
					fmt.Sprintf("rarity %v outside [0,1]", m.Rarity)})
			}
			for axis, v := range m.Properties {
				if _, ok := axes[axis]; !ok {
					out = append(out, Problem{CodeBadProperty, m.ID,
						fmt.Sprintf("axis %q not declared by type %q", axis, typeID)})
				}
				if v < 1 || v > 10 {
					out = append(out, Problem{CodeBadProperty, m.ID,
						fmt.Sprintf("axis %q value %v outside 1..10", axis, v)})
				}
			}
		}
	}
	return out
}

func checkTechnologies(c *content.Content) []Problem {
	var out []Problem
	for _, id := range c.Technologies.Order {
		t := c.Technologies.ByID[id]
		for _, req := range t.Prerequisites {
			if _, ok := c.Technologies.ByID[req]; !ok {
				out = append(out, Problem{CodeDanglingRef, id,
					fmt.Sprintf("prerequisite %q is not a known technology", req)})
			}
		}
		for _, u := range t.UnlocksTechnologies {
			if _, ok := c.Technologies.ByID[u]; !ok {
				out = append(out, Problem{CodeDanglingRef, id,
					fmt.Sprintf("unlocks unknown technology %q", u)})
			}
		}
		for _, cost := range t.Cost {
			if _, ok := c.Types.ByID[cost.ResourceType]; !ok {
				out = append(out, Problem{CodeDanglingRef, id,
					fmt.Sprintf("cost names unknown resource type %q", cost.ResourceType)})
			}
			if cost.Quantity <= 0 {
				out = append(out, Problem{CodeBadCost, id,
					fmt.Sprintf("cost for %q has non-positive quantity %d", cost.ResourceType, cost.Quantity)})
			}
		}
		// Recipe ids are opaque: they only need to resolve when they point
		// at something the craftable table knows. Ids outside the table are
		// legal (non-tool, non-component outputs).
	}
	return out
}

func checkCraftables(c *content.Content) []Problem {
	var out []Problem
	for _, id := range c.Craftables.Order {
		cr := c.Craftables.ByID[id]
		for _, req := range cr.Requirements() {
			if _, ok := c.Craftables.ByID[req.ID]; !ok {
				out = append(out, Problem{CodeDanglingRef, id,
					fmt.Sprintf("requirement %q is not a known craftable", req.ID)})
			}
			if req.Quantity <= 0 {
				out = append(out, Problem{CodeBadCost, id,
					fmt.Sprintf("requirement %q has non-positive quantity %d", req.ID, req.Quantity)})
			}
		}

		axes := map[string]struct{}{}
		for _, slot := range cr.MaterialSlots {
			rt, ok := c.Types.ByID[slot.ResourceType]
			if !ok {
				out = append(out, Problem{CodeBadSlot, id,
					fmt.Sprintf("slot names unknown resource type %q", slot.ResourceType)})
				continue
			}
			if slot.Quantity <= 0 {
				out = append(out, Problem{CodeBadSlot, id,
					fmt.Sprintf("slot for %q has non-positive quantity %d", slot.ResourceType, slot.Quantity)})
			}
			for _, a := range rt.PropertyAxes {
				axes[a] = struct{}{}
			}
		}

		if len(cr.MaterialSlots) > 0 {
			sum := 0.0
			for axis, w := range cr.QualityWeights {
				if w < 0 {
					out = append(out, Problem{CodeBadWeights, id,
						fmt.Sprintf("negative weight %v for axis %q", w, axis)})
				}
				if _, ok := axes[axis]; !ok {
					out = append(out, Problem{CodeBadWeights, id,
						fmt.Sprintf("weight for axis %q not tracked by any slot type", axis)})
				}
				sum += w
			}
			if math.Abs(sum-1.0) > weightTolerance {
				out = append(out, Problem{CodeBadWeights, id,
					fmt.Sprintf("weights sum to %v, want 1.0", sum)})
			}
		}
	}
	return out
}

func checkGraphs(c *content.Content) []Problem {
	var out []Problem

	techs := techtree.FromTechnologies(c.Technologies)
	if ids := techs.ValidateAcyclic(); len(ids) > 0 {
		for _, id := range ids {
			out = append(out, Problem{CodeCycle, id, "technology prerequisite cycle"})
		}
	}
	if len(techs.Roots()) == 0 && len(c.Technologies.Order) > 0 {
		out = append(out, Problem{CodeNoRoot, "technologies", "no technology has zero prerequisites"})
	}

	crafts := techtree.FromCraftables(c.Craftables)
	if ids := crafts.ValidateAcyclic(); len(ids) > 0 {
		for _, id := range ids {
			out = append(out, Problem{CodeCycle, id, "craftable requirement cycle"})
		}
	}
	if len(crafts.Roots()) == 0 && len(c.Craftables.Order) > 0 {
		out = append(out, Problem{CodeNoRoot, "craftables", "no craftable has empty requirements"})
	}

	return out
}
