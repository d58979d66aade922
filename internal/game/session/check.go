package session

import (
	"paleotrek.quest/internal/game/spend"
)

// Availability is the advisory dry-run result for an unlock or craft: can
// the operation proceed, and if not, what is in the way. Resource totals are
// summed across stacks, ignoring which specific stacks would pay, so a clear
// report here never substitutes for commit-time selection validation.
type Availability struct {
	Known                bool
	CanProceed           bool
	AlreadyUnlocked      bool
	MissingPrerequisites []string
	MissingResources     []spend.Shortfall
}

// CheckTechnology reports whether id could be unlocked with the current
// prerequisites and inventory totals. Unknown ids degrade to a zero report
// with Known=false rather than an error.
func (s *Session) CheckTechnology(id string) Availability {
	tech, ok := s.Content.Technologies.ByID[id]
	if !ok {
		return Availability{}
	}
	out := Availability{Known: true}
	if s.Unlocked.Has(id) {
		out.AlreadyUnlocked = true
		return out
	}
	out.MissingPrerequisites = s.Techs.MissingPrerequisites(id, s.Unlocked)
	out.MissingResources = spend.MissingResources(techCosts(tech), s.Inventory)
	out.CanProceed = len(out.MissingPrerequisites) == 0 && len(out.MissingResources) == 0
	return out
}

// CheckCraftable reports whether id could be crafted now: tool/component
// ownership plus per-type material totals. For a flag-constrained slot the
// total counts only materials carrying the flag, which tightens the hint but
// still does not prove a feasible stack-by-stack selection.
func (s *Session) CheckCraftable(id string) Availability {
	craft, ok := s.Content.Craftables.ByID[id]
	if !ok {
		return Availability{}
	}
	out := Availability{Known: true}
	for _, req := range craft.Requirements() {
		if s.Owned[req.ID] < req.Quantity {
			out.MissingPrerequisites = append(out.MissingPrerequisites, req.ID)
		}
	}
	type slotKey struct{ typeID, flag string }
	need := map[slotKey]int{}
	var order []slotKey
	for _, slot := range craft.MaterialSlots {
		k := slotKey{slot.ResourceType, slot.RequiredFlag}
		if _, ok := need[k]; !ok {
			order = append(order, k)
		}
		need[k] += slot.Quantity
	}
	for _, k := range order {
		have := 0
		if k.flag == "" {
			have = s.Inventory.Total(k.typeID)
		} else {
			for _, st := range s.Inventory[k.typeID] {
				m, ok := s.Content.Materials.ByID[st.MaterialID]
				if ok && m.HasFlag(k.flag) {
					have += st.Quantity
				}
			}
		}
		if have < need[k] {
			out.MissingResources = append(out.MissingResources, spend.Shortfall{
				Type:   k.typeID,
				Have:   have,
				Needed: need[k],
			})
		}
	}
	out.CanProceed = len(out.MissingPrerequisites) == 0 && len(out.MissingResources) == 0
	return out
}

// AvailableTechnologies lists the technologies unlockable with the current
// unlocked set, declaration order.
func (s *Session) AvailableTechnologies() []string {
	return s.Techs.AvailableSet(s.Unlocked)
}

// AvailableCraftables lists the craftables whose tool/component requirements
// are met by the owned set, declaration order.
func (s *Session) AvailableCraftables() []string {
	return s.Crafts.AvailableSet(s.OwnedSet())
}
