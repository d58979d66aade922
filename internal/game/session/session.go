// Package session owns the mutable per-player state: the inventory, the
// unlocked technology set and the owned craftable counts. Everything is
// single-threaded by contract; a port to a concurrent runtime must put a
// single writer in front of a Session rather than lock inside it.
package session

import (
	"time"

	"paleotrek.quest/internal/content"
	"paleotrek.quest/internal/game/inventory"
	"paleotrek.quest/internal/game/quality"
	"paleotrek.quest/internal/game/spend"
	"paleotrek.quest/internal/game/techtree"
	"paleotrek.quest/internal/tuning"
)

// Event is one successful session mutation, handed to an optional Recorder.
type Event struct {
	Kind  string    `json:"kind"` // "UNLOCK" or "CRAFT"
	ID    string    `json:"id"`
	Score float64   `json:"score,omitempty"`
	Tier  string    `json:"tier,omitempty"`
	At    time.Time `json:"at"`
}

const (
	EventUnlock = "UNLOCK"
	EventCraft  = "CRAFT"
)

// Recorder receives successful unlock/craft events. Recording is
// best-effort: a recorder failure never rolls back the game state.
type Recorder interface {
	Record(ev Event) error
}

type Session struct {
	Content *content.Content
	Techs   *techtree.Graph
	Crafts  *techtree.Graph

	Inventory inventory.Inventory
	Unlocked  techtree.Set
	Owned     map[string]int

	Scorer   quality.Scorer
	Recorder Recorder

	now func() time.Time
}

// New builds a fresh session over loaded content: empty inventory, nothing
// unlocked, nothing owned.
func New(c *content.Content, t tuning.Tuning) *Session {
	return &Session{
		Content:   c,
		Techs:     techtree.FromTechnologies(c.Technologies),
		Crafts:    techtree.FromCraftables(c.Craftables),
		Inventory: inventory.New(),
		Unlocked:  techtree.Set{},
		Owned:     map[string]int{},
		Scorer:    quality.NewScorer(t),
		now:       time.Now,
	}
}

// OwnedSet views the owned craftable counts as a requirement set for the
// craftable graph.
func (s *Session) OwnedSet() techtree.Set {
	set := make(techtree.Set, len(s.Owned))
	for id, n := range s.Owned {
		if n > 0 {
			set.Add(id)
		}
	}
	return set
}

// UnlockTechnology spends the technology's resource cost and adds it to the
// unlocked set. Failure leaves every piece of session state unchanged.
func (s *Session) UnlockTechnology(id string, sel inventory.Selection) spend.Result {
	tech, ok := s.Content.Technologies.ByID[id]
	if !ok {
		return spend.Result{Code: spend.ErrInvalidTarget, ID: id, Detail: "unknown technology"}
	}
	if s.Unlocked.Has(id) {
		return spend.Result{Code: spend.ErrAlreadyUnlocked, ID: id}
	}
	if missing := s.Techs.MissingPrerequisites(id, s.Unlocked); len(missing) > 0 {
		return spend.Result{Code: spend.ErrMissingPrereqs, ID: id, Missing: missing}
	}

	res := spend.AttemptSpend(techCosts(tech), sel, s.Inventory)
	if !res.OK() {
		return res
	}
	s.Unlocked.Add(id)
	s.record(Event{Kind: EventUnlock, ID: id, At: s.now()})

	res.ID = id
	return res
}

// CraftResult extends the spend result with the crafted item's quality.
type CraftResult struct {
	spend.Result
	Score float64
	Tier  string
}

// CraftItem validates tool/component ownership and the material selection,
// spends the slot costs and adds the item to the owned set, scoring it from
// the same selection that paid for it.
func (s *Session) CraftItem(id string, sel inventory.Selection) CraftResult {
	craft, ok := s.Content.Craftables.ByID[id]
	if !ok {
		return CraftResult{Result: spend.Result{Code: spend.ErrInvalidTarget, ID: id, Detail: "unknown craftable"}}
	}

	var missing []string
	for _, req := range craft.Requirements() {
		if s.Owned[req.ID] < req.Quantity {
			missing = append(missing, req.ID)
		}
	}
	if len(missing) > 0 {
		return CraftResult{Result: spend.Result{Code: spend.ErrMissingPrereqs, ID: id, Missing: missing}}
	}

	if res := s.checkSlotFlags(craft, sel); !res.OK() {
		return CraftResult{Result: res}
	}

	res := spend.AttemptSpend(slotCosts(craft), sel, s.Inventory)
	if !res.OK() {
		return CraftResult{Result: res}
	}
	s.Owned[id]++

	mats := s.usedMaterials(craft, sel)
	score := s.Scorer.Score(craft.QualityWeights, mats)
	tier := s.Scorer.Tier(score)
	s.record(Event{Kind: EventCraft, ID: id, Score: score, Tier: tier, At: s.now()})

	res.ID = id
	return CraftResult{Result: res, Score: score, Tier: tier}
}

// checkSlotFlags enforces flag-constrained slots: every material selected
// for a flagged slot's resource type must carry the flag. Runs before the
// spend so a flag violation never touches the inventory.
func (s *Session) checkSlotFlags(craft content.Craftable, sel inventory.Selection) spend.Result {
	for _, slot := range craft.MaterialSlots {
		if slot.RequiredFlag == "" {
			continue
		}
		for _, p := range sel[slot.ResourceType] {
			m, ok := s.Content.Materials.ByID[p.MaterialID]
			if !ok || !m.HasFlag(slot.RequiredFlag) {
				return spend.Result{
					Code:       spend.ErrUnsuitableMaterial,
					ID:         craft.ID,
					MaterialID: p.MaterialID,
					Detail:     "slot requires flag " + slot.RequiredFlag,
				}
			}
		}
	}
	return spend.Result{}
}

// usedMaterials resolves the selection into one material per pick, slot
// declaration order, for the quality scorer. Each resource type contributes
// its picks once even if several slots share the type.
func (s *Session) usedMaterials(craft content.Craftable, sel inventory.Selection) []content.Material {
	var mats []content.Material
	seen := map[string]bool{}
	for _, slot := range craft.MaterialSlots {
		if seen[slot.ResourceType] {
			continue
		}
		seen[slot.ResourceType] = true
		for _, p := range sel[slot.ResourceType] {
			if m, ok := s.Content.Materials.ByID[p.MaterialID]; ok {
				mats = append(mats, m)
			}
		}
	}
	return mats
}

func (s *Session) record(ev Event) {
	if s.Recorder == nil {
		return
	}
	// Best-effort; game state already committed.
	_ = s.Recorder.Record(ev)
}

func techCosts(t content.Technology) []spend.Cost {
	out := make([]spend.Cost, 0, len(t.Cost))
	for _, c := range t.Cost {
		out = append(out, spend.Cost{Type: c.ResourceType, Quantity: c.Quantity})
	}
	return out
}

func slotCosts(c content.Craftable) []spend.Cost {
	out := make([]spend.Cost, 0, len(c.MaterialSlots))
	for _, slot := range c.MaterialSlots {
		out = append(out, spend.Cost{Type: slot.ResourceType, Quantity: slot.Quantity})
	}
	return out
}
