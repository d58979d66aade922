package inventory

// Stack is a quantity of one material inside an inventory. Quantity is
// always positive: a stack that would reach zero is removed instead.
type Stack struct {
	MaterialID string `json:"material_id"`
	Quantity   int    `json:"quantity"`
}

// Inventory maps a resource-type id to its ordered stacks, at most one stack
// per material id within a type.
type Inventory map[string][]Stack

// Pick is one entry of a player's spend intent: take Quantity from the stack
// of MaterialID. Unvalidated until handed to the consumption engine.
type Pick struct {
	MaterialID string `json:"material_id"`
	Quantity   int    `json:"quantity"`
}

// Selection maps a resource-type id to the picks the caller wants to spend
// from it.
type Selection map[string][]Pick

func New() Inventory {
	return Inventory{}
}

// Add merges n units of a material into the type's stacks, appending a new
// stack for a first-seen material. Non-positive n is ignored.
func (inv Inventory) Add(typeID, materialID string, n int) {
	if typeID == "" || materialID == "" || n <= 0 {
		return
	}
	stacks := inv[typeID]
	for i := range stacks {
		if stacks[i].MaterialID == materialID {
			stacks[i].Quantity += n
			return
		}
	}
	inv[typeID] = append(stacks, Stack{MaterialID: materialID, Quantity: n})
}

// Quantity returns the stack size for one material, zero if absent.
func (inv Inventory) Quantity(typeID, materialID string) int {
	for _, s := range inv[typeID] {
		if s.MaterialID == materialID {
			return s.Quantity
		}
	}
	return 0
}

// Total sums every stack of one resource type.
func (inv Inventory) Total(typeID string) int {
	n := 0
	for _, s := range inv[typeID] {
		n += s.Quantity
	}
	return n
}

// Debit removes n units of a material, deleting the stack when it hits zero.
// The caller must have verified sufficiency; Debit reports whether the full
// amount was present and removed.
func (inv Inventory) Debit(typeID, materialID string, n int) bool {
	stacks := inv[typeID]
	for i := range stacks {
		if stacks[i].MaterialID != materialID {
			continue
		}
		if stacks[i].Quantity < n {
			return false
		}
		stacks[i].Quantity -= n
		if stacks[i].Quantity == 0 {
			stacks = append(stacks[:i], stacks[i+1:]...)
		}
		if len(stacks) == 0 {
			delete(inv, typeID)
		} else {
			inv[typeID] = stacks
		}
		return true
	}
	return false
}

// Clone deep-copies the inventory.
func (inv Inventory) Clone() Inventory {
	out := make(Inventory, len(inv))
	for typeID, stacks := range inv {
		cp := make([]Stack, len(stacks))
		copy(cp, stacks)
		out[typeID] = cp
	}
	return out
}

// Equal reports whether two inventories hold identical stacks in identical
// order.
func (inv Inventory) Equal(other Inventory) bool {
	if len(inv) != len(other) {
		return false
	}
	for typeID, stacks := range inv {
		os, ok := other[typeID]
		if !ok || len(os) != len(stacks) {
			return false
		}
		for i := range stacks {
			if stacks[i] != os[i] {
				return false
			}
		}
	}
	return true
}

// Sum aggregates a pick list per material id, preserving first-seen order.
// Duplicate picks of one material must be validated as a single combined
// draw against the stack.
func Sum(picks []Pick) []Pick {
	idx := map[string]int{}
	out := make([]Pick, 0, len(picks))
	for _, p := range picks {
		if i, ok := idx[p.MaterialID]; ok {
			out[i].Quantity += p.Quantity
			continue
		}
		idx[p.MaterialID] = len(out)
		out = append(out, p)
	}
	return out
}
