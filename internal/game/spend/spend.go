package spend

import (
	"fmt"

	"paleotrek.quest/internal/game/inventory"
)

// Failure codes carried by Result. These are expected, user-facing,
// recoverable conditions; the caller decides presentation.
const (
	ErrNoSelection          = "E_NO_SELECTION"
	ErrWrongQuantity        = "E_WRONG_QUANTITY_SELECTED"
	ErrInsufficientMaterial = "E_INSUFFICIENT_MATERIAL"
	ErrAlreadyUnlocked      = "E_ALREADY_UNLOCKED"
	ErrMissingPrereqs       = "E_MISSING_PREREQUISITES"
	ErrUnsuitableMaterial   = "E_UNSUITABLE_MATERIAL"
	ErrInvalidTarget        = "E_INVALID_TARGET"
)

// Cost is one resource requirement: spend Quantity units of Type.
type Cost struct {
	Type     string
	Quantity int
}

// Result is the tagged outcome of a spend or unlock/craft operation. A zero
// Code means success. On E_INSUFFICIENT_MATERIAL the MaterialID/Have/Needed
// triple identifies the first shortfall found.
type Result struct {
	Code    string
	ID      string
	Detail  string
	Missing []string

	MaterialID string
	Have       int
	Needed     int
}

func (r Result) OK() bool { return r.Code == "" }

func fail(code, detail string) Result {
	return Result{Code: code, Detail: detail}
}

// AttemptSpend validates a selection against the required costs and the
// inventory, then debits it. Validation runs to completion before the first
// write, so a failed call leaves the inventory untouched; there is no
// partial debit.
func AttemptSpend(costs []Cost, sel inventory.Selection, inv inventory.Inventory) Result {
	// Structural check: every positive cost needs picks for its type.
	for _, c := range costs {
		if c.Quantity <= 0 {
			continue
		}
		if len(sel[c.Type]) == 0 {
			return fail(ErrNoSelection, fmt.Sprintf("no selection for %q", c.Type))
		}
	}

	// Exact-quantity check: selected sum must equal the requirement, never
	// exceed it. Over- and under-selection are both the UI's to resolve
	// before commit.
	// Costs may repeat a type (one entry per slot); aggregate to one
	// requirement per type, keeping first-seen order.
	need := map[string]int{}
	var types []string
	for _, c := range costs {
		if c.Quantity <= 0 {
			continue
		}
		if _, ok := need[c.Type]; !ok {
			types = append(types, c.Type)
		}
		need[c.Type] += c.Quantity
	}
	for _, typeID := range types {
		got := 0
		for _, p := range sel[typeID] {
			if p.Quantity < 0 {
				return fail(ErrWrongQuantity,
					fmt.Sprintf("%q: negative quantity for %q", typeID, p.MaterialID))
			}
			got += p.Quantity
		}
		if got != need[typeID] {
			return fail(ErrWrongQuantity,
				fmt.Sprintf("%q: selected %d, required %d", typeID, got, need[typeID]))
		}
	}
	for typeID, picks := range sel {
		if _, ok := need[typeID]; ok {
			continue
		}
		got := 0
		for _, p := range picks {
			got += p.Quantity
		}
		if got != 0 {
			return fail(ErrWrongQuantity,
				fmt.Sprintf("%q: selected %d, required 0", typeID, got))
		}
	}

	// Availability check, pick by pick. Duplicate picks of one material are
	// combined first so they are validated as a single draw.
	type draw struct {
		typeID     string
		materialID string
		quantity   int
	}
	var draws []draw
	for _, typeID := range types {
		for _, p := range inventory.Sum(sel[typeID]) {
			if p.Quantity <= 0 {
				continue
			}
			have := inv.Quantity(typeID, p.MaterialID)
			if have < p.Quantity {
				return Result{
					Code:       ErrInsufficientMaterial,
					Detail:     fmt.Sprintf("%q: have %d, needed %d", p.MaterialID, have, p.Quantity),
					MaterialID: p.MaterialID,
					Have:       have,
					Needed:     p.Quantity,
				}
			}
			draws = append(draws, draw{typeID, p.MaterialID, p.Quantity})
		}
	}

	// Atomic apply. Every draw was just validated against a single-writer
	// inventory, so Debit cannot come up short here.
	for _, d := range draws {
		inv.Debit(d.typeID, d.materialID, d.quantity)
	}
	return Result{}
}

// Shortfall is one advisory per-type deficit: the inventory's summed total
// against the summed requirement, ignoring which specific stacks would pay.
type Shortfall struct {
	Type   string `json:"type"`
	Have   int    `json:"have"`
	Needed int    `json:"needed"`
}

// MissingResources compares per-type inventory totals against the costs.
// Advisory only: a sufficient total does not prove a feasible stack-by-stack
// selection exists, so commit-time validation always re-checks.
func MissingResources(costs []Cost, inv inventory.Inventory) []Shortfall {
	need := map[string]int{}
	var order []string
	for _, c := range costs {
		if c.Quantity <= 0 {
			continue
		}
		if _, ok := need[c.Type]; !ok {
			order = append(order, c.Type)
		}
		need[c.Type] += c.Quantity
	}
	var out []Shortfall
	for _, typeID := range order {
		have := inv.Total(typeID)
		if have < need[typeID] {
			out = append(out, Shortfall{Type: typeID, Have: have, Needed: need[typeID]})
		}
	}
	return out
}
