package spend

import (
	"testing"

	"paleotrek.quest/internal/game/inventory"
)

func stockedInventory() inventory.Inventory {
	inv := inventory.New()
	inv.Add("stone", "granite", 20)
	inv.Add("food", "berries", 10)
	return inv
}

func TestAttemptSpendExactCost(t *testing.T) {
	// 10 stone + 5 food against 20 stone / 10 food.
	inv := stockedInventory()
	res := AttemptSpend(
		[]Cost{{Type: "stone", Quantity: 10}, {Type: "food", Quantity: 5}},
		inventory.Selection{
			"stone": {{MaterialID: "granite", Quantity: 10}},
			"food":  {{MaterialID: "berries", Quantity: 5}},
		},
		inv,
	)
	if !res.OK() {
		t.Fatalf("spend failed: %+v", res)
	}
	if got := inv.Quantity("stone", "granite"); got != 10 {
		t.Fatalf("granite=%d, want 10", got)
	}
	if got := inv.Quantity("food", "berries"); got != 5 {
		t.Fatalf("berries=%d, want 5", got)
	}
}

func TestAttemptSpendSplitAcrossStacks(t *testing.T) {
	// granite x5 + basalt x5 against required 10: granite stack removed
	// entirely, basalt left at 5.
	inv := inventory.New()
	inv.Add("stone", "granite", 5)
	inv.Add("stone", "basalt", 10)

	res := AttemptSpend(
		[]Cost{{Type: "stone", Quantity: 10}},
		inventory.Selection{"stone": {
			{MaterialID: "granite", Quantity: 5},
			{MaterialID: "basalt", Quantity: 5},
		}},
		inv,
	)
	if !res.OK() {
		t.Fatalf("spend failed: %+v", res)
	}
	if got := inv.Quantity("stone", "granite"); got != 0 {
		t.Fatalf("granite=%d, want 0", got)
	}
	for _, s := range inv["stone"] {
		if s.MaterialID == "granite" {
			t.Fatalf("granite stack retained at zero: %#v", inv["stone"])
		}
	}
	if got := inv.Quantity("stone", "basalt"); got != 5 {
		t.Fatalf("basalt=%d, want 5", got)
	}
}

func TestAttemptSpendNoSelection(t *testing.T) {
	inv := stockedInventory()
	before := inv.Clone()

	res := AttemptSpend(
		[]Cost{{Type: "stone", Quantity: 10}, {Type: "food", Quantity: 5}},
		inventory.Selection{"stone": {{MaterialID: "granite", Quantity: 10}}},
		inv,
	)
	if res.Code != ErrNoSelection {
		t.Fatalf("code=%q, want %q", res.Code, ErrNoSelection)
	}
	if !inv.Equal(before) {
		t.Fatalf("inventory mutated on failure")
	}
}

func TestAttemptSpendWrongQuantity(t *testing.T) {
	// Under- and over-selection both fail exact-match, even with plenty in
	// the inventory.
	inv := stockedInventory()
	before := inv.Clone()

	for _, qty := range []int{9, 11} {
		res := AttemptSpend(
			[]Cost{{Type: "stone", Quantity: 10}},
			inventory.Selection{"stone": {{MaterialID: "granite", Quantity: qty}}},
			inv,
		)
		if res.Code != ErrWrongQuantity {
			t.Fatalf("qty=%d: code=%q, want %q", qty, res.Code, ErrWrongQuantity)
		}
		if !inv.Equal(before) {
			t.Fatalf("qty=%d: inventory mutated on failure", qty)
		}
	}
}

func TestAttemptSpendRejectsUnrequestedType(t *testing.T) {
	inv := stockedInventory()
	before := inv.Clone()

	res := AttemptSpend(
		[]Cost{{Type: "stone", Quantity: 10}},
		inventory.Selection{
			"stone": {{MaterialID: "granite", Quantity: 10}},
			"food":  {{MaterialID: "berries", Quantity: 2}},
		},
		inv,
	)
	if res.Code != ErrWrongQuantity {
		t.Fatalf("code=%q, want %q", res.Code, ErrWrongQuantity)
	}
	if !inv.Equal(before) {
		t.Fatalf("inventory mutated on failure")
	}
}

func TestAttemptSpendRejectsNegativePick(t *testing.T) {
	inv := stockedInventory()
	before := inv.Clone()

	res := AttemptSpend(
		[]Cost{{Type: "stone", Quantity: 10}},
		inventory.Selection{"stone": {
			{MaterialID: "granite", Quantity: 15},
			{MaterialID: "basalt", Quantity: -5},
		}},
		inv,
	)
	if res.Code != ErrWrongQuantity {
		t.Fatalf("code=%q, want %q", res.Code, ErrWrongQuantity)
	}
	if !inv.Equal(before) {
		t.Fatalf("inventory mutated on failure")
	}
}

func TestAttemptSpendInsufficientMaterial(t *testing.T) {
	inv := inventory.New()
	inv.Add("stone", "granite", 5)
	before := inv.Clone()

	res := AttemptSpend(
		[]Cost{{Type: "stone", Quantity: 10}},
		inventory.Selection{"stone": {{MaterialID: "granite", Quantity: 10}}},
		inv,
	)
	if res.Code != ErrInsufficientMaterial {
		t.Fatalf("code=%q, want %q", res.Code, ErrInsufficientMaterial)
	}
	if res.MaterialID != "granite" || res.Have != 5 || res.Needed != 10 {
		t.Fatalf("shortfall detail wrong: %+v", res)
	}
	if !inv.Equal(before) {
		t.Fatalf("inventory mutated on failure")
	}
}

func TestAttemptSpendAtomicAcrossTypes(t *testing.T) {
	// The stone leg is payable; the food leg is short. Nothing may be
	// debited.
	inv := inventory.New()
	inv.Add("stone", "granite", 20)
	inv.Add("food", "berries", 2)
	before := inv.Clone()

	res := AttemptSpend(
		[]Cost{{Type: "stone", Quantity: 10}, {Type: "food", Quantity: 5}},
		inventory.Selection{
			"stone": {{MaterialID: "granite", Quantity: 10}},
			"food":  {{MaterialID: "berries", Quantity: 5}},
		},
		inv,
	)
	if res.Code != ErrInsufficientMaterial {
		t.Fatalf("code=%q, want %q", res.Code, ErrInsufficientMaterial)
	}
	if !inv.Equal(before) {
		t.Fatalf("partial debit on failure")
	}
}

func TestAttemptSpendDuplicatePicksCombined(t *testing.T) {
	// Two granite picks of 4 against a stack of 6: individually payable,
	// combined they are not.
	inv := inventory.New()
	inv.Add("stone", "granite", 6)
	before := inv.Clone()

	res := AttemptSpend(
		[]Cost{{Type: "stone", Quantity: 8}},
		inventory.Selection{"stone": {
			{MaterialID: "granite", Quantity: 4},
			{MaterialID: "granite", Quantity: 4},
		}},
		inv,
	)
	if res.Code != ErrInsufficientMaterial {
		t.Fatalf("code=%q, want %q", res.Code, ErrInsufficientMaterial)
	}
	if res.Have != 6 || res.Needed != 8 {
		t.Fatalf("combined draw not validated as one: %+v", res)
	}
	if !inv.Equal(before) {
		t.Fatalf("inventory mutated on failure")
	}
}

func TestAttemptSpendAggregatesRepeatedCostType(t *testing.T) {
	// Two slots of the same type arrive as two cost entries; the selection
	// pays the combined amount once.
	inv := inventory.New()
	inv.Add("stone", "flint", 3)

	res := AttemptSpend(
		[]Cost{{Type: "stone", Quantity: 1}, {Type: "stone", Quantity: 2}},
		inventory.Selection{"stone": {{MaterialID: "flint", Quantity: 3}}},
		inv,
	)
	if !res.OK() {
		t.Fatalf("spend failed: %+v", res)
	}
	if got := inv.Total("stone"); got != 0 {
		t.Fatalf("stone total=%d, want 0", got)
	}
}

func TestAttemptSpendNoResidue(t *testing.T) {
	inv := inventory.New()
	inv.Add("stone", "granite", 5)
	inv.Add("stone", "basalt", 10)
	inv.Add("wood", "oak", 3)

	res := AttemptSpend(
		[]Cost{{Type: "stone", Quantity: 12}, {Type: "wood", Quantity: 3}},
		inventory.Selection{
			"stone": {
				{MaterialID: "granite", Quantity: 5},
				{MaterialID: "basalt", Quantity: 7},
			},
			"wood": {{MaterialID: "oak", Quantity: 3}},
		},
		inv,
	)
	if !res.OK() {
		t.Fatalf("spend failed: %+v", res)
	}
	for typeID, stacks := range inv {
		if len(stacks) == 0 {
			t.Fatalf("empty stack list retained for %q", typeID)
		}
		for _, s := range stacks {
			if s.Quantity <= 0 {
				t.Fatalf("residual stack %#v under %q", s, typeID)
			}
		}
	}
}

func TestMissingResources(t *testing.T) {
	inv := inventory.New()
	inv.Add("stone", "granite", 4)
	inv.Add("stone", "basalt", 3)

	got := MissingResources(
		[]Cost{{Type: "stone", Quantity: 10}, {Type: "food", Quantity: 2}},
		inv,
	)
	if len(got) != 2 {
		t.Fatalf("got %#v", got)
	}
	if got[0] != (Shortfall{Type: "stone", Have: 7, Needed: 10}) {
		t.Fatalf("stone shortfall wrong: %+v", got[0])
	}
	if got[1] != (Shortfall{Type: "food", Have: 0, Needed: 2}) {
		t.Fatalf("food shortfall wrong: %+v", got[1])
	}

	inv.Add("stone", "flint", 3)
	inv.Add("food", "berries", 2)
	if got := MissingResources([]Cost{{Type: "stone", Quantity: 10}, {Type: "food", Quantity: 2}}, inv); len(got) != 0 {
		t.Fatalf("expected no shortfalls, got %#v", got)
	}
}
