package finance

import (
	"math"
	"testing"
)

func TestCategorizeSkipsInflows(t *testing.T) {
	txns := []Transaction{
		{Amount: 12.50, Category: "Food and Drink"},
		{Amount: 30.00, Category: "Food and Drink"},
		{Amount: -500.00, Category: "Transfer"}, // deposit, ignored
		{Amount: 9.99},
	}

	categories, total := Categorize(txns)
	if math.Abs(total-52.49) > 1e-9 {
		t.Fatalf("total = %v, want 52.49", total)
	}
	food := categories["Food and Drink"]
	if math.Abs(food.Total-42.50) > 1e-9 || food.Count != 2 {
		t.Fatalf("food = %+v", food)
	}
	if categories["Uncategorized"].Count != 1 {
		t.Fatalf("uncategorized transaction not grouped")
	}
	if _, ok := categories["Transfer"]; ok {
		t.Fatalf("inflow was categorized as spending")
	}
}

func TestIsUnnecessary(t *testing.T) {
	txn := Transaction{Category: "Food and Drink"}
	if !IsUnnecessary(txn, "food, entertainment") {
		t.Fatalf("substring category match failed")
	}
	if IsUnnecessary(txn, "travel,shopping") {
		t.Fatalf("unrelated categories matched")
	}
	if IsUnnecessary(txn, "") {
		t.Fatalf("empty config matched")
	}
}
