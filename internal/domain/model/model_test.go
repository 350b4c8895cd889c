package model

import "testing"

func TestDisplayName(t *testing.T) {
	florist := &User{Name: "Bob Kamau", Role: RoleFlorist, ShopName: "Bob's Blooms"}
	if got := florist.DisplayName(); got != "Bob's Blooms" {
		t.Fatalf("expected shop name, got %q", got)
	}

	florist.ShopName = ""
	if got := florist.DisplayName(); got != "Bob Kamau" {
		t.Fatalf("expected personal name, got %q", got)
	}

	buyer := &User{Name: "Alice", Role: RoleBuyer, ShopName: "should be ignored"}
	if got := buyer.DisplayName(); got != "Alice" {
		t.Fatalf("buyers never expose a shop name, got %q", got)
	}
}

func TestLineTotal(t *testing.T) {
	item := OrderItem{Quantity: 3, UnitPrice: 800}
	if got := item.LineTotal(); got != 2400 {
		t.Fatalf("expected 2400, got %v", got)
	}
}

func TestValidTransitionStatus(t *testing.T) {
	for _, s := range []string{"pending", "paid", "processing", "delivered"} {
		if !ValidTransitionStatus(s) {
			t.Fatalf("expected %q to be a valid transition", s)
		}
	}
	for _, s := range []string{"failed", "shipped", "", "PAID"} {
		if ValidTransitionStatus(s) {
			t.Fatalf("expected %q to be rejected", s)
		}
	}
}

func TestValidRole(t *testing.T) {
	if !ValidRole("buyer") || !ValidRole("florist") {
		t.Fatal("expected known roles to validate")
	}
	if ValidRole("admin") || ValidRole("") {
		t.Fatal("expected unknown roles to be rejected")
	}
}

func TestValidStockStatus(t *testing.T) {
	if !ValidStockStatus("in_stock") || !ValidStockStatus("out_of_stock") {
		t.Fatal("expected known stock statuses to validate")
	}
	if ValidStockStatus("sold_out") {
		t.Fatal("expected unknown stock status to be rejected")
	}
}
