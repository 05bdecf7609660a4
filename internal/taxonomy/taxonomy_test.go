package taxonomy

import "testing"

func TestFallback(t *testing.T) {
	tests := []struct {
		text        string
		category    string
		subcategory string
	}{
		{"Gastei 50 de Uber", "Transportation", "Uber"},
		{"almoço com a equipe", "Food", "Lunch"},
		{"pedido no ifood", "Food", "iFood"},
		{"conta de luz", "Bills", "Electricity"},
		{"nada reconhecível aqui", "Other", "General"},
	}

	for _, tt := range tests {
		category, subcategory := Fallback(tt.text)
		if category != tt.category || subcategory != tt.subcategory {
			t.Fatalf("Fallback(%q) = (%q, %q), want (%q, %q)",
				tt.text, category, subcategory, tt.category, tt.subcategory)
		}
	}
}

// The scan is ordered by the rule table, not by keyword position in the
// text: "uber" precedes "netflix" in the table, so it wins even when
// "netflix" appears first.
func TestFallbackRuleOrderWins(t *testing.T) {
	category, subcategory := Fallback("netflix e uber no mesmo dia")
	if category != "Transportation" || subcategory != "Uber" {
		t.Fatalf("expected table order to win, got (%q, %q)", category, subcategory)
	}
}

func TestOverride(t *testing.T) {
	tests := []struct {
		name        string
		description string
		category    string
		subcategory string
		changed     bool
	}{
		{"pharmacy", "30 na farmácia", "Health", "Pharmacy", true},
		{"ride app", "gastei 50 de uber", "Transportation", "Ride App", true},
		{"shopee typo", "comprei na shoope", "Shopping", "Shopee", true},
		{"mercado livre", "fone no mercado livre", "Shopping", "Mercado Livre", true},
		{"amazon", "livro na amazon", "Shopping", "Amazon", true},
		{"no match", "almoço de domingo", "Food", "Lunch", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			category, subcategory, changed := Override(tt.description, "Food", "Lunch")
			if changed != tt.changed {
				t.Fatalf("changed = %v, want %v", changed, tt.changed)
			}
			if category != tt.category || subcategory != tt.subcategory {
				t.Fatalf("Override = (%q, %q), want (%q, %q)",
					category, subcategory, tt.category, tt.subcategory)
			}
		})
	}
}

// The shopping group runs after the health/ride group and overwrites it.
func TestOverrideLaterGroupWins(t *testing.T) {
	category, subcategory, changed := Override("uber pra buscar pacote da amazon", "Other", "General")
	if !changed {
		t.Fatal("expected an override")
	}
	if category != "Shopping" || subcategory != "Amazon" {
		t.Fatalf("expected shopping group to win, got (%q, %q)", category, subcategory)
	}
}
