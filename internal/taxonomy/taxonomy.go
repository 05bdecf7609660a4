package taxonomy

import "strings"

// Categories is the vocabulary offered to the semantic classifier. Free-form
// model output outside this list is still accepted; the list just anchors the
// prompt.
var Categories = []string{
	"Food", "Transportation", "Health", "Leisure",
	"Shopping", "Bills", "Housing", "Education",
	"Pet", "Investments", "Beauty", "Clothing",
	"Salary", "Freelance", "Other",
}

const (
	CategoryOther      = "Other"
	SubcategoryGeneral = "General"
	CategoryIncome     = "Salary"
)

// Rule maps a keyword to a category/subcategory pair.
type Rule struct {
	Keyword     string
	Category    string
	Subcategory string
}

// FallbackRules is scanned in order when the semantic classifier is
// unavailable; the first keyword found in the text wins, regardless of where
// it appears in the text. Keywords cover both English and Portuguese since
// users mix the two.
var FallbackRules = []Rule{
	{"uber", "Transportation", "Uber"},
	{"taxi", "Transportation", "Taxi"},
	{"99", "Transportation", "99"},
	{"gasolina", "Transportation", "Fuel"},
	{"gas station", "Transportation", "Fuel"},
	{"almoco", "Food", "Lunch"},
	{"almoço", "Food", "Lunch"},
	{"lunch", "Food", "Lunch"},
	{"jantar", "Food", "Dinner"},
	{"dinner", "Food", "Dinner"},
	{"lanche", "Food", "Snack"},
	{"snack", "Food", "Snack"},
	{"ifood", "Food", "iFood"},
	{"supermercado", "Food", "Groceries"},
	{"supermarket", "Food", "Groceries"},
	{"farmacia", "Health", "Pharmacy"},
	{"farmácia", "Health", "Pharmacy"},
	{"pharmacy", "Health", "Pharmacy"},
	{"remedio", "Health", "Medicine"},
	{"remédio", "Health", "Medicine"},
	{"shopee", "Shopping", "Shopee"},
	{"amazon", "Shopping", "Amazon"},
	{"cinema", "Leisure", "Cinema"},
	{"netflix", "Leisure", "Netflix"},
	{"luz", "Bills", "Electricity"},
	{"electricity", "Bills", "Electricity"},
	{"agua", "Bills", "Water"},
	{"internet", "Bills", "Internet"},
	{"salario", "Salary", "Salary"},
	{"salário", "Salary", "Salary"},
	{"salary", "Salary", "Salary"},
}

// Fallback runs the deterministic keyword scan. No match yields the
// Other/General catch-all.
func Fallback(text string) (string, string) {
	lower := strings.ToLower(text)
	for _, r := range FallbackRules {
		if strings.Contains(lower, r.Keyword) {
			return r.Category, r.Subcategory
		}
	}
	return CategoryOther, SubcategoryGeneral
}

// overrideRule corrects the classifier for known merchants. Rules within a
// group are alternatives (first hit wins inside the group); groups are
// applied top to bottom and a later group may overwrite an earlier one.
type overrideRule struct {
	keywords    []string
	category    string
	subcategory string
}

var overrideGroups = [][]overrideRule{
	{
		{[]string{"farmácia", "farmacia", "pharmacy", "remédio", "remedio"}, "Health", "Pharmacy"},
		{[]string{"uber", "99"}, "Transportation", "Ride App"},
	},
	{
		{[]string{"shopee", "shoope"}, "Shopping", "Shopee"},
		{[]string{"mercado livre", "mercadolivre"}, "Shopping", "Mercado Livre"},
		{[]string{"aliexpress", "aliespress"}, "Shopping", "AliExpress"},
		{[]string{"amazon"}, "Shopping", "Amazon"},
	},
}

// Override applies the merchant corrections to a classified pair and reports
// whether anything changed. These checks win over the classifier's output.
func Override(description, category, subcategory string) (string, string, bool) {
	lower := strings.ToLower(description)
	changed := false
	for _, group := range overrideGroups {
		for _, rule := range group {
			if containsAny(lower, rule.keywords) {
				category = rule.category
				subcategory = rule.subcategory
				changed = true
				break
			}
		}
	}
	return category, subcategory, changed
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
