package dto

// LedgerRecord is the wire shape the ledger API accepts. Installment
// purchases are expanded before posting, so every record carries its own
// 1-based index and month-shifted date.
type LedgerRecord struct {
	Type               string  `json:"type"`
	Amount             float64 `json:"amount"`
	Category           string  `json:"category"`
	Subcategory        string  `json:"subcategory"`
	PaymentMethod      string  `json:"paymentMethod"`
	IsInstallment      bool    `json:"isInstallment"`
	CurrentInstallment int     `json:"currentInstallment"`
	TotalInstallments  int     `json:"totalInstallments"`
	Description        string  `json:"description"`
	Origin             string  `json:"origin"`
	Date               string  `json:"date"` // ISO-8601
}

// MonthSummary aggregates a month of spending.
type MonthSummary struct {
	Total      float64
	Categories map[string]float64
}
