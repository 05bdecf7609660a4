package dto

// Classification is the two-field verdict the classifier must produce.
type Classification struct {
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
}
