package entities

// Generic is a government-subsidized generic catalog record. The generic
// name embeds both the salts and, usually, the dosage strengths.
type Generic struct {
	ID          int     `json:"id"`
	GenericName string  `json:"genericName"`
	Price       float64 `json:"price"`
	UnitLabel   string  `json:"unitLabel,omitempty"`
}
