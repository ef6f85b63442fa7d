package entities

// Medicine is a commercially sold brand record from the medicines catalog.
// The engine never mutates these; they are replaced wholesale on reload.
type Medicine struct {
	ID              int     `json:"id"`
	BrandName       string  `json:"brandName"`
	SaltComposition string  `json:"saltComposition"`
	Manufacturer    string  `json:"manufacturer"`
	Price           float64 `json:"price"`
}
