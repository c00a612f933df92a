package models

// Medicine is one row of the medicine dataset, shaped for API responses.
type Medicine struct {
	ID                   int     `json:"id"`
	Name                 string  `json:"name"`
	GenericName          string  `json:"generic_name"`
	Disease              string  `json:"disease"`
	Composition          string  `json:"composition"`
	Uses                 string  `json:"uses"`
	Description          string  `json:"description,omitempty"`
	SideEffects          string  `json:"sideEffects"`
	Manufacturer         string  `json:"manufacturer"`
	PrescriptionRequired bool    `json:"prescription_required"`
	Available            bool    `json:"available"`
	Price                float64 `json:"price"`
	ImageURL             string  `json:"image_url"`
	DrugVariant          string  `json:"drug_variant,omitempty"`
}
