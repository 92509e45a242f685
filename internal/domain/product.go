package domain

// Fields are the validated, user-editable attributes of a product.
type Fields struct {
	Name         string  `json:"name"`
	FilamentType string  `json:"filamentType"`
	Colors       string  `json:"colors"`
	Weight       float64 `json:"weight"` // grams
	Dimensions   string  `json:"dimensions"`
	Price        float64 `json:"price"` // main currency units
	Quantity     int     `json:"quantity"`
	Description  string  `json:"description"`
}

// Product is a catalog item with its stock level
type Product struct {
	ID int64 `json:"id"`
	Fields
	ImageDataURL string `json:"imageDataUrl,omitempty"` // data URL of the thumbnail
}

// Available reports whether the product can be purchased.
func (p Product) Available() bool {
	return p.Quantity > 0
}

// Patch is a partial update. Nil fields keep their current value.
type Patch struct {
	Name         *string
	FilamentType *string
	Colors       *string
	Weight       *float64
	Dimensions   *string
	Price        *float64
	Quantity     *int
	Description  *string
	ImageDataURL *string
}

// PatchFromFields sets every editable field of the patch.
func PatchFromFields(f Fields) Patch {
	return Patch{
		Name:         &f.Name,
		FilamentType: &f.FilamentType,
		Colors:       &f.Colors,
		Weight:       &f.Weight,
		Dimensions:   &f.Dimensions,
		Price:        &f.Price,
		Quantity:     &f.Quantity,
		Description:  &f.Description,
	}
}

// Apply merges the set fields of the patch onto p.
func (pt Patch) Apply(p *Product) {
	if pt.Name != nil {
		p.Name = *pt.Name
	}
	if pt.FilamentType != nil {
		p.FilamentType = *pt.FilamentType
	}
	if pt.Colors != nil {
		p.Colors = *pt.Colors
	}
	if pt.Weight != nil {
		p.Weight = *pt.Weight
	}
	if pt.Dimensions != nil {
		p.Dimensions = *pt.Dimensions
	}
	if pt.Price != nil {
		p.Price = *pt.Price
	}
	if pt.Quantity != nil {
		p.Quantity = *pt.Quantity
	}
	if pt.Description != nil {
		p.Description = *pt.Description
	}
	if pt.ImageDataURL != nil {
		p.ImageDataURL = *pt.ImageDataURL
	}
}
