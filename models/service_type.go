// models/service_type.go
package models

// CatalogEntry is one card of the public service catalog.
type CatalogEntry struct {
	ID          string          `json:"id"`
	Name        ServiceCategory `json:"name"`
	Icon        string          `json:"icon"`
	Description string          `json:"description"`
	BasePrice   int             `json:"basePrice"` // KSh
}
