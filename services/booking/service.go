package booking

import (
	"fmt"

	"fayano/models"
)

// catalog prices are KSh call-out rates; the job itself is quoted on site.
var catalog = []models.CatalogEntry{
	{ID: "1", Name: models.CategoryPlumbing, Icon: "wrench", Description: "Expert leak repairs, pipe installations, and complete drain cleaning services.", BasePrice: 500},
	{ID: "2", Name: models.CategoryElectrical, Icon: "zap", Description: "Safe wiring, socket repairs, lighting installation, and fault diagnosis.", BasePrice: 500},
	{ID: "3", Name: models.CategoryAppliances, Icon: "tv", Description: "Professional repair for fridges, washing machines, microwaves, and cookers.", BasePrice: 1500},
	{ID: "4", Name: models.CategoryHandyman, Icon: "hammer", Description: "Furniture assembly, wall mounting, painting touch-ups, and general fixes.", BasePrice: 1000},
	{ID: "5", Name: models.CategoryCCTVSecurity, Icon: "cctv", Description: "CCTV camera installation, electric fences, and security system maintenance.", BasePrice: 2500},
	{ID: "6", Name: models.CategoryGeneral, Icon: "info", Description: "Not sure what you need? Book a general consultation visit.", BasePrice: 500},
}

// GetAvailableServices returns the service catalog in display order.
func GetAvailableServices() []models.CatalogEntry {
	out := make([]models.CatalogEntry, len(catalog))
	copy(out, catalog)
	return out
}

// GetServiceByName looks up a catalog entry by category name or id.
func GetServiceByName(name string) (*models.CatalogEntry, error) {
	if c, ok := models.ParseServiceCategory(name); ok {
		name = string(c)
	}
	for _, entry := range catalog {
		if string(entry.Name) == name || entry.ID == name {
			e := entry
			return &e, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrServiceNotFound, name)
}
