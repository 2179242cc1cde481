package models

import "strings"

// ServiceCategory is one of the fixed job categories the agency dispatches.
type ServiceCategory string

const (
	CategoryPlumbing     ServiceCategory = "Plumbing"
	CategoryElectrical   ServiceCategory = "Electrical"
	CategoryAppliances   ServiceCategory = "Appliances"
	CategoryHandyman     ServiceCategory = "Handyman"
	CategoryCCTVSecurity ServiceCategory = "CCTV & Security"
	CategoryGeneral      ServiceCategory = "General"
	generalInquiryAlias                  = "General Inquiry"
)

// ServiceCategories lists every category in display order.
var ServiceCategories = []ServiceCategory{
	CategoryPlumbing,
	CategoryElectrical,
	CategoryAppliances,
	CategoryHandyman,
	CategoryCCTVSecurity,
	CategoryGeneral,
}

// ParseServiceCategory matches s case-insensitively against the known categories.
// "General Inquiry" is accepted as an alias of General.
func ParseServiceCategory(s string) (ServiceCategory, bool) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, generalInquiryAlias) {
		return CategoryGeneral, true
	}
	for _, c := range ServiceCategories {
		if strings.EqualFold(s, string(c)) {
			return c, true
		}
	}
	return "", false
}

// TimeSlots are the bookable visit slots, in order.
var TimeSlots = []string{
	"08:00 AM", "09:00 AM", "10:00 AM", "11:00 AM",
	"12:00 PM", "01:00 PM", "02:00 PM", "03:00 PM",
	"04:00 PM", "05:00 PM",
}

// IsTimeSlot reports whether s is one of TimeSlots.
func IsTimeSlot(s string) bool {
	for _, slot := range TimeSlots {
		if slot == s {
			return true
		}
	}
	return false
}

const (
	// DateLayout is the wire format of BookingDetails.Date.
	DateLayout = "2006-01-02"
	// SlotLayout is the wire format of BookingDetails.Time.
	SlotLayout = "03:04 PM"
)

// BookingDetails is what the customer fills in across the wizard steps.
type BookingDetails struct {
	Service       ServiceCategory `json:"service" bson:"service"`
	Description   string          `json:"description" bson:"description"`
	Date          string          `json:"date" bson:"date"` // YYYY-MM-DD
	Time          string          `json:"time" bson:"time"` // one of TimeSlots
	Address       string          `json:"address" bson:"address"`
	ContactName   string          `json:"contactName" bson:"contactName"`
	ContactPhone  string          `json:"contactPhone" bson:"contactPhone"`
	ContactEmail  string          `json:"contactEmail" bson:"contactEmail"`
	EstimatedCost float64         `json:"estimatedCost" bson:"estimatedCost"`
}

// Editable field names of BookingDetails, as used by field-edit requests.
const (
	FieldService       = "service"
	FieldDescription   = "description"
	FieldDate          = "date"
	FieldTime          = "time"
	FieldAddress       = "address"
	FieldContactName   = "contactName"
	FieldContactPhone  = "contactPhone"
	FieldContactEmail  = "contactEmail"
	FieldEstimatedCost = "estimatedCost"
)
