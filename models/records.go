// File: models/records.go
package models

import "time"

// BookingRecord is the durable copy of a booking whose submission the sink accepted.
type BookingRecord struct {
	ID              string         `bson:"id" json:"id"` // wizard session ID
	ClientID        string         `bson:"clientId" json:"clientId"`
	Details         BookingDetails `bson:"details" json:"details"`
	TransactionCode string         `bson:"transactionCode" json:"transactionCode"`
	PaymentPhone    string         `bson:"paymentPhone" json:"paymentPhone"`
	PaymentMethod   string         `bson:"paymentMethod" json:"paymentMethod"`
	PaymentStatus   string         `bson:"paymentStatus" json:"paymentStatus"`
	AmountPaid      int            `bson:"amountPaid" json:"amountPaid"`
	SubmittedAt     time.Time      `bson:"submittedAt" json:"submittedAt"`
}
