package entities

import (
	"time"
)

// RequestType classifies what kind of interaction a sales event records.
type RequestType string

const (
	RequestTypeDemo     RequestType = "demo"
	RequestTypeAIAssist RequestType = "ai_assist"
	RequestTypePromo    RequestType = "promo"
	RequestTypeJob      RequestType = "job"

	// RequestTypeUnknown marks rows whose request type was missing at load.
	// It is a real category and appears in the request-type distribution.
	RequestTypeUnknown RequestType = "Unknown"
)

// SalesEvent represents a single cleaned sales interaction row.
// JobType and AffiliateCode are empty when absent; the "None" sentinel
// exists only in the raw dataset and is mapped away by the loader.
type SalesEvent struct {
	Timestamp     time.Time   `json:"timestamp"`
	Continent     string      `json:"continent"`
	Country       string      `json:"country"`
	SalespersonID string      `json:"salesperson_id"`
	ProductType   string      `json:"product_type"`
	RequestType   RequestType `json:"request_type"`
	JobType       string      `json:"job_type,omitempty"`
	Revenue       float64     `json:"revenue"`
	PurchaseFlag  int         `json:"purchase_flag"`
	AffiliateCode string      `json:"affiliate_code,omitempty"`
}

// Date returns the calendar date of the event in UTC.
func (e *SalesEvent) Date() time.Time {
	return time.Date(e.Timestamp.Year(), e.Timestamp.Month(), e.Timestamp.Day(), 0, 0, 0, 0, time.UTC)
}

// Hour returns the hour-of-day (0-23) of the event.
func (e *SalesEvent) Hour() int {
	return e.Timestamp.Hour()
}

// IsJobPlacement reports whether the event carries a job type.
func (e *SalesEvent) IsJobPlacement() bool {
	return e.JobType != ""
}

// HasAffiliate reports whether the event carries an affiliate code.
func (e *SalesEvent) HasAffiliate() bool {
	return e.AffiliateCode != ""
}

// IsPurchase reports whether the event converted to a purchase.
func (e *SalesEvent) IsPurchase() bool {
	return e.PurchaseFlag == 1
}
