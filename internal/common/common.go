package common

// Status and enum values shared between the repo, service and controller layers.
// They mirror the postgres enum types created by the migrations.
const (
	Created   = "Created"
	Published = "Published"
	Closed    = "Closed"
	Canceled  = "Canceled"

	Construction = "Construction"
	Delivery     = "Delivery"
	Manufacture  = "Manufacture"

	ApprovedDecision = "Approved"
	RejectedDecision = "Rejected"
)

func ValidTenderStatus(s string) bool {
	switch s {
	case Created, Published, Closed:
		return true
	default:
		return false
	}
}

func ValidBidStatus(s string) bool {
	switch s {
	case Created, Published, Canceled:
		return true
	default:
		return false
	}
}

func ValidServiceType(s string) bool {
	switch s {
	case Construction, Delivery, Manufacture:
		return true
	default:
		return false
	}
}
