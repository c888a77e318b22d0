package entity

import (
	"github.com/google/uuid"
)

// Bid is the materialized view of a bid row joined with its active version.
// Decision is empty until set out of band.
type Bid struct {
	Id              uuid.UUID `db:"id"`
	Name            string    `db:"name"`
	Description     string    `db:"description"`
	Status          string    `db:"status"`
	Decision        string    `db:"decision"`
	TenderId        uuid.UUID `db:"tender_id"`
	OrganizationId  uuid.UUID `db:"organization_id"`
	CreatorUsername string    `db:"creator_username"`
	Version         int       `db:"active_version"`
	CreatedAt       string    `db:"created_at"`
}

type CreateBidInput struct {
	Name            string
	Description     string
	TenderId        string
	OrganizationId  string
	CreatorUsername string
}

// controller model
type BidOutputModel struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Decision    string `json:"decision,omitempty"`
	TenderId    string `json:"tenderId"`
	Version     int    `json:"version"`
	CreatedAt   string `json:"createdAt"`
}
