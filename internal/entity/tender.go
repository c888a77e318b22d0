package entity

import (
	"github.com/google/uuid"
)

// Tender is the materialized view of a tender row joined with its active
// version: metadata from the entity row, content from the version row.
type Tender struct {
	Id              uuid.UUID `db:"id"`
	Name            string    `db:"name"`
	Description     string    `db:"description"`
	ServiceType     string    `db:"service_type"`
	Status          string    `db:"status"`
	OrganizationId  uuid.UUID `db:"organization_id"`
	CreatorUsername string    `db:"creator_username"`
	Version         int       `db:"active_version"`
	CreatedAt       string    `db:"created_at"`
}

type CreateTenderInput struct {
	Name            string
	Description     string
	ServiceType     string
	OrganizationId  string
	CreatorUsername string
}

// controller model
type TenderOutputModel struct {
	Id             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	ServiceType    string `json:"serviceType"`
	Status         string `json:"status"`
	OrganizationId string `json:"organizationId"`
	Version        int    `json:"version"`
	CreatedAt      string `json:"createdAt"`
}
