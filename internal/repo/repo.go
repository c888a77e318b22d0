package repo

import (
	"context"
	"tender-service/internal/entity"
	"tender-service/internal/repo/pgdb"
	"tender-service/pkg/postgres"

	"github.com/google/uuid"
)

type Diagnostics interface {
	Ping() error
}

type Employee interface {
	DoesEmployeeExistByUsername(ctx context.Context, username string) (bool, error)
	DoesOrganizationExistById(ctx context.Context, id string) (bool, error)
}

type Tender interface {
	CreateTender(ctx context.Context, input *entity.CreateTenderInput) (uuid.UUID, error)
	GetTenderById(ctx context.Context, id string) (*entity.Tender, error)
	GetTenders(ctx context.Context, serviceTypes []string, pg *entity.PaginationInput) ([]entity.Tender, error)
	GetTendersByCreator(ctx context.Context, username string, pg *entity.PaginationInput) ([]entity.Tender, error)
	EditTenderById(ctx context.Context, id string, name string, description string, serviceType string) error
	RollbackTenderVersion(ctx context.Context, id string, version int) error
	UpdateTenderStatusById(ctx context.Context, id string, newStatus string) error
}

type Bid interface {
	CreateBid(ctx context.Context, input *entity.CreateBidInput) (uuid.UUID, error)
	GetBidById(ctx context.Context, id string) (*entity.Bid, error)
	GetBidsByCreator(ctx context.Context, username string, pg *entity.PaginationInput) ([]entity.Bid, error)
	GetTenderBids(ctx context.Context, tenderId string, pg *entity.PaginationInput) ([]entity.Bid, error)
	EditBidById(ctx context.Context, id string, name string, description string) error
	RollbackBidVersion(ctx context.Context, id string, version int) error
	UpdateBidStatusById(ctx context.Context, id string, newStatus string) error
}

type Repositories struct {
	Diagnostics
	Employee
	Tender
	Bid
}

func NewRepositories(p *postgres.Postgres) *Repositories {
	return &Repositories{
		Diagnostics: pgdb.NewDiagnosticsRepo(p),
		Employee:    pgdb.NewEmployeeRepo(p),
		Tender:      pgdb.NewTenderRepo(p),
		Bid:         pgdb.NewBidRepo(p),
	}
}
