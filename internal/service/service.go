package service

import (
	"context"
	"tender-service/internal/entity"
	"tender-service/internal/repo"

	"github.com/sirupsen/logrus"
)

type Diagnostics interface {
	Ping() error
}

type Tender interface {
	CreateTender(ctx context.Context, input *entity.CreateTenderInput) (*entity.TenderOutputModel, error)
	GetTenders(ctx context.Context, serviceTypes []string, pg *entity.PaginationInput) ([]entity.TenderOutputModel, error)
	GetUserTenders(ctx context.Context, username string, pg *entity.PaginationInput) ([]entity.TenderOutputModel, error)

	EditTenderById(ctx context.Context, tenderId string, username, name, description, serviceType string) (*entity.TenderOutputModel, error)
	RollbackTenderVersion(ctx context.Context, tenderId string, version int, username string) (*entity.TenderOutputModel, error)

	GetTenderStatusById(ctx context.Context, tenderId string, username string) (string, error)
	UpdateTenderStatusById(ctx context.Context, tenderId string, newStatus, username string) (*entity.TenderOutputModel, error)
}

type Bid interface {
	CreateBid(ctx context.Context, input *entity.CreateBidInput) (*entity.BidOutputModel, error)
	GetUserBids(ctx context.Context, username string, pg *entity.PaginationInput) ([]entity.BidOutputModel, error)
	GetBidsForTenderById(ctx context.Context, tenderId string, username string, pg *entity.PaginationInput) ([]entity.BidOutputModel, error)

	EditBidById(ctx context.Context, bidId string, username, name, description string) (*entity.BidOutputModel, error)
	RollbackBidVersion(ctx context.Context, bidId string, version int, username string) (*entity.BidOutputModel, error)

	GetBidStatusById(ctx context.Context, bidId string, username string) (string, error)
	UpdateBidStatusById(ctx context.Context, bidId string, newStatus, username string) (*entity.BidOutputModel, error)
}

type Services struct {
	Diagnostics Diagnostics
	Tender      Tender
	Bid         Bid
}

func NewServices(repos *repo.Repositories, log *logrus.Logger) *Services {
	return &Services{
		Diagnostics: NewDiagnosticsService(repos),
		Tender:      NewTenderService(repos, log),
		Bid:         NewBidService(repos, log),
	}
}
