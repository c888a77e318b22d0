package service

import (
	"context"
	"errors"
	"tender-service/internal/common"
	"tender-service/internal/entity"
	"tender-service/internal/repo"
	"tender-service/internal/repo/repoerrs"

	"github.com/sirupsen/logrus"
)

type BidService struct {
	bidRepo      repo.Bid
	tenderRepo   repo.Tender
	employeeRepo repo.Employee
	log          *logrus.Logger
}

func NewBidService(repos *repo.Repositories, log *logrus.Logger) *BidService {
	return &BidService{
		bidRepo:      repos.Bid,
		tenderRepo:   repos.Tender,
		employeeRepo: repos.Employee,
		log:          log,
	}
}

func (s *BidService) CreateBid(ctx context.Context, input *entity.CreateBidInput) (*entity.BidOutputModel, error) {
	exists, err := s.employeeRepo.DoesEmployeeExistByUsername(ctx, input.CreatorUsername)
	if err != nil {
		return nil, s.failure("create bid", err)
	}
	if !exists {
		return nil, ErrEmployeeNotFound
	}

	if _, err := s.tenderRepo.GetTenderById(ctx, input.TenderId); err != nil {
		if errors.Is(err, repoerrs.ErrNotFound) {
			return nil, ErrTenderNotFound
		}

		return nil, s.failure("create bid", err)
	}

	id, err := s.bidRepo.CreateBid(ctx, input)
	if err != nil {
		return nil, s.failure("create bid", err)
	}

	bid, err := s.bidRepo.GetBidById(ctx, id.String())
	if err != nil {
		return nil, s.failure("create bid", err)
	}

	return mapBid(bid), nil
}

func (s *BidService) GetUserBids(ctx context.Context, username string, pg *entity.PaginationInput) ([]entity.BidOutputModel, error) {
	exists, err := s.employeeRepo.DoesEmployeeExistByUsername(ctx, username)
	if err != nil {
		return nil, s.failure("list user bids", err)
	}
	if !exists {
		return nil, ErrEmployeeNotFound
	}

	bids, err := s.bidRepo.GetBidsByCreator(ctx, username, clamp(pg))
	if err != nil {
		return nil, s.failure("list user bids", err)
	}

	return mapBids(bids), nil
}

// GetBidsForTenderById lists bids submitted for a tender. Only the tender's
// creator may review them, so the ownership predicate runs against the tender.
func (s *BidService) GetBidsForTenderById(ctx context.Context, tenderId string, username string, pg *entity.PaginationInput) ([]entity.BidOutputModel, error) {
	tender, err := s.tenderRepo.GetTenderById(ctx, tenderId)
	if err != nil {
		if errors.Is(err, repoerrs.ErrNotFound) {
			return nil, ErrTenderNotFound
		}

		return nil, s.failure("list tender bids", err)
	}

	if tender.CreatorUsername != username {
		return nil, ErrForbidden
	}

	bids, err := s.bidRepo.GetTenderBids(ctx, tenderId, clamp(pg))
	if err != nil {
		return nil, s.failure("list tender bids", err)
	}

	return mapBids(bids), nil
}

// EditBidById appends a new version for the bid. Fields left empty keep the
// value of the current active version.
func (s *BidService) EditBidById(ctx context.Context, bidId string, username, name, description string) (*entity.BidOutputModel, error) {
	if name == "" && description == "" {
		return nil, ErrNoNewChanges
	}

	if _, err := s.authorizeBid(ctx, bidId, username); err != nil {
		return nil, err
	}

	if err := s.bidRepo.EditBidById(ctx, bidId, name, description); err != nil {
		if errors.Is(err, repoerrs.ErrNotFound) {
			return nil, ErrBidNotFound
		}

		return nil, s.failure("edit bid", err)
	}

	bid, err := s.bidRepo.GetBidById(ctx, bidId)
	if err != nil {
		return nil, s.failure("edit bid", err)
	}

	return mapBid(bid), nil
}

// RollbackBidVersion repoints the bid at an existing version without creating
// new history.
func (s *BidService) RollbackBidVersion(ctx context.Context, bidId string, version int, username string) (*entity.BidOutputModel, error) {
	if _, err := s.authorizeBid(ctx, bidId, username); err != nil {
		return nil, err
	}

	if err := s.bidRepo.RollbackBidVersion(ctx, bidId, version); err != nil {
		if errors.Is(err, repoerrs.ErrNotFound) {
			return nil, ErrNoSuchVersion
		}

		return nil, s.failure("rollback bid", err)
	}

	bid, err := s.bidRepo.GetBidById(ctx, bidId)
	if err != nil {
		return nil, s.failure("rollback bid", err)
	}

	return mapBid(bid), nil
}

func (s *BidService) GetBidStatusById(ctx context.Context, bidId string, username string) (string, error) {
	bid, err := s.authorizeBid(ctx, bidId, username)
	if err != nil {
		return "", err
	}

	return bid.Status, nil
}

func (s *BidService) UpdateBidStatusById(ctx context.Context, bidId string, newStatus, username string) (*entity.BidOutputModel, error) {
	if !common.ValidBidStatus(newStatus) {
		return nil, ErrInvalidStatus
	}

	if _, err := s.authorizeBid(ctx, bidId, username); err != nil {
		return nil, err
	}

	if err := s.bidRepo.UpdateBidStatusById(ctx, bidId, newStatus); err != nil {
		if errors.Is(err, repoerrs.ErrNotFound) {
			return nil, ErrBidNotFound
		}

		return nil, s.failure("update bid status", err)
	}

	bid, err := s.bidRepo.GetBidById(ctx, bidId)
	if err != nil {
		return nil, s.failure("update bid status", err)
	}

	return mapBid(bid), nil
}

func (s *BidService) authorizeBid(ctx context.Context, bidId string, username string) (*entity.Bid, error) {
	bid, err := s.bidRepo.GetBidById(ctx, bidId)
	if err != nil {
		if errors.Is(err, repoerrs.ErrNotFound) {
			return nil, ErrBidNotFound
		}

		return nil, s.failure("get bid", err)
	}

	if bid.CreatorUsername != username {
		return nil, ErrForbidden
	}

	return bid, nil
}

func (s *BidService) failure(op string, err error) error {
	s.log.WithError(err).WithField("op", op).Error("bid persistence failure")

	return err
}
