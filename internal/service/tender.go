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

type TenderService struct {
	tenderRepo   repo.Tender
	employeeRepo repo.Employee
	log          *logrus.Logger
}

func NewTenderService(repos *repo.Repositories, log *logrus.Logger) *TenderService {
	return &TenderService{
		tenderRepo:   repos.Tender,
		employeeRepo: repos.Employee,
		log:          log,
	}
}

func (s *TenderService) CreateTender(ctx context.Context, input *entity.CreateTenderInput) (*entity.TenderOutputModel, error) {
	exists, err := s.employeeRepo.DoesEmployeeExistByUsername(ctx, input.CreatorUsername)
	if err != nil {
		return nil, s.failure("create tender", err)
	}
	if !exists {
		return nil, ErrEmployeeNotFound
	}

	orgExists, err := s.employeeRepo.DoesOrganizationExistById(ctx, input.OrganizationId)
	if err != nil {
		return nil, s.failure("create tender", err)
	}
	if !orgExists {
		return nil, ErrOrganizationNotFound
	}

	id, err := s.tenderRepo.CreateTender(ctx, input)
	if err != nil {
		return nil, s.failure("create tender", err)
	}

	tender, err := s.tenderRepo.GetTenderById(ctx, id.String())
	if err != nil {
		return nil, s.failure("create tender", err)
	}

	return mapTender(tender), nil
}

func (s *TenderService) GetTenders(ctx context.Context, serviceTypes []string, pg *entity.PaginationInput) ([]entity.TenderOutputModel, error) {
	tenders, err := s.tenderRepo.GetTenders(ctx, serviceTypes, clamp(pg))
	if err != nil {
		return nil, s.failure("list tenders", err)
	}

	return mapTenders(tenders), nil
}

func (s *TenderService) GetUserTenders(ctx context.Context, username string, pg *entity.PaginationInput) ([]entity.TenderOutputModel, error) {
	exists, err := s.employeeRepo.DoesEmployeeExistByUsername(ctx, username)
	if err != nil {
		return nil, s.failure("list user tenders", err)
	}
	if !exists {
		return nil, ErrEmployeeNotFound
	}

	tenders, err := s.tenderRepo.GetTendersByCreator(ctx, username, clamp(pg))
	if err != nil {
		return nil, s.failure("list user tenders", err)
	}

	return mapTenders(tenders), nil
}

// EditTenderById appends a new version for the tender. Fields left empty keep
// the value of the current active version.
func (s *TenderService) EditTenderById(ctx context.Context, tenderId string, username, name, description, serviceType string) (*entity.TenderOutputModel, error) {
	if name == "" && description == "" && serviceType == "" {
		return nil, ErrNoNewChanges
	}

	if _, err := s.authorizeTender(ctx, tenderId, username); err != nil {
		return nil, err
	}

	if err := s.tenderRepo.EditTenderById(ctx, tenderId, name, description, serviceType); err != nil {
		if errors.Is(err, repoerrs.ErrNotFound) {
			return nil, ErrTenderNotFound
		}

		return nil, s.failure("edit tender", err)
	}

	tender, err := s.tenderRepo.GetTenderById(ctx, tenderId)
	if err != nil {
		return nil, s.failure("edit tender", err)
	}

	return mapTender(tender), nil
}

// RollbackTenderVersion repoints the tender at an existing version without
// creating new history.
func (s *TenderService) RollbackTenderVersion(ctx context.Context, tenderId string, version int, username string) (*entity.TenderOutputModel, error) {
	if _, err := s.authorizeTender(ctx, tenderId, username); err != nil {
		return nil, err
	}

	if err := s.tenderRepo.RollbackTenderVersion(ctx, tenderId, version); err != nil {
		if errors.Is(err, repoerrs.ErrNotFound) {
			return nil, ErrNoSuchVersion
		}

		return nil, s.failure("rollback tender", err)
	}

	tender, err := s.tenderRepo.GetTenderById(ctx, tenderId)
	if err != nil {
		return nil, s.failure("rollback tender", err)
	}

	return mapTender(tender), nil
}

func (s *TenderService) GetTenderStatusById(ctx context.Context, tenderId string, username string) (string, error) {
	tender, err := s.authorizeTender(ctx, tenderId, username)
	if err != nil {
		return "", err
	}

	return tender.Status, nil
}

func (s *TenderService) UpdateTenderStatusById(ctx context.Context, tenderId string, newStatus, username string) (*entity.TenderOutputModel, error) {
	if !common.ValidTenderStatus(newStatus) {
		return nil, ErrInvalidStatus
	}

	if _, err := s.authorizeTender(ctx, tenderId, username); err != nil {
		return nil, err
	}

	if err := s.tenderRepo.UpdateTenderStatusById(ctx, tenderId, newStatus); err != nil {
		if errors.Is(err, repoerrs.ErrNotFound) {
			return nil, ErrTenderNotFound
		}

		return nil, s.failure("update tender status", err)
	}

	tender, err := s.tenderRepo.GetTenderById(ctx, tenderId)
	if err != nil {
		return nil, s.failure("update tender status", err)
	}

	return mapTender(tender), nil
}

// authorizeTender loads the tender and applies the ownership predicate:
// the requester's username must equal creator_username.
func (s *TenderService) authorizeTender(ctx context.Context, tenderId string, username string) (*entity.Tender, error) {
	tender, err := s.tenderRepo.GetTenderById(ctx, tenderId)
	if err != nil {
		if errors.Is(err, repoerrs.ErrNotFound) {
			return nil, ErrTenderNotFound
		}

		return nil, s.failure("get tender", err)
	}

	if tender.CreatorUsername != username {
		return nil, ErrForbidden
	}

	return tender, nil
}

// failure logs an unexpected persistence error and passes it through.
// NotFound and Forbidden never go through here: they are ordinary results.
func (s *TenderService) failure(op string, err error) error {
	s.log.WithError(err).WithField("op", op).Error("tender persistence failure")

	return err
}
