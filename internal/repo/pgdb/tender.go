package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"tender-service/internal/common"
	"tender-service/internal/entity"
	"tender-service/internal/repo/repoerrs"
	"tender-service/pkg/postgres"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

const tenderColumns = "tender.id, tender_version.name, tender_version.description, " +
	"tender_version.service_type, tender.status, tender.organization_id, " +
	"tender.creator_username, tender.active_version, tender.created_at"

type TenderRepo struct {
	*postgres.Postgres
	versions versionStore
}

func NewTenderRepo(pgdb *postgres.Postgres) *TenderRepo {
	return &TenderRepo{
		Postgres: pgdb,
		versions: newVersionStore("tender_version", "tender_id", true, pgdb.SqlBuilder),
	}
}

// CreateTender inserts the tender row and its version 1 in one transaction.
func (r *TenderRepo) CreateTender(ctx context.Context, input *entity.CreateTenderInput) (uuid.UUID, error) {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, err
	}

	createTenderSql, args, _ := r.SqlBuilder.
		Insert("tender").
		Columns("status", "organization_id", "creator_username", "active_version").
		Values(common.Created, input.OrganizationId, input.CreatorUsername, 1).
		Suffix("RETURNING id").
		ToSql()

	var tenderId uuid.UUID
	if err := tx.QueryRow(createTenderSql, args...).Scan(&tenderId); err != nil {
		return uuid.Nil, finishRollback(tx, wrapConstraint(err))
	}

	content := versionContent{
		Name:        input.Name,
		Description: input.Description,
		ServiceType: sql.NullString{String: input.ServiceType, Valid: true},
	}
	if _, err := r.versions.append(tx, tenderId, content); err != nil {
		return uuid.Nil, finishRollback(tx, wrapConstraint(err))
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, err
	}

	return tenderId, nil
}

func (r *TenderRepo) GetTenderById(ctx context.Context, id string) (*entity.Tender, error) {
	tenderId, err := uuid.Parse(id)
	if err != nil {
		return nil, repoerrs.ErrNotFound
	}

	getTenderSql, args, _ := r.SqlBuilder.
		Select(tenderColumns).
		From("tender").
		InnerJoin("tender_version on tender.id = tender_version.tender_id and tender.active_version = tender_version.version").
		Where("tender.id = ?", tenderId).
		ToSql()

	tender, err := scanTender(r.Database.QueryRow(getTenderSql, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repoerrs.ErrNotFound
		}

		return nil, err
	}

	return tender, nil
}

func (r *TenderRepo) GetTenders(ctx context.Context, serviceTypes []string, pg *entity.PaginationInput) ([]entity.Tender, error) {
	builder := r.SqlBuilder.
		Select(tenderColumns).
		From("tender").
		InnerJoin("tender_version on tender.id = tender_version.tender_id and tender.active_version = tender_version.version")

	if len(serviceTypes) > 0 {
		builder = builder.Where(squirrel.Eq{"tender_version.service_type": serviceTypes})
	}

	listSql, args, _ := builder.
		OrderBy("tender.created_at", "tender.id").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()

	return r.queryTenders(listSql, args)
}

func (r *TenderRepo) GetTendersByCreator(ctx context.Context, username string, pg *entity.PaginationInput) ([]entity.Tender, error) {
	listSql, args, _ := r.SqlBuilder.
		Select(tenderColumns).
		From("tender").
		InnerJoin("tender_version on tender.id = tender_version.tender_id and tender.active_version = tender_version.version").
		Where("tender.creator_username = ?", username).
		OrderBy("tender.created_at", "tender.id").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()

	return r.queryTenders(listSql, args)
}

// EditTenderById appends a new version carrying over any empty field from the
// active version, then advances the active pointer. The row lock taken first
// serializes concurrent edits of the same tender.
func (r *TenderRepo) EditTenderById(ctx context.Context, id string, name string, description string, serviceType string) error {
	tenderId, err := uuid.Parse(id)
	if err != nil {
		return repoerrs.ErrNotFound
	}

	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	active, err := r.lockTender(tx, tenderId)
	if err != nil {
		return finishRollback(tx, err)
	}

	current, err := r.versions.get(tx, tenderId, active)
	if err != nil {
		return finishRollback(tx, err)
	}

	if name == "" {
		name = current.Name
	}
	if description == "" {
		description = current.Description
	}
	if serviceType == "" {
		serviceType = current.ServiceType.String
	}

	merged := versionContent{
		Name:        name,
		Description: description,
		ServiceType: sql.NullString{String: serviceType, Valid: true},
	}
	newVersion, err := r.versions.append(tx, tenderId, merged)
	if err != nil {
		return finishRollback(tx, wrapConstraint(err))
	}

	if err := r.setActiveVersion(tx, tenderId, newVersion); err != nil {
		return finishRollback(tx, err)
	}

	return tx.Commit()
}

// RollbackTenderVersion repoints active_version at an existing version. No
// version row is created or touched.
func (r *TenderRepo) RollbackTenderVersion(ctx context.Context, id string, version int) error {
	tenderId, err := uuid.Parse(id)
	if err != nil {
		return repoerrs.ErrNotFound
	}

	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if _, err := r.lockTender(tx, tenderId); err != nil {
		return finishRollback(tx, err)
	}

	max, err := r.versions.maxVersion(tx, tenderId)
	if err != nil {
		return finishRollback(tx, err)
	}
	if version < 1 || version > max {
		return finishRollback(tx, repoerrs.ErrNotFound)
	}

	if err := r.setActiveVersion(tx, tenderId, version); err != nil {
		return finishRollback(tx, err)
	}

	return tx.Commit()
}

func (r *TenderRepo) UpdateTenderStatusById(ctx context.Context, id string, newStatus string) error {
	tenderId, err := uuid.Parse(id)
	if err != nil {
		return repoerrs.ErrNotFound
	}

	updateStatusSql, args, _ := r.SqlBuilder.
		Update("tender").
		Set("status", newStatus).
		Where("id = ?", tenderId).
		ToSql()

	result, err := r.Database.Exec(updateStatusSql, args...)
	if err != nil {
		return wrapConstraint(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repoerrs.ErrNotFound
	}

	return nil
}

// lockTender locks the tender row for the rest of the transaction and returns
// its active version number.
func (r *TenderRepo) lockTender(tx *sql.Tx, tenderId uuid.UUID) (int, error) {
	lockSql, args, _ := r.SqlBuilder.
		Select("active_version").
		From("tender").
		Where("id = ?", tenderId).
		Suffix("FOR UPDATE").
		ToSql()

	var active int
	if err := tx.QueryRow(lockSql, args...).Scan(&active); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, repoerrs.ErrNotFound
		}

		return 0, err
	}

	return active, nil
}

func (r *TenderRepo) setActiveVersion(tx *sql.Tx, tenderId uuid.UUID, version int) error {
	updateSql, args, _ := r.SqlBuilder.
		Update("tender").
		Set("active_version", version).
		Where("id = ?", tenderId).
		ToSql()

	_, err := tx.Exec(updateSql, args...)

	return err
}

func (r *TenderRepo) queryTenders(listSql string, args []any) ([]entity.Tender, error) {
	rows, err := r.Database.Query(listSql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tenders := make([]entity.Tender, 0)
	for rows.Next() {
		var tender entity.Tender
		var createdAt time.Time
		if err := rows.Scan(&tender.Id, &tender.Name, &tender.Description, &tender.ServiceType,
			&tender.Status, &tender.OrganizationId, &tender.CreatorUsername, &tender.Version, &createdAt); err != nil {
			return nil, err
		}
		tender.CreatedAt = createdAt.Format(time.RFC3339)
		tenders = append(tenders, tender)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tenders, nil
}

func scanTender(row *sql.Row) (*entity.Tender, error) {
	var tender entity.Tender
	var createdAt time.Time
	if err := row.Scan(&tender.Id, &tender.Name, &tender.Description, &tender.ServiceType,
		&tender.Status, &tender.OrganizationId, &tender.CreatorUsername, &tender.Version, &createdAt); err != nil {
		return nil, err
	}
	tender.CreatedAt = createdAt.Format(time.RFC3339)

	return &tender, nil
}
