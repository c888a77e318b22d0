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

	"github.com/google/uuid"
)

const bidColumns = "bid.id, bid_version.name, bid_version.description, bid.status, " +
	"bid.decision, bid.tender_id, bid.organization_id, bid.creator_username, " +
	"bid.active_version, bid.created_at"

type BidRepo struct {
	*postgres.Postgres
	versions versionStore
}

func NewBidRepo(pgdb *postgres.Postgres) *BidRepo {
	return &BidRepo{
		Postgres: pgdb,
		versions: newVersionStore("bid_version", "bid_id", false, pgdb.SqlBuilder),
	}
}

func (r *BidRepo) CreateBid(ctx context.Context, input *entity.CreateBidInput) (uuid.UUID, error) {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, err
	}

	createBidSql, args, _ := r.SqlBuilder.
		Insert("bid").
		Columns("status", "tender_id", "organization_id", "creator_username", "active_version").
		Values(common.Created, input.TenderId, input.OrganizationId, input.CreatorUsername, 1).
		Suffix("RETURNING id").
		ToSql()

	var bidId uuid.UUID
	if err := tx.QueryRow(createBidSql, args...).Scan(&bidId); err != nil {
		return uuid.Nil, finishRollback(tx, wrapConstraint(err))
	}

	content := versionContent{Name: input.Name, Description: input.Description}
	if _, err := r.versions.append(tx, bidId, content); err != nil {
		return uuid.Nil, finishRollback(tx, wrapConstraint(err))
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, err
	}

	return bidId, nil
}

func (r *BidRepo) GetBidById(ctx context.Context, id string) (*entity.Bid, error) {
	bidId, err := uuid.Parse(id)
	if err != nil {
		return nil, repoerrs.ErrNotFound
	}

	getBidSql, args, _ := r.SqlBuilder.
		Select(bidColumns).
		From("bid").
		InnerJoin("bid_version on bid.id = bid_version.bid_id and bid.active_version = bid_version.version").
		Where("bid.id = ?", bidId).
		ToSql()

	bid, err := scanBid(r.Database.QueryRow(getBidSql, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repoerrs.ErrNotFound
		}

		return nil, err
	}

	return bid, nil
}

func (r *BidRepo) GetBidsByCreator(ctx context.Context, username string, pg *entity.PaginationInput) ([]entity.Bid, error) {
	listSql, args, _ := r.SqlBuilder.
		Select(bidColumns).
		From("bid").
		InnerJoin("bid_version on bid.id = bid_version.bid_id and bid.active_version = bid_version.version").
		Where("bid.creator_username = ?", username).
		OrderBy("bid.created_at", "bid.id").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()

	return r.queryBids(listSql, args)
}

func (r *BidRepo) GetTenderBids(ctx context.Context, tenderId string, pg *entity.PaginationInput) ([]entity.Bid, error) {
	tenderUuid, err := uuid.Parse(tenderId)
	if err != nil {
		return nil, repoerrs.ErrNotFound
	}

	listSql, args, _ := r.SqlBuilder.
		Select(bidColumns).
		From("bid").
		InnerJoin("bid_version on bid.id = bid_version.bid_id and bid.active_version = bid_version.version").
		Where("bid.tender_id = ?", tenderUuid).
		OrderBy("bid.created_at", "bid.id").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()

	return r.queryBids(listSql, args)
}

// EditBidById appends a new version carrying over any empty field from the
// active version, then advances the active pointer. The row lock taken first
// serializes concurrent edits of the same bid.
func (r *BidRepo) EditBidById(ctx context.Context, id string, name string, description string) error {
	bidId, err := uuid.Parse(id)
	if err != nil {
		return repoerrs.ErrNotFound
	}

	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	active, err := r.lockBid(tx, bidId)
	if err != nil {
		return finishRollback(tx, err)
	}

	current, err := r.versions.get(tx, bidId, active)
	if err != nil {
		return finishRollback(tx, err)
	}

	if name == "" {
		name = current.Name
	}
	if description == "" {
		description = current.Description
	}

	newVersion, err := r.versions.append(tx, bidId, versionContent{Name: name, Description: description})
	if err != nil {
		return finishRollback(tx, wrapConstraint(err))
	}

	if err := r.setActiveVersion(tx, bidId, newVersion); err != nil {
		return finishRollback(tx, err)
	}

	return tx.Commit()
}

// RollbackBidVersion repoints active_version at an existing version. No
// version row is created or touched.
func (r *BidRepo) RollbackBidVersion(ctx context.Context, id string, version int) error {
	bidId, err := uuid.Parse(id)
	if err != nil {
		return repoerrs.ErrNotFound
	}

	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if _, err := r.lockBid(tx, bidId); err != nil {
		return finishRollback(tx, err)
	}

	max, err := r.versions.maxVersion(tx, bidId)
	if err != nil {
		return finishRollback(tx, err)
	}
	if version < 1 || version > max {
		return finishRollback(tx, repoerrs.ErrNotFound)
	}

	if err := r.setActiveVersion(tx, bidId, version); err != nil {
		return finishRollback(tx, err)
	}

	return tx.Commit()
}

func (r *BidRepo) UpdateBidStatusById(ctx context.Context, id string, newStatus string) error {
	bidId, err := uuid.Parse(id)
	if err != nil {
		return repoerrs.ErrNotFound
	}

	updateStatusSql, args, _ := r.SqlBuilder.
		Update("bid").
		Set("status", newStatus).
		Where("id = ?", bidId).
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

func (r *BidRepo) lockBid(tx *sql.Tx, bidId uuid.UUID) (int, error) {
	lockSql, args, _ := r.SqlBuilder.
		Select("active_version").
		From("bid").
		Where("id = ?", bidId).
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

func (r *BidRepo) setActiveVersion(tx *sql.Tx, bidId uuid.UUID, version int) error {
	updateSql, args, _ := r.SqlBuilder.
		Update("bid").
		Set("active_version", version).
		Where("id = ?", bidId).
		ToSql()

	_, err := tx.Exec(updateSql, args...)

	return err
}

func (r *BidRepo) queryBids(listSql string, args []any) ([]entity.Bid, error) {
	rows, err := r.Database.Query(listSql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bids := make([]entity.Bid, 0)
	for rows.Next() {
		var bid entity.Bid
		var decision sql.NullString
		var createdAt time.Time
		if err := rows.Scan(&bid.Id, &bid.Name, &bid.Description, &bid.Status, &decision,
			&bid.TenderId, &bid.OrganizationId, &bid.CreatorUsername, &bid.Version, &createdAt); err != nil {
			return nil, err
		}
		bid.Decision = decision.String
		bid.CreatedAt = createdAt.Format(time.RFC3339)
		bids = append(bids, bid)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return bids, nil
}

func scanBid(row *sql.Row) (*entity.Bid, error) {
	var bid entity.Bid
	var decision sql.NullString
	var createdAt time.Time
	if err := row.Scan(&bid.Id, &bid.Name, &bid.Description, &bid.Status, &decision,
		&bid.TenderId, &bid.OrganizationId, &bid.CreatorUsername, &bid.Version, &createdAt); err != nil {
		return nil, err
	}
	bid.Decision = decision.String
	bid.CreatedAt = createdAt.Format(time.RFC3339)

	return &bid, nil
}
