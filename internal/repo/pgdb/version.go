package pgdb

import (
	"database/sql"
	"errors"
	"tender-service/internal/repo/repoerrs"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

// versionContent is the immutable payload of one version row. ServiceType is
// only stored for tables that carry it (tender_version).
type versionContent struct {
	Name        string
	Description string
	ServiceType sql.NullString
}

// versionStore is the append-only version ledger shared by the tender and bid
// repositories. Version numbers for an entity are always the contiguous range
// [1, N]: append inserts max+1, nothing ever updates or deletes a row.
//
// Methods run against the runner they are given. Writers must pass a
// transaction that already holds the entity row lock; that lock is what makes
// the max+1 computation atomic per entity.
type versionStore struct {
	table          string
	fkColumn       string
	hasServiceType bool
	builder        squirrel.StatementBuilderType
}

func newVersionStore(table string, fkColumn string, hasServiceType bool, builder squirrel.StatementBuilderType) versionStore {
	return versionStore{
		table:          table,
		fkColumn:       fkColumn,
		hasServiceType: hasServiceType,
		builder:        builder,
	}
}

func (s versionStore) contentColumns() []string {
	cols := []string{"name", "description"}
	if s.hasServiceType {
		cols = append(cols, "service_type")
	}

	return cols
}

// append inserts a new version row numbered max(existing)+1 (or 1) and
// returns the number it got.
func (s versionStore) append(db dbRunner, entityId uuid.UUID, content versionContent) (int, error) {
	next := squirrel.Expr(
		"(select coalesce(max(version), 0) + 1 from "+s.table+" where "+s.fkColumn+" = ?)",
		entityId,
	)

	columns := []string{s.fkColumn, "version", "name", "description"}
	values := []any{entityId, next, content.Name, content.Description}
	if s.hasServiceType {
		columns = append(columns, "service_type")
		values = append(values, content.ServiceType)
	}

	appendSql, args, _ := s.builder.
		Insert(s.table).
		Columns(columns...).
		Values(values...).
		Suffix("RETURNING version").
		ToSql()

	var version int
	if err := db.QueryRow(appendSql, args...).Scan(&version); err != nil {
		return 0, err
	}

	return version, nil
}

func (s versionStore) get(db dbRunner, entityId uuid.UUID, version int) (versionContent, error) {
	getSql, args, _ := s.builder.
		Select(s.contentColumns()...).
		From(s.table).
		Where(s.fkColumn+" = ?", entityId).
		Where("version = ?", version).
		ToSql()

	var content versionContent
	dest := []any{&content.Name, &content.Description}
	if s.hasServiceType {
		dest = append(dest, &content.ServiceType)
	}

	if err := db.QueryRow(getSql, args...).Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return content, repoerrs.ErrNotFound
		}

		return content, err
	}

	return content, nil
}

// maxVersion reports the highest version number for the entity, 0 when no
// versions exist.
func (s versionStore) maxVersion(db dbRunner, entityId uuid.UUID) (int, error) {
	maxSql, args, _ := s.builder.
		Select("coalesce(max(version), 0)").
		From(s.table).
		Where(s.fkColumn+" = ?", entityId).
		ToSql()

	var max int
	if err := db.QueryRow(maxSql, args...).Scan(&max); err != nil {
		return 0, err
	}

	return max, nil
}
