package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"tender-service/pkg/postgres"

	"github.com/google/uuid"
)

type EmployeeRepo struct {
	*postgres.Postgres
}

func NewEmployeeRepo(pgdb *postgres.Postgres) *EmployeeRepo {
	return &EmployeeRepo{pgdb}
}

func (r *EmployeeRepo) DoesEmployeeExistByUsername(ctx context.Context, username string) (bool, error) {
	existsSql, args, _ := r.SqlBuilder.
		Select("id").
		From("employee").
		Where("username = ?", username).
		ToSql()

	var id uuid.UUID
	if err := r.Database.QueryRow(existsSql, args...).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}

func (r *EmployeeRepo) DoesOrganizationExistById(ctx context.Context, id string) (bool, error) {
	orgId, err := uuid.Parse(id)
	if err != nil {
		return false, nil
	}

	existsSql, args, _ := r.SqlBuilder.
		Select("id").
		From("organization").
		Where("id = ?", orgId).
		ToSql()

	var found uuid.UUID
	if err := r.Database.QueryRow(existsSql, args...).Scan(&found); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}

		return false, err
	}

	return true, nil
}
