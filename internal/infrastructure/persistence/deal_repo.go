package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"flashsale/internal/domain"
	"flashsale/internal/domain/entity"
	"flashsale/pkg/errcodes"
)

type DealRepository struct {
	db *sqlx.DB
}

func NewDealRepository(db *sqlx.DB) *DealRepository {
	return &DealRepository{db: db}
}

func (r *DealRepository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return domain.WrapError(
				fmt.Errorf("%w; rollback: %v", err, rbErr),
				errcodes.InternalServerError,
				"transaction failed",
			)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to commit")
	}

	return nil
}

// Create inserts a deal and fills in the generated id.
func (r *DealRepository) Create(ctx context.Context, deal *entity.Deal) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		schema := fromDeal(deal)

		query := `
			INSERT INTO lightning_deals
				(product_name, actual_price, final_price, total_units, available_units, expiry_time)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`

		if err := tx.GetContext(ctx, &deal.ID, query,
			schema.ProductName, schema.ActualPrice, schema.FinalPrice,
			schema.TotalUnits, schema.AvailableUnits, schema.ExpiryTime,
		); err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to create lightning deal")
		}

		return nil
	})
}

func (r *DealRepository) GetByID(ctx context.Context, id int64) (*entity.Deal, error) {
	query := `
		SELECT id, product_name, actual_price, final_price, total_units, available_units, expiry_time
		FROM lightning_deals
		WHERE id = $1`

	var schema dealSchema
	if err := r.db.GetContext(ctx, &schema, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(errcodes.DealNotFound, "lightning deal not found")
		}
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get lightning deal")
	}

	return schema.toDomain(), nil
}

// ListActive returns unexpired deals in insertion order.
func (r *DealRepository) ListActive(ctx context.Context, now time.Time) ([]entity.Deal, error) {
	query := `
		SELECT id, product_name, actual_price, final_price, total_units, available_units, expiry_time
		FROM lightning_deals
		WHERE expiry_time > $1
		ORDER BY id ASC`

	var schemas []dealSchema
	if err := r.db.SelectContext(ctx, &schemas, query, now.Unix()); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list lightning deals")
	}

	deals := make([]entity.Deal, 0, len(schemas))
	for _, s := range schemas {
		deals = append(deals, *s.toDomain())
	}

	return deals, nil
}

// Update overwrites all six mutable attributes unconditionally, including
// available_units. No bound against total_units is enforced here.
func (r *DealRepository) Update(ctx context.Context, deal *entity.Deal) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		schema := fromDeal(deal)

		query := `
			UPDATE lightning_deals SET
				product_name = :product_name,
				actual_price = :actual_price,
				final_price = :final_price,
				total_units = :total_units,
				available_units = :available_units,
				expiry_time = :expiry_time
			WHERE id = :id`

		res, err := tx.NamedExecContext(ctx, query, schema)
		if err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to update lightning deal")
		}

		rows, _ := res.RowsAffected()
		if rows == 0 {
			return domain.NewError(errcodes.DealNotFound, "lightning deal not found")
		}
		return nil
	})
}
