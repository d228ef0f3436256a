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

type OrderRepository struct {
	db *sqlx.DB
}

func NewOrderRepository(db *sqlx.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
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

// Place runs the reservation as a single transaction: lock the deal row,
// check expiry and stock, insert the order, decrement available units.
// Either all of it commits or none of it does, so an order row can never
// exist without its decrement.
func (r *OrderRepository) Place(ctx context.Context, dealID, units int64, now time.Time) (*entity.Order, error) {
	var order *entity.Order

	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		// The lock serializes concurrent reservations on the same deal.
		query := `
			SELECT id, product_name, actual_price, final_price, total_units, available_units, expiry_time
			FROM lightning_deals
			WHERE id = $1 AND expiry_time > $2
			FOR UPDATE`

		var schema dealSchema
		if err := tx.GetContext(ctx, &schema, query, dealID, now.Unix()); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.NewError(errcodes.DealExpiredOrNotFound, "the lightning deal has expired")
			}
			return domain.WrapError(err, errcodes.InternalServerError, "failed to lock lightning deal")
		}

		if units > schema.AvailableUnits {
			return domain.NewError(errcodes.InsufficientStock, "not enough units available")
		}

		totalPrice := schema.FinalPrice * float64(units)

		var orderID int64
		insert := `INSERT INTO orders (deal_id, units, price) VALUES ($1, $2, $3) RETURNING id`
		if err := tx.GetContext(ctx, &orderID, insert, dealID, units, totalPrice); err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to insert order")
		}

		decrement := `
			UPDATE lightning_deals
			SET available_units = available_units - $1
			WHERE id = $2 AND available_units >= $1`

		res, err := tx.ExecContext(ctx, decrement, units, dealID)
		if err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to decrement available units")
		}

		rows, err := res.RowsAffected()
		if err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to check affected rows")
		}
		if rows == 0 {
			// Unreachable while the row is locked; kept so the invariant
			// does not depend on the stock check above.
			return domain.NewError(errcodes.InsufficientStock, "not enough units available")
		}

		order = &entity.Order{
			ID:     orderID,
			DealID: dealID,
			Units:  units,
			Price:  totalPrice,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// Approve sets the approval flag. Approving an already approved order is a
// no-op success; a missing order is reported as not found.
func (r *OrderRepository) Approve(ctx context.Context, id int64) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		query := `UPDATE orders SET is_approved = TRUE WHERE id = $1`

		res, err := tx.ExecContext(ctx, query, id)
		if err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to approve order")
		}

		rows, err := res.RowsAffected()
		if err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to check affected rows")
		}
		if rows == 0 {
			return domain.NewError(errcodes.OrderNotFound, "order not found")
		}
		return nil
	})
}

func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	query := `
		SELECT id, deal_id, units, price, is_approved
		FROM orders
		WHERE id = $1`

	var schema orderSchema
	if err := r.db.GetContext(ctx, &schema, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(errcodes.OrderNotFound, "order not found")
		}
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get order")
	}

	return schema.toDomain(), nil
}
