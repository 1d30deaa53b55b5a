package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetUncompletedOrdersQueryHandler struct {
	db *gorm.DB
}

func NewGetUncompletedOrdersQueryHandler(db *gorm.DB) GetUncompletedOrdersQueryHandler {
	return GetUncompletedOrdersQueryHandler{db: db}
}

// Handle returns Created and Assigned orders, oldest first.
func (h GetUncompletedOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetUncompletedOrdersQuery,
) ([]GetUncompletedOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			origin_x,
			origin_y,
			destination_x,
			destination_y,
			revenue,
			status,
			driver_id
		FROM orders
		WHERE status != ?
		ORDER BY created_at, id
	`, int(order.Completed)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetUncompletedOrdersQueryResponse, 0)
	for rows.Next() {
		var (
			resp       GetUncompletedOrdersQueryResponse
			id         uuid.UUID
			driverID   uuid.NullUUID
			ox, oy     float64
			dx, dy     float64
			statusCode int
		)

		if err = rows.Scan(&id, &ox, &oy, &dx, &dy, &resp.Revenue, &statusCode, &driverID); err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromGoogle(id); err != nil {
			return nil, err
		}
		if resp.Origin, err = kernel.NewLocation(kernel.Coordinate(ox), kernel.Coordinate(oy)); err != nil {
			return nil, err
		}
		if resp.Destination, err = kernel.NewLocation(kernel.Coordinate(dx), kernel.Coordinate(dy)); err != nil {
			return nil, err
		}
		resp.Status = order.Status(statusCode)
		if err = resp.Status.Validate(); err != nil {
			return nil, err
		}
		if resp.DriverID, err = nullableID(driverID); err != nil {
			return nil, err
		}

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
