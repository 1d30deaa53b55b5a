package queries

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetAllDriversQueryHandler struct {
	db *gorm.DB
}

func NewGetAllDriversQueryHandler(db *gorm.DB) GetAllDriversQueryHandler {
	return GetAllDriversQueryHandler{db: db}
}

// Handle returns all drivers in registration order.
func (h GetAllDriversQueryHandler) Handle(
	ctx context.Context,
	query GetAllDriversQuery,
) ([]GetAllDriversQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			speed,
			location_x,
			location_y,
			order_id
		FROM drivers
		ORDER BY created_at, id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drivers := make([]GetAllDriversQueryResponse, 0)
	for rows.Next() {
		var (
			resp    GetAllDriversQueryResponse
			id      uuid.UUID
			orderID uuid.NullUUID
			x, y    float64
		)

		if err = rows.Scan(&id, &resp.Name, &resp.Speed, &x, &y, &orderID); err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromGoogle(id); err != nil {
			return nil, err
		}
		if resp.Location, err = kernel.NewLocation(kernel.Coordinate(x), kernel.Coordinate(y)); err != nil {
			return nil, err
		}
		if resp.OrderID, err = nullableID(orderID); err != nil {
			return nil, err
		}

		drivers = append(drivers, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return drivers, nil
}

func nullableID(id uuid.NullUUID) (*kernel.UUID, error) {
	if !id.Valid {
		return nil, nil
	}
	k, err := kernel.UUIDFromGoogle(id.UUID)
	if err != nil {
		return nil, err
	}
	return &k, nil
}
