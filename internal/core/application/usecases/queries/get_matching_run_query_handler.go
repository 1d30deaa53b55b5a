package queries

import (
	"context"
	"database/sql"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetMatchingRunQueryHandler struct {
	db *gorm.DB
}

func NewGetMatchingRunQueryHandler(db *gorm.DB) GetMatchingRunQueryHandler {
	return GetMatchingRunQueryHandler{db: db}
}

// Handle returns the run or an *errs.ObjectNotFoundError.
func (h GetMatchingRunQueryHandler) Handle(
	ctx context.Context,
	query GetMatchingRunQuery,
) (GetMatchingRunQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetMatchingRunQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)

	var (
		header     *gorm.DB
		notFoundID string
	)
	if runID, ok := query.RunID(); ok {
		header = db.Raw(`
			SELECT id, created_at, total_profit, orders_waited
			FROM runs
			WHERE id = ?
		`, runID.Bytes())
		notFoundID = runID.String()
	} else {
		header = db.Raw(`
			SELECT id, created_at, total_profit, orders_waited
			FROM runs
			ORDER BY created_at DESC, id
			LIMIT 1
		`)
		notFoundID = "latest"
	}

	var (
		resp GetMatchingRunQueryResponse
		id   uuid.UUID
	)
	err := header.Row().Scan(&id, &resp.CreatedAt, &resp.TotalProfit, &resp.OrdersWaited)
	if errors.Is(err, sql.ErrNoRows) {
		return GetMatchingRunQueryResponse{}, errs.NewObjectNotFoundError("run", notFoundID)
	}
	if err != nil {
		return GetMatchingRunQueryResponse{}, err
	}
	if resp.ID, err = kernel.UUIDFromGoogle(id); err != nil {
		return GetMatchingRunQueryResponse{}, err
	}
	resp.CreatedAt = resp.CreatedAt.UTC()

	if resp.Assignments, err = h.assignments(ctx, id); err != nil {
		return GetMatchingRunQueryResponse{}, err
	}

	return resp, nil
}

func (h GetMatchingRunQueryHandler) assignments(ctx context.Context, runID uuid.UUID) ([]MatchingRunAssignment, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			a.driver_id,
			COALESCE(d.name, ''),
			a.order_id,
			a.profit
		FROM run_assignments a
		LEFT JOIN drivers d ON d.id = a.driver_id
		WHERE a.run_id = ?
		ORDER BY a.position
	`, runID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]MatchingRunAssignment, 0)
	for rows.Next() {
		var (
			a        MatchingRunAssignment
			driverID uuid.UUID
			orderID  uuid.NullUUID
		)

		if err = rows.Scan(&driverID, &a.DriverName, &orderID, &a.Profit); err != nil {
			return nil, err
		}
		if a.DriverID, err = kernel.UUIDFromGoogle(driverID); err != nil {
			return nil, err
		}
		if a.OrderID, err = nullableID(orderID); err != nil {
			return nil, err
		}

		assignments = append(assignments, a)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}
