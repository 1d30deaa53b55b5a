// Package runrepo stores matching runs in the runs and run_assignments tables.
package runrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/run"

	"github.com/google/uuid"
)

// RunDTO is the header row of a matching run.
type RunDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CreatedAt    time.Time       `gorm:"not null;index"`
	TotalProfit  float64         `gorm:"type:double precision;not null"`
	OrdersWaited int             `gorm:"type:int;not null"`
	Assignments  []AssignmentDTO `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE"`
}

func (RunDTO) TableName() string {
	return "runs"
}

// AssignmentDTO is the decision for one driver. Position keeps the driver
// order of the run so the bipartite graph renders the same way every time.
type AssignmentDTO struct {
	RunID    uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Position int        `gorm:"type:int;primaryKey"`
	DriverID uuid.UUID  `gorm:"type:uuid;not null"`
	OrderID  *uuid.UUID `gorm:"type:uuid"`
	Profit   float64    `gorm:"type:double precision;not null"`
}

func (AssignmentDTO) TableName() string {
	return "run_assignments"
}

func fromDomain(r *run.Run) RunDTO {
	runID := r.ID().Bytes()
	assignments := make([]AssignmentDTO, 0, len(r.Assignments()))
	for i, a := range r.Assignments() {
		var orderID *uuid.UUID
		if a.OrderID != nil {
			raw := a.OrderID.Bytes()
			orderID = &raw
		}
		assignments = append(assignments, AssignmentDTO{
			RunID:    runID,
			Position: i,
			DriverID: a.DriverID.Bytes(),
			OrderID:  orderID,
			Profit:   a.Profit,
		})
	}

	return RunDTO{
		ID:           runID,
		CreatedAt:    r.CreatedAt(),
		TotalProfit:  r.TotalProfit(),
		OrdersWaited: r.OrdersWaited(),
		Assignments:  assignments,
	}
}

func toDomain(dto RunDTO) (*run.Run, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	assignments := make([]run.Assignment, 0, len(dto.Assignments))
	for _, a := range dto.Assignments {
		driverID, driverErr := kernel.UUIDFromBytes(a.DriverID[:])
		if driverErr != nil {
			return nil, driverErr
		}

		var orderID *kernel.UUID
		if a.OrderID != nil {
			oID, orderErr := kernel.UUIDFromBytes((*a.OrderID)[:])
			if orderErr != nil {
				return nil, orderErr
			}
			orderID = &oID
		}

		assignments = append(assignments, run.Assignment{
			DriverID: driverID,
			OrderID:  orderID,
			Profit:   a.Profit,
		})
	}

	return run.RestoreRun(id, dto.CreatedAt, assignments, dto.OrdersWaited)
}
