// Package orderrepo maps order aggregates to the orders table.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the row layout of an order. Status is indexed because the
// matching job scans Created orders on every tick.
type OrderDTO struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey"`
	DriverID    *uuid.UUID  `gorm:"type:uuid;index"`
	Origin      LocationDTO `gorm:"embedded;embeddedPrefix:origin_"`
	Destination LocationDTO `gorm:"embedded;embeddedPrefix:destination_"`
	Revenue     int         `gorm:"type:int;not null"`
	Status      int         `gorm:"type:smallint;not null;index"`
	CreatedAt   time.Time   `gorm:"not null;index"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type LocationDTO struct {
	X kernel.Coordinate `gorm:"type:double precision"`
	Y kernel.Coordinate `gorm:"type:double precision"`
}

func fromDomain(o *order.Order) OrderDTO {
	var driverID *uuid.UUID
	if id := o.Driver(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	return OrderDTO{
		ID:          o.ID().Bytes(),
		DriverID:    driverID,
		Origin:      locationDTO(o.Origin()),
		Destination: locationDTO(o.Destination()),
		Revenue:     o.Revenue(),
		Status:      int(o.Status()),
	}
}

func locationDTO(l kernel.Location) LocationDTO {
	return LocationDTO{X: l.X(), Y: l.Y()}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	origin, err := kernel.NewLocation(dto.Origin.X, dto.Origin.Y)
	if err != nil {
		return nil, err
	}
	destination, err := kernel.NewLocation(dto.Destination.X, dto.Destination.Y)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, origin, destination, dto.Revenue, order.Status(dto.Status), driverID)
}

func toDomainList(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}
