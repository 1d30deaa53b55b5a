// Package driverrepo maps driver aggregates to the drivers table.
package driverrepo

import (
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DriverDTO is the row layout of a driver.
// OrderID is set while the driver serves an order.
type DriverDTO struct {
	ID        uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Name      string      `gorm:"type:varchar(255);not null"`
	Speed     int         `gorm:"type:int;not null"`
	Location  LocationDTO `gorm:"embedded;embeddedPrefix:location_"`
	OrderID   *uuid.UUID  `gorm:"type:uuid;index"`
	PickedUp  bool        `gorm:"not null;default:false"`
	CreatedAt time.Time   `gorm:"not null;index"`
}

func (DriverDTO) TableName() string {
	return "drivers"
}

// LocationDTO stores the continuous position of a driver.
type LocationDTO struct {
	X kernel.Coordinate `gorm:"type:double precision"`
	Y kernel.Coordinate `gorm:"type:double precision"`
}

func fromDomain(d *driver.Driver) DriverDTO {
	var orderID *uuid.UUID
	if id := d.OrderID(); id != nil {
		raw := id.Bytes()
		orderID = &raw
	}

	return DriverDTO{
		ID:    d.ID().Bytes(),
		Name:  d.Name(),
		Speed: d.Speed(),
		Location: LocationDTO{
			X: d.Location().X(),
			Y: d.Location().Y(),
		},
		OrderID:  orderID,
		PickedUp: d.HasPickedUp(),
	}
}

func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	loc, err := kernel.NewLocation(dto.Location.X, dto.Location.Y)
	if err != nil {
		return nil, err
	}

	var orderID *kernel.UUID
	if dto.OrderID != nil {
		oID, orderErr := kernel.UUIDFromBytes((*dto.OrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}
		orderID = &oID
	}

	return driver.RestoreDriver(id, dto.Name, dto.Speed, loc, orderID, dto.PickedUp)
}

func toDomainList(dtos []DriverDTO) ([]*driver.Driver, error) {
	drivers := make([]*driver.Driver, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, d)
	}
	return drivers, nil
}
