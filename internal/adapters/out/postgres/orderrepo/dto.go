// Package orderrepo maps order aggregates to the orders table and implements
// both the write-side repository and the read-side finder.
package orderrepo

import (
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderDTO is the row layout of the orders table.
type OrderDTO struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	ProductName string          `gorm:"size:255;not null"`
	Customer    string          `gorm:"size:255;not null;index"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(19,2);not null"`
	Currency    string          `gorm:"size:16;not null"`
	Status      int             `gorm:"type:smallint;not null;index"`
	CreateTime  time.Time       `gorm:"not null;index"`
	UpdateTime  time.Time       `gorm:"not null"`
}

// TableName overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	return OrderDTO{
		ID:          aggregate.ID(),
		ProductName: aggregate.ProductName(),
		Customer:    aggregate.Customer(),
		TotalAmount: aggregate.Total().Amount(),
		Currency:    aggregate.Total().Currency(),
		Status:      aggregate.Status().Code(),
		CreateTime:  aggregate.CreateTime(),
		UpdateTime:  aggregate.UpdateTime(),
	}
}

// toDomain rebuilds the aggregate. A stored status code that does not decode
// is reported as an error rather than mapped to a default.
func toDomain(dto OrderDTO) (*order.Order, error) {
	total, err := kernel.NewMoney(dto.TotalAmount, dto.Currency)
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromCode(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		dto.ID,
		dto.ProductName,
		dto.Customer,
		total,
		status,
		dto.CreateTime,
		dto.UpdateTime,
	)
}

// toSnapshot is the read-side mapping. It does not validate, so rows with a
// corrupt status are still listed with order.Unknown.
func toSnapshot(dto OrderDTO) order.Snapshot {
	status := order.Status(dto.Status)
	if status.Validate() != nil {
		status = order.Unknown
	}

	return order.Snapshot{
		ID:          dto.ID,
		ProductName: dto.ProductName,
		Customer:    dto.Customer,
		TotalAmount: dto.TotalAmount,
		Currency:    dto.Currency,
		Status:      status,
		CreateTime:  dto.CreateTime,
		UpdateTime:  dto.UpdateTime,
	}
}
