package orderrepo

import (
	"context"
	"errors"
	"strings"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"
	"orders/internal/pkg/errs"

	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// GormOrderFinder implements ports.OrderFinder using GORM.
type GormOrderFinder struct {
	db *gorm.DB
}

func NewGormOrderFinder(db *gorm.DB) *GormOrderFinder {
	return &GormOrderFinder{db: db}
}

func (f *GormOrderFinder) Get(ctx context.Context, id int64) (order.Snapshot, error) {
	var dto OrderDTO
	if err := f.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return order.Snapshot{}, errs.NewObjectNotFoundError("id", id)
		}
		return order.Snapshot{}, err
	}

	return toSnapshot(dto), nil
}

// Search counts all rows matching filter, then reads one page ordered by id.
func (f *GormOrderFinder) Search(
	ctx context.Context,
	filter ports.OrderFilter,
	page ports.PageRequest,
) (ports.OrderPage, error) {
	var total int64
	if err := f.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Scopes(matching(filter)).
		Count(&total).Error; err != nil {
		return ports.OrderPage{}, err
	}

	if total == 0 {
		return ports.OrderPage{Items: []order.Snapshot{}, Total: 0}, nil
	}

	var dtos []OrderDTO
	if err := f.db.WithContext(ctx).
		Scopes(matching(filter)).
		Order("id ASC").
		Offset(page.Offset()).
		Limit(page.PageSize).
		Find(&dtos).Error; err != nil {
		return ports.OrderPage{}, err
	}

	items := make([]order.Snapshot, 0, len(dtos))
	for _, dto := range dtos {
		items = append(items, toSnapshot(dto))
	}

	return ports.OrderPage{Items: items, Total: total}, nil
}

func matching(filter ports.OrderFilter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Where("customer = ?", filter.Customer)

		if filter.ProductName != "" {
			pattern := "%" + likeEscaper.Replace(strings.ToLower(filter.ProductName)) + "%"
			db = db.Where(`LOWER(product_name) LIKE ? ESCAPE '\'`, pattern)
		}
		if filter.Status != nil {
			db = db.Where("status = ?", filter.Status.Code())
		}
		if filter.StartTime != nil {
			db = db.Where("create_time >= ?", *filter.StartTime)
		}
		if filter.EndTime != nil {
			db = db.Where("create_time <= ?", *filter.EndTime)
		}

		return db
	}
}
