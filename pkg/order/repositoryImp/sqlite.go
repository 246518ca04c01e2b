package repositoryImp

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"greens/entities"
	"greens/pkg/order/repository"
)

type sqliteRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.Repo { return &sqliteRepo{db: db} }

// Create inserts the order together with its items.
func (r *sqliteRepo) Create(o *entities.Order) error { return r.db.Create(o).Error }

// Update saves the order header only; items change through ReplaceItemsAndUpdate.
func (r *sqliteRepo) Update(o *entities.Order) error {
	return r.db.Omit(clause.Associations).Save(o).Error
}

func (r *sqliteRepo) FindByID(id uuid.UUID) (*entities.Order, error) {
	var out entities.Order
	if err := r.db.Preload("Items").First(&out, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (r *sqliteRepo) ReplaceItemsAndUpdate(o *entities.Order) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", o.ID).Delete(&entities.OrderItem{}).Error; err != nil {
			return err
		}
		for i := range o.Items {
			o.Items[i].ID = uuid.Nil
			o.Items[i].OrderID = o.ID
		}
		if len(o.Items) > 0 {
			if err := tx.Create(&o.Items).Error; err != nil {
				return err
			}
		}
		return tx.Omit(clause.Associations).Save(o).Error
	})
}

func (r *sqliteRepo) ListByDeliveryBetween(from, to *time.Time) ([]entities.Order, error) {
	q := r.db.Model(&entities.Order{}).Preload("Items")
	if from != nil {
		q = q.Where("delivery_date >= ?", *from)
	}
	if to != nil {
		q = q.Where("delivery_date < ?", *to)
	}
	var list []entities.Order
	return list, q.Order("delivery_date asc, created_at asc").Find(&list).Error
}
