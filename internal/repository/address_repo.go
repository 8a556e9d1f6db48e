package repository

import (
	"context"
	"errors"
	"time"

	"user-service/internal/model"
	"user-service/prometheus"

	"gorm.io/gorm"
)

// AddressRepo is the gorm-backed store for addresses. Addresses are owned
// independently of users; nothing here cascades from user operations.
type AddressRepo struct {
	db *gorm.DB
}

func NewAddressRepo(db *gorm.DB) *AddressRepo {
	return &AddressRepo{db: db}
}

func (r *AddressRepo) Migrate() error {
	return r.db.AutoMigrate(&model.Address{})
}

// Save inserts the address when its id is zero and overwrites it otherwise.
func (r *AddressRepo) Save(ctx context.Context, address *model.Address) error {
	op := "update"
	if address.ID == 0 {
		op = "insert"
	}
	defer prometheus.TrackDBOperation(op)(time.Now())

	return r.db.WithContext(ctx).Save(address).Error
}

func (r *AddressRepo) FindByID(ctx context.Context, id uint) (*model.Address, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var address model.Address
	err := r.db.WithContext(ctx).First(&address, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &address, nil
}
