package repository

import (
	"context"
	"errors"
	"time"

	"user-service/internal/model"
	"user-service/prometheus"

	"gorm.io/gorm"
)

// UserRepo is the gorm-backed store for user records. Every read method takes
// the active flag explicitly so that no call site can accidentally include
// soft-deleted rows.
type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Migrate() error {
	return r.db.AutoMigrate(&model.User{})
}

// FindByIDAndActive returns the user at id with the given active flag, with
// its address preloaded. Returns model.ErrUserNotFound when no such row
// exists.
func (r *UserRepo) FindByIDAndActive(ctx context.Context, id uint, active bool) (*model.User, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var user model.User
	err := r.db.WithContext(ctx).
		Preload("Address").
		Where("id = ? AND active = ?", id, active).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByTypeAndActive returns all users of the given type with the given
// active flag.
func (r *UserRepo) FindByTypeAndActive(ctx context.Context, userType model.UserType, active bool) ([]model.User, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var users []model.User
	err := r.db.WithContext(ctx).
		Preload("Address").
		Where("user_type = ? AND active = ?", userType, active).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// FindAllByActive returns every user with the given active flag.
func (r *UserRepo) FindAllByActive(ctx context.Context, active bool) ([]model.User, error) {
	defer prometheus.TrackDBOperation("query")(time.Now())

	var users []model.User
	err := r.db.WithContext(ctx).
		Preload("Address").
		Where("active = ?", active).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Save inserts the user when its id is zero and fully overwrites the row at
// that id otherwise.
func (r *UserRepo) Save(ctx context.Context, user *model.User) error {
	op := "update"
	if user.ID == 0 {
		op = "insert"
	}
	defer prometheus.TrackDBOperation(op)(time.Now())

	// The address is owned by the address store; only the reference is written
	return r.db.WithContext(ctx).Omit("Address").Save(user).Error
}
