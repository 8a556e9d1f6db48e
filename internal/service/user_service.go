package service

import (
	"context"

	"user-service/internal/model"

	"go.uber.org/zap"
)

// UserStore is the persistence contract the lifecycle service consumes. Read
// methods take the active flag explicitly; implementations return
// model.ErrUserNotFound from FindByIDAndActive when no matching row exists.
type UserStore interface {
	FindByIDAndActive(ctx context.Context, id uint, active bool) (*model.User, error)
	FindByTypeAndActive(ctx context.Context, userType model.UserType, active bool) ([]model.User, error)
	FindAllByActive(ctx context.Context, active bool) ([]model.User, error)
	Save(ctx context.Context, user *model.User) error
}

// AddressStore persists addresses. Addresses live independently of users.
type AddressStore interface {
	Save(ctx context.Context, address *model.Address) error
	FindByID(ctx context.Context, id uint) (*model.Address, error)
}

// UserService owns the user lifecycle: creation, lookup, full-replace update
// and soft delete. It holds no state of its own between calls.
type UserService struct {
	users     UserStore
	addresses AddressStore
	log       *zap.Logger
}

func NewUserService(users UserStore, addresses AddressStore, log *zap.Logger) *UserService {
	if log == nil {
		log = zap.NewNop()
	}
	return &UserService{users: users, addresses: addresses, log: log}
}

// Create persists a new user with active=true. The type code must resolve to
// a known user type or nothing is persisted. A supplied address is saved first
// through the address store and attached to the user by id.
func (s *UserService) Create(ctx context.Context, name, phone, email string, address *model.Address, licenseNo string, userTypeCode int) (*model.User, error) {
	userType, ok := model.UserTypeFromCode(userTypeCode)
	if !ok {
		s.log.Warn("Rejecting user creation with unknown type code", zap.Int("user_type_code", userTypeCode))
		return nil, model.ErrUnknownUserType
	}

	if address != nil {
		if err := s.addresses.Save(ctx, address); err != nil {
			return nil, err
		}
	}

	user := s.prepareUser(name, phone, email, address, licenseNo, userType)
	if err := s.users.Save(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("User created",
		zap.Uint("user_id", user.ID),
		zap.String("user_type", userType.String()))
	return user, nil
}

// GetByID returns the active user at id. Soft-deleted users are not reachable
// through this path: an inactive id behaves exactly like an absent one.
func (s *UserService) GetByID(ctx context.Context, id uint) (*model.User, error) {
	return s.users.FindByIDAndActive(ctx, id, true)
}

// ListByType returns all active users of the given type. An unknown type code
// yields an empty result rather than an error; this leniency is intentional
// and differs from the strict validation on Create and Update.
func (s *UserService) ListByType(ctx context.Context, userTypeCode int) ([]model.User, error) {
	userType, ok := model.UserTypeFromCode(userTypeCode)
	if !ok {
		return []model.User{}, nil
	}
	return s.users.FindByTypeAndActive(ctx, userType, true)
}

// ListAllActive returns every active user.
func (s *UserService) ListAllActive(ctx context.Context) ([]model.User, error) {
	return s.users.FindAllByActive(ctx, true)
}

// Update replaces every mutable field of the active user at id with the
// caller-supplied values. This is a full replacement, not a merge: empty
// inputs overwrite previously set fields. The id is preserved and the user
// stays active.
func (s *UserService) Update(ctx context.Context, id uint, name, phone, email string, address *model.Address, licenseNo string, userTypeCode int) (*model.User, error) {
	existing, err := s.users.FindByIDAndActive(ctx, id, true)
	if err != nil {
		return nil, err
	}

	userType, ok := model.UserTypeFromCode(userTypeCode)
	if !ok {
		s.log.Warn("Rejecting user update with unknown type code",
			zap.Uint("user_id", id),
			zap.Int("user_type_code", userTypeCode))
		return nil, model.ErrUnknownUserType
	}

	if address != nil {
		if err := s.addresses.Save(ctx, address); err != nil {
			return nil, err
		}
	}

	updated := s.prepareUser(name, phone, email, address, licenseNo, userType)
	updated.Base = existing.Base
	updated.Active = true
	if err := s.users.Save(ctx, updated); err != nil {
		return nil, err
	}

	s.log.Info("User updated", zap.Uint("user_id", updated.ID))
	return updated, nil
}

// Delete soft-deletes the active user at id by flipping its active flag. The
// row stays in the database and a linked address is left untouched. Deleting
// an already deleted user fails with model.ErrUserNotFound; there is no
// reactivation path.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	user, err := s.users.FindByIDAndActive(ctx, id, true)
	if err != nil {
		return err
	}

	user.Active = false
	if err := s.users.Save(ctx, user); err != nil {
		return err
	}

	s.log.Info("User soft-deleted", zap.Uint("user_id", id))
	return nil
}

func (s *UserService) prepareUser(name, phone, email string, address *model.Address, licenseNo string, userType model.UserType) *model.User {
	user := &model.User{
		Name:      name,
		Phone:     phone,
		Email:     email,
		LicenseNo: licenseNo,
		UserType:  userType,
	}
	user.Active = true
	if address != nil {
		user.AddressID = &address.ID
		user.Address = address
	}
	return user
}
