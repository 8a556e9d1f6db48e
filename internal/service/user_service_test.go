package service

import (
	"context"
	"testing"

	"user-service/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserStore struct {
	users  map[uint]model.User
	nextID uint
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[uint]model.User{}}
}

func (f *fakeUserStore) FindByIDAndActive(_ context.Context, id uint, active bool) (*model.User, error) {
	u, ok := f.users[id]
	if !ok || u.Active != active {
		return nil, model.ErrUserNotFound
	}
	return &u, nil
}

func (f *fakeUserStore) FindByTypeAndActive(_ context.Context, userType model.UserType, active bool) ([]model.User, error) {
	out := []model.User{}
	for _, u := range f.users {
		if u.UserType == userType && u.Active == active {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserStore) FindAllByActive(_ context.Context, active bool) ([]model.User, error) {
	out := []model.User{}
	for _, u := range f.users {
		if u.Active == active {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserStore) Save(_ context.Context, user *model.User) error {
	if user.ID == 0 {
		f.nextID++
		user.ID = f.nextID
	}
	f.users[user.ID] = *user
	return nil
}

type fakeAddressStore struct {
	addresses map[uint]model.Address
	nextID    uint
}

func newFakeAddressStore() *fakeAddressStore {
	return &fakeAddressStore{addresses: map[uint]model.Address{}}
}

func (f *fakeAddressStore) Save(_ context.Context, address *model.Address) error {
	if address.ID == 0 {
		f.nextID++
		address.ID = f.nextID
	}
	f.addresses[address.ID] = *address
	return nil
}

func (f *fakeAddressStore) FindByID(_ context.Context, id uint) (*model.Address, error) {
	a, ok := f.addresses[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func newTestService() (*UserService, *fakeUserStore, *fakeAddressStore) {
	users := newFakeUserStore()
	addresses := newFakeAddressStore()
	return NewUserService(users, addresses, nil), users, addresses
}

func TestCreateAssignsDistinctIDsAndActive(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	first, err := svc.Create(ctx, "Alice", "123", "a@x.com", nil, "L1", 0)
	require.NoError(t, err)
	second, err := svc.Create(ctx, "Bob", "456", "b@x.com", nil, "L2", 1)
	require.NoError(t, err)

	assert.True(t, first.Active)
	assert.True(t, second.Active)
	assert.NotZero(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, model.UserTypeCustomer, first.UserType)
	assert.Equal(t, model.UserTypeDriver, second.UserType)
}

func TestCreateUnknownTypePersistsNothing(t *testing.T) {
	svc, users, addresses := newTestService()

	address := &model.Address{Street: "1 Main St", City: "Springfield"}
	_, err := svc.Create(context.Background(), "Alice", "123", "a@x.com", address, "L1", 5)

	require.ErrorIs(t, err, model.ErrUnknownUserType)
	assert.Empty(t, users.users)
	assert.Empty(t, addresses.addresses)
}

func TestCreatePersistsSuppliedAddress(t *testing.T) {
	svc, _, addresses := newTestService()

	address := &model.Address{Street: "1 Main St", City: "Springfield", State: "IL", Zip: "62704"}
	user, err := svc.Create(context.Background(), "Alice", "123", "a@x.com", address, "L1", 0)
	require.NoError(t, err)

	require.NotNil(t, user.AddressID)
	assert.Equal(t, address.ID, *user.AddressID)
	stored, err := addresses.FindByID(context.Background(), address.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "1 Main St", stored.Street)
}

func TestGetByIDUnknownID(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestGetByIDInactiveUserLooksAbsent(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	user, err := svc.Create(ctx, "Alice", "123", "a@x.com", nil, "L1", 0)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, user.ID))

	_, err = svc.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestDeleteIsNotIdempotent(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	user, err := svc.Create(ctx, "Alice", "123", "a@x.com", nil, "L1", 0)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, user.ID))
	assert.ErrorIs(t, svc.Delete(ctx, user.ID), model.ErrUserNotFound)
}

func TestDeleteKeepsRowAndAddress(t *testing.T) {
	svc, users, addresses := newTestService()
	ctx := context.Background()

	address := &model.Address{Street: "1 Main St"}
	user, err := svc.Create(ctx, "Alice", "123", "a@x.com", address, "L1", 0)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, user.ID))

	stored, ok := users.users[user.ID]
	require.True(t, ok, "soft delete must not remove the row")
	assert.False(t, stored.Active)

	kept, err := addresses.FindByID(ctx, address.ID)
	require.NoError(t, err)
	assert.NotNil(t, kept, "address lifecycle is independent of the user")
}

func TestUpdateIsFullReplace(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	address := &model.Address{Street: "1 Main St"}
	created, err := svc.Create(ctx, "Alice", "123", "a@x.com", address, "L1", 0)
	require.NoError(t, err)

	// Empty phone and nil address overwrite the previous values
	updated, err := svc.Update(ctx, created.ID, "Alice Smith", "", "alice@x.com", nil, "L2", 1)
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.True(t, updated.Active)
	assert.Equal(t, "Alice Smith", updated.Name)
	assert.Equal(t, "", updated.Phone)
	assert.Equal(t, "alice@x.com", updated.Email)
	assert.Equal(t, "L2", updated.LicenseNo)
	assert.Equal(t, model.UserTypeDriver, updated.UserType)
	assert.Nil(t, updated.AddressID)

	roundTrip, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, updated.Name, roundTrip.Name)
	assert.Equal(t, updated.Phone, roundTrip.Phone)
	assert.Equal(t, updated.Email, roundTrip.Email)
	assert.Equal(t, updated.LicenseNo, roundTrip.LicenseNo)
	assert.Equal(t, updated.UserType, roundTrip.UserType)
}

func TestUpdateUnknownType(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "Alice", "123", "a@x.com", nil, "L1", 0)
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, "Alice", "123", "a@x.com", nil, "L1", 99)
	assert.ErrorIs(t, err, model.ErrUnknownUserType)
}

func TestUpdateMissingUser(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Update(context.Background(), 42, "Alice", "123", "a@x.com", nil, "L1", 0)
	assert.ErrorIs(t, err, model.ErrUserNotFound)
}

func TestListByTypeUnknownCodeIsEmptyNotError(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Create(ctx, "Alice", "123", "a@x.com", nil, "L1", 0)
	require.NoError(t, err)

	users, err := svc.ListByType(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestListByTypeFiltersTypeAndActive(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	customer, err := svc.Create(ctx, "Alice", "123", "a@x.com", nil, "L1", 0)
	require.NoError(t, err)
	_, err = svc.Create(ctx, "Bob", "456", "b@x.com", nil, "L2", 1)
	require.NoError(t, err)
	deleted, err := svc.Create(ctx, "Carol", "789", "c@x.com", nil, "L3", 0)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, deleted.ID))

	customers, err := svc.ListByType(ctx, 0)
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, customer.ID, customers[0].ID)
}

func TestListAllActiveTracksDeletes(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	user, err := svc.Create(ctx, "Alice", "123", "a@x.com", nil, "L1", 0)
	require.NoError(t, err)

	before, err := svc.ListAllActive(ctx)
	require.NoError(t, err)
	require.Len(t, before, 1)
	assert.Equal(t, user.ID, before[0].ID)

	require.NoError(t, svc.Delete(ctx, user.ID))

	after, err := svc.ListAllActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, after)
}

func TestUserLifecycleScenario(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "Alice", "", "a@x.com", nil, "L1", 0)
	require.NoError(t, err)
	assert.True(t, created.Active)
	assert.Equal(t, model.UserTypeCustomer, created.UserType)
	require.NotZero(t, created.ID)

	fetched, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, fetched.Name)
	assert.Equal(t, created.Email, fetched.Email)
	assert.Equal(t, created.LicenseNo, fetched.LicenseNo)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, model.ErrUserNotFound)

	active, err := svc.ListAllActive(ctx)
	require.NoError(t, err)
	for _, u := range active {
		assert.NotEqual(t, created.ID, u.ID)
	}
}
