package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-agro-keeper/internal/logger"
	"github.com/MKhiriev/go-agro-keeper/internal/mock"
	"github.com/MKhiriev/go-agro-keeper/internal/store"
	"github.com/MKhiriev/go-agro-keeper/internal/utils"
	"github.com/MKhiriev/go-agro-keeper/internal/validators"
	"github.com/MKhiriev/go-agro-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestProfileSvc(ctrl *gomock.Controller) (ProfileService, *mock.MockUserRepository) {
	users := mock.NewMockUserRepository(ctrl)
	return NewProfileService(users, testAppConfig(), logger.Nop()), users
}

func ptr[T any](v T) *T {
	return &v
}

var currentUser = models.User{ID: 3, Name: "Bob", Email: "bob@x.com", Password: "old-hash"}

func TestGetProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users := newTestProfileSvc(ctrl)
	ctx := context.Background()

	users.EXPECT().FindUserByID(ctx, int64(3)).Return(currentUser, nil)

	user, err := svc.GetProfile(ctx, models.User{ID: 3})
	require.NoError(t, err)
	assert.Equal(t, "bob@x.com", user.Email)
}

func TestUpdateProfile_NameOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users := newTestProfileSvc(ctrl)
	ctx := context.Background()

	users.EXPECT().FindUserByID(ctx, int64(3)).Return(currentUser, nil)
	users.EXPECT().UpdateUser(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.User) (models.User, error) {
			assert.Equal(t, "Robert", u.Name)
			assert.Equal(t, "bob@x.com", u.Email)
			assert.Equal(t, "old-hash", u.Password)
			return u, nil
		})

	user, err := svc.UpdateProfile(ctx, currentUser, models.ProfileUpdateRequest{Name: ptr("Robert")})
	require.NoError(t, err)
	assert.Equal(t, "Robert", user.Name)
}

func TestUpdateProfile_PasswordIsRehashed(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users := newTestProfileSvc(ctrl)
	ctx := context.Background()

	users.EXPECT().FindUserByID(ctx, int64(3)).Return(currentUser, nil)
	users.EXPECT().UpdateUser(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.User) (models.User, error) {
			assert.NotEqual(t, "old-hash", u.Password)
			assert.True(t, utils.ComparePassword(u.Password, "NewPass#1"))
			return u, nil
		})

	_, err := svc.UpdateProfile(ctx, currentUser, models.ProfileUpdateRequest{
		Password:             ptr("NewPass#1"),
		PasswordConfirmation: ptr("NewPass#1"),
	})
	require.NoError(t, err)
}

func TestUpdateProfile_EmailUniqueExcludingSelf(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users := newTestProfileSvc(ctrl)
	ctx := context.Background()

	users.EXPECT().FindUserByID(ctx, int64(3)).Return(currentUser, nil).Times(2)
	users.EXPECT().EmailTaken(ctx, "bob@x.com", int64(3)).Return(false, nil)
	users.EXPECT().UpdateUser(ctx, gomock.Any()).Return(currentUser, nil)
	users.EXPECT().EmailTaken(ctx, "ann@x.com", int64(3)).Return(true, nil)

	_, err := svc.UpdateProfile(ctx, currentUser, models.ProfileUpdateRequest{Email: ptr("bob@x.com")})
	require.NoError(t, err, "keeping the own email is allowed")

	_, err = svc.UpdateProfile(ctx, currentUser, models.ProfileUpdateRequest{Email: ptr("ann@x.com")})
	var errs validators.Errors
	require.True(t, errors.As(err, &errs))
	assert.Equal(t, []string{"The email has already been taken."}, errs[validators.FieldEmail])
}

func TestUpdateProfile_ValidationFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _ := newTestProfileSvc(ctrl)

	_, err := svc.UpdateProfile(context.Background(), currentUser, models.ProfileUpdateRequest{
		Email:    ptr("not-an-email"),
		Password: ptr("NewPass#1"),
	})

	var errs validators.Errors
	require.True(t, errors.As(err, &errs))
	assert.True(t, errs.Has(validators.FieldEmail))
	assert.Contains(t, errs[validators.FieldPassword], "The password confirmation does not match.")
}

func TestUpdateProfile_EmptyRequestChangesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users := newTestProfileSvc(ctrl)
	ctx := context.Background()

	users.EXPECT().FindUserByID(ctx, int64(3)).Return(currentUser, nil)

	user, err := svc.UpdateProfile(ctx, currentUser, models.ProfileUpdateRequest{})
	require.NoError(t, err)
	assert.Equal(t, currentUser, user)
}

func TestUpdateProfile_UniqueViolationOnWrite(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, users := newTestProfileSvc(ctrl)
	ctx := context.Background()

	users.EXPECT().FindUserByID(ctx, int64(3)).Return(currentUser, nil)
	users.EXPECT().EmailTaken(ctx, "ann@x.com", int64(3)).Return(false, nil)
	users.EXPECT().UpdateUser(ctx, gomock.Any()).Return(models.User{}, store.ErrEmailAlreadyExists)

	_, err := svc.UpdateProfile(ctx, currentUser, models.ProfileUpdateRequest{Email: ptr("ann@x.com")})
	assert.ErrorIs(t, err, validators.ErrValidationFailed)
}
