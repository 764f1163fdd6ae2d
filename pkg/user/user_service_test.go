package user

import (
	"context"
	"errors"
	"mime/multipart"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"qrqaema/domain"
	"qrqaema/entities"
	"qrqaema/pkg/jwt"
)

type fakeMailer struct {
	sent []string
	fail error
}

func (f *fakeMailer) SendMail(to, subject, body string) error {
	if f.fail != nil {
		return f.fail
	}
	f.sent = append(f.sent, to)
	return nil
}

type fakeS3 struct {
	deleted []string
}

func (f *fakeS3) UploadFile(fileName string, file *multipart.FileHeader, folder string, allowedTypes ...string) (string, error) {
	return folder + "/" + fileName, nil
}

func (f *fakeS3) UploadBytes(objectKey string, data []byte, contentType string) (string, error) {
	return objectKey, nil
}

func (f *fakeS3) UpdateFile(objectKey string, file *multipart.FileHeader, allowedTypes ...string) (string, error) {
	return objectKey, nil
}

func (f *fakeS3) DeleteFile(objectKey string) error {
	f.deleted = append(f.deleted, objectKey)
	return nil
}

func (f *fakeS3) DeleteFolder(prefix string) error {
	f.deleted = append(f.deleted, prefix)
	return nil
}

func (f *fakeS3) GetPublicLinkKey(objectKey string) string {
	return "https://cdn.test/" + objectKey
}

func (f *fakeS3) GetObjectKeyFromLink(link string) string {
	return link
}

func setupUserTest(t *testing.T) (*gorm.DB, UserService, *fakeMailer, *fakeS3) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	err = db.AutoMigrate(
		&entities.User{},
		&entities.Restaurant{},
		&entities.Menu{},
		&entities.Table{},
		&entities.Order{},
		&entities.OrderItem{},
		&entities.HelpRequest{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	mailer := &fakeMailer{}
	s3 := &fakeS3{}
	service := NewUserService(NewUserRepository(db), jwt.NewJWTService(), mailer, s3)
	return db, service, mailer, s3
}

func registerReq(username string) domain.RegisterRequest {
	return domain.RegisterRequest{
		Username:       username,
		Email:          username + "@example.com",
		Password:       "supersecret",
		RestaurantName: "Test Kitchen",
	}
}

func TestRegisterCreatesUserRestaurantAndDefaultMenu(t *testing.T) {
	db, service, mailer, _ := setupUserTest(t)
	ctx := context.Background()

	res, err := service.Register(ctx, registerReq("owner"))
	require.NoError(t, err)
	require.NotEmpty(t, res.UserID)
	require.NotEmpty(t, res.RestaurantID)

	var user entities.User
	require.NoError(t, db.First(&user, "username = ?", "owner").Error)
	assert.False(t, user.IsActive)
	assert.NotEqual(t, "supersecret", user.Password)

	var restaurant entities.Restaurant
	require.NoError(t, db.First(&restaurant, "id = ?", res.RestaurantID).Error)
	require.NotNil(t, restaurant.OwnerID)
	assert.Equal(t, user.ID, *restaurant.OwnerID)

	var menu entities.Menu
	require.NoError(t, db.First(&menu, "restaurant_id = ?", res.RestaurantID).Error)
	assert.Equal(t, "en", menu.Language)
	assert.True(t, menu.IsDefault)

	assert.True(t, res.EmailSent)
	assert.Equal(t, []string{"owner@example.com"}, mailer.sent)
}

func TestRegisterSurvivesMailFailure(t *testing.T) {
	db, service, mailer, _ := setupUserTest(t)
	ctx := context.Background()
	mailer.fail = errors.New("smtp unreachable")

	res, err := service.Register(ctx, registerReq("owner"))
	require.NoError(t, err)
	assert.False(t, res.EmailSent)

	// The registration itself stays committed.
	var users, restaurants, menus int64
	require.NoError(t, db.Model(&entities.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&entities.Restaurant{}).Count(&restaurants).Error)
	require.NoError(t, db.Model(&entities.Menu{}).Count(&menus).Error)
	assert.Equal(t, int64(1), users)
	assert.Equal(t, int64(1), restaurants)
	assert.Equal(t, int64(1), menus)
	assert.Empty(t, mailer.sent)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	_, service, _, _ := setupUserTest(t)
	ctx := context.Background()

	_, err := service.Register(ctx, registerReq("owner"))
	require.NoError(t, err)

	dup := registerReq("owner")
	dup.Email = "different@example.com"
	_, err = service.Register(ctx, dup)
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	_, service, _, _ := setupUserTest(t)
	ctx := context.Background()

	_, err := service.Register(ctx, registerReq("owner"))
	require.NoError(t, err)

	dup := registerReq("someoneelse")
	dup.Email = "owner@example.com"
	_, err = service.Register(ctx, dup)
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestLoginRequiresActivation(t *testing.T) {
	db, service, _, _ := setupUserTest(t)
	ctx := context.Background()

	_, err := service.Register(ctx, registerReq("owner"))
	require.NoError(t, err)

	_, err = service.Login(ctx, domain.LoginRequest{Username: "owner", Password: "supersecret"})
	assert.ErrorIs(t, err, domain.ErrAccountNotActive)

	require.NoError(t, db.Model(&entities.User{}).
		Where("username = ?", "owner").
		Update("is_active", true).Error)

	res, err := service.Login(ctx, domain.LoginRequest{Username: "owner", Password: "supersecret"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, domain.RoleOwner, res.Role)
	assert.Len(t, res.Restaurants, 1)
}

func TestLoginWrongPassword(t *testing.T) {
	db, service, _, _ := setupUserTest(t)
	ctx := context.Background()

	_, err := service.Register(ctx, registerReq("owner"))
	require.NoError(t, err)
	require.NoError(t, db.Model(&entities.User{}).
		Where("username = ?", "owner").
		Update("is_active", true).Error)

	_, err = service.Login(ctx, domain.LoginRequest{Username: "owner", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = service.Login(ctx, domain.LoginRequest{Username: "nobody", Password: "supersecret"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestActivateWithGeneratedToken(t *testing.T) {
	_, service, _, _ := setupUserTest(t)
	ctx := context.Background()
	jwtService := jwt.NewJWTService()

	res, err := service.Register(ctx, registerReq("owner"))
	require.NoError(t, err)

	token, err := jwtService.GenerateTokenAction(map[string]any{
		"user_id": res.UserID,
		"purpose": "activate",
	}, time.Hour)
	require.NoError(t, err)

	require.NoError(t, service.Activate(ctx, domain.ActivateRequest{UserID: res.UserID, Token: token}))

	login, err := service.Login(ctx, domain.LoginRequest{Username: "owner", Password: "supersecret"})
	require.NoError(t, err)
	assert.NotEmpty(t, login.Token)
}

func TestActivateRejectsWrongPurpose(t *testing.T) {
	_, service, _, _ := setupUserTest(t)
	ctx := context.Background()
	jwtService := jwt.NewJWTService()

	res, err := service.Register(ctx, registerReq("owner"))
	require.NoError(t, err)

	token, err := jwtService.GenerateTokenAction(map[string]any{
		"user_id": res.UserID,
		"purpose": "reset",
	}, time.Hour)
	require.NoError(t, err)

	err = service.Activate(ctx, domain.ActivateRequest{UserID: res.UserID, Token: token})
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestPasswordResetFlow(t *testing.T) {
	db, service, mailer, _ := setupUserTest(t)
	ctx := context.Background()
	jwtService := jwt.NewJWTService()

	res, err := service.Register(ctx, registerReq("owner"))
	require.NoError(t, err)
	require.NoError(t, db.Model(&entities.User{}).
		Where("username = ?", "owner").
		Update("is_active", true).Error)

	// Unknown emails are silently accepted.
	require.NoError(t, service.RequestPasswordReset(ctx, domain.PasswordResetRequest{Email: "ghost@example.com"}))
	require.NoError(t, service.RequestPasswordReset(ctx, domain.PasswordResetRequest{Email: "owner@example.com"}))
	assert.Len(t, mailer.sent, 2) // activation + reset

	token, err := jwtService.GenerateTokenAction(map[string]any{
		"user_id": res.UserID,
		"purpose": "reset",
	}, time.Hour)
	require.NoError(t, err)

	require.NoError(t, service.ConfirmPasswordReset(ctx, domain.PasswordResetConfirmRequest{
		UserID:      res.UserID,
		Token:       token,
		NewPassword: "evenmoresecret",
	}))

	_, err = service.Login(ctx, domain.LoginRequest{Username: "owner", Password: "supersecret"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = service.Login(ctx, domain.LoginRequest{Username: "owner", Password: "evenmoresecret"})
	assert.NoError(t, err)
}

func TestDeleteMeRemovesOwnedRestaurantsAndAssets(t *testing.T) {
	db, service, _, s3 := setupUserTest(t)
	ctx := context.Background()

	res, err := service.Register(ctx, registerReq("owner"))
	require.NoError(t, err)

	userID := mustUserID(t, res.UserID)
	require.NoError(t, service.DeleteMe(ctx, userID))

	var users, restaurants, menus int64
	require.NoError(t, db.Model(&entities.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&entities.Restaurant{}).Count(&restaurants).Error)
	require.NoError(t, db.Model(&entities.Menu{}).Count(&menus).Error)
	assert.Zero(t, users)
	assert.Zero(t, restaurants)
	assert.Zero(t, menus)

	require.Len(t, s3.deleted, 1)
	assert.Equal(t, "restaurants/"+res.RestaurantID+"/", s3.deleted[0])
}

func mustUserID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	require.NoError(t, err)
	return id
}
