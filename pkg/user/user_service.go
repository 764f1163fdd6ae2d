package user

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"qrqaema/domain"
	"qrqaema/entities"
	"qrqaema/internal/utils"
	"qrqaema/internal/utils/mailing"
	"qrqaema/internal/utils/storage"
	"qrqaema/pkg/jwt"
)

const (
	purposeActivate = "activate"
	purposeReset    = "reset"

	activationTokenTTL = 48 * time.Hour
	resetTokenTTL      = 1 * time.Hour
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error)
		Activate(ctx context.Context, req domain.ActivateRequest) error
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		RequestPasswordReset(ctx context.Context, req domain.PasswordResetRequest) error
		ConfirmPasswordReset(ctx context.Context, req domain.PasswordResetConfirmRequest) error
		RecoverUsername(ctx context.Context, req domain.UsernameRecoveryRequest) error
		Me(ctx context.Context, userID uuid.UUID) (domain.ProfileResponse, error)
		DeleteMe(ctx context.Context, userID uuid.UUID) error
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
		mailer         mailing.Mailer
		s3             storage.AwsS3
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService, mailer mailing.Mailer, s3 storage.AwsS3) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
		mailer:         mailer,
		s3:             s3,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error) {
	if _, err := s.userRepository.GetByUsername(ctx, req.Username); err == nil {
		return domain.RegisterResponse{}, domain.ErrUsernameTaken
	}
	if _, err := s.userRepository.GetByEmail(ctx, req.Email); err == nil {
		return domain.RegisterResponse{}, domain.ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.RegisterResponse{}, err
	}

	user := &entities.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
		IsActive: false,
	}
	restaurant := &entities.Restaurant{
		Name: req.RestaurantName,
	}
	defaultMenu := &entities.Menu{
		Name:     req.RestaurantName,
		Language: "en",
	}

	if err := s.userRepository.CreateWithRestaurant(ctx, user, restaurant, defaultMenu); err != nil {
		return domain.RegisterResponse{}, err
	}

	res := domain.RegisterResponse{
		UserID:       user.ID.String(),
		RestaurantID: restaurant.ID.String(),
		EmailSent:    true,
	}

	// Delivery failure must not undo the registration; the rows stay
	// committed and the caller is told the mail did not go out.
	if err := s.sendActivationMail(user); err != nil {
		log.Printf("activation mail for %s failed: %v", user.Username, err)
		res.EmailSent = false
	}
	return res, nil
}

func (s *userService) sendActivationMail(user *entities.User) error {
	token, err := s.jwtService.GenerateTokenAction(map[string]any{
		"user_id": user.ID.String(),
		"purpose": purposeActivate,
	}, activationTokenTTL)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%sactivate/%s/%s", frontendBase(), user.ID.String(), token)
	body := fmt.Sprintf(
		"<p>Welcome to QrQaema, %s!</p><p>Activate your account by clicking <a href=%q>here</a>.</p>",
		user.Username, link,
	)
	return mailing.SendWithRetry(s.mailer, user.Email, "Activate your account", body)
}

func (s *userService) Activate(ctx context.Context, req domain.ActivateRequest) error {
	claims, err := s.jwtService.ValidateTokenAction(req.Token)
	if err != nil {
		return err
	}
	if claims["purpose"] != purposeActivate || claims["user_id"] != req.UserID {
		return domain.ErrTokenInvalid
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return domain.ErrParseUUID
	}
	return s.userRepository.Activate(ctx, userID)
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.LoginResponse{}, domain.ErrInvalidCredentials
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return domain.LoginResponse{}, domain.ErrAccountNotActive
	}

	restaurantIDs, role, err := s.membership(ctx, user.ID)
	if err != nil {
		return domain.LoginResponse{}, err
	}

	token := s.jwtService.GenerateTokenUser(user.ID.String(), role, user.IsSuperuser)
	return domain.LoginResponse{
		Token:       token,
		UserID:      user.ID.String(),
		Username:    user.Username,
		Role:        role,
		IsSuperuser: user.IsSuperuser,
		Restaurants: restaurantIDs,
	}, nil
}

func (s *userService) membership(ctx context.Context, userID uuid.UUID) ([]string, string, error) {
	owned, err := s.userRepository.OwnedRestaurants(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	staffed, err := s.userRepository.StaffedRestaurants(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	role := domain.RoleStaff
	if len(owned) > 0 {
		role = domain.RoleOwner
	}

	ids := make([]string, 0, len(owned)+len(staffed))
	seen := make(map[uuid.UUID]bool, len(owned))
	for _, restaurant := range owned {
		seen[restaurant.ID] = true
		ids = append(ids, restaurant.ID.String())
	}
	for _, restaurant := range staffed {
		if !seen[restaurant.ID] {
			ids = append(ids, restaurant.ID.String())
		}
	}
	return ids, role, nil
}

// RequestPasswordReset never reveals whether the email is registered.
func (s *userService) RequestPasswordReset(ctx context.Context, req domain.PasswordResetRequest) error {
	user, err := s.userRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return err
	}

	token, err := s.jwtService.GenerateTokenAction(map[string]any{
		"user_id": user.ID.String(),
		"purpose": purposeReset,
	}, resetTokenTTL)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%sreset-password/%s/%s", frontendBase(), user.ID.String(), token)
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Reset your password by clicking <a href=%q>here</a>. The link expires in one hour.</p>",
		user.Username, link,
	)
	if err := mailing.SendWithRetry(s.mailer, user.Email, "Reset your password", body); err != nil {
		return domain.ErrEmailDelivery
	}
	return nil
}

func (s *userService) ConfirmPasswordReset(ctx context.Context, req domain.PasswordResetConfirmRequest) error {
	claims, err := s.jwtService.ValidateTokenAction(req.Token)
	if err != nil {
		return domain.ErrInvalidResetToken
	}
	if claims["purpose"] != purposeReset || claims["user_id"] != req.UserID {
		return domain.ErrInvalidResetToken
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return domain.ErrParseUUID
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.userRepository.UpdatePassword(ctx, userID, string(hashed))
}

func (s *userService) RecoverUsername(ctx context.Context, req domain.UsernameRecoveryRequest) error {
	user, err := s.userRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return err
	}

	body := fmt.Sprintf("<p>Your username is <b>%s</b>.</p>", user.Username)
	if err := mailing.SendWithRetry(s.mailer, user.Email, "Your username", body); err != nil {
		return domain.ErrEmailDelivery
	}
	return nil
}

func (s *userService) Me(ctx context.Context, userID uuid.UUID) (domain.ProfileResponse, error) {
	user, err := s.userRepository.GetByID(ctx, userID)
	if err != nil {
		return domain.ProfileResponse{}, err
	}

	restaurantIDs, _, err := s.membership(ctx, userID)
	if err != nil {
		return domain.ProfileResponse{}, err
	}

	return domain.ProfileResponse{
		ID:          user.ID.String(),
		Username:    user.Username,
		Email:       user.Email,
		IsSuperuser: user.IsSuperuser,
		Restaurants: restaurantIDs,
	}, nil
}

// DeleteMe removes the account and every restaurant it owns, including
// their stored assets.
func (s *userService) DeleteMe(ctx context.Context, userID uuid.UUID) error {
	owned, err := s.userRepository.OwnedRestaurants(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.userRepository.Delete(ctx, userID); err != nil {
		return err
	}
	for _, restaurant := range owned {
		prefix := fmt.Sprintf("restaurants/%s/", restaurant.ID.String())
		if err := s.s3.DeleteFolder(prefix); err != nil {
			log.Printf("asset cleanup for restaurant %s failed: %v", restaurant.ID, err)
		}
	}
	return nil
}

func frontendBase() string {
	base := utils.GetConfig("FRONTEND_URL")
	if base != "" && base[len(base)-1] != '/' {
		base += "/"
	}
	return base
}
