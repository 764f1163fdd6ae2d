package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"qrqaema/domain"
	"qrqaema/internal/api/presenters"
	"qrqaema/pkg/user"
)

type (
	UserHandler interface {
		Register(c *fiber.Ctx) error
		Activate(c *fiber.Ctx) error
		Login(c *fiber.Ctx) error
		RequestPasswordReset(c *fiber.Ctx) error
		ConfirmPasswordReset(c *fiber.Ctx) error
		RecoverUsername(c *fiber.Ctx) error
		Me(c *fiber.Ctx) error
		DeleteMe(c *fiber.Ctx) error
	}

	userHandler struct {
		userService user.UserService
		validator   *validator.Validate
	}
)

func NewUserHandler(userService user.UserService, validator *validator.Validate) UserHandler {
	return &userHandler{
		userService: userService,
		validator:   validator,
	}
}

func (h *userHandler) Register(c *fiber.Ctx) error {
	req := new(domain.RegisterRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRegister, err)
	}

	res, err := h.userService.Register(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedRegister, err)
	}
	message := domain.MessageSuccessRegister
	if !res.EmailSent {
		message = domain.MessageRegisterMailNotSent
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, message)
}

func (h *userHandler) Activate(c *fiber.Ctx) error {
	req := new(domain.ActivateRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedActivate, err)
	}

	if err := h.userService.Activate(c.Context(), *req); err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedActivate, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessActivate)
}

func (h *userHandler) Login(c *fiber.Ctx) error {
	req := new(domain.LoginRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedLogin, err)
	}

	res, err := h.userService.Login(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedLogin, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessLogin)
}

func (h *userHandler) RequestPasswordReset(c *fiber.Ctx) error {
	req := new(domain.PasswordResetRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedResetRequest, err)
	}

	if err := h.userService.RequestPasswordReset(c.Context(), *req); err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedResetRequest, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessResetRequest)
}

func (h *userHandler) ConfirmPasswordReset(c *fiber.Ctx) error {
	req := new(domain.PasswordResetConfirmRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedResetConfirm, err)
	}

	if err := h.userService.ConfirmPasswordReset(c.Context(), *req); err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedResetConfirm, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessResetConfirm)
}

func (h *userHandler) RecoverUsername(c *fiber.Ctx) error {
	req := new(domain.UsernameRecoveryRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUsernameRecovery, err)
	}

	if err := h.userService.RecoverUsername(c.Context(), *req); err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedUsernameRecovery, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUsernameRecovery)
}

func (h *userHandler) Me(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetProfile, err)
	}

	res, err := h.userService.Me(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedGetProfile, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetProfile)
}

func (h *userHandler) DeleteMe(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedDeleteAccount, err)
	}

	if err := h.userService.DeleteMe(c.Context(), userID); err != nil {
		return presenters.ErrorResponse(c, errStatus(err), domain.MessageFailedDeleteAccount, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteAccount)
}
