package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/artem13815/useraccount/api/http/presenter"
	"github.com/artem13815/useraccount/pkg/security/basic"
	"github.com/artem13815/useraccount/pkg/user"
)

// TimestampLayout renders account timestamps as ISO-8601 with offset.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// serverOwnedFields may never appear in an update payload.
var serverOwnedFields = []string{"id", "email", "account_created", "account_updated", "accountCreated", "accountUpdated"}

type UserHandler struct {
	useCase user.UseCase
	loc     *time.Location
	log     *zap.Logger
}

func NewUserHandler(useCase user.UseCase, loc *time.Location, log *zap.Logger) *UserHandler {
	return &UserHandler{useCase: useCase, loc: loc, log: log}
}

type userResponse struct {
	ID             string `json:"id"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	AccountCreated string `json:"account_created"`
	AccountUpdated string `json:"account_updated"`
}

type createUserRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type updateUserRequest struct {
	Password  string `json:"password,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}

func (h *UserHandler) render(u user.User) userResponse {
	return userResponse{
		ID:             u.ID.String(),
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Email:          u.Email,
		AccountCreated: u.AccountCreated.In(h.loc).Format(TimestampLayout),
		AccountUpdated: u.AccountUpdated.In(h.loc).Format(TimestampLayout),
	}
}

// Create handles user registration.
// @Summary Create user
// @Tags    user
// @Accept  json
// @Produce json
// @Param   input body createUserRequest true "registration payload"
// @Success 201 {object} userResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 422 {object} presenter.ErrorResponse
// @Router  /v1/user [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	p, err := parsePayload(c)
	if err != nil {
		return h.payloadError(c, err)
	}

	var in user.NewUser
	for _, f := range []struct {
		key string
		dst *string
	}{
		{"firstName", &in.FirstName},
		{"lastName", &in.LastName},
		{"password", &in.Password},
		{"email", &in.Email},
	} {
		v, _, err := p.str(f.key)
		if err != nil {
			return h.validationError(c, err)
		}
		*f.dst = v
	}

	created, err := h.useCase.Register(c.UserContext(), in)
	if err != nil {
		var verr *user.ValidationError
		switch {
		case errors.As(err, &verr):
			return h.validationError(c, verr)
		case errors.Is(err, user.ErrUserAlreadyExists):
			return presenter.Error(c, http.StatusBadRequest, "User already exists")
		default:
			h.log.Error("create user", zap.Error(err))
			return presenter.Error(c, http.StatusInternalServerError, "Error creating user")
		}
	}
	return presenter.JSON(c, http.StatusCreated, h.render(created))
}

// GetSelf returns the authenticated user.
// @Summary Get own account
// @Tags    user
// @Produce json
// @Security BasicCredentials
// @Success 200 {object} userResponse
// @Failure 400
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /v1/user/self [get]
func (h *UserHandler) GetSelf(c *fiber.Ctx) error {
	if hasQueryOrBody(c) {
		return presenter.Empty(c, http.StatusBadRequest)
	}
	u, ok := basic.CurrentUser(c)
	if !ok {
		return presenter.Empty(c, http.StatusUnauthorized)
	}
	return presenter.JSON(c, http.StatusOK, h.render(u))
}

// UpdateSelf changes the authenticated user's names and/or password.
// @Summary Update own account
// @Tags    user
// @Accept  json
// @Param   input body updateUserRequest true "fields to change"
// @Security BasicCredentials
// @Success 204
// @Failure 400
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 422 {object} presenter.ErrorResponse
// @Router  /v1/user/self [put]
func (h *UserHandler) UpdateSelf(c *fiber.Ctx) error {
	current, ok := basic.CurrentUser(c)
	if !ok {
		return presenter.Empty(c, http.StatusUnauthorized)
	}
	p, err := parsePayload(c)
	if err != nil {
		return h.payloadError(c, err)
	}
	for _, key := range serverOwnedFields {
		if p.has(key) {
			return presenter.Empty(c, http.StatusBadRequest)
		}
	}

	var changes user.Changes
	for _, f := range []struct {
		key string
		dst **string
	}{
		{"firstName", &changes.FirstName},
		{"lastName", &changes.LastName},
		{"password", &changes.Password},
	} {
		v, present, err := p.str(f.key)
		if err != nil {
			return h.validationError(c, err)
		}
		if present {
			*f.dst = &v
		}
	}

	if _, err := h.useCase.Update(c.UserContext(), current, changes); err != nil {
		var verr *user.ValidationError
		if errors.As(err, &verr) {
			return h.validationError(c, verr)
		}
		h.log.Error("update user", zap.String("user_id", current.ID.String()), zap.Error(err))
		return presenter.Error(c, http.StatusInternalServerError, "Error updating user")
	}
	return presenter.Empty(c, http.StatusNoContent)
}

func (h *UserHandler) payloadError(c *fiber.Ctx, err error) error {
	if errors.Is(err, errInvalidJSON) {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	return presenter.Error(c, http.StatusUnprocessableEntity, "Request body is empty")
}

func (h *UserHandler) validationError(c *fiber.Ctx, err error) error {
	return presenter.Error(c, http.StatusUnprocessableEntity, err.Error())
}
