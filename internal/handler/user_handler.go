package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"user-service/internal/model"
	"user-service/internal/service"
	"user-service/pkg/logger"
	"user-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AddressRequest carries an optional postal address supplied with a user
type AddressRequest struct {
	ID     uint   `json:"id,omitempty"`
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

// UserRequest defines the structure for user creation/update requests
type UserRequest struct {
	Name       string          `json:"name" validate:"required"`
	Phone      string          `json:"phone"`
	Email      string          `json:"email" validate:"required"`
	Address    *AddressRequest `json:"address,omitempty"`
	LicenseNo  string          `json:"license_no" validate:"required"`
	UserTypeID int             `json:"user_type_id"`
}

// UserResponse defines the structure returned for a single user
type UserResponse struct {
	UserID    uint           `json:"user_id"`
	Name      string         `json:"name"`
	Phone     string         `json:"phone"`
	Email     string         `json:"email"`
	Address   *model.Address `json:"address,omitempty"`
	LicenseNo string         `json:"license_no"`
}

// UserHandler exposes the user lifecycle service over HTTP
type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// CreateUser creates a new user, optionally persisting a supplied address
func (h *UserHandler) CreateUser(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new user")
	prometheus.RecordUserOperation("create")

	var req UserRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	// Required-field presence and type-code validation live here, not in the
	// service
	if err := validateUserRequest(&req); err != nil {
		log.Warn("Rejecting invalid user request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": err.Error(),
		})
	}

	log.Info("User creation request",
		zap.String("name", req.Name),
		zap.String("email", req.Email),
		zap.Int("user_type_id", req.UserTypeID))

	user, err := h.svc.Create(
		c.Request().Context(),
		req.Name,
		req.Phone,
		req.Email,
		toAddress(req.Address),
		req.LicenseNo,
		req.UserTypeID,
	)
	if err != nil {
		if errors.Is(err, model.ErrUnknownUserType) {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "Invalid user type id",
			})
		}
		log.Error("Failed to create user",
			zap.String("name", req.Name),
			zap.String("email", req.Email),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to create user",
		})
	}

	// Refresh active-user gauges off the request path
	go h.updateUserCounts()

	log.Info("User created successfully",
		zap.Uint("user_id", user.ID),
		zap.String("user_type", user.UserType.String()))
	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// GetUser retrieves an active user by ID
func (h *UserHandler) GetUser(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordUserOperation("get")

	id, err := parseUserID(c)
	if err != nil {
		log.Error("Invalid user ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid user ID",
		})
	}

	log.Info("Getting user by ID", zap.Uint("user_id", id))

	user, err := h.svc.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			log.Warn("User not found", zap.Uint("user_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "User not found",
			})
		}
		log.Error("Failed to retrieve user", zap.Uint("user_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve user",
		})
	}

	return c.JSON(http.StatusOK, toUserResponse(user))
}

// ListUsersByType retrieves all active users of one user type
func (h *UserHandler) ListUsersByType(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordUserOperation("list_by_type")

	userTypeID, err := strconv.Atoi(c.Param("userTypeId"))
	if err != nil {
		log.Error("Invalid user type ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid user type id",
		})
	}

	// Reject unknown codes at the boundary. The service itself degrades to an
	// empty result for unknown codes; that leniency stays internal.
	if _, ok := model.UserTypeFromCode(userTypeID); !ok {
		log.Warn("Rejecting unknown user type id", zap.Int("user_type_id", userTypeID))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid user type id",
		})
	}

	log.Info("Listing users by type", zap.Int("user_type_id", userTypeID))

	users, err := h.svc.ListByType(c.Request().Context(), userTypeID)
	if err != nil {
		log.Error("Failed to retrieve users by type",
			zap.Int("user_type_id", userTypeID),
			zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve users",
		})
	}

	log.Info("Users retrieved successfully",
		zap.Int("count", len(users)),
		zap.Int("user_type_id", userTypeID))
	return c.JSON(http.StatusOK, toUserResponses(users))
}

// ListUsers retrieves all active users
func (h *UserHandler) ListUsers(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordUserOperation("list")

	users, err := h.svc.ListAllActive(c.Request().Context())
	if err != nil {
		log.Error("Failed to retrieve users", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve users",
		})
	}

	log.Info("Users retrieved successfully", zap.Int("count", len(users)))
	return c.JSON(http.StatusOK, toUserResponses(users))
}

// UpdateUser replaces every mutable field of an existing active user
func (h *UserHandler) UpdateUser(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordUserOperation("update")

	id, err := parseUserID(c)
	if err != nil {
		log.Error("Invalid user ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid user ID",
		})
	}

	log.Info("Updating user", zap.Uint("user_id", id))

	var req UserRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Uint("user_id", id), zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	user, err := h.svc.Update(
		c.Request().Context(),
		id,
		req.Name,
		req.Phone,
		req.Email,
		toAddress(req.Address),
		req.LicenseNo,
		req.UserTypeID,
	)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrUserNotFound):
			log.Warn("User not found for update", zap.Uint("user_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "User not found",
			})
		case errors.Is(err, model.ErrUnknownUserType):
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "Invalid user type id",
			})
		}
		log.Error("Failed to update user", zap.Uint("user_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to update user",
		})
	}

	go h.updateUserCounts()

	log.Info("User updated successfully", zap.Uint("user_id", user.ID))
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// DeleteUser handles deleting a user (soft delete)
func (h *UserHandler) DeleteUser(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordUserOperation("delete")

	id, err := parseUserID(c)
	if err != nil {
		log.Error("Invalid user ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid user ID",
		})
	}

	log.Info("Deleting user", zap.Uint("user_id", id))

	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			log.Warn("User not found for delete", zap.Uint("user_id", id))
			return c.JSON(http.StatusNotFound, echo.Map{
				"error": "User not found",
			})
		}
		log.Error("Failed to delete user", zap.Uint("user_id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to delete user",
		})
	}

	go h.updateUserCounts()

	log.Info("User deleted successfully", zap.Uint("user_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Record deleted successfully from the database",
	})
}

func parseUserID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func validateUserRequest(req *UserRequest) error {
	if req.Name == "" {
		return errors.New("name is required")
	}
	if req.Email == "" {
		return errors.New("email is required")
	}
	if req.LicenseNo == "" {
		return errors.New("license_no is required")
	}
	if _, ok := model.UserTypeFromCode(req.UserTypeID); !ok {
		return errors.New("user_type_id must be one of 0, 1, 2")
	}
	return nil
}

func toAddress(req *AddressRequest) *model.Address {
	if req == nil {
		return nil
	}
	address := &model.Address{
		Street: req.Street,
		City:   req.City,
		State:  req.State,
		Zip:    req.Zip,
	}
	address.ID = req.ID
	address.Active = true
	return address
}

func toUserResponse(user *model.User) UserResponse {
	return UserResponse{
		UserID:    user.ID,
		Name:      user.Name,
		Phone:     user.Phone,
		Email:     user.Email,
		Address:   user.Address,
		LicenseNo: user.LicenseNo,
	}
}

func toUserResponses(users []model.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, toUserResponse(&users[i]))
	}
	return responses
}

// updateUserCounts refreshes the active-user gauges
func (h *UserHandler) updateUserCounts() {
	ctx := context.Background()

	users, err := h.svc.ListAllActive(ctx)
	if err != nil {
		return
	}
	prometheus.UpdateActiveUsers(len(users))

	perType := map[model.UserType]int{}
	for _, u := range users {
		perType[u.UserType]++
	}
	for _, t := range []model.UserType{model.UserTypeCustomer, model.UserTypeDriver, model.UserTypeAdmin} {
		prometheus.UpdateUsersPerType(t.String(), perType[t])
	}
}
