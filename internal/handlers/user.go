package handlers

import (
	"errors"

	"securebank/internal/models"
	"securebank/internal/repositories"
	"securebank/internal/services/user"
	"securebank/internal/utils/response"
	"securebank/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	service user.Service
}

func NewUserHandler(service user.Service) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// RegisterUser handles POST /api/register.
func (h *UserHandler) RegisterUser(c *fiber.Ctx) error {
	var input models.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	v := validation.New()
	v.UserRegistration(&input)
	if !v.Valid() {
		return response.BadRequest(c, v.Errors[0].Error())
	}

	created, err := h.service.Create(&input)
	if err != nil {
		if errors.Is(err, repositories.ErrEmailTaken) {
			return response.BadRequest(c, err.Error())
		}
		return response.InternalError(c, "registration failed")
	}

	created.Password = ""
	return response.Created(c, fiber.Map{
		"message": "user registered successfully",
		"user":    created,
	})
}

// GetUser handles GET /api/users/:id.
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "invalid user id")
	}

	u, err := h.service.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return response.NotFound(c, "user not found")
		}
		return response.InternalError(c, "failed to fetch user")
	}

	u.Password = ""
	return response.Success(c, u)
}

// ListUsers handles GET /api/admin/users.
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if limit > 100 {
		limit = 100
	}

	users, total, err := h.service.List(page, limit)
	if err != nil {
		return response.InternalError(c, "failed to list users")
	}

	for _, u := range users {
		u.Password = ""
	}
	return response.Success(c, fiber.Map{
		"users": users,
		"page":  page,
		"limit": limit,
		"total": total,
	})
}
