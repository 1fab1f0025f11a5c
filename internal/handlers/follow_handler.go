package handlers

import (
	"github.com/Cyl94700/P9-Op-Cl/internal/auth"
	"github.com/Cyl94700/P9-Op-Cl/internal/dto"
	"github.com/Cyl94700/P9-Op-Cl/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type FollowHandler struct {
	service *services.FollowService
}

func NewFollowHandler(service *services.FollowService) *FollowHandler {
	return &FollowHandler{service: service}
}

// List returns both directions of the caller's follow graph.
func (h *FollowHandler) List(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	following, err := h.service.Following(userID)
	if err != nil {
		return respondError(c, err)
	}
	followers, err := h.service.Followers(userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"following": following,
		"followers": followers,
	})
}

// Follow subscribes the caller to another user's content, by username.
func (h *FollowHandler) Follow(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.FollowRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	follow, err := h.service.Follow(userID, req.Username)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "You are now following " + req.Username,
		"follow":  follow,
	})
}

// Unfollow removes the caller's edge to the given user.
func (h *FollowHandler) Unfollow(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid user ID",
		})
	}

	if err := h.service.Unfollow(userID, targetID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Unfollowed"})
}
