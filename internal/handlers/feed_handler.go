package handlers

import (
	"github.com/Cyl94700/P9-Op-Cl/internal/auth"
	"github.com/Cyl94700/P9-Op-Cl/internal/dto"
	"github.com/Cyl94700/P9-Op-Cl/internal/services"
	"github.com/gofiber/fiber/v2"
)

type FeedHandler struct {
	service *services.FeedService
}

func NewFeedHandler(service *services.FeedService) *FeedHandler {
	return &FeedHandler{service: service}
}

// GetFeed returns the merged ticket+review feed. A missing or non-numeric
// page parameter falls back to the first page.
func (h *FeedHandler) GetFeed(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	page := c.QueryInt("page", 1)

	feed, err := h.service.GetFeed(userID, page)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(feed)
}

func (h *FeedHandler) GetTicketFeed(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	page := c.QueryInt("page", 1)

	feed, err := h.service.GetTicketFeed(userID, page)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(feed)
}

func (h *FeedHandler) GetReviewFeed(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	page := c.QueryInt("page", 1)

	feed, err := h.service.GetReviewFeed(userID, page)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(feed)
}
