package handlers

import (
	"github.com/Cyl94700/P9-Op-Cl/internal/auth"
	"github.com/Cyl94700/P9-Op-Cl/internal/dto"
	"github.com/Cyl94700/P9-Op-Cl/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type TicketHandler struct {
	service *services.TicketService
	images  *services.ImageStore
}

func NewTicketHandler(service *services.TicketService, images *services.ImageStore) *TicketHandler {
	return &TicketHandler{service: service, images: images}
}

// parseTicketInput reads the multipart form fields and, when an image was
// attached, stores it and records the path on the input.
func (h *TicketHandler) parseTicketInput(c *fiber.Ctx) (*dto.TicketInput, error) {
	var input dto.TicketInput
	if err := c.BodyParser(&input); err != nil {
		return nil, err
	}

	if file, err := c.FormFile("image"); err == nil && file != nil {
		name, err := h.images.Save(file)
		if err != nil {
			return nil, err
		}
		input.Image = name
	}

	return &input, nil
}

func (h *TicketHandler) Create(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	input, err := h.parseTicketInput(c)
	if err != nil {
		return respondError(c, err)
	}

	ticket, err := h.service.Create(userID, input)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Your ticket has been created",
		"ticket":  ticket,
	})
}

func (h *TicketHandler) Get(c *fiber.Ctx) error {
	ticketID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid ticket ID",
		})
	}

	ticket, err := h.service.Get(ticketID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"ticket": ticket})
}

func (h *TicketHandler) Update(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	ticketID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid ticket ID",
		})
	}

	input, err := h.parseTicketInput(c)
	if err != nil {
		return respondError(c, err)
	}

	ticket, err := h.service.Update(userID, ticketID, input)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Your ticket has been updated",
		"ticket":  ticket,
	})
}

func (h *TicketHandler) Delete(c *fiber.Ctx) error {
	userID, err := auth.UserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	ticketID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid ticket ID",
		})
	}

	if err := h.service.Delete(userID, ticketID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Your ticket has been deleted"})
}
