package services

import (
	"errors"

	"github.com/Cyl94700/P9-Op-Cl/internal/dto"
	"github.com/Cyl94700/P9-Op-Cl/internal/models"
	"github.com/Cyl94700/P9-Op-Cl/internal/validation"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TicketService handles the ticket workflows: create, edit, delete.
// Only the owner may edit or delete; anyone may read.
type TicketService struct {
	db *gorm.DB
}

func NewTicketService(db *gorm.DB) *TicketService {
	return &TicketService{db: db}
}

func (s *TicketService) Create(userID uuid.UUID, input *dto.TicketInput) (*models.Ticket, error) {
	if verrs := validation.Struct(input); verrs != nil {
		return nil, verrs
	}

	ticket := models.Ticket{
		Title:       input.Title,
		Description: input.Description,
		Image:       input.Image,
		HasReview:   false,
		UserID:      userID,
	}

	if err := s.db.Create(&ticket).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (s *TicketService) Get(ticketID uuid.UUID) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := s.db.Preload("User").First(&ticket, "id = ?", ticketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

// Update overwrites the mutable fields. Owner and creation time never change.
func (s *TicketService) Update(userID, ticketID uuid.UUID, input *dto.TicketInput) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := s.db.First(&ticket, "id = ?", ticketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if ticket.UserID != userID {
		return nil, ErrForbidden
	}

	if verrs := validation.Struct(input); verrs != nil {
		return nil, verrs
	}

	updates := map[string]interface{}{
		"title":       input.Title,
		"description": input.Description,
	}
	if input.Image != "" {
		updates["image"] = input.Image
	}
	if err := s.db.Model(&ticket).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

// Delete removes the ticket and cascades to its reviews in one transaction,
// so no review is left pointing at a missing ticket.
func (s *TicketService) Delete(userID, ticketID uuid.UUID) error {
	var ticket models.Ticket
	if err := s.db.First(&ticket, "id = ?", ticketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if ticket.UserID != userID {
		return ErrForbidden
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ticket_id = ?", ticketID).Delete(&models.Review{}).Error; err != nil {
			return err
		}
		return tx.Delete(&ticket).Error
	})
}
