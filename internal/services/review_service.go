package services

import (
	"errors"

	"github.com/Cyl94700/P9-Op-Cl/internal/dto"
	"github.com/Cyl94700/P9-Op-Cl/internal/models"
	"github.com/Cyl94700/P9-Op-Cl/internal/validation"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewService handles the review workflows, including the combined
// ticket+review submission. Every write that touches both a review and its
// ticket's has_review flag runs in one transaction.
type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// Create attaches a review to an existing ticket. Any user may review any
// ticket; ownership only restricts edit/delete.
func (s *ReviewService) Create(userID, ticketID uuid.UUID, input *dto.ReviewInput) (*models.Review, error) {
	var ticket models.Ticket
	if err := s.db.First(&ticket, "id = ?", ticketID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if verrs := validation.Struct(input); verrs != nil {
		return nil, verrs
	}

	review := models.Review{
		Rating:   input.Rating,
		Headline: input.Headline,
		Body:     input.Body,
		UserID:   userID,
		TicketID: ticket.ID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		return tx.Model(&models.Ticket{}).Where("id = ?", ticket.ID).
			Update("has_review", true).Error
	})
	if err != nil {
		return nil, err
	}

	review.Ticket = ticket
	review.Ticket.HasReview = true
	return &review, nil
}

// CreateWithTicket is the one-submission flow: both inputs are validated
// before anything is persisted; if either fails, both error sets come back
// and nothing is written. The ticket is born with has_review already true.
func (s *ReviewService) CreateWithTicket(userID uuid.UUID, input *dto.TicketAndReviewInput) (*models.Ticket, *models.Review, error) {
	verrs := validation.Errors{}
	if e := validation.Struct(&input.Ticket); e != nil {
		verrs.Merge("ticket", e)
	}
	if e := validation.Struct(&input.Review); e != nil {
		verrs.Merge("review", e)
	}
	if len(verrs) > 0 {
		return nil, nil, verrs
	}

	ticket := models.Ticket{
		Title:       input.Ticket.Title,
		Description: input.Ticket.Description,
		Image:       input.Ticket.Image,
		HasReview:   true,
		UserID:      userID,
	}
	review := models.Review{
		Rating:   input.Review.Rating,
		Headline: input.Review.Headline,
		Body:     input.Review.Body,
		UserID:   userID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&ticket).Error; err != nil {
			return err
		}
		review.TicketID = ticket.ID
		return tx.Create(&review).Error
	})
	if err != nil {
		return nil, nil, err
	}

	review.Ticket = ticket
	return &ticket, &review, nil
}

func (s *ReviewService) Get(reviewID uuid.UUID) (*models.Review, error) {
	var review models.Review
	if err := s.db.Preload("User").Preload("Ticket").Preload("Ticket.User").First(&review, "id = ?", reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}

// Update overwrites rating, headline and body. Owner, ticket link and
// creation time never change.
func (s *ReviewService) Update(userID, reviewID uuid.UUID, input *dto.ReviewInput) (*models.Review, error) {
	var review models.Review
	if err := s.db.First(&review, "id = ?", reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if review.UserID != userID {
		return nil, ErrForbidden
	}

	if verrs := validation.Struct(input); verrs != nil {
		return nil, verrs
	}

	updates := map[string]interface{}{
		"rating":   input.Rating,
		"headline": input.Headline,
		"body":     input.Body,
	}
	if err := s.db.Model(&review).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

// Delete removes the review and, when it was the ticket's last one, resets
// the ticket's has_review flag in the same transaction.
func (s *ReviewService) Delete(userID, reviewID uuid.UUID) error {
	var review models.Review
	if err := s.db.First(&review, "id = ?", reviewID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if review.UserID != userID {
		return ErrForbidden
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&review).Error; err != nil {
			return err
		}

		var remaining int64
		if err := tx.Model(&models.Review{}).Where("ticket_id = ?", review.TicketID).Count(&remaining).Error; err != nil {
			return err
		}
		if remaining == 0 {
			return tx.Model(&models.Ticket{}).Where("id = ?", review.TicketID).
				Update("has_review", false).Error
		}
		return nil
	})
}
