package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cyl94700/P9-Op-Cl/internal/dto"
	"github.com/Cyl94700/P9-Op-Cl/internal/models"
	"github.com/Cyl94700/P9-Op-Cl/internal/validation"
)

func TestReviewService_Create(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	t.Run("review flips the ticket's has_review flag", func(t *testing.T) {
		ticket := createTestTicket(t, db, alice.ID, "Dune", time.Now())
		require.False(t, ticket.HasReview)

		review, err := svc.Create(bob.ID, ticket.ID, &dto.ReviewInput{
			Rating:   4,
			Headline: "A classic",
		})
		require.NoError(t, err)
		assert.Equal(t, bob.ID, review.UserID)
		assert.Equal(t, ticket.ID, review.TicketID)

		var stored models.Ticket
		require.NoError(t, db.First(&stored, "id = ?", ticket.ID).Error)
		assert.True(t, stored.HasReview)
	})

	t.Run("anyone may review someone else's ticket", func(t *testing.T) {
		ticket := createTestTicket(t, db, alice.ID, "Not mine", time.Now())
		_, err := svc.Create(bob.ID, ticket.ID, &dto.ReviewInput{Rating: 2, Headline: "meh"})
		assert.NoError(t, err)
	})

	t.Run("unknown ticket is not found", func(t *testing.T) {
		_, err := svc.Create(bob.ID, uuid.New(), &dto.ReviewInput{Rating: 3, Headline: "x"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("rating bounds", func(t *testing.T) {
		ticket := createTestTicket(t, db, alice.ID, "Bounds", time.Now())

		for _, rating := range []int{0, 5} {
			_, err := svc.Create(bob.ID, ticket.ID, &dto.ReviewInput{Rating: rating, Headline: "ok"})
			assert.NoError(t, err, "boundary rating %d must be accepted", rating)
		}

		for _, rating := range []int{-1, 6} {
			_, err := svc.Create(bob.ID, ticket.ID, &dto.ReviewInput{Rating: rating, Headline: "ok"})
			var verrs validation.Errors
			require.ErrorAs(t, err, &verrs, "rating %d must be rejected", rating)
			assert.Contains(t, verrs, "rating")
		}
	})

	t.Run("missing headline rejected, nothing persisted", func(t *testing.T) {
		ticket := createTestTicket(t, db, alice.ID, "No headline", time.Now())
		_, err := svc.Create(bob.ID, ticket.ID, &dto.ReviewInput{Rating: 3})
		var verrs validation.Errors
		require.ErrorAs(t, err, &verrs)

		var count int64
		db.Model(&models.Review{}).Where("ticket_id = ?", ticket.ID).Count(&count)
		assert.Zero(t, count)

		var stored models.Ticket
		require.NoError(t, db.First(&stored, "id = ?", ticket.ID).Error)
		assert.False(t, stored.HasReview, "flag must not flip on a failed create")
	})
}

func TestReviewService_CreateWithTicket(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(db)
	alice := createTestUser(t, db, "alice")

	t.Run("creates both records with has_review already true", func(t *testing.T) {
		ticket, review, err := svc.CreateWithTicket(alice.ID, &dto.TicketAndReviewInput{
			Ticket: dto.TicketInput{Title: "Dune"},
			Review: dto.ReviewInput{Rating: 5, Headline: "Masterpiece"},
		})
		require.NoError(t, err)
		assert.True(t, ticket.HasReview)
		assert.Equal(t, ticket.ID, review.TicketID)
		assert.Equal(t, alice.ID, ticket.UserID)
		assert.Equal(t, alice.ID, review.UserID)
	})

	t.Run("either side invalid persists nothing and reports both", func(t *testing.T) {
		_, _, err := svc.CreateWithTicket(alice.ID, &dto.TicketAndReviewInput{
			Ticket: dto.TicketInput{Title: ""},
			Review: dto.ReviewInput{Rating: 4, Headline: ""},
		})
		var verrs validation.Errors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs, "ticket.title")
		assert.Contains(t, verrs, "review.headline")

		var tickets, reviews int64
		db.Model(&models.Ticket{}).Count(&tickets)
		db.Model(&models.Review{}).Count(&reviews)
		assert.Equal(t, int64(1), tickets, "only the ticket from the previous subtest")
		assert.Equal(t, int64(1), reviews)
	})

	t.Run("valid ticket with invalid review persists nothing", func(t *testing.T) {
		_, _, err := svc.CreateWithTicket(alice.ID, &dto.TicketAndReviewInput{
			Ticket: dto.TicketInput{Title: "Valid"},
			Review: dto.ReviewInput{Rating: 9, Headline: "x"},
		})
		var verrs validation.Errors
		require.ErrorAs(t, err, &verrs)

		var count int64
		db.Model(&models.Ticket{}).Where("title = ?", "Valid").Count(&count)
		assert.Zero(t, count)
	})
}

func TestReviewService_Update(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	ticket := createTestTicket(t, db, alice.ID, "T", time.Now())
	review := createTestReview(t, db, alice.ID, ticket.ID, "First take", time.Now())

	t.Run("owner can edit", func(t *testing.T) {
		updated, err := svc.Update(alice.ID, review.ID, &dto.ReviewInput{
			Rating: 1, Headline: "Second thoughts",
		})
		require.NoError(t, err)
		assert.Equal(t, 1, updated.Rating)
		assert.Equal(t, ticket.ID, updated.TicketID, "ticket link is immutable")
	})

	t.Run("non-owner gets forbidden and the record is unchanged", func(t *testing.T) {
		_, err := svc.Update(bob.ID, review.ID, &dto.ReviewInput{Rating: 5, Headline: "Hijack"})
		assert.ErrorIs(t, err, ErrForbidden)

		var stored models.Review
		require.NoError(t, db.First(&stored, "id = ?", review.ID).Error)
		assert.Equal(t, "Second thoughts", stored.Headline)
	})

	t.Run("out of range rating rejected on edit", func(t *testing.T) {
		_, err := svc.Update(alice.ID, review.ID, &dto.ReviewInput{Rating: 6, Headline: "x"})
		var verrs validation.Errors
		assert.ErrorAs(t, err, &verrs)
	})
}

func TestReviewService_Delete(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReviewService(db)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	t.Run("deleting the last review resets has_review", func(t *testing.T) {
		ticket := createTestTicket(t, db, alice.ID, "T", time.Now())
		review, err := svc.Create(bob.ID, ticket.ID, &dto.ReviewInput{Rating: 4, Headline: "r"})
		require.NoError(t, err)

		require.NoError(t, svc.Delete(bob.ID, review.ID))

		var stored models.Ticket
		require.NoError(t, db.First(&stored, "id = ?", ticket.ID).Error)
		assert.False(t, stored.HasReview)
	})

	t.Run("flag stays set while other reviews remain", func(t *testing.T) {
		ticket := createTestTicket(t, db, alice.ID, "T2", time.Now())
		first, err := svc.Create(bob.ID, ticket.ID, &dto.ReviewInput{Rating: 4, Headline: "a"})
		require.NoError(t, err)
		_, err = svc.Create(alice.ID, ticket.ID, &dto.ReviewInput{Rating: 2, Headline: "b"})
		require.NoError(t, err)

		require.NoError(t, svc.Delete(bob.ID, first.ID))

		var stored models.Ticket
		require.NoError(t, db.First(&stored, "id = ?", ticket.ID).Error)
		assert.True(t, stored.HasReview)
	})

	t.Run("non-owner cannot delete", func(t *testing.T) {
		ticket := createTestTicket(t, db, alice.ID, "T3", time.Now())
		review := createTestReview(t, db, alice.ID, ticket.ID, "mine", time.Now())

		assert.ErrorIs(t, svc.Delete(bob.ID, review.ID), ErrForbidden)

		var count int64
		db.Model(&models.Review{}).Where("id = ?", review.ID).Count(&count)
		assert.Equal(t, int64(1), count)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		assert.ErrorIs(t, svc.Delete(alice.ID, uuid.New()), ErrNotFound)
	})
}
