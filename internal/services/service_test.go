package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Cyl94700/P9-Op-Cl/internal/config"
	"github.com/Cyl94700/P9-Op-Cl/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Follow{},
		&models.Ticket{},
		&models.Review{},
	)
	require.NoError(t, err)

	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 168 * time.Hour,
	}
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		Password:     "hashed",
		ProfilePhoto: models.DefaultProfilePhoto,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestTicket(t *testing.T, db *gorm.DB, owner uuid.UUID, title string, createdAt time.Time) *models.Ticket {
	ticket := &models.Ticket{
		Title:     title,
		UserID:    owner,
		CreatedAt: createdAt,
	}
	require.NoError(t, db.Create(ticket).Error)
	return ticket
}

func createTestReview(t *testing.T, db *gorm.DB, owner uuid.UUID, ticketID uuid.UUID, headline string, createdAt time.Time) *models.Review {
	review := &models.Review{
		Rating:    4,
		Headline:  headline,
		UserID:    owner,
		TicketID:  ticketID,
		CreatedAt: createdAt,
	}
	require.NoError(t, db.Create(review).Error)
	return review
}

func followEdge(t *testing.T, db *gorm.DB, follower, followed uuid.UUID) {
	require.NoError(t, db.Create(&models.Follow{
		FollowerID: follower,
		FollowedID: followed,
	}).Error)
}
