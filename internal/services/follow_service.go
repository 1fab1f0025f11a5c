package services

import (
	"errors"

	"github.com/Cyl94700/P9-Op-Cl/internal/models"
	"github.com/Cyl94700/P9-Op-Cl/internal/validation"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FollowService maintains the directed follow graph. Both "who I follow"
// and "who follows me" are answered from the same edge table.
type FollowService struct {
	db *gorm.DB
}

func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{db: db}
}

// Follow creates an edge from userID to the user named targetUsername.
func (s *FollowService) Follow(userID uuid.UUID, targetUsername string) (*models.Follow, error) {
	var target models.User
	if err := s.db.Where("username = ?", targetUsername).First(&target).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if target.ID == userID {
		verrs := validation.Errors{}
		verrs.Add("username", "you cannot follow yourself")
		return nil, verrs
	}

	var existing models.Follow
	if err := s.db.Where("follower_id = ? AND followed_id = ?", userID, target.ID).First(&existing).Error; err == nil {
		verrs := validation.Errors{}
		verrs.Add("username", "you already follow this user")
		return nil, verrs
	}

	follow := models.Follow{
		FollowerID: userID,
		FollowedID: target.ID,
	}
	if err := s.db.Create(&follow).Error; err != nil {
		return nil, err
	}
	follow.Followed = target
	return &follow, nil
}

// Unfollow removes the edge from userID to targetID.
func (s *FollowService) Unfollow(userID, targetID uuid.UUID) error {
	result := s.db.Where("follower_id = ? AND followed_id = ?", userID, targetID).Delete(&models.Follow{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Following lists the users userID follows.
func (s *FollowService) Following(userID uuid.UUID) ([]models.User, error) {
	var users []models.User
	err := s.db.
		Joins("JOIN follows ON follows.followed_id = users.id").
		Where("follows.follower_id = ?", userID).
		Order("users.username").
		Find(&users).Error
	return users, err
}

// Followers lists the users following userID (reverse lookup on the edge).
func (s *FollowService) Followers(userID uuid.UUID) ([]models.User, error) {
	var users []models.User
	err := s.db.
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followed_id = ?", userID).
		Order("users.username").
		Find(&users).Error
	return users, err
}

// followedIDs returns the ids of everyone userID follows, for feed queries.
func (s *FollowService) followedIDs(userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.db.Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Pluck("followed_id", &ids).Error
	return ids, err
}
