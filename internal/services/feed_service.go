package services

import (
	"sort"
	"time"

	"github.com/Cyl94700/P9-Op-Cl/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FeedPageSize is the fixed number of items per feed page.
const FeedPageSize = 6

// FeedItem is the tagged union the feed is made of: exactly one of Ticket
// or Review is set, and Type says which.
type FeedItem struct {
	Type   string         `json:"type"`
	Ticket *models.Ticket `json:"ticket,omitempty"`
	Review *models.Review `json:"review,omitempty"`
}

func (i FeedItem) CreatedAt() time.Time {
	if i.Ticket != nil {
		return i.Ticket.CreatedAt
	}
	return i.Review.CreatedAt
}

func (i FeedItem) OwnerID() uuid.UUID {
	if i.Ticket != nil {
		return i.Ticket.UserID
	}
	return i.Review.UserID
}

// FeedPage is one page of the merged feed plus the metadata the client
// needs to render pagination controls and the per-kind totals.
type FeedPage struct {
	Items       []FeedItem `json:"items"`
	Page        int        `json:"page"`
	TotalPages  int        `json:"total_pages"`
	TotalItems  int        `json:"total_items"`
	HasNext     bool       `json:"has_next"`
	HasPrev     bool       `json:"has_prev"`
	TicketCount int        `json:"ticket_count"`
	ReviewCount int        `json:"review_count"`
}

// FeedService computes the personalized feed: everything owned by the
// requesting user or by someone they follow, merged across both record
// kinds and sorted newest first.
type FeedService struct {
	db      *gorm.DB
	follows *FollowService
}

func NewFeedService(db *gorm.DB, follows *FollowService) *FeedService {
	return &FeedService{db: db, follows: follows}
}

// GetFeed merges visible tickets and reviews into one reverse-chronological
// page. On identical timestamps the sort is stable, so tickets stay ahead
// of reviews and each kind keeps its created_at DESC, id DESC source order.
func (s *FeedService) GetFeed(userID uuid.UUID, page int) (*FeedPage, error) {
	ownerIDs, err := s.visibleOwners(userID)
	if err != nil {
		return nil, err
	}

	tickets, err := s.visibleTickets(ownerIDs)
	if err != nil {
		return nil, err
	}
	reviews, err := s.visibleReviews(ownerIDs)
	if err != nil {
		return nil, err
	}

	items := make([]FeedItem, 0, len(tickets)+len(reviews))
	for i := range tickets {
		items = append(items, FeedItem{Type: "ticket", Ticket: &tickets[i]})
	}
	for i := range reviews {
		items = append(items, FeedItem{Type: "review", Review: &reviews[i]})
	}

	sort.SliceStable(items, func(a, b int) bool {
		return items[a].CreatedAt().After(items[b].CreatedAt())
	})

	result := paginate(items, page)
	result.TicketCount = len(tickets)
	result.ReviewCount = len(reviews)
	return result, nil
}

// GetTicketFeed is the ticket-only variant: same visibility predicate,
// sort and pagination over a single collection.
func (s *FeedService) GetTicketFeed(userID uuid.UUID, page int) (*FeedPage, error) {
	ownerIDs, err := s.visibleOwners(userID)
	if err != nil {
		return nil, err
	}

	tickets, err := s.visibleTickets(ownerIDs)
	if err != nil {
		return nil, err
	}

	items := make([]FeedItem, 0, len(tickets))
	for i := range tickets {
		items = append(items, FeedItem{Type: "ticket", Ticket: &tickets[i]})
	}

	result := paginate(items, page)
	result.TicketCount = len(tickets)
	return result, nil
}

// GetReviewFeed is the review-only variant.
func (s *FeedService) GetReviewFeed(userID uuid.UUID, page int) (*FeedPage, error) {
	ownerIDs, err := s.visibleOwners(userID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.visibleReviews(ownerIDs)
	if err != nil {
		return nil, err
	}

	items := make([]FeedItem, 0, len(reviews))
	for i := range reviews {
		items = append(items, FeedItem{Type: "review", Review: &reviews[i]})
	}

	result := paginate(items, page)
	result.ReviewCount = len(reviews)
	return result, nil
}

// visibleOwners is the feed's visibility predicate: the user plus everyone
// they follow. The follower side of the edge is never consulted.
func (s *FeedService) visibleOwners(userID uuid.UUID) ([]uuid.UUID, error) {
	ids, err := s.follows.followedIDs(userID)
	if err != nil {
		return nil, err
	}
	return append(ids, userID), nil
}

func (s *FeedService) visibleTickets(ownerIDs []uuid.UUID) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := s.db.Preload("User").
		Where("user_id IN ?", ownerIDs).
		Order("created_at DESC, id DESC").
		Find(&tickets).Error
	return tickets, err
}

func (s *FeedService) visibleReviews(ownerIDs []uuid.UUID) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.Preload("User").Preload("Ticket").Preload("Ticket.User").
		Where("user_id IN ?", ownerIDs).
		Order("created_at DESC, id DESC").
		Find(&reviews).Error
	return reviews, err
}

// paginate slices one page out of the sorted items. Page numbers below 1
// fall back to the first page and numbers past the end clamp to the last
// page; an empty feed still yields one (empty) page.
func paginate(items []FeedItem, page int) *FeedPage {
	total := len(items)
	totalPages := (total + FeedPageSize - 1) / FeedPageSize
	if totalPages == 0 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * FeedPageSize
	end := start + FeedPageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &FeedPage{
		Items:      items[start:end],
		Page:       page,
		TotalPages: totalPages,
		TotalItems: total,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
