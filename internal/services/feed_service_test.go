package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedService_Visibility(t *testing.T) {
	db := setupTestDB(t)
	feed := NewFeedService(db, NewFollowService(db))

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	carol := createTestUser(t, db, "carol")

	// Alice follows Bob, nobody follows Carol.
	followEdge(t, db, alice.ID, bob.ID)

	now := time.Now()
	own := createTestTicket(t, db, alice.ID, "Alice's ticket", now.Add(-1*time.Minute))
	followed := createTestTicket(t, db, bob.ID, "Dune", now.Add(-2*time.Minute))
	hidden := createTestTicket(t, db, carol.ID, "Carol's ticket", now.Add(-3*time.Minute))

	t.Run("own and followed content is visible", func(t *testing.T) {
		page, err := feed.GetFeed(alice.ID, 1)
		require.NoError(t, err)

		ids := make(map[string]bool)
		for _, item := range page.Items {
			ids[item.Ticket.ID.String()] = true
		}
		assert.True(t, ids[own.ID.String()])
		assert.True(t, ids[followed.ID.String()])
		assert.False(t, ids[hidden.ID.String()])
		assert.Equal(t, 2, page.TotalItems)
	})

	t.Run("followers do not see back into the follower", func(t *testing.T) {
		// Bob does not follow Alice, so Bob sees only his own ticket.
		page, err := feed.GetFeed(bob.ID, 1)
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, followed.ID, page.Items[0].Ticket.ID)
	})

	t.Run("reviews follow the same predicate", func(t *testing.T) {
		createTestReview(t, db, carol.ID, hidden.ID, "hidden review", now)
		visible := createTestReview(t, db, bob.ID, followed.ID, "visible review", now)

		page, err := feed.GetFeed(alice.ID, 1)
		require.NoError(t, err)

		var reviewIDs []string
		for _, item := range page.Items {
			if item.Type == "review" {
				reviewIDs = append(reviewIDs, item.Review.ID.String())
			}
		}
		assert.Equal(t, []string{visible.ID.String()}, reviewIDs)
	})
}

func TestFeedService_Ordering(t *testing.T) {
	db := setupTestDB(t)
	feed := NewFeedService(db, NewFollowService(db))

	alice := createTestUser(t, db, "alice")

	base := time.Now().Add(-time.Hour)
	oldTicket := createTestTicket(t, db, alice.ID, "old", base)
	newTicket := createTestTicket(t, db, alice.ID, "new", base.Add(30*time.Minute))
	review := createTestReview(t, db, alice.ID, oldTicket.ID, "middle", base.Add(15*time.Minute))

	page, err := feed.GetFeed(alice.ID, 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 3)

	assert.Equal(t, newTicket.ID, page.Items[0].Ticket.ID)
	assert.Equal(t, review.ID, page.Items[1].Review.ID)
	assert.Equal(t, oldTicket.ID, page.Items[2].Ticket.ID)

	for i := 1; i < len(page.Items); i++ {
		assert.False(t, page.Items[i-1].CreatedAt().Before(page.Items[i].CreatedAt()),
			"items must be in non-increasing created_at order")
	}
}

func TestFeedService_EqualTimestampsKeepTicketsFirst(t *testing.T) {
	db := setupTestDB(t)
	feed := NewFeedService(db, NewFollowService(db))

	alice := createTestUser(t, db, "alice")
	ts := time.Now().Truncate(time.Second)
	ticket := createTestTicket(t, db, alice.ID, "same instant", ts)
	createTestReview(t, db, alice.ID, ticket.ID, "same instant too", ts)

	page, err := feed.GetFeed(alice.ID, 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "ticket", page.Items[0].Type)
	assert.Equal(t, "review", page.Items[1].Type)
}

func TestFeedService_Pagination(t *testing.T) {
	db := setupTestDB(t)
	feed := NewFeedService(db, NewFollowService(db))

	alice := createTestUser(t, db, "alice")
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 14; i++ {
		createTestTicket(t, db, alice.ID, "ticket", base.Add(time.Duration(i)*time.Minute))
	}

	t.Run("page math for 14 items", func(t *testing.T) {
		page, err := feed.GetFeed(alice.ID, 1)
		require.NoError(t, err)
		assert.Len(t, page.Items, 6)
		assert.Equal(t, 3, page.TotalPages)
		assert.Equal(t, 14, page.TotalItems)
		assert.True(t, page.HasNext)
		assert.False(t, page.HasPrev)

		last, err := feed.GetFeed(alice.ID, 3)
		require.NoError(t, err)
		assert.Len(t, last.Items, 2)
		assert.False(t, last.HasNext)
		assert.True(t, last.HasPrev)
	})

	t.Run("adjacent pages never repeat items", func(t *testing.T) {
		seen := make(map[string]bool)
		for p := 1; p <= 3; p++ {
			page, err := feed.GetFeed(alice.ID, p)
			require.NoError(t, err)
			for _, item := range page.Items {
				id := item.Ticket.ID.String()
				assert.False(t, seen[id], "item repeated across pages")
				seen[id] = true
			}
		}
		assert.Len(t, seen, 14)
	})

	t.Run("out of range page clamps to last", func(t *testing.T) {
		page, err := feed.GetFeed(alice.ID, 99)
		require.NoError(t, err)
		assert.Equal(t, 3, page.Page)
		assert.Len(t, page.Items, 2)
	})

	t.Run("page below one falls back to first", func(t *testing.T) {
		page, err := feed.GetFeed(alice.ID, -5)
		require.NoError(t, err)
		assert.Equal(t, 1, page.Page)
		assert.Len(t, page.Items, 6)
	})

	t.Run("exact multiple of page size", func(t *testing.T) {
		bob := createTestUser(t, db, "bob")
		for i := 0; i < 12; i++ {
			createTestTicket(t, db, bob.ID, "ticket", base.Add(time.Duration(i)*time.Minute))
		}
		page, err := feed.GetFeed(bob.ID, 2)
		require.NoError(t, err)
		assert.Equal(t, 2, page.TotalPages)
		assert.Len(t, page.Items, 6)
	})

	t.Run("empty feed yields one empty page", func(t *testing.T) {
		loner := createTestUser(t, db, "loner")
		page, err := feed.GetFeed(loner.ID, 1)
		require.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.Equal(t, 1, page.TotalPages)
		assert.False(t, page.HasNext)
	})
}

func TestFeedService_SingleKindVariants(t *testing.T) {
	db := setupTestDB(t)
	feed := NewFeedService(db, NewFollowService(db))

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	followEdge(t, db, alice.ID, bob.ID)

	now := time.Now()
	ticket := createTestTicket(t, db, bob.ID, "Dune", now.Add(-time.Minute))
	createTestReview(t, db, bob.ID, ticket.ID, "great", now)

	t.Run("ticket feed contains only tickets", func(t *testing.T) {
		page, err := feed.GetTicketFeed(alice.ID, 1)
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "ticket", page.Items[0].Type)
		assert.Equal(t, 1, page.TicketCount)
		assert.Zero(t, page.ReviewCount)
	})

	t.Run("review feed contains only reviews", func(t *testing.T) {
		page, err := feed.GetReviewFeed(alice.ID, 1)
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Equal(t, "review", page.Items[0].Type)
		require.NotNil(t, page.Items[0].Review)
		assert.Equal(t, ticket.ID, page.Items[0].Review.Ticket.ID, "review carries its ticket")
	})
}
