package dto

// TicketInput carries the user-editable ticket fields. Image is the stored
// relative path, set by the handler after the upload has been written; the
// raw bytes never reach the services.
type TicketInput struct {
	Title       string `json:"title" form:"title" validate:"required,max=128"`
	Description string `json:"description" form:"description" validate:"max=2048"`
	Image       string `json:"-" form:"-"`
}

// ReviewInput carries the user-editable review fields. Rating 0 is a valid
// (lowest) rating, so the range check alone decides validity.
type ReviewInput struct {
	Rating   int    `json:"rating" form:"rating" validate:"gte=0,lte=5"`
	Headline string `json:"headline" form:"headline" validate:"required,max=128"`
	Body     string `json:"body" form:"body" validate:"max=8192"`
}

// TicketAndReviewInput is the combined one-submission flow: a new ticket
// reviewed on the spot.
type TicketAndReviewInput struct {
	Ticket TicketInput `json:"ticket"`
	Review ReviewInput `json:"review"`
}

type FollowRequest struct {
	Username string `json:"username" validate:"required"`
}
