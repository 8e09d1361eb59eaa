package models

// ReviewUser is the trimmed author record embedded in a review.
type ReviewUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Review is a star rating (1-5) with a free-text comment.
type Review struct {
	ID        int64       `json:"id"`
	UserID    int64       `json:"user_id"`
	Rating    int         `json:"rating"`
	Comment   string      `json:"comment"`
	CreatedAt string      `json:"created_at"`
	User      *ReviewUser `json:"user,omitempty"`
}
