package model

import (
	"crypto/rand"
	"time"

	"realestate-marketplace/internal/domain"

	"github.com/oklog/ulid/v2"
)

// BlogPost is editorial content shown on the marketplace site.
type BlogPost struct {
	ID          string    `bson:"_id" json:"id"`
	AuthorID    string    `bson:"author_id" json:"authorId"`
	Title       string    `bson:"title" json:"title"`
	Body        string    `bson:"body" json:"body"`
	CoverImage  string    `bson:"cover_image" json:"coverImage"`
	Tags        []string  `bson:"tags" json:"tags"`
	PublishedAt time.Time `bson:"published_at" json:"publishedAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}

func NewBlogPost(authorID, title, body string) (*BlogPost, error) {
	if authorID == "" || title == "" || body == "" {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &BlogPost{
		ID:          ulid.MustNew(ulid.Timestamp(now), rand.Reader).String(),
		AuthorID:    authorID,
		Title:       title,
		Body:        body,
		PublishedAt: now,
		UpdatedAt:   now,
	}, nil
}

// Testimonial is a short customer quote displayed on the landing page.
type Testimonial struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"user_id" json:"userId"`
	Name      string    `bson:"name" json:"name"`
	Message   string    `bson:"message" json:"message"`
	Rating    int       `bson:"rating" json:"rating"` // 1..5
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

func NewTestimonial(userID, name, message string, rating int) (*Testimonial, error) {
	if name == "" || message == "" || rating < 1 || rating > 5 {
		return nil, domain.ErrInvalidArgument
	}
	return &Testimonial{
		ID:        ulid.MustNew(ulid.Now(), rand.Reader).String(),
		UserID:    userID,
		Name:      name,
		Message:   message,
		Rating:    rating,
		CreatedAt: time.Now(),
	}, nil
}
