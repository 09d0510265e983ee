package models

import "time"

// JobMessage is one row of the job_communications collection.
type JobMessage struct {
	ID         string    `bson:"id" json:"id"`
	JobID      string    `bson:"jobId" json:"jobId"`
	SenderRole string    `bson:"senderRole" json:"senderRole"`
	SenderID   string    `bson:"senderId,omitempty" json:"senderId,omitempty"`
	Message    string    `bson:"message" json:"message"`
	ImageURL   string    `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

// Toast is a transient chat notification shown to a viewer.
type Toast struct {
	ID         string `json:"id"`
	JobID      string `json:"jobId"`
	Title      string `json:"title"`
	Message    string `json:"message"`
	DurationMs int    `json:"durationMs"`
}
