package domain

import "time"

// HandbookAcknowledgment records a resident's sign-off on the house handbook.
// PK: ack_id.
type HandbookAcknowledgment struct {
	AckID        string    `json:"ack_id" dynamodbav:"ack_id"`
	ResidentName string    `json:"resident_name" dynamodbav:"resident_name"`
	RoomNumber   string    `json:"room_number" dynamodbav:"room_number"`
	Sections     []string  `json:"sections" dynamodbav:"sections"`
	Signature    string    `json:"signature" dynamodbav:"signature"`
	SignedAt     time.Time `json:"signed_at" dynamodbav:"signed_at"`
}
