package domain

import "time"

// PassStatus is the approval state of a weekend pass request.
type PassStatus string

const (
	PassPending  PassStatus = "pending"
	PassApproved PassStatus = "approved"
	PassDenied   PassStatus = "denied"
)

// WeekendPassRequest is a resident's request to leave the facility for a
// weekend. Created by the pass-request pipeline, transitioned only by a staff
// approve/deny action, never deleted.
// PK: pass_id.
type WeekendPassRequest struct {
	PassID           string     `json:"pass_id" dynamodbav:"pass_id"`
	ResidentName     string     `json:"resident_name" dynamodbav:"resident_name"`
	RoomNumber       string     `json:"room_number" dynamodbav:"room_number"`
	Phone            string     `json:"phone" dynamodbav:"phone"`
	DepartureDate    string     `json:"departure_date" dynamodbav:"departure_date"`
	DepartureTime    string     `json:"departure_time" dynamodbav:"departure_time"`
	ReturnDate       string     `json:"return_date" dynamodbav:"return_date"`
	ReturnTime       string     `json:"return_time" dynamodbav:"return_time"`
	Destination      string     `json:"destination" dynamodbav:"destination"`
	Transportation   string     `json:"transportation" dynamodbav:"transportation"`
	EmergencyContact string     `json:"emergency_contact" dynamodbav:"emergency_contact"`
	EmergencyPhone   string     `json:"emergency_phone" dynamodbav:"emergency_phone"`
	Agreements       []string   `json:"agreements" dynamodbav:"agreements"`
	Signature        string     `json:"signature" dynamodbav:"signature"`
	Status           PassStatus `json:"status" dynamodbav:"status"`
	SubmittedAt      time.Time  `json:"submitted_at" dynamodbav:"submitted_at"`
	DecidedBy        string     `json:"decided_by,omitempty" dynamodbav:"decided_by,omitempty"`
	DecidedAt        *time.Time `json:"decided_at,omitempty" dynamodbav:"decided_at,omitempty"`
}
