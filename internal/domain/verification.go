package domain

// VerificationCode stores one issued OTP, bcrypt-hashed at rest.
// PK: identity (the phone number or email the code was sent to).
// ExpiresAt is a Unix timestamp used as DynamoDB TTL.
type VerificationCode struct {
	Identity  string `json:"identity" dynamodbav:"identity"`
	CodeHash  string `json:"-" dynamodbav:"code_hash"`
	ExpiresAt int64  `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
}
