package domain

// OTPRecord stores a one-time verification code for an account.
// PK: user_id, SK: otp_id — several records may coexist after resends.
// ExpiresAt is a Unix timestamp also used as the DynamoDB TTL attribute.
type OTPRecord struct {
	UserID    string `json:"user_id" dynamodbav:"user_id"`
	OTPID     string `json:"otp_id" dynamodbav:"otp_id"`
	Code      string `json:"code" dynamodbav:"code"`
	ExpiresAt int64  `json:"expires_at" dynamodbav:"expires_at"` // TTL (Unix seconds)
}
