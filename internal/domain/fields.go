package domain

// Storage attribute names shared by services building partial updates and the
// repos applying them. Constants prevent silent bugs from key typos.
const (
	FieldFirstName        = "firstname"
	FieldLastName         = "lastname"
	FieldEmail            = "email"
	FieldPasswordHash     = "password_hash"
	FieldVerified         = "verified"
	FieldProfilePhoto     = "profile_photo"
	FieldResetToken       = "reset_token"
	FieldResetTokenExpiry = "reset_token_expiry"
	FieldUpdatedAt        = "updated_at"
)
