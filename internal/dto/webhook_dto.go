package dto

const (
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
	EventUserDeleted = "user.deleted"
)

// ClerkEvent is a verified identity-provider webhook.
type ClerkEvent struct {
	Type   string        `json:"type"`
	Object string        `json:"object"`
	Data   ClerkUserData `json:"data"`
}

// ClerkUserData carries the user fields the registry mirrors. Name fields are
// pointers because the provider sends null for names it does not have, and a
// missing value must not overwrite a stored one on update.
type ClerkUserData struct {
	ID             string              `json:"id"`
	EmailAddresses []ClerkEmailAddress `json:"email_addresses"`
	PhoneNumbers   []ClerkPhoneNumber  `json:"phone_numbers"`
	FirstName      *string             `json:"first_name"`
	LastName       *string             `json:"last_name"`
	Deleted        bool                `json:"deleted,omitempty"`
}

type ClerkVerification struct {
	Status string `json:"status"`
}

type ClerkEmailAddress struct {
	ID           string             `json:"id"`
	EmailAddress string             `json:"email_address"`
	Verification *ClerkVerification `json:"verification"`
}

type ClerkPhoneNumber struct {
	ID           string             `json:"id"`
	PhoneNumber  string             `json:"phone_number"`
	Verification *ClerkVerification `json:"verification"`
}

// IsVerified reports whether v carries the provider's "verified" status.
func (v *ClerkVerification) IsVerified() bool {
	return v != nil && v.Status == "verified"
}
