package models

import "time"

type BloodType string

const (
	BloodTypeAPos  BloodType = "A_POS"
	BloodTypeANeg  BloodType = "A_NEG"
	BloodTypeBPos  BloodType = "B_POS"
	BloodTypeBNeg  BloodType = "B_NEG"
	BloodTypeABPos BloodType = "AB_POS"
	BloodTypeABNeg BloodType = "AB_NEG"
	BloodTypeOPos  BloodType = "O_POS"
	BloodTypeONeg  BloodType = "O_NEG"
)

// BloodTypes lists every recognised value in display order.
var BloodTypes = []BloodType{
	BloodTypeAPos, BloodTypeANeg,
	BloodTypeBPos, BloodTypeBNeg,
	BloodTypeABPos, BloodTypeABNeg,
	BloodTypeOPos, BloodTypeONeg,
}

func (b BloodType) Valid() bool {
	for _, bt := range BloodTypes {
		if b == bt {
			return true
		}
	}
	return false
}

type DonorProfile struct {
	ID               string    `gorm:"size:64;primaryKey" json:"id"`
	UserID           string    `gorm:"size:64;not null;index" json:"user_id"`
	BloodType        BloodType `gorm:"size:8;not null;index" json:"blood_type"`
	LastDonationDate time.Time `json:"last_donation_date"`
	DonationCount    int       `gorm:"not null;default:0" json:"donation_count"`
	Location         string    `gorm:"type:text;not null" json:"location"`
	Latitude         float64   `gorm:"type:decimal(10,8);not null" json:"latitude"`
	Longitude        float64   `gorm:"type:decimal(11,8);not null" json:"longitude"`
	MedicalNotes     *string   `gorm:"type:text" json:"medical_notes,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
