package model

import "time"

type UserRole string

const (
	Athlete UserRole = "athlete"
	Admin   UserRole = "admin"
)

type AccountStatus string

const (
	AccountActive               AccountStatus = "active"
	AccountPendingParentConsent AccountStatus = "pending_parent_consent"
	AccountSuspended            AccountStatus = "suspended"
)

type User struct {
	BaseModel
	Email       string   `gorm:"size:100;unique;not null" json:"email"`
	Password    string   `gorm:"size:100;not null" json:"-"`
	AthleteName string   `gorm:"size:100;not null" json:"athleteName"`
	SchoolClub  string   `gorm:"size:150;index" json:"schoolClub"`
	DateOfBirth string   `gorm:"size:10;not null" json:"dateOfBirth"`
	Age         int      `gorm:"not null;index" json:"age"`
	ParentEmail string   `gorm:"size:100" json:"parentEmail"`
	Role        UserRole `gorm:"size:20;default:'athlete'" json:"role"`

	// Consent flags carry no column default: a declined consent is a
	// zero value and must round-trip, so registration sets them
	// explicitly.
	ConsentLeaderboard   bool          `json:"consentLeaderboard"`
	ConsentDataUse       bool          `json:"consentDataUse"`
	OptOutPublic         bool          `gorm:"default:false" json:"optOutPublic"`
	ParentalConsentGiven bool          `gorm:"default:false" json:"parentalConsentGiven"`
	AccountStatus        AccountStatus `gorm:"size:30;default:'active'" json:"accountStatus"`

	YearJoined int       `json:"yearJoined"`
	LastLogin  time.Time `json:"lastLogin"`
}

func (User) TableName() string {
	return "users"
}
