package domain

import "time"

// Validity is the fraud-check outcome of a click. A click starts Unresolved
// and moves to Valid or Invalid exactly once, when the fraud check completes.
type Validity int16

const (
	ValidityUnresolved Validity = 0
	ValidityValid      Validity = 1
	ValidityInvalid    Validity = 2
)

// String returns a human-readable validity label.
func (v Validity) String() string {
	switch v {
	case ValidityValid:
		return "valid"
	case ValidityInvalid:
		return "invalid"
	default:
		return "unresolved"
	}
}

// Click represents one redirect event against a Link, together with its
// reward resolution state. Rewarded flips to true at most once; the
// conditional update in the repository is the double-reward guard.
type Click struct {
	ID          int64     `gorm:"primaryKey;column:id" json:"id"`
	LinkID      int64     `gorm:"column:link_id;not null;index:idx_clicks_link_clicked,priority:1" json:"link_id"`
	Validity    Validity  `gorm:"column:validity;type:smallint;not null;default:0" json:"validity"`
	Rewarded    bool      `gorm:"column:rewarded;not null;default:false" json:"rewarded"`
	RewardCents int64     `gorm:"column:reward_cents;not null;default:0" json:"reward_cents"`
	IPAddress   *string   `gorm:"column:ip_address;size:64" json:"ip_address,omitempty"`
	UserAgent   *string   `gorm:"column:user_agent;type:text" json:"user_agent,omitempty"`
	ClickedAt   time.Time `gorm:"column:clicked_at;autoCreateTime;index:idx_clicks_link_clicked,priority:2" json:"clicked_at"`

	// Relationships
	Link *Link `gorm:"foreignKey:LinkID" json:"link,omitempty"`
}

// TableName returns the table name for GORM.
func (Click) TableName() string {
	return "clicks"
}
