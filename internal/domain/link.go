package domain

import "time"

// Link is a registered short-code-to-target-URL mapping owned by a seller.
// The lifetime counters are denormalized: they are maintained by the click
// tracking and reward flows, never recomputed from click rows.
type Link struct {
	ID          int64     `gorm:"primaryKey;column:id" json:"id"`
	ShortCode   string    `gorm:"column:short_code;size:8;not null;uniqueIndex:ux_links_short_code" json:"short_code"`
	TargetURL   string    `gorm:"column:target_url;size:2048;not null;uniqueIndex:ux_links_target_url" json:"target_url"`
	TotalClicks int64     `gorm:"column:total_clicks;not null;default:0" json:"total_clicks"`
	ValidClicks int64     `gorm:"column:valid_clicks;not null;default:0" json:"valid_clicks"`
	RewardCents int64     `gorm:"column:reward_cents;not null;default:0" json:"reward_cents"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name for GORM.
func (Link) TableName() string {
	return "links"
}
