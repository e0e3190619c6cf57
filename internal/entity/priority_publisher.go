package entity

// PriorityPublisher is a reference-table weight applied to games from
// publishers the editorial team wants surfaced first.
type PriorityPublisher struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	PublisherName string  `gorm:"not null" json:"publisher_name"`
	PublisherSlug *string `json:"publisher_slug"`
	PriorityScore int     `gorm:"not null;default:0" json:"priority_score"`
}

func (PriorityPublisher) TableName() string {
	return "priority_publishers"
}
