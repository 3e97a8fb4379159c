package models

import "time"

// ClientUpdate is an append-only telemetry record of a client checking in for
// updates. It has no relations to the reference data graph.
type ClientUpdate struct {
	ID        uint      `gorm:"primaryKey;column:id" json:"id"`
	Timestamp time.Time `gorm:"column:timestamp;not null" json:"timestamp"`
	Version   string    `gorm:"column:version;type:varchar(20);not null" json:"version"`
	Country   *string   `gorm:"column:country;type:varchar(2)" json:"country"`
	Useragent *string   `gorm:"column:useragent;type:varchar(50)" json:"useragent"`
}

func (ClientUpdate) TableName() string {
	return "client_updates"
}
