package model

import (
	"time"
)

// Paper represents the cached metadata of a preprint.
type Paper struct {
	ID         uint       `gorm:"column:id;primaryKey"`
	Identifier string     `gorm:"column:identifier;not null;uniqueIndex"`
	Datestamp  *time.Time `gorm:"column:datestamp;index"`
	SetSpec    string     `gorm:"column:set_spec;not null"`
	Created    *time.Time `gorm:"column:created"`
	Updated    *time.Time `gorm:"column:updated"`
	Title      string     `gorm:"column:title;not null"`
	Categories string     `gorm:"column:categories;not null;default:''"`
	License    string     `gorm:"column:license;not null;default:''"`
	Abstract   string     `gorm:"column:abstract;not null;default:''"`
}

func (Paper) TableName() string {
	return "papers"
}
