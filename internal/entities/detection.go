package entities

import (
	"time"

	"github.com/mrlokans/palindromes/internal/palindrome"
)

// Detection is one persisted run of the palindrome check.
// Rows are never updated: IsPalindrome is the result at creation time.
type Detection struct {
	ID           uint                `gorm:"primaryKey" json:"id"`
	Text         string              `gorm:"type:text;not null" json:"text"`
	Language     palindrome.Language `gorm:"index;size:2;not null" json:"language"`
	IsPalindrome bool                `gorm:"index;not null;default:false" json:"is_palindrome"`
	Timestamp    time.Time           `gorm:"index;not null" json:"timestamp"`
}

func (Detection) TableName() string {
	return "detections"
}
