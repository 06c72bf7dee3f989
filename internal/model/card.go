package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority maps an empty value to the medium default.
func ParsePriority(s string) (Priority, bool) {
	switch Priority(s) {
	case "":
		return PriorityMedium, true
	case PriorityLow, PriorityMedium, PriorityHigh:
		return Priority(s), true
	}
	return "", false
}

// DateLayout is the wire format of card due dates.
const DateLayout = "2006-01-02"

// Card is a task in a standard column or a question in the questions column.
// BoardID is denormalised from the column so a whole board can be listed and
// cascaded without joins.
type Card struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	BoardID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	ColumnID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Title       string     `gorm:"not null"`
	Description string
	Priority    Priority   `gorm:"type:varchar(8);not null"`
	DueDate     *time.Time `gorm:"type:date"`
	AssignedTo  *uuid.UUID `gorm:"type:uuid;index"`
	CreatedBy   uuid.UUID  `gorm:"type:uuid;not null"`
	Position    int        `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Column Column `gorm:"foreignKey:ColumnID"`
}

func (c *Card) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Priority == "" {
		c.Priority = PriorityMedium
	}
	return nil
}
