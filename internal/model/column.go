package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ColumnKind separates ordinary task lanes from the board's question lane.
// Behaviour keys on the kind, never on the display name.
type ColumnKind string

const (
	ColumnStandard  ColumnKind = "standard"
	ColumnQuestions ColumnKind = "questions"
)

const (
	DefaultColumnColor  = "#64748B"
	QuestionsColumnName = "Questions"
	MaxColumnNameLength = 50
)

var (
	ErrEmptyColumnName   = errors.New("column name cannot be empty")
	ErrColumnNameTooLong = errors.New("column name cannot exceed 50 characters")
	ErrNegativeWIPLimit  = errors.New("wip limit cannot be negative")
	ErrUnknownColumnKind = errors.New("unknown column kind")
)

func (k ColumnKind) Valid() bool {
	return k == ColumnStandard || k == ColumnQuestions
}

type Column struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	BoardID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_columns_board_name"`
	Name      string     `gorm:"not null;uniqueIndex:idx_columns_board_name"`
	Kind      ColumnKind `gorm:"type:varchar(16);not null"`
	Position  int        `gorm:"not null"`
	WIPLimit  *int       `gorm:"column:wip_limit"`
	Color     string     `gorm:"type:varchar(16);not null"`
	CreatedAt time.Time

	Board Board `gorm:"foreignKey:BoardID"`
}

func (c *Column) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Kind == "" {
		c.Kind = ColumnStandard
	}
	if c.Color == "" {
		c.Color = DefaultColumnColor
	}
	return nil
}

func (c *Column) IsQuestions() bool {
	return c.Kind == ColumnQuestions
}

// WIPReached reports whether a column holding count cards is at or above its
// limit. Question columns never report a reached limit; their limit is
// informational only.
func (c *Column) WIPReached(count int) bool {
	if c.IsQuestions() || c.WIPLimit == nil {
		return false
	}
	return count >= *c.WIPLimit
}

// Validate checks the user-editable fields of a column.
func (c *Column) Validate() error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return ErrEmptyColumnName
	}
	if len(name) > MaxColumnNameLength {
		return ErrColumnNameTooLong
	}
	if c.WIPLimit != nil && *c.WIPLimit < 0 {
		return ErrNegativeWIPLimit
	}
	if c.Kind != "" && !c.Kind.Valid() {
		return ErrUnknownColumnKind
	}
	return nil
}

// ColumnTemplate describes a column provisioned with every new board.
type ColumnTemplate struct {
	Name     string
	Kind     ColumnKind
	Color    string
	WIPLimit *int
}

// CustomLimits overrides the provisioned limits of the To Do and In Progress
// columns.
type CustomLimits struct {
	TodoLimit *int
	WIPLimit  *int
}

// DefaultColumns returns the lanes every board starts with. The Questions lane
// is always last and always of the questions kind.
func DefaultColumns(limits *CustomLimits) []ColumnTemplate {
	todo, wip := intPtr(15), intPtr(5)
	if limits != nil {
		todo, wip = limits.TodoLimit, limits.WIPLimit
	}
	return []ColumnTemplate{
		{Name: "Backlog", Kind: ColumnStandard, Color: "#64748B"},
		{Name: "To Do", Kind: ColumnStandard, Color: "#3B82F6", WIPLimit: todo},
		{Name: "In Progress", Kind: ColumnStandard, Color: "#F59E0B", WIPLimit: wip},
		{Name: "Done", Kind: ColumnStandard, Color: "#10B981"},
		{Name: QuestionsColumnName, Kind: ColumnQuestions, Color: "#8B5CF6"},
	}
}

func intPtr(v int) *int { return &v }
