package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/sashafierce98/TGPTaskflow/internal/model"
	"github.com/sashafierce98/TGPTaskflow/internal/repository"
)

type NotificationType string

const (
	NotificationOverdue     NotificationType = "overdue"
	NotificationDueToday    NotificationType = "due_today"
	NotificationDueThisWeek NotificationType = "due_this_week"
)

// reminderWindow is how far ahead due dates are reported.
const reminderWindow = 7

type Notification struct {
	Type    NotificationType `json:"type"`
	CardID  uuid.UUID        `json:"card_id"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
	DueDate string           `json:"due_date"`
}

// NotificationService turns the due dates of a user's assigned cards into
// reminders.
type NotificationService struct {
	cardRepo repository.CardRepositoryInterface
}

func NewNotificationService(cardRepo repository.CardRepositoryInterface) *NotificationService {
	return &NotificationService{cardRepo: cardRepo}
}

// ForUser lists reminders for cards assigned to userID, soonest due first.
// Days are counted in calendar days of now's location.
func (s *NotificationService) ForUser(ctx context.Context, userID uuid.UUID, now time.Time) ([]Notification, error) {
	cards, err := s.cardRepo.ListAssignedWithDueDate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list assigned cards: %w", err)
	}

	today := dateOf(now, now.Location())
	notifications := make([]Notification, 0, len(cards))
	for _, card := range cards {
		if card.DueDate == nil {
			continue
		}
		due := dateOf(*card.DueDate, now.Location())
		days := int(math.Round(due.Sub(today).Hours() / 24))

		n, ok := classify(card, days)
		if !ok {
			continue
		}
		n.DueDate = card.DueDate.Format(model.DateLayout)
		notifications = append(notifications, n)
	}
	return notifications, nil
}

func classify(card model.Card, days int) (Notification, bool) {
	n := Notification{CardID: card.ID, Title: card.Title}
	switch {
	case days < 0:
		n.Type = NotificationOverdue
		n.Message = fmt.Sprintf("Card '%s' is overdue", card.Title)
	case days == 0:
		n.Type = NotificationDueToday
		n.Message = fmt.Sprintf("Card '%s' is due today", card.Title)
	case days == 1:
		n.Type = NotificationDueThisWeek
		n.Message = fmt.Sprintf("Card '%s' is due tomorrow", card.Title)
	case days <= reminderWindow:
		n.Type = NotificationDueThisWeek
		n.Message = fmt.Sprintf("Card '%s' is due in %d days", card.Title, days)
	default:
		return n, false
	}
	return n, true
}

// dateOf drops the clock part. Due dates are stored as plain dates, so their
// calendar fields are read as-is rather than converted between zones.
func dateOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
