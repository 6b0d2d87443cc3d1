// Package summary builds the weekly digest mailed to admins: the coming
// week's events and the past week's vehicle assignment changes.
package summary

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/campfirehq/youthorg-api/internal/email"
	"github.com/campfirehq/youthorg-api/internal/model"
	"github.com/campfirehq/youthorg-api/internal/repository"
)

const week = 7 * 24 * time.Hour

type Service struct {
	events  repository.EventRepository
	history repository.HistoryRepository
	users   repository.UserRepository
	mailer  email.Service
}

func NewService(
	events repository.EventRepository,
	history repository.HistoryRepository,
	users repository.UserRepository,
	mailer email.Service,
) *Service {
	return &Service{
		events:  events,
		history: history,
		users:   users,
		mailer:  mailer,
	}
}

// SendWeeklySummary composes and mails the digest to every admin. It is a
// no-op when there are no admins to mail.
func (s *Service) SendWeeklySummary(ctx context.Context, now time.Time) error {
	admins, err := s.users.ListByRole(ctx, "admin")
	if err != nil {
		return fmt.Errorf("failed to list admins: %w", err)
	}
	if len(admins) == 0 {
		return nil
	}

	body, err := s.ComposeDigest(ctx, now)
	if err != nil {
		return err
	}

	recipients := make([]string, 0, len(admins))
	for _, admin := range admins {
		recipients = append(recipients, admin.Email)
	}

	subject := fmt.Sprintf("Weekly summary for %s", now.Format("Jan 2, 2006"))
	if err := s.mailer.SendWeeklySummary(ctx, recipients, subject, body); err != nil {
		return fmt.Errorf("failed to mail weekly summary: %w", err)
	}
	return nil
}

// ComposeDigest renders the digest body. Exposed separately so tests and a
// future preview endpoint can reuse it without sending mail.
func (s *Service) ComposeDigest(ctx context.Context, now time.Time) (string, error) {
	upcoming, err := s.events.ListBetween(ctx, now, now.Add(week))
	if err != nil {
		return "", fmt.Errorf("failed to load upcoming events: %w", err)
	}
	changes, err := s.history.ListSince(ctx, now.Add(-week))
	if err != nil {
		return "", fmt.Errorf("failed to load assignment changes: %w", err)
	}

	var b strings.Builder

	b.WriteString("Upcoming events this week:\n")
	if len(upcoming) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, event := range upcoming {
		fmt.Fprintf(&b, "  - %s at %s on %s\n",
			event.Title, event.Location, event.StartTime.Format("Mon Jan 2 15:04"))
	}

	b.WriteString("\nVehicle assignment changes last week:\n")
	if len(changes) == 0 {
		b.WriteString("  (none)\n")
	}
	for _, change := range changes {
		fmt.Fprintf(&b, "  - kid %s: %s on %s\n",
			change.KidID, describeChange(change), change.CreatedAt.Format("Mon Jan 2"))
	}

	return b.String(), nil
}

func describeChange(change *model.VehicleAssignment) string {
	switch change.ChangeType {
	case model.ChangeAssigned:
		return "vehicle assigned"
	case model.ChangeSwapped:
		return "vehicle swapped"
	case model.ChangeUnassigned:
		return "vehicle unassigned"
	default:
		return change.ChangeType
	}
}
