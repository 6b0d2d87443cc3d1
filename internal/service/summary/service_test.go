package summary

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campfirehq/youthorg-api/internal/model"
)

type fakeEventRepo struct {
	events []*model.Event
}

func (f *fakeEventRepo) Create(_ context.Context, _ *model.Event) error { return nil }
func (f *fakeEventRepo) Get(_ context.Context, _ uuid.UUID) (*model.Event, error) {
	return nil, nil
}
func (f *fakeEventRepo) Update(_ context.Context, _ *model.Event) error { return nil }
func (f *fakeEventRepo) Delete(_ context.Context, _ uuid.UUID) error    { return nil }
func (f *fakeEventRepo) List(_ context.Context) ([]*model.Event, error) { return f.events, nil }
func (f *fakeEventRepo) ListBetween(_ context.Context, from, to time.Time) ([]*model.Event, error) {
	var out []*model.Event
	for _, event := range f.events {
		if !event.StartTime.Before(from) && event.StartTime.Before(to) {
			out = append(out, event)
		}
	}
	return out, nil
}

type fakeHistoryRepo struct {
	entries []*model.VehicleAssignment
}

func (f *fakeHistoryRepo) Append(_ context.Context, _ *model.VehicleAssignment) error { return nil }
func (f *fakeHistoryRepo) ListByKid(_ context.Context, _ uuid.UUID) ([]*model.VehicleAssignment, error) {
	return nil, nil
}
func (f *fakeHistoryRepo) ListSince(_ context.Context, since time.Time) ([]*model.VehicleAssignment, error) {
	var out []*model.VehicleAssignment
	for _, entry := range f.entries {
		if !entry.CreatedAt.Before(since) {
			out = append(out, entry)
		}
	}
	return out, nil
}
func (f *fakeHistoryRepo) DeleteOlderThan(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

type fakeUserRepo struct {
	admins []*model.User
}

func (f *fakeUserRepo) Create(_ context.Context, _ *model.User) error { return nil }
func (f *fakeUserRepo) Get(_ context.Context, _ uuid.UUID) (*model.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) GetByEmail(_ context.Context, _ string) (*model.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) Update(_ context.Context, _ *model.User) error { return nil }
func (f *fakeUserRepo) Delete(_ context.Context, _ uuid.UUID) error   { return nil }
func (f *fakeUserRepo) List(_ context.Context) ([]*model.User, error) { return nil, nil }
func (f *fakeUserRepo) ListByRole(_ context.Context, role string) ([]*model.User, error) {
	if role == "admin" {
		return f.admins, nil
	}
	return nil, nil
}

type captureMailer struct {
	to      []string
	subject string
	body    string
	sent    int
}

func (c *captureMailer) SendWeeklySummary(_ context.Context, to []string, subject, body string) error {
	c.to = to
	c.subject = subject
	c.body = body
	c.sent++
	return nil
}

func (c *captureMailer) SendCustom(_ context.Context, _ string, _ string, _ string) error {
	return nil
}

func TestSendWeeklySummary(t *testing.T) {
	now := time.Date(2025, time.May, 5, 8, 0, 0, 0, time.UTC)

	admin := &model.User{Email: "admin@example.org", Role: "admin"}
	admin.ID = uuid.New()

	upcoming := &model.Event{
		Title:     "Spring Hike",
		Location:  "North Trailhead",
		StartTime: now.Add(48 * time.Hour),
	}
	tooFar := &model.Event{
		Title:     "Summer Camp",
		StartTime: now.Add(30 * 24 * time.Hour),
	}

	swap := &model.VehicleAssignment{
		KidID:      uuid.New(),
		ChangeType: model.ChangeSwapped,
		CreatedAt:  now.Add(-24 * time.Hour),
	}
	stale := &model.VehicleAssignment{
		KidID:      uuid.New(),
		ChangeType: model.ChangeAssigned,
		CreatedAt:  now.Add(-30 * 24 * time.Hour),
	}

	mailer := &captureMailer{}
	svc := NewService(
		&fakeEventRepo{events: []*model.Event{upcoming, tooFar}},
		&fakeHistoryRepo{entries: []*model.VehicleAssignment{swap, stale}},
		&fakeUserRepo{admins: []*model.User{admin}},
		mailer,
	)

	require.NoError(t, svc.SendWeeklySummary(context.Background(), now))

	assert.Equal(t, 1, mailer.sent)
	assert.Equal(t, []string{"admin@example.org"}, mailer.to)
	assert.Contains(t, mailer.subject, "Weekly summary")
	assert.Contains(t, mailer.body, "Spring Hike")
	assert.NotContains(t, mailer.body, "Summer Camp")
	assert.Contains(t, mailer.body, "vehicle swapped")
	assert.Contains(t, mailer.body, swap.KidID.String())
	assert.NotContains(t, mailer.body, stale.KidID.String())
}

func TestSendWeeklySummaryNoAdmins(t *testing.T) {
	mailer := &captureMailer{}
	svc := NewService(&fakeEventRepo{}, &fakeHistoryRepo{}, &fakeUserRepo{}, mailer)

	require.NoError(t, svc.SendWeeklySummary(context.Background(), time.Now()))
	assert.Zero(t, mailer.sent)
}

func TestComposeDigestEmpty(t *testing.T) {
	svc := NewService(&fakeEventRepo{}, &fakeHistoryRepo{}, &fakeUserRepo{}, &captureMailer{})

	body, err := svc.ComposeDigest(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Contains(t, body, "(none)")
}
