package kid

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campfirehq/youthorg-api/internal/model"
	"github.com/campfirehq/youthorg-api/pkg/errors"
	"github.com/campfirehq/youthorg-api/pkg/fieldauth"
)

type fakeKidRepo struct {
	kids map[uuid.UUID]*model.Kid
}

func newFakeKidRepo() *fakeKidRepo {
	return &fakeKidRepo{kids: make(map[uuid.UUID]*model.Kid)}
}

func (f *fakeKidRepo) Create(_ context.Context, kid *model.Kid) error {
	f.kids[kid.ID] = kid
	return nil
}

func (f *fakeKidRepo) Get(_ context.Context, id uuid.UUID) (*model.Kid, error) {
	kid, ok := f.kids[id]
	if !ok {
		return nil, fmt.Errorf("kid %s not found", id)
	}
	copied := *kid
	return &copied, nil
}

func (f *fakeKidRepo) Update(_ context.Context, kid *model.Kid) error {
	f.kids[kid.ID] = kid
	return nil
}

func (f *fakeKidRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.kids, id)
	return nil
}

func (f *fakeKidRepo) List(_ context.Context) ([]*model.Kid, error) {
	var out []*model.Kid
	for _, kid := range f.kids {
		out = append(out, kid)
	}
	return out, nil
}

func (f *fakeKidRepo) ListByTeam(_ context.Context, teamID uuid.UUID) ([]*model.Kid, error) {
	var out []*model.Kid
	for _, kid := range f.kids {
		if kid.TeamID != nil && *kid.TeamID == teamID {
			out = append(out, kid)
		}
	}
	return out, nil
}

func (f *fakeKidRepo) ListByVehicle(_ context.Context, vehicleID uuid.UUID, _ *uuid.UUID) ([]*model.Kid, error) {
	var out []*model.Kid
	for _, kid := range f.kids {
		if kid.VehicleID != nil && *kid.VehicleID == vehicleID {
			out = append(out, kid)
		}
	}
	return out, nil
}

func (f *fakeKidRepo) SwapVehicles(_ context.Context, kidAID, kidBID uuid.UUID, vehicleForA, vehicleForB *uuid.UUID) error {
	f.kids[kidAID].VehicleID = vehicleForA
	f.kids[kidBID].VehicleID = vehicleForB
	return nil
}

func (f *fakeKidRepo) SetTeam(_ context.Context, kidID uuid.UUID, teamID *uuid.UUID) error {
	f.kids[kidID].TeamID = teamID
	return nil
}

func seedKid(repo *fakeKidRepo) *model.Kid {
	kid := &model.Kid{
		FirstName:    "Mia",
		LastName:     "Kovacs",
		ParentEmail:  "eva@example.org",
		MedicalNotes: "carries inhaler",
		OrgComment:   "internal note",
	}
	kid.ID = uuid.New()
	repo.kids[kid.ID] = kid
	return kid
}

func TestUpdateKidFieldsHonorsEditability(t *testing.T) {
	repo := newFakeKidRepo()
	svc := NewService(repo)
	kid := seedKid(repo)

	t.Run("parent updates own contact", func(t *testing.T) {
		updated, err := svc.UpdateKidFields(context.Background(), kid.ID, fieldauth.RoleParent, map[string]interface{}{
			"parentInfo.email": "new@example.org",
		})
		require.NoError(t, err)
		assert.Equal(t, "new@example.org", updated.ParentEmail)
	})

	t.Run("parent cannot touch org comment", func(t *testing.T) {
		_, err := svc.UpdateKidFields(context.Background(), kid.ID, fieldauth.RoleParent, map[string]interface{}{
			"comments.organization": "sneaky",
		})
		assert.True(t, errors.Is(err, errors.ErrForbidden))
		assert.Equal(t, "internal note", repo.kids[kid.ID].OrgComment)
	})

	t.Run("instructor updates medical notes and attendance", func(t *testing.T) {
		updated, err := svc.UpdateKidFields(context.Background(), kid.ID, fieldauth.RoleInstructor, map[string]interface{}{
			"medicalInfo.notes": "inhaler in side pocket",
			"attendance":        float64(7),
		})
		require.NoError(t, err)
		assert.Equal(t, "inhaler in side pocket", updated.MedicalNotes)
		assert.Equal(t, 7, updated.Attendance)
	})

	t.Run("admin corrects birth date", func(t *testing.T) {
		updated, err := svc.UpdateKidFields(context.Background(), kid.ID, fieldauth.RoleAdmin, map[string]interface{}{
			"personalInfo.birthDate": "2014-06-01",
		})
		require.NoError(t, err)
		require.NotNil(t, updated.BirthDate)
		assert.Equal(t, "2014-06-01", updated.BirthDate.Format("2006-01-02"))
	})

	t.Run("malformed birth date", func(t *testing.T) {
		_, err := svc.UpdateKidFields(context.Background(), kid.ID, fieldauth.RoleAdmin, map[string]interface{}{
			"personalInfo.birthDate": "June 1st",
		})
		assert.True(t, errors.Is(err, errors.ErrBadRequest))
	})

	t.Run("wrong value type", func(t *testing.T) {
		_, err := svc.UpdateKidFields(context.Background(), kid.ID, fieldauth.RoleAdmin, map[string]interface{}{
			"parentInfo.email": 42,
		})
		assert.True(t, errors.Is(err, errors.ErrBadRequest))
	})

	t.Run("guest edits nothing", func(t *testing.T) {
		_, err := svc.UpdateKidFields(context.Background(), kid.ID, fieldauth.RoleGuest, map[string]interface{}{
			"personalInfo.firstName": "Hacked",
		})
		assert.True(t, errors.Is(err, errors.ErrForbidden))
	})
}

// Every path the permission table marks editable must either be accepted by
// UpdateKidFields or belong to the assignment subtree, which is written by
// the team service. Anything else means the table and the field switch have
// drifted apart.
func TestEditablePathsAllHaveAWritePath(t *testing.T) {
	repo := newFakeKidRepo()
	svc := NewService(repo)
	kid := seedKid(repo)

	values := map[string]interface{}{
		"personalInfo.birthDate": "2015-02-28",
		"attendance":             float64(4),
	}

	for _, path := range fieldauth.EditableFields(fieldauth.RoleAdmin) {
		value, ok := values[path]
		if !ok {
			value = "updated"
		}

		_, err := svc.UpdateKidFields(context.Background(), kid.ID, fieldauth.RoleAdmin, map[string]interface{}{
			path: value,
		})
		if strings.HasPrefix(path, "assignment.") {
			assert.Truef(t, errors.Is(err, errors.ErrBadRequest), "path %s should be refused here", path)
			assert.ErrorContainsf(t, err, "team assignment", "path %s", path)
			continue
		}
		assert.NoErrorf(t, err, "editable path %s has no write path", path)
	}
}

func TestGetKidViewRedactsPerRole(t *testing.T) {
	repo := newFakeKidRepo()
	svc := NewService(repo)
	kid := seedKid(repo)

	adminView, err := svc.GetKidView(context.Background(), kid.ID, fieldauth.RoleAdmin)
	require.NoError(t, err)
	comments := adminView["comments"].(map[string]interface{})
	assert.Equal(t, "internal note", comments["organization"])
	assert.Equal(t, kid.ID.String(), adminView["id"])

	parentView, err := svc.GetKidView(context.Background(), kid.ID, fieldauth.RoleParent)
	require.NoError(t, err)
	if parentComments, ok := parentView["comments"].(map[string]interface{}); ok {
		assert.NotContains(t, parentComments, "organization")
	}
	if _, ok := parentView["medicalInfo"]; ok {
		medical := parentView["medicalInfo"].(map[string]interface{})
		assert.NotContains(t, medical, "notes")
	}
}
