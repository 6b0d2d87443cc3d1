package fieldauth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanViewField(t *testing.T) {
	tests := []struct {
		name string
		role Role
		path string
		want bool
	}{
		{"admin sees personal info", RoleAdmin, "personalInfo.firstName", true},
		{"admin sees org comments", RoleAdmin, "comments.organization", true},
		{"instructor sees medical notes", RoleInstructor, "medicalInfo.notes", true},
		{"instructor denied parent address", RoleInstructor, "parentInfo.address", false},
		{"hidden wins over visible", RoleInstructor, "parentInfo.workPhone", false},
		{"parent denied org comments", RoleParent, "comments.organization", false},
		{"parent sees own comments", RoleParent, "comments.parent", true},
		{"parent denied capabilities", RoleParent, "personalInfo.capabilities", false},
		{"guest sees first name", RoleGuest, "personalInfo.firstName", true},
		{"guest denied bare container", RoleGuest, "parentInfo", false},
		{"guest email not listed anywhere", RoleGuest, "parentInfo.email", false},
		{"unknown path denied", RoleAdmin, "no.such.field", false},
		{"empty path denied", RoleParent, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanViewField(tt.role, tt.path))
		})
	}
}

func TestCanEditField(t *testing.T) {
	tests := []struct {
		name string
		role Role
		path string
		want bool
	}{
		{"admin edits everything listed", RoleAdmin, "assignment.vehicleId", true},
		{"instructor edits attendance", RoleInstructor, "attendance", true},
		{"instructor cannot edit parent email", RoleInstructor, "parentInfo.email", false},
		{"parent edits own contact", RoleParent, "parentInfo.phone", true},
		{"parent cannot edit team", RoleParent, "assignment.teamId", false},
		{"guest edits nothing", RoleGuest, "personalInfo.firstName", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanEditField(tt.role, tt.path))
		})
	}

	// Editability ignores the hidden list entirely: a field can be editable
	// through a bulk form even when the same role cannot view it.
	assert.False(t, CanEditField(RoleInstructor, "parentInfo.workPhone"))
}

func TestUnknownRoleFallsBackToGuest(t *testing.T) {
	unknown := Role("superuser")

	assert.Equal(t, VisibleFields(RoleGuest), VisibleFields(unknown))
	assert.Equal(t, EditableFields(RoleGuest), EditableFields(unknown))
	assert.Equal(t, HiddenFields(RoleGuest), HiddenFields(unknown))
	assert.True(t, CanViewField(unknown, "personalInfo.firstName"))
	assert.False(t, CanViewField(unknown, "parentInfo.email"))
	assert.False(t, CanEditField(unknown, "attendance"))
}

func TestHiddenAlwaysDeniesView(t *testing.T) {
	for _, role := range []Role{RoleAdmin, RoleInstructor, RoleParent, RoleGuest} {
		for _, path := range HiddenFields(role) {
			assert.False(t, CanViewField(role, path), "role %s path %s", role, path)
		}
	}
}

func TestAdminHiddenSetIsEmpty(t *testing.T) {
	assert.Empty(t, HiddenFields(RoleAdmin))

	// With nothing hidden the verdict reduces to visible-set membership.
	for _, path := range VisibleFields(RoleAdmin) {
		assert.True(t, CanViewField(RoleAdmin, path))
	}
}

func TestProjectionsAreSorted(t *testing.T) {
	fields := VisibleFields(RoleInstructor)
	assert.IsIncreasing(t, fields)
	assert.NotEmpty(t, fields)
}

func TestRedact(t *testing.T) {
	record := map[string]interface{}{
		"personalInfo": map[string]interface{}{
			"firstName":    "Mia",
			"lastName":     "Kovacs",
			"capabilities": "swimmer",
		},
		"parentInfo": map[string]interface{}{
			"name":  "Eva Kovacs",
			"email": "eva@example.org",
		},
		"comments": map[string]interface{}{
			"organization": "internal note",
			"parent":       "picked up late on Tuesday",
		},
		"attendance": 12,
	}

	t.Run("guest gets bare minimum", func(t *testing.T) {
		got := Redact(RoleGuest, record)
		assert.Equal(t, map[string]interface{}{
			"personalInfo": map[string]interface{}{"firstName": "Mia"},
		}, got)
	})

	t.Run("parent loses org comment but keeps own", func(t *testing.T) {
		got := Redact(RoleParent, record)
		comments, ok := got["comments"].(map[string]interface{})
		assert.True(t, ok)
		assert.NotContains(t, comments, "organization")
		assert.Equal(t, "picked up late on Tuesday", comments["parent"])
		personal, _ := got["personalInfo"].(map[string]interface{})
		assert.NotContains(t, personal, "capabilities")
	})

	t.Run("admin keeps everything", func(t *testing.T) {
		got := Redact(RoleAdmin, record)
		assert.Equal(t, record, got)
	})

	t.Run("input is not mutated", func(t *testing.T) {
		Redact(RoleGuest, record)
		assert.Contains(t, record["parentInfo"].(map[string]interface{}), "email")
	})
}
