package kid

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/campfirehq/youthorg-api/internal/model"
	"github.com/campfirehq/youthorg-api/internal/repository"
	"github.com/campfirehq/youthorg-api/pkg/errors"
	"github.com/campfirehq/youthorg-api/pkg/fieldauth"
)

type Service struct {
	repo repository.KidRepository
}

func NewService(repo repository.KidRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateKid(ctx context.Context, req *model.CreateKidRequest) (*model.Kid, error) {
	kid := &model.Kid{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		BirthDate:    req.BirthDate,
		Address:      req.Address,
		Capabilities: req.Capabilities,
		Allergies:    req.Allergies,
		MedicalNotes: req.MedicalNotes,
		ParentName:   req.ParentName,
		ParentEmail:  req.ParentEmail,
		ParentPhone:  req.ParentPhone,
		TeamID:       req.TeamID,
	}
	kid.ID = uuid.New()
	kid.CreatedAt = time.Now()
	kid.UpdatedAt = time.Now()

	if err := s.repo.Create(ctx, kid); err != nil {
		return nil, fmt.Errorf("failed to create kid: %w", err)
	}
	return kid, nil
}

func (s *Service) GetKid(ctx context.Context, id uuid.UUID) (*model.Kid, error) {
	kid, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, errors.NotFound("kid", err)
	}
	return kid, nil
}

// GetKidView returns the record shaped for the caller: the nested map form
// with every field the role may not view stripped out.
func (s *Service) GetKidView(ctx context.Context, id uuid.UUID, role fieldauth.Role) (model.JSONMap, error) {
	kid, err := s.GetKid(ctx, id)
	if err != nil {
		return nil, err
	}
	view := model.JSONMap(fieldauth.Redact(role, kid.Record()))
	view["id"] = kid.ID.String()
	return view, nil
}

// UpdateKidFields applies a flat map of dotted field paths to values,
// refusing any path the role may not edit. Unknown paths are rejected
// outright rather than ignored. The assignment.* paths are editable per
// the permission table but written only by the team service, so they are
// refused here with a pointer at the assignment endpoints.
func (s *Service) UpdateKidFields(ctx context.Context, id uuid.UUID, role fieldauth.Role, fields map[string]interface{}) (*model.Kid, error) {
	kid, err := s.GetKid(ctx, id)
	if err != nil {
		return nil, err
	}

	for path, value := range fields {
		if !fieldauth.CanEditField(role, path) {
			return nil, errors.Forbidden(fmt.Sprintf("field %q is not editable for role %s", path, role), nil)
		}
		if err := applyField(kid, path, value); err != nil {
			return nil, errors.BadRequest(err.Error(), err)
		}
	}

	if err := s.repo.Update(ctx, kid); err != nil {
		return nil, fmt.Errorf("failed to update kid: %w", err)
	}
	return kid, nil
}

func (s *Service) DeleteKid(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return errors.NotFound("kid", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete kid: %w", err)
	}
	return nil
}

func (s *Service) ListKids(ctx context.Context) ([]*model.Kid, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListKidsByTeam(ctx context.Context, teamID uuid.UUID) ([]*model.Kid, error) {
	return s.repo.ListByTeam(ctx, teamID)
}

// ListKidViews redacts a whole listing for the caller's role.
func (s *Service) ListKidViews(ctx context.Context, role fieldauth.Role) ([]model.JSONMap, error) {
	kids, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]model.JSONMap, 0, len(kids))
	for _, kid := range kids {
		view := model.JSONMap(fieldauth.Redact(role, kid.Record()))
		view["id"] = kid.ID.String()
		views = append(views, view)
	}
	return views, nil
}

func applyField(kid *model.Kid, path string, value interface{}) error {
	str := func() (string, error) {
		s, ok := value.(string)
		if !ok {
			return "", fmt.Errorf("field %q expects a string", path)
		}
		return s, nil
	}

	switch path {
	case "personalInfo.firstName":
		v, err := str()
		if err != nil {
			return err
		}
		kid.FirstName = v
	case "personalInfo.lastName":
		v, err := str()
		if err != nil {
			return err
		}
		kid.LastName = v
	case "personalInfo.birthDate":
		v, err := str()
		if err != nil {
			return err
		}
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return fmt.Errorf("field %q expects a date in YYYY-MM-DD form", path)
		}
		kid.BirthDate = &parsed
	case "personalInfo.address":
		v, err := str()
		if err != nil {
			return err
		}
		kid.Address = v
	case "personalInfo.capabilities":
		v, err := str()
		if err != nil {
			return err
		}
		kid.Capabilities = v
	case "personalInfo.photoURL":
		v, err := str()
		if err != nil {
			return err
		}
		kid.PhotoURL = v
	case "medicalInfo.allergies":
		v, err := str()
		if err != nil {
			return err
		}
		kid.Allergies = v
	case "medicalInfo.notes":
		v, err := str()
		if err != nil {
			return err
		}
		kid.MedicalNotes = v
	case "parentInfo.name":
		v, err := str()
		if err != nil {
			return err
		}
		kid.ParentName = v
	case "parentInfo.email":
		v, err := str()
		if err != nil {
			return err
		}
		kid.ParentEmail = v
	case "parentInfo.phone":
		v, err := str()
		if err != nil {
			return err
		}
		kid.ParentPhone = v
	case "parentInfo.workPhone":
		v, err := str()
		if err != nil {
			return err
		}
		kid.ParentWorkPhone = v
	case "parentInfo.address":
		v, err := str()
		if err != nil {
			return err
		}
		kid.ParentAddress = v
	case "comments.organization":
		v, err := str()
		if err != nil {
			return err
		}
		kid.OrgComment = v
	case "comments.parent":
		v, err := str()
		if err != nil {
			return err
		}
		kid.ParentComment = v
	case "attendance":
		n, ok := value.(float64)
		if !ok {
			return fmt.Errorf("field %q expects a number", path)
		}
		kid.Attendance = int(n)
	default:
		if strings.HasPrefix(path, "assignment.") {
			return fmt.Errorf("field %q is managed through team assignment operations", path)
		}
		return fmt.Errorf("field %q cannot be written through this endpoint", path)
	}
	return nil
}
