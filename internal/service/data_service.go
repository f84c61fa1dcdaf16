package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/inspection-service/internal/domain"
	"github.com/spec-kit/inspection-service/internal/events"
	"github.com/spec-kit/inspection-service/internal/repository"
	apperrors "github.com/spec-kit/inspection-service/pkg/util"
)

// Gateway is the privileged backend surface the data service delegates
// to for operations the caller's own credentials cannot perform. The
// gateway re-validates the caller independently.
type Gateway interface {
	DeleteUser(ctx context.Context, caller *domain.AppUser, uid string) error
	SetAdminClaim(ctx context.Context, caller *domain.AppUser, uid string, admin bool) error
}

// RoleUpdateResult reports the two phases of a role update separately.
// The store write and the claim mirror are not transactional: when the
// mirror fails the role array and identity metadata diverge until the
// next successful update.
type RoleUpdateResult struct {
	StoreUpdated   bool
	ClaimsMirrored bool
	MirrorErr      error
}

// FullyApplied reports whether both phases succeeded.
func (r RoleUpdateResult) FullyApplied() bool {
	return r.StoreUpdated && r.ClaimsMirrored
}

// DataService owns every mutation over the four tables. All writes
// publish a table-change event so the live mirror refetches.
type DataService struct {
	departments repository.DepartmentRepository
	locations   repository.LocationRepository
	inspections repository.InspectionRepository
	users       repository.AppUserRepository
	gateway     Gateway
	dispatcher  events.Dispatcher
	logger      *zap.Logger
}

// DataDependencies bundles the data service requirements.
type DataDependencies struct {
	DepartmentRepo repository.DepartmentRepository
	LocationRepo   repository.LocationRepository
	InspectionRepo repository.InspectionRepository
	AppUserRepo    repository.AppUserRepository
	Gateway        Gateway
	Dispatcher     events.Dispatcher
}

// NewDataService builds the service.
func NewDataService(deps DataDependencies, logger *zap.Logger) *DataService {
	return &DataService{
		departments: deps.DepartmentRepo,
		locations:   deps.LocationRepo,
		inspections: deps.InspectionRepo,
		users:       deps.AppUserRepo,
		gateway:     deps.Gateway,
		dispatcher:  deps.Dispatcher,
		logger:      logger,
	}
}

// CreateDepartment inserts a department and returns its new id.
func (s *DataService) CreateDepartment(ctx context.Context, dept *domain.Department) (string, error) {
	if err := s.departments.Create(ctx, dept); err != nil {
		return "", err
	}
	s.publish(ctx, events.TableDepartments, events.OpInsert, dept.ID)
	return dept.ID, nil
}

// UpdateDepartment applies a partial patch.
func (s *DataService) UpdateDepartment(ctx context.Context, id string, patch domain.DepartmentPatch) error {
	if err := s.departments.Update(ctx, id, patch); err != nil {
		return err
	}
	s.publish(ctx, events.TableDepartments, events.OpUpdate, id)
	return nil
}

// DeleteDepartment removes a department.
func (s *DataService) DeleteDepartment(ctx context.Context, id string) error {
	if err := s.departments.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, events.TableDepartments, events.OpDelete, id)
	return nil
}

// CreateLocation inserts a location and, as a synchronous side effect,
// schedules its first inspection: status Pending, dated now, with the
// location's name, supervisor and contact number snapshotted. Later
// location edits never touch that snapshot.
func (s *DataService) CreateLocation(ctx context.Context, loc *domain.Location) (string, error) {
	if err := s.locations.Create(ctx, loc); err != nil {
		return "", err
	}
	s.publish(ctx, events.TableLocations, events.OpInsert, loc.ID)

	inspection := &domain.Inspection{
		LocationID:    loc.ID,
		DepartmentID:  loc.DepartmentID,
		LocationName:  loc.Name,
		Supervisor:    loc.Supervisor,
		ContactNumber: loc.ContactNumber,
		Date:          time.Now().UTC(),
		Status:        domain.InspectionPending,
	}
	if err := s.inspections.Create(ctx, inspection); err != nil {
		return "", err
	}
	s.publish(ctx, events.TableInspections, events.OpInsert, inspection.ID)
	return loc.ID, nil
}

// UpdateLocation applies a partial patch.
func (s *DataService) UpdateLocation(ctx context.Context, id string, patch domain.LocationPatch) error {
	if err := s.locations.Update(ctx, id, patch); err != nil {
		return err
	}
	s.publish(ctx, events.TableLocations, events.OpUpdate, id)
	return nil
}

// DeleteLocation removes a location.
func (s *DataService) DeleteLocation(ctx context.Context, id string) error {
	if err := s.locations.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, events.TableLocations, events.OpDelete, id)
	return nil
}

// UpdateInspection applies a partial patch, e.g. rescheduling the date.
func (s *DataService) UpdateInspection(ctx context.Context, id string, patch domain.InspectionPatch) error {
	if err := s.inspections.Update(ctx, id, patch); err != nil {
		return err
	}
	s.publish(ctx, events.TableInspections, events.OpUpdate, id)
	return nil
}

// AssignSelfAsAuditor writes the caller's display name into auditor
// slot 1 or 2. An occupied slot is overwritten; last caller wins.
func (s *DataService) AssignSelfAsAuditor(ctx context.Context, caller *domain.AppUser, id string, slot int) error {
	if caller == nil {
		return apperrors.NewUnauthorized("not authenticated")
	}
	name := caller.Name
	var patch domain.InspectionPatch
	switch slot {
	case 1:
		patch.Auditor1 = &name
	case 2:
		patch.Auditor2 = &name
	default:
		return apperrors.NewValidationError("auditor slot must be 1 or 2", nil)
	}
	if err := s.inspections.Update(ctx, id, patch); err != nil {
		return err
	}
	s.publish(ctx, events.TableInspections, events.OpUpdate, id)
	return nil
}

// ToggleInspectionStatus flips Pending/Complete and returns the new
// status. The flip happens in one store statement, so sequential
// toggles are an involution and concurrent togglers cannot lose writes.
func (s *DataService) ToggleInspectionStatus(ctx context.Context, id string) (domain.InspectionStatus, error) {
	status, err := s.inspections.ToggleStatus(ctx, id)
	if err != nil {
		return "", err
	}
	s.publish(ctx, events.TableInspections, events.OpUpdate, id)
	return status, nil
}

// UpdateUserProfile patches the caller's own profile row.
func (s *DataService) UpdateUserProfile(ctx context.Context, caller *domain.AppUser, patch domain.AppUserPatch) error {
	if caller == nil {
		return apperrors.NewUnauthorized("not authenticated")
	}
	if err := s.users.Update(ctx, caller.ID, patch); err != nil {
		return err
	}
	s.publish(ctx, events.TableAppUsers, events.OpUpdate, caller.ID)
	return nil
}

// SetUserRoles writes the role array, then asks the gateway to mirror
// the admin flag into the identity metadata. The two phases are not
// transactional; a gateway failure leaves the store updated and the
// metadata stale, which the result reports instead of hiding.
func (s *DataService) SetUserRoles(ctx context.Context, caller *domain.AppUser, uid string, roles []domain.Role) (RoleUpdateResult, error) {
	if err := s.users.SetRoles(ctx, uid, roles); err != nil {
		return RoleUpdateResult{}, err
	}
	s.publish(ctx, events.TableAppUsers, events.OpUpdate, uid)

	result := RoleUpdateResult{StoreUpdated: true}
	admin := false
	for _, role := range roles {
		if role == domain.RoleAdmin {
			admin = true
		}
	}
	if err := s.gateway.SetAdminClaim(ctx, caller, uid, admin); err != nil {
		s.logger.Warn("admin claim mirror failed; role array and identity metadata diverge",
			zap.String("uid", uid), zap.Error(err))
		result.MirrorErr = err
		return result, nil
	}
	result.ClaimsMirrored = true
	return result, nil
}

// VerifyUser marks a profile Verified.
func (s *DataService) VerifyUser(ctx context.Context, uid string) error {
	if err := s.users.SetStatus(ctx, uid, domain.StatusVerified); err != nil {
		return err
	}
	s.publish(ctx, events.TableAppUsers, events.OpUpdate, uid)
	return nil
}

// DeleteUserAdmin delegates the whole deletion to the privileged
// gateway, which removes both the identity record and the profile row.
func (s *DataService) DeleteUserAdmin(ctx context.Context, caller *domain.AppUser, uid string) error {
	return s.gateway.DeleteUser(ctx, caller, uid)
}

// UpdateUserAdmin patches any profile row, e.g. department reassignment.
func (s *DataService) UpdateUserAdmin(ctx context.Context, uid string, patch domain.AppUserPatch) error {
	if err := s.users.Update(ctx, uid, patch); err != nil {
		return err
	}
	s.publish(ctx, events.TableAppUsers, events.OpUpdate, uid)
	return nil
}

func (s *DataService) publish(ctx context.Context, table events.Table, op events.Op, rowID string) {
	if err := s.dispatcher.Publish(ctx, events.NewEvent(table, op, rowID)); err != nil {
		s.logger.Warn("publish change event", zap.String("table", string(table)), zap.Error(err))
	}
}
