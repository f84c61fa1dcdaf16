package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/inspection-service/internal/domain"
	"github.com/spec-kit/inspection-service/internal/repository"
)

type fakeDepartmentRepo struct {
	items  map[string]domain.Department
	nextID int
}

func newFakeDepartmentRepo() *fakeDepartmentRepo {
	return &fakeDepartmentRepo{items: map[string]domain.Department{}}
}

func (f *fakeDepartmentRepo) Create(_ context.Context, dept *domain.Department) error {
	f.nextID++
	dept.ID = fmt.Sprintf("dept-%d", f.nextID)
	f.items[dept.ID] = *dept
	return nil
}

func (f *fakeDepartmentRepo) Update(_ context.Context, id string, patch domain.DepartmentPatch) error {
	dept, ok := f.items[id]
	if !ok {
		return pgx.ErrNoRows
	}
	if patch.Name != nil {
		dept.Name = *patch.Name
	}
	if patch.Acronym != nil {
		dept.Acronym = *patch.Acronym
	}
	f.items[id] = dept
	return nil
}

func (f *fakeDepartmentRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.items, id)
	return nil
}

func (f *fakeDepartmentRepo) GetByID(_ context.Context, id string) (*domain.Department, error) {
	dept, ok := f.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &dept, nil
}

func (f *fakeDepartmentRepo) List(_ context.Context) ([]domain.Department, error) {
	out := make([]domain.Department, 0, len(f.items))
	for _, dept := range f.items {
		out = append(out, dept)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type fakeLocationRepo struct {
	items  map[string]domain.Location
	nextID int
}

func newFakeLocationRepo() *fakeLocationRepo {
	return &fakeLocationRepo{items: map[string]domain.Location{}}
}

func (f *fakeLocationRepo) Create(_ context.Context, loc *domain.Location) error {
	f.nextID++
	loc.ID = fmt.Sprintf("loc-%d", f.nextID)
	f.items[loc.ID] = *loc
	return nil
}

func (f *fakeLocationRepo) Update(_ context.Context, id string, patch domain.LocationPatch) error {
	loc, ok := f.items[id]
	if !ok {
		return pgx.ErrNoRows
	}
	if patch.Name != nil {
		loc.Name = *patch.Name
	}
	if patch.DepartmentID != nil {
		loc.DepartmentID = *patch.DepartmentID
	}
	if patch.Supervisor != nil {
		loc.Supervisor = *patch.Supervisor
	}
	if patch.ContactNumber != nil {
		loc.ContactNumber = *patch.ContactNumber
	}
	f.items[id] = loc
	return nil
}

func (f *fakeLocationRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.items, id)
	return nil
}

func (f *fakeLocationRepo) GetByID(_ context.Context, id string) (*domain.Location, error) {
	loc, ok := f.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &loc, nil
}

func (f *fakeLocationRepo) List(_ context.Context) ([]domain.Location, error) {
	out := make([]domain.Location, 0, len(f.items))
	for _, loc := range f.items {
		out = append(out, loc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type fakeInspectionRepo struct {
	items  map[string]domain.Inspection
	nextID int
}

func newFakeInspectionRepo() *fakeInspectionRepo {
	return &fakeInspectionRepo{items: map[string]domain.Inspection{}}
}

func (f *fakeInspectionRepo) Create(_ context.Context, ins *domain.Inspection) error {
	f.nextID++
	ins.ID = fmt.Sprintf("ins-%d", f.nextID)
	f.items[ins.ID] = *ins
	return nil
}

func (f *fakeInspectionRepo) Update(_ context.Context, id string, patch domain.InspectionPatch) error {
	ins, ok := f.items[id]
	if !ok {
		return pgx.ErrNoRows
	}
	if patch.Date != nil {
		ins.Date = *patch.Date
	}
	if patch.Auditor1 != nil {
		ins.Auditor1 = patch.Auditor1
	}
	if patch.Auditor2 != nil {
		ins.Auditor2 = patch.Auditor2
	}
	if patch.Status != nil {
		ins.Status = *patch.Status
	}
	f.items[id] = ins
	return nil
}

func (f *fakeInspectionRepo) GetByID(_ context.Context, id string) (*domain.Inspection, error) {
	ins, ok := f.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &ins, nil
}

func (f *fakeInspectionRepo) List(_ context.Context) ([]domain.Inspection, error) {
	out := make([]domain.Inspection, 0, len(f.items))
	for _, ins := range f.items {
		out = append(out, ins)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (f *fakeInspectionRepo) ToggleStatus(_ context.Context, id string) (domain.InspectionStatus, error) {
	ins, ok := f.items[id]
	if !ok {
		return "", pgx.ErrNoRows
	}
	ins.Status = ins.Status.Toggle()
	f.items[id] = ins
	return ins.Status, nil
}

type fakeAppUserRepo struct {
	items     map[string]domain.AppUser
	createErr error
}

func newFakeAppUserRepo() *fakeAppUserRepo {
	return &fakeAppUserRepo{items: map[string]domain.AppUser{}}
}

func (f *fakeAppUserRepo) Create(_ context.Context, user *domain.AppUser) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.items[user.ID] = *user
	return nil
}

func (f *fakeAppUserRepo) Update(_ context.Context, id string, patch domain.AppUserPatch) error {
	user, ok := f.items[id]
	if !ok {
		return pgx.ErrNoRows
	}
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Phone != nil {
		user.Phone = patch.Phone
	}
	if patch.DepartmentID != nil {
		user.DepartmentID = patch.DepartmentID
	}
	if patch.PhotoURL != nil {
		user.PhotoURL = patch.PhotoURL
	}
	f.items[id] = user
	return nil
}

func (f *fakeAppUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.items, id)
	return nil
}

func (f *fakeAppUserRepo) GetByID(_ context.Context, id string) (*domain.AppUser, error) {
	user, ok := f.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (f *fakeAppUserRepo) List(_ context.Context) ([]domain.AppUser, error) {
	out := make([]domain.AppUser, 0, len(f.items))
	for _, user := range f.items {
		out = append(out, user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeAppUserRepo) SetRoles(_ context.Context, id string, roles []domain.Role) error {
	user, ok := f.items[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.Roles = roles
	f.items[id] = user
	return nil
}

func (f *fakeAppUserRepo) AddRole(_ context.Context, id string, role domain.Role) error {
	user, ok := f.items[id]
	if !ok {
		return nil
	}
	if !user.HasRole(role) {
		user.Roles = append(user.Roles, role)
	}
	f.items[id] = user
	return nil
}

func (f *fakeAppUserRepo) RemoveRole(_ context.Context, id string, role domain.Role) error {
	user, ok := f.items[id]
	if !ok {
		return nil
	}
	kept := user.Roles[:0]
	for _, held := range user.Roles {
		if held != role {
			kept = append(kept, held)
		}
	}
	user.Roles = kept
	f.items[id] = user
	return nil
}

func (f *fakeAppUserRepo) SetStatus(_ context.Context, id string, status domain.VerificationStatus) error {
	user, ok := f.items[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.Status = status
	f.items[id] = user
	return nil
}

type fakeIdentityRepo struct {
	items  map[string]domain.Identity
	nextID int
}

func newFakeIdentityRepo() *fakeIdentityRepo {
	return &fakeIdentityRepo{items: map[string]domain.Identity{}}
}

func (f *fakeIdentityRepo) Create(_ context.Context, identity *domain.Identity) error {
	if identity.ID == "" {
		f.nextID++
		identity.ID = fmt.Sprintf("identity-%d", f.nextID)
	}
	f.items[identity.ID] = *identity
	return nil
}

func (f *fakeIdentityRepo) GetByID(_ context.Context, id string) (*domain.Identity, error) {
	identity, ok := f.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &identity, nil
}

func (f *fakeIdentityRepo) GetByEmail(_ context.Context, email string) (*domain.Identity, error) {
	for _, identity := range f.items {
		if identity.Email == email {
			found := identity
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeIdentityRepo) UpdatePasswordHash(_ context.Context, id, hash string) error {
	identity, ok := f.items[id]
	if !ok {
		return pgx.ErrNoRows
	}
	identity.PasswordHash = hash
	f.items[id] = identity
	return nil
}

func (f *fakeIdentityRepo) SetAdminFlag(_ context.Context, id string, admin bool) error {
	identity, ok := f.items[id]
	if !ok {
		return pgx.ErrNoRows
	}
	identity.Admin = admin
	f.items[id] = identity
	return nil
}

func (f *fakeIdentityRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(f.items, id)
	return nil
}

type fakeResetRepo struct {
	items  map[string]repository.PasswordResetToken
	nextID int
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{items: map[string]repository.PasswordResetToken{}}
}

func (f *fakeResetRepo) Create(_ context.Context, token *repository.PasswordResetToken) error {
	f.nextID++
	token.ID = fmt.Sprintf("reset-%d", f.nextID)
	token.CreatedAt = time.Now()
	f.items[token.ID] = *token
	return nil
}

func (f *fakeResetRepo) GetByToken(_ context.Context, tokenStr string) (*repository.PasswordResetToken, error) {
	for _, token := range f.items {
		if token.Token == tokenStr {
			found := token
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeResetRepo) MarkUsed(_ context.Context, id string) error {
	token, ok := f.items[id]
	if !ok {
		return pgx.ErrNoRows
	}
	now := time.Now()
	token.UsedAt = &now
	f.items[id] = token
	return nil
}

type fakeGateway struct {
	err          error
	deleteCalls  []string
	claimTargets map[string]bool
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{claimTargets: map[string]bool{}}
}

func (f *fakeGateway) DeleteUser(_ context.Context, _ *domain.AppUser, uid string) error {
	if f.err != nil {
		return f.err
	}
	f.deleteCalls = append(f.deleteCalls, uid)
	return nil
}

func (f *fakeGateway) SetAdminClaim(_ context.Context, _ *domain.AppUser, uid string, admin bool) error {
	if f.err != nil {
		return f.err
	}
	f.claimTargets[uid] = admin
	return nil
}
