package report

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workloop/workloop-backend-go/internal/domain/auth"
	"github.com/workloop/workloop-backend-go/internal/domain/report"
	"github.com/workloop/workloop-backend-go/internal/domain/user"
	"github.com/workloop/workloop-backend-go/internal/pkg/ws"
)

// fakeReportRepo is an in-memory report.Repository.
type fakeReportRepo struct {
	reports map[string]report.Report
	nextID  int
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: make(map[string]report.Report)}
}

func (f *fakeReportRepo) Create(ctx context.Context, newReport report.Report) (report.Report, error) {
	f.nextID++
	newReport.ID = "r-" + strconv.Itoa(f.nextID)
	newReport.CreatedAt = time.Now()
	newReport.UpdatedAt = newReport.CreatedAt
	f.reports[newReport.ID] = newReport
	return newReport, nil
}

func (f *fakeReportRepo) GetByID(ctx context.Context, companyID, id string) (report.Report, error) {
	r, ok := f.reports[id]
	if !ok || r.CompanyID != companyID {
		return report.Report{}, report.ErrReportNotFound
	}
	return r, nil
}

func (f *fakeReportRepo) ListByAuthor(ctx context.Context, companyID, userID string) ([]report.Report, error) {
	var out []report.Report
	for _, r := range f.reports {
		if r.CompanyID == companyID && r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReportRepo) ListByTeamLead(ctx context.Context, companyID, teamLeadID string) ([]report.Report, error) {
	// The fake cannot join on the team relation; tests that need this
	// path seed only reports of the lead's own team.
	var out []report.Report
	for _, r := range f.reports {
		if r.CompanyID == companyID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReportRepo) Update(ctx context.Context, companyID, id, content string, fileURL *string) (report.Report, error) {
	r, err := f.GetByID(ctx, companyID, id)
	if err != nil {
		return report.Report{}, err
	}
	r.Content = content
	r.FileURL = fileURL
	r.UpdatedAt = time.Now()
	f.reports[id] = r
	return r, nil
}

func (f *fakeReportRepo) UpdateStatus(ctx context.Context, companyID, id string, status report.Status) (report.Report, error) {
	r, err := f.GetByID(ctx, companyID, id)
	if err != nil {
		return report.Report{}, err
	}
	r.Status = status
	r.UpdatedAt = time.Now()
	f.reports[id] = r
	return r, nil
}

func (f *fakeReportRepo) Delete(ctx context.Context, companyID, id string) error {
	if _, err := f.GetByID(ctx, companyID, id); err != nil {
		return err
	}
	delete(f.reports, id)
	return nil
}

func (f *fakeReportRepo) DeleteByAuthor(ctx context.Context, companyID, userID string) error {
	for id, r := range f.reports {
		if r.CompanyID == companyID && r.UserID == userID {
			delete(f.reports, id)
		}
	}
	return nil
}

// fakeUserDirectory serves GetByID lookups; other methods are unused here.
type fakeUserDirectory struct {
	users map[string]user.User
}

func (f *fakeUserDirectory) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserDirectory) GetForAuth(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserDirectory) GetByID(ctx context.Context, companyID, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok || u.CompanyID != companyID {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserDirectory) Create(ctx context.Context, newUser user.User) (user.User, error) {
	f.users[newUser.ID] = newUser
	return newUser, nil
}

func (f *fakeUserDirectory) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

func (f *fakeUserDirectory) ListEmployeesByTeamLead(ctx context.Context, companyID, teamLeadID string) ([]user.User, error) {
	return nil, nil
}

func (f *fakeUserDirectory) UpdateProfile(ctx context.Context, companyID, id, name string) (user.User, error) {
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserDirectory) UpdatePassword(ctx context.Context, companyID, id, passwordHash string) error {
	return user.ErrUserNotFound
}

func (f *fakeUserDirectory) Delete(ctx context.Context, companyID, id string) error {
	return user.ErrUserNotFound
}

type recordingDispatcher struct {
	emitted []emittedEvent
}

type emittedEvent struct {
	channel string
	event   ws.Event
}

func (d *recordingDispatcher) Emit(channel string, event ws.Event) {
	d.emitted = append(d.emitted, emittedEvent{channel: channel, event: event})
}

const (
	testCompany = "comp-1"
	testLead    = "lead-1"
)

func reportFixtures() (*fakeReportRepo, *recordingDispatcher, Service) {
	lead := testLead
	userRepo := &fakeUserDirectory{users: map[string]user.User{
		"lead-1": {ID: "lead-1", CompanyID: testCompany, Role: user.RoleTeamLead},
		"emp-1":  {ID: "emp-1", CompanyID: testCompany, Role: user.RoleEmployee, TeamLeadID: &lead},
		"emp-2":  {ID: "emp-2", CompanyID: testCompany, Role: user.RoleEmployee, TeamLeadID: func() *string { s := "lead-2"; return &s }()},
	}}
	reportRepo := newFakeReportRepo()
	dispatcher := &recordingDispatcher{}
	svc := NewReportService(reportRepo, userRepo, dispatcher)
	return reportRepo, dispatcher, svc
}

func employeePrincipal(id string) auth.Principal {
	return auth.Principal{UserID: id, Role: user.RoleEmployee, CompanyID: testCompany}
}

func teamLeadPrincipal() auth.Principal {
	return auth.Principal{UserID: testLead, Role: user.RoleTeamLead, CompanyID: testCompany}
}

func TestSubmit_CreatesPending(t *testing.T) {
	ctx := context.Background()
	_, dispatcher, svc := reportFixtures()

	resp, err := svc.Submit(ctx, employeePrincipal("emp-1"), report.SubmitReportRequest{Content: "daily summary"})

	require.NoError(t, err)
	assert.Equal(t, report.StatusPending, resp.Status)
	assert.Equal(t, "emp-1", resp.UserID)
	// Submission is silent; only review notifies.
	assert.Empty(t, dispatcher.emitted)
}

func TestSubmit_RequiresContent(t *testing.T) {
	ctx := context.Background()
	_, _, svc := reportFixtures()

	_, err := svc.Submit(ctx, employeePrincipal("emp-1"), report.SubmitReportRequest{Content: "   "})
	assert.ErrorIs(t, err, report.ErrMissingContent)
}

func TestUpdate_AuthorOnly(t *testing.T) {
	ctx := context.Background()
	_, _, svc := reportFixtures()

	created, err := svc.Submit(ctx, employeePrincipal("emp-1"), report.SubmitReportRequest{Content: "v1"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, employeePrincipal("emp-2"), created.ID, report.UpdateReportRequest{Content: "v2"})
	assert.ErrorIs(t, err, report.ErrNotAuthor)
}

func TestUpdate_FrozenAfterReview(t *testing.T) {
	ctx := context.Background()
	_, _, svc := reportFixtures()

	created, err := svc.Submit(ctx, employeePrincipal("emp-1"), report.SubmitReportRequest{Content: "v1"})
	require.NoError(t, err)

	_, err = svc.Review(ctx, teamLeadPrincipal(), created.ID, report.ReviewRequest{Status: report.StatusApproved})
	require.NoError(t, err)

	_, err = svc.Update(ctx, employeePrincipal("emp-1"), created.ID, report.UpdateReportRequest{Content: "v2"})
	assert.ErrorIs(t, err, report.ErrAlreadyReviewed)

	err = svc.Delete(ctx, employeePrincipal("emp-1"), created.ID)
	assert.ErrorIs(t, err, report.ErrAlreadyReviewed)
}

func TestDelete_RemovesPendingReport(t *testing.T) {
	ctx := context.Background()
	reportRepo, _, svc := reportFixtures()

	created, err := svc.Submit(ctx, employeePrincipal("emp-1"), report.SubmitReportRequest{Content: "v1"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, employeePrincipal("emp-1"), created.ID))
	_, err = reportRepo.GetByID(ctx, testCompany, created.ID)
	assert.ErrorIs(t, err, report.ErrReportNotFound)
}

func TestReview_InvalidDecision(t *testing.T) {
	ctx := context.Background()
	_, _, svc := reportFixtures()

	created, err := svc.Submit(ctx, employeePrincipal("emp-1"), report.SubmitReportRequest{Content: "v1"})
	require.NoError(t, err)

	// PENDING is the submission state, not a decision a reviewer can set.
	_, err = svc.Review(ctx, teamLeadPrincipal(), created.ID, report.ReviewRequest{Status: report.StatusPending})
	assert.ErrorIs(t, err, report.ErrInvalidDecision)
}

func TestReview_AuthorOfAnotherTeam(t *testing.T) {
	ctx := context.Background()
	_, _, svc := reportFixtures()

	created, err := svc.Submit(ctx, employeePrincipal("emp-2"), report.SubmitReportRequest{Content: "v1"})
	require.NoError(t, err)

	_, err = svc.Review(ctx, teamLeadPrincipal(), created.ID, report.ReviewRequest{Status: report.StatusApproved})
	assert.ErrorIs(t, err, report.ErrNotManagedByLead)
}

func TestReview_NotifiesAuthor(t *testing.T) {
	ctx := context.Background()
	_, dispatcher, svc := reportFixtures()

	created, err := svc.Submit(ctx, employeePrincipal("emp-1"), report.SubmitReportRequest{Content: "v1"})
	require.NoError(t, err)

	resp, err := svc.Review(ctx, teamLeadPrincipal(), created.ID, report.ReviewRequest{Status: report.StatusRejected})
	require.NoError(t, err)
	assert.Equal(t, report.StatusRejected, resp.Status)

	require.Len(t, dispatcher.emitted, 1)
	assert.Equal(t, ws.EmployeeChannel("emp-1"), dispatcher.emitted[0].channel)
	assert.Equal(t, ws.EventReportReviewed, dispatcher.emitted[0].event.Type)
}

func TestReview_ReReviewNotifiesAgain(t *testing.T) {
	ctx := context.Background()
	_, dispatcher, svc := reportFixtures()

	created, err := svc.Submit(ctx, employeePrincipal("emp-1"), report.SubmitReportRequest{Content: "v1"})
	require.NoError(t, err)

	_, err = svc.Review(ctx, teamLeadPrincipal(), created.ID, report.ReviewRequest{Status: report.StatusRejected})
	require.NoError(t, err)

	resp, err := svc.Review(ctx, teamLeadPrincipal(), created.ID, report.ReviewRequest{Status: report.StatusApproved})
	require.NoError(t, err)
	assert.Equal(t, report.StatusApproved, resp.Status)
	assert.Len(t, dispatcher.emitted, 2)
}
