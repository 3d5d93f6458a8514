package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workloop/workloop-backend-go/internal/domain/chat"
	"github.com/workloop/workloop-backend-go/internal/domain/report"
	"github.com/workloop/workloop-backend-go/internal/domain/task"
	"github.com/workloop/workloop-backend-go/internal/domain/user"
	"github.com/workloop/workloop-backend-go/internal/pkg/database"
	"github.com/workloop/workloop-backend-go/internal/repository/postgresql"
)

var (
	dbOnce sync.Once
	db     *database.DB
	dbErr  error
)

// testDB connects once per test binary. Tests are skipped when
// TEST_DATABASE_URL is not set so the suite stays runnable without a
// local PostgreSQL.
func testDB(t *testing.T) *database.DB {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	dbOnce.Do(func() {
		db, dbErr = database.NewPostgreSQLDB(dsn)
	})
	require.NoError(t, dbErr)
	return db
}

func truncateAll(t *testing.T, ctx context.Context, db *database.DB) {
	for _, table := range []string{"chat_messages", "reports", "tasks", "refresh_tokens", "users", "companies"} {
		_, err := db.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err)
	}
}

func createCompany(t *testing.T, ctx context.Context, db *database.DB, name string) string {
	var id string
	err := db.QueryRow(ctx, `INSERT INTO companies (name) VALUES ($1) RETURNING id`, name).Scan(&id)
	require.NoError(t, err)
	return id
}

func createUser(t *testing.T, ctx context.Context, db *database.DB, companyID string, role user.Role, teamLeadID *string) user.User {
	repo := postgresql.NewUserRepository(db)
	email := fmt.Sprintf("u-%d@example.com", time.Now().UnixNano())
	created, err := repo.Create(ctx, user.User{
		CompanyID:    companyID,
		Name:         "Test User",
		Email:        email,
		PasswordHash: "x",
		Role:         role,
		TeamLeadID:   teamLeadID,
	})
	require.NoError(t, err)
	return created
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	truncateAll(t, ctx, db)

	companyID := createCompany(t, ctx, db, "company-a")
	repo := postgresql.NewUserRepository(db)

	newLead := func() user.User {
		return user.User{
			CompanyID:    companyID,
			Name:         "Lead",
			Email:        "lead@example.com",
			PasswordHash: "x",
			Role:         user.RoleTeamLead,
		}
	}

	_, err := repo.Create(ctx, newLead())
	require.NoError(t, err)

	// A second insert with the same email loses to the unique index and
	// must surface as the domain error, not a raw driver error.
	_, err = repo.Create(ctx, newLead())
	assert.ErrorIs(t, err, user.ErrUserEmailExists)
}

func TestTaskRepository_TenantScoping(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	truncateAll(t, ctx, db)

	companyA := createCompany(t, ctx, db, "company-a")
	companyB := createCompany(t, ctx, db, "company-b")
	lead := createUser(t, ctx, db, companyA, user.RoleTeamLead, nil)
	employee := createUser(t, ctx, db, companyA, user.RoleEmployee, &lead.ID)

	repo := postgresql.NewTaskRepository(db)
	created, err := repo.Create(ctx, task.Task{
		CompanyID:    companyA,
		Title:        "scoped",
		Deadline:     time.Now().Add(time.Hour),
		Status:       task.StatusPending,
		AssignedToID: employee.ID,
		AssignedByID: lead.ID,
	})
	require.NoError(t, err)

	// Visible inside the owning tenant.
	_, err = repo.GetByID(ctx, companyA, created.ID)
	assert.NoError(t, err)

	// Invisible from another tenant.
	_, err = repo.GetByID(ctx, companyB, created.ID)
	assert.ErrorIs(t, err, task.ErrTaskNotFound)
}

func TestTaskRepository_PurgeCompletedBefore(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	truncateAll(t, ctx, db)

	companyID := createCompany(t, ctx, db, "company-a")
	lead := createUser(t, ctx, db, companyID, user.RoleTeamLead, nil)
	employee := createUser(t, ctx, db, companyID, user.RoleEmployee, &lead.ID)

	repo := postgresql.NewTaskRepository(db)

	newTask := func() task.Task {
		return task.Task{
			CompanyID:    companyID,
			Title:        "t",
			Deadline:     time.Now().Add(time.Hour),
			Status:       task.StatusPending,
			AssignedToID: employee.ID,
			AssignedByID: lead.ID,
		}
	}

	stale, err := repo.Create(ctx, newTask())
	require.NoError(t, err)
	fresh, err := repo.Create(ctx, newTask())
	require.NoError(t, err)
	open, err := repo.Create(ctx, newTask())
	require.NoError(t, err)

	old := time.Now().Add(-48 * time.Hour)
	now := time.Now()
	_, err = repo.UpdateStatus(ctx, companyID, stale.ID, task.StatusCompleted, &old)
	require.NoError(t, err)
	_, err = repo.UpdateStatus(ctx, companyID, fresh.ID, task.StatusCompleted, &now)
	require.NoError(t, err)

	purged, err := repo.PurgeCompletedBefore(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	_, err = repo.GetByID(ctx, companyID, stale.ID)
	assert.ErrorIs(t, err, task.ErrTaskNotFound)
	_, err = repo.GetByID(ctx, companyID, fresh.ID)
	assert.NoError(t, err)
	_, err = repo.GetByID(ctx, companyID, open.ID)
	assert.NoError(t, err)
}

func TestChatRepository_ConversationSymmetry(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	truncateAll(t, ctx, db)

	companyID := createCompany(t, ctx, db, "company-a")
	lead := createUser(t, ctx, db, companyID, user.RoleTeamLead, nil)
	employee := createUser(t, ctx, db, companyID, user.RoleEmployee, &lead.ID)
	bystander := createUser(t, ctx, db, companyID, user.RoleEmployee, &lead.ID)

	repo := postgresql.NewChatRepository(db)
	for i, pair := range [][2]string{
		{employee.ID, lead.ID},
		{lead.ID, employee.ID},
		{bystander.ID, lead.ID},
	} {
		_, err := repo.Create(ctx, chat.Message{
			CompanyID:  companyID,
			SenderID:   pair[0],
			ReceiverID: pair[1],
			Content:    fmt.Sprintf("msg-%d", i),
		})
		require.NoError(t, err)
	}

	forward, err := repo.GetConversation(ctx, companyID, employee.ID, lead.ID)
	require.NoError(t, err)
	backward, err := repo.GetConversation(ctx, companyID, lead.ID, employee.ID)
	require.NoError(t, err)

	// Same conversation regardless of who asks, bystander excluded.
	require.Len(t, forward, 2)
	assert.Equal(t, forward, backward)

	require.NoError(t, repo.DeleteConversation(ctx, companyID, employee.ID, lead.ID))
	emptied, err := repo.GetConversation(ctx, companyID, employee.ID, lead.ID)
	require.NoError(t, err)
	assert.Empty(t, emptied)

	// The bystander's conversation survives the pair delete.
	other, err := repo.GetConversation(ctx, companyID, bystander.ID, lead.ID)
	require.NoError(t, err)
	assert.Len(t, other, 1)
}

func TestReportRepository_ListByTeamLead(t *testing.T) {
	ctx := context.Background()
	db := testDB(t)
	truncateAll(t, ctx, db)

	companyID := createCompany(t, ctx, db, "company-a")
	lead := createUser(t, ctx, db, companyID, user.RoleTeamLead, nil)
	otherLead := createUser(t, ctx, db, companyID, user.RoleTeamLead, nil)
	mine := createUser(t, ctx, db, companyID, user.RoleEmployee, &lead.ID)
	theirs := createUser(t, ctx, db, companyID, user.RoleEmployee, &otherLead.ID)

	repo := postgresql.NewReportRepository(db)
	for _, author := range []string{mine.ID, theirs.ID} {
		_, err := repo.Create(ctx, report.Report{
			CompanyID: companyID,
			UserID:    author,
			Content:   "report",
			Status:    report.StatusPending,
		})
		require.NoError(t, err)
	}

	reports, err := repo.ListByTeamLead(ctx, companyID, lead.ID)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, mine.ID, reports[0].UserID)
}
