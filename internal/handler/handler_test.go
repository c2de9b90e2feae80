package handler

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/campus-complaint-portal/internal/models"
	"github.com/noah-isme/campus-complaint-portal/internal/service"
	"github.com/noah-isme/campus-complaint-portal/pkg/config"
)

const testCookieName = "ccp_session"

type fakeUserRepo struct {
	users     map[string]*models.User
	staffIDs  map[string]bool
	auditLogs []*models.AuditLog
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:    make(map[string]*models.User),
		staffIDs: make(map[string]bool),
	}
}

func (f *fakeUserRepo) addUser(username, password string, superuser, staff bool) *models.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	user := &models.User{
		ID:           "user-" + username,
		Username:     username,
		PasswordHash: string(hash),
		FullName:     username,
		IsSuperuser:  superuser,
		Active:       true,
	}
	f.users[username] = user
	if staff {
		f.staffIDs[user.ID] = true
	}
	return user
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return user, nil
}

func (f *fakeUserRepo) IsInGroup(ctx context.Context, userID, group string) (bool, error) {
	if group != models.StaffGroupName {
		return false, nil
	}
	return f.staffIDs[userID], nil
}

func (f *fakeUserRepo) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	return nil
}

func (f *fakeUserRepo) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	f.auditLogs = append(f.auditLogs, log)
	return nil
}

type fakeComplaintRepo struct {
	complaints []models.Complaint
	nextID     int
}

func (f *fakeComplaintRepo) Create(ctx context.Context, complaint *models.Complaint) error {
	f.nextID++
	if complaint.ID == "" {
		complaint.ID = fmt.Sprintf("complaint-%d", f.nextID)
	}
	complaint.CreatedAt = time.Now().UTC()
	f.complaints = append(f.complaints, *complaint)
	return nil
}

func (f *fakeComplaintRepo) List(ctx context.Context, filter models.ComplaintFilter) ([]models.Complaint, error) {
	var out []models.Complaint
	for _, c := range f.complaints {
		if filter.StudentID != "" && c.StudentID != filter.StudentID {
			continue
		}
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeComplaintRepo) FindByID(ctx context.Context, id string) (*models.Complaint, error) {
	for i := range f.complaints {
		if f.complaints[i].ID == id {
			return &f.complaints[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeComplaintRepo) UpdateStatus(ctx context.Context, id string, status models.ComplaintStatus) (bool, error) {
	for i := range f.complaints {
		if f.complaints[i].ID == id {
			f.complaints[i].Status = status
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeComplaintRepo) Stats(ctx context.Context) (*models.ComplaintStats, error) {
	stats := &models.ComplaintStats{Total: len(f.complaints)}
	for _, c := range f.complaints {
		switch c.Status {
		case models.StatusPending:
			stats.Pending++
		case models.StatusInProgress:
			stats.InProgress++
		case models.StatusResolved:
			stats.Resolved++
		}
	}
	return stats, nil
}

type testEnv struct {
	router     *gin.Engine
	users      *fakeUserRepo
	complaints *fakeComplaintRepo
	auth       *service.AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := newFakeUserRepo()
	complaints := &fakeComplaintRepo{}
	validate := validator.New()
	logger := zap.NewNop()

	authSvc := service.NewAuthService(users, validate, logger, service.AuthConfig{
		SessionSecret: "test-secret",
		SessionExpiry: time.Hour,
		Issuer:        "campus-complaint-portal",
	})
	complaintSvc := service.NewComplaintService(complaints, validate, nil, logger)
	cacheSvc := service.NewCacheService(nil, nil, time.Minute, logger, false)
	dashboardSvc := service.NewDashboardService(complaintSvc, cacheSvc, time.Minute, logger)
	metricsSvc := service.NewMetricsService()

	session := config.SessionConfig{
		Secret:     "test-secret",
		Expiration: time.Hour,
		CookieName: testCookieName,
	}

	router := gin.New()
	router.LoadHTMLGlob("../../web/templates/*.gohtml")
	Register(router, Routes{
		Auth:      NewAuthHandler(authSvc, session),
		Complaint: NewComplaintHandler(complaintSvc, dashboardSvc),
		Dashboard: NewDashboardHandler(complaintSvc, dashboardSvc),
	}, authSvc, metricsSvc, session)

	return &testEnv{router: router, users: users, complaints: complaints, auth: authSvc}
}

func performRequest(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// sessionCookie issues a signed session for the user without going
// through the login form.
func (e *testEnv) sessionCookie(t *testing.T, user *models.User, role models.Role) *http.Cookie {
	t.Helper()
	token, err := e.auth.IssueSession(user, role)
	require.NoError(t, err)
	return &http.Cookie{Name: testCookieName, Value: token}
}
