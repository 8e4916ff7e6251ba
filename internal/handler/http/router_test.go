package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/assistant"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/attendance"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/auth"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/employee"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/domain/leave"
	"github.com/hrstreamline/hrstreamline-backend-go/internal/pkg/jwt"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthService struct {
	auth.AuthService
	jwtService *jwt.JWTService
}

func (f *fakeAuthService) Logout(_ context.Context, claims auth.Claims) error {
	f.jwtService.RevokeToken(claims.TokenID, claims.ExpiresAt)
	return nil
}

func (f *fakeAuthService) Login(_ context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	return auth.TokenResponse{}, auth.ErrInvalidCredentials
}

type fakeEmployeeService struct {
	employee.EmployeeService
}

func (f *fakeEmployeeService) GetEmployee(_ context.Context, claims auth.Claims, id int64) (employee.EmployeeResponse, error) {
	if id == 404 {
		return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
	}
	return employee.EmployeeResponse{ID: id}, nil
}

type fakeAttendanceService struct {
	attendance.AttendanceService
	lastFilter attendance.Filter
}

func (f *fakeAttendanceService) ListMine(_ context.Context, _ auth.Claims, filter attendance.Filter) ([]attendance.AttendanceResponse, error) {
	f.lastFilter = filter
	return nil, nil
}

func (f *fakeAttendanceService) ClockIn(context.Context, auth.Claims) (attendance.AttendanceResponse, error) {
	return attendance.AttendanceResponse{}, attendance.ErrAlreadyClockedIn
}

type fakeLeaveService struct {
	leave.LeaveService
	rejected *leave.RejectLeaveRequestRequest
}

func (f *fakeLeaveService) CreateLeaveRequest(_ context.Context, _ auth.Claims, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if req.EndDate == "2024-07-30" {
		return leave.LeaveRequestResponse{}, leave.ErrInsufficientBalance
	}
	return leave.LeaveRequestResponse{ID: 1, Status: "Pending", DaysRequested: 2}, nil
}

func (f *fakeLeaveService) RejectLeaveRequest(_ context.Context, _ auth.Claims, id int64, req leave.RejectLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	f.rejected = &req
	return leave.LeaveRequestResponse{ID: id, Status: "Rejected", RejectionReason: req.RejectionReason}, nil
}

func (f *fakeLeaveService) ApproveLeaveRequest(_ context.Context, _ auth.Claims, id int64) (leave.LeaveRequestResponse, error) {
	return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestAlreadyProcessed
}

func (f *fakeLeaveService) GetLeaveBalance(context.Context, auth.Claims) (leave.LeaveBalanceResponse, error) {
	return leave.LeaveBalanceResponse{LeaveBalance: decimal.NewFromInt(4)}, nil
}

type fakeAssistantService struct {
	assistant.AssistantService
}

func (f *fakeAssistantService) Ask(_ context.Context, _ auth.Claims, req assistant.QueryRequest) (assistant.QueryResponse, error) {
	return assistant.QueryResponse{Question: req.Query, Answer: "There are 2 male employees."}, nil
}

type testEnv struct {
	server     *httptest.Server
	jwtService *jwt.JWTService
	attendance *fakeAttendanceService
	leave      *fakeLeaveService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	jwtService := jwt.NewJWTService("test-secret", "1h")
	env := &testEnv{
		jwtService: jwtService,
		attendance: &fakeAttendanceService{},
		leave:      &fakeLeaveService{},
	}
	h := Handlers{
		Auth:       NewAuthHandler(&fakeAuthService{jwtService: jwtService}),
		Employee:   NewEmployeeHandler(&fakeEmployeeService{}),
		Attendance: NewAttendanceHandler(env.attendance),
		Leave:      NewLeaveHandler(env.leave),
		Assistant:  NewAssistantHandler(&fakeAssistantService{}),
	}
	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("hrstreamline_job_runs_total 0\n"))
	})

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	env.server = httptest.NewServer(NewRouter(logger, jwtService, h, RouterOptions{
		AllowedOrigins: []string{"http://localhost:3000"},
		Metrics:        metrics,
		MetricsPath:    "/metrics",
	}))
	t.Cleanup(env.server.Close)
	return env
}

func (e *testEnv) token(t *testing.T, claims auth.Claims) string {
	t.Helper()
	token, _, err := e.jwtService.GenerateAccessToken(claims)
	require.NoError(t, err)
	return token
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func (e *testEnv) do(t *testing.T, method, path, token, body string) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, e.server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	}
	return resp.StatusCode, env
}

var (
	staffClaims   = auth.Claims{AuthID: 1, EmployeeID: 1, Rank: "staff", Department: "Engineering", FullName: "Jane Doe", Status: "Active"}
	hrAdminClaims = auth.Claims{AuthID: 2, EmployeeID: 2, Rank: auth.RankAdmin, Department: auth.DepartmentHumanResource, FullName: "Ann Admin", Status: "Active"}
)

func TestRouter_RequiresToken(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.do(t, http.MethodGet, "/api/v1/auth/home", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = env.do(t, http.MethodGet, "/api/v1/auth/home", "not-a-token", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body := env.do(t, http.MethodGet, "/api/v1/auth/home", env.token(t, staffClaims), "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"message":"API is working!"}`, string(body.Data))
}

func TestRouter_LogoutRevokesToken(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, staffClaims)

	status, _ := env.do(t, http.MethodPost, "/api/v1/auth/logout", token, "")
	assert.Equal(t, http.StatusOK, status)

	status, body := env.do(t, http.MethodGet, "/api/v1/auth/home", token, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	require.NotNil(t, body.Error)
	assert.Equal(t, "Token has been revoked", body.Error.Message)
}

func TestRouter_LoginErrors(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, http.MethodPost, "/api/v1/auth/login", "", `{"email":"a@b.co","password":"wrong-pass"}`)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", body.Error.Code)

	status, body = env.do(t, http.MethodPost, "/api/v1/auth/login", "", `{"email":"","password":""}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, body.Error.Details, "email")
	assert.Contains(t, body.Error.Details, "password")

	status, body = env.do(t, http.MethodPost, "/api/v1/auth/login", "", `{"email":"a@b.co"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, map[string]string{"password": "password is required"}, body.Error.Details)

	status, body = env.do(t, http.MethodPost, "/api/v1/auth/login", "", `{"password":"secret-pass"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, map[string]string{"email": "email is required"}, body.Error.Details)

	status, _ = env.do(t, http.MethodPost, "/api/v1/auth/login", "", `{`)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestRouter_HRAdminGuard(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.do(t, http.MethodPut, "/api/v1/employees/3/terminate", env.token(t, staffClaims), "")
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = env.do(t, http.MethodGet, "/api/v1/attendance/all-attendance", env.token(t, staffClaims), "")
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = env.do(t, http.MethodGet, "/api/v1/attendance/department-attendance", env.token(t, staffClaims), "")
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = env.do(t, http.MethodPost, "/api/v1/assistant/query", env.token(t, staffClaims), `{"query":"how many?"}`)
	assert.Equal(t, http.StatusForbidden, status)

	status, body := env.do(t, http.MethodPost, "/api/v1/assistant/query", env.token(t, hrAdminClaims), `{"query":"how many?"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"question":"how many?","answer":"There are 2 male employees.","processing_time_ms":0}`, string(body.Data))
}

func TestRouter_EmployeeByID(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, staffClaims)

	status, _ := env.do(t, http.MethodGet, "/api/v1/employees/abc", token, "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, body := env.do(t, http.MethodGet, "/api/v1/employees/404", token, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Employee not found", body.Error.Message)

	status, _ = env.do(t, http.MethodGet, "/api/v1/employees/7", token, "")
	assert.Equal(t, http.StatusOK, status)
}

func TestRouter_Attendance(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, staffClaims)

	status, body := env.do(t, http.MethodGet, "/api/v1/attendance/my-attendance?year=2024&month=7", token, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "No attendance records found.", body.Message)
	assert.JSONEq(t, `[]`, string(body.Data))
	require.NotNil(t, env.attendance.lastFilter.Month)
	assert.Equal(t, 7, *env.attendance.lastFilter.Month)

	status, _ = env.do(t, http.MethodGet, "/api/v1/attendance/my-attendance?month=13", token, "")
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = env.do(t, http.MethodPost, "/api/v1/attendance/clock-in", token, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Already clocked in today.", body.Error.Message)
}

func TestRouter_Leave(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, staffClaims)

	status, body := env.do(t, http.MethodPost, "/api/v1/leave/request", token,
		`{"leave_type":"Annual","start_date":"2024-07-01","end_date":"2024-07-02"}`)
	assert.Equal(t, http.StatusCreated, status)
	assert.True(t, body.Success)

	status, body = env.do(t, http.MethodPost, "/api/v1/leave/request", token,
		`{"leave_type":"Annual","start_date":"2024-07-01","end_date":"2024-07-30"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Insufficient leave balance", body.Error.Message)

	status, body = env.do(t, http.MethodPost, "/api/v1/leave/request", token,
		`{"leave_type":"Annual","start_date":"2024-07-05","end_date":"2024-07-01"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "End date cannot be before start date", body.Error.Message)

	status, _ = env.do(t, http.MethodPost, "/api/v1/leave/request", token,
		`{"leave_type":"Sabbatical","start_date":"2024-07-01","end_date":"2024-07-02"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, body = env.do(t, http.MethodPut, "/api/v1/leave/9/approve", token, "")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Leave request already processed", body.Error.Message)

	status, _ = env.do(t, http.MethodPut, "/api/v1/leave/9/reject", token, "")
	assert.Equal(t, http.StatusOK, status)
	require.NotNil(t, env.leave.rejected)
	assert.Nil(t, env.leave.rejected.RejectionReason)

	status, body = env.do(t, http.MethodGet, "/api/v1/leave/balance", token, "")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"leave_balance":4}`, string(body.Data))
}

func TestRouter_Metrics(t *testing.T) {
	env := newTestEnv(t)

	resp, err := http.Get(env.server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "hrstreamline_job_runs_total")
}
