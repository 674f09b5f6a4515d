package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ticketdto "tracker/internal/application/ticket/dto"
	ticketusecases "tracker/internal/application/ticket/usecases"
	userdto "tracker/internal/application/user/dto"
	"tracker/internal/application/user/usecases"
	"tracker/internal/interfaces/http/handlers/testutil"
	"tracker/internal/shared/authorization"
	"tracker/internal/shared/errors"
	"tracker/internal/shared/logger"
)

type mockLoginUC struct {
	got    usecases.LoginWithPasswordCommand
	result *userdto.LoginResponse
	err    error
}

func (m *mockLoginUC) Execute(_ context.Context, cmd usecases.LoginWithPasswordCommand) (*userdto.LoginResponse, error) {
	m.got = cmd
	return m.result, m.err
}

type mockListUsersUC struct {
	result []userdto.UserDTO
	err    error
}

func (m *mockListUsersUC) Execute(context.Context) ([]userdto.UserDTO, error) {
	return m.result, m.err
}

type mockDashboardUC struct {
	got    ticketusecases.Actor
	result *ticketdto.DashboardDTO
	err    error
}

func (m *mockDashboardUC) Execute(_ context.Context, actor ticketusecases.Actor) (*ticketdto.DashboardDTO, error) {
	m.got = actor
	return m.result, m.err
}

type mockListActivityUC struct {
	got    ticketusecases.ListActivityQuery
	called bool
	result []ticketdto.ActivityDTO
	err    error
}

func (m *mockListActivityUC) Execute(_ context.Context, query ticketusecases.ListActivityQuery) ([]ticketdto.ActivityDTO, error) {
	m.got = query
	m.called = true
	return m.result, m.err
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

func TestAuthHandler_Login(t *testing.T) {
	loginUC := &mockLoginUC{result: &userdto.LoginResponse{
		AccessToken: "tok",
		TokenType:   "Bearer",
		ExpiresIn:   3600,
		User:        userdto.UserDTO{ID: 7, Username: "alice", Role: "admin"},
	}}
	handler := NewAuthHandler(loginUC, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/auth/login", LoginRequest{Username: "alice", Password: "secret"})
	handler.Login(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", loginUC.got.Username)
	assert.Equal(t, "secret", loginUC.got.Password)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var out userdto.LoginResponse
	require.NoError(t, json.Unmarshal(resp.Data, &out))
	assert.Equal(t, "tok", out.AccessToken)
}

func TestAuthHandler_Login_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		ucErr      error
		wantStatus int
	}{
		{"missing password", map[string]string{"username": "alice"}, nil, http.StatusBadRequest},
		{"bad credentials", LoginRequest{Username: "alice", Password: "nope"}, errors.NewUnauthorizedError("Invalid username or password"), http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAuthHandler(&mockLoginUC{err: tt.ucErr}, logger.NewNopLogger())
			c, w := testutil.NewTestContext(http.MethodPost, "/auth/login", tt.body)

			handler.Login(c)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestUserHandler_ListUsers(t *testing.T) {
	handler := NewUserHandler(&mockListUsersUC{result: []userdto.UserDTO{
		{ID: 7, Username: "alice", FullName: "Alice Admin", Role: "admin"},
		{ID: 8, Username: "bob", FullName: "Bob Builder", Role: "technician"},
	}}, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/users", nil)
	testutil.SetAuthContext(c, 7, "Alice Admin", authorization.RoleAdmin)

	handler.ListUsers(c)

	require.Equal(t, http.StatusOK, w.Code)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	var list testutil.ListData
	require.NoError(t, json.Unmarshal(resp.Data, &list))
	assert.Equal(t, 2, list.Total)
}

func TestDashboardHandler_PassesActor(t *testing.T) {
	uc := &mockDashboardUC{result: &ticketdto.DashboardDTO{MyAssigned: 3}}
	handler := NewDashboardHandler(uc, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/dashboard", nil)
	testutil.SetAuthContext(c, 8, "Bob Builder", authorization.RoleTechnician)

	handler.GetDashboard(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, ticketusecases.Actor{ID: 8, Name: "Bob Builder", Role: authorization.RoleTechnician}, uc.got)
	assert.Contains(t, w.Body.String(), `"my_assigned":3`)
}

func TestDashboardHandler_Unauthenticated(t *testing.T) {
	handler := NewDashboardHandler(&mockDashboardUC{}, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/dashboard", nil)
	handler.GetDashboard(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuditHandler_ListActivity(t *testing.T) {
	uc := &mockListActivityUC{result: []ticketdto.ActivityDTO{{ID: 1, Action: "created"}}}
	handler := NewAuditHandler(uc, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/audit", nil)
	testutil.SetQueryParams(c, map[string]string{
		"ticket_number": "TKT-2026",
		"start_date":    "2026-03-01",
		"end_date":      "2026-03-14",
	})

	handler.ListActivity(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, ticketusecases.ListActivityQuery{
		TicketNumber: "TKT-2026",
		StartDate:    "2026-03-01",
		EndDate:      "2026-03-14",
	}, uc.got)
}

func TestAuditHandler_RejectsMalformedDate(t *testing.T) {
	uc := &mockListActivityUC{}
	handler := NewAuditHandler(uc, logger.NewNopLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/audit", nil)
	testutil.SetQueryParams(c, map[string]string{"start_date": "14/03/2026"})

	handler.ListActivity(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, uc.called)
	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.Contains(t, resp.Error.Details, "start_date")
}

func TestHealthHandler(t *testing.T) {
	c, w := testutil.NewTestContext(http.MethodGet, "/health", nil)
	NewHealthHandler(stubPinger{}).Health(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)

	c, w = testutil.NewTestContext(http.MethodGet, "/health", nil)
	NewHealthHandler(stubPinger{err: assert.AnError}).Health(c)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
