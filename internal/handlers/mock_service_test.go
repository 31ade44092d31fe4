package handlers

import (
	"context"
	"net/http"
	"sync"

	"relay_control/internal/models"
	"relay_control/internal/service"

	"github.com/gin-gonic/gin"
)

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	signUpCalls    int
	lastSignUp     service.SignUpParams
	lastParseToken string
}

func (m *mockAuth) SignUp(_ context.Context, p service.SignUpParams) (int, error) {
	m.signUpCalls++
	m.lastSignUp = p
	return m.signUpID, m.signUpErr
}

func (m *mockAuth) GenerateToken(_ context.Context, username, password string) (string, error) {
	return m.genTokenToken, m.genTokenErr
}

func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockRelay struct {
	activateErr   error
	deactivateErr error

	activateCalls    int
	lastActivate     service.ActivateParams
	lastDeactivateBy string
}

func (m *mockRelay) Activate(_ context.Context, p service.ActivateParams) error {
	m.activateCalls++
	m.lastActivate = p
	return m.activateErr
}

func (m *mockRelay) Deactivate(_ context.Context, source string) error {
	m.lastDeactivateBy = source
	return m.deactivateErr
}

type mockCommands struct {
	err  error
	last service.Message
}

func (m *mockCommands) Handle(_ context.Context, msg service.Message) error {
	m.last = msg
	return m.err
}

type mockMonitoring struct {
	mu    sync.Mutex
	state models.RelayState
	err   error
	calls int
}

func (m *mockMonitoring) GetState(context.Context) (models.RelayState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	return m.state, m.err
}

type mockEventLog struct {
	resp       []models.RelayEvent
	err        error
	lastType   string
	lastFilter service.LogFilter
}

func (m *mockEventLog) List(_ context.Context, f service.LogFilter) ([]models.RelayEvent, error) {
	m.lastType = f.Type
	m.lastFilter = f
	return m.resp, m.err
}

type mockNetwork struct {
	station service.StationProfile
	ap      service.AccessPointProfile
	summary service.NetworkSummary
}

func (m *mockNetwork) Station() service.StationProfile         { return m.station }
func (m *mockNetwork) AccessPoint() service.AccessPointProfile { return m.ap }
func (m *mockNetwork) Summary() service.NetworkSummary         { return m.summary }

func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewHandler(s, nil).InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	h.Set("Authorization", "Bearer "+token)
	return h
}
