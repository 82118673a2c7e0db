package console_test

import (
	"context"
	"io"
	"mime/multipart"
	"sync"

	console "github.com/goliatone/go-console"
	"github.com/goliatone/go-router"
	"github.com/stretchr/testify/mock"
)

// MockAPI implements console.API
type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) Signup(ctx context.Context, payload console.SignupPayload) (*console.Identity, error) {
	args := m.Called(ctx, payload)
	identity, _ := args.Get(0).(*console.Identity)
	return identity, args.Error(1)
}

func (m *MockAPI) Login(ctx context.Context, creds console.Credentials) (*console.Identity, error) {
	args := m.Called(ctx, creds)
	identity, _ := args.Get(0).(*console.Identity)
	return identity, args.Error(1)
}

func (m *MockAPI) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAPI) AdminLogin(ctx context.Context, creds console.Credentials) (*console.Identity, error) {
	args := m.Called(ctx, creds)
	identity, _ := args.Get(0).(*console.Identity)
	return identity, args.Error(1)
}

func (m *MockAPI) AdminLogout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAPI) ListUsers(ctx context.Context, token string) ([]console.UserRecord, error) {
	args := m.Called(ctx, token)
	list, _ := args.Get(0).([]console.UserRecord)
	return list, args.Error(1)
}

func (m *MockAPI) CreateUser(ctx context.Context, token string, payload console.CreateUserPayload) (*console.UserRecord, error) {
	args := m.Called(ctx, token, payload)
	record, _ := args.Get(0).(*console.UserRecord)
	return record, args.Error(1)
}

func (m *MockAPI) UpdateUser(ctx context.Context, token string, userID string, payload console.UpdateUserPayload) (*console.UserRecord, error) {
	args := m.Called(ctx, token, userID, payload)
	record, _ := args.Get(0).(*console.UserRecord)
	return record, args.Error(1)
}

func (m *MockAPI) DeleteUser(ctx context.Context, token string, userID string) error {
	args := m.Called(ctx, token, userID)
	return args.Error(0)
}

// memVault is an in-memory console.Vault for store tests.
type memVault struct {
	mu    sync.Mutex
	slots map[console.Role]*console.Identity
}

func newMemVault() *memVault {
	return &memVault{slots: map[console.Role]*console.Identity{}}
}

func (v *memVault) Load(_ context.Context, role console.Role) (*console.Identity, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	identity, ok := v.slots[role]
	if !ok {
		return nil, nil
	}
	cp := *identity
	return &cp, nil
}

func (v *memVault) Store(_ context.Context, role console.Role, identity *console.Identity) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	cp := *identity
	v.slots[role] = &cp
	return nil
}

func (v *memVault) Clear(_ context.Context, role console.Role) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.slots, role)
	return nil
}

// recorderNotifier captures everything surfaced through the bridge.
type recorderNotifier struct {
	mu    sync.Mutex
	calls []notification
}

type notification struct {
	kind console.NotificationKind
	text string
}

func (r *recorderNotifier) Notify(kind console.NotificationKind, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, notification{kind: kind, text: text})
}

func (r *recorderNotifier) Calls() []notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]notification, len(r.calls))
	copy(out, r.calls)
	return out
}

// MockContext mocks router.Context for guard and controller tests.
type MockContext struct {
	mock.Mock
	NextCalled bool
}

func (m *MockContext) Next() error {
	m.NextCalled = true
	return nil
}

func (m *MockContext) Context() context.Context {
	args := m.Called()
	c, ok := args.Get(0).(context.Context)
	if !ok {
		panic("arg needs to be context.Context")
	}
	return c
}

func (m *MockContext) SetContext(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockContext) Path() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockContext) Method() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockContext) Body() []byte {
	args := m.Called()
	return args.Get(0).([]byte)
}

func (m *MockContext) Status(code int) router.Context {
	m.Called(code)
	return m
}

func (m *MockContext) SendString(s string) error {
	args := m.Called(s)
	return args.Error(0)
}

func (m *MockContext) Send(b []byte) error {
	args := m.Called(b)
	return args.Error(0)
}

func (m *MockContext) JSON(code int, val any) error {
	args := m.Called(code, val)
	return args.Error(0)
}

func (m *MockContext) NoContent(code int) error {
	args := m.Called(code)
	return args.Error(0)
}

func (m *MockContext) Render(name string, bind any, layout ...string) error {
	if len(layout) > 0 {
		args := m.Called(name, bind, layout[0])
		return args.Error(0)
	}
	args := m.Called(name, bind)
	return args.Error(0)
}

func (m *MockContext) Redirect(path string, status ...int) error {
	if len(status) > 0 {
		args := m.Called(path, status)
		return args.Error(0)
	}
	args := m.Called(path)
	return args.Error(0)
}

func (m *MockContext) RedirectToRoute(name string, data router.ViewContext, status ...int) error {
	if len(status) > 0 {
		args := m.Called(name, data, status[0])
		return args.Error(0)
	}
	args := m.Called(name, data)
	return args.Error(0)
}

func (m *MockContext) RedirectBack(fallback string, status ...int) error {
	if len(status) > 0 {
		args := m.Called(fallback, status)
		return args.Error(0)
	}
	args := m.Called(fallback)
	return args.Error(0)
}

func (m *MockContext) SetHeader(key, val string) router.Context {
	m.Called(key, val)
	return m
}

func (m *MockContext) Header(key string) string {
	args := m.Called(key)
	return args.String(0)
}

func (m *MockContext) Get(key string, defaultValue any) any {
	args := m.Called(key, defaultValue)
	return args.Get(0)
}

func (m *MockContext) GetBool(key string, defaultValue bool) bool {
	args := m.Called(key, defaultValue)
	return args.Bool(0)
}

func (m *MockContext) GetInt(key string, def int) int {
	args := m.Called(key, def)
	return args.Int(0)
}

func (m *MockContext) Set(key string, val any) {
	m.Called(key, val)
}

func (m *MockContext) Bind(i any) error {
	args := m.Called(i)
	return args.Error(0)
}

func (m *MockContext) BindJSON(i any) error {
	args := m.Called(i)
	return args.Error(0)
}

func (m *MockContext) BindXML(i any) error {
	args := m.Called(i)
	return args.Error(0)
}

func (m *MockContext) BindQuery(i any) error {
	args := m.Called(i)
	return args.Error(0)
}

func (m *MockContext) CookieParser(i any) error {
	args := m.Called(i)
	return args.Error(0)
}

func (m *MockContext) Cookie(cookie *router.Cookie) {
	m.Called(cookie)
}

func (m *MockContext) Cookies(key string, defaultValue ...string) string {
	if len(defaultValue) > 0 {
		args := m.Called(key, defaultValue[0])
		return args.String(0)
	}
	args := m.Called(key)
	return args.String(0)
}

func (m *MockContext) Param(key string, defaultValue ...string) string {
	if len(defaultValue) > 0 {
		args := m.Called(key, defaultValue[0])
		return args.String(0)
	}
	args := m.Called(key)
	return args.String(0)
}

func (m *MockContext) ParamsInt(key string, defaultValue int) int {
	args := m.Called(key, defaultValue)
	return args.Int(0)
}

func (m *MockContext) Query(key string, defaultValue ...string) string {
	if len(defaultValue) > 0 {
		args := m.Called(key, defaultValue[0])
		return args.String(0)
	}
	args := m.Called(key)
	return args.String(0)
}

func (m *MockContext) QueryValues(key string) []string {
	args := m.Called(key)
	values, _ := args.Get(0).([]string)
	return values
}

func (m *MockContext) QueryInt(key string, defaultValue int) int {
	args := m.Called(key, defaultValue)
	return args.Int(0)
}

func (m *MockContext) Queries() map[string]string {
	args := m.Called()
	return args.Get(0).(map[string]string)
}

func (m *MockContext) GetString(key string, defaultValue string) string {
	args := m.Called(key, defaultValue)
	return args.String(0)
}

func (m *MockContext) Locals(key any, value ...any) any {
	if len(value) > 0 {
		m.Called(key, value[0])
		return nil
	}
	args := m.Called(key)
	return args.Get(0)
}

func (m *MockContext) OriginalURL() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockContext) OnNext(callback func() error) {
	m.Called(callback)
}

func (m *MockContext) Referer() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockContext) FormFile(key string) (*multipart.FileHeader, error) {
	args := m.Called(key)
	header, _ := args.Get(0).(*multipart.FileHeader)
	return header, args.Error(1)
}

func (m *MockContext) FormValue(key string, defaultValue ...string) string {
	if len(defaultValue) > 0 {
		args := m.Called(key, defaultValue[0])
		return args.String(0)
	}
	args := m.Called(key)
	return args.String(0)
}

func (m *MockContext) IP() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockContext) LocalsMerge(key any, value map[string]any) map[string]any {
	args := m.Called(key, value)
	merged, _ := args.Get(0).(map[string]any)
	return merged
}

func (m *MockContext) SendStatus(code int) error {
	args := m.Called(code)
	return args.Error(0)
}

func (m *MockContext) SendStream(r io.Reader) error {
	args := m.Called(r)
	return args.Error(0)
}

func (m *MockContext) RouteName() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockContext) RouteParams() map[string]string {
	args := m.Called()
	params, _ := args.Get(0).(map[string]string)
	return params
}
