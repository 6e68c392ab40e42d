package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/Eursukkul/roomescape-service/internal/middleware"
	"github.com/Eursukkul/roomescape-service/internal/models"
	"github.com/Eursukkul/roomescape-service/internal/service"
	"github.com/labstack/echo/v4"
)

// --- Mock ReservationService ---

type mockReservationService struct {
	createFn   func(ctx context.Context, req service.SlotRequest) (*models.Reservation, error)
	cancelFn   func(ctx context.Context, id uint) (*models.Reservation, error)
	listFn     func(ctx context.Context) ([]models.Reservation, error)
	listMineFn func(ctx context.Context, memberID uint) ([]service.MemberReservation, error)
	timesFn    func(ctx context.Context, themeID uint, date time.Time) ([]service.TimeAvailability, error)
}

func (m *mockReservationService) Create(ctx context.Context, req service.SlotRequest) (*models.Reservation, error) {
	return m.createFn(ctx, req)
}
func (m *mockReservationService) Cancel(ctx context.Context, id uint) (*models.Reservation, error) {
	return m.cancelFn(ctx, id)
}
func (m *mockReservationService) List(ctx context.Context) ([]models.Reservation, error) {
	return m.listFn(ctx)
}
func (m *mockReservationService) ListMine(ctx context.Context, memberID uint) ([]service.MemberReservation, error) {
	return m.listMineFn(ctx, memberID)
}
func (m *mockReservationService) TimeAvailability(ctx context.Context, themeID uint, date time.Time) ([]service.TimeAvailability, error) {
	return m.timesFn(ctx, themeID, date)
}

// --- Mock WaitingService ---

type mockWaitingService struct {
	createFn func(ctx context.Context, req service.SlotRequest) (*models.ReservationWaiting, error)
	cancelFn func(ctx context.Context, id, requesterID uint) error
}

func (m *mockWaitingService) Create(ctx context.Context, req service.SlotRequest) (*models.ReservationWaiting, error) {
	return m.createFn(ctx, req)
}
func (m *mockWaitingService) Cancel(ctx context.Context, id, requesterID uint) error {
	return m.cancelFn(ctx, id, requesterID)
}

// --- Mock ThemeService ---

type mockThemeService struct {
	listFn    func(ctx context.Context) ([]models.Theme, error)
	timesFn   func(ctx context.Context) ([]models.Time, error)
	rankingFn func(ctx context.Context) ([]models.ThemeRanking, error)
	betweenFn func(ctx context.Context, start, end time.Time) ([]models.ThemeRanking, error)
}

func (m *mockThemeService) List(ctx context.Context) ([]models.Theme, error) { return m.listFn(ctx) }
func (m *mockThemeService) ListTimes(ctx context.Context) ([]models.Time, error) {
	return m.timesFn(ctx)
}
func (m *mockThemeService) Ranking(ctx context.Context) ([]models.ThemeRanking, error) {
	return m.rankingFn(ctx)
}
func (m *mockThemeService) RankingBetween(ctx context.Context, start, end time.Time) ([]models.ThemeRanking, error) {
	return m.betweenFn(ctx, start, end)
}

// --- Mock MemberService ---

type mockMemberService struct {
	loginFn func(ctx context.Context, email, password string) (string, *models.Member, error)
}

func (m *mockMemberService) Login(ctx context.Context, email, password string) (string, *models.Member, error) {
	return m.loginFn(ctx, email, password)
}
func (m *mockMemberService) Get(ctx context.Context, id uint) (*models.Member, error) {
	return nil, service.ErrMemberNotFound
}
func (m *mockMemberService) Register(ctx context.Context, name, email, password, role string) (*models.Member, error) {
	return nil, service.ErrEmailTaken
}

// --- Helpers ---

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = middleware.NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func asMember(c echo.Context, id uint) {
	c.Set(middleware.MemberIDKey, id)
}

var (
	forest = &models.Theme{ID: 1, Name: "Forest", Description: "lost in the woods", Thumbnail: "forest.png"}
	noon   = &models.Time{ID: 2, StartAt: "12:00"}
	kyummi = &models.Member{ID: 1, Name: "kyummi", Email: "kyummi@example.com", Role: models.RoleUser}
)

func detailOn(day string) *models.ReservationDetail {
	d, _ := models.ParseDate(day)
	return &models.ReservationDetail{ID: 5, Date: d, ThemeID: forest.ID, Theme: forest, TimeID: noon.ID, Time: noon}
}
