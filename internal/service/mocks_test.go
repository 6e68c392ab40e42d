package service

import (
	"context"
	"time"

	"github.com/Eursukkul/roomescape-service/internal/models"
	"gorm.io/gorm"
)

// --- Mock TxManager ---

type mockTx struct {
	calls  int
	handle *gorm.DB
}

func (m *mockTx) WithinTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	m.calls++
	return fn(m.handle)
}

// --- Mock MemberRepository ---

type mockMemberRepo struct {
	findByIDFn    func(ctx context.Context, id uint) (*models.Member, error)
	findByEmailFn func(ctx context.Context, email string) (*models.Member, error)
	createFn      func(ctx context.Context, member *models.Member) error

	txs []*gorm.DB
}

func (m *mockMemberRepo) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Member, error) {
	m.txs = append(m.txs, tx)
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockMemberRepo) FindByEmail(ctx context.Context, email string) (*models.Member, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockMemberRepo) Create(ctx context.Context, member *models.Member) error {
	if m.createFn != nil {
		return m.createFn(ctx, member)
	}
	member.ID = 99
	return nil
}

// --- Mock TimeRepository ---

type mockTimeRepo struct {
	times []models.Time
	txs   []*gorm.DB
}

func (m *mockTimeRepo) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Time, error) {
	m.txs = append(m.txs, tx)
	for i := range m.times {
		if m.times[i].ID == id {
			t := m.times[i]
			return &t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockTimeRepo) FindAll(ctx context.Context) ([]models.Time, error) {
	return m.times, nil
}
func (m *mockTimeRepo) Upsert(ctx context.Context, t *models.Time) error { return nil }

// --- Mock ThemeRepository ---

type mockThemeRepo struct {
	themes []models.Theme
	topFn  func(ctx context.Context, start, end time.Time, limit int) ([]models.ThemeRanking, error)
	txs    []*gorm.DB
}

func (m *mockThemeRepo) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Theme, error) {
	m.txs = append(m.txs, tx)
	for i := range m.themes {
		if m.themes[i].ID == id {
			t := m.themes[i]
			return &t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockThemeRepo) FindAll(ctx context.Context) ([]models.Theme, error) {
	return m.themes, nil
}
func (m *mockThemeRepo) FindTopByReservationCount(ctx context.Context, start, end time.Time, limit int) ([]models.ThemeRanking, error) {
	return m.topFn(ctx, start, end, limit)
}
func (m *mockThemeRepo) Upsert(ctx context.Context, theme *models.Theme) error { return nil }

// --- Mock DetailRepository ---

type mockDetailRepo struct {
	details []models.ReservationDetail
	nextID  uint
	created int
}

func (m *mockDetailRepo) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.ReservationDetail, error) {
	for i := range m.details {
		if m.details[i].ID == id {
			d := m.details[i]
			return &d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockDetailRepo) FindBySlot(ctx context.Context, tx *gorm.DB, themeID, timeID uint, date time.Time) (*models.ReservationDetail, error) {
	probe := &models.ReservationDetail{ThemeID: themeID, TimeID: timeID, Date: date}
	for i := range m.details {
		if m.details[i].SameSlot(probe) {
			d := m.details[i]
			return &d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockDetailRepo) FindOrCreate(ctx context.Context, tx *gorm.DB, detail *models.ReservationDetail) error {
	if found, err := m.FindBySlot(ctx, tx, detail.ThemeID, detail.TimeID, detail.Date); err == nil {
		detail.ID = found.ID
		return nil
	}
	m.nextID++
	detail.ID = 100 + m.nextID
	m.created++
	m.details = append(m.details, *detail)
	return nil
}

// --- Mock ReservationRepository ---

type mockReservationRepo struct {
	createFn         func(ctx context.Context, tx *gorm.DB, r *models.Reservation) error
	findByIDFn       func(ctx context.Context, tx *gorm.DB, id uint) (*models.Reservation, error)
	findByDetailIDFn func(ctx context.Context, tx *gorm.DB, detailID uint) (*models.Reservation, error)
	listFn           func(ctx context.Context) ([]models.Reservation, error)
	byThemeDateFn    func(ctx context.Context, tx *gorm.DB, themeID uint, date time.Time) ([]models.Reservation, error)
	byMemberFn       func(ctx context.Context, memberID uint) ([]models.Reservation, error)
	deleteFn         func(ctx context.Context, tx *gorm.DB, id uint) error

	created []*models.Reservation
	deleted []uint
}

func (m *mockReservationRepo) Create(ctx context.Context, tx *gorm.DB, r *models.Reservation) error {
	if m.createFn != nil {
		if err := m.createFn(ctx, tx, r); err != nil {
			return err
		}
	}
	if r.ID == 0 {
		r.ID = uint(len(m.created) + 1)
	}
	m.created = append(m.created, r)
	return nil
}
func (m *mockReservationRepo) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Reservation, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, tx, id)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockReservationRepo) FindByDetailID(ctx context.Context, tx *gorm.DB, detailID uint) (*models.Reservation, error) {
	if m.findByDetailIDFn != nil {
		return m.findByDetailIDFn(ctx, tx, detailID)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockReservationRepo) FindAllOrderByDateAsc(ctx context.Context) ([]models.Reservation, error) {
	return m.listFn(ctx)
}
func (m *mockReservationRepo) FindAllByThemeAndDate(ctx context.Context, tx *gorm.DB, themeID uint, date time.Time) ([]models.Reservation, error) {
	if m.byThemeDateFn != nil {
		return m.byThemeDateFn(ctx, tx, themeID, date)
	}
	return nil, nil
}
func (m *mockReservationRepo) FindByMemberID(ctx context.Context, memberID uint) ([]models.Reservation, error) {
	if m.byMemberFn != nil {
		return m.byMemberFn(ctx, memberID)
	}
	return nil, nil
}
func (m *mockReservationRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uint) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, tx, id)
	}
	m.deleted = append(m.deleted, id)
	return nil
}

// --- Mock WaitingRepository ---

type mockWaitingRepo struct {
	createFn   func(ctx context.Context, tx *gorm.DB, w *models.ReservationWaiting) error
	findByIDFn func(ctx context.Context, tx *gorm.DB, id uint) (*models.ReservationWaiting, error)
	existsFn   func(ctx context.Context, tx *gorm.DB, memberID, detailID uint) (bool, error)
	earliestFn func(ctx context.Context, tx *gorm.DB, detailID uint) (*models.ReservationWaiting, error)
	byMemberFn func(ctx context.Context, memberID uint) ([]models.ReservationWaiting, error)

	created []*models.ReservationWaiting
	deleted []uint
}

func (m *mockWaitingRepo) Create(ctx context.Context, tx *gorm.DB, w *models.ReservationWaiting) error {
	if m.createFn != nil {
		if err := m.createFn(ctx, tx, w); err != nil {
			return err
		}
	}
	if w.ID == 0 {
		w.ID = uint(len(m.created) + 1)
	}
	m.created = append(m.created, w)
	return nil
}
func (m *mockWaitingRepo) FindByID(ctx context.Context, tx *gorm.DB, id uint) (*models.ReservationWaiting, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, tx, id)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockWaitingRepo) ExistsByMemberAndDetail(ctx context.Context, tx *gorm.DB, memberID, detailID uint) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, tx, memberID, detailID)
	}
	return false, nil
}
func (m *mockWaitingRepo) FindEarliestByDetailID(ctx context.Context, tx *gorm.DB, detailID uint) (*models.ReservationWaiting, error) {
	if m.earliestFn != nil {
		return m.earliestFn(ctx, tx, detailID)
	}
	return nil, gorm.ErrRecordNotFound
}
func (m *mockWaitingRepo) FindByMemberID(ctx context.Context, memberID uint) ([]models.ReservationWaiting, error) {
	if m.byMemberFn != nil {
		return m.byMemberFn(ctx, memberID)
	}
	return nil, nil
}
func (m *mockWaitingRepo) DeleteByID(ctx context.Context, tx *gorm.DB, id uint) error {
	m.deleted = append(m.deleted, id)
	return nil
}

// --- Mock EventPublisher ---

type published struct {
	key     string
	payload any
}

type mockPublisher struct {
	events []published
	err    error
}

func (m *mockPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	m.events = append(m.events, published{key: routingKey, payload: payload})
	return m.err
}

func (m *mockPublisher) keys() []string {
	keys := make([]string, len(m.events))
	for i, e := range m.events {
		keys[i] = e.key
	}
	return keys
}

// --- Mock CacheInvalidator ---

type mockInvalidator struct {
	clears int
	err    error
}

func (m *mockInvalidator) Clear(ctx context.Context) error {
	m.clears++
	return m.err
}

// --- Fixtures ---

var (
	fixedNow = time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)
	today    = time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)

	noon    = models.Time{ID: 1, StartAt: "12:00"}
	evening = models.Time{ID: 2, StartAt: "18:00"}
	night   = models.Time{ID: 3, StartAt: "21:00"}

	forest = models.Theme{ID: 1, Name: "포레스트", Description: "공포 테마", Thumbnail: "forest.png"}
	maze   = models.Theme{ID: 2, Name: "미로", Description: "추리 테마", Thumbnail: "maze.png"}

	kyummi = models.Member{ID: 1, Name: "켬미", Email: "kyummi@email.com", Role: models.RoleUser}
	dobby  = models.Member{ID: 2, Name: "Dobby", Email: "kimdobby@wotaeco.com", Role: models.RoleUser}
)

type fixture struct {
	tx           *mockTx
	members      *mockMemberRepo
	times        *mockTimeRepo
	themes       *mockThemeRepo
	details      *mockDetailRepo
	reservations *mockReservationRepo
	waitings     *mockWaitingRepo
	publisher    *mockPublisher
}

func newFixture() *fixture {
	return &fixture{
		tx: &mockTx{},
		members: &mockMemberRepo{
			findByIDFn: func(ctx context.Context, id uint) (*models.Member, error) {
				for _, m := range []models.Member{kyummi, dobby} {
					if m.ID == id {
						member := m
						return &member, nil
					}
				}
				return nil, gorm.ErrRecordNotFound
			},
		},
		times:        &mockTimeRepo{times: []models.Time{noon, evening, night}},
		themes:       &mockThemeRepo{themes: []models.Theme{forest, maze}},
		details:      &mockDetailRepo{},
		reservations: &mockReservationRepo{},
		waitings:     &mockWaitingRepo{},
		publisher:    &mockPublisher{},
	}
}

func (f *fixture) stores() Stores {
	return Stores{
		Tx:           f.tx,
		Members:      f.members,
		Times:        f.times,
		Themes:       f.themes,
		Details:      f.details,
		Reservations: f.reservations,
		Waitings:     f.waitings,
	}
}

func (f *fixture) options() []Option {
	return []Option{
		WithClock(func() time.Time { return fixedNow }),
		WithLocation(time.UTC),
		WithPublisher(f.publisher),
	}
}

// reservedDetail registers a detail and a reservation on it held by holder.
func (f *fixture) reservedDetail(id uint, theme models.Theme, t models.Time, date time.Time, holder models.Member) models.Reservation {
	detail := models.ReservationDetail{ID: id, ThemeID: theme.ID, TimeID: t.ID, Date: date, Theme: &theme, Time: &t}
	f.details.details = append(f.details.details, detail)
	return models.Reservation{ID: id, MemberID: holder.ID, DetailID: id, Member: &holder, Detail: &detail}
}
