package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"rental-booking/internal/data/entity"
	"rental-booking/internal/data/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// memStore backs every repository interface with maps so services can be
// exercised end to end without postgres.
type memStore struct {
	mu sync.Mutex

	bookings      map[uuid.UUID]*entity.Booking
	payments      []*entity.Payment
	drivers       map[uuid.UUID]*entity.Driver
	vehicles      map[uuid.UUID]*entity.Vehicle
	transfers     map[uuid.UUID]*entity.Transfer
	notifications []*entity.DriverNotification
	history       []*entity.TransactionHistory
	users         map[uuid.UUID]*entity.User
	staff         map[uuid.UUID]*entity.Staff
	sessions      map[uuid.UUID]*entity.Session
	markedPaid    []string

	paymentStatusWrites int

	// failure hooks
	notificationErr error
	sumErr          error
}

func newMemStore() *memStore {
	return &memStore{
		bookings:  map[uuid.UUID]*entity.Booking{},
		drivers:   map[uuid.UUID]*entity.Driver{},
		vehicles:  map[uuid.UUID]*entity.Vehicle{},
		transfers: map[uuid.UUID]*entity.Transfer{},
		users:     map[uuid.UUID]*entity.User{},
		staff:     map[uuid.UUID]*entity.Staff{},
		sessions:  map[uuid.UUID]*entity.Session{},
	}
}

func (m *memStore) repository() *repository.Repository {
	return &repository.Repository{
		User:               memUsers{m},
		Staff:              memStaff{m},
		Session:            memSessions{m},
		Booking:            memBookings{m},
		BookingTable:       memBookingTables{m},
		Payment:            memPayments{m},
		Driver:             memDrivers{m},
		Vehicle:            memVehicles{m},
		Transfer:           memTransfers{m},
		Notification:       memNotifications{m},
		TransactionHistory: memHistory{m},
	}
}

func (m *memStore) addBooking(total int64, status entity.BookingStatus) *entity.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	b := &entity.Booking{
		BaseNoDelete:  entity.BaseNoDelete{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		CodeBooking:   "RB-" + uuid.NewString()[:8],
		TotalAmount:   decimal.NewFromInt(total),
		PaymentStatus: entity.PaymentStateUnpaid,
		Status:        status,
		StartDate:     now,
		EndDate:       now.Add(48 * time.Hour),
	}
	m.bookings[b.ID] = b
	cp := *b
	return &cp
}

func (m *memStore) addDriver(status entity.DriverStatus, saldo int64) *entity.Driver {
	m.mu.Lock()
	defer m.mu.Unlock()
	d := &entity.Driver{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		Name:         "Budi",
		Status:       status,
		Saldo:        decimal.NewFromInt(saldo),
	}
	m.drivers[d.ID] = d
	cp := *d
	return &cp
}

func (m *memStore) addVehicle(status entity.VehicleStatus) *entity.Vehicle {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := &entity.Vehicle{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New()},
		Make:         "Toyota",
		Model:        "Avanza",
		LicensePlate: "B 1234 " + strings.ToUpper(uuid.NewString()[:3]),
		Status:       status,
	}
	m.vehicles[v.ID] = v
	cp := *v
	return &cp
}

func (m *memStore) addTransfer(status entity.TransferStatus) *entity.Transfer {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &entity.Transfer{
		BaseNoDelete:    entity.BaseNoDelete{ID: uuid.New()},
		CodeBooking:     "AT-" + uuid.NewString()[:8],
		CustomerName:    "Siti",
		PickupLocation:  "Terminal 3 Soekarno-Hatta",
		DropoffLocation: "Jl. Sudirman 1",
		PickupTime:      time.Now().Add(6 * time.Hour),
		Price:           decimal.NewFromInt(350000),
		PaymentStatus:   entity.PaymentStateUnpaid,
		Status:          status,
	}
	m.transfers[t.ID] = t
	cp := *t
	return &cp
}

func (m *memStore) booking(id uuid.UUID) entity.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.bookings[id]
}

func (m *memStore) driver(id uuid.UUID) entity.Driver {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.drivers[id]
}

func (m *memStore) vehicle(id uuid.UUID) entity.Vehicle {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.vehicles[id]
}

func (m *memStore) paymentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.payments)
}

// ---- bookings ----

type memBookings struct{ *memStore }

func (r memBookings) Create(_ context.Context, b *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r memBookings) FindByID(_ context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r memBookings) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	return r.FindByID(ctx, id)
}

func (r memBookings) FindByCode(_ context.Context, code string) (*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.CodeBooking == code {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memBookings) match(b *entity.Booking, f repository.BookingFilter) bool {
	if f.Status != "" && b.Status != f.Status {
		return false
	}
	if f.Search != "" && !strings.Contains(strings.ToLower(b.CodeBooking), strings.ToLower(f.Search)) {
		return false
	}
	return true
}

func (r memBookings) List(_ context.Context, f repository.BookingFilter, limit, offset int) ([]*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Booking
	for _, b := range r.bookings {
		if r.match(b, f) {
			cp := *b
			out = append(out, &cp)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

func (r memBookings) Count(_ context.Context, f repository.BookingFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, b := range r.bookings {
		if r.match(b, f) {
			n++
		}
	}
	return n, nil
}

func (r memBookings) TransitionStatus(_ context.Context, id uuid.UUID, from, to entity.BookingStatus) (*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok || b.Status != from {
		return nil, nil
	}
	now := time.Now()
	b.Status = to
	switch to {
	case entity.BookingStatusOnRide:
		b.PickupTime = &now
	case entity.BookingStatusCompleted:
		b.ReturnTime = &now
	}
	cp := *b
	return &cp, nil
}

func (r memBookings) UpdatePaymentStatus(_ context.Context, id uuid.UUID, state entity.PaymentState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return errors.New("booking not found")
	}
	b.PaymentStatus = state
	r.paymentStatusWrites++
	return nil
}

func (r memBookings) AssignVehicle(_ context.Context, id, vehicleID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return errors.New("booking not found")
	}
	b.VehicleID = &vehicleID
	return nil
}

// ---- booking tables ----

type memBookingTables struct{ *memStore }

func (r memBookingTables) MarkPaid(_ context.Context, bookingType repository.BookingType, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	table := bookingType.TableFor()
	r.markedPaid = append(r.markedPaid, table+":"+id.String())
	if table == "bookings" {
		b, ok := r.bookings[id]
		if !ok {
			return false, nil
		}
		if b.Status == entity.BookingStatusPending || b.Status == entity.BookingStatusBooked {
			b.Status = entity.BookingStatusConfirmed
		}
		b.PaymentStatus = entity.PaymentStatePaid
	}
	return true, nil
}

// ---- payments ----

type memPayments struct{ *memStore }

func (r memPayments) Create(_ context.Context, p *entity.Payment) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.IdempotencyKey != nil {
		for _, existing := range r.payments {
			if existing.IdempotencyKey != nil && *existing.IdempotencyKey == *p.IdempotencyKey {
				return false, nil
			}
		}
	}
	cp := *p
	r.payments = append(r.payments, &cp)
	return true, nil
}

func (r memPayments) find(pred func(p *entity.Payment) bool) *entity.Payment {
	for i := len(r.payments) - 1; i >= 0; i-- {
		if pred(r.payments[i]) {
			cp := *r.payments[i]
			return &cp
		}
	}
	return nil
}

func (r memPayments) FindByID(_ context.Context, id uuid.UUID) (*entity.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.find(func(p *entity.Payment) bool { return p.ID == id }), nil
}

func (r memPayments) FindByIdempotencyKey(_ context.Context, key string) (*entity.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.find(func(p *entity.Payment) bool { return p.IdempotencyKey != nil && *p.IdempotencyKey == key }), nil
}

func (r memPayments) FindByTransactionID(_ context.Context, txID string) (*entity.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.find(func(p *entity.Payment) bool { return p.TransactionID != nil && *p.TransactionID == txID }), nil
}

// FindByBookingID returns newest first, mirroring ORDER BY created_at DESC.
func (r memPayments) FindByBookingID(_ context.Context, bookingID uuid.UUID) ([]*entity.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Payment, 0)
	for i := len(r.payments) - 1; i >= 0; i-- {
		if r.payments[i].BookingID == bookingID {
			cp := *r.payments[i]
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r memPayments) SumCompletedByBookingID(_ context.Context, bookingID uuid.UUID) (decimal.Decimal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sumErr != nil {
		return decimal.Zero, r.sumErr
	}
	total := decimal.Zero
	for _, p := range r.payments {
		if p.BookingID == bookingID && p.IsCompleted() {
			total = total.Add(p.Amount)
		}
	}
	return total, nil
}

func (r memPayments) UpdateStatus(_ context.Context, id uuid.UUID, status entity.PaymentStatus, txID *string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.payments {
		if p.ID == id {
			if p.IsCompleted() {
				return false, nil
			}
			p.Status = status
			if txID != nil {
				p.TransactionID = txID
			}
			return true, nil
		}
	}
	return false, nil
}

// ---- drivers ----

type memDrivers struct{ *memStore }

func (r memDrivers) FindByID(_ context.Context, id uuid.UUID) (*entity.Driver, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.drivers[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (r memDrivers) FindAll(_ context.Context, status entity.DriverStatus) ([]*entity.Driver, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Driver
	for _, d := range r.drivers {
		if status == "" || d.Status == status {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r memDrivers) UpdateStatus(_ context.Context, id uuid.UUID, status entity.DriverStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.drivers[id]
	if !ok {
		return errors.New("driver not found")
	}
	d.Status = status
	return nil
}

func (r memDrivers) AdjustSaldo(_ context.Context, id uuid.UUID, nominal decimal.Decimal) (decimal.Decimal, decimal.Decimal, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.drivers[id]
	if !ok {
		return decimal.Zero, decimal.Zero, false, nil
	}
	before := d.Saldo
	d.Saldo = d.Saldo.Add(nominal)
	return before, d.Saldo, true, nil
}

// ---- vehicles ----

type memVehicles struct{ *memStore }

func (r memVehicles) FindByID(_ context.Context, id uuid.UUID) (*entity.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vehicles[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (r memVehicles) FindAll(_ context.Context, status entity.VehicleStatus) ([]*entity.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Vehicle
	for _, v := range r.vehicles {
		if status == "" || v.Status == status {
			cp := *v
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r memVehicles) UpdateStatusIf(_ context.Context, id uuid.UUID, status entity.VehicleStatus, from ...entity.VehicleStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vehicles[id]
	if !ok {
		return false, nil
	}
	for _, s := range from {
		if v.Status == s {
			v.Status = status
			return true, nil
		}
	}
	return false, nil
}

// ---- transfers ----

type memTransfers struct{ *memStore }

func (r memTransfers) FindByID(_ context.Context, id uuid.UUID) (*entity.Transfer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.transfers[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r memTransfers) FindByDriverID(_ context.Context, driverID uuid.UUID) ([]*entity.Transfer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Transfer
	for _, t := range r.transfers {
		if t.DriverID != nil && *t.DriverID == driverID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r memTransfers) AssignDriver(_ context.Context, id, driverID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.transfers[id]
	if !ok {
		return errors.New("transfer not found")
	}
	t.DriverID = &driverID
	t.Status = entity.TransferStatusPending
	return nil
}

// ---- notifications ----

type memNotifications struct{ *memStore }

func (r memNotifications) Exists(_ context.Context, transferID, driverID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.notificationErr != nil {
		return false, r.notificationErr
	}
	for _, n := range r.notifications {
		if n.TransferID == transferID && n.DriverID == driverID {
			return true, nil
		}
	}
	return false, nil
}

func (r memNotifications) Create(_ context.Context, n *entity.DriverNotification) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.notificationErr != nil {
		return false, r.notificationErr
	}
	for _, existing := range r.notifications {
		if existing.TransferID == n.TransferID && existing.DriverID == n.DriverID {
			return false, nil
		}
	}
	cp := *n
	r.notifications = append(r.notifications, &cp)
	return true, nil
}

func (r memNotifications) FindUnreadByDriverID(_ context.Context, driverID uuid.UUID) ([]*entity.DriverNotification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.DriverNotification
	for _, n := range r.notifications {
		if n.DriverID == driverID && n.Status == entity.NotificationStatusUnread {
			cp := *n
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ---- histori_transaksi ----

type memHistory struct{ *memStore }

func (r memHistory) Create(_ context.Context, h *entity.TransactionHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *h
	r.history = append(r.history, &cp)
	return nil
}

func (r memHistory) FindByDriverID(_ context.Context, driverID uuid.UUID, limit, offset int) ([]*entity.TransactionHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*entity.TransactionHistory
	for i := len(r.history) - 1; i >= 0; i-- {
		h := r.history[i]
		if h.DriverID != nil && *h.DriverID == driverID {
			cp := *h
			all = append(all, &cp)
		}
	}
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r memHistory) CountByDriverID(_ context.Context, driverID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, h := range r.history {
		if h.DriverID != nil && *h.DriverID == driverID {
			n++
		}
	}
	return n, nil
}

// ---- users / staff / sessions ----

type memUsers struct{ *memStore }

func (r memUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r memUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r memUsers) FindAll(_ context.Context, role entity.Role, limit, offset int) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.User
	for _, u := range r.users {
		if role == "" || u.Role == role {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r memUsers) CountAll(_ context.Context, role entity.Role) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, u := range r.users {
		if role == "" || u.Role == role {
			n++
		}
	}
	return n, nil
}

func (r memUsers) Upsert(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	if existing, ok := r.users[u.ID]; ok && cp.PasswordHash == "" {
		cp.PasswordHash = existing.PasswordHash
	}
	r.users[u.ID] = &cp
	return nil
}

type memStaff struct{ *memStore }

func (r memStaff) FindByID(_ context.Context, id uuid.UUID) (*entity.Staff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.staff[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r memStaff) Upsert(_ context.Context, s *entity.Staff) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.staff[s.ID] = &cp
	return nil
}

type memSessions struct{ *memStore }

func (r memSessions) Create(_ context.Context, s *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.sessions[s.Token] = &cp
	return nil
}

func (r memSessions) FindValidSession(_ context.Context, token uuid.UUID) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[token]
	if !ok || s.RevokedAt != nil || time.Now().After(s.ExpiresAt) {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r memSessions) Revoke(_ context.Context, token uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[token]
	if !ok || s.RevokedAt != nil {
		return errors.New("session not found or already revoked")
	}
	now := time.Now()
	s.RevokedAt = &now
	return nil
}

func (r memSessions) RevokeAllUserSessions(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for _, s := range r.sessions {
		if s.UserID == userID && s.RevokedAt == nil {
			s.RevokedAt = &now
		}
	}
	return nil
}

func (r memSessions) CleanExpiredSessions(context.Context) error { return nil }

// ---- publisher ----

type recordingPublisher struct {
	mu   sync.Mutex
	keys []string
	err  error
}

func (p *recordingPublisher) Publish(_ context.Context, key string, _ any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, key)
	return p.err
}

func (p *recordingPublisher) count(key string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, k := range p.keys {
		if k == key {
			n++
		}
	}
	return n
}
