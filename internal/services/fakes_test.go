package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/hamrosewa/backend/internal/apperr"
	"github.com/hamrosewa/backend/internal/models"
)

// In-memory repos used across the service tests.

func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case int64:
		return float64(n)
	}
	return 0
}

type loyaltyIncrement struct {
	UserID int64
	Delta  int
}

type fakeUserRepo struct {
	mu         sync.Mutex
	nextID     int64
	users      map[int64]*models.User
	increments []loyaltyIncrement
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: map[int64]*models.User{}, nextID: 1}
	for _, u := range users {
		repo.users[u.ID] = u
		if u.ID >= repo.nextID {
			repo.nextID = u.ID + 1
		}
	}
	return repo
}

func (f *fakeUserRepo) CreateUser(_ context.Context, row map[string]interface{}) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user := &models.User{
		ID:           f.nextID,
		Username:     asString(row["username"]),
		Email:        asString(row["email"]),
		Phone:        asString(row["phone"]),
		Password:     asString(row["password"]),
		Role:         asString(row["role"]),
		Profession:   asString(row["profession"]),
		ReferralCode: asString(row["referral_code"]),
		CreatedAt:    time.Now(),
	}
	f.nextID++
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, apperr.NotFoundf("user not found")
	}
	cp := *user
	return &cp, nil
}

func (f *fakeUserRepo) getBy(match func(*models.User) bool) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return f.getBy(func(u *models.User) bool { return strings.EqualFold(u.Email, email) })
}

func (f *fakeUserRepo) GetUserByPhone(_ context.Context, phone string) (*models.User, error) {
	return f.getBy(func(u *models.User) bool { return u.Phone == phone })
}

func (f *fakeUserRepo) GetUserByReferralCode(_ context.Context, code string) (*models.User, error) {
	return f.getBy(func(u *models.User) bool { return u.ReferralCode == code })
}

func (f *fakeUserRepo) UpdateUser(_ context.Context, id int64, patch map[string]interface{}) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, apperr.NotFoundf("user not found")
	}
	if v, ok := patch["username"]; ok {
		user.Username = asString(v)
	}
	if v, ok := patch["phone"]; ok {
		user.Phone = asString(v)
	}
	if v, ok := patch["profession"]; ok {
		user.Profession = asString(v)
	}
	if v, ok := patch["password"]; ok {
		user.Password = asString(v)
	}
	if v, ok := patch["referral_code"]; ok {
		user.ReferralCode = asString(v)
	}
	if v, ok := patch["referred_by_id"]; ok {
		id := asInt64(v)
		user.ReferredByID = &id
	}
	cp := *user
	return &cp, nil
}

func (f *fakeUserRepo) ListProviders(_ context.Context) ([]*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.User
	for _, u := range f.users {
		if u.Role == models.RoleProvider {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) IncrementLoyaltyPoints(_ context.Context, id int64, delta int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return 0, apperr.NotFoundf("user not found")
	}
	user.LoyaltyPoints += delta
	f.increments = append(f.increments, loyaltyIncrement{UserID: id, Delta: delta})
	return user.LoyaltyPoints, nil
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	nextID   int64
	bookings map[int64]*models.Booking
}

func newFakeBookingRepo(bookings ...*models.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{bookings: map[int64]*models.Booking{}, nextID: 1}
	for _, b := range bookings {
		repo.bookings[b.ID] = b
		if b.ID >= repo.nextID {
			repo.nextID = b.ID + 1
		}
	}
	return repo
}

func (f *fakeBookingRepo) CreateBooking(_ context.Context, row map[string]interface{}) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking := &models.Booking{
		ID:          f.nextID,
		CustomerID:  asInt64(row["customer_id"]),
		ServiceID:   asInt64(row["service_id"]),
		BookingDate: asString(row["booking_date"]),
		BookingTime: asString(row["booking_time"]),
		Status:      asString(row["status"]),
		Notes:       asString(row["notes"]),
		TotalAmount: asFloat(row["total_amount"]),
		CreatedAt:   time.Now(),
	}
	f.nextID++
	f.bookings[booking.ID] = booking
	return booking, nil
}

func (f *fakeBookingRepo) GetBookingByID(_ context.Context, id int64) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking, ok := f.bookings[id]
	if !ok {
		return nil, apperr.NotFoundf("booking not found")
	}
	cp := *booking
	return &cp, nil
}

func (f *fakeBookingRepo) UpdateBooking(_ context.Context, id int64, patch map[string]interface{}) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking, ok := f.bookings[id]
	if !ok {
		return nil, apperr.NotFoundf("booking not found")
	}
	if v, ok := patch["status"]; ok {
		booking.Status = asString(v)
	}
	booking.UpdatedAt = time.Now()
	cp := *booking
	return &cp, nil
}

func (f *fakeBookingRepo) ListBookingsByCustomer(_ context.Context, customerID int64) ([]*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Booking
	for _, b := range f.bookings {
		if b.CustomerID == customerID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ListBookingsByService(_ context.Context, serviceID int64) ([]*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Booking
	for _, b := range f.bookings {
		if b.ServiceID == serviceID {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeReferralRepo struct {
	mu        sync.Mutex
	nextID    int64
	referrals map[int64]*models.Referral
}

func newFakeReferralRepo(referrals ...*models.Referral) *fakeReferralRepo {
	repo := &fakeReferralRepo{referrals: map[int64]*models.Referral{}, nextID: 1}
	for _, r := range referrals {
		repo.referrals[r.ID] = r
		if r.ID >= repo.nextID {
			repo.nextID = r.ID + 1
		}
	}
	return repo
}

func (f *fakeReferralRepo) CreateReferral(_ context.Context, referrerID, referredUserID int64) (*models.Referral, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	referral := &models.Referral{
		ID:             f.nextID,
		ReferrerID:     referrerID,
		ReferredUserID: referredUserID,
		Status:         models.ReferralSignedUp,
		CreatedAt:      time.Now(),
	}
	f.nextID++
	f.referrals[referral.ID] = referral
	return referral, nil
}

func (f *fakeReferralRepo) GetReferralByReferredUser(_ context.Context, referredUserID int64) (*models.Referral, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.referrals {
		if r.ReferredUserID == referredUserID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeReferralRepo) ListReferralsByReferrer(_ context.Context, referrerID int64) ([]*models.Referral, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Referral
	for _, r := range f.referrals {
		if r.ReferrerID == referrerID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

// MarkPointsAwarded mirrors the conditional update: only one caller can
// move a referral out of signed_up.
func (f *fakeReferralRepo) MarkPointsAwarded(_ context.Context, id int64, pointsReferrer, pointsReferred int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	referral, ok := f.referrals[id]
	if !ok || referral.Status == models.ReferralPointsAwarded {
		return false, nil
	}
	referral.Status = models.ReferralPointsAwarded
	referral.PointsReferrer = pointsReferrer
	referral.PointsReferred = pointsReferred
	return true, nil
}

type fakeCatalogRepo struct {
	categories map[int64]*models.ServiceCategory
	services   map[int64]*models.Service
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		categories: map[int64]*models.ServiceCategory{},
		services:   map[int64]*models.Service{},
	}
}

func (f *fakeCatalogRepo) ListCategories(_ context.Context) ([]*models.ServiceCategory, error) {
	var out []*models.ServiceCategory
	for _, c := range f.categories {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCatalogRepo) GetCategoryByID(_ context.Context, id int64) (*models.ServiceCategory, error) {
	category, ok := f.categories[id]
	if !ok {
		return nil, apperr.NotFoundf("category not found")
	}
	return category, nil
}

func (f *fakeCatalogRepo) ListServices(_ context.Context, categoryID, providerID *int64) ([]*models.Service, error) {
	var out []*models.Service
	for _, s := range f.services {
		if categoryID != nil && s.CategoryID != *categoryID {
			continue
		}
		if providerID != nil && s.ProviderID != *providerID {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeCatalogRepo) GetServiceByID(_ context.Context, id int64) (*models.Service, error) {
	service, ok := f.services[id]
	if !ok {
		return nil, apperr.NotFoundf("service not found")
	}
	return service, nil
}

type fakeNotificationRepo struct {
	mu   sync.Mutex
	rows []*models.Notification
}

func (f *fakeNotificationRepo) CreateNotification(_ context.Context, row map[string]interface{}) (*models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := &models.Notification{
		ID:        int64(len(f.rows) + 1),
		UserID:    asInt64(row["user_id"]),
		Title:     asString(row["title"]),
		Body:      asString(row["body"]),
		BookingID: asInt64(row["booking_id"]),
		CreatedAt: time.Now(),
	}
	f.rows = append(f.rows, n)
	return n, nil
}

func (f *fakeNotificationRepo) ListNotificationsByUser(_ context.Context, userID int64, limit int) ([]*models.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Notification
	for _, n := range f.rows {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeReviewRepo struct {
	mu      sync.Mutex
	reviews []*models.Review
}

func (f *fakeReviewRepo) CreateReview(_ context.Context, row map[string]interface{}) (*models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	review := &models.Review{
		ID:         int64(len(f.reviews) + 1),
		BookingID:  asInt64(row["booking_id"]),
		CustomerID: asInt64(row["customer_id"]),
		ProviderID: asInt64(row["provider_id"]),
		Rating:     int(asInt64(row["rating"])),
		Comment:    asString(row["comment"]),
		CreatedAt:  time.Now(),
	}
	f.reviews = append(f.reviews, review)
	return review, nil
}

func (f *fakeReviewRepo) GetReviewByBooking(_ context.Context, bookingID int64) (*models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reviews {
		if r.BookingID == bookingID {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeReviewRepo) ListReviewsByCustomer(_ context.Context, customerID int64) ([]*models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Review
	for _, r := range f.reviews {
		if r.CustomerID == customerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReviewRepo) ListReviewsByProvider(_ context.Context, providerID int64) ([]*models.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Review
	for _, r := range f.reviews {
		if r.ProviderID == providerID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakePaymentRepo struct {
	mu       sync.Mutex
	nextID   int64
	payments map[int64]*models.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: map[int64]*models.Payment{}, nextID: 1}
}

func (f *fakePaymentRepo) CreatePayment(_ context.Context, row map[string]interface{}) (*models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	payment := &models.Payment{
		ID:            f.nextID,
		BookingID:     asInt64(row["booking_id"]),
		TransactionID: asString(row["transaction_id"]),
		Amount:        asFloat(row["amount"]),
		Gateway:       asString(row["gateway"]),
		Status:        asString(row["status"]),
		CreatedAt:     time.Now(),
	}
	f.nextID++
	f.payments[payment.ID] = payment
	return payment, nil
}

func (f *fakePaymentRepo) GetPaymentByTransactionID(_ context.Context, transactionID string, pendingOnly bool) (*models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.payments {
		if p.TransactionID != transactionID {
			continue
		}
		if pendingOnly && p.Status != models.PaymentPending {
			continue
		}
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (f *fakePaymentRepo) GetLatestPendingPaymentByBooking(_ context.Context, bookingID int64) (*models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest *models.Payment
	for _, p := range f.payments {
		if p.BookingID != bookingID || p.Status != models.PaymentPending {
			continue
		}
		if latest == nil || p.ID > latest.ID {
			latest = p
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (f *fakePaymentRepo) UpdatePayment(_ context.Context, id int64, patch map[string]interface{}) (*models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	payment, ok := f.payments[id]
	if !ok {
		return nil, apperr.NotFoundf("payment not found")
	}
	if v, ok := patch["status"]; ok {
		payment.Status = asString(v)
	}
	if v, ok := patch["ref_id"]; ok {
		payment.RefID = asString(v)
	}
	cp := *payment
	return &cp, nil
}

type fakePasswordResetRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   []*models.PasswordReset
}

func (f *fakePasswordResetRepo) CreatePasswordReset(_ context.Context, row map[string]interface{}) (*models.PasswordReset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	reset := &models.PasswordReset{
		ID:           f.nextID,
		ContactType:  asString(row["contact_type"]),
		ContactValue: asString(row["contact_value"]),
		Code:         asString(row["code"]),
		CreatedAt:    time.Now(),
	}
	if v, ok := row["expires_at"].(string); ok {
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			reset.ExpiresAt = ts
		}
	}
	f.rows = append(f.rows, reset)
	return reset, nil
}

func (f *fakePasswordResetRepo) GetPasswordResetByCode(_ context.Context, contactType, contactValue, code string) (*models.PasswordReset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.ContactType == contactType && r.ContactValue == contactValue && r.Code == code {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakePasswordResetRepo) GetPasswordResetByToken(_ context.Context, token string) (*models.PasswordReset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.ResetToken == token && token != "" {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakePasswordResetRepo) UpdatePasswordReset(_ context.Context, id int64, patch map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.ID == id {
			if v, ok := patch["reset_token"]; ok {
				r.ResetToken = asString(v)
			}
			return nil
		}
	}
	return apperr.NotFoundf("password reset not found")
}

func (f *fakePasswordResetRepo) DeletePasswordReset(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, r := range f.rows {
		if r.ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

// fakeEsewa answers status checks with a fixed result.
type fakeEsewa struct {
	status string
	refID  string
	calls  int
}

func (f *fakeEsewa) TransactionStatus(_ context.Context, _ string, _ float64) (string, string, error) {
	f.calls++
	return f.status, f.refID, nil
}
