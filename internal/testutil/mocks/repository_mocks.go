package mocks

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/savora/savora-cloud-go/internal/domain/entity"
	"github.com/savora/savora-cloud-go/internal/domain/repository"
)

// ErrNotFound is returned by mock operations that require an existing
// document, mirroring an aborted conditional write.
var ErrNotFound = errors.New("mocks: document not found")

// MockUserRepository is an in-memory implementation of UserRepository
type MockUserRepository struct {
	mu     sync.RWMutex
	users  map[uint]*entity.User
	nextID uint

	// Error injection
	CreateErr               error
	GetByIDErr              error
	GetByEmailErr           error
	GetByReferralCodeErr    error
	UpdateErr               error
	ListErr                 error
	ExistsByEmailErr        error
	ExistsByReferralCodeErr error
	AddSessionErr           error
	AddActivityErr          error
	AddRewardErr            error
	ClaimRewardErr          error
	ApplyReferralSignupErr  error
	SetAddressesErr         error
}

var _ repository.UserRepository = (*MockUserRepository)(nil)

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:  make(map[uint]*entity.User),
		nextID: 1,
	}
}

// AddUser inserts a user directly, bypassing Create semantics.
func (r *MockUserRepository) AddUser(user *entity.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == 0 {
		user.ID = r.nextID
	}
	if user.ID >= r.nextID {
		r.nextID = user.ID + 1
	}
	r.users[user.ID] = user
}

func (r *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	user.ID = r.nextID
	r.nextID++
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = user
	return nil
}

func (r *MockUserRepository) GetByID(ctx context.Context, id uint) (*entity.User, error) {
	if r.GetByIDErr != nil {
		return nil, r.GetByIDErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if user, ok := r.users[id]; ok && user.DeletedAt == nil {
		return user, nil
	}
	return nil, nil
}

func (r *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if r.GetByEmailErr != nil {
		return nil, r.GetByEmailErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Email == email && user.DeletedAt == nil {
			return user, nil
		}
	}
	return nil, nil
}

func (r *MockUserRepository) GetByReferralCode(ctx context.Context, code string) (*entity.User, error) {
	if r.GetByReferralCodeErr != nil {
		return nil, r.GetByReferralCodeErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	// Deleted owners are returned on purpose; usability is the caller's call.
	for _, user := range r.users {
		if user.Referral.Code == code {
			return user, nil
		}
	}
	return nil, nil
}

func (r *MockUserRepository) Update(ctx context.Context, user *entity.User) error {
	if r.UpdateErr != nil {
		return r.UpdateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; ok {
		user.UpdatedAt = time.Now()
		r.users[user.ID] = user
	}
	return nil
}

func (r *MockUserRepository) List(ctx context.Context, page, size int) ([]*entity.User, int64, error) {
	if r.ListErr != nil {
		return nil, 0, r.ListErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*entity.User, 0, len(r.users))
	for id := uint(1); id < r.nextID; id++ {
		if user, ok := r.users[id]; ok && user.DeletedAt == nil {
			users = append(users, user)
		}
	}

	total := int64(len(users))
	start := (page - 1) * size
	if start >= len(users) {
		return []*entity.User{}, total, nil
	}
	end := start + size
	if end > len(users) {
		end = len(users)
	}
	return users[start:end], total, nil
}

func (r *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if r.ExistsByEmailErr != nil {
		return false, r.ExistsByEmailErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *MockUserRepository) ExistsByReferralCode(ctx context.Context, code string) (bool, error) {
	if r.ExistsByReferralCodeErr != nil {
		return false, r.ExistsByReferralCodeErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Referral.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *MockUserRepository) SoftDelete(ctx context.Context, id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok || user.DeletedAt != nil {
		return false, nil
	}
	now := time.Now()
	user.DeletedAt = &now
	return true, nil
}

func (r *MockUserRepository) Restore(ctx context.Context, id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok || user.DeletedAt == nil {
		return false, nil
	}
	user.DeletedAt = nil
	return true, nil
}

func (r *MockUserRepository) PermanentDelete(ctx context.Context, id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok || user.DeletedAt == nil {
		return false, nil
	}
	delete(r.users, id)
	return true, nil
}

func (r *MockUserRepository) AddSession(ctx context.Context, id uint, session entity.Session, max int) error {
	if r.AddSessionErr != nil {
		return r.AddSessionErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	user.Sessions = append([]entity.Session{session}, user.Sessions...)
	if len(user.Sessions) > max {
		user.Sessions = user.Sessions[:max]
	}
	now := session.CreatedAt
	user.LastLogin = &now
	return nil
}

func (r *MockUserRepository) RemoveSession(ctx context.Context, id uint, sessionID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return false, nil
	}
	for i, s := range user.Sessions {
		if s.ID == sessionID {
			user.Sessions = append(user.Sessions[:i], user.Sessions[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *MockUserRepository) RemoveSessionsExceptToken(ctx context.Context, id uint, token string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return 0, nil
	}
	kept := user.Sessions[:0]
	removed := 0
	for _, s := range user.Sessions {
		if s.Token == token {
			kept = append(kept, s)
		} else {
			removed++
		}
	}
	user.Sessions = kept
	return removed, nil
}

func (r *MockUserRepository) RemoveExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var touched int64
	for _, user := range r.users {
		kept := user.Sessions[:0]
		changed := false
		for _, s := range user.Sessions {
			if s.ExpiresAt.Before(now) {
				changed = true
				continue
			}
			kept = append(kept, s)
		}
		user.Sessions = kept
		if changed {
			touched++
		}
	}
	return touched, nil
}

func (r *MockUserRepository) AddActivity(ctx context.Context, id uint, activity entity.Activity, max int) error {
	if r.AddActivityErr != nil {
		return r.AddActivityErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	user.Activities = append([]entity.Activity{activity}, user.Activities...)
	if len(user.Activities) > max {
		user.Activities = user.Activities[:max]
	}
	return nil
}

func (r *MockUserRepository) SetActivities(ctx context.Context, id uint, activities []entity.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		user.Activities = activities
	}
	return nil
}

func (r *MockUserRepository) CleanupActivitiesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed int64
	for _, user := range r.users {
		kept := user.Activities[:0]
		for _, a := range user.Activities {
			if a.CreatedAt.Before(cutoff) {
				removed++
				continue
			}
			kept = append(kept, a)
		}
		user.Activities = kept
	}
	return removed, nil
}

func (r *MockUserRepository) EnforceCollectionCaps(ctx context.Context, maxSessions, maxActivities int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	repaired := 0
	for _, user := range r.users {
		over := false
		if len(user.Sessions) > maxSessions {
			user.Sessions = user.Sessions[:maxSessions]
			over = true
		}
		if len(user.Activities) > maxActivities {
			user.Activities = user.Activities[:maxActivities]
			over = true
		}
		if over {
			repaired++
		}
	}
	return repaired, nil
}

func (r *MockUserRepository) SetAddresses(ctx context.Context, id uint, addresses []entity.Address) error {
	if r.SetAddressesErr != nil {
		return r.SetAddressesErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		user.Addresses = addresses
	}
	return nil
}

func (r *MockUserRepository) AddReward(ctx context.Context, id uint, reward entity.Reward) error {
	if r.AddRewardErr != nil {
		return r.AddRewardErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	user.Referral.Rewards = append(user.Referral.Rewards, reward)
	user.Referral.Stats.TotalRewardsEarned += reward.Amount
	return nil
}

func (r *MockUserRepository) ClaimReward(ctx context.Context, id uint, rewardID string, amount int, now time.Time) (bool, error) {
	if r.ClaimRewardErr != nil {
		return false, r.ClaimRewardErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return false, nil
	}
	for i := range user.Referral.Rewards {
		reward := &user.Referral.Rewards[i]
		if reward.ID != rewardID || reward.Claimed {
			continue
		}
		reward.Claimed = true
		claimedAt := now
		reward.ClaimedAt = &claimedAt
		user.LoyaltyPoints += amount
		user.Referral.Stats.TotalRewardsClaimed += amount
		return true, nil
	}
	return false, nil
}

func (r *MockUserRepository) CompleteReferralEntry(ctx context.Context, referrerID, referredUserID uint, rewardEarned int, completedAt time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[referrerID]
	if !ok {
		return false, nil
	}
	for i := range user.Referral.Referrals {
		entry := &user.Referral.Referrals[i]
		if entry.UserID != referredUserID || entry.Status != entity.ReferralVerified {
			continue
		}
		entry.Status = entity.ReferralCompleted
		done := completedAt
		entry.CompletedAt = &done
		entry.RewardEarned += rewardEarned
		user.Referral.Stats.CompletedReferrals++
		return true, nil
	}
	return false, nil
}

func (r *MockUserRepository) UpdateReferralSettings(ctx context.Context, id uint, settings entity.ReferralSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		user.Referral.Settings = settings
	}
	return nil
}

func (r *MockUserRepository) ApplyReferralSignup(ctx context.Context, referrerID uint, entry entity.ReferralEntry, referrerReward entity.Reward, newUserID uint, referredBy entity.ReferredBy, signupReward entity.Reward) error {
	if r.ApplyReferralSignupErr != nil {
		return r.ApplyReferralSignupErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	referrer, ok := r.users[referrerID]
	if !ok {
		return ErrNotFound
	}
	newUser, ok := r.users[newUserID]
	if !ok {
		return ErrNotFound
	}

	referrer.Referral.Referrals = append(referrer.Referral.Referrals, entry)
	referrer.Referral.Rewards = append(referrer.Referral.Rewards, referrerReward)
	referrer.Referral.Stats.TotalReferrals++
	referrer.Referral.Stats.TotalRewardsEarned += referrerReward.Amount

	rb := referredBy
	newUser.Referral.ReferredBy = &rb
	newUser.Referral.Rewards = append(newUser.Referral.Rewards, signupReward)
	newUser.Referral.Stats.TotalRewardsEarned += signupReward.Amount
	return nil
}

// MockContactRepository is an in-memory implementation of ContactRepository
type MockContactRepository struct {
	mu       sync.RWMutex
	contacts map[uint]*entity.GeneralContact
	nextID   uint

	CreateErr  error
	GetByIDErr error
	UpdateErr  error
	ListErr    error
}

var _ repository.ContactRepository = (*MockContactRepository)(nil)

func NewMockContactRepository() *MockContactRepository {
	return &MockContactRepository{
		contacts: make(map[uint]*entity.GeneralContact),
		nextID:   1,
	}
}

// AddContact inserts a contact directly, bypassing Create semantics.
func (r *MockContactRepository) AddContact(contact *entity.GeneralContact) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if contact.ID == 0 {
		contact.ID = r.nextID
	}
	if contact.ID >= r.nextID {
		r.nextID = contact.ID + 1
	}
	r.contacts[contact.ID] = contact
}

func (r *MockContactRepository) Create(ctx context.Context, contact *entity.GeneralContact) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	contact.ID = r.nextID
	r.nextID++
	now := time.Now()
	contact.CreatedAt = now
	contact.UpdatedAt = now
	r.contacts[contact.ID] = contact
	return nil
}

func (r *MockContactRepository) GetByID(ctx context.Context, id uint) (*entity.GeneralContact, error) {
	if r.GetByIDErr != nil {
		return nil, r.GetByIDErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c, ok := r.contacts[id]; ok && c.DeletedAt == nil {
		return c, nil
	}
	return nil, nil
}

func (r *MockContactRepository) List(ctx context.Context, page, size int, status entity.ContactStatus) ([]*entity.GeneralContact, int64, error) {
	if r.ListErr != nil {
		return nil, 0, r.ListErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	contacts := make([]*entity.GeneralContact, 0, len(r.contacts))
	for id := uint(1); id < r.nextID; id++ {
		c, ok := r.contacts[id]
		if !ok || c.DeletedAt != nil {
			continue
		}
		if status != "" && c.Status != status {
			continue
		}
		contacts = append(contacts, c)
	}

	total := int64(len(contacts))
	start := (page - 1) * size
	if start >= len(contacts) {
		return []*entity.GeneralContact{}, total, nil
	}
	end := start + size
	if end > len(contacts) {
		end = len(contacts)
	}
	return contacts[start:end], total, nil
}

func (r *MockContactRepository) Update(ctx context.Context, contact *entity.GeneralContact) error {
	if r.UpdateErr != nil {
		return r.UpdateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.contacts[contact.ID]; ok {
		contact.UpdatedAt = time.Now()
		r.contacts[contact.ID] = contact
	}
	return nil
}

func (r *MockContactRepository) SoftDelete(ctx context.Context, id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.contacts[id]
	if !ok || c.DeletedAt != nil {
		return false, nil
	}
	now := time.Now()
	c.DeletedAt = &now
	return true, nil
}

func (r *MockContactRepository) Restore(ctx context.Context, id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.contacts[id]
	if !ok || c.DeletedAt == nil {
		return false, nil
	}
	c.DeletedAt = nil
	return true, nil
}

func (r *MockContactRepository) PermanentDelete(ctx context.Context, id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.contacts[id]
	if !ok || c.DeletedAt == nil {
		return false, nil
	}
	delete(r.contacts, id)
	return true, nil
}

func (r *MockContactRepository) BulkSoftDelete(ctx context.Context, ids []uint) (int64, error) {
	var affected int64
	for _, id := range ids {
		ok, _ := r.SoftDelete(ctx, id)
		if ok {
			affected++
		}
	}
	return affected, nil
}

func (r *MockContactRepository) BulkRestore(ctx context.Context, ids []uint) (int64, error) {
	var affected int64
	for _, id := range ids {
		ok, _ := r.Restore(ctx, id)
		if ok {
			affected++
		}
	}
	return affected, nil
}

// MockApplicationRepository is an in-memory implementation of
// ApplicationRepository
type MockApplicationRepository struct {
	mu     sync.RWMutex
	apps   map[uint]*entity.Application
	nextID uint

	CreateErr  error
	GetByIDErr error
	UpdateErr  error
	ListErr    error
}

var _ repository.ApplicationRepository = (*MockApplicationRepository)(nil)

func NewMockApplicationRepository() *MockApplicationRepository {
	return &MockApplicationRepository{
		apps:   make(map[uint]*entity.Application),
		nextID: 1,
	}
}

// AddApplication inserts an application directly, bypassing Create semantics.
func (r *MockApplicationRepository) AddApplication(app *entity.Application) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if app.ID == 0 {
		app.ID = r.nextID
	}
	if app.ID >= r.nextID {
		r.nextID = app.ID + 1
	}
	r.apps[app.ID] = app
}

func (r *MockApplicationRepository) Create(ctx context.Context, app *entity.Application) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	app.ID = r.nextID
	r.nextID++
	now := time.Now()
	app.CreatedAt = now
	app.UpdatedAt = now
	r.apps[app.ID] = app
	return nil
}

func (r *MockApplicationRepository) GetByID(ctx context.Context, id uint) (*entity.Application, error) {
	if r.GetByIDErr != nil {
		return nil, r.GetByIDErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if a, ok := r.apps[id]; ok && a.DeletedAt == nil {
		return a, nil
	}
	return nil, nil
}

func (r *MockApplicationRepository) List(ctx context.Context, page, size int, kind entity.ApplicationKind) ([]*entity.Application, int64, error) {
	if r.ListErr != nil {
		return nil, 0, r.ListErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	apps := make([]*entity.Application, 0, len(r.apps))
	for id := uint(1); id < r.nextID; id++ {
		a, ok := r.apps[id]
		if !ok || a.DeletedAt != nil {
			continue
		}
		if kind != "" && a.Kind != kind {
			continue
		}
		apps = append(apps, a)
	}

	total := int64(len(apps))
	start := (page - 1) * size
	if start >= len(apps) {
		return []*entity.Application{}, total, nil
	}
	end := start + size
	if end > len(apps) {
		end = len(apps)
	}
	return apps[start:end], total, nil
}

func (r *MockApplicationRepository) Update(ctx context.Context, app *entity.Application) error {
	if r.UpdateErr != nil {
		return r.UpdateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.apps[app.ID]; ok {
		app.UpdatedAt = time.Now()
		r.apps[app.ID] = app
	}
	return nil
}

func (r *MockApplicationRepository) SoftDelete(ctx context.Context, id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.apps[id]
	if !ok || a.DeletedAt != nil {
		return false, nil
	}
	now := time.Now()
	a.DeletedAt = &now
	return true, nil
}

func (r *MockApplicationRepository) Restore(ctx context.Context, id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.apps[id]
	if !ok || a.DeletedAt == nil {
		return false, nil
	}
	a.DeletedAt = nil
	return true, nil
}

func (r *MockApplicationRepository) PermanentDelete(ctx context.Context, id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.apps[id]
	if !ok || a.DeletedAt == nil {
		return false, nil
	}
	delete(r.apps, id)
	return true, nil
}

func (r *MockApplicationRepository) BulkSoftDelete(ctx context.Context, ids []uint) (int64, error) {
	var affected int64
	for _, id := range ids {
		ok, _ := r.SoftDelete(ctx, id)
		if ok {
			affected++
		}
	}
	return affected, nil
}

func (r *MockApplicationRepository) BulkRestore(ctx context.Context, ids []uint) (int64, error) {
	var affected int64
	for _, id := range ids {
		ok, _ := r.Restore(ctx, id)
		if ok {
			affected++
		}
	}
	return affected, nil
}

// MockMenuRepository is an in-memory implementation of MenuRepository
type MockMenuRepository struct {
	mu     sync.RWMutex
	items  map[uint]*entity.MenuItem
	nextID uint

	CreateErr  error
	GetByIDErr error
	UpdateErr  error
	ListErr    error
}

var _ repository.MenuRepository = (*MockMenuRepository)(nil)

func NewMockMenuRepository() *MockMenuRepository {
	return &MockMenuRepository{
		items:  make(map[uint]*entity.MenuItem),
		nextID: 1,
	}
}

// AddItem inserts a menu item directly, bypassing Create semantics.
func (r *MockMenuRepository) AddItem(item *entity.MenuItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item.ID == 0 {
		item.ID = r.nextID
	}
	if item.ID >= r.nextID {
		r.nextID = item.ID + 1
	}
	r.items[item.ID] = item
}

func (r *MockMenuRepository) Create(ctx context.Context, item *entity.MenuItem) error {
	if r.CreateErr != nil {
		return r.CreateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	item.ID = r.nextID
	r.nextID++
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now
	r.items[item.ID] = item
	return nil
}

func (r *MockMenuRepository) GetByID(ctx context.Context, id uint) (*entity.MenuItem, error) {
	if r.GetByIDErr != nil {
		return nil, r.GetByIDErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if m, ok := r.items[id]; ok && m.DeletedAt == nil {
		return m, nil
	}
	return nil, nil
}

func (r *MockMenuRepository) List(ctx context.Context, page, size int, category string) ([]*entity.MenuItem, int64, error) {
	if r.ListErr != nil {
		return nil, 0, r.ListErr
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]*entity.MenuItem, 0, len(r.items))
	for id := uint(1); id < r.nextID; id++ {
		m, ok := r.items[id]
		if !ok || m.DeletedAt != nil {
			continue
		}
		if category != "" && m.Category != category {
			continue
		}
		items = append(items, m)
	}

	total := int64(len(items))
	start := (page - 1) * size
	if start >= len(items) {
		return []*entity.MenuItem{}, total, nil
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], total, nil
}

func (r *MockMenuRepository) Update(ctx context.Context, item *entity.MenuItem) error {
	if r.UpdateErr != nil {
		return r.UpdateErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; ok {
		item.UpdatedAt = time.Now()
		r.items[item.ID] = item
	}
	return nil
}

func (r *MockMenuRepository) SoftDelete(ctx context.Context, id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.items[id]
	if !ok || m.DeletedAt != nil {
		return false, nil
	}
	now := time.Now()
	m.DeletedAt = &now
	return true, nil
}

func (r *MockMenuRepository) Restore(ctx context.Context, id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.items[id]
	if !ok || m.DeletedAt == nil {
		return false, nil
	}
	m.DeletedAt = nil
	return true, nil
}

func (r *MockMenuRepository) PermanentDelete(ctx context.Context, id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.items[id]
	if !ok || m.DeletedAt == nil {
		return false, nil
	}
	delete(r.items, id)
	return true, nil
}
