package usecase

import (
	"context"
	"time"

	"github.com/grocify/account-guard/internal/core/domain"
	"github.com/grocify/account-guard/internal/core/port"
	"github.com/grocify/account-guard/internal/infra/security"
	"github.com/grocify/account-guard/internal/infra/wordlist"
	"github.com/grocify/account-guard/internal/repository"
)

// fakeClock is a mutable test clock shared across collaborators.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.t = c.t.Add(d)
}

// memLocks is an in-memory LockStore with the same window semantics as the
// redis implementation.
type memLocks struct {
	records map[string]domain.IdentityLock
	err     error
}

func newMemLocks() *memLocks {
	return &memLocks{records: make(map[string]domain.IdentityLock)}
}

func (s *memLocks) Get(_ context.Context, identity string) (*domain.IdentityLock, error) {
	if s.err != nil {
		return nil, s.err
	}
	lock, ok := s.records[identity]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &lock, nil
}

func (s *memLocks) RecordFailure(_ context.Context, identity string, at time.Time, resetWindow time.Duration) (domain.IdentityLock, error) {
	if s.err != nil {
		return domain.IdentityLock{}, s.err
	}
	next := domain.IdentityLock{FailureCount: 1, LastFailureUnix: at.Unix()}
	if prev, ok := s.records[identity]; ok && at.Unix()-prev.LastFailureUnix <= int64(resetWindow.Seconds()) {
		next.FailureCount = prev.FailureCount + 1
	}
	s.records[identity] = next
	return next, nil
}

func (s *memLocks) Delete(_ context.Context, identity string) error {
	if s.err != nil {
		return s.err
	}
	if _, ok := s.records[identity]; !ok {
		return repository.ErrNotFound
	}
	delete(s.records, identity)
	return nil
}

// memAccounts is an in-memory AccountStore with injectable faults.
type memAccounts struct {
	accounts map[string]*domain.Account

	getErr    error
	createErr error
	updateErr error
}

func newMemAccounts() *memAccounts {
	return &memAccounts{accounts: make(map[string]*domain.Account)}
}

func (s *memAccounts) Get(_ context.Context, username string) (*domain.Account, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	account, ok := s.accounts[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *account
	return &copied, nil
}

func (s *memAccounts) Create(_ context.Context, account domain.Account) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.accounts[account.Username] = &account
	return nil
}

func (s *memAccounts) Update(_ context.Context, username string, patch domain.AccountPatch) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	if patch.IsEmpty() {
		return repository.ErrEmptyPatch
	}
	account, ok := s.accounts[username]
	if !ok {
		return repository.ErrNotFound
	}
	applyPatch(account, patch)
	return nil
}

func (s *memAccounts) Delete(_ context.Context, username string) error {
	if _, ok := s.accounts[username]; !ok {
		return repository.ErrNotFound
	}
	delete(s.accounts, username)
	return nil
}

func (s *memAccounts) UsernameExists(_ context.Context, username string) (bool, error) {
	_, ok := s.accounts[username]
	return ok, nil
}

func (s *memAccounts) EmailExists(_ context.Context, canonicalEmail string) (bool, error) {
	for _, account := range s.accounts {
		if account.Email == canonicalEmail {
			return true, nil
		}
	}
	return false, nil
}

func (s *memAccounts) PhoneExists(_ context.Context, phone string) (bool, error) {
	for _, account := range s.accounts {
		if account.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func applyPatch(account *domain.Account, patch domain.AccountPatch) {
	if patch.Email != nil {
		account.Email = *patch.Email
	}
	if patch.Phone != nil {
		account.Phone = *patch.Phone
	}
	if patch.PasswordDigest != nil {
		account.PasswordDigest = *patch.PasswordDigest
	}
	if patch.Status != nil {
		account.Status = *patch.Status
	}
	if patch.LoginFailures != nil {
		account.LoginFailures = *patch.LoginFailures
	}
	if patch.LastLoginFailure != nil {
		account.LastLoginFailure = *patch.LastLoginFailure
	}
	if patch.EmailCodeFailures != nil {
		account.EmailCodeFailures = *patch.EmailCodeFailures
	}
	if patch.PhoneCodeFailures != nil {
		account.PhoneCodeFailures = *patch.PhoneCodeFailures
	}
	if patch.VerificationCode != nil {
		account.VerificationCode = *patch.VerificationCode
	}
	if patch.CodeIssuedAt != nil {
		account.CodeIssuedAt = *patch.CodeIssuedAt
	}
}

// memChannel captures delivered codes instead of sending them anywhere.
type memChannel struct {
	destinations []string
	lastCode     string
	err          error
}

func (ch *memChannel) Send(_ context.Context, destination, code string) error {
	if ch.err != nil {
		return ch.err
	}
	ch.destinations = append(ch.destinations, destination)
	ch.lastCode = code
	return nil
}

// memGateway scripts the verification gateway's answers.
type memGateway struct {
	status     domain.VerifyStatus
	startCalls int
	checkErr   error
}

func (g *memGateway) Start(_ context.Context, _ string) error {
	g.startCalls++
	return nil
}

func (g *memGateway) Check(_ context.Context, _, _ string) (domain.VerifyStatus, error) {
	if g.checkErr != nil {
		return "", g.checkErr
	}
	return g.status, nil
}

// memAudit records entries for assertion.
type memAudit struct {
	entries []domain.AuditEntry
}

func (a *memAudit) Record(_ context.Context, entry domain.AuditEntry) error {
	a.entries = append(a.entries, entry)
	return nil
}

// memNotifier records admin alerts.
type memNotifier struct {
	messages []string
}

func (n *memNotifier) Notify(_ context.Context, message string) error {
	n.messages = append(n.messages, message)
	return nil
}

type memBreaches map[string]bool

func (b memBreaches) Contains(_ context.Context, digest string) (bool, error) {
	return b[digest], nil
}

// fixture bundles a coordinator with every fake it is wired to.
type fixture struct {
	coordinator *AccountCoordinator
	accounts    *memAccounts
	locks       *memLocks
	channel     *memChannel
	gateway     *memGateway
	audit       *memAudit
	admin       *memNotifier
	clock       *fakeClock
}

func newFixture() *fixture {
	clock := newFakeClock()
	accounts := newMemAccounts()
	locks := newMemLocks()
	channel := &memChannel{}
	gateway := &memGateway{status: domain.VerifyStatusApproved}
	audit := &memAudit{}
	admin := &memNotifier{}

	passwords := security.NewPasswordRuleEngine(
		wordlist.NewStatic("password", "dragon"),
		memBreaches{},
		"grocify",
	)
	attempts := NewAttemptTracker(locks).WithClock(clock.Now)
	codes := NewVerificationCodeManager(accounts, channel, gateway).WithClock(clock.Now)
	coordinator := NewAccountCoordinator(accounts, passwords, attempts, codes, audit, admin, nil).WithClock(clock.Now)

	return &fixture{
		coordinator: coordinator,
		accounts:    accounts,
		locks:       locks,
		channel:     channel,
		gateway:     gateway,
		audit:       audit,
		admin:       admin,
		clock:       clock,
	}
}

// seedAccount stores an account with a real digest for the given password.
func (f *fixture) seedAccount(username, password string, status domain.AccountStatus) *domain.Account {
	digest, err := security.DigestCredential(password)
	if err != nil {
		panic(err)
	}
	account := &domain.Account{
		Username:       username,
		Email:          username + "@example.com",
		Phone:          "5551234567",
		PasswordDigest: digest,
		Status:         status,
		CreatedAt:      f.clock.Now(),
	}
	f.accounts.accounts[username] = account
	return account
}

var _ port.LockStore = (*memLocks)(nil)
var _ port.AccountStore = (*memAccounts)(nil)
var _ port.CodeDeliveryChannel = (*memChannel)(nil)
var _ port.PhoneVerifyGateway = (*memGateway)(nil)
var _ port.AuditLog = (*memAudit)(nil)
var _ port.AdminNotifier = (*memNotifier)(nil)
