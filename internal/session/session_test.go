package session

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/vovakirdan/tui-runner/internal/account"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

// queuedCodes returns queued codes in order, then "000000".
type queuedCodes struct {
	codes []string
}

func (q *queuedCodes) Next() (string, error) {
	if len(q.codes) == 0 {
		return "000000", nil
	}
	c := q.codes[0]
	q.codes = q.codes[1:]
	return c, nil
}

// brokenStore fails every call.
type brokenStore struct{}

func (brokenStore) Load(context.Context) (map[string]account.Account, error) {
	return map[string]account.Account{}, account.ErrCorrupt
}
func (brokenStore) Put(context.Context, account.Account) error {
	return errors.New("disk full")
}
func (brokenStore) Close() error { return nil }

// countingStore counts puts into a MemoryStore. While hidden, Load reports
// an empty set, as if another writer had dropped every account.
type countingStore struct {
	*storage.MemoryStore
	puts   int
	hidden bool
}

func (c *countingStore) Load(ctx context.Context) (map[string]account.Account, error) {
	if c.hidden {
		return map[string]account.Account{}, nil
	}
	return c.MemoryStore.Load(ctx)
}

func (c *countingStore) Put(ctx context.Context, a account.Account) error {
	c.puts++
	return c.MemoryStore.Put(ctx, a)
}

type ManagerSuite struct {
	suite.Suite
	store   *countingStore
	codes   *queuedCodes
	manager *Manager
}

func TestManagerSuite(t *testing.T) {
	suite.Run(t, new(ManagerSuite))
}

func (s *ManagerSuite) SetupTest() {
	s.store = &countingStore{MemoryStore: storage.NewMemory()}
	s.codes = &queuedCodes{}
	s.manager = s.newManager()
}

func (s *ManagerSuite) newManager() *Manager {
	return New(Options{Store: s.store, Codes: s.codes, PasswordCost: bcrypt.MinCost})
}

func (s *ManagerSuite) stored(username string) account.Account {
	accounts, err := s.store.Load(context.Background())
	s.Require().NoError(err)
	acct, ok := accounts[username]
	s.Require().True(ok, "account %q not stored", username)
	return acct
}

func (s *ManagerSuite) register(username, email, password string) {
	s.Require().NoError(s.manager.Register(username, email, password, password))
}

// Authenticate tests

func (s *ManagerSuite) TestAuthenticateEmptyFields() {
	s.ErrorIs(s.manager.Authenticate("", "x"), ErrEmptyField)
	s.ErrorIs(s.manager.Authenticate("  ", "x"), ErrEmptyField)
	s.ErrorIs(s.manager.Authenticate("abc", ""), ErrEmptyField)
	s.False(s.manager.Active())
}

func (s *ManagerSuite) TestFirstLoginProvisionsAccount() {
	s.Require().NoError(s.manager.Authenticate("abc", "x"))

	p := s.manager.Profile()
	s.Equal("abc", p.Username)
	s.Zero(p.Currency)
	s.Zero(p.BestScore)
	s.Equal(account.DefaultSkin, p.Equipped)
	s.Equal([]string{account.DefaultSkin}, p.Owned)

	acct := s.stored("abc")
	s.NotEqual("x", acct.Password, "credential should be hashed")
	s.True(isBcryptHash(acct.Password))
}

func (s *ManagerSuite) TestWrongPasswordRejected() {
	s.Require().NoError(s.manager.Authenticate("abc", "x"))

	other := s.newManager()
	s.ErrorIs(other.Authenticate("abc", "y"), ErrInvalidCredentials)
	s.False(other.Active())
	s.NoError(other.Authenticate("abc", "x"))
}

func (s *ManagerSuite) TestLegacyPlaintextUpgradedOnLogin() {
	legacy := account.New("old", "hunter2", "old@example.com")
	s.Require().NoError(s.store.Put(context.Background(), legacy))
	m := s.newManager()

	s.ErrorIs(m.Authenticate("old", "wrong"), ErrInvalidCredentials)
	s.Equal("hunter2", s.stored("old").Password)

	s.Require().NoError(m.Authenticate("old", "hunter2"))
	s.True(isBcryptHash(s.stored("old").Password))
	s.Equal("old@example.com", s.stored("old").Email)

	s.NoError(s.newManager().Authenticate("old", "hunter2"))
}

func (s *ManagerSuite) TestLoginRestoresUnownedEquippedToDefault() {
	acct := account.New("ana", "pw", "")
	acct.EquippedSkin = "infernal"
	s.Require().NoError(s.store.Put(context.Background(), acct))

	m := s.newManager()
	s.Require().NoError(m.Authenticate("ana", "pw"))
	s.Equal(account.DefaultSkin, m.Profile().Equipped)
}

// Register tests

func (s *ManagerSuite) TestRegisterErrorOrder() {
	s.register("taken", "taken@example.com", "pw")

	tests := []struct {
		name                    string
		user, email, pass, conf string
		want                    error
	}{
		{"empty", "ana", "", "pw", "pw", ErrEmptyField},
		{"invalid email beats mismatch", "ana", "ana-at-example", "pw", "other", ErrInvalidEmail},
		{"mismatch beats taken", "taken", "ana@example.com", "pw", "other", ErrPasswordMismatch},
		{"username taken", "taken", "ana@example.com", "pw", "pw", ErrUsernameTaken},
		{"email taken, case-insensitive", "ana", " TAKEN@example.com ", "pw", "pw", ErrEmailTaken},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.ErrorIs(s.manager.Register(tt.user, tt.email, tt.pass, tt.conf), tt.want)
		})
	}
}

func (s *ManagerSuite) TestRegisterCreatesFreshAccount() {
	s.register("ana", "ana@example.com", "pw")

	acct := s.stored("ana")
	s.Equal("ana@example.com", acct.Email)
	s.Zero(acct.Currency)
	s.Zero(acct.BestScore)
	s.Equal([]string{account.DefaultSkin}, acct.OwnedSkins)
	s.False(s.manager.Active(), "registration does not sign in")

	s.NoError(s.manager.Authenticate("ana", "pw"))
}

// Recovery tests

func (s *ManagerSuite) TestIssueRecoveryCodeValidation() {
	s.register("ana", "ana@example.com", "pw")

	_, err := s.manager.IssueRecoveryCode("not-an-email")
	s.ErrorIs(err, ErrInvalidEmail)
	_, err = s.manager.IssueRecoveryCode("bob@example.com")
	s.ErrorIs(err, ErrEmailUnknown)
	s.False(s.manager.RecoveryPending())
}

func (s *ManagerSuite) TestRecoveryHappyPath() {
	s.register("ana", "ana@example.com", "old")
	s.codes.codes = []string{"123456"}

	ticket, err := s.manager.IssueRecoveryCode(" Ana@Example.com ")
	s.Require().NoError(err)
	s.Equal("123456", ticket.Code)
	s.Equal("Ana@Example.com", ticket.Email)
	s.Equal(ticket.Seq, s.manager.RecoverySeq())

	s.Require().NoError(s.manager.VerifyRecoveryCode("ana@example.com", " 123456 "))

	user, err := s.manager.ResetPassword("ANA@example.com", "new", "new")
	s.Require().NoError(err)
	s.Equal("ana", user)
	s.False(s.manager.RecoveryPending())
	s.Zero(s.manager.RecoverySeq())

	fresh := s.newManager()
	s.ErrorIs(fresh.Authenticate("ana", "old"), ErrInvalidCredentials)
	s.NoError(fresh.Authenticate("ana", "new"))
}

func (s *ManagerSuite) TestVerifyWithoutCode() {
	s.ErrorIs(s.manager.VerifyRecoveryCode("ana@example.com", "123456"), ErrNoPendingCode)
}

func (s *ManagerSuite) TestMismatchClearsVerification() {
	s.register("ana", "ana@example.com", "old")
	s.codes.codes = []string{"123456"}
	_, err := s.manager.IssueRecoveryCode("ana@example.com")
	s.Require().NoError(err)

	s.Require().NoError(s.manager.VerifyRecoveryCode("ana@example.com", "123456"))
	s.ErrorIs(s.manager.VerifyRecoveryCode("ana@example.com", "654321"), ErrCodeMismatch)

	_, err = s.manager.ResetPassword("ana@example.com", "new", "new")
	s.ErrorIs(err, ErrNotVerified)
}

func (s *ManagerSuite) TestResetRequiresSameEmail() {
	s.register("ana", "ana@example.com", "pw")
	s.register("bob", "bob@example.com", "pw")
	s.codes.codes = []string{"111111"}
	_, err := s.manager.IssueRecoveryCode("ana@example.com")
	s.Require().NoError(err)

	s.ErrorIs(s.manager.VerifyRecoveryCode("bob@example.com", "111111"), ErrCodeMismatch)
	s.Require().NoError(s.manager.VerifyRecoveryCode("ana@example.com", "111111"))

	_, err = s.manager.ResetPassword("bob@example.com", "new", "new")
	s.ErrorIs(err, ErrNotVerified)
	_, err = s.manager.ResetPassword("ana@example.com", "new", "other")
	s.ErrorIs(err, ErrPasswordMismatch)
	_, err = s.manager.ResetPassword("ana@example.com", "", "")
	s.ErrorIs(err, ErrEmptyField)
}

func (s *ManagerSuite) TestReissueResetsVerification() {
	s.register("ana", "ana@example.com", "pw")
	s.codes.codes = []string{"111111", "222222"}

	first, err := s.manager.IssueRecoveryCode("ana@example.com")
	s.Require().NoError(err)
	s.Require().NoError(s.manager.VerifyRecoveryCode("ana@example.com", "111111"))

	second, err := s.manager.IssueRecoveryCode("ana@example.com")
	s.Require().NoError(err)
	s.Greater(second.Seq, first.Seq)

	_, err = s.manager.ResetPassword("ana@example.com", "new", "new")
	s.ErrorIs(err, ErrNotVerified)
	s.ErrorIs(s.manager.VerifyRecoveryCode("ana@example.com", "111111"), ErrCodeMismatch)
}

func (s *ManagerSuite) TestHOTPCodesAreSixDigits() {
	codes, err := NewHOTPCodes("Dino Runner", "test")
	s.Require().NoError(err)

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		code, err := codes.Next()
		s.Require().NoError(err)
		s.Len(code, 6)
		s.Empty(strings.Trim(code, "0123456789"))
		seen[code] = true
	}
	s.Greater(len(seen), 1, "codes should vary with the counter")
}

// Economy tests

func (s *ManagerSuite) TestCoinScenario() {
	s.Require().NoError(s.manager.Authenticate("abc", "x"))
	s.Zero(s.manager.Profile().Currency)

	for i := 0; i < 23; i++ {
		s.manager.AwardCurrency(2)
	}
	s.manager.RecordScore(340)

	s.Equal(46, s.stored("abc").Currency)

	fresh := s.newManager()
	s.Require().NoError(fresh.Authenticate("abc", "x"))
	s.Equal(46, fresh.Profile().Currency)
	s.Equal(340, fresh.Profile().BestScore)
}

func (s *ManagerSuite) TestRecordScoreKeepsBest() {
	s.Require().NoError(s.manager.Authenticate("abc", "x"))
	s.manager.RecordScore(500)
	s.manager.RecordScore(120)
	s.Equal(500, s.manager.Profile().BestScore)
	s.Equal(500, s.stored("abc").BestScore)
}

func (s *ManagerSuite) TestPurchaseUnaffordableIsNoop() {
	s.Require().NoError(s.manager.Authenticate("abc", "x"))
	s.manager.AwardCurrency(48)

	s.manager.Purchase("infernal")

	p := s.manager.Profile()
	s.Equal(48, p.Currency)
	s.False(p.Owns("infernal"))
	s.Equal(account.DefaultSkin, p.Equipped)
}

func (s *ManagerSuite) TestPurchaseDebitsAndEquips() {
	s.Require().NoError(s.manager.Authenticate("abc", "x"))
	s.manager.AwardCurrency(60)

	s.manager.Purchase("infernal")

	p := s.manager.Profile()
	s.Equal(10, p.Currency)
	s.True(p.Owns("infernal"))
	s.Equal("infernal", p.Equipped)

	// Buying an owned skin only equips it.
	s.manager.Equip(account.DefaultSkin)
	s.manager.Purchase("infernal")
	s.Equal(10, s.manager.Profile().Currency)
	s.Equal("infernal", s.manager.Profile().Equipped)
}

func (s *ManagerSuite) TestEquipUnownedIsNoop() {
	s.Require().NoError(s.manager.Authenticate("abc", "x"))
	puts := s.store.puts

	s.manager.Equip("infernal")

	s.Equal(account.DefaultSkin, s.manager.Profile().Equipped)
	s.Equal(puts, s.store.puts)
}

func (s *ManagerSuite) TestPersistLoadRoundTrip() {
	s.Require().NoError(s.manager.Authenticate("abc", "x"))
	s.manager.AwardCurrency(70)
	s.manager.Purchase("infernal")
	s.manager.RecordScore(910)
	want := s.manager.Profile()
	s.Require().NoError(s.manager.PersistProfile())

	fresh := s.newManager()
	s.Require().NoError(fresh.LoadProfile("abc"))
	s.Equal(want, fresh.Profile())

	s.ErrorIs(fresh.LoadProfile("nobody"), ErrNoAccount)
}

func (s *ManagerSuite) TestEconomyNeedsSignIn() {
	s.manager.AwardCurrency(10)
	s.manager.RecordScore(10)
	s.manager.Purchase("infernal")
	s.Zero(s.store.puts)
	s.NoError(s.manager.Close())
}

func (s *ManagerSuite) TestBrokenStoreNeverSurfaces() {
	m := New(Options{Store: brokenStore{}, Codes: s.codes, PasswordCost: bcrypt.MinCost})

	s.Require().NoError(m.Authenticate("abc", "x"))
	m.AwardCurrency(2)
	s.Equal(2, m.Profile().Currency)
	s.Error(m.PersistProfile())
}

// Shared store tests

func (s *ManagerSuite) TestSessionsSharingStoreKeepEachOthersAccounts() {
	other := s.newManager()

	s.Require().NoError(s.manager.Authenticate("alice", "pwa"))

	// other signs bob in from a snapshot taken before alice existed.
	s.store.hidden = true
	s.Require().NoError(other.Authenticate("bob", "pwb"))
	s.store.hidden = false

	s.manager.AwardCurrency(2)
	other.AwardCurrency(4)

	alice := s.stored("alice")
	s.True(isBcryptHash(alice.Password))
	s.Equal(2, alice.Currency)
	s.Equal(4, s.stored("bob").Currency)

	fresh := s.newManager()
	s.NoError(fresh.Authenticate("alice", "pwa"))
	s.NoError(s.newManager().Authenticate("bob", "pwb"))
}

func (s *ManagerSuite) TestPersistRestoresMissingAccountWithCredential() {
	s.register("alice", "alice@example.com", "pwa")
	s.Require().NoError(s.manager.Authenticate("alice", "pwa"))

	s.store.hidden = true
	s.manager.AwardCurrency(2)
	s.store.hidden = false

	alice := s.stored("alice")
	s.True(isBcryptHash(alice.Password))
	s.Equal("alice@example.com", alice.Email)
	s.Equal(2, alice.Currency)
	s.NoError(s.newManager().Authenticate("alice", "pwa"))
}

// Credential tests

func (s *ManagerSuite) TestLongPasswords() {
	long := strings.Repeat("p", 80)
	sameBcryptPrefix := strings.Repeat("p", 72) + "qqqqqqqq"

	s.Require().NoError(s.manager.Authenticate("abc", long))
	other := s.newManager()
	s.ErrorIs(other.Authenticate("abc", sameBcryptPrefix), ErrInvalidCredentials)
	s.NoError(other.Authenticate("abc", long))

	s.Require().NoError(s.manager.Register("ana", "ana@example.com", long+"!", long+"!"))
	s.NoError(s.newManager().Authenticate("ana", long+"!"))

	s.codes.codes = []string{"123456"}
	_, err := s.manager.IssueRecoveryCode("ana@example.com")
	s.Require().NoError(err)
	s.Require().NoError(s.manager.VerifyRecoveryCode("ana@example.com", "123456"))
	_, err = s.manager.ResetPassword("ana@example.com", sameBcryptPrefix, sameBcryptPrefix)
	s.Require().NoError(err)
	s.ErrorIs(s.newManager().Authenticate("ana", long+"!"), ErrInvalidCredentials)
	s.NoError(s.newManager().Authenticate("ana", sameBcryptPrefix))
}
