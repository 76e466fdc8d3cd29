package screens

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/vovakirdan/tui-runner/internal/account"
	"github.com/vovakirdan/tui-runner/internal/notify"
	"github.com/vovakirdan/tui-runner/internal/session"
	"github.com/vovakirdan/tui-runner/internal/storage"
)

type fixedCode string

func (c fixedCode) Next() (string, error) { return string(c), nil }

type fakeRun struct {
	running  bool
	resets   int
	jumps    int
	crouched bool
}

func (r *fakeRun) Reset()         { r.resets++; r.running = true }
func (r *fakeRun) Running() bool  { return r.running }
func (r *fakeRun) Jump()          { r.jumps++ }
func (r *fakeRun) CrouchPress()   { r.crouched = true }
func (r *fakeRun) CrouchRelease() { r.crouched = false }

type sent struct {
	seq         uint64
	email, code string
}

type fakeMailer struct {
	sent []sent
}

func (f *fakeMailer) Dispatch(seq uint64, email, code string) {
	f.sent = append(f.sent, sent{seq, email, code})
}

// readOnlyStore rejects writes once readOnly is set.
type readOnlyStore struct {
	*storage.MemoryStore
	readOnly bool
}

func (r *readOnlyStore) Put(ctx context.Context, a account.Account) error {
	if r.readOnly {
		return errors.New("read-only file system")
	}
	return r.MemoryStore.Put(ctx, a)
}

type MachineSuite struct {
	suite.Suite
	store   *storage.MemoryStore
	manager *session.Manager
	run     *fakeRun
	mailer  *fakeMailer
	m       *Machine
}

func TestMachineSuite(t *testing.T) {
	suite.Run(t, new(MachineSuite))
}

func (s *MachineSuite) SetupTest() {
	s.store = storage.NewMemory()
	s.manager = session.New(session.Options{
		Store:        s.store,
		Codes:        fixedCode("123456"),
		PasswordCost: bcrypt.MinCost,
	})
	s.run = &fakeRun{}
	s.mailer = &fakeMailer{}
	s.m = New(s.manager, s.run, s.mailer, nil)
}

func (s *MachineSuite) signIn() {
	s.m.Dispatch(Login{Username: "abc", Password: "x"})
	s.Require().Equal(ScreenMainMenu, s.m.Screen())
}

func (s *MachineSuite) registerAlice() {
	s.Require().NoError(s.manager.Register("alice", "alice@example.com", "pw", "pw"))
}

func (s *MachineSuite) TestStartsOnLogin() {
	s.Equal(ScreenLogin, s.m.Screen())
	s.False(s.m.Terminated())
	s.False(s.m.Advancing())
}

func (s *MachineSuite) TestLoginFailureStays() {
	s.m.Dispatch(Login{Username: "abc"})
	s.Equal(ScreenLogin, s.m.Screen())
	s.Equal("Enter username and password.", s.m.Status(ScreenLogin))

	s.registerAlice()
	s.m.Dispatch(Login{Username: "alice", Password: "nope"})
	s.Equal(ScreenLogin, s.m.Screen())
	s.Equal("Wrong username or password.", s.m.Status(ScreenLogin))
}

func (s *MachineSuite) TestLoginSuccessClearsStatus() {
	s.m.Dispatch(Login{Username: "abc"})
	s.NotEmpty(s.m.Status(ScreenLogin))

	s.signIn()
	s.Empty(s.m.Status(ScreenLogin))
}

func (s *MachineSuite) TestInvalidActionsIgnored() {
	s.m.Dispatch(Play{})
	s.m.Dispatch(Jump{})
	s.m.Dispatch(Purchase{SkinID: "infernal"})
	s.Equal(ScreenLogin, s.m.Screen())
	s.Zero(s.run.resets)
	s.Zero(s.run.jumps)

	s.signIn()
	s.m.Dispatch(Login{Username: "other", Password: "y"})
	s.m.Dispatch(Continue{})
	s.m.Dispatch(Jump{})
	s.Equal(ScreenMainMenu, s.m.Screen())
	s.Zero(s.run.jumps)
	s.Equal("abc", s.manager.Profile().Username)
}

func (s *MachineSuite) TestRegisterFlow() {
	s.m.Dispatch(OpenRegister{})
	s.Require().Equal(ScreenRegister, s.m.Screen())

	s.m.Dispatch(Register{Username: "bob", Email: "bob", Password: "a", Confirm: "a"})
	s.Equal("Invalid email.", s.m.Status(ScreenRegister))
	s.Equal(ScreenRegister, s.m.Screen())

	s.m.Dispatch(Register{Username: "bob", Email: "bob@x.io", Password: "a", Confirm: "a"})
	s.Equal(ScreenLogin, s.m.Screen())
	s.Equal("Account created. Sign in.", s.m.Status(ScreenLogin))
	s.Empty(s.m.Status(ScreenRegister))

	name, ok := s.m.TakePrefill()
	s.True(ok)
	s.Equal("bob", name)
	_, ok = s.m.TakePrefill()
	s.False(ok)
}

func (s *MachineSuite) TestRegisterErrorMessages() {
	s.registerAlice()
	s.m.Dispatch(OpenRegister{})

	cases := []struct {
		name string
		form Register
		want string
	}{
		{"empty", Register{Username: "bob"}, "Fill in every field."},
		{"mismatch", Register{"bob", "bob@x.io", "a", "b"}, "Passwords do not match."},
		{"username taken", Register{"alice", "new@x.io", "a", "a"}, "That username already exists."},
		{"email taken", Register{"bob", "ALICE@example.com", "a", "a"}, "That email is already registered."},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.m.Dispatch(tc.form)
			s.Equal(ScreenRegister, s.m.Screen())
			s.Equal(tc.want, s.m.Status(ScreenRegister))
		})
	}
}

func (s *MachineSuite) TestOpenRegisterClearsStatus() {
	s.m.Dispatch(OpenRegister{})
	s.m.Dispatch(Register{})
	s.NotEmpty(s.m.Status(ScreenRegister))

	s.m.Dispatch(BackToLogin{})
	s.Equal(ScreenLogin, s.m.Screen())
	s.Empty(s.m.Status(ScreenRegister))

	s.m.Dispatch(OpenRegister{})
	s.Empty(s.m.Status(ScreenRegister))
}

func (s *MachineSuite) TestRecoveryFlow() {
	s.registerAlice()
	s.m.Dispatch(OpenRecover{})
	s.Require().Equal(ScreenRecover, s.m.Screen())

	s.m.Dispatch(VerifyCode{Email: "alice@example.com", Code: "123456"})
	s.Equal("Send the code to your email first.", s.m.Status(ScreenRecover))

	s.m.Dispatch(SendCode{Email: "nobody@example.com"})
	s.Equal("That email is not registered.", s.m.Status(ScreenRecover))
	s.Empty(s.mailer.sent)

	s.m.Dispatch(SendCode{Email: "alice@example.com"})
	s.Equal(ScreenRecover, s.m.Screen())
	s.Require().Len(s.mailer.sent, 1)
	s.Equal("123456", s.mailer.sent[0].code)
	s.Equal("alice@example.com", s.mailer.sent[0].email)
	s.Contains(s.m.Status(ScreenRecover), "alice@example.com")

	s.m.Dispatch(ResetPassword{Email: "alice@example.com", Password: "new", Confirm: "new"})
	s.Equal("Verify the recovery code first.", s.m.Status(ScreenRecover))

	s.m.Dispatch(VerifyCode{Email: "alice@example.com", Code: "000000"})
	s.Equal("Wrong code.", s.m.Status(ScreenRecover))

	s.m.Dispatch(VerifyCode{Email: "alice@example.com", Code: "123456"})
	s.Equal("Code verified. Now enter your new password.", s.m.Status(ScreenRecover))

	s.m.Dispatch(ResetPassword{Email: "alice@example.com", Password: "new", Confirm: "old"})
	s.Equal("Passwords do not match.", s.m.Status(ScreenRecover))

	s.m.Dispatch(ResetPassword{Email: "alice@example.com", Password: "new", Confirm: "new"})
	s.Equal(ScreenLogin, s.m.Screen())
	s.Equal("Password updated. Sign in.", s.m.Status(ScreenLogin))
	name, _ := s.m.TakePrefill()
	s.Equal("alice", name)

	s.m.Dispatch(Login{Username: "alice", Password: "new"})
	s.Equal(ScreenMainMenu, s.m.Screen())
}

func (s *MachineSuite) TestResetNeedsSameEmail() {
	s.registerAlice()
	s.Require().NoError(s.manager.Register("bob", "bob@example.com", "pw", "pw"))
	s.m.Dispatch(OpenRecover{})
	s.m.Dispatch(SendCode{Email: "alice@example.com"})
	s.m.Dispatch(VerifyCode{Email: "alice@example.com", Code: "123456"})

	s.m.Dispatch(ResetPassword{Email: "bob@example.com", Password: "x", Confirm: "x"})
	s.Equal(ScreenRecover, s.m.Screen())
	s.Equal("Verify the recovery code first.", s.m.Status(ScreenRecover))
}

func (s *MachineSuite) TestLeavingRecoverClearsSession() {
	s.registerAlice()
	s.m.Dispatch(OpenRecover{})
	s.m.Dispatch(SendCode{Email: "alice@example.com"})
	s.m.Dispatch(VerifyCode{Email: "alice@example.com", Code: "123456"})
	s.NotZero(s.manager.RecoverySeq())

	s.m.Dispatch(BackToLogin{})
	s.Equal(ScreenLogin, s.m.Screen())
	s.Zero(s.manager.RecoverySeq())
	s.Empty(s.m.Status(ScreenRecover))

	s.m.Dispatch(OpenRecover{})
	s.m.Dispatch(ResetPassword{Email: "alice@example.com", Password: "x", Confirm: "x"})
	s.Equal("Verify the recovery code first.", s.m.Status(ScreenRecover))
}

func (s *MachineSuite) TestDeliveryResult() {
	s.registerAlice()
	s.m.Dispatch(OpenRecover{})
	s.m.Dispatch(SendCode{Email: "alice@example.com"})
	first := s.mailer.sent[0].seq

	s.m.Dispatch(SendCode{Email: "alice@example.com"})
	second := s.mailer.sent[1].seq
	s.NotEqual(first, second)

	s.False(s.m.DeliveryResult(notify.Result{Seq: first, Status: "old"}))
	s.NotEqual("old", s.m.Status(ScreenRecover))

	s.True(s.m.DeliveryResult(notify.Result{Seq: second, Delivered: true, Status: "Code sent to alice@example.com"}))
	s.Equal("Code sent to alice@example.com", s.m.Status(ScreenRecover))

	s.m.Dispatch(BackToLogin{})
	s.False(s.m.DeliveryResult(notify.Result{Seq: second, Status: "late"}))
	s.False(s.m.DeliveryResult(notify.Result{Status: "no session"}))
}

func (s *MachineSuite) TestPlayLifecycle() {
	s.signIn()

	s.m.Dispatch(Play{})
	s.Equal(ScreenPlaying, s.m.Screen())
	s.Equal(1, s.run.resets)
	s.True(s.m.Advancing())

	s.m.Dispatch(Jump{})
	s.m.Dispatch(CrouchPress{})
	s.Equal(1, s.run.jumps)
	s.True(s.run.crouched)

	s.m.Dispatch(Pause{})
	s.Equal(ScreenPaused, s.m.Screen())
	s.False(s.m.Advancing())
	s.m.Dispatch(Jump{})
	s.Equal(1, s.run.jumps)
	s.m.Dispatch(CrouchRelease{})
	s.False(s.run.crouched)

	s.m.Dispatch(Continue{})
	s.Equal(ScreenPlaying, s.m.Screen())
	s.Equal(1, s.run.resets, "continue resumes without a reset")

	s.run.running = false
	s.False(s.m.Advancing())
	s.m.GameOver()
	s.Equal(ScreenGameOver, s.m.Screen())

	s.m.Dispatch(PlayAgain{})
	s.Equal(ScreenPlaying, s.m.Screen())
	s.Equal(2, s.run.resets)

	s.m.GameOver()
	s.m.Dispatch(BackToMenu{})
	s.Equal(ScreenMainMenu, s.m.Screen())
}

func (s *MachineSuite) TestGameOverOnlyWhilePlaying() {
	s.signIn()
	s.m.GameOver()
	s.Equal(ScreenMainMenu, s.m.Screen())

	s.m.Dispatch(Play{})
	s.m.Dispatch(Pause{})
	s.m.GameOver()
	s.Equal(ScreenPaused, s.m.Screen())

	s.m.Dispatch(BackToMenu{})
	s.Equal(ScreenMainMenu, s.m.Screen())
}

func (s *MachineSuite) TestShopAndSkins() {
	s.signIn()
	s.manager.AwardCurrency(60)

	s.m.Dispatch(OpenShop{})
	s.Require().Equal(ScreenShop, s.m.Screen())
	s.m.Dispatch(Purchase{SkinID: "infernal"})
	s.Equal(ScreenShop, s.m.Screen())

	p := s.manager.Profile()
	s.Equal(10, p.Currency)
	s.Equal("infernal", p.Equipped)
	s.True(p.Owns("infernal"))

	s.m.Dispatch(BackToMenu{})
	s.m.Dispatch(OpenSkins{})
	s.Require().Equal(ScreenSkins, s.m.Screen())
	s.m.Dispatch(Equip{SkinID: account.DefaultSkin})
	s.Equal(account.DefaultSkin, s.manager.Profile().Equipped)

	s.m.Dispatch(BackToMenu{})
	s.Equal(ScreenMainMenu, s.m.Screen())
}

func (s *MachineSuite) TestExitPersistsAndTerminates() {
	s.signIn()
	s.manager.AwardCurrency(4)

	s.m.Dispatch(Exit{})
	s.True(s.m.Terminated())

	s.m.Dispatch(Play{})
	s.Equal(ScreenMainMenu, s.m.Screen())
	s.Zero(s.run.resets)

	reloaded := session.New(session.Options{Store: s.store, PasswordCost: bcrypt.MinCost})
	s.Require().NoError(reloaded.LoadProfile("abc"))
	s.Equal(4, reloaded.Profile().Currency)
}

func (s *MachineSuite) TestExitLogsFailedSave() {
	store := &readOnlyStore{MemoryStore: storage.NewMemory()}
	manager := session.New(session.Options{Store: store, PasswordCost: bcrypt.MinCost})
	var buf bytes.Buffer
	m := New(manager, s.run, s.mailer, log.New(&buf))

	m.Dispatch(Login{Username: "abc", Password: "x"})
	s.Require().Equal(ScreenMainMenu, m.Screen())
	store.readOnly = true
	buf.Reset()

	m.Dispatch(Exit{})
	s.True(m.Terminated())
	s.Contains(buf.String(), "cannot save profile on exit")
	s.Contains(buf.String(), "read-only file system")
}

func TestRegions(t *testing.T) {
	tests := []struct {
		screen Screen
		want   []Region
		hidden []Region
	}{
		{ScreenLogin, []Region{RegionStats, RegionLoginForm}, []Region{RegionRegisterForm, RegionPlayfield}},
		{ScreenRegister, []Region{RegionRegisterForm}, []Region{RegionLoginForm, RegionRecoverForm}},
		{ScreenRecover, []Region{RegionRecoverForm}, []Region{RegionLoginForm, RegionHelp}},
		{ScreenMainMenu, []Region{RegionStats, RegionMenu, RegionHelp}, []Region{RegionPlayfield, RegionTitle}},
		{ScreenShop, []Region{RegionTitle, RegionShop}, []Region{RegionStats, RegionHelp}},
		{ScreenSkins, []Region{RegionStats, RegionSkins}, []Region{RegionTitle}},
		{ScreenPlaying, []Region{RegionStats, RegionPlayfield, RegionHelp}, []Region{RegionPauseMenu}},
		{ScreenPaused, []Region{RegionPlayfield, RegionPauseMenu}, []Region{RegionHelp}},
		{ScreenGameOver, []Region{RegionPlayfield, RegionGameOverMenu}, []Region{RegionMenu}},
	}
	for _, tt := range tests {
		t.Run(tt.screen.String(), func(t *testing.T) {
			for _, r := range tt.want {
				if !Visible(tt.screen, r) {
					t.Errorf("%s should show %s", tt.screen, r)
				}
			}
			for _, r := range tt.hidden {
				if Visible(tt.screen, r) {
					t.Errorf("%s should hide %s", tt.screen, r)
				}
			}
		})
	}
}

func TestScreenString(t *testing.T) {
	if got := ScreenGameOver.String(); got != "game_over" {
		t.Errorf("ScreenGameOver.String() = %q", got)
	}
	if got := Screen(42).String(); got != "unknown" {
		t.Errorf("Screen(42).String() = %q", got)
	}
}
