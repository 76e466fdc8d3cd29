package screens

// Action is a user intent routed through the Machine.
// The set is closed: only types in this package implement it.
type Action interface {
	action()
}

// Login submits the login form.
type Login struct {
	Username string
	Password string
}

// OpenRegister shows the registration form.
type OpenRegister struct{}

// OpenRecover shows the password recovery form.
type OpenRecover struct{}

// Register submits the registration form.
type Register struct {
	Username string
	Email    string
	Password string
	Confirm  string
}

// BackToLogin leaves the registration or recovery form.
type BackToLogin struct{}

// SendCode requests a recovery code for Email.
type SendCode struct {
	Email string
}

// VerifyCode checks a recovery code.
type VerifyCode struct {
	Email string
	Code  string
}

// ResetPassword sets a new password after a verified code.
type ResetPassword struct {
	Email    string
	Password string
	Confirm  string
}

type (
	Play          struct{}
	OpenShop      struct{}
	OpenSkins     struct{}
	Exit          struct{}
	BackToMenu    struct{}
	Pause         struct{}
	Continue      struct{}
	PlayAgain     struct{}
	Jump          struct{}
	CrouchPress   struct{}
	CrouchRelease struct{}
)

// Purchase buys SkinID when affordable and equips it when owned.
type Purchase struct {
	SkinID string
}

// Equip equips an owned skin.
type Equip struct {
	SkinID string
}

func (Login) action()         {}
func (OpenRegister) action()  {}
func (OpenRecover) action()   {}
func (Register) action()      {}
func (BackToLogin) action()   {}
func (SendCode) action()      {}
func (VerifyCode) action()    {}
func (ResetPassword) action() {}
func (Play) action()          {}
func (OpenShop) action()      {}
func (OpenSkins) action()     {}
func (Exit) action()          {}
func (BackToMenu) action()    {}
func (Purchase) action()      {}
func (Equip) action()         {}
func (Pause) action()         {}
func (Continue) action()      {}
func (PlayAgain) action()     {}
func (Jump) action()          {}
func (CrouchPress) action()   {}
func (CrouchRelease) action() {}
