package models

// Session is the client-side identity state. It is populated at login or
// signup, persisted to the device store and rehydrated at startup.
type Session struct {
	Token            string `json:"token"`
	Role             Role   `json:"role"`
	UserID           uint   `json:"user_id"`
	Email            string `json:"email"`
	Name             string `json:"name"`
	PartnerActive    bool   `json:"partner_active"`
	OnboardingDone   bool   `json:"onboarding_done"`
	SelectedLocation string `json:"selected_location"`
}

// GuestSession is the default identity when nothing is persisted or the
// device store cannot be read.
func GuestSession() Session {
	return Session{Role: RoleGuest}
}

// LoggedIn reports whether the session carries a usable bearer token.
func (s Session) LoggedIn() bool {
	return s.Token != "" && s.Role != RoleGuest
}
