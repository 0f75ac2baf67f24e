package session

// Store keys. The layout is shared with the mobile client, so the names are
// part of the persisted format.
const (
	KeyOnboardingComplete   = "onboardingComplete"
	KeyFirstName            = "userFirstName"
	KeyLastName             = "userLastName"
	KeyEmail                = "userEmail"
	KeyPhone                = "userPhone"
	KeyOrderStatusNotif     = "orderStatusNotif"
	KeyPasswordChangesNotif = "passwordChangesNotif"
	KeyNewsletterNotif      = "newsletterNotif"
)

const flagTrue = "true"

// profileKeys are the keys that make up a UserProfile.
var profileKeys = []string{
	KeyFirstName,
	KeyLastName,
	KeyEmail,
	KeyPhone,
	KeyOrderStatusNotif,
	KeyPasswordChangesNotif,
	KeyNewsletterNotif,
}

// UserProfile is the editable profile of an onboarded installation.
type UserProfile struct {
	FirstName            string
	LastName             string
	Email                string
	Phone                string
	OrderStatusNotif     bool
	PasswordChangesNotif bool
	NewsletterNotif      bool
}

// DefaultProfile is the profile shown when nothing has been stored.
func DefaultProfile() UserProfile {
	return UserProfile{
		OrderStatusNotif:     true,
		PasswordChangesNotif: true,
		NewsletterNotif:      false,
	}
}

// values returns the stored representation of every profile field.
func (p UserProfile) values() map[string]string {
	return map[string]string{
		KeyFirstName:            p.FirstName,
		KeyLastName:             p.LastName,
		KeyEmail:                p.Email,
		KeyPhone:                p.Phone,
		KeyOrderStatusNotif:     formatFlag(p.OrderStatusNotif),
		KeyPasswordChangesNotif: formatFlag(p.PasswordChangesNotif),
		KeyNewsletterNotif:      formatFlag(p.NewsletterNotif),
	}
}

// apply sets the field stored under key.
func (p *UserProfile) apply(key, value string) {
	switch key {
	case KeyFirstName:
		p.FirstName = value
	case KeyLastName:
		p.LastName = value
	case KeyEmail:
		p.Email = value
	case KeyPhone:
		p.Phone = value
	case KeyOrderStatusNotif:
		p.OrderStatusNotif = value == flagTrue
	case KeyPasswordChangesNotif:
		p.PasswordChangesNotif = value == flagTrue
	case KeyNewsletterNotif:
		p.NewsletterNotif = value == flagTrue
	}
}

func formatFlag(b bool) string {
	if b {
		return flagTrue
	}
	return "false"
}

// OnboardingForm holds the fields collected on first run.
type OnboardingForm struct {
	FirstName string
	LastName  string
	Email     string
}

// CanSubmit reports whether the form may be submitted. The client disables
// its submit control on the same predicate.
func CanSubmit(form OnboardingForm) bool {
	return form.FirstName != "" && form.Email != ""
}

// Confirmation is the answer to the logout prompt.
type Confirmation bool

const (
	Confirm Confirmation = true
	Cancel  Confirmation = false
)
