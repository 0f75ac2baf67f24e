package profile

import sessionsvc "github.com/janisto/little-lemon/internal/service/session"

// Notifications are the email notification preferences.
type Notifications struct {
	OrderStatus     bool `json:"orderStatus"     doc:"Order status updates"      example:"true"`
	PasswordChanges bool `json:"passwordChanges" doc:"Password change alerts"    example:"true"`
	Newsletter      bool `json:"newsletter"      doc:"Special offers newsletter" example:"false"`
}

// Profile represents the installation's profile.
type Profile struct {
	FirstName     string        `json:"firstName"     maxLength:"100" doc:"First name"    example:"Ana"`
	LastName      string        `json:"lastName"      maxLength:"100" doc:"Last name"     example:"Silva"`
	Email         string        `json:"email"         maxLength:"254" doc:"Email address" example:"ana@littlelemon.com"`
	Phone         string        `json:"phone"         maxLength:"32"  doc:"Phone number"  example:"(312) 555-0100"`
	Notifications Notifications `json:"notifications"                 doc:"Notification preferences"`
}

func toHTTPProfile(p sessionsvc.UserProfile) Profile {
	return Profile{
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
		Phone:     p.Phone,
		Notifications: Notifications{
			OrderStatus:     p.OrderStatusNotif,
			PasswordChanges: p.PasswordChangesNotif,
			Newsletter:      p.NewsletterNotif,
		},
	}
}

func (p Profile) toService() sessionsvc.UserProfile {
	return sessionsvc.UserProfile{
		FirstName:            p.FirstName,
		LastName:             p.LastName,
		Email:                p.Email,
		Phone:                p.Phone,
		OrderStatusNotif:     p.Notifications.OrderStatus,
		PasswordChangesNotif: p.Notifications.PasswordChanges,
		NewsletterNotif:      p.Notifications.Newsletter,
	}
}
