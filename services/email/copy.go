package email

// Locales.
const (
	LocaleDanish  = "da"
	LocaleEnglish = "en"
)

// Auth email action types sent by the auth provider.
const (
	ActionSignup      = "signup"
	ActionRecovery    = "recovery"
	ActionMagicLink   = "magiclink"
	ActionInvite      = "invite"
	ActionEmailChange = "email_change"
)

// Transactional templates.
const (
	TemplateBookingConfirmation = "booking_confirmation"
	TemplateGiftCard            = "gift_card"
)

type authCopy struct {
	Subject string
	Heading string
	Body    string
	Button  string
}

var authTexts = map[string]map[string]authCopy{
	LocaleDanish: {
		ActionSignup: {
			Subject: "Bekræft din e-mail",
			Heading: "Velkommen til BeautyBoosters",
			Body:    "Tak for din tilmelding. Bekræft din e-mailadresse for at komme i gang.",
			Button:  "Bekræft e-mail",
		},
		ActionRecovery: {
			Subject: "Nulstil din adgangskode",
			Heading: "Nulstil adgangskode",
			Body:    "Vi har modtaget en anmodning om at nulstille din adgangskode. Klik på knappen nedenfor for at vælge en ny.",
			Button:  "Nulstil adgangskode",
		},
		ActionMagicLink: {
			Subject: "Dit login-link",
			Heading: "Log ind på BeautyBoosters",
			Body:    "Klik på knappen nedenfor for at logge ind.",
			Button:  "Log ind",
		},
		ActionInvite: {
			Subject: "Du er inviteret til BeautyBoosters",
			Heading: "Du er inviteret",
			Body:    "Du er blevet inviteret til at oprette en konto hos BeautyBoosters.",
			Button:  "Accepter invitation",
		},
		ActionEmailChange: {
			Subject: "Bekræft din nye e-mail",
			Heading: "Bekræft skift af e-mail",
			Body:    "Klik på knappen nedenfor for at bekræfte din nye e-mailadresse.",
			Button:  "Bekræft ny e-mail",
		},
	},
	LocaleEnglish: {
		ActionSignup: {
			Subject: "Confirm your email",
			Heading: "Welcome to BeautyBoosters",
			Body:    "Thanks for signing up. Confirm your email address to get started.",
			Button:  "Confirm email",
		},
		ActionRecovery: {
			Subject: "Reset your password",
			Heading: "Reset password",
			Body:    "We received a request to reset your password. Click the button below to choose a new one.",
			Button:  "Reset password",
		},
		ActionMagicLink: {
			Subject: "Your login link",
			Heading: "Log in to BeautyBoosters",
			Body:    "Click the button below to log in.",
			Button:  "Log in",
		},
		ActionInvite: {
			Subject: "You are invited to BeautyBoosters",
			Heading: "You are invited",
			Body:    "You have been invited to create an account with BeautyBoosters.",
			Button:  "Accept invitation",
		},
		ActionEmailChange: {
			Subject: "Confirm your new email",
			Heading: "Confirm email change",
			Body:    "Click the button below to confirm your new email address.",
			Button:  "Confirm new email",
		},
	},
}

type commonCopy struct {
	CodeLabel string
	Footer    string
}

var commonTexts = map[string]commonCopy{
	LocaleDanish: {
		CodeLabel: "Eller brug koden:",
		Footer:    "Har du ikke bedt om denne e-mail, kan du se bort fra den. Venlig hilsen BeautyBoosters.",
	},
	LocaleEnglish: {
		CodeLabel: "Or use the code:",
		Footer:    "If you did not request this email you can ignore it. Kind regards, BeautyBoosters.",
	},
}

type field struct {
	Key   string
	Label string
}

type transactionalCopy struct {
	Subject string
	Heading string
	Intro   string
	Fields  []field
	Button  string
}

var transactionalTexts = map[string]map[string]transactionalCopy{
	LocaleDanish: {
		TemplateBookingConfirmation: {
			Subject: "Din booking er bekræftet",
			Heading: "Tak for din booking",
			Intro:   "Vi glæder os til at se dig. Her er detaljerne for din booking.",
			Fields: []field{
				{"bookingId", "Bookingnummer"}, {"date", "Dato"}, {"time", "Tidspunkt"},
				{"address", "Adresse"}, {"services", "Ydelser"}, {"totalPrice", "Total"},
			},
			Button: "Se din booking",
		},
		TemplateGiftCard: {
			Subject: "Du har modtaget et gavekort",
			Heading: "Et gavekort til dig",
			Intro:   "Du har fået et gavekort til BeautyBoosters.",
			Fields: []field{
				{"toName", "Til"}, {"fromName", "Fra"}, {"amount", "Værdi"},
				{"serviceName", "Ydelse"}, {"message", "Hilsen"}, {"validTo", "Gyldig til"},
			},
			Button: "Book nu",
		},
	},
	LocaleEnglish: {
		TemplateBookingConfirmation: {
			Subject: "Your booking is confirmed",
			Heading: "Thank you for your booking",
			Intro:   "We look forward to seeing you. Here are the details of your booking.",
			Fields: []field{
				{"bookingId", "Booking number"}, {"date", "Date"}, {"time", "Time"},
				{"address", "Address"}, {"services", "Services"}, {"totalPrice", "Total"},
			},
			Button: "View your booking",
		},
		TemplateGiftCard: {
			Subject: "You received a gift card",
			Heading: "A gift card for you",
			Intro:   "You have received a gift card for BeautyBoosters.",
			Fields: []field{
				{"toName", "To"}, {"fromName", "From"}, {"amount", "Value"},
				{"serviceName", "Service"}, {"message", "Message"}, {"validTo", "Valid until"},
			},
			Button: "Book now",
		},
	},
}

// NormalizeLocale maps a requested locale onto a supported one, defaulting to Danish.
func NormalizeLocale(l string) string {
	if len(l) >= 2 && (l[:2] == LocaleEnglish || l[:2] == "EN") {
		return LocaleEnglish
	}
	return LocaleDanish
}
