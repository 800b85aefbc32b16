package ledger

// Kind classifies ledger failures so transports can map them to statuses.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindAuth
	KindConflict
	KindInsufficientCredits
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindConflict:
		return "conflict"
	case KindInsufficientCredits:
		return "insufficient credits"
	case KindNotFound:
		return "not found"
	}
	return "unknown"
}

// Error is returned for every expected ledger failure. Message is safe to
// show to the caller.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return e.Message
}

// Is matches on Kind, so errors.Is(err, ErrAuth) holds for every auth failure.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// Sentinels for errors.Is.
var (
	ErrValidation          = &Error{Kind: KindValidation}
	ErrAuth                = &Error{Kind: KindAuth}
	ErrConflict            = &Error{Kind: KindConflict}
	ErrInsufficientCredits = &Error{Kind: KindInsufficientCredits}
	ErrNotFound            = &Error{Kind: KindNotFound}
)

var (
	errCredentialsRequired = &Error{KindValidation, "Email and password required"}
	errPasswordTooShort    = &Error{KindValidation, "Password must be at least 6 characters"}
	errInvalidAmount       = &Error{KindValidation, "Invalid amount"}
	errEmailTaken          = &Error{KindConflict, "Email already registered"}
	errInvalidLogin        = &Error{KindAuth, "Invalid email or password"}
	errAPIKeyRequired      = &Error{KindAuth, "API key required"}
	errInvalidAPIKey       = &Error{KindAuth, "Invalid API key"}
	errUnauthorized        = &Error{KindAuth, "Unauthorized"}
	errInsufficientCredits = &Error{KindInsufficientCredits, "Insufficient credits"}
	errUserNotFound        = &Error{KindNotFound, "User not found"}
)
