package access

// SessionState tracks identity-provider resolution. Unknown means the
// session has not been resolved yet and must not be treated as
// unauthenticated, or every reload would bounce through the login page.
type SessionState int

const (
	StateUnknown SessionState = iota
	StateUnauthenticated
	StateAuthenticated
)

// Principal is the loaded profile of an authenticated caller. A nil
// Principal on an authenticated session means the profile record has
// not arrived yet.
type Principal struct {
	ID       string
	FullName string
	Role     Role
}

// Session is the guard's view of the caller.
type Session struct {
	State     SessionState
	Principal *Principal
}

// Action is the guard's verdict for a navigation attempt.
type Action int

const (
	// Pending means session or profile resolution is still in flight;
	// render a neutral loading state, never a redirect.
	Pending Action = iota
	// RedirectToLogin sends the caller to sign in, preserving the
	// originally requested path for the post-login return trip.
	RedirectToLogin
	// RedirectToHome bounces an authenticated caller whose role does
	// not meet the route's requirement.
	RedirectToHome
	Allow
)

// Decision carries the action plus the path to return to after login.
type Decision struct {
	Action     Action
	ReturnPath string
}

// Evaluate applies the guard's precedence order to a session and a
// route requirement. The ordering is load-bearing: unknown sessions
// and missing profiles both resolve to Pending before any redirect or
// denial is considered.
func Evaluate(sess Session, req Requirement, requestedPath string) Decision {
	if sess.State == StateUnknown {
		return Decision{Action: Pending}
	}
	if sess.State == StateUnauthenticated {
		return Decision{Action: RedirectToLogin, ReturnPath: requestedPath}
	}
	if sess.Principal == nil {
		return Decision{Action: Pending}
	}
	if !CanAccess(sess.Principal.Role, req) {
		return Decision{Action: RedirectToHome}
	}
	return Decision{Action: Allow}
}
