// Package authflow wires an OAuth login strategy into HTTP routes.
//
// A Handler serves two endpoints per provider:
//
//	GET /auth/{provider}           redirect to the provider with a fresh state
//	GET /auth/{provider}/callback  check state, authenticate, call onSuccess
//
// The state is a random UUID kept in an HMAC-signed, HttpOnly cookie that is
// consumed by the callback.
//
// Usage:
//
//	states, err := authflow.NewStateStore(cfg.StateSecret, authflow.WithSecureCookie(true))
//	h, err := authflow.New(strategy, states, func(w http.ResponseWriter, r *http.Request, u *User) {
//		// start session, redirect
//	}, authflow.WithLogger(log))
//
//	r := chi.NewRouter()
//	h.Routes(r)
//
// Failures go through an ErrorFunc. DefaultErrorHandler answers 400 for a bad
// state or missing code, 401 for denied or rejected logins and 502 when the
// provider fails.
package authflow
