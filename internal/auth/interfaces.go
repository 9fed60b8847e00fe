package auth

// Authorizer decides whether a Google account is a client of the gallery.
// Implemented by the drive folder resolver: only users with a mapped client
// folder may sign in.
type Authorizer interface {
	Authorized(email string) bool
}
