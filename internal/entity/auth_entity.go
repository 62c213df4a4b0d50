package entity

// AuthUser is the identity resolved from a bearer token.
type AuthUser struct {
	Uid   string
	Email string
}

// AnonymousUser is the shared identity used when no identity provider is
// configured. Authentication is effectively disabled in that mode.
var AnonymousUser = AuthUser{
	Uid:   "anonymous",
	Email: "anonymous@local.dev",
}
