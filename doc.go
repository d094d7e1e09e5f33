// Package auth implements the authentication subsystem of the book-catalog
// API: credential verification against a pluggable credential store, ordered
// claims assembly, HS256 token signing, and user registration.
//
// Flow:
//   - ValidateCredentials checks a username/password pair against the
//     CredentialStore and returns an explicit ValidatedIdentity handle. The
//     handle is the proof of a successful check; nothing is cached on the
//     service, so a shared Auther is safe under concurrent requests.
//   - IssueToken takes that handle, resolves signing material from the
//     JwtSettings configuration, asks the store for the user's roles, and
//     emits a compact JWS (header.payload.signature) bearer token. The
//     payload carries one name claim and one role claim per role, in the
//     store's enumeration order.
//   - RegisterUser delegates creation and password hashing to the store and
//     assigns the requested roles only when the base create succeeded.
//     Validation problems (duplicate username, password policy) come back as
//     field-level errors on the RegistrationResult, never as Go errors.
//
// The package ships a Bun-backed CredentialStore (see RepositoryManager and
// NewBunCredentialStore) and a thin go-router controller (RegisterAuthRoutes)
// exposing /login and /register.
package auth
