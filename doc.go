// Package titanic provides the Titanic passengers API: JWT authentication,
// role based authorization, and passenger CRUD, search and statistics over
// Bun-backed repositories.
//
// Authentication:
//   - Auther orchestrates registration, login and current-user resolution.
//     Passwords are stored as bcrypt hashes; login failures for unknown
//     emails and wrong passwords are indistinguishable to the caller.
//   - TokenService issues and verifies HS256 access tokens. Tokens are
//     stateless: there is no revocation list, a signed token stays valid
//     until its expiry even if the account is deactivated. Protected routes
//     compensate by re-checking the account on every request.
//
// Authorization:
//   - Guard values evaluate a resolved User. RequireAuthenticated admits any
//     active account, RequireRole restricts by role, RequireAdmin is the
//     admin shorthand. RouteAuthenticator.Protected composes token
//     verification, account resolution and a guard into router middleware.
//
// Passengers:
//   - PassengerService normalizes inputs and wraps results in the standard
//     envelope (success, message, data list, count, metadata). Reads are
//     public; creation needs a token, updates and deletes need admin.
package titanic
