//go:build race

package auth

import "golang.org/x/crypto/bcrypt"

// Race-enabled builds use the default cost so suites fit strict timeouts.
func passwordHashCost() int {
	return bcrypt.DefaultCost
}
