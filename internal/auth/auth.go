// Package auth resolves the sync token. The token normally lives in the
// persisted state tree (in the clear, as a pasted bearer credential); an
// environment variable overrides it without touching the state file.
package auth

import (
	"encoding/json"
	"os"
	"strings"

	jwt "github.com/golang-jwt/jwt/v4"

	"github.com/idilsaglam/tasklist/internal/model"
)

// EnvToken overrides the stored token when set.
const EnvToken = "TASKLIST_TOKEN"

// Resolve returns the effective token and where it came from ("env",
// "state", or "" when absent).
func Resolve(st *model.State) (token, source string) {
	if env := strings.TrimSpace(os.Getenv(EnvToken)); env != "" {
		return StripBearer(env), "env"
	}
	if t := strings.TrimSpace(st.Token); t != "" {
		return StripBearer(t), "state"
	}
	return "", ""
}

// StripBearer drops an accidental "Bearer " prefix from a pasted token.
func StripBearer(s string) string {
	if strings.HasPrefix(strings.ToLower(s), "bearer ") {
		return strings.TrimSpace(s[7:])
	}
	return s
}

// Describe introspects JWT-shaped tokens without verifying them and returns
// the claims as indented JSON. Opaque tokens (GitHub PATs are) cannot be
// introspected locally.
func Describe(token string) string {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return "Opaque token (cannot introspect locally)."
	}
	b, err := json.MarshalIndent(claims, "", "  ")
	if err != nil {
		return "Opaque token (cannot introspect locally)."
	}
	return "JWT payload:\n" + string(b)
}
