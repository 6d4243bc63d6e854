// Package middle contains middleware for use with the nfa registry server.
package middle

import (
	"context"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/dekarrin/nfa/server/result"
	"github.com/golang-jwt/jwt/v5"
)

type mwFunc http.HandlerFunc

func (sf mwFunc) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	sf(w, req)
}

// Middleware is a function that takes a handler and returns a new handler
// which wraps the given one and provides some additional functionality.
type Middleware func(next http.Handler) http.Handler

// AuthKey is a key in the context of a request populated by an AuthHandler.
type AuthKey int64

const (
	AuthLoggedIn AuthKey = iota
	AuthSubject
)

// AuthHandler is middleware that extracts a bearer token from a request and
// validates it against a shared secret. Unlike a user-database-backed
// scheme, there is no subject lookup: the claimed subject is trusted once
// the signature and expiry check out, and is placed in the request context
// for handlers to read.
type AuthHandler struct {
	secret        []byte
	required      bool
	unauthedDelay time.Duration
	next          http.Handler
}

func (ah *AuthHandler) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	var loggedIn bool
	var subject string

	tok, err := GetBearer(req)
	if err != nil {
		if ah.required {
			r := result.Unauthorized("", err.Error())
			time.Sleep(ah.unauthedDelay)
			r.WriteResponse(w)
			return
		}
	} else {
		claims, err := Validate(tok, ah.secret)
		if err != nil {
			if ah.required {
				r := result.Unauthorized("", err.Error())
				time.Sleep(ah.unauthedDelay)
				r.WriteResponse(w)
				return
			}
		} else {
			subject, _ = claims.GetSubject()
			loggedIn = true
		}
	}

	ctx := req.Context()
	ctx = context.WithValue(ctx, AuthLoggedIn, loggedIn)
	ctx = context.WithValue(ctx, AuthSubject, subject)
	req = req.WithContext(ctx)
	ah.next.ServeHTTP(w, req)
}

// RequireAuth returns Middleware that rejects any request without a valid
// bearer token.
func RequireAuth(secret []byte, unauthDelay time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return &AuthHandler{secret: secret, unauthedDelay: unauthDelay, required: true, next: next}
	}
}

// OptionalAuth returns Middleware that populates the request context with
// auth info when a valid bearer token is present, but lets unauthenticated
// requests through.
func OptionalAuth(secret []byte, unauthDelay time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return &AuthHandler{secret: secret, unauthedDelay: unauthDelay, required: false, next: next}
	}
}

// DontPanic returns a Middleware that recovers from a panic in next and
// writes a generic HTTP-500 instead of letting the process crash.
func DontPanic() Middleware {
	return func(next http.Handler) http.Handler {
		return mwFunc(func(w http.ResponseWriter, r *http.Request) {
			defer panicTo500(w)
			next.ServeHTTP(w, r)
		})
	}
}

func panicTo500(w http.ResponseWriter) (panicVal interface{}) {
	if panicErr := recover(); panicErr != nil {
		r := result.TextErr(
			http.StatusInternalServerError,
			"An internal server error occurred",
			fmt.Sprintf("panic: %v\nSTACK TRACE: %s", panicErr, string(debug.Stack())),
		)
		r.WriteResponse(w)
		return true
	}
	return false
}

// GetBearer extracts the bearer token from req's Authorization header.
func GetBearer(req *http.Request) (string, error) {
	authHeader := strings.TrimSpace(req.Header.Get("Authorization"))
	if authHeader == "" {
		return "", fmt.Errorf("no authorization header present")
	}

	authParts := strings.SplitN(authHeader, " ", 2)
	if len(authParts) != 2 {
		return "", fmt.Errorf("authorization header not in Bearer format")
	}

	scheme := strings.TrimSpace(strings.ToLower(authParts[0]))
	tok := strings.TrimSpace(authParts[1])

	if scheme != "bearer" {
		return "", fmt.Errorf("authorization header not in Bearer format")
	}

	return tok, nil
}

// Issue creates a signed bearer token identifying subject, valid for ttl.
func Issue(secret []byte, subject string, ttl time.Duration) (string, error) {
	claims := &jwt.MapClaims{
		"iss": "nfaregistryd",
		"exp": time.Now().Add(ttl).Unix(),
		"sub": subject,
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	return tok.SignedString(secret)
}

// Validate parses and verifies tok against secret, returning its claims if
// the signature, algorithm, issuer, and expiry all check out.
func Validate(tok string, secret []byte) (jwt.Claims, error) {
	parsed, err := jwt.Parse(tok, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}), jwt.WithIssuer("nfaregistryd"), jwt.WithLeeway(time.Minute))
	if err != nil {
		return nil, err
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("token is not valid")
	}
	return parsed.Claims, nil
}
