// Package token provides bearer token sources for authenticated dispatches.
package token

import (
	"context"
	stderrors "errors"

	"github.com/kochabx/fetch/fetch"
)

var (
	// ErrEmptyToken is returned when a source yields an empty token.
	ErrEmptyToken = stderrors.New("token: empty token")
	// ErrTokenNotFound is returned when the Redis key holding the token
	// does not exist.
	ErrTokenNotFound = stderrors.New("token: not found")
)

var (
	_ fetch.TokenProvider = Static("")
	_ fetch.TokenProvider = Func(nil)
	_ fetch.TokenProvider = (*JWT)(nil)
	_ fetch.TokenProvider = (*Redis)(nil)
)

// Static is a fixed token.
type Static string

func (s Static) Token(context.Context) (string, error) {
	if s == "" {
		return "", ErrEmptyToken
	}
	return string(s), nil
}

// Func adapts a closure to fetch.TokenProvider. An empty token is reported
// as ErrEmptyToken.
type Func func(ctx context.Context) (string, error)

func (f Func) Token(ctx context.Context) (string, error) {
	tok, err := f(ctx)
	if err != nil {
		return "", err
	}
	if tok == "" {
		return "", ErrEmptyToken
	}
	return tok, nil
}
