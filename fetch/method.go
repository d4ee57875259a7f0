package fetch

import (
	"net/http"
	"strings"
)

// Method is a method token. The zero value is MethodGet, which is also what
// any unrecognized token resolves to.
type Method int

const (
	MethodGet Method = iota
	MethodPut
	MethodPost
	MethodPatch
	MethodGetAuth
	MethodPostAuth
	MethodPatchAuth
	MethodPutAuth
	MethodDeleteAuth
)

var methodTokens = [...]string{
	MethodGet:        "GET",
	MethodPut:        "PUT",
	MethodPost:       "POST",
	MethodPatch:      "PATCH",
	MethodGetAuth:    "GET_AUTH",
	MethodPostAuth:   "POST_AUTH",
	MethodPatchAuth:  "PATCH_AUTH",
	MethodPutAuth:    "PUT_AUTH",
	MethodDeleteAuth: "DELETE_AUTH",
}

var methodVerbs = [...]string{
	MethodGet:        http.MethodGet,
	MethodPut:        http.MethodPut,
	MethodPost:       http.MethodPost,
	MethodPatch:      http.MethodPatch,
	MethodGetAuth:    http.MethodGet,
	MethodPostAuth:   http.MethodPost,
	MethodPatchAuth:  http.MethodPatch,
	MethodPutAuth:    http.MethodPut,
	MethodDeleteAuth: http.MethodDelete,
}

// ParseMethod matches s case-insensitively against the known tokens.
// Unknown and empty tokens, including plain "DELETE", yield MethodGet.
func ParseMethod(s string) Method {
	upper := strings.ToUpper(s)
	for m, token := range methodTokens {
		if token == upper {
			return Method(m)
		}
	}
	return MethodGet
}

// String returns the token, e.g. "PATCH_AUTH".
func (m Method) String() string {
	if !m.valid() {
		return methodTokens[MethodGet]
	}
	return methodTokens[m]
}

// Verb returns the HTTP method sent on the wire, without the _AUTH suffix.
func (m Method) Verb() string {
	if !m.valid() {
		return http.MethodGet
	}
	return methodVerbs[m]
}

// Authenticated reports whether the token needs a bearer token.
func (m Method) Authenticated() bool {
	return m >= MethodGetAuth && m <= MethodDeleteAuth
}

func (m Method) valid() bool {
	return m >= MethodGet && int(m) < len(methodTokens)
}
