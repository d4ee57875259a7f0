package fetchtest

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kochabx/fetch/errors"
)

func TestServerRecords(t *testing.T) {
	s := NewServer(t)
	s.Handle(http.MethodPost, "/items", http.StatusCreated, gin.H{"id": 7})

	resp, err := http.Post(s.URL+"/items?x=1", "application/json", strings.NewReader(`{"name":"a"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, err = http.Get(s.URL + "/missing")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	reqs := s.Requests()
	require.Len(t, reqs, 2)
	assert.Equal(t, "POST", reqs[0].Method)
	assert.Equal(t, "/items", reqs[0].Path)
	assert.Equal(t, "1", reqs[0].Query.Get("x"))
	assert.Equal(t, map[string]any{"name": "a"}, reqs[0].Body)
	assert.Equal(t, "application/json", reqs[0].Header.Get("Content-Type"))

	last, ok := s.Last()
	require.True(t, ok)
	assert.Equal(t, "/missing", last.Path)
	assert.Nil(t, last.Body)

	s.Reset()
	_, ok = s.Last()
	assert.False(t, ok)
}

func TestRequireJWT(t *testing.T) {
	s := NewServer(t)
	s.HandleFunc(http.MethodGet, "/me", RequireJWT("k"), func(c *gin.Context) {
		claims := c.MustGet(ClaimsKey).(jwt.MapClaims)
		c.JSON(http.StatusOK, gin.H{"sub": claims["sub"]})
	})

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}).SignedString([]byte("k"))
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid", "Bearer " + signed, http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"garbage", "Bearer nope", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, s.URL+"/me", nil)
			require.NoError(t, err)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestHandleError(t *testing.T) {
	s := NewServer(t)
	s.HandleError(http.MethodPut, "/items/1", errors.Conflict("item exists").WithMetadata(map[string]string{"name": "taken"}))

	req, err := http.NewRequest(http.MethodPut, s.URL+"/items/1", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, map[string]any{"message": "item exists", "errors": map[string]any{"name": "taken"}}, body)
}
