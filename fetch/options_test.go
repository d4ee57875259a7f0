package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseOptions(t *testing.T) {
	assert.Equal(t, OptionSet{Method: "GET"}, BaseOptions(MethodGet))
	assert.Equal(t, OptionSet{Method: "GET"}, BaseOptions(Method(99)))

	put := BaseOptions(MethodPut)
	assert.Equal(t, "PUT", put.Method)
	assert.Equal(t, map[string]string{"Accept": "application/json", "Content-Type": "application/json"}, put.Headers)
	assert.Nil(t, put.Body)

	// Each call hands out its own headers.
	put.Headers["X-Leak"] = "1"
	assert.NotContains(t, BaseOptions(MethodPut).Headers, "X-Leak")

	getAuth := BaseOptions(MethodGetAuth)
	assert.Equal(t, "GET", getAuth.Method)
	assert.NotContains(t, getAuth.Headers, HeaderAuthorization)
}

func TestAuthOptions(t *testing.T) {
	set := AuthOptions(MethodDeleteAuth, "abc")
	assert.Equal(t, OptionSet{
		Method: "DELETE",
		Headers: map[string]string{
			"Accept":        "application/json",
			"Content-Type":  "application/json",
			"Authorization": "Bearer abc",
		},
	}, set)
}

func TestMerge(t *testing.T) {
	base := BaseOptions(MethodPost)

	tests := []struct {
		name string
		over OptionSet
		want OptionSet
	}{
		{
			name: "empty keeps base",
			over: OptionSet{},
			want: base,
		},
		{
			name: "headers replaced wholesale",
			over: OptionSet{Headers: map[string]string{"X-Custom": "1"}},
			want: OptionSet{Method: "POST", Headers: map[string]string{"X-Custom": "1"}},
		},
		{
			name: "empty headers clear",
			over: OptionSet{Headers: map[string]string{}},
			want: OptionSet{Method: "POST", Headers: map[string]string{}},
		},
		{
			name: "method and body",
			over: OptionSet{Method: "PATCH", Body: "raw"},
			want: OptionSet{Method: "PATCH", Headers: base.Headers, Body: "raw"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Merge(tt.over))
		})
	}
}

func TestClone(t *testing.T) {
	set := AuthOptions(MethodPutAuth, "t")
	cp := set.Clone()
	cp.Headers[HeaderAuthorization] = "changed"
	assert.Equal(t, "Bearer t", set.Headers[HeaderAuthorization])
	assert.Nil(t, OptionSet{}.Clone().Headers)
}

func TestCallOptions(t *testing.T) {
	c := &call{}
	WithBody(1)(c)
	WithOptions(OptionSet{Method: "PUT"})(c)
	assert.Nil(t, c.options.Body, "WithOptions replaces earlier call options")

	WithBody(2)(c)
	External()(c)
	assert.Equal(t, OptionSet{Method: "PUT", Body: 2}, c.options)
	assert.True(t, c.external)
}
