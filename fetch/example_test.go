package fetch_test

import (
	"context"
	"fmt"

	"github.com/kochabx/fetch/fetch"
	"github.com/kochabx/fetch/log"
)

type cannedResponse struct {
	status int
	body   any
}

func (r cannedResponse) StatusCode() int    { return r.status }
func (r cannedResponse) JSON() (any, error) { return r.body, nil }
func (r cannedResponse) Close() error       { return nil }

func ExampleDispatcher_Dispatch() {
	transport := fetch.TransportFunc(func(_ context.Context, url string, opts fetch.OptionSet) (fetch.Response, error) {
		fmt.Printf("%s %s [%s]\n", opts.Method, url, opts.Headers[fetch.HeaderAuthorization])
		if url == "https://api.example.com/users/2" {
			return cannedResponse{status: 404, body: map[string]any{"message": "not found"}}, nil
		}
		return cannedResponse{status: 200, body: map[string]any{"id": 1}}, nil
	})

	d, _ := fetch.New(transport,
		fetch.WithRoot("https://api.example.com"),
		fetch.WithTokenProvider(fetch.TokenFunc(func(context.Context) (string, error) {
			return "abc", nil
		})),
		fetch.WithLogger(log.Nop()),
	)

	user, _ := d.Dispatch(context.Background(), "/users/1", "get_auth")
	fmt.Println(user)

	_, err := d.Dispatch(context.Background(), "/users/2", "GET")
	if se, ok := fetch.AsStatusError(err); ok {
		fmt.Println(se.StatusCode, se.Message)
	}

	// Output:
	// GET https://api.example.com/users/1 [Bearer abc]
	// map[id:1]
	// GET https://api.example.com/users/2 []
	// 404 not found
}
