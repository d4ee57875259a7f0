// Package fetch dispatches JSON requests against a configured API root.
//
// A Dispatcher turns a method token such as "POST" or "GET_AUTH" into a
// request option set, prefixes relative URLs with the API root, sends the
// request through an injected Transport and classifies the response:
//
//   - 204 No Content resolves to an empty object without reading the body;
//   - any other status in [200, 300) resolves to the decoded JSON body;
//   - everything else becomes a *StatusError carrying the decoded body.
//
// Transport failures, body decoding failures and status errors all go to a
// single ErrorHandler. The default handler, Rethrow, returns the error to
// the caller unchanged.
//
//	d, _ := fetch.New(http.New(),
//	    fetch.WithRoot("https://api.example.com"),
//	    fetch.WithTokenProvider(token.Static(apiKey)),
//	)
//	user, err := d.Dispatch(ctx, "/users/1", "GET_AUTH")
package fetch
