// Package rest adds typed service descriptors on top of httpclient.
//
// A Service carries the request and response types of an endpoint, so a
// call returns the decoded response instead of an untyped value:
//
//	var login = rest.MustService[LoginRequest, rest.Envelope[Token]](
//	    "/api/login", httpclient.MethodPost, httpclient.ContentTypeJSON)
//
//	res, err := rest.Call(ctx, client, login, LoginRequest{Username: "a", Password: "b"}, nil)
//	if rest.IsAuth(err) {
//	    // ...
//	}
//	token := res.Data.Data
package rest
