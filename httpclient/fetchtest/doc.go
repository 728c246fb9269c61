// Package fetchtest runs a stub backend for exercising fetch calls in tests.
//
//	b := fetchtest.NewBackend(t)
//	client, _ := httpclient.New(httpclient.WithDefaults(httpclient.RequestConfig{
//	    BaseURL: httpclient.Ptr(b.URL),
//	}))
//
// The backend serves the login and token check endpoints of the session
// package plus diagnostic routes: /echo, /chunked, /slow, /status/:code,
// /charset/gbk, /json/malformed, /redirect and /cookie.
package fetchtest
