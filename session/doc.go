// Package session keeps the bearer token of a logged-in user and attaches
// it to fetch calls.
//
//	store := session.NewStore()
//	client.Configure(store.Config())
//
//	if _, err := session.Login(ctx, client, store, session.Credentials{Username: "a", Password: "b"}); err != nil {
//	    return err
//	}
//	ok, err := session.Check(ctx, client, store)
//
// Tokens that are JWTs are inspected for their exp claim without verifying
// the signature; an expired token is no longer sent. A 401 response clears
// the store.
package session
