// Package remote talks to the paginated REST service being reconciled.
//
// # Token Provider
//
// NewTokenProvider obtains one bearer token per run with the OAuth2 client
// credentials grant (golang.org/x/oauth2/clientcredentials), or returns a
// configured static token.
//
// # Page Fetcher
//
// HTTPFetcher implements reconcile.PageFetcher. Each call is a single GET with
// offset and limit query parameters; there is no retry. Transport failures are
// connectivity errors, non-2xx responses and undecodable bodies are protocol
// errors.
//
// Bodies are decoded with json.Number so numeric fields keep the textual form
// the service sent. Records are read from PageLayout.RecordsPath and the total
// hint from PageLayout.TotalPath, both dotted paths.
//
// # Usage
//
//	client, _ := remote.NewHTTPClient(cfg.API)
//	tokens, _ := remote.NewTokenProvider(cfg.Auth, client, log)
//	token, err := tokens.Token(ctx)
//
//	fetcher, _ := remote.NewHTTPFetcher(cfg.API, client, "/assets", token,
//	    remote.PageLayout{RecordsPath: "results", TotalPath: "total"}, log)
package remote
