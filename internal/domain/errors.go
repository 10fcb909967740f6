package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrNoData indicates the remote call succeeded but carried no payload
	ErrNoData = errors.New("No data found")

	// ErrNotFound indicates the requested title does not exist
	ErrNotFound = errors.New("title not found")

	// ErrServerOffline indicates the catalog server is unreachable
	ErrServerOffline = errors.New("catalog server is unreachable")

	// ErrAuthFailed indicates the API key was rejected
	ErrAuthFailed = errors.New("api key is invalid")

	// ErrRateLimited indicates the server refused the request due to rate limiting
	ErrRateLimited = errors.New("rate limited by catalog server")

	// ErrNoCache indicates the cache holds nothing and the policy forbade a fetch
	ErrNoCache = errors.New("No cached data")
)
