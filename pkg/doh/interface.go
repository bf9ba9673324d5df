// Package doh defines the abstraction over a DNS-over-HTTPS JSON endpoint
// used to look up domain registration status. Implementations perform a
// single query and return the raw DNS status code; interpretation of the code
// belongs to the caller.
package doh

import "context"

// DNS response codes surfaced in the JSON Status field.
const (
	// RCodeNoError means the query succeeded and a record exists.
	RCodeNoError = 0
	// RCodeFormatError means the server could not interpret the query.
	RCodeFormatError = 1
	// RCodeServerFailure means the server failed to process the query.
	RCodeServerFailure = 2
	// RCodeNameError (NXDOMAIN) means the queried name does not exist.
	RCodeNameError = 3
	// RCodeNotImplemented means the server does not support the query type.
	RCodeNotImplemented = 4
	// RCodeRefused means the server refused to answer.
	RCodeRefused = 5
)

// Answer is a single record in a DNS JSON response. The checker only needs
// its presence, but the fields are decoded for logging and diagnostics.
type Answer struct {
	Name string `json:"name"`
	Type int    `json:"type"`
	TTL  int    `json:"TTL"`
	Data string `json:"data"`
}

// Response is the decoded body of a DNS JSON query.
type Response struct {
	Status int      `json:"Status"`
	Answer []Answer `json:"Answer,omitempty"`
}

// Client is the abstraction for DNS-over-HTTPS resolvers.
//
//go:generate mockgen -package mockdoh -source=interface.go -destination=mock/mockdoh.go *
type Client interface {
	// Resolve queries the registration status of name and returns the raw
	// DNS response. Transport failures, non-success HTTP statuses and
	// malformed bodies are returned as errors.
	Resolve(ctx context.Context, name string) (Response, error)
}
