// Package client is the header's link to the credential backend.
//
// # Overview
//
//  1. A transport-agnostic contract (Client): Login and Register.
//  2. A gRPC implementation (GRPCClient) that forces a JSON codec, tags every
//     call with a request id and the current access token, and maps gRPC
//     status codes to sentinel errors.
//  3. The matching service description (RegisterCredentialServiceServer) so a
//     backend, or a test, can serve the same wire contract.
//
// # Error Handling
//
// Failures are *APIError values wrapping ErrUnavailable, ErrUnauthorized or
// ErrRejected; match them with errors.Is. ServerMessage extracts the
// human-readable text the backend attached, if any.
package client
