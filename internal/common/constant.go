package common

// TokenMetadataKey is the local metadata key holding the session token.
const TokenMetadataKey = "token"

// TokenStoredAtMetadataKey records when the current token was written.
const TokenStoredAtMetadataKey = "token_stored_at"

// AuthorizationHeaderName carries the bearer token on outbound API requests.
const AuthorizationHeaderName = "Authorization"

// RequestIDHeaderName carries a per-request correlation id.
const RequestIDHeaderName = "X-Request-ID"
