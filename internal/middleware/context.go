package middleware

// Keys set on the echo context: the request ID on every route, the
// moderator identity only behind JWTAuth.
const (
	ContextKeyRequestID = "request_id"
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
	ContextKeyUserRole  = "user_role"
)

// headerRequestID is read from the client and echoed on the response so
// submission logs can be matched to a request.
const headerRequestID = "X-Request-ID"
