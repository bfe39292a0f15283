package httpx

// Cookie names used by the auth handlers and middleware.
const (
	SessionCookie           = "session_id"
	oauthStateCookie        = "oauth_state"
	oauthNonceCookie        = "oauth_nonce"
	postLoginRedirectCookie = "post_login_redirect"
)
