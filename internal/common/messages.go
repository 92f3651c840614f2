package common

// User-facing notification texts.
const (
	MsgPasswordTooShort   = "Password must be at least 6 characters"
	MsgRegisterSucceeded  = "Registration successful. Please log in."
	MsgLoginSucceeded     = "Login successful!"
	MsgLoginNoToken       = "Login failed: no token received."
	MsgLoggedOut          = "Logged out successfully."
	MsgInvalidCredentials = "Invalid email or account"
	MsgErrorPrefix        = "Error: "
	MsgSessionNotSaved    = "could not save the session, please try again"
	MsgFallbackName       = "User"
)
