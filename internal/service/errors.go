package service

// Caller-facing messages. They are stable and safe to show; causes stay in
// the wrapped error and the logs.
const (
	MsgInvalidCredentials = "Invalid username or password"
	MsgUsernameExists     = "Username already exists"
	MsgEmailExists        = "Email already exists"
	MsgUserExists         = "User already exists"
	MsgEmployeeNotFound   = "Employee not found"
	MsgInvalidEmployeeID  = "Invalid employee id"
	MsgEmployeeDeleted    = "Employee deleted successfully."
	MsgInternal           = "An unexpected error occurred"
)

// Login failure reasons, logged server-side only.
const (
	reasonUnknownUser      = "unknown_user"
	reasonPasswordMismatch = "password_mismatch"
)
