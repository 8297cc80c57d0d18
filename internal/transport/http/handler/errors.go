package handler

const (
	errInternalServer = "Internal server error"
	errDuplicateEmail = "This email is already registered!"
	errUserNotFound   = "User not found"
	errWrongPassword  = "Incorrect password"
	errJobNotFound    = "Job not found or you don't have permission to touch it"
	errNoFields       = "No fields to update"
	errNoValidFields  = "No valid fields to update"
	errInvalidStatus  = "Invalid status value"
	errInvalidDate    = "Invalid dateApplied, expected YYYY-MM-DD"
)
