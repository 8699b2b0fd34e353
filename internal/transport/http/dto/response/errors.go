package response

var (
	ErrInvalidRequestFormat = ErrorResponse{
		Status:  "error",
		Error:   "invalid_request",
		Details: "Invalid request format",
	}

	ErrAuthenticationFailed = ErrorResponse{
		Status: "error",
		Error:  "authentication_failed",
	}

	ErrRecordNotFound = ErrorResponse{
		Status: "error",
		Error:  "not_found",
	}

	ErrPathOutsideUploads = ErrorResponse{
		Status:  "error",
		Error:   "path_violation",
		Details: "Path escapes the uploads root",
	}

	ErrInternal = ErrorResponse{
		Status:  "error",
		Error:   "internal_error",
		Details: "Internal server error",
	}
)
