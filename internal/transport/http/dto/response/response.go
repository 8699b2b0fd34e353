package response

type Response struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

type ErrorResponse struct {
	Status  string `json:"status"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Slug    string `json:"slug,omitempty"`
}

func SuccessResponse(data interface{}) Response {
	return Response{
		Status: "success",
		Data:   data,
	}
}

func ErrorResponseWithDetails(err, details string) ErrorResponse {
	return ErrorResponse{
		Status:  "error",
		Error:   err,
		Details: details,
	}
}

// DuplicateSlugResponse возвращает конфликтующий слаг вместе с ошибкой,
// чтобы админка могла подсветить поле
func DuplicateSlugResponse(slug string) ErrorResponse {
	return ErrorResponse{
		Status: "error",
		Error:  "duplicate_slug",
		Slug:   slug,
	}
}
