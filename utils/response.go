package utils

// ApiResponse is the envelope every endpoint responds with.
type ApiResponse struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

func SuccessResponse(statusCode int, data interface{}, message string) ApiResponse {
	return ApiResponse{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    true,
	}
}

func FailedResponse(err error) (int, ApiResponse) {
	statusCode := StatusOf(err)
	return statusCode, ApiResponse{
		StatusCode: statusCode,
		Data:       nil,
		Message:    err.Error(),
		Success:    false,
	}
}
