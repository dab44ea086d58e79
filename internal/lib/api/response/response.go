package response

// Response is the JSON envelope every API handler renders.
type Response struct {
	Status string `json:"status"`
	Detail any    `json:"detail,omitempty"`
}

const (
	StatusOK    = "ok"
	StatusError = "error"
)

func Ok(detail any) Response {
	return Response{Status: StatusOK, Detail: detail}
}

func Error(detail string) Response {
	return Response{Status: StatusError, Detail: detail}
}
