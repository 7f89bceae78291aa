package http

// Envelope codes returned in the "code" field of every order endpoint.
const (
	CodeSuccess    = 10000
	CodeNotAllowed = 20001
	CodeBadRequest = 40000
	CodeNotFound   = 40004
	CodeError      = 50000
)

const (
	msgSuccess      = "Success"
	msgNotAllowed   = "NOT ALLOWED"
	msgBadRequest   = "Bad Request"
	msgNotFound     = "NOT FOUND"
	msgError        = "Something Wrong"
	msgUpdateFailed = "Update failed"
)

// DateTimeLayout is the wire format of createtime, updatetime and the search
// time bounds.
const DateTimeLayout = "2006-01-02 15:04:05"

// Response is the JSON envelope of the order endpoints.
type Response struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data,omitempty"`
}

func success(data any) Response {
	return Response{Code: CodeSuccess, Msg: msgSuccess, Data: data}
}

func failure(code int, msg string) Response {
	return Response{Code: code, Msg: msg}
}

func badRequest(details any) Response {
	return Response{Code: CodeBadRequest, Msg: msgBadRequest, Data: details}
}

// errorBody is the plain error shape used by the auth endpoints.
type errorBody struct {
	Error string `json:"error"`
}
