package gotrue

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strconv"
)

// Error is an error answer from the auth service. Message is meant to be shown
// to the user as-is.
type Error struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

// auth-go reports non-2xx answers as "response status code N: <body>".
var statusErrorPattern = regexp.MustCompile(`(?s)^response status code (\d+)(?:: (.*))?$`)

// fromAPIError turns auth-go's status errors into *Error. Transport failures
// are returned unchanged.
func fromAPIError(err error) error {
	m := statusErrorPattern.FindStringSubmatch(err.Error())
	if m == nil {
		return err
	}
	status, convErr := strconv.Atoi(m[1])
	if convErr != nil {
		return err
	}
	return parseError(status, []byte(m[2]))
}

// parseError understands the three shapes the service answers with:
// {"error","error_description"}, {"code","msg"} and {"error_code","message"}.
func parseError(statusCode int, body []byte) error {
	var raw struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
		ErrorCode        string `json:"error_code"`
		Msg              string `json:"msg"`
		Message          string `json:"message"`
	}
	e := &Error{StatusCode: statusCode}
	if err := json.Unmarshal(body, &raw); err == nil {
		e.Code = firstNonEmpty(raw.ErrorCode, raw.Error)
		e.Message = firstNonEmpty(raw.ErrorDescription, raw.Msg, raw.Message, raw.Error)
	}
	if e.Message == "" {
		e.Message = http.StatusText(statusCode)
	}
	return e
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
