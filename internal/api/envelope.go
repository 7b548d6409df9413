package api

import (
	"strconv"

	"github.com/danielgtaylor/huma/v2"

	"github.com/listenupapp/shelfwrapped/internal/http/response"
)

// EnvelopeTransformer wraps every huma response body in the standard envelope.
// Errors become {"v":1,"success":false,"error":{...}}, everything else
// {"v":1,"success":true,"data":...}.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	switch body := v.(type) {
	case response.Envelope:
		return body, nil
	case *APIError:
		return response.Fail(body.Code, body.Message, body.Details), nil
	case huma.StatusError:
		return response.Fail(statusToCode(body.GetStatus()), body.Error(), nil), nil
	}

	if code, err := strconv.Atoi(status); err == nil && code >= 400 {
		return response.Fail(statusToCode(code), "request failed", v), nil
	}
	return response.OK(v), nil
}
