package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"catalog/loader/internal/observability"

	log "github.com/sirupsen/logrus"
)

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLError struct {
	Message    string `json:"message"`
	Extensions struct {
		Exception struct {
			Code string `json:"code"`
		} `json:"exception"`
	} `json:"extensions"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors,omitempty"`
}

type pageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

// Exception codes that mean the token is missing, invalid or lacks permissions.
var authExceptionCodes = map[string]bool{
	"PermissionDenied":      true,
	"JSONWebTokenError":     true,
	"JSONWebTokenExpired":   true,
	"ExpiredSignatureError": true,
	"InvalidTokenError":     true,
	"DecodeError":           true,
}

// execute sends one GraphQL document and decodes its data into out.
func (c *saleorClient) execute(ctx context.Context, op, query string, variables map[string]any, out any) error {
	c.rl.Take()

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(graphQLRequest{Query: query, Variables: variables}).
		Post(c.endpoint)
	if err != nil {
		observability.RemoteRequests.WithLabelValues(op, "transport_error").Inc()
		if ctx.Err() != nil {
			return &TransportError{Op: op, Err: fmt.Errorf("request cancelled: %w", ctx.Err())}
		}
		return &TransportError{Op: op, Err: err}
	}

	var envelope graphQLResponse
	decodeErr := json.Unmarshal([]byte(resp.String()), &envelope)

	if resp.IsError() {
		// Input coercion failures come back as 400 with a regular errors list.
		if !isClientInputStatus(resp.StatusCode()) || decodeErr != nil || len(envelope.Errors) == 0 {
			observability.RemoteRequests.WithLabelValues(op, "http_error").Inc()
			return &TransportError{Op: op, StatusCode: resp.StatusCode(), Err: fmt.Errorf("%s", resp.Status())}
		}
	}

	if decodeErr != nil {
		observability.RemoteRequests.WithLabelValues(op, "decode_error").Inc()
		return &TransportError{Op: op, StatusCode: resp.StatusCode(), Err: fmt.Errorf("failed to decode response: %w", decodeErr)}
	}

	if len(envelope.Errors) > 0 {
		observability.RemoteRequests.WithLabelValues(op, "graphql_error").Inc()
		return classifyGraphQLErrors(op, envelope.Errors)
	}

	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			observability.RemoteRequests.WithLabelValues(op, "decode_error").Inc()
			return &TransportError{Op: op, Err: fmt.Errorf("failed to decode data: %w", err)}
		}
	}

	observability.RemoteRequests.WithLabelValues(op, "ok").Inc()
	log.Debugf("GraphQL %s succeeded", op)
	return nil
}

// isClientInputStatus reports whether a non-2xx status may carry row-level GraphQL errors.
// Authentication, authorization and server failures never do.
func isClientInputStatus(status int) bool {
	switch {
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return false
	case status >= 400 && status < 500:
		return true
	}
	return false
}

// classifyGraphQLErrors turns top-level GraphQL errors into a TransportError when
// they concern authentication, and into a ValidationError otherwise (bad input
// values are reported at top level, and they only concern the current row).
func classifyGraphQLErrors(op string, errs []graphQLError) error {
	messages := make([]string, 0, len(errs))
	fieldErrs := make([]FieldError, 0, len(errs))
	for _, e := range errs {
		if authExceptionCodes[e.Extensions.Exception.Code] {
			return &TransportError{Op: op, Err: fmt.Errorf("%s: %s", e.Extensions.Exception.Code, e.Message)}
		}
		messages = append(messages, e.Message)
		fieldErrs = append(fieldErrs, FieldError{Message: e.Message, Code: "GRAPHQL_ERROR"})
	}
	log.Debugf("GraphQL %s returned errors: %s", op, strings.Join(messages, "; "))
	return &ValidationError{Op: op, Errors: fieldErrs}
}

// cursor maps an empty pagination cursor to GraphQL null.
func cursor(after string) any {
	if after == "" {
		return nil
	}
	return after
}

// paginate calls fetch with successive cursors until the last page.
func paginate(ctx context.Context, op string, fetch func(after string) (pageInfo, error)) error {
	after := ""
	for {
		if err := ctx.Err(); err != nil {
			return &TransportError{Op: op, Err: fmt.Errorf("request cancelled: %w", err)}
		}
		info, err := fetch(after)
		if err != nil {
			return err
		}
		if !info.HasNextPage || info.EndCursor == "" || info.EndCursor == after {
			return nil
		}
		after = info.EndCursor
	}
}
