package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/contactus/internal/log"
)

// CreateContactMutation is the GraphQL document sent for every submission.
const CreateContactMutation = `mutation CreateContactMutation($input: CreateContactInput!) {
  createContact(input: $input) {
    id
  }
}`

// RequestIDHeader carries a per-submission identifier for correlating logs.
const RequestIDHeader = "X-Request-ID"

const tracerName = "github.com/zjrosen/contactus/internal/contact"

// maxErrorBody bounds how much of a failed response body is read.
const maxErrorBody = 4 << 10

// Result is a successful submission.
type Result struct {
	ID        string
	RequestID string
}

// Submitter performs one contact submission. Failures are *SubmissionError.
type Submitter interface {
	Submit(ctx context.Context, input Values) (Result, error)
}

// ClientConfig configures Client.
type ClientConfig struct {
	Endpoint   string
	Timeout    time.Duration // 0 = rely on the caller's context
	Headers    map[string]string
	HTTPClient *http.Client
	Tracer     trace.Tracer
}

// Client submits contacts to a GraphQL endpoint over HTTP.
type Client struct {
	endpoint string
	timeout  time.Duration
	headers  map[string]string
	http     *http.Client
	tracer   trace.Tracer
	newID    func() string
}

// NewClient creates a Client. The endpoint is required.
func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("contact client: endpoint is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	return &Client{
		endpoint: cfg.Endpoint,
		timeout:  cfg.Timeout,
		headers:  cfg.Headers,
		http:     httpClient,
		tracer:   tracer,
		newID:    uuid.NewString,
	}, nil
}

type graphQLRequest struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type createContactResponse struct {
	Data *struct {
		CreateContact *struct {
			ID json.RawMessage `json:"id"`
		} `json:"createContact"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// Submit sends the createContact mutation with input as $input.
func (c *Client) Submit(ctx context.Context, input Values) (result Result, err error) {
	requestID := c.newID()
	ctx, span := c.tracer.Start(ctx, "contact.submit",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("contact.request_id", requestID),
			attribute.String("http.url", c.endpoint),
		))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetAttributes(attribute.String("contact.id", result.ID))
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}()

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(graphQLRequest{
		Query:         CreateContactMutation,
		OperationName: "CreateContactMutation",
		Variables:     map[string]any{"input": input},
	})
	if err != nil {
		return Result{}, submissionErrorf(err, "encoding request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{}, submissionErrorf(err, "building request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	log.Debug(log.CatAPI, "Sending createContact", "requestID", requestID, "endpoint", c.endpoint)

	resp, err := c.http.Do(req)
	if err != nil {
		log.ErrorErr(log.CatAPI, "createContact transport failure", err, "requestID", requestID)
		return Result{}, submissionErrorf(err, "Could not reach the server: %v", unwrapURLError(err))
	}
	defer func() { _ = resp.Body.Close() }()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// GraphQL servers often report errors with a non-2xx status; prefer their message.
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var parsed createContactResponse
		if json.Unmarshal(raw, &parsed) == nil && len(parsed.Errors) > 0 {
			return Result{}, graphQLFailure(parsed.Errors)
		}
		log.Warn(log.CatAPI, "createContact non-2xx response", "requestID", requestID, "status", resp.StatusCode)
		return Result{}, submissionErrorf(nil, "Server responded with %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	var parsed createContactResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Result{}, submissionErrorf(err, "Invalid response from server: %v", err)
	}
	if len(parsed.Errors) > 0 {
		return Result{}, graphQLFailure(parsed.Errors)
	}
	if parsed.Data == nil || parsed.Data.CreateContact == nil || len(parsed.Data.CreateContact.ID) == 0 {
		return Result{}, submissionErrorf(nil, "Invalid response from server: missing createContact id")
	}

	id, err := decodeID(parsed.Data.CreateContact.ID)
	if err != nil {
		return Result{}, submissionErrorf(err, "Invalid response from server: %v", err)
	}

	log.Info(log.CatAPI, "createContact succeeded", "requestID", requestID, "id", id)
	return Result{ID: id, RequestID: requestID}, nil
}

// decodeID accepts a GraphQL ID serialized as either a string or a number.
func decodeID(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return "", errors.New("empty createContact id")
		}
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("unexpected id %s", string(raw))
	}
	return n.String(), nil
}

func graphQLFailure(errs []graphQLError) *SubmissionError {
	msg := errs[0].Message
	if msg == "" {
		msg = "Unknown server error"
	}
	if len(errs) > 1 {
		msg = fmt.Sprintf("%s (and %d more)", msg, len(errs)-1)
	}
	return &SubmissionError{Message: msg}
}

// unwrapURLError drops the "Post \"url\":" prefix net/http adds.
func unwrapURLError(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err
	}
	return err
}
