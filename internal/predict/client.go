package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/Veraticus/truelens/internal/common"
	"github.com/Veraticus/truelens/internal/model"
	"github.com/google/uuid"
)

// DefaultEndpoint is where the classifier listens by default.
const DefaultEndpoint = "http://localhost:8000/predict"

// Multipart field names expected by the service.
const (
	fieldFile       = "file"
	fieldConfidence = "confidence"
)

// Predictor submits one image for classification.
type Predictor interface {
	Predict(ctx context.Context, req Request) (Response, error)
}

// Request is a single submission.
type Request struct {
	Image      model.SelectedImage
	Confidence model.ConfidenceThreshold
}

// Response is a decoded 2xx reply. Exactly one of Error or the
// classification fields is normally set.
type Response struct {
	Label         string   `json:"predicted_label,omitempty"`
	Score         *float64 `json:"confidence_score,omitempty"`
	ThresholdUsed *float64 `json:"threshold_used,omitempty"`
	Error         string   `json:"error,omitempty"`
}

// Result converts the reply into the widget's result type.
func (r Response) Result() model.PredictionResult {
	if r.Error != "" {
		return model.ErrorResult(r.Error)
	}
	return model.PredictionResult{
		Label:         r.Label,
		Score:         r.Score,
		ThresholdUsed: r.ThresholdUsed,
	}
}

// StatusError reports a non-2xx reply.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("predict service returned status %d", e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return common.ErrUnexpectedStatus
}

// Config configures a Client.
type Config struct {
	// UploadObserver, if set, receives the request body as it is sent.
	UploadObserver io.Writer
	HTTPClient     *http.Client
	Endpoint       string
	// Timeout of zero means the request waits for the server indefinitely.
	Timeout time.Duration
}

// Client talks to the predict endpoint over HTTP.
type Client struct {
	httpClient *http.Client
	observer   io.Writer
	endpoint   string
}

// NewClient creates a predict client.
func NewClient(cfg Config) (*Client, error) {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}

	return &Client{
		httpClient: httpClient,
		observer:   cfg.UploadObserver,
		endpoint:   endpoint,
	}, nil
}

// Endpoint returns the URL requests are sent to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Predict uploads the image and threshold and decodes the reply.
func (c *Client) Predict(ctx context.Context, req Request) (Response, error) {
	body, contentType, err := encodeForm(req)
	if err != nil {
		return Response{}, err
	}

	var reader io.Reader = body
	if c.observer != nil {
		reader = io.TeeReader(body, c.observer)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, reader)
	if err != nil {
		return Response{}, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	httpReq.ContentLength = int64(body.Len())
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", requestID)

	log := slog.With("request_id", requestID)
	log.Debug("Submitting image for prediction",
		"endpoint", c.endpoint,
		"image", req.Image.Name,
		"bytes", req.Image.Size(),
		"confidence", req.Confidence.String())

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("failed to read response: %w", err)
	}

	log.Debug("Predict service replied",
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Debug("Discarding non-success body", "body", truncate(raw, 256))
		return Response{}, &StatusError{StatusCode: resp.StatusCode}
	}

	var decoded Response
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return Response{}, fmt.Errorf("%w: %v", common.ErrInvalidResponse, err)
	}

	return decoded, nil
}

// IsStatusError reports whether err came from a non-2xx reply.
func IsStatusError(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr)
}

func encodeForm(req Request) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	contentType := req.Image.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(fieldFile), quoteEscaper.Replace(req.Image.Name)))
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := part.Write(req.Image.Data); err != nil {
		return nil, "", fmt.Errorf("failed to write file part: %w", err)
	}

	if err := w.WriteField(fieldConfidence, req.Confidence.String()); err != nil {
		return nil, "", fmt.Errorf("failed to write confidence field: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize form: %w", err)
	}

	return body, w.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
