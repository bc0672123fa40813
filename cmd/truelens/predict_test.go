package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/Veraticus/truelens/internal/common"
	"github.com/Veraticus/truelens/internal/config"
	"github.com/Veraticus/truelens/internal/predict"
	tuitest "github.com/Veraticus/truelens/internal/tui/testing"
	"github.com/Veraticus/truelens/internal/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	server     *httptest.Server
	confidence atomic.Value
	filename   atomic.Value
	calls      atomic.Int32
}

func newFakeService(t *testing.T, status int, body string) *fakeService {
	t.Helper()
	svc := &fakeService{}
	svc.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		svc.calls.Add(1)
		if err := r.ParseMultipartForm(32 << 20); err == nil {
			svc.confidence.Store(r.FormValue("confidence"))
			if _, header, err := r.FormFile("file"); err == nil {
				svc.filename.Store(header.Filename)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(svc.server.Close)
	return svc
}

func writeImage(t *testing.T, name string, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	data := append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, make([]byte, size)...)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func testConfig(endpoint string) config.Config {
	return config.Config{
		Endpoint:  endpoint,
		Theme:     "default",
		LogLevel:  "info",
		LogFormat: "console",
	}
}

func TestRunPredict_Success(t *testing.T) {
	svc := newFakeService(t, http.StatusOK, `{"predicted_label":"Fake","confidence_score":0.8123}`)
	image := writeImage(t, "face.jpg", 2<<20)

	var out, errOut bytes.Buffer
	err := runPredict(context.Background(), &out, &errOut, testConfig(svc.server.URL), predictOptions{
		image:        image,
		confidence:   "0.65",
		showProgress: true,
	})
	require.NoError(t, err)

	assert.Equal(t, int32(1), svc.calls.Load())
	assert.Equal(t, "0.65", svc.confidence.Load())
	assert.Equal(t, "face.jpg", svc.filename.Load())
	assert.Contains(t, tuitest.StripANSI(errOut.String()), "Sending face.jpg to "+svc.server.URL)

	report := tuitest.StripANSI(out.String())
	assert.True(t, tuitest.ContainsInOrder(report, "face.jpg", "Confidence Level: 0.65", "Prediction: Fake", "Confidence: 0.81"))
}

func TestRunPredict_Outcomes(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantErr   error
		expected  string
		forbidden string
		status    int
	}{
		{
			name:      "service error field",
			status:    http.StatusOK,
			body:      `{"error":"No human face detected"}`,
			wantErr:   errPredictionFailed,
			expected:  "No human face detected",
			forbidden: "Prediction:",
		},
		{
			name:      "server error",
			status:    http.StatusInternalServerError,
			body:      `{"error":"model crashed"}`,
			wantErr:   errPredictionFailed,
			expected:  "Something went wrong. Please try again.",
			forbidden: "model crashed",
		},
		{
			name:      "invalid json",
			status:    http.StatusOK,
			body:      `not json`,
			wantErr:   errPredictionFailed,
			expected:  "Something went wrong. Please try again.",
			forbidden: "Prediction:",
		},
		{
			name:      "unexpected label",
			status:    http.StatusOK,
			body:      `{"predicted_label":"Unsure","confidence_score":0.5,"threshold_used":0.5}`,
			expected:  "Prediction: N/A",
			forbidden: "Unsure",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newFakeService(t, tt.status, tt.body)
			image := writeImage(t, "face.png", 128)

			var out, errOut bytes.Buffer
			err := runPredict(context.Background(), &out, &errOut, testConfig(svc.server.URL), predictOptions{
				image:      image,
				confidence: "0.5",
			})
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			report := tuitest.StripANSI(out.String())
			assert.Contains(t, report, tt.expected)
			assert.NotContains(t, report, tt.forbidden)
			assert.Equal(t, "0.5", svc.confidence.Load())
		})
	}
}

func TestSubmitAndReport_NoImage(t *testing.T) {
	svc := newFakeService(t, http.StatusOK, `{}`)
	client, err := predict.NewClient(predict.Config{Endpoint: svc.server.URL})
	require.NoError(t, err)

	w := widget.New(nil, widget.Policy{})

	var out bytes.Buffer
	for i := 0; i < 2; i++ {
		err = submitAndReport(context.Background(), &out, w, client, nil)
		require.ErrorIs(t, err, common.ErrNoImage)
		assert.Equal(t, "Please upload an image.", common.UserMessage(err))
	}

	assert.Equal(t, int32(0), svc.calls.Load())
	assert.Empty(t, out.String())
}

func TestRunPredict_InvalidInput(t *testing.T) {
	svc := newFakeService(t, http.StatusOK, `{}`)

	tests := []struct {
		name    string
		opts    predictOptions
		wantErr error
	}{
		{
			name:    "confidence out of range",
			opts:    predictOptions{image: writeImage(t, "a.jpg", 16), confidence: "0.95"},
			wantErr: common.ErrInvalidConfig,
		},
		{
			name:    "confidence not a number",
			opts:    predictOptions{image: writeImage(t, "b.jpg", 16), confidence: "high"},
			wantErr: common.ErrInvalidConfig,
		},
		{
			name:    "unsupported extension",
			opts:    predictOptions{image: writeImage(t, "notes.txt", 16), confidence: "0.5"},
			wantErr: common.ErrUnsupportedImage,
		},
		{
			name:    "nan confidence",
			opts:    predictOptions{image: writeImage(t, "c.jpg", 16), confidence: "NaN"},
			wantErr: common.ErrInvalidConfig,
		},
		{
			name:    "missing file",
			opts:    predictOptions{image: filepath.Join(t.TempDir(), "gone.jpg"), confidence: "0.5"},
			wantErr: os.ErrNotExist,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := runPredict(context.Background(), &out, &out, testConfig(svc.server.URL), tt.opts)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.Equal(t, int32(0), svc.calls.Load())
}

func TestRunPredict_Canceled(t *testing.T) {
	svc := newFakeService(t, http.StatusOK, `{"predicted_label":"Real","confidence_score":0.9}`)
	image := writeImage(t, "face.jpg", 16)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := runPredict(ctx, &out, &out, testConfig(svc.server.URL), predictOptions{
		image:      image,
		confidence: "0.5",
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.NotContains(t, out.String(), "Prediction:")
}
