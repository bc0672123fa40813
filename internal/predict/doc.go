// Package predict is the client for the remote deepfake classifier. It sends
// one multipart upload per call and maps the reply onto a model.PredictionResult.
package predict
