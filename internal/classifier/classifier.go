// Package classifier provides the OCT image classification collaborator: it
// sends scan bytes to a remote inference service and maps the model's class
// label to a readable disease name. The generation core only ever consumes
// the resulting label.
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Errors returned by the classifier.
var (
	// ErrNotAnImage is returned when the uploaded content type is not an
	// image type.
	ErrNotAnImage = errors.New("file must be an image")

	// ErrUnavailable is returned when the inference infrastructure is not
	// configured or not reachable.
	ErrUnavailable = errors.New("inference service unavailable")
)

// classMapping turns the model's output classes into readable disease names.
var classMapping = map[string]string{
	"Class_1": "AMD - Age-related Macular Degeneration",
	"Class_2": "CNV - Choroidal Neovascularization",
	"Class_3": "CSR - Central Serous Retinopathy",
	"Class_4": "DME - Diabetic Macular Edema",
	"Class_5": "DR - Diabetic Retinopathy",
	"Class_6": "DRUSEN - Yellow deposits under the retina",
	"Class_7": "MH - Macular Hole",
	"Class_8": "NORMAL - Healthy eyes with no abnormalities",
}

// DiseaseName maps a model class label to its readable disease name.
// Unknown labels pass through unchanged.
func DiseaseName(classLabel string) string {
	if name, ok := classMapping[classLabel]; ok {
		return name
	}
	return classLabel
}

// Classifier classifies retinal OCT scans.
type Classifier interface {
	// Classify returns the readable disease name for the scan, or an error
	// when the content type is not an image or inference is unavailable.
	Classify(ctx context.Context, imageBytes []byte, contentType string) (string, error)
}

// HTTPClassifier calls a remote inference endpoint that wraps the OCT model.
type HTTPClassifier struct {
	logger       *slog.Logger
	httpClient   *http.Client
	inferenceURL string
}

// NewHTTPClassifier builds a classifier against the configured inference URL.
// An empty URL yields a classifier whose calls report ErrUnavailable, so the
// rest of the application still boots without the model service.
func NewHTTPClassifier(logger *slog.Logger, inferenceURL string, timeout time.Duration) *HTTPClassifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClassifier{
		logger:       logger,
		httpClient:   &http.Client{Timeout: timeout},
		inferenceURL: inferenceURL,
	}
}

// inferenceResponse is the reply shape of the inference service.
type inferenceResponse struct {
	PredictedClass string `json:"predicted_class"`
}

// Classify implements Classifier.
func (c *HTTPClassifier) Classify(ctx context.Context, imageBytes []byte, contentType string) (string, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", fmt.Errorf("%w: got content type %q", ErrNotAnImage, contentType)
	}
	if c.inferenceURL == "" {
		return "", fmt.Errorf("%w: inference URL not configured", ErrUnavailable)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.inferenceURL,
		bytes.NewReader(imageBytes))
	if err != nil {
		return "", fmt.Errorf("failed to build inference request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.logger.WarnContext(ctx, "failed to close inference response body", "error", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: inference returned status %d", ErrUnavailable, resp.StatusCode)
	}

	var parsed inferenceResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: malformed inference reply: %v", ErrUnavailable, err)
	}
	if parsed.PredictedClass == "" {
		return "", fmt.Errorf("%w: inference reply missing predicted class", ErrUnavailable)
	}

	name := DiseaseName(parsed.PredictedClass)
	c.logger.InfoContext(ctx, "scan classified",
		"class", parsed.PredictedClass,
		"disease", name)
	return name, nil
}
