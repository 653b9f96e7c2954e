package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/luminapath/lumina-api/internal/api/shared"
	"github.com/luminapath/lumina-api/internal/classifier"
)

// maxUploadBytes bounds scan uploads at 10 MiB.
const maxUploadBytes = 10 << 20

// PredictHandler serves OCT scan classification requests.
type PredictHandler struct {
	classifier classifier.Classifier
	logger     *slog.Logger
}

// NewPredictHandler creates a PredictHandler.
func NewPredictHandler(c classifier.Classifier, logger *slog.Logger) *PredictHandler {
	return &PredictHandler{
		classifier: c,
		logger:     logger.With(slog.String("component", "predict_handler")),
	}
}

// HandlePredict handles POST /api/predict. The scan arrives as a multipart
// form file named "file".
func (h *PredictHandler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "A scan image file is required")
		return
	}
	defer func() { _ = file.Close() }()

	imageBytes, err := io.ReadAll(file)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest,
			"Failed to read uploaded file", err)
		return
	}

	contentType := header.Header.Get("Content-Type")
	diseaseName, err := h.classifier.Classify(r.Context(), imageBytes, contentType)
	switch {
	case errors.Is(err, classifier.ErrNotAnImage):
		shared.RespondWithError(w, r, http.StatusBadRequest, "File must be an image")
		return
	case errors.Is(err, classifier.ErrUnavailable):
		shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable,
			"Classification service is unavailable", err)
		return
	case err != nil:
		shared.RespondWithErrorAndLog(w, r, http.StatusBadGateway,
			"Classification failed", err)
		return
	}

	h.logger.Info("scan classified",
		slog.String("predicted_class", diseaseName),
		slog.Int("image_bytes", len(imageBytes)))

	shared.RespondWithJSON(w, r, http.StatusOK, PredictResponse{
		PredictedClass: diseaseName,
	})
}
