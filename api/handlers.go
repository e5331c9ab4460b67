package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/YuminosukeSato/scorecast/pkg/errors"
	"github.com/YuminosukeSato/scorecast/pkg/log"
	"github.com/YuminosukeSato/scorecast/predict"
)

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type modelInfoResponse struct {
	ModelType    string                 `json:"model_type"`
	FeatureNames []string               `json:"feature_names"`
	ModelParams  map[string]interface{} `json:"model_params"`
	Coefficients []float64              `json:"coefficients"`
	Intercept    float64                `json:"intercept"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "healthy", Message: "API is running"})
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	in, err := decodePredictRequest(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	p, err := s.loader.Get()
	if err != nil {
		s.fail(w, r, err)
		return
	}

	start := time.Now()
	res, err := p.Predict(in)
	s.metrics.predictionSeconds.Observe(time.Since(start).Seconds())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if res.Clamped {
		s.metrics.clamped.Inc()
	}

	s.logger.Debug("Prediction served",
		log.RequestIDKey, RequestIDFrom(r.Context()),
		log.RawPredictionKey, res.RawScore,
		log.PredictionKey, res.PredictedScore,
		log.ClampedKey, res.Clamped,
	)
	writeJSON(w, http.StatusOK, res)
}

// decodePredictRequest reads {"hours_studied": ..., "exam_difficulty": ...}.
// hours_studied may be a number or a numeric string. exam_difficulty is
// Medium only when the key is absent; null or any other non-string is
// rejected.
func decodePredictRequest(r *http.Request) (predict.Input, error) {
	var body map[string]interface{}
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil || body == nil {
		return predict.Input{}, errors.NewValidationError("request body", "must be a JSON object", nil)
	}

	hours, err := predict.ParseHours(body["hours_studied"])
	if err != nil {
		return predict.Input{}, err
	}

	difficulty := predict.DefaultDifficulty
	if v, ok := body["exam_difficulty"]; ok {
		str, ok := v.(string)
		if !ok {
			return predict.Input{}, errors.NewValidationError("exam_difficulty", "must be a string", v)
		}
		difficulty = str
	}

	in := predict.Input{HoursStudied: hours, ExamDifficulty: difficulty}
	if err := in.Validate(); err != nil {
		return predict.Input{}, err
	}
	return in, nil
}

func (s *Server) handleModelInfo(w http.ResponseWriter, r *http.Request) {
	p, err := s.loader.Get()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, modelInfoResponse{
		ModelType:    p.ModelType(),
		FeatureNames: p.FeatureNames(),
		ModelParams:  p.Params(),
		Coefficients: p.Coefficients(),
		Intercept:    p.Intercept(),
	})
}

// fail maps err to a status through its kind and writes {"error": ...}.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	kind := errors.KindOf(err)
	status := errors.HTTPStatus(kind)
	fields := []any{
		log.RequestIDKey, RequestIDFrom(r.Context()),
		log.PathKey, r.URL.Path,
		log.StatusKey, status,
		log.ErrorKindKey, kind.String(),
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed", append([]any{err}, fields...)...)
	} else {
		s.logger.Info("Request rejected", append(fields, "reason", err.Error())...)
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		data, _ = json.Marshal(errorResponse{Error: "encode response: " + err.Error()})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(data, '\n'))
}
