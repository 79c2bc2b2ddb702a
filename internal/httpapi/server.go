// Package httpapi serves predictions over HTTP.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ngmaloney/skycast/internal/advice"
	"github.com/ngmaloney/skycast/internal/airports"
	"github.com/ngmaloney/skycast/internal/models"
	"github.com/ngmaloney/skycast/internal/pipeline"
)

// Predictor runs one prediction
type Predictor interface {
	Predict(ctx context.Context, req models.FlightRequest) (models.PredictionResult, error)
}

// AirportLookup resolves a single code
type AirportLookup interface {
	Resolve(code string) (models.AirportRecord, error)
}

// Server holds the handlers under /api
type Server struct {
	predictor Predictor
	airports  AirportLookup
	now       func() time.Time
}

func NewServer(predictor Predictor, lookup AirportLookup) *Server {
	return &Server{predictor: predictor, airports: lookup, now: time.Now}
}

func (s *Server) RegisterRoutes(r chi.Router) {
	r.Post("/predict", s.handlePredict)
	r.Get("/airports/{code}", s.handleAirport)
	r.Get("/advice", s.handleAdvice)
}

type predictRequest struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	Carrier       string `json:"carrier"`
	FlightDate    string `json:"flight_date"` // YYYY-MM-DD, today when empty
	DepartureTime string `json:"departure_time"`
	ArrivalTime   string `json:"arrival_time"`
}

type predictResponse struct {
	models.PredictionResult
	Message string       `json:"message"`
	Advice  []advice.Tip `json:"advice,omitempty"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var body predictRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16)).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_body", Message: "request body must be a JSON object"})
		return
	}

	req, err := s.toFlightRequest(body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid_date", Message: "flight_date must be YYYY-MM-DD"})
		return
	}

	res, err := s.predictor.Predict(r.Context(), req)
	if err != nil {
		writeJSON(w, statusFor(err), errorResponse{Error: codeFor(err), Message: pipeline.FormatError(err)})
		return
	}

	writeJSON(w, http.StatusOK, predictResponse{
		PredictionResult: res,
		Message:          pipeline.FormatResult(res),
		Advice:           advice.Relevant(req),
	})
}

func (s *Server) toFlightRequest(body predictRequest) (models.FlightRequest, error) {
	req := models.FlightRequest{
		Origin:        body.Origin,
		Destination:   body.Destination,
		Carrier:       body.Carrier,
		DepartureTime: body.DepartureTime,
		ArrivalTime:   body.ArrivalTime,
	}.WithDefaults()

	date := strings.TrimSpace(body.FlightDate)
	if date == "" {
		y, m, d := s.now().Date()
		req.FlightDate = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return req, nil
	}

	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return models.FlightRequest{}, err
	}
	req.FlightDate = t
	return req, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, pipeline.ErrInvalidTimeFormat), errors.Is(err, pipeline.ErrUnknownAirport):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func codeFor(err error) string {
	switch {
	case errors.Is(err, pipeline.ErrInvalidTimeFormat):
		return "invalid_time_format"
	case errors.Is(err, pipeline.ErrUnknownAirport):
		return "unknown_airport"
	default:
		return "prediction_failed"
	}
}

func (s *Server) handleAirport(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	rec, err := s.airports.Resolve(code)
	if errors.Is(err, airports.ErrUnknownAirport) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "unknown_airport", Message: pipeline.MsgUnknownAirport})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "lookup_failed", Message: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleAdvice(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, advice.All())
}
