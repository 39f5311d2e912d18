package httpadapter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/oapi-codegen/runtime"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"debtrecon/internal/domain"
	"debtrecon/internal/logging"
	"debtrecon/internal/money"
	"debtrecon/internal/ports"
)

const (
	// MaxBulkIDs caps one bulk request. Keep it equal to the max tag on
	// BulkDebtRequest.RepresentativeIDs; struct tags cannot reference constants.
	MaxBulkIDs   = 10000
	maxBodyBytes = 1 << 20
)

// Pinger reports backing store health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Options struct {
	Logger *zap.Logger
	// Gatherer backs /metrics; nil disables the route.
	Gatherer prometheus.Gatherer
	// Health is checked by /healthz when set.
	Health Pinger
	// Timeout bounds each request; zero means no timeout middleware.
	Timeout time.Duration
}

type Server struct {
	debts    ports.DebtCalculator
	drift    ports.DriftReconciler
	health   Pinger
	gatherer prometheus.Gatherer
	timeout  time.Duration
	log      *zap.Logger
	validate *validator.Validate
}

func New(debts ports.DebtCalculator, drift ports.DriftReconciler, opts Options) *Server {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Server{
		debts:    debts,
		drift:    drift,
		health:   opts.Health,
		gatherer: opts.Gatherer,
		timeout:  opts.Timeout,
		log:      logging.OrNop(opts.Logger).Named("http"),
		validate: v,
	}
}

// Routes returns the API router.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)
	if s.timeout > 0 {
		r.Use(middleware.Timeout(s.timeout))
	}

	r.Get("/healthz", s.getHealthz)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	r.Post("/calculate/bulk-debt", s.postBulkDebt)
	r.Route("/reconcile", func(r chi.Router) {
		r.Post("/drift-detection", s.postDriftDetection)
		r.Get("/drift-breakdown", s.getDriftBreakdown)
	})
	r.Get("/debt/classify", s.getClassify)
	return r
}

func (s *Server) getHealthz(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health.Ping(r.Context()); err != nil {
			s.log.Warn("health check failed", zap.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// BulkDebtRequest is the object form of the bulk debt body. A bare JSON array of ids
// is accepted as well.
type BulkDebtRequest struct {
	// max mirrors MaxBulkIDs.
	RepresentativeIDs []int64 `json:"representative_ids" validate:"required,max=10000"`
}

func (s *Server) postBulkDebt(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var req BulkDebtRequest
	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &req.RepresentativeIDs)
		if err == nil && req.RepresentativeIDs == nil {
			req.RepresentativeIDs = []int64{}
		}
	} else {
		err = decodeStrict(body, &req)
	}
	if err != nil {
		s.writeError(w, r, domain.InvalidInputError("malformed request body: %v", err))
		return
	}
	if err := s.validateStruct(req); err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.debts.ComputeBulk(r.Context(), req.RepresentativeIDs)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type driftRequest struct {
	Scope string `json:"scope"`
}

func (s *Server) postDriftDetection(w http.ResponseWriter, r *http.Request) {
	var scope string
	if err := runtime.BindQueryParameter("form", true, false, "scope", r.URL.Query(), &scope); err != nil {
		s.writeError(w, r, domain.InvalidInputError("invalid scope parameter"))
		return
	}
	if scope == "" {
		body, err := readBody(w, r)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if len(bytes.TrimSpace(body)) > 0 {
			var req driftRequest
			if err := decodeStrict(body, &req); err != nil {
				s.writeError(w, r, domain.InvalidInputError("malformed request body: %v", err))
				return
			}
			scope = req.Scope
		}
	}

	res, err := s.drift.Reconcile(r.Context(), scope)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type breakdownResponse struct {
	Scope           string                `json:"scope"`
	Representatives []domain.AccountDrift `json:"representatives"`
}

func (s *Server) getDriftBreakdown(w http.ResponseWriter, r *http.Request) {
	var (
		scope string
		limit int
	)
	q := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "scope", q, &scope); err != nil {
		s.writeError(w, r, domain.InvalidInputError("invalid scope parameter"))
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", q, &limit); err != nil {
		s.writeError(w, r, domain.InvalidInputError("limit must be an integer"))
		return
	}
	if scope == "" {
		scope = ports.GlobalScope
	}

	rows, err := s.drift.Breakdown(r.Context(), scope, limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if rows == nil {
		rows = []domain.AccountDrift{}
	}
	writeJSON(w, http.StatusOK, breakdownResponse{Scope: scope, Representatives: rows})
}

type classifyResponse struct {
	Amount    money.Money     `json:"amount"`
	DebtLevel domain.DebtTier `json:"debt_level"`
}

func (s *Server) getClassify(w http.ResponseWriter, r *http.Request) {
	var raw string
	if err := runtime.BindQueryParameter("form", true, true, "amount", r.URL.Query(), &raw); err != nil {
		s.writeError(w, r, domain.InvalidInputError("amount is required"))
		return
	}
	amount, err := money.Parse(raw)
	if err != nil {
		s.writeError(w, r, domain.InvalidInputError("amount %q is not a decimal", raw))
		return
	}
	if amount.IsNegative() {
		s.writeError(w, r, domain.InvalidInputError("amount must not be negative"))
		return
	}
	writeJSON(w, http.StatusOK, classifyResponse{Amount: amount, DebtLevel: domain.Classify(amount)})
}

func (s *Server) validateStruct(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required":
			return domain.InvalidInputError("%s is required", fe.Field())
		case "max":
			return domain.InvalidInputError("%s accepts at most %s entries", fe.Field(), fe.Param())
		default:
			return domain.InvalidInputError("%s failed %s validation", fe.Field(), fe.Tag())
		}
	}
	return domain.InvalidInputError("invalid request")
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, domain.InvalidInputError("request body exceeds %d bytes", maxBodyBytes)
		}
		return nil, domain.InvalidInputError("read request body: %v", err)
	}
	return body, nil
}

func decodeStrict(body []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("trailing data after JSON value")
	}
	return nil
}

type errorResponse struct {
	Error string `json:"error"`
}

func statusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.ErrInvalidInput:
		return http.StatusBadRequest
	case domain.ErrDataSource:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = "internal error"
	}
	fields := []zap.Field{
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.String("path", r.URL.Path),
		zap.Int("status", code),
		zap.Error(err),
	}
	if code >= http.StatusInternalServerError {
		s.log.Error("request failed", fields...)
	} else {
		s.log.Info("request rejected", fields...)
	}
	writeJSON(w, code, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("took", time.Since(start)),
		)
	})
}
