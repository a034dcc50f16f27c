package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/tennis-roundrobin/internal/platform/logging"
	"github.com/riskibarqy/tennis-roundrobin/internal/usecase"
)

type Handler struct {
	rosterService        *usecase.RosterService
	participationService *usecase.ParticipationService
	settingsService      *usecase.SettingsService
	matchService         *usecase.MatchService
	standingsService     *usecase.StandingsService
	exportService        *usecase.ExportService
	logger               *logging.Logger
	validator            *validator.Validate
}

func NewHandler(
	rosterService *usecase.RosterService,
	participationService *usecase.ParticipationService,
	settingsService *usecase.SettingsService,
	matchService *usecase.MatchService,
	standingsService *usecase.StandingsService,
	exportService *usecase.ExportService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		rosterService:        rosterService,
		participationService: participationService,
		settingsService:      settingsService,
		matchService:         matchService,
		standingsService:     standingsService,
		exportService:        exportService,
		logger:               logger,
		validator:            validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeRequest reads a JSON body into dst and validates it.
func (h *Handler) decodeRequest(ctx context.Context, body io.Reader, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return h.validateRequest(ctx, dst)
}

func pathTeamID(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q", usecase.ErrInvalidInput, name, raw)
	}

	return id, nil
}
