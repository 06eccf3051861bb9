package handler

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"time"

	"pillulu/internal/application/dto"
	"pillulu/internal/application/service"
	appErrors "pillulu/internal/pkg/errors"
	"pillulu/internal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// CronSecretHeader carries the shared secret of external schedulers.
const CronSecretHeader = "X-CRON-SECRET"

// CronHandler serves the externally triggered reminder endpoints.
type CronHandler struct {
	reminderSvc service.ReminderService
	secret      string
	now         func() time.Time
	log         logger.Logger
}

// NewCronHandler creates a new CronHandler. An empty secret rejects every call.
func NewCronHandler(reminderSvc service.ReminderService, secret string, log logger.Logger) *CronHandler {
	return &CronHandler{reminderSvc: reminderSvc, secret: secret, now: time.Now, log: log}
}

func (h *CronHandler) authorized(provided string) bool {
	if h.secret == "" || provided == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(provided), []byte(h.secret)) == 1
}

// readBody decodes the optional JSON body; a missing or malformed body reads as empty.
func readBody(c echo.Context) dto.CronSecretBody {
	var body dto.CronSecretBody
	if c.Request().Body != nil {
		_ = json.NewDecoder(c.Request().Body).Decode(&body)
	}
	return body
}

// bodyOrHeaderSecret prefers the body secret over the header.
func bodyOrHeaderSecret(c echo.Context, body dto.CronSecretBody) string {
	if body.Secret != nil && *body.Secret != "" {
		return *body.Secret
	}
	return c.Request().Header.Get(CronSecretHeader)
}

func (h *CronHandler) forbidden(c echo.Context) error {
	h.log.Warn("Rejected cron call with invalid or missing secret from " + c.RealIP())
	return ErrorJSON(c, appErrors.ErrForbidden)
}

// SendReminders runs one evaluation at the current instant.
func (h *CronHandler) SendReminders(c echo.Context) error {
	body := readBody(c)
	if !h.authorized(bodyOrHeaderSecret(c, body)) {
		return h.forbidden(c)
	}
	res, err := h.reminderSvc.ProcessReminders(c.Request().Context(), h.now().UTC(), service.TriggerHTTP)
	if err != nil {
		return ErrorJSON(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// DecrementStock takes one dose of body.med_id out of stock.
func (h *CronHandler) DecrementStock(c echo.Context) error {
	body := readBody(c)
	if !h.authorized(bodyOrHeaderSecret(c, body)) {
		return h.forbidden(c)
	}
	res, err := h.reminderSvc.DecrementStock(c.Request().Context(), body.MedID.Uint())
	if err != nil {
		return ErrorJSON(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

// DebugReminders explains what a run would do now without changing anything.
// The secret may come from the header or ?secret=.
func (h *CronHandler) DebugReminders(c echo.Context) error {
	provided := c.Request().Header.Get(CronSecretHeader)
	if provided == "" {
		provided = c.QueryParam("secret")
	}
	if !h.authorized(provided) {
		return h.forbidden(c)
	}
	res, err := h.reminderSvc.ExplainReminders(c.Request().Context(), h.now().UTC())
	if err != nil {
		return ErrorJSON(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
