package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/signup-api/internal/api/shared"
	"github.com/phrazzld/signup-api/internal/identity"
	"github.com/phrazzld/signup-api/internal/metrics"
	"github.com/phrazzld/signup-api/internal/platform/logger"
	"github.com/phrazzld/signup-api/internal/schema"
	"github.com/phrazzld/signup-api/internal/service"
)

// Plain-text bodies of the placeholder routes.
const (
	RootGreeting = "Holap, Elysia!"
	HomeGreeting = "Buenass"
)

// CreationRecorder records user creation outcomes. *metrics.Metrics
// satisfies it.
type CreationRecorder interface {
	RecordUserCreation(outcome, code string)
}

type noopRecorder struct{}

func (noopRecorder) RecordUserCreation(string, string) {}

// UserHandler handles user registration requests.
type UserHandler struct {
	userService service.UserService
	registry    *schema.Registry
	recorder    CreationRecorder
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler. recorder may be nil.
func NewUserHandler(
	userService service.UserService,
	registry *schema.Registry,
	recorder CreationRecorder,
	logger *slog.Logger,
) *UserHandler {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &UserHandler{
		userService: userService,
		registry:    registry,
		recorder:    recorder,
		logger:      logger.With("component", "user_handler"),
	}
}

// CreateUser handles POST /api/newUser.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req schema.CreateUserRequest
	if err := h.registry.Decode(schema.CreateUser, r, &req); err != nil {
		var verr *schema.ValidationError
		if !errors.As(err, &verr) {
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, MsgUserCreationFailed, err)
			return
		}

		h.recorder.RecordUserCreation(metrics.OutcomeInvalid, "")
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, validationMessage(verr), err)
		return
	}

	user, err := h.userService.CreateUser(r.Context(), req.Email, req.Password)
	if err != nil {
		status, message, code := TranslateProviderError(err)
		h.recorder.RecordUserCreation(metrics.OutcomeRejected, code)

		opts := []shared.ResponseOption{shared.WithErrorCode(code)}
		if code == identity.CodeTooManyRequests {
			opts = append(opts, shared.WithElevatedLogLevel())
		}
		shared.RespondWithErrorAndLog(w, r, status, message, err, opts...)
		return
	}

	h.recorder.RecordUserCreation(metrics.OutcomeCreated, "")
	logger.FromContextOrDefault(r.Context(), h.logger).Debug("user registered", "user_id", user.UID)

	shared.RespondWithJSON(w, r, http.StatusCreated, CreateUserResponse{
		Success: true,
		Message: MsgUserCreated,
		UserID:  user.UID,
	})
}

// Root handles GET /api/.
func (h *UserHandler) Root(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithText(w, r, http.StatusOK, RootGreeting)
}

// Home handles GET /api/home.
func (h *UserHandler) Home(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithText(w, r, http.StatusOK, HomeGreeting)
}

// validationMessage names the failing fields without echoing their values.
func validationMessage(verr *schema.ValidationError) string {
	seen := make(map[string]bool, len(verr.Fields))
	names := make([]string, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		if !seen[f.Field] {
			seen[f.Field] = true
			names = append(names, f.Field)
		}
	}
	if len(names) == 0 {
		return MsgInvalidRequest
	}
	return MsgInvalidRequest + ": " + strings.Join(names, ", ")
}
