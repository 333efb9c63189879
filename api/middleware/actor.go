package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/estatelab/estate-backend/api/responses"
	pkgerrors "github.com/estatelab/estate-backend/pkg/errors"
	"github.com/estatelab/estate-backend/pkg/logger"
)

const actorIDHeader = "X-Actor-Id"

// ActorContext requires the staff identity header on every request and
// threads it through the context and log fields.
func ActorContext(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get(actorIDHeader))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "X-Actor-Id header required"))
				return
			}
			actorID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid actor id"))
				return
			}

			ctx := WithActorID(r.Context(), actorID.String())
			if logg != nil {
				ctx = logg.WithActorID(ctx, actorID.String())
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
