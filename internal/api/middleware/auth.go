package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/klmnv/Salon-BookingService/internal/api/handlers"
)

// CustomerIDHeader заголовок с ID клиента, проставляется API-шлюзом
const CustomerIDHeader = "X-Customer-ID"

type customerIDKey struct{}

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Auth проверяет наличие и формат заголовка X-Customer-ID
// и кладет ID клиента в контекст запроса
func Auth(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			customerID := r.Header.Get(CustomerIDHeader)
			if customerID == "" {
				log.Warn("%s %s - Missing %s header", r.Method, r.URL.Path, CustomerIDHeader)
				handlers.RespondUnauthorized(w, "требуется авторизация")
				return
			}

			if _, err := uuid.Parse(customerID); err != nil {
				log.Warn("%s %s - Invalid %s header: %v", r.Method, r.URL.Path, CustomerIDHeader, err)
				handlers.RespondUnauthorized(w, "некорректный идентификатор клиента")
				return
			}

			ctx := context.WithValue(r.Context(), customerIDKey{}, customerID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CustomerIDFromContext возвращает ID клиента, положенный Auth middleware
func CustomerIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(customerIDKey{}).(string)
	return id, ok
}
