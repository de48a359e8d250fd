package middleware

import (
	"fmt"
	"net/http"

	"github.com/elmansy-mostafa/Salary-Calculation/internal/handler/http/response"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RateLimit limits requests per client IP. formatted uses the limiter
// notation, e.g. "60-M" for sixty requests a minute.
func RateLimit(formatted string) (func(http.Handler) http.Handler, error) {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit %q: %w", formatted, err)
	}

	store := memory.NewStore()
	instance := limiter.New(store, rate)

	limiterMiddleware := stdlib.NewMiddleware(instance,
		stdlib.WithLimitReachedHandler(func(w http.ResponseWriter, r *http.Request) {
			response.TooManyRequests(w, "Rate limit exceeded, try again later")
		}),
	)

	return limiterMiddleware.Handler, nil
}
