// interceptors — серверные gRPC-интерсепторы tenders-service:
// перехват паник, логирование вызовов и дедлайн по умолчанию.
package interceptors

import (
	"context"
	"time"

	"google.golang.org/grpc"
)

// WithTimeout навешивает дедлайн d на вызов, у которого его ещё нет.
//
// Правила:
//   - d <= 0 — контекст не меняется;
//   - дедлайн клиента не переопределяется;
//   - иначе ctx оборачивается context.WithTimeout, cancel вызывается по выходу.
func WithTimeout(d time.Duration) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, _ *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if d <= 0 {
			return handler(ctx, req)
		}

		if _, ok := ctx.Deadline(); ok {
			return handler(ctx, req)
		}

		ctx, cancel := context.WithTimeout(ctx, d)
		defer cancel()

		return handler(ctx, req)
	}
}
