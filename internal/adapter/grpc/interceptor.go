package grpc

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/glouglou/cashup-backend/internal/obs"
)

// requestIDHeader is read from incoming metadata and echoed back in the response header
const requestIDHeader = "x-request-id"

// UnaryInterceptors chains the server interceptors. Logging is outermost so a
// recovered panic is still logged and timed as codes.Internal.
func UnaryInterceptors(logger zerolog.Logger, metrics *obs.CashUpMetrics) grpc.ServerOption {
	return grpc.ChainUnaryInterceptor(
		LoggingInterceptor(logger, metrics),
		RecoveryInterceptor(logger),
	)
}

// LoggingInterceptor returns a gRPC unary server interceptor that tags each call
// with a request id, logs its outcome and records its duration.
// A request id supplied by the caller in x-request-id metadata is kept.
func LoggingInterceptor(logger zerolog.Logger, metrics *obs.CashUpMetrics) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (interface{}, error) {
		start := time.Now()

		requestID := incomingRequestID(ctx)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		_ = grpc.SetHeader(ctx, metadata.Pairs(requestIDHeader, requestID))

		reqLogger := logger.With().
			Str("request_id", requestID).
			Str("method", info.FullMethod).
			Logger()
		ctx = reqLogger.WithContext(ctx)

		resp, err := handler(ctx, req)

		code := status.Code(err)
		elapsed := time.Since(start)
		metrics.ObserveRPC(info.FullMethod, code.String(), float64(elapsed.Microseconds())/1000)

		var event *zerolog.Event
		switch code {
		case codes.OK:
			event = reqLogger.Info()
		case codes.Internal, codes.Unknown, codes.Unavailable:
			event = reqLogger.Error().Err(err)
		default:
			event = reqLogger.Warn().Err(err)
		}
		event.
			Str("code", code.String()).
			Dur("duration", elapsed).
			Msg("grpc request")

		return resp, err
	}
}

// RecoveryInterceptor returns a gRPC unary server interceptor that turns a
// handler panic into status.Internal instead of crashing the server.
func RecoveryInterceptor(logger zerolog.Logger) grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req interface{},
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (resp interface{}, err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error().
					Str("method", info.FullMethod).
					Interface("panic", r).
					Bytes("stack", debug.Stack()).
					Msg("recovered from panic")
				resp = nil
				err = status.Error(codes.Internal, "internal error")
			}
		}()

		return handler(ctx, req)
	}
}

func incomingRequestID(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get(requestIDHeader)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
