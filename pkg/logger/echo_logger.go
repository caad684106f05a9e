package logger

import (
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	apperrors "github.com/AREOPAGO7/ZOOJ-sub001/pkg/errors"
)

// NewEchoRequestLogger는 요청 한 건당 한 줄의 zap 로그를 남기는 Echo 미들웨어를 생성합니다.
func NewEchoRequestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		// 헬스 체크는 로그에서 제외
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/health"
		},
		HandleError:     true,
		LogLatency:      true,
		LogRemoteIP:     true,
		LogMethod:       true,
		LogURI:          true,
		LogRoutePath:    true,
		LogRequestID:    true,
		LogUserAgent:    true,
		LogStatus:       true,
		LogError:        true,
		LogResponseSize: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("request.remote_ip", v.RemoteIP),
				zap.String("request.method", v.Method),
				zap.String("request.uri", v.URI),
				zap.String("request.route", v.RoutePath),
				zap.String("request.request_id", v.RequestID),
				zap.String("request.user_agent", v.UserAgent),
				zap.Int("response.status", v.Status),
				zap.Duration("response.latency", v.Latency),
				zap.Int64("response.size", v.ResponseSize),
			}
			if userID, ok := c.Get("user_id").(string); ok && userID != "" {
				fields = append(fields, zap.String("request.user_id", userID))
			}

			switch {
			case v.Error != nil || v.Status >= http.StatusInternalServerError:
				logger.Error("요청 실패", append(fields, zap.Error(v.Error))...)
			case v.Status >= http.StatusBadRequest:
				logger.Warn("요청 거부", fields...)
			default:
				logger.Info("요청 완료", fields...)
			}
			return nil
		},
	})
}

// WithEchoLogger는 Echo 내장 로거를 zap으로 교체하고, 모든 에러를 {error, code} JSON으로 응답하는
// 에러 핸들러를 등록합니다.
func WithEchoLogger(e *echo.Echo, logger *zap.Logger) {
	e.Logger = NewEchoZapLogger(logger)

	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		he := apperrors.ToHTTPError(err)
		body, ok := he.Message.(apperrors.ErrorBody)
		if !ok {
			// echo 자체 에러(404 라우트, 바인딩 실패 등)
			body = apperrors.ErrorBody{Error: fmt.Sprint(he.Message), Code: codeForStatus(he.Code)}
		}

		if he.Code >= http.StatusInternalServerError {
			apperrors.LogError(logger, err, "HTTP 에러",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Request().URL.Path),
			)
		}

		var sendErr error
		if c.Request().Method == http.MethodHead {
			sendErr = c.NoContent(he.Code)
		} else {
			sendErr = c.JSON(he.Code, body)
		}
		if sendErr != nil {
			logger.Error("에러 응답 전송 실패", zap.Error(sendErr))
		}
	}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apperrors.ErrInvalidArgument
	case http.StatusUnauthorized:
		return apperrors.ErrUnauthenticated
	case http.StatusForbidden:
		return apperrors.ErrUnauthorized
	case http.StatusNotFound, http.StatusMethodNotAllowed:
		return apperrors.ErrNotFound
	case http.StatusConflict:
		return apperrors.ErrConflict
	case http.StatusServiceUnavailable:
		return apperrors.ErrUnavailable
	default:
		return apperrors.ErrInternal
	}
}

// EchoZapLogger는 echo.Logger 인터페이스를 zap으로 구현합니다.
type EchoZapLogger struct {
	Logger *zap.Logger
	prefix string
}

// NewEchoZapLogger는 echo.Logger 구현체를 생성합니다.
func NewEchoZapLogger(logger *zap.Logger) *EchoZapLogger {
	return &EchoZapLogger{Logger: logger.Named("echo")}
}

func (l *EchoZapLogger) Output() io.Writer      { return &zapWriter{logger: l.Logger} }
func (l *EchoZapLogger) SetOutput(io.Writer)    {}
func (l *EchoZapLogger) SetHeader(string)       {}
func (l *EchoZapLogger) Prefix() string         { return l.prefix }
func (l *EchoZapLogger) SetPrefix(p string)     { l.prefix = p }
func (l *EchoZapLogger) SetLevel(log.Lvl)       {}
func (l *EchoZapLogger) Level() log.Lvl         { return toGommonLevel(l.Logger.Level()) }
func (l *EchoZapLogger) Print(i ...interface{}) { l.Logger.Info(fmt.Sprint(i...)) }
func (l *EchoZapLogger) Debug(i ...interface{}) { l.Logger.Debug(fmt.Sprint(i...)) }
func (l *EchoZapLogger) Info(i ...interface{})  { l.Logger.Info(fmt.Sprint(i...)) }
func (l *EchoZapLogger) Warn(i ...interface{})  { l.Logger.Warn(fmt.Sprint(i...)) }
func (l *EchoZapLogger) Error(i ...interface{}) { l.Logger.Error(fmt.Sprint(i...)) }
func (l *EchoZapLogger) Fatal(i ...interface{}) { l.Logger.Fatal(fmt.Sprint(i...)) }
func (l *EchoZapLogger) Panic(i ...interface{}) { l.Logger.Panic(fmt.Sprint(i...)) }
func (l *EchoZapLogger) Printj(j log.JSON)      { l.Logger.Info("json", zap.Any("json", j)) }
func (l *EchoZapLogger) Debugj(j log.JSON)      { l.Logger.Debug("json", zap.Any("json", j)) }
func (l *EchoZapLogger) Infoj(j log.JSON)       { l.Logger.Info("json", zap.Any("json", j)) }
func (l *EchoZapLogger) Warnj(j log.JSON)       { l.Logger.Warn("json", zap.Any("json", j)) }
func (l *EchoZapLogger) Errorj(j log.JSON)      { l.Logger.Error("json", zap.Any("json", j)) }
func (l *EchoZapLogger) Fatalj(j log.JSON)      { l.Logger.Fatal("json", zap.Any("json", j)) }
func (l *EchoZapLogger) Panicj(j log.JSON)      { l.Logger.Panic("json", zap.Any("json", j)) }

func (l *EchoZapLogger) Printf(format string, args ...interface{}) {
	l.Logger.Info(fmt.Sprintf(format, args...))
}

func (l *EchoZapLogger) Debugf(format string, args ...interface{}) {
	l.Logger.Debug(fmt.Sprintf(format, args...))
}

func (l *EchoZapLogger) Infof(format string, args ...interface{}) {
	l.Logger.Info(fmt.Sprintf(format, args...))
}

func (l *EchoZapLogger) Warnf(format string, args ...interface{}) {
	l.Logger.Warn(fmt.Sprintf(format, args...))
}

func (l *EchoZapLogger) Errorf(format string, args ...interface{}) {
	l.Logger.Error(fmt.Sprintf(format, args...))
}

func (l *EchoZapLogger) Fatalf(format string, args ...interface{}) {
	l.Logger.Fatal(fmt.Sprintf(format, args...))
}

func (l *EchoZapLogger) Panicf(format string, args ...interface{}) {
	l.Logger.Panic(fmt.Sprintf(format, args...))
}

func toGommonLevel(level zapcore.Level) log.Lvl {
	switch {
	case level <= zapcore.DebugLevel:
		return log.DEBUG
	case level == zapcore.InfoLevel:
		return log.INFO
	case level == zapcore.WarnLevel:
		return log.WARN
	default:
		return log.ERROR
	}
}

// zapWriter는 echo가 Output()으로 쓰는 내용을 zap Info 로그로 전달합니다.
type zapWriter struct {
	logger *zap.Logger
}

func (w *zapWriter) Write(p []byte) (int, error) {
	w.logger.Info(string(p))
	return len(p), nil
}
