package logger

import (
	"fmt"

	"github.com/GlebRadaev/presaleadmin/internal/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	timeLayout  = "15:04:05 02-01-2006"
	serviceName = "presaleadmin"
)

var logLvlMap = map[string]zapcore.Level{
	"debug": zapcore.DebugLevel,
	"info":  zapcore.InfoLevel,
	"warn":  zapcore.WarnLevel,
	"error": zapcore.ErrorLevel,
}

// InitLogger replaces the global zap logger and routes the standard library
// logger (used by chi's request logger) through it. The returned func restores
// the standard logger.
func InitLogger(conf *config.Config) (func(), error) {
	lvl, ok := logLvlMap[conf.LogLvl]
	if !ok {
		return nil, fmt.Errorf("unsupported log lvl: %s", conf.LogLvl)
	}

	encoding, encodeLevel, err := encoderFor(conf.LogFormat)
	if err != nil {
		return nil, err
	}

	c := zap.Config{
		Level:    zap.NewAtomicLevelAt(lvl),
		Encoding: encoding,
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			MessageKey:     "msg",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeTime:     zapcore.TimeEncoderOfLayout(timeLayout),
			EncodeDuration: zapcore.MillisDurationEncoder,
			EncodeLevel:    encodeLevel,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := c.Build()
	if err != nil {
		return nil, fmt.Errorf("unable to create zap logger, error: %w", err)
	}
	logger = logger.With(zap.String("service", serviceName))

	zap.ReplaceGlobals(logger)
	restore := zap.RedirectStdLog(logger.Named("http"))

	return restore, nil
}

func encoderFor(format string) (string, zapcore.LevelEncoder, error) {
	switch format {
	case "", "console":
		return "console", zapcore.CapitalColorLevelEncoder, nil
	case "json":
		return "json", zapcore.LowercaseLevelEncoder, nil
	default:
		return "", nil, fmt.Errorf("unsupported log format: %s", format)
	}
}
