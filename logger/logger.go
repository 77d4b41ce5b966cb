package logger

import "go.uber.org/zap"

var log = zap.NewNop().Sugar()

// Init replaces the no-op default with the production logger.
func Init() error {
	z, err := zap.NewProduction()
	if err != nil {
		return err
	}
	log = z.Sugar()
	return nil
}

func Infof(format string, args ...interface{}) {
	log.Infof(format, args...)
}

func Errorf(format string, args ...interface{}) {
	log.Errorf(format, args...)
}

func Sync() {
	_ = log.Sync()
}
