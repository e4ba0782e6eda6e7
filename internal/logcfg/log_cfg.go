// Package logcfg configures the global logrus logger.
package logcfg

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime"

	"github.com/natefinch/lumberjack"
	"github.com/sirupsen/logrus"
)

// RunLoggerConfig sets the logrus level, the caller format and the output.
// Logs go to stdout and, when fileName is not empty, to a rotated file.
// Arguments:
//   - envLogs: level name (debug, info, warn, error).
//   - fileName: log file path, empty to log to stdout only.
//
// Returns an error if the level cannot be parsed.
func RunLoggerConfig(envLogs, fileName string) error {
	logLevel, err := logrus.ParseLevel(envLogs)
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", envLogs, err)
	}
	logrus.SetLevel(logLevel)
	logrus.SetReportCaller(true)

	//Настраиваем формат логируемой информации
	logrus.SetFormatter(&logrus.TextFormatter{
		CallerPrettyfier: callerPrettyfier,
	})

	logrus.SetOutput(Output(fileName))
	return nil
}

// Output returns stdout, or stdout plus a lumberjack file writer when fileName is set.
func Output(fileName string) io.Writer {
	if fileName == "" {
		return os.Stdout
	}
	// Настраиваем запись логов в файл
	return io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   fileName,
		MaxSize:    50,
		MaxBackups: 3,
		MaxAge:     30,
	})
}

// callerPrettyfier prints the caller as file.line.func.
func callerPrettyfier(f *runtime.Frame) (function string, file string) {
	_, filename := path.Split(f.File)
	filename = fmt.Sprintf("%s.%d.%s", filename, f.Line, f.Function)
	return "", filename
}
