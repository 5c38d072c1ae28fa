package utils

import (
	"fmt"
	"io"
	"os"
	"path"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/sundew-project/sundew/libs"
)

var logger = logrus.New()

// InitLog init log config
func InitLog(options *libs.Options) {
	logger.SetFormatter(&prefixed.TextFormatter{
		ForceColors:     true,
		ForceFormatting: true,
	})
	logger.SetLevel(logrus.InfoLevel)
	logger.SetOutput(os.Stderr)

	if options.LogFile == "" && options.RootFolder != "" {
		options.LogFile = path.Join(NormalizePath(options.RootFolder), "sundew.log")
	}
	if options.LogFile != "" {
		MakeDir(path.Dir(options.LogFile))
		logger.SetOutput(io.MultiWriter(os.Stderr, &lumberjack.Logger{
			Filename:   options.LogFile,
			MaxSize:    20,
			MaxBackups: 3,
		}))
	}

	if options.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	if options.Debug {
		logger.SetLevel(logrus.TraceLevel)
	}
}

// GoodF print good message
func GoodF(format string, args ...interface{}) {
	good := color.HiGreenString("[+]")
	fmt.Printf("%s %s\n", good, fmt.Sprintf(format, args...))
}

// InforF print info message
func InforF(format string, args ...interface{}) {
	logger.Info(fmt.Sprintf(format, args...))
}

// WarningF print warning message
func WarningF(format string, args ...interface{}) {
	logger.Warning(fmt.Sprintf(format, args...))
}

// DebugF print debug message
func DebugF(format string, args ...interface{}) {
	logger.Debug(fmt.Sprintf(format, args...))
}

// ErrorF print error message
func ErrorF(format string, args ...interface{}) {
	logger.Error(fmt.Sprintf(format, args...))
}
