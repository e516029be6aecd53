package app

import (
	"io"
	"os"

	"github.com/sheetcal/sheetcal/internal/config"
	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// ConfigureLogOutput tees log output into a rotated file when one is
// configured. The returned func closes the file.
func ConfigureLogOutput(cfg config.Log) func() {
	if cfg.File == "" {
		return func() {}
	}
	file := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}
	log.SetOutput(io.MultiWriter(os.Stderr, file))
	log.Infof("Logging to %s", cfg.File)
	return func() {
		log.SetOutput(os.Stderr)
		_ = file.Close()
	}
}
