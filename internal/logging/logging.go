package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"twentyone/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	writerMu sync.RWMutex
	writer   io.Writer = os.Stdout
)

// Init configures the global zerolog logger from cfg. The returned func
// closes the log file, if one was opened.
func Init(cfg config.LogConfig) (func(), error) {
	level := zerolog.InfoLevel
	if v := strings.TrimSpace(cfg.Level); v != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(v)); err == nil {
			level = parsed
		}
	}

	var (
		output  io.Writer = os.Stdout
		closeFn           = func() {}
	)
	if cfg.File != "" {
		fw, err := openRotating(cfg.File, cfg.MaxMB)
		if err != nil {
			return closeFn, err
		}
		output = io.MultiWriter(os.Stdout, fw)
		closeFn = func() { _ = fw.Close() }
	}
	setWriter(output)
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: output}
	}

	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(output).With().Timestamp().Logger()
	if cfg.SampleEvery > 1 {
		logger = logger.Sample(&zerolog.BasicSampler{N: uint32(cfg.SampleEvery)})
	}
	log.Logger = logger
	return closeFn, nil
}

// Writer is the raw destination of application logs, for handlers that log
// through another library.
func Writer() io.Writer {
	writerMu.RLock()
	defer writerMu.RUnlock()
	return writer
}

func setWriter(w io.Writer) {
	writerMu.Lock()
	writer = w
	writerMu.Unlock()
}
