package main

import (
	"fmt"
	"io/fs"
	"strconv"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"

	"onionkeys/pkg/identity"
)

// settings are the defaults the flags fall back to.
type settings struct {
	Verbosity string `env:"ONIONKEYS_VERBOSITY" envDefault:"info"`
	Format    string `env:"ONIONKEYS_FORMAT" envDefault:"toml"`
	FileMode  string `env:"ONIONKEYS_FILE_MODE" envDefault:"0600"`
}

func loadSettings() (settings, error) {
	var s settings
	if err := env.Parse(&s); err != nil {
		return settings{}, err
	}
	if _, err := identity.ParseFormat(s.Format); err != nil {
		return settings{}, err
	}
	if _, err := s.fileMode(); err != nil {
		return settings{}, err
	}
	return s, nil
}

func (s settings) fileMode() (fs.FileMode, error) {
	mode, err := strconv.ParseUint(s.FileMode, 8, 32)
	if err != nil || mode > 0o777 {
		return 0, fmt.Errorf("invalid file mode %q", s.FileMode)
	}
	return fs.FileMode(mode), nil
}

func logLevel(verbosity string) logrus.Level {
	logLvl := logrus.InfoLevel
	switch verbosity {
	case "debug":
		logLvl = logrus.DebugLevel
	case "info":
		logLvl = logrus.InfoLevel
	case "warning":
		logLvl = logrus.WarnLevel
	case "error":
		logLvl = logrus.ErrorLevel
	case "critical":
		logLvl = logrus.FatalLevel
	}
	return logLvl
}
