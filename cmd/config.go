package cmd

import (
	"errors"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"unfold.dev/pkg/unfold/internal/domain"
	m "unfold.dev/pkg/unfold/internal/model"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "unfold"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."

	modeFlagName          = "mode"
	zipFlagName           = "zip"
	openFlagName          = "open"
	htmlFlagName          = "html"
	concurrencyFlagName   = "concurrency"
	progressEveryFlagName = "progress-every"
	ignoreFlagName        = "ignore"
	skipDirFlagName       = "skip-dir"
	formatFlagName        = "format"
	logFileFlagName       = "log-file"
	verboseFlagName       = "verbose"

	runModeKey          = "run.mode"
	runZipKey           = "run.zip"
	runOpenKey          = "run.open"
	runConcurrencyKey   = "run.concurrency"
	runProgressEveryKey = "run.progress_every"
	walkIgnoreKey       = "walk.ignore"
	walkSkipDirsKey     = "walk.skip_dirs"
	reportHTMLKey       = "report.html"
	formatKey           = "format"

	defaultMode          = string(m.ModeCopy)
	defaultZip           = false
	defaultOpen          = false
	defaultHTML          = false
	defaultConcurrency   = domain.DefaultWalkConcurrency
	defaultProgressEvery = domain.DefaultProgressEvery
	defaultFormat        = "text"

	envPrefix = "UNFOLD"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".unfold.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(runModeKey, defaultMode)
	viper.SetDefault(runZipKey, defaultZip)
	viper.SetDefault(runOpenKey, defaultOpen)
	viper.SetDefault(runConcurrencyKey, defaultConcurrency)
	viper.SetDefault(runProgressEveryKey, defaultProgressEvery)
	viper.SetDefault(walkIgnoreKey, []string{})
	viper.SetDefault(walkSkipDirsKey, []string{})
	viper.SetDefault(reportHTMLKey, defaultHTML)
	viper.SetDefault(formatKey, defaultFormat)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return
		}

		return
	}
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}

// runSettings reads the tuning knobs of a run from config, env and flags.
func runSettings() domain.Settings {
	settings := domain.DefaultSettings()

	if n := viper.GetInt(runConcurrencyKey); n > 0 {
		settings.WalkConcurrency = n
	}

	if n := viper.GetInt(runProgressEveryKey); n > 0 {
		settings.ProgressEvery = n
	}

	settings.ExtraIgnoredNames = viper.GetStringSlice(walkIgnoreKey)
	settings.ExtraDisallowedDirs = viper.GetStringSlice(walkSkipDirsKey)
	settings.WriteHTML = viper.GetBool(reportHTMLKey)

	return settings
}
