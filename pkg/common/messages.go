package common

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Global variable to control debug output
var VerboseMode bool = false

var sugar *zap.SugaredLogger

func init() {
	sugar = newLogger(false)
}

// newLogger builds the console logger used by the Log* helpers.
// Debug level is only enabled in verbose mode.
func newLogger(verbose bool) *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		logger = zap.NewNop()
	}
	return logger.Sugar()
}

// SetVerboseMode enables or disables verbose/debug output
func SetVerboseMode(verbose bool) {
	VerboseMode = verbose
	sugar = newLogger(verbose)
}

// Error messages
const (
	ErrFailedToLoadSave        = "failed to load save file"
	ErrFailedToReconstruct     = "failed to reconstruct save slot"
	ErrFailedToDecodeParty     = "failed to decode party records"
	ErrFailedToDecodeTrainer   = "failed to decode trainer info"
	ErrFailedToExportJSON      = "failed to export JSON"
	ErrFailedToExportYAML      = "failed to export party YAML"
	ErrFailedToLoadSpeciesYAML = "failed to load species metadata YAML"
	ErrFailedToCreateOutput    = "failed to create output file"
	ErrFailedToEncodeRecord    = "failed to encode creature record"
)

// Info messages
const (
	InfoValidSectors       = "Valid sectors found: %d"
	InfoPartyDecoded       = "Decoded %d party record(s)"
	InfoPartyExported      = "Exported %d party record(s) to YAML: %s"
	InfoSpeciesTableLoaded = "Loaded metadata for %d species from %s"
)

// Warning messages
const (
	WarnRecordChecksum  = "Record %d (%s) has a checksum mismatch - data may be corrupted"
	WarnMissingSector   = "Sector ID %d missing from active slot"
	WarnRecoveredSector = "Recovered sector ID %d from the inactive slot"
	WarnSlotIncomplete  = "Slot %d is missing required sector IDs: %v"
)

// Debug messages
const (
	DebugSectorInfo    = "Sector %2d: ID=%d Counter=%08X Checksum=%04X Valid=%t"
	DebugSlotSummary   = "Slot %d: %d valid sectors, max counter %08X"
	DebugSlotDecision  = "Active slot decision: slot %d (highest counter wins, slot 2 wins ties)"
	DebugSubstructPerm = "Personality %08X -> substructure order %v"
)

// LogInfo logs an informational message
func LogInfo(message string, args ...interface{}) {
	sugar.Infof(message, args...)
}

// LogWarn logs a warning message
func LogWarn(message string, args ...interface{}) {
	sugar.Warnf(message, args...)
}

// LogError logs an error message
func LogError(message string, args ...interface{}) {
	sugar.Errorf(message, args...)
}

// LogDebug logs a debug message (only if VerboseMode is enabled)
func LogDebug(message string, args ...interface{}) {
	if !VerboseMode {
		return
	}
	sugar.Debugf(message, args...)
}

// WrapError creates a formatted error with additional context
func WrapError(baseMessage string, details interface{}) error {
	if err, ok := details.(error); ok {
		return fmt.Errorf("%s: %w", baseMessage, err)
	}
	return fmt.Errorf("%s: %v", baseMessage, details)
}
