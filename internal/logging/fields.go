// Package logging configures charmbracelet/log loggers and carries them
// through contexts.
package logging

// Structured log keys.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldLanguage   = "language"

	// Configuration fields.
	FieldSyntaxes   = "syntaxes"
	FieldOutliner   = "outliner"
	FieldInitial    = "initial_state"
	FieldJobs       = "jobs"
	FieldConfigFile = "config_file"

	// Folding fields.
	FieldTransition = "transition"
	FieldDispatch   = "dispatch_id"
	FieldRegions    = "regions"
	FieldSpan       = "span"
	FieldFailed     = "failed"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesWithRegion = "files_with_regions"
	FieldRegionsTotal    = "regions_total"
	FieldRegionsChanged  = "regions_changed"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
	FieldGo      = "go"
	FieldOS      = "os"
)
