package logging

// Shared attribute keys so log lines keep a consistent shape across packages.
const (
	FieldComponent = "component"
	FieldCluster   = "cluster"
	FieldPhase     = "phase"
	FieldFile      = "file"
	FieldSpeaker   = "speaker"
	FieldExitCode  = "exit_code"
)
