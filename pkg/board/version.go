package board

// Version is the corkline release version, reported by the CLI.
const Version = "0.1.0"
