package cmd

// Exit codes for the reqvault CLI
const (
	// ExitSuccess indicates the command completed
	ExitSuccess = 0

	// ExitRequestFailure indicates the request could not be sent
	ExitRequestFailure = 1

	// ExitParseError indicates a corrupt stored file
	ExitParseError = 2

	// ExitConfigError indicates a configuration error
	ExitConfigError = 3

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)
