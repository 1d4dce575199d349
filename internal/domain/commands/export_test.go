package commands

// ParseRemoteURL exports parseRemoteURL for testing.
var ParseRemoteURL = parseRemoteURL //nolint:gochecknoglobals // test export

// ResolveTokenFromEnv exports resolveTokenFromEnv for testing.
var ResolveTokenFromEnv = resolveTokenFromEnv //nolint:gochecknoglobals // test export

// SplitRepoArg exports splitRepoArg for testing.
var SplitRepoArg = splitRepoArg //nolint:gochecknoglobals // test export

// FilterByVisibility exports filterByVisibility for testing.
var FilterByVisibility = filterByVisibility //nolint:gochecknoglobals // test export

// WriteReportFile exports writeReportFile for testing.
var WriteReportFile = writeReportFile //nolint:gochecknoglobals // test export

// RemoteInfo exports remoteInfo for testing.
type RemoteInfo = remoteInfo
