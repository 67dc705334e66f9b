package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// StoreBackend represents the database backend for the sprint store.
	StoreBackend string
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// All store backends supported.
const (
	SQLiteBackend     StoreBackend = "sqlite" // default
	MySQLBackend      StoreBackend = "mysql"
	PostgreSQLBackend StoreBackend = "postgresql"
	NoneBackend       StoreBackend = "none"
)

// Payload schema versions for stored sprint metrics.
//
// Version 1 payloads predate dimension scores and are upgraded on read.
// Version 2 payloads carry per-developer and team dimension scores.
const (
	PayloadVersionLegacy  = 1
	PayloadVersionCurrent = 2
)

// BotSuffix marks automation accounts. Logins that are empty or end with
// this literal suffix contribute to nobody's stats.
const BotSuffix = "[bot]"
