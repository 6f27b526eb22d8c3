package config

import "time"

// Application constants for the sales analytics system
const (
	AppName    = "Sales Analytics"
	AppVersion = "1.2.0"

	// Feed format
	FieldDelimiter     = "|"
	RequiredFieldCount = 8
	HeaderColumnName   = "TransactionID"
	ThousandsSeparator = ","

	// Reserved identifier prefixes
	TransactionIDPrefix = "T"
	ProductIDPrefix     = "P"
	CustomerIDPrefix    = "C"

	// Analysis defaults
	DefaultTopProducts          = 5
	DefaultLowQuantityThreshold = 10

	// Exchange-rate lookup
	DefaultExchangeRateURL = "https://api.exchangerate-api.com/v4/latest/USD"
	DefaultExchangeTimeout = 5 * time.Second
	DefaultTargetCurrency  = "EUR"
	BaseCurrency           = "USD"

	// File paths. The feed file is relative to the data directory; the
	// directories are relative to the working directory.
	DefaultFeedFile  = "sales_data.txt"
	DefaultDataDir   = "data"
	DefaultOutputDir = "output"
	DefaultLogsDir   = "logs"

	// Server defaults
	DefaultServerPort      = 8080
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second

	// Log settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
	DefaultLogOutput = "console"
	DefaultLogFile   = "logs/salescli.log"
)

// DefaultEncodings is the preference-ordered list of encodings tried when
// decoding the feed file. The legacy exporter writes Latin-1.
var DefaultEncodings = []string{"utf-8", "latin-1", "windows-1252"}
