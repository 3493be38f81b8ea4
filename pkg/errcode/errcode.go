package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBUnsupportedDriverError
	DBTableCheckError
	DBNotConnectedError
	DBTableExistsCheckError
	DBDropTableError
	DBCloseError

	// Schema errors
	SchemaCreateError
	SchemaMigrateError
	SchemaSeedError
	SchemaCollationError

	// Catalog errors
	ValidationError
	NotFoundError
	DuplicateAliasError
	ReferentialIntegrityError
	CorruptDataError
	StorageExhaustedError
	StorageError

	// Import errors
	ImportReadError
	ImportParseError
	ImportRecordError

	// Web errors
	WebServerError
)
