// Package errcode enumerates error codes used by gn.Error values across
// kioskpack.
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
	WriteFileError
	RemoveFileError

	// Logging errors
	CreateLogFileError

	// Command errors
	LockHeldError

	// Pack errors
	ArchiveExtractError
	ManifestInvalidError
	IncompatiblePackError
	ManifestTamperedError
	SignatureInvalidError
	PublicKeyMissingError
	TableReadFailureError

	// Asset errors
	ImageHashMismatchError
	AssetSyncError
	DerivativeToolUnavailableError

	// Database errors
	DBOpenError
	DBSchemaError
	DBScriptError
	DBQueryError
	DatabaseMissingError

	// Activation errors
	StagedDatabaseMissingError
	NoBackupAvailableError
	ActivationRenameError

	// Import errors
	ImportLogError
)
