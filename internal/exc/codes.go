package exc

const (
	CodeUnknownFatal                  = "A0000"
	CodeFileNotFound                  = "A0001"
	CodeUnsuportedFileSystemOperation = "A0002"
	CodePermissionDenied              = "A0003"
	CodeUnsupportedFileFormat         = "A0004"
	CodeUnexpectedEOF                 = "A0005"
	CodeUnexpectedToken               = "A0006"
	CodeMalformedRule                 = "A0007"
	CodeMalformedField                = "A0008"
	CodeDuplicateName                 = "A0009"
	CodeWriteFailure                  = "A0010"
)

const (
	CodeEOF = "_EOF_"
)

var (
	defaultNonFatal = map[string]bool{}
)
