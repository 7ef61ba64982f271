package scoring

// ErrorKind classifies why an entry could not be scored.
type ErrorKind string

const (
	ErrorNone           ErrorKind = ""
	ErrorInvalidFormat  ErrorKind = "INVALID_FORMAT"
	ErrorEndBeforeStart ErrorKind = "END_BEFORE_START"
)

func (k ErrorKind) Valid() bool {
	switch k {
	case ErrorNone, ErrorInvalidFormat, ErrorEndBeforeStart:
		return true
	}
	return false
}

// MessageID returns the translation key describing k, or "" for ErrorNone.
func (k ErrorKind) MessageID() string {
	switch k {
	case ErrorInvalidFormat:
		return "error_invalid_format"
	case ErrorEndBeforeStart:
		return "error_end_before_start"
	}
	return ""
}
