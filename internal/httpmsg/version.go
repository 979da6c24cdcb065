package httpmsg

// Version is the HTTP version token from a start-line. Only Version1_1 is
// accepted by the connection pipeline; the others parse successfully so
// the supervisor can reject them with a proper 505 instead of a generic
// parse failure.
type Version string

const (
	Version1_1 Version = "HTTP/1.1"
	Version2   Version = "HTTP/2"
	Version3   Version = "HTTP/3"
)

var versionTable = map[string]Version{
	"HTTP/1.1": Version1_1,
	"HTTP/2":   Version2,
	"HTTP/3":   Version3,
}

func parseVersion(b []byte) (Version, error) {
	v, ok := versionTable[string(b)]
	if !ok {
		return "", ErrInvalidVersion
	}
	return v, nil
}
