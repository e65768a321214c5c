// Parsing and normalization of MIME media types.
package mediatype

import (
	"sort"
	"strings"
)

/*
MediaType is the parsed, normalized representation of a MIME type string such as:

	application/vnd.thing+json; Version=2; charset=UTF-8

Type, Subtype and Suffix are stored lowercased. Parameter keys are lowercased, as
is the value of the charset parameter; other parameter values keep their case.
*/
type MediaType struct {
	// Primary type ("application" in "application/json"). "*" for a full wildcard
	// range.
	Type string
	// Subtype ("json" in "application/json"). "*" for a wildcard subtype range.
	Subtype string
	// Structured syntax suffix without the "+" ("json" in
	// "application/vnd.thing+json"). Blank when absent.
	Suffix string
	// Parameters of the media type. Never nil after Parse.
	Parameters map[string]string
}

// Interface for objects headers can be fetched from, such as http.Request.Header
// or http.Response.Header.
type headerFetcher interface {
	Get(string) string
}

// IsWildcard reports whether the media type is a range containing a "*" component.
func (mediaType MediaType) IsWildcard() bool {
	return mediaType.Type == "*" || mediaType.Subtype == "*"
}

/*
String renders the media type back to its canonical wire form: type and subtype
lowercased, suffix appended with "+", parameters alphabetized by key and joined
with "; ". Two media types that normalize identically render identically, so the
result doubles as a registry key.
*/
func (mediaType MediaType) String() string {
	builder := strings.Builder{}
	builder.WriteString(mediaType.Type)
	builder.WriteString("/")
	builder.WriteString(mediaType.Subtype)
	if mediaType.Suffix != "" {
		builder.WriteString("+")
		builder.WriteString(mediaType.Suffix)
	}

	keys := make([]string, 0, len(mediaType.Parameters))
	for key := range mediaType.Parameters {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		builder.WriteString("; ")
		builder.WriteString(key)
		builder.WriteString("=")
		builder.WriteString(mediaType.Parameters[key])
	}

	return builder.String()
}

// WithoutParameters returns a copy of the media type with an empty parameter
// map, for callers that key on the bare "type/subtype+suffix" form.
func (mediaType MediaType) WithoutParameters() MediaType {
	mediaType.Parameters = map[string]string{}
	return mediaType
}

// Equal reports whether two media types are equivalent: same type, subtype and
// suffix, and the same parameter set. Case differences that Parse normalizes away
// do not count.
func (mediaType MediaType) Equal(other MediaType) bool {
	if mediaType.Type != other.Type ||
		mediaType.Subtype != other.Subtype ||
		mediaType.Suffix != other.Suffix {
		return false
	}
	if len(mediaType.Parameters) != len(other.Parameters) {
		return false
	}
	for key, value := range mediaType.Parameters {
		otherValue, ok := other.Parameters[key]
		if !ok || value != otherValue {
			return false
		}
	}
	return true
}

// FromHeader parses the Content-Type of a message / request header.
func FromHeader(headers headerFetcher) (MediaType, error) {
	return Parse(headers.Get("Content-Type"))
}

// Splits a raw parameter fragment into key and value, unquoting the value.
// Returns a MalformedMediaTypeError on a missing "=" or unbalanced quoting.
func parseParameter(raw string, fragment string) (key string, value string, err error) {
	split := strings.SplitN(fragment, "=", 2)
	if len(split) != 2 {
		return "", "", &MalformedMediaTypeError{
			Value:  raw,
			Reason: "parameter missing '=': " + fragment,
		}
	}

	key = strings.ToLower(strings.TrimSpace(split[0]))
	value = strings.TrimSpace(split[1])

	if strings.HasPrefix(value, "\"") {
		if len(value) < 2 || !strings.HasSuffix(value, "\"") {
			return "", "", &MalformedMediaTypeError{
				Value:  raw,
				Reason: "unbalanced quoting in parameter: " + fragment,
			}
		}
		value = value[1 : len(value)-1]
	} else if strings.Contains(value, "\"") {
		return "", "", &MalformedMediaTypeError{
			Value:  raw,
			Reason: "unbalanced quoting in parameter: " + fragment,
		}
	}

	if key == "" {
		return "", "", &MalformedMediaTypeError{
			Value:  raw,
			Reason: "blank parameter key: " + fragment,
		}
	}

	return key, value, nil
}

/*
Parse converts a raw header fragment into a normalized MediaType. The same parser
is used for Content-Type values and for each range of an Accept header.

Returns a MalformedMediaTypeError when the fragment has no "/" separator, a blank
type or subtype, or unbalanced quoting in a parameter value.
*/
func Parse(raw string) (MediaType, error) {
	mediaType := MediaType{Parameters: make(map[string]string)}

	fragments := splitUnquoted(raw, ';')
	typeFragment := strings.TrimSpace(fragments[0])

	slashIndex := strings.Index(typeFragment, "/")
	if slashIndex < 0 {
		return mediaType, &MalformedMediaTypeError{
			Value:  raw,
			Reason: "missing '/' separator",
		}
	}

	mediaType.Type = strings.ToLower(strings.TrimSpace(typeFragment[:slashIndex]))
	subtype := strings.ToLower(strings.TrimSpace(typeFragment[slashIndex+1:]))

	if plusIndex := strings.LastIndex(subtype, "+"); plusIndex >= 0 {
		mediaType.Suffix = subtype[plusIndex+1:]
		subtype = subtype[:plusIndex]
	}
	mediaType.Subtype = subtype

	if mediaType.Type == "" || mediaType.Subtype == "" {
		return mediaType, &MalformedMediaTypeError{
			Value:  raw,
			Reason: "blank type or subtype",
		}
	}

	for _, fragment := range fragments[1:] {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" {
			continue
		}

		key, value, err := parseParameter(raw, fragment)
		if err != nil {
			return mediaType, err
		}

		// charset values compare case-insensitively, so they are folded here.
		// Other parameter values keep their case.
		if key == "charset" {
			value = strings.ToLower(value)
		}
		mediaType.Parameters[key] = value
	}

	return mediaType, nil
}

// splitUnquoted splits on sep, ignoring separators inside double quotes.
func splitUnquoted(value string, sep rune) []string {
	fragments := make([]string, 0, 4)
	builder := strings.Builder{}
	inQuotes := false

	for _, char := range value {
		switch {
		case char == '"':
			inQuotes = !inQuotes
			builder.WriteRune(char)
		case char == sep && !inQuotes:
			fragments = append(fragments, builder.String())
			builder.Reset()
		default:
			builder.WriteRune(char)
		}
	}
	fragments = append(fragments, builder.String())

	return fragments
}
