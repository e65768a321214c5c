package mediatype

import (
	"strconv"
	"strings"
)

// AcceptRange is a single media range from an Accept header, with its quality
// weight. The "q" parameter is lifted out of Parameters into Quality.
type AcceptRange struct {
	MediaType
	// Quality weight from 0.0 to 1.0. Defaults to 1.0 when the range carries no
	// "q" parameter.
	Quality float64
}

// ParseAccept parses a raw Accept header value into its weighted media ranges.
// Ranges with a quality of 0 are dropped, since they mark types the client
// refuses outright. Substituting the full wildcard range for an absent header is
// the caller's job, not this function's.
//
// Returns a MalformedMediaTypeError if any range fails to parse or carries an
// unparseable q value.
func ParseAccept(header string) ([]AcceptRange, error) {
	fragments := splitUnquoted(header, ',')
	ranges := make([]AcceptRange, 0, len(fragments))

	for _, fragment := range fragments {
		fragment = strings.TrimSpace(fragment)
		if fragment == "" {
			continue
		}

		parsed, err := Parse(fragment)
		if err != nil {
			return nil, err
		}

		acceptRange := AcceptRange{MediaType: parsed, Quality: 1.0}

		if rawQuality, ok := parsed.Parameters["q"]; ok {
			delete(parsed.Parameters, "q")

			quality, err := strconv.ParseFloat(rawQuality, 64)
			if err != nil || quality < 0 || quality > 1 {
				return nil, &MalformedMediaTypeError{
					Value:  fragment,
					Reason: "invalid quality value: " + rawQuality,
				}
			}
			acceptRange.Quality = quality
		}

		// A zero quality means "never send me this" and can never win
		// negotiation, so it is dropped here.
		if acceptRange.Quality == 0 {
			continue
		}

		ranges = append(ranges, acceptRange)
	}

	return ranges, nil
}
