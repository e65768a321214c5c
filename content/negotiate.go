package content

import (
	"strings"

	"github.com/illuscio-dev/contools-go/mediatype"
)

// How well a single media range matched a candidate type.
type matchWeight struct {
	quality     float64
	specificity int
	paramCount  int
}

const (
	matchNone = iota
	matchFullWildcard
	matchSubtypeWildcard
	matchExact
)

// Orders ranges matching ONE candidate: the most specific range wins regardless
// of its quality, since a candidate's quality is defined by the most specific
// range that applies to it. A media type matched by both "*/*;q=1.0" and
// "application/json;q=0.5" therefore carries quality 0.5.
func (weight matchWeight) moreSpecific(other matchWeight) bool {
	if weight.specificity != other.specificity {
		return weight.specificity > other.specificity
	}
	if weight.paramCount != other.paramCount {
		return weight.paramCount > other.paramCount
	}
	return weight.quality > other.quality
}

// Orders the best weights of DIFFERENT candidates: quality first, then range
// specificity, then satisfied parameter count.
func (weight matchWeight) beats(other matchWeight) bool {
	if weight.quality != other.quality {
		return weight.quality > other.quality
	}
	if weight.specificity != other.specificity {
		return weight.specificity > other.specificity
	}
	return weight.paramCount > other.paramCount
}

// Scores one accept range against one candidate type. specificity of matchNone
// means the range does not match at all.
func scoreRange(
	acceptRange mediatype.AcceptRange, candidate mediatype.MediaType,
) matchWeight {
	weight := matchWeight{quality: acceptRange.Quality, specificity: matchNone}

	switch {
	case acceptRange.Type == "*":
		weight.specificity = matchFullWildcard
	case acceptRange.Type != candidate.Type:
		return weight
	case acceptRange.Subtype == "*":
		weight.specificity = matchSubtypeWildcard
	case acceptRange.Subtype == candidate.Subtype &&
		acceptRange.Suffix == candidate.Suffix:
		weight.specificity = matchExact
	default:
		return weight
	}

	// Every parameter the range names must be satisfied by the candidate.
	for key, value := range acceptRange.Parameters {
		candidateValue, ok := candidate.Parameters[key]
		if !ok || candidateValue != value {
			weight.specificity = matchNone
			return weight
		}
		weight.paramCount++
	}

	return weight
}

/*
SelectContentType picks the best of the available media types for the given
weighted accept ranges, per RFC 7231 section 5.3.2.

Each available type takes its quality from the most specific range matching it:
an exact type/subtype/suffix/parameter match beats a subtype wildcard beats a
full wildcard, and ranges with quality 0 never match. Across the available
types, higher quality wins, then higher specificity; remaining ties go to the
earliest registered type, so selection is stable.

Returns a NoMatchError when no range matches any available type. Falling back to
a default content type is the caller's concern, not this function's.
*/
func SelectContentType(
	acceptable []mediatype.AcceptRange, available []mediatype.MediaType,
) (mediatype.MediaType, error) {
	selected := mediatype.MediaType{}
	selectedWeight := matchWeight{specificity: matchNone}

	for _, candidate := range available {
		candidateWeight := matchWeight{specificity: matchNone}
		for _, acceptRange := range acceptable {
			weight := scoreRange(acceptRange, candidate)
			if weight.specificity == matchNone {
				continue
			}
			if candidateWeight.specificity == matchNone ||
				weight.moreSpecific(candidateWeight) {
				candidateWeight = weight
			}
		}

		if candidateWeight.specificity == matchNone {
			continue
		}
		if selectedWeight.specificity == matchNone ||
			candidateWeight.beats(selectedWeight) {
			selected = candidate
			selectedWeight = candidateWeight
		}
	}

	if selectedWeight.specificity == matchNone {
		described := make([]string, len(acceptable))
		for index, acceptRange := range acceptable {
			described[index] = acceptRange.String()
		}
		return selected, &NoMatchError{Accept: strings.Join(described, ", ")}
	}

	return selected, nil
}
