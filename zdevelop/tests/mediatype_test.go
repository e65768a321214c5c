package tests

//revive:disable:import-shadowing reason: Disabled for assert := assert.New(), which is
// the preferred method of using multiple asserts in a test.

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/illuscio-dev/contools-go/mediatype"
)

func TestParseBasic(test *testing.T) {
	assert := assert.New(test)

	parsed, err := mediatype.Parse("application/json")

	assert.Nil(err)
	assert.Equal("application", parsed.Type)
	assert.Equal("json", parsed.Subtype)
	assert.Equal("", parsed.Suffix)
	assert.Empty(parsed.Parameters)
	assert.Equal("application/json", parsed.String())
}

func TestParseSuffixAndParams(test *testing.T) {
	assert := assert.New(test)

	parsed, err := mediatype.Parse(
		"application/vnd.thing+json; Version=2; charset=UTF-8",
	)

	assert.Nil(err)
	assert.Equal("application", parsed.Type)
	assert.Equal("vnd.thing", parsed.Subtype)
	assert.Equal("json", parsed.Suffix)
	assert.Equal("2", parsed.Parameters["version"])
	// charset values fold to lower case.
	assert.Equal("utf-8", parsed.Parameters["charset"])
	assert.Equal(
		"application/vnd.thing+json; charset=utf-8; version=2", parsed.String(),
	)
}

func TestParseNormalizationIsStable(test *testing.T) {
	assert := assert.New(test)

	// Differ only in parameter order and key case.
	first, err := mediatype.Parse("application/json; Version=2; Type=full")
	assert.Nil(err)
	second, err := mediatype.Parse("application/json; type=full; version=2")
	assert.Nil(err)

	assert.Equal(first.String(), second.String())
	assert.True(first.Equal(second))
}

func TestParseQuotedParameter(test *testing.T) {
	assert := assert.New(test)

	parsed, err := mediatype.Parse("application/json; charset=\"UTF-8\"")

	assert.Nil(err)
	assert.Equal("utf-8", parsed.Parameters["charset"])
}

func TestParseUpperCaseTypeFolds(test *testing.T) {
	assert := assert.New(test)

	parsed, err := mediatype.Parse("Application/JSON")

	assert.Nil(err)
	assert.Equal("application/json", parsed.String())
}

func TestParseWildcards(test *testing.T) {
	assert := assert.New(test)

	parsed, err := mediatype.Parse("*/*")
	assert.Nil(err)
	assert.True(parsed.IsWildcard())

	parsed, err = mediatype.Parse("application/*")
	assert.Nil(err)
	assert.True(parsed.IsWildcard())
	assert.Equal("application", parsed.Type)
	assert.Equal("*", parsed.Subtype)
}

func TestParseMalformed(test *testing.T) {
	badValues := []string{
		"",
		"application",
		"/json",
		"application/",
		"application/json; charset=\"utf-8",
		"application/json; charset=utf\"8",
		"application/json; charset",
	}

	for _, badValue := range badValues {
		test.Run(badValue, func(subTest *testing.T) {
			_, err := mediatype.Parse(badValue)
			assert.NotNil(subTest, err)

			malformed, ok := err.(*mediatype.MalformedMediaTypeError)
			assert.True(subTest, ok)
			assert.Equal(subTest, badValue, malformed.Value)
		})
	}
}

func TestWithoutParameters(test *testing.T) {
	assert := assert.New(test)

	parsed, err := mediatype.Parse("application/vnd.thing+json; version=2")
	assert.Nil(err)

	bare := parsed.WithoutParameters()
	assert.Equal("application/vnd.thing+json", bare.String())
	// The original keeps its parameters.
	assert.Equal("2", parsed.Parameters["version"])
}

func TestFromHeader(test *testing.T) {
	assert := assert.New(test)

	req := http.Request{Header: make(http.Header)}
	req.Header.Set("Content-Type", "application/msgpack")

	parsed, err := mediatype.FromHeader(req.Header)
	assert.Nil(err)
	assert.Equal("application/msgpack", parsed.String())
}

func TestParseAcceptWeights(test *testing.T) {
	assert := assert.New(test)

	ranges, err := mediatype.ParseAccept(
		"application/msgpack;q=1.0, application/json;q=0.5, */*;q=0.1",
	)

	assert.Nil(err)
	assert.Len(ranges, 3)

	assert.Equal("application/msgpack", ranges[0].MediaType.String())
	assert.Equal(1.0, ranges[0].Quality)

	assert.Equal("application/json", ranges[1].MediaType.String())
	assert.Equal(0.5, ranges[1].Quality)

	assert.Equal("*/*", ranges[2].MediaType.String())
	assert.Equal(0.1, ranges[2].Quality)
}

func TestParseAcceptDefaultQuality(test *testing.T) {
	assert := assert.New(test)

	ranges, err := mediatype.ParseAccept("application/json")

	assert.Nil(err)
	assert.Len(ranges, 1)
	assert.Equal(1.0, ranges[0].Quality)
}

func TestParseAcceptDropsZeroQuality(test *testing.T) {
	assert := assert.New(test)

	ranges, err := mediatype.ParseAccept(
		"application/json, application/xml;q=0",
	)

	assert.Nil(err)
	assert.Len(ranges, 1)
	assert.Equal("application/json", ranges[0].MediaType.String())
}

func TestParseAcceptInvalidQuality(test *testing.T) {
	badValues := []string{
		"application/json;q=bogus",
		"application/json;q=-0.5",
		"application/json;q=1.5",
	}

	for _, badValue := range badValues {
		test.Run(badValue, func(subTest *testing.T) {
			_, err := mediatype.ParseAccept(badValue)
			assert.NotNil(subTest, err)
		})
	}
}
