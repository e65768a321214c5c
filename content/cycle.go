package content

import (
	"io/ioutil"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/xerrors"

	"github.com/illuscio-dev/contools-go/mediatype"
)

/*
RequestCycle is the request-scoped content context: it owns the per-request
caches for the decoded request body and the negotiated response type.

A cycle is created when request handling starts, used from that request's
handling context only, and discarded when the request ends. Memoization means
repeated queries stay consistent for the whole request even if calling code
mutates the headers in between.
*/
type RequestCycle struct {
	settings *Settings
	request  *http.Request
	logger   *zap.Logger

	responseTypeResolved bool
	responseType         string

	bodyDecoded bool
	requestBody interface{}
}

// NewRequestCycle creates the content context for a single inbound request.
func (settings *Settings) NewRequestCycle(request *http.Request) *RequestCycle {
	return &RequestCycle{
		settings: settings,
		request:  request,
		logger:   settings.logger,
	}
}

/*
ResponseContentType figures out what content type will be used in the response:
the best available match for the request's Accept header, or the registry
default when the header is absent or matches nothing.

The result is memoized for the life of the cycle. Returns a NoMatchError when
nothing is negotiable and no default is set, and a MalformedMediaTypeError when
the Accept header cannot be parsed.
*/
func (cycle *RequestCycle) ResponseContentType() (string, error) {
	if !cycle.responseTypeResolved {
		acceptHeader := cycle.request.Header.Get("Accept")
		if acceptHeader == "" {
			acceptHeader = cycle.settings.DefaultContentType()
			if acceptHeader == "" {
				acceptHeader = "*/*"
			}
		}

		acceptable, err := mediatype.ParseAccept(acceptHeader)
		if err != nil {
			return "", err
		}

		selected, err := SelectContentType(
			acceptable, cycle.settings.AvailableContentTypes(),
		)
		if err == nil {
			cycle.responseType = selected.WithoutParameters().String()
		} else {
			// No match: fall back to the default content type, which may be
			// blank when none is configured.
			cycle.responseType = cycle.settings.DefaultContentType()
		}
		cycle.responseTypeResolved = true
	}

	if cycle.responseType == "" {
		return "", &NoMatchError{Accept: cycle.request.Header.Get("Accept")}
	}

	return cycle.responseType, nil
}

/*
RequestBody fetches and decodes the request body, using the declared
Content-Type (or the registry default when absent) to resolve a transcoder.

The decoded value is memoized, so decoding twice within one request returns the
identical value. Failure modes, for the boundary to map with StatusCode:

• NotFoundError when no transcoder handles the declared type (415).

• DecodeError when the body cannot be decoded (400); the full diagnostic is
logged server side and must not be leaked to the client.
*/
func (cycle *RequestCycle) RequestBody() (interface{}, error) {
	if cycle.bodyDecoded {
		return cycle.requestBody, nil
	}

	contentTypeHeader := cycle.request.Header.Get("Content-Type")
	if contentTypeHeader == "" {
		contentTypeHeader = cycle.settings.DefaultContentType()
	}

	parsed, err := mediatype.Parse(contentTypeHeader)
	if err != nil {
		return nil, err
	}

	transcoder, err := cycle.settings.Lookup(
		parsed.WithoutParameters().String(),
	)
	if err != nil {
		return nil, err
	}

	data, err := ioutil.ReadAll(cycle.request.Body)
	if err != nil {
		return nil, xerrors.Errorf("error reading request body: %w", err)
	}

	encoding := parsed.Parameters["charset"]
	if encoding == "" {
		encoding = cycle.settings.DefaultEncoding()
	}

	value, err := transcoder.FromBytes(data, encoding)
	if err != nil {
		cycle.logger.Warn(
			"failed to decode request body",
			zap.String("contentType", transcoder.ContentType()),
			zap.Error(err),
		)
		return nil, err
	}

	cycle.requestBody = value
	cycle.bodyDecoded = true

	return cycle.requestBody, nil
}

// SendResponse negotiates a transcoder for the response, encodes body with it
// and writes the result. See SendResponseOpts for header behavior.
func (cycle *RequestCycle) SendResponse(
	writer http.ResponseWriter, body interface{},
) error {
	return cycle.SendResponseOpts(writer, body, true)
}

/*
SendResponseOpts encodes body using the negotiated response transcoder and
writes it to writer.

When setContentType is true the Content-Type header is set to the effective
content type reported by the transcoder, and "Vary: Accept" is added since the
representation depends on request headers.

Returns a NoMatchError (415 condition) when no response type is negotiable.
Encode failures propagate as-is: a value with no conversion rule is a
programming error on the producing side, not a client fault.
*/
func (cycle *RequestCycle) SendResponseOpts(
	writer http.ResponseWriter, body interface{}, setContentType bool,
) error {
	responseType, err := cycle.ResponseContentType()
	if err != nil {
		return err
	}

	transcoder, err := cycle.settings.Lookup(responseType)
	if err != nil {
		return err
	}

	// Blank encoding: each transcoder applies its own default charset. The
	// registry's default encoding is a decode-side fallback only.
	contentType, data, err := transcoder.ToBytes(body, "")
	if err != nil {
		return xerrors.Errorf("error encoding response body: %w", err)
	}

	if setContentType {
		writer.Header().Set("Content-Type", contentType)
		writer.Header().Add("Vary", "Accept")
	}

	if _, err := writer.Write(data); err != nil {
		return xerrors.Errorf("error writing response body: %w", err)
	}

	return nil
}
