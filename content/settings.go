package content

import (
	"sync"

	"go.uber.org/zap"

	"github.com/illuscio-dev/contools-go/mediatype"
	"github.com/illuscio-dev/contools-go/transcoders"
)

/*
Settings owns the transcoder registry for a serving process: one entry per
normalized media type string, the registration-ordered list of available types
used for negotiation, and the fallback content type / encoding used when a
request carries no preference.

Registration normally completes during startup, before traffic begins. Lookups
take a read lock only, so concurrent in-flight requests never block each other.
*/
type Settings struct {
	lock sync.RWMutex

	// Normalized media type string -> transcoder.
	transcoders map[string]transcoders.Transcoder
	// Registered types in registration order. Negotiation scans this list, so
	// order breaks ties between equally good matches.
	availableTypes []mediatype.MediaType

	defaultContentType string
	defaultEncoding    string

	logger *zap.Logger
}

// NewSettings creates an empty registry. A nil logger is replaced with a no-op
// logger, so library users only see registry warnings when they opt in.
func NewSettings(logger *zap.Logger) *Settings {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Settings{
		transcoders: make(map[string]transcoders.Transcoder),
		logger:      logger,
	}
}

// AddTranscoder registers a transcoder under its own content type. See
// AddTranscoderAs.
func (settings *Settings) AddTranscoder(transcoder transcoders.Transcoder) error {
	return settings.AddTranscoderAs(transcoder.ContentType(), transcoder)
}

/*
AddTranscoderAs registers a transcoder under contentType, which is normalized
exactly the way Lookup normalizes its argument, so registrations differing only
in parameter order or key case land on the same entry.

A second registration for an existing key is a logged no-op: the original
transcoder is retained. Returns a MalformedMediaTypeError when contentType does
not parse.
*/
func (settings *Settings) AddTranscoderAs(
	contentType string, transcoder transcoders.Transcoder,
) error {
	parsed, err := mediatype.Parse(contentType)
	if err != nil {
		return err
	}
	key := parsed.String()

	settings.lock.Lock()
	defer settings.lock.Unlock()

	if _, ok := settings.transcoders[key]; ok {
		settings.logger.Warn(
			"transcoder already registered, keeping original",
			zap.String("contentType", key),
		)
		return nil
	}

	settings.transcoders[key] = transcoder
	settings.availableTypes = append(settings.availableTypes, parsed)

	return nil
}

// AddTextContentType registers a TextTranscoder for a textual media type built
// from a dumps/loads pair. Any charset parameter on contentType is stripped,
// since the transcoder computes it per call.
func (settings *Settings) AddTextContentType(
	contentType string,
	defaultEncoding string,
	dumps transcoders.DumpsFunc,
	loads transcoders.LoadsFunc,
) error {
	transcoder, err := transcoders.NewTextTranscoder(
		contentType, defaultEncoding, dumps, loads,
	)
	if err != nil {
		return err
	}
	return settings.AddTranscoder(transcoder)
}

// AddBinaryContentType registers a BinaryTranscoder for a binary media type
// built from a pack/unpack pair.
func (settings *Settings) AddBinaryContentType(
	contentType string,
	pack transcoders.PackFunc,
	unpack transcoders.UnpackFunc,
) error {
	transcoder, err := transcoders.NewBinaryTranscoder(contentType, pack, unpack)
	if err != nil {
		return err
	}
	return settings.AddTranscoder(transcoder)
}

// Lookup resolves the transcoder for contentType, normalizing the key the same
// way registration does. Returns a NotFoundError on a miss and a
// MalformedMediaTypeError when contentType does not parse.
func (settings *Settings) Lookup(
	contentType string,
) (transcoders.Transcoder, error) {
	parsed, err := mediatype.Parse(contentType)
	if err != nil {
		return nil, err
	}
	key := parsed.String()

	settings.lock.RLock()
	defer settings.lock.RUnlock()

	transcoder, ok := settings.transcoders[key]
	if !ok {
		return nil, &NotFoundError{ContentType: key}
	}

	return transcoder, nil
}

// Handles reports whether a transcoder is registered for contentType. An
// unparseable contentType is simply not handled.
func (settings *Settings) Handles(contentType string) bool {
	transcoder, err := settings.Lookup(contentType)
	return err == nil && transcoder != nil
}

// SetDefaultContentType stores the fallback used when a request carries no
// Accept or Content-Type header, or when negotiation finds no match. A blank
// contentType clears the default.
//
// The encoding is a decode-side fallback, applied when a request body's
// Content-Type names no charset. Response encoding always uses the selected
// transcoder's own default charset.
func (settings *Settings) SetDefaultContentType(
	contentType string, encoding string,
) error {
	if contentType != "" {
		parsed, err := mediatype.Parse(contentType)
		if err != nil {
			return err
		}
		contentType = parsed.String()
	}

	settings.lock.Lock()
	defer settings.lock.Unlock()

	settings.defaultContentType = contentType
	settings.defaultEncoding = encoding

	return nil
}

// DefaultContentType returns the registry's fallback content type, blank when
// none is set.
func (settings *Settings) DefaultContentType() string {
	settings.lock.RLock()
	defer settings.lock.RUnlock()
	return settings.defaultContentType
}

// DefaultEncoding returns the registry's fallback character encoding, blank
// when none is set.
func (settings *Settings) DefaultEncoding() string {
	settings.lock.RLock()
	defer settings.lock.RUnlock()
	return settings.defaultEncoding
}

// AvailableContentTypes lists the registered media types in registration order.
// The returned slice is a copy.
func (settings *Settings) AvailableContentTypes() []mediatype.MediaType {
	settings.lock.RLock()
	defer settings.lock.RUnlock()

	available := make([]mediatype.MediaType, len(settings.availableTypes))
	copy(available, settings.availableTypes)
	return available
}
