// Content-type registry, negotiation and request boundary helpers.
/*
Settings is the registry at the heart of this package: a mapping from normalized
media type strings to transcoders, with a registration-ordered list of available
types used for negotiation and an optional default content type. One Settings
instance is constructed when a service starts (or per test) and handed by
reference to every request-handling context; registration is expected to finish
before traffic begins, but lookups are safe against stray late registrations.

SelectContentType implements RFC 7231 section 5.3.2 proactive negotiation over
the registry's available types.

RequestCycle is the request-scoped context that ties the two together: it
memoizes the decoded request body and the negotiated response type for the life
of one request, decodes bodies by Content-Type, and encodes responses by Accept,
mapping failures onto 415 and 400 conditions at the http boundary.
*/
package content
