/*
Package req resolves the body of an HTTP request into a typed value.

A [Resolver] decodes a body by its Content-Type and validates the result against a [Target].
Decoding goes:
  - a form body (application/x-www-form-urlencoded or multipart/form-data) becomes a [Form];
  - failing that, a body whose media type is application/json or ends in +json becomes a JSON value;
  - anything else fails with 415 Unsupported Media Type.

Configuring a Resolver with [WithBodyDecoder] replaces all of that;
[Negotiator] is such a replacement, adding YAML, MessagePack and BSON bodies.

A Target is one of three kinds.
Resolving into [None] expects no body.
Resolving into a struct binds the body to it,
a Form with gorilla/schema and a JSON value with its "json" struct tags,
and then checks its "validate" struct tags and its [SelfValidator] method, if it has one.
Resolving into any other type expects the decoded body to already be of that type,
converting JSON numbers only where that is exact.

Every failure is an [*Error] carrying the HTTP status a response ought to use:
415 for a body that cannot be decoded and 422 for one that is malformed or does not fit the Target.
Where a failure is about specific fields, [ValidationErrors] is in the error's chain.

	type CreateWidget struct {
		Name  string   `json:"name" validate:"required"`
		Parts []string `json:"parts"`
	}

	func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
		widget, err := req.ResolveRequest[CreateWidget](h.resolver, r)
		if err != nil {
			h.Err(w, r, err)
			return
		}
		...
	}
*/
package req
