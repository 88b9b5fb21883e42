package req

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/xy-planning-network/typed"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"gopkg.in/yaml.v3"
)

// A Codec decodes bodies of the media types it lists
// into JSON-compatible values: maps keyed by strings, slices, strings, numbers, booleans and nil.
type Codec interface {
	ContentTypes() []string
	Decode(body []byte) (any, error)
}

// A Negotiator is a BodyDecoder choosing a Codec by the media type of a request.
// Requests of media types without a Codec are decoded by the fallback BodyDecoder.
//
// Use a Negotiator with [WithBodyDecoder].
type Negotiator struct {
	library  map[string]Codec
	fallback BodyDecoder
}

// NewNegotiator constructs a *Negotiator with codecs,
// falling back to [NewDefaultDecoder].
func NewNegotiator(codecs ...Codec) *Negotiator {
	n := &Negotiator{
		library:  make(map[string]Codec),
		fallback: NewDefaultDecoder(defaultMaxMemory),
	}

	for _, c := range codecs {
		n.Set(c)
	}

	return n
}

// Set registers c for each of its media types, replacing any Codec already set for one.
func (n *Negotiator) Set(c Codec) {
	for _, ct := range c.ContentTypes() {
		n.library[strings.ToLower(ct)] = c
	}
}

// Get retrieves the Codec set for the media type mt.
func (n *Negotiator) Get(mt string) (Codec, bool) {
	c, ok := n.library[strings.ToLower(mt)]
	return c, ok
}

// Fallback replaces the BodyDecoder used for media types without a Codec.
func (n *Negotiator) Fallback(d BodyDecoder) *Negotiator {
	if d != nil {
		n.fallback = d
	}

	return n
}

// DecodeBody implements BodyDecoder.
func (n *Negotiator) DecodeBody(rq *Request) (any, error) {
	c, ok := n.Get(rq.MediaType())
	if !ok {
		return n.fallback.DecodeBody(rq)
	}

	if len(bytes.TrimSpace(rq.Body)) == 0 {
		return nil, nil
	}

	v, err := c.Decode(rq.Body)
	if err != nil {
		return nil, unprocessablef("%w: failed decoding %s body: %s", typed.ErrBadFormat, rq.MediaType(), err)
	}

	return v, nil
}

// JSONCodec decodes JSON bodies, keeping numbers as a json.Number.
type JSONCodec struct{}

func (JSONCodec) ContentTypes() []string { return []string{"application/json"} }

func (JSONCodec) Decode(body []byte) (any, error) { return decodeJSON(body) }

// YAMLCodec decodes YAML bodies.
type YAMLCodec struct{}

func (YAMLCodec) ContentTypes() []string {
	return []string{"application/yaml", "application/x-yaml", "text/yaml"}
}

func (YAMLCodec) Decode(body []byte) (any, error) {
	var v any
	if err := yaml.Unmarshal(body, &v); err != nil {
		return nil, err
	}

	return normalize(v), nil
}

// MsgpackCodec decodes MessagePack bodies.
// Integers decode as int64 or uint64 and floats as float64.
type MsgpackCodec struct{}

func (MsgpackCodec) ContentTypes() []string {
	return []string{"application/msgpack", "application/x-msgpack", "application/vnd.msgpack"}
}

func (MsgpackCodec) Decode(body []byte) (any, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(body))
	dec.UseLooseInterfaceDecoding(true)

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}

	return normalize(v), nil
}

// BSONCodec decodes a BSON document body.
type BSONCodec struct{}

func (BSONCodec) ContentTypes() []string { return []string{"application/bson"} }

func (BSONCodec) Decode(body []byte) (any, error) {
	var m bson.M
	if err := bson.Unmarshal(body, &m); err != nil {
		return nil, err
	}

	return normalize(m), nil
}

// normalize converts the containers codecs produce into map[string]any and []any.
func normalize(v any) any {
	switch v := v.(type) {
	case map[string]any:
		for k, item := range v {
			v[k] = normalize(item)
		}
		return v

	case bson.M:
		return normalize(map[string]any(v))

	case primitive.D:
		return normalize(map[string]any(v.Map()))

	case map[any]any:
		m := make(map[string]any, len(v))
		for k, item := range v {
			m[fmt.Sprint(k)] = normalize(item)
		}
		return m

	case []any:
		for i, item := range v {
			v[i] = normalize(item)
		}
		return v

	case primitive.A:
		return normalize([]any(v))

	case primitive.ObjectID:
		return v.Hex()

	default:
		return v
	}
}
