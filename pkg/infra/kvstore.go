package infra

import (
	"encoding/json"
)

type KVPair struct {
	Key   string
	Value []byte
}

// KVStore is the persistence seam for run results. Keys are slash separated
// and an implementation may prepend its own namespace.
type KVStore interface {
	GetName() string
	Set(k string, v string) error
	Get(k string) (v string, err error)
	// SetAny and GetAny go through the store's Codec.
	SetAny(k string, v any) error
	GetAny(k string, v any) (found bool, err error)
	// SetManyAny writes the values in one batch where the backend allows.
	SetManyAny(kvs map[string]any) error

	// List returns pairs under prefix with the store namespace stripped.
	List(prefix string) ([]*KVPair, error)
	Delete(k string) error
	Close() error
}

// Codec encodes/decodes Go values to/from slices of bytes.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// JSON is the codec used for stored reports.
var JSON = JSONcodec{}

type JSONcodec struct{}

func (c JSONcodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (c JSONcodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
