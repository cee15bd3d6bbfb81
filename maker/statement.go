package maker

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Statement is a finished statement: its text and the values bound to its
// placeholders, in order.
type Statement struct {
	SQL  string `msgpack:"sql" json:"sql"`
	Args []any  `msgpack:"args" json:"args"`
}

// wireStatement has the fields of Statement without its methods, so msgpack
// does not call MarshalBinary recursively.
type wireStatement Statement

// MarshalBinary encodes the statement with msgpack for transport to an
// execution layer. Argument values must be msgpack-encodable.
func (s *Statement) MarshalBinary() ([]byte, error) {
	data, err := msgpack.Marshal((*wireStatement)(s))
	if err != nil {
		return nil, fmt.Errorf("maker: encode statement: %w", err)
	}
	return data, nil
}

// DecodeStatement decodes a statement encoded by MarshalBinary. Integer
// arguments decode as int64 or uint64 and floats as float64.
func DecodeStatement(data []byte) (*Statement, error) {
	var s wireStatement
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.UseLooseInterfaceDecoding(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("maker: decode statement: %w", err)
	}
	return (*Statement)(&s), nil
}
