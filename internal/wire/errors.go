package wire

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"

	"builtins-serializer/internal/symbol"
)

// NewUnknownKindError returns the common error for a symbol whose kind tag
// the schema cannot handle. Surfaced as fatal by the driver: nothing is
// silently skipped except enum entries.
func NewUnknownKindError(c *symbol.ClassSymbol) error {
	return fmt.Errorf("symbol %q: unrecognized kind %d", c.Name, int32(c.Kind))
}

// NewUnsupportedFieldError returns the common error for an unexpected field
// encountered while parsing a message.
func NewUnsupportedFieldError(num protowire.Number, typ protowire.Type) error {
	return fmt.Errorf("unsupported field #%d of type %v", num, typ)
}

func newTruncatedError(what string) error {
	return fmt.Errorf("truncated %s", what)
}
