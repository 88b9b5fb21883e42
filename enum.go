package typed

// Enumerable is the interface implemented by types that can only be represented by enumerable, constant values.
//
// Request bodies may carry Enumerable fields; the "enum" validation rule checks them with Valid.
type Enumerable interface {
	String() string
	Valid() error
}
