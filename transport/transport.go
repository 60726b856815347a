package transport

// Addr identifies one end of a connection.
type Addr interface {
	String() string
}
