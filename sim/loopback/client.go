package loopback

import (
	"bytes"
	"encoding/binary"
	"math"
)

// Widths used by Client to read the data areas.
const (
	DefaultMessageSize  = 1024
	DefaultMaxStringLen = 128
)

// A Client plays an external client process connected to a Host.
type Client struct {
	Name         string
	MessageSize  int
	MaxStringLen int

	transport *Transport
}

// Connect returns a client with the given name. The channels of the client
// exist once the bridge has registered it.
func (h *Host) Connect(name string) *Client {
	return &Client{
		Name:         name,
		MessageSize:  DefaultMessageSize,
		MaxStringLen: DefaultMaxStringLen,
		transport:    h.transport,
	}
}

// Send writes a command into the command channel of the client. The bridge
// sees it at the next frame.
func (c *Client) Send(command string) error {
	data := make([]byte, c.MessageSize)
	copy(data[:c.MessageSize-1], command)

	return c.transport.ClientWrite(c.Name+".Command", data)
}

// Responses returns the recent responses written to the client, oldest
// first.
func (c *Client) Responses() []string {
	var texts []string

	for _, data := range c.transport.History(c.Name + ".Response") {
		texts = append(texts, cString(data))
	}

	return texts
}

// Float reads the float slot at the given index of the client.
func (c *Client) Float(index int) (float32, error) {
	data, err := c.transport.Read(c.Name+".LVars", index*4, 4)
	if err != nil {
		return 0, err
	}

	return math.Float32frombits(binary.LittleEndian.Uint32(data)), nil
}

// String reads the string slot at the given index of the client.
func (c *Client) String(index int) (string, error) {
	data, err := c.transport.Read(c.Name+".StringVars",
		index*c.MaxStringLen, c.MaxStringLen)
	if err != nil {
		return "", err
	}

	return cString(data), nil
}

func cString(data []byte) string {
	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}

	return string(data)
}
