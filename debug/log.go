package debug

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/signadot/confsync/encode"
	"github.com/signadot/confsync/tree"
)

// Output is where Logf writes.
var Output io.Writer = os.Stderr

type Node struct{ tree.Node }

func (n Node) String() string {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(n.Node, buf); err != nil {
		return fmt.Sprintf("[raw tree.Node] %s", n.Node)
	}
	return buf.String()
}

// Logf formats like fmt.Printf, rendering tree.Node arguments as encoded
// documents and tree.NodeSet arguments as path lists.
func Logf(msg string, args ...any) {
	for i := range args {
		switch x := args[i].(type) {
		case tree.Node:
			if x.IsZero() {
				args[i] = "<nil>"
				continue
			}
			args[i] = Node{x}.String()
		case tree.NodeSet:
			args[i] = fmt.Sprint(x.Paths())
		}
	}
	fmt.Fprintf(Output, msg, args...)
}
