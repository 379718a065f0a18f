// Command radclient is a demonstration CLI for the radius client library:
// it loads a dictionary, builds an Access-Request/Accounting-Request/
// CoA-Request/Disconnect-Request, and exchanges it with a server over UDP.
package main

import "github.com/andrewz1/radius/cmd/radclient/commands"

func main() {
	commands.Execute()
}
