// Command cropmaster is the entrypoint for the CropMaster letterbox
// post-processor. All behavior lives in the cobra command tree under
// internal/cli; this file only injects build metadata and exits with
// the tree's status code.
package main

import (
	"os"

	"github.com/backmassage/cropmaster/internal/cli"
)

// version is set at build time via -ldflags.
var version = "1.0.0-dev"

func main() {
	cli.SetVersion(version)
	os.Exit(cli.Execute())
}
