// mapcodec - SSPM/PHXM map container tool
//
// Usage:
//
//	mapcodec info <file>                 Decode a map and print its metadata
//	mapcodec convert <in> <out.sspm>     Re-encode a map as SSPM
//	mapcodec extract <file> [dir]        Write embedded media to files
//
// Input format is picked by extension: .sspm or .phxm.
package main

import (
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
