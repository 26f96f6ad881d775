//go:build !ebiten

package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "The GUI build of wireworld requires the ebiten build tag.")
	fmt.Fprintln(os.Stderr, "Re-run with `go run -tags ebiten ./cmd/wireworld` or build with `-tags ebiten`.")
	fmt.Fprintln(os.Stderr, "For a headless board server, use `wwctl serve`.")
	os.Exit(2)
}
