// umlgql generates GraphQL schemas from UML models.
//
//	umlgql generate -o ./graph/ ./shop.mdj
//	umlgql preview ./shop.mdj Model::Domain
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
