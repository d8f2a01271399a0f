// Command sqlqb renders and executes statements described in YAML
// statement files.
//
//	sqlqb render users.yaml
//	sqlqb --config sqlqb.yaml exec users.yaml
package main

import (
	"context"
	"os"
	"os/signal"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
