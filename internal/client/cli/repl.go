package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Accounts(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Open(ctx context.Context, args []string) error
	Deposit(ctx context.Context, args []string) error
	Withdraw(ctx context.Context, args []string) error
	PayBill(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Sync(ctx context.Context) error
	Stats(ctx context.Context) error
}

const helpText = `Available commands:
  accounts                                   list accounts
  list <collection>                          list a collection
  show <collection> <id>                     show one record
  open <owner> <number> [type] [currency]    open an account
  deposit <account-id> <amount>              deposit money
  withdraw <account-id> <amount>             withdraw money
  paybill <account-id> <biller> <amount>     pay a bill
  delete <collection> <id>                   delete a record
  sync                                       fetch every collection now
  stats                                      sync counters
  exit | quit                                leave the program`

// runREPL reads commands from scanner and dispatches them to a until EOF,
// "exit" or "quit", or until ctx is done. Command errors are printed and the
// loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("ls %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var err error
		switch cmd {
		case "help":
			printlnFn(helpText)
		case "accounts":
			err = a.Accounts(ctx)
		case "l", "list":
			err = a.List(ctx, args)
		case "show":
			err = a.Show(ctx, args)
		case "open":
			err = a.Open(ctx, args)
		case "deposit":
			err = a.Deposit(ctx, args)
		case "withdraw":
			err = a.Withdraw(ctx, args)
		case "paybill":
			err = a.PayBill(ctx, args)
		case "delete":
			err = a.Delete(ctx, args)
		case "sync":
			err = a.Sync(ctx)
		case "stats":
			err = a.Stats(ctx)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err.Error())
		}
	}
}
