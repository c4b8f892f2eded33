// Copyright 2025 The cmdkit Authors.

package cmdkit_test

import (
	"context"
	"fmt"

	"github.com/cmdkit/cmdkit"
)

func Example() {
	app := cmdkit.New("notes").Version("1.0.0")

	app.Command("add <text:string> [tags:string[]]", "add a note").
		Option("--pin, -p", "pin the note").
		Handle(func(_ context.Context, r *cmdkit.Result) error {
			fmt.Printf("text: %s\n", r.Args[0])
			if len(r.Args) > 1 {
				fmt.Printf("tags: %v\n", r.Args[1])
			}
			fmt.Printf("pinned: %v\n", r.Bool("pin"))
			return nil
		})

	app.Command("purge <...ids:integer>", "delete notes").
		Handle(func(_ context.Context, r *cmdkit.Result) error {
			fmt.Printf("purging %v\n", r.Args[0])
			return nil
		})

	ctx := context.Background()
	if _, err := app.Parse(ctx, []string{"add", "buy milk", "todo,errands", "--pin"}); err != nil {
		fmt.Println("error:", err)
	}
	if _, err := app.Parse(ctx, []string{"purge", "3", "5", "8"}); err != nil {
		fmt.Println("error:", err)
	}

	// Output:
	// text: buy milk
	// tags: [todo errands]
	// pinned: true
	// purging [3 5 8]
}
