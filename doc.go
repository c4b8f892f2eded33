// Copyright 2025 The cmdkit Authors.

/*
Package cmdkit builds multi-level command-line interfaces from declarative
registrations: a tree of named sub-commands, each with typed options, typed
positional arguments, environment-variable bindings, examples and shell
completion.

A command declares its positional arguments with a small grammar in the
registration string. Required slots use angle brackets, optional slots use
square brackets, "..." marks a variadic slot and a "[]" suffix on the type
marks a list value:

	app := cmdkit.New("app").Version("1.2.0").AutoHelp()
	app.Command("copy, cp <src:string> <dst:string>", "copy a thing").
		Option("--force, -f", "overwrite the destination").
		Handle(func(ctx context.Context, r *cmdkit.Result) error {
			return copyThing(r.Args[0].(string), r.Args[1].(string), r.Bool("force"))
		})

Every registration returns the node it created, so configuration chains
without any shared builder state; two trees can be declared and parsed
independently.

# Options

Option declarations use the same grammar for their value slots. An option
without a value declaration is a bare flag coercing to boolean true:

	cmd.Option("--limit, -l <n:integer>", "max results")
	cmd.Option("--tags <t:string[]>", "comma separated tags")
	cmd.Option("--verbose, -v", "more detail")

The first long flag names the option; the other tokens become aliases.
Options marked Global in their OptionConfig are visible to every descendant
of the declaring command, Standalone options bypass required-argument
validation (the usual shape of --help), and an option Action runs instead of
the command's handler when the flag is present.

# Types

Flag and positional values are coerced through a per-command type registry.
The builtins are string, boolean, number, integer, float and duration;
custom types are added with Type and resolve like options do: a command's
own definitions first, then global definitions walking up the ancestors. A
type handler that implements complete.Predictor doubles as the completion
provider for its name.

# Execution

Parse routes the raw argument vector down the tree by literal sub-command
name, tokenizes flags, coerces values, matches positional slots and then
dispatches the terminal command's handler. It returns the *Result and an
error; nothing exits the process. Main wraps Parse for use in main
functions: it renders help and one diagnostic line on failure and returns
the exit code:

	func main() {
		os.Exit(app.Main(context.Background()))
	}

A command registered with Executable forwards its remaining tokens to an
external program named after the command path joined with hyphens ("app
remote add" runs app-remote-add), and RawArgs hands the tokens to the
handler without any parsing.

# Completion

Shell completion for common shells is supported with the
github.com/posener/complete/v2 package; Main answers completion requests
before parsing. To install completion for a program, run it with the
COMP_INSTALL environment variable set to 1.
*/
package cmdkit
