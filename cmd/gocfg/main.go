// Command gocfg is a small scriptable front end over package cfg: it loads
// a grammar from the persisted text format and runs one of the library's
// own operations against it (simplify, chomsky, check, repl). It is not a
// re-implementation of any GUI; there are no dialogs, no clipboard
// integration, no help window.
package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/chzyer/readline"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/pterm/pterm"
	"github.com/spf13/pflag"

	"github.com/mahdavipanah/gocfg"
)

// config holds the optional .gocfg.toml defaults.
type config struct {
	WrapWidth int  `toml:"wrap_width"`
	Color     bool `toml:"color"`
}

var defaultConfig = config{WrapWidth: 78, Color: true}

func main() {
	configPath := pflag.String("config", ".gocfg.toml", "path to an optional TOML config file")
	pflag.Parse()

	appConfig, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "gocfg:", err)
		os.Exit(1)
	}

	args := pflag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: gocfg <simplify|chomsky|check|repl> <file> [string]")
		os.Exit(2)
	}

	var runErr error
	switch args[0] {
	case "simplify":
		runErr = runSimplify(args[1:], appConfig)
	case "chomsky":
		runErr = runChomsky(args[1:], appConfig)
	case "check":
		runErr = runCheck(args[1:])
	case "repl":
		runErr = runREPL(args[1:], appConfig)
	default:
		runErr = errors.Errorf("unknown subcommand %q", args[0])
	}

	if runErr != nil {
		fmt.Fprintln(os.Stderr, "gocfg:", runErr)
		os.Exit(1)
	}
}

func loadConfig(path string) (config, error) {
	conf := defaultConfig
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return conf, nil
	}
	if _, err := toml.DecodeFile(path, &conf); err != nil {
		return conf, errors.Wrap(err, "reading config")
	}
	return conf, nil
}

func loadGrammarFile(path string) (*cfg.Grammar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening grammar file")
	}
	defer f.Close()

	g, err := cfg.LoadGrammar(f)
	if err != nil {
		return nil, errors.Wrap(err, "parsing grammar file")
	}
	return g, nil
}

func runSimplify(args []string, c config) error {
	if len(args) != 1 {
		return errors.New("usage: gocfg simplify <file>")
	}
	g, err := loadGrammarFile(args[0])
	if err != nil {
		return err
	}
	g.Simplify()
	fmt.Println(g.FormatRules(cfg.FormatOptions{Width: c.WrapWidth}))
	return nil
}

func runChomsky(args []string, c config) error {
	if len(args) != 1 {
		return errors.New("usage: gocfg chomsky <file>")
	}
	g, err := loadGrammarFile(args[0])
	if err != nil {
		return err
	}
	g.Chomsky()
	fmt.Println(g.FormatRules(cfg.FormatOptions{Width: c.WrapWidth}))
	return nil
}

func runCheck(args []string) error {
	if len(args) != 2 {
		return errors.New("usage: gocfg check <file> <string>")
	}
	g, err := loadGrammarFile(args[0])
	if err != nil {
		return err
	}
	if g.CYK(args[1]) {
		fmt.Println("accept")
	} else {
		fmt.Println("reject")
	}
	return nil
}

func runREPL(args []string, c config) error {
	if len(args) != 1 {
		return errors.New("usage: gocfg repl <file>")
	}
	g, err := loadGrammarFile(args[0])
	if err != nil {
		return err
	}

	if !c.Color {
		pterm.DisableColor()
	}

	sessionID := uuid.New()
	pterm.Info.Println("gocfg repl session", sessionID.String())

	rl, err := readline.NewEx(&readline.Config{Prompt: "gocfg> "})
	if err != nil {
		return errors.Wrap(err, "starting readline")
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or readline.ErrInterrupt
			return nil
		}

		if g.CYK(line) {
			pterm.Success.Println("accept:", line)
		} else {
			pterm.Error.Println("reject:", line)
		}
	}
}
