package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mcncl/jsonx/internal/config"
	"github.com/mcncl/jsonx/internal/decoder"
	"github.com/mcncl/jsonx/internal/errors"
	"github.com/mcncl/jsonx/internal/formatter"
	"github.com/mcncl/jsonx/internal/session"
)

// CLI defines the command-line interface
var CLI struct {
	Input       string `help:"Path to input JSONX file. If not specified, reads from stdin." short:"i" type:"path"`
	Output      string `help:"Path to output JSON file. Defaults to the input path with a .json extension." short:"o" type:"path"`
	Stdout      bool   `help:"Write the normalized JSON to stdout instead of a file." short:"s"`
	Overwrite   bool   `help:"Overwrite the output file if it already exists." short:"w"`
	Check       bool   `help:"Decode the normalized JSON to verify it parses." default:"true" negatable:""`
	Pretty      bool   `help:"Re-indent the normalized JSON." short:"p" xor:"style"`
	Compact     bool   `help:"Strip insignificant whitespace from the normalized JSON." xor:"style"`
	MaxDepth    int    `help:"Maximum nesting depth when decoding." default:"512"`
	Config      string `help:"Path to a config file. Defaults to the nearest .jsonx.yml." short:"c" type:"path"`
	Debug       bool   `help:"Enable debug logging." short:"d"`
	Version     bool   `help:"Show version information." short:"v"`
	Interactive bool   `help:"Run in interactive mode, allowing direct JSONX input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	// Parse CLI arguments with Kong
	parser := kong.Must(&CLI,
		kong.Name("jsonx"),
		kong.Description("A tool to normalize JSONX (JSON with comments and trailing commas) into valid JSON"),
		kong.UsageOnError(),
	)

	// Check if no arguments provided and set interactive mode by default
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	_, err := parser.Parse(os.Args[1:])
	if err != nil {
		// If there's an error parsing arguments, the usage will already be shown by kong.UsageOnError()
		os.Exit(1)
	}

	// Show version and exit if requested
	if CLI.Version {
		fmt.Printf("jsonx version %s\n", Version)
		return
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		os.Exit(1)
	}

	err = run(&Context{Debug: CLI.Debug || cfg.Dev.Debug, Config: cfg})
	if err != nil {
		// Use our custom error handling to provide user-friendly error messages
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))

		// Show help on error
		fmt.Fprintf(os.Stderr, "\nFor help, run: jsonx --help\n")

		os.Exit(1)
	}
}

// loadConfig loads the config file named with -c, or the nearest project
// config when none was given. Defaults apply when neither exists.
func loadConfig() (*config.Config, error) {
	path := CLI.Config
	if path == "" {
		path = config.FindConfigFile()
	}
	if path == "" {
		return config.NewConfig(), nil
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, errors.NewInputError(fmt.Sprintf("failed to load config from '%s'", path), err)
	}
	return cfg, nil
}

// run executes the main program logic
func run(ctx *Context) error {
	sess := ctx.Config.ApplyToSession(session.New())
	if CLI.Overwrite {
		sess.Overwrite(true)
	}
	if CLI.MaxDepth != decoder.DefaultMaxDepth {
		sess.MaxDepth(CLI.MaxDepth)
	}

	// 1. Load JSONX input
	if err := loadInput(sess); err != nil {
		return err
	}

	// 2. Normalize to valid JSON
	text := sess.ToJSON()

	// 3. Verify the result decodes if requested
	if CLI.Check {
		if _, err := sess.Decode(); err != nil {
			return err
		}
	}

	// 4. Apply cosmetic rendering
	text, err := renderOutput(ctx, text)
	if err != nil {
		return err
	}

	// 5. Output the result
	return writeOutput(ctx, sess, text)
}

// loadInput fills the session from the input file, stdin, or the
// interactive prompt
func loadInput(sess *session.Session) error {
	if CLI.Input != "" {
		return sess.FromFile(CLI.Input)
	}

	// Check if stdin has data
	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return errors.NewInputError("failed to access stdin", err)
	}

	// Interactive mode or piped input
	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive (not piped)
		if CLI.Interactive {
			return readInteractiveInput(sess)
		}
		// No data provided on stdin and not in interactive mode
		return errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	// Read from stdin (piped input)
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return errors.NewInputError("failed to read from stdin", err)
	}
	if len(data) == 0 {
		return errors.NewInputError("empty input received from stdin", errors.ErrEmptySource)
	}

	sess.FromString(string(data))
	return nil
}

// renderOutput applies the pretty or compact rendering when one was asked
// for; otherwise the normalized text passes through unchanged
func renderOutput(ctx *Context, text string) (string, error) {
	pretty := CLI.Pretty || (ctx.Config.Output.Pretty && !CLI.Compact)
	compact := CLI.Compact || (ctx.Config.Output.Compact && !CLI.Pretty)

	switch {
	case pretty:
		return formatter.NewFormatter().WithIndent(ctx.Config.Output.Indent).Format(text)
	case compact:
		return formatter.NewFormatter().Compact(text)
	default:
		return text, nil
	}
}

// writeOutput writes text to the resolved target file or to stdout
func writeOutput(ctx *Context, sess *session.Session, text string) error {
	// Stdin input with no explicit output goes to stdout, as does --stdout.
	if CLI.Stdout || (CLI.Output == "" && sess.Origin() == "") {
		if _, err := fmt.Println(strings.TrimSpace(text)); err != nil {
			return errors.NewOutputError("failed to write to stdout", err)
		}
		return nil
	}

	// Resolve the target before replacing the session source, since
	// FromString clears the origin the derivation depends on.
	target, err := sess.TargetPath(CLI.Output)
	if err != nil {
		return err
	}
	sess.FromString(text)

	n, err := sess.WriteJSON(target)
	if err != nil {
		return err
	}
	if ctx.Debug {
		fmt.Fprintf(os.Stderr, "wrote %d bytes\n", n)
	}
	fmt.Fprintf(os.Stderr, "Normalized JSON written to %s\n", target)
	return nil
}

// readInteractiveInput provides an interactive mode for users to paste JSONX
// and signal completion with Ctrl+D (EOF)
func readInteractiveInput(sess *session.Session) error {
	fmt.Fprintln(os.Stderr, "jsonx Interactive Mode")
	fmt.Fprintln(os.Stderr, "Paste your JSONX below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	// Read all input until EOF (Ctrl+D)
	reader := bufio.NewReader(os.Stdin)
	var builder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		builder.WriteString(line)
		if err == io.EOF {
			// End of input
			break
		}
		if err != nil {
			return errors.NewInputError("error reading input", err)
		}
	}

	if builder.Len() == 0 {
		return errors.NewInputError("empty input received", errors.ErrEmptySource)
	}

	fmt.Fprintln(os.Stderr, "\nProcessing JSONX...")
	sess.FromString(builder.String())
	return nil
}
