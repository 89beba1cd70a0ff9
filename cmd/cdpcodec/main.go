// Command cdpcodec converts between JSON and the profiled CBOR wire
// format, and validates CBOR bytes against the profile. It contains no
// codec logic of its own, only flag handling and wiring of the
// jsonparser, cbor, and jsonwriter packages.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/cdpwire/codec/cbor"
	"github.com/cdpwire/codec/jsonparser"
	"github.com/cdpwire/codec/jsonwriter"
	"github.com/cdpwire/codec/numdeps"
	"github.com/cdpwire/codec/status"
)

type CLI struct {
	Encode   EncodeCmd   `cmd:"" help:"Parse JSON from --in and write profiled CBOR to --out."`
	Decode   DecodeCmd   `cmd:"" help:"Decode profiled CBOR from --in and write minified JSON to --out."`
	Validate ValidateCmd `cmd:"" help:"Report whether --in is a well-formed instance of the CBOR profile."`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("cdpcodec"),
		kong.Description("Convert between JSON and the inspector protocol's profiled CBOR wire format."),
	)
	if err := ctx.Run(); err != nil {
		ctx.FatalIfErrorf(err)
	}
}

// ioFlags is embedded by every subcommand for the common --in/--out
// file flags, defaulting to stdin/stdout.
type ioFlags struct {
	In  string `short:"i" help:"Input file (default: stdin)"`
	Out string `short:"o" help:"Output file (default: stdout)"`
}

func (f ioFlags) read() ([]byte, error) {
	if f.In == "" {
		return readAllPooled(os.Stdin)
	}
	return os.ReadFile(f.In)
}

// readAllPooled drains r into a pooled cbor.ByteBuffer, sized for the
// usual stdin pipe workload, and returns a fresh copy of its bytes so
// the buffer can go back to the pool immediately rather than staying
// borrowed for the rest of the process.
func readAllPooled(r io.Reader) ([]byte, error) {
	bb := cbor.GetMinSize(32 * 1024)
	defer cbor.PutByteBuffer(bb)
	if _, err := bb.ReadFrom(r); err != nil {
		return nil, err
	}
	return append([]byte(nil), bb.Bytes()...), nil
}

func (f ioFlags) write(b []byte) error {
	if f.Out == "" {
		_, err := os.Stdout.Write(b)
		return err
	}
	return os.WriteFile(f.Out, b, 0o644)
}

type EncodeCmd struct {
	ioFlags
	InputUTF16 bool `help:"Parse with the 16-bit code-unit tokenizer, widening each input byte to one code unit."`
	Verbose    bool `short:"v" help:"Print diagnostics to stderr."`
}

func (c *EncodeCmd) Run() error {
	in, err := c.read()
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	w := cbor.NewWriter()
	deps := numdeps.Default()

	var parseStatus status.Status
	if c.InputUTF16 {
		units := bytesToUTF16(in)
		parseStatus = jsonparser.ParseUTF16(units, deps, w)
	} else {
		parseStatus = jsonparser.ParseBytes(in, deps, w)
	}
	if !parseStatus.Ok() {
		return fmt.Errorf("parse JSON: %v", parseStatus)
	}
	if !w.Status().Ok() {
		return fmt.Errorf("encode CBOR: %v", w.Status())
	}
	if c.Verbose {
		fmt.Fprintf(os.Stderr, "cdpcodec: encoded %d JSON bytes to %d CBOR bytes\n", len(in), len(w.Bytes()))
	}
	return c.write(w.Bytes())
}

type DecodeCmd struct {
	ioFlags
	Verbose bool `short:"v" help:"Print diagnostics to stderr."`
}

func (c *DecodeCmd) Run() error {
	in, err := c.read()
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	deps := numdeps.Default()
	w := jsonwriter.New(deps)
	st := cbor.Decode(in, w)
	if !st.Ok() {
		return fmt.Errorf("decode CBOR: %v", st)
	}
	if c.Verbose {
		fmt.Fprintf(os.Stderr, "cdpcodec: decoded %d CBOR bytes to %d JSON bytes\n", len(in), len(w.Bytes()))
	}
	return c.write(w.Bytes())
}

type ValidateCmd struct {
	ioFlags
	Verbose bool `short:"v" help:"On failure, print diagnostic notation of what was decoded before the error."`
}

func (c *ValidateCmd) Run() error {
	in, err := c.read()
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	st := cbor.Validate(in)
	if st.Ok() {
		fmt.Println("OK")
		return nil
	}
	if c.Verbose {
		notation, _, _ := cbor.Diag(in)
		fmt.Fprintf(os.Stderr, "decoded so far: %s\n", notation)
		if cbor.IsLikelyJSON(in) {
			fmt.Fprintln(os.Stderr, "note: --in looks like JSON text, not CBOR; did you mean `cdpcodec encode`?")
		}
	}
	return fmt.Errorf("invalid: %v", st)
}

// bytesToUTF16 treats each input byte as a code unit in 0..255, for
// callers that explicitly ask for 16-bit tokenization of 8-bit input.
func bytesToUTF16(b []byte) []uint16 {
	out := make([]uint16, len(b))
	for i, c := range b {
		out[i] = uint16(c)
	}
	return out
}
