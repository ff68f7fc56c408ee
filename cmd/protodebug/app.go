package main

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"go.dedis.ch/protodebug"
	"go.dedis.ch/protodebug/cli"
	"go.dedis.ch/protodebug/cli/urfave"
	"go.dedis.ch/protodebug/debugstr"
	"go.dedis.ch/protodebug/txtenc"
	"golang.org/x/xerrors"
	"google.golang.org/protobuf/reflect/protoreflect"
)

// app holds the streams of the commands.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
	logger zerolog.Logger
}

// newApp returns the command-line application. The rendering is written to
// the output, the statistics to the error output.
func newApp(in io.Reader, out, errOut io.Writer) cli.Application {
	a := &app{
		in:     in,
		out:    out,
		errOut: errOut,
		logger: protodebug.Logger,
	}

	builder := urfave.NewBuilder("protodebug", nil)
	builder.SetUsage("render protobuf messages in a text form keyed by field numbers")

	render := builder.SetCommand("render")
	render.SetDescription("print the rendering of a message")
	render.SetFlags(messageFlags()...)
	render.SetAction(a.render)

	size := builder.SetCommand("size")
	size.SetDescription("print the length of the rendering of a message")
	size.SetFlags(messageFlags()...)
	size.SetAction(a.size)

	return builder.Build()
}

func messageFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Definition: cli.Definition{
				Name:  "config",
				Usage: "path to a YAML file with default values of the flags",
			},
		},
		cli.StringFlag{
			Definition: cli.Definition{
				Name:    "descriptors",
				Aliases: []string{"d"},
				Usage:   "path to a serialized FileDescriptorSet",
			},
		},
		cli.StringFlag{
			Definition: cli.Definition{
				Name:    "type",
				Aliases: []string{"t"},
				Usage:   "full name of the message type",
			},
		},
		cli.StringFlag{
			Definition: cli.Definition{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "path to the encoded message, standard input if empty",
			},
		},
		cli.StringFlag{
			Definition: cli.Definition{
				Name:  "format",
				Usage: "encoding of the input: binary, json or text",
			},
			Value: formatBinary,
		},
		cli.StringSliceFlag{
			Definition: cli.Definition{
				Name:    "option",
				Aliases: []string{"o"},
				Usage:   "rendering option: singleline, skipunknown, nosort or enumnames",
			},
		},
		cli.BoolFlag{
			Definition: cli.Definition{
				Name:  "stats",
				Usage: "print the rendering metrics to the error output",
			},
		},
	}
}

func (a *app) render(c cli.Flags) error {
	flags, msg, opts, err := a.prepare(c)
	if err != nil {
		return err
	}

	_, err = a.out.Write(debugstr.Bytes(msg, opts))
	if err != nil {
		return xerrors.Errorf("couldn't write rendering: %v", err)
	}

	return a.stats(flags)
}

func (a *app) size(c cli.Flags) error {
	flags, msg, opts, err := a.prepare(c)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, txtenc.Size(msg, nil, opts))

	return a.stats(flags)
}

// prepare merges the configuration file into the flags, then decodes the
// message and parses the options they describe.
func (a *app) prepare(c cli.Flags) (cli.Flags, protoreflect.Message, txtenc.Options, error) {
	flags := c

	path := c.Path("config")
	if path != "" {
		defaults, err := loadConfig(path)
		if err != nil {
			return nil, nil, txtenc.Options{}, err
		}

		flags = cli.NewOverlay(c, defaults)
	}

	opts, err := txtenc.ParseOptions(flags.StringSlice("option"))
	if err != nil {
		return nil, nil, txtenc.Options{}, err
	}

	msg, err := a.load(flags)
	if err != nil {
		return nil, nil, txtenc.Options{}, err
	}

	a.logger.Debug().
		Str("type", string(msg.Descriptor().FullName())).
		Stringer("options", opts).
		Msg("rendering message")

	return flags, msg, opts, nil
}

func (a *app) load(flags cli.Flags) (protoreflect.Message, error) {
	descriptors := flags.Path("descriptors")
	if descriptors == "" {
		return nil, xerrors.New("missing descriptors")
	}

	name := flags.String("type")
	if name == "" {
		return nil, xerrors.New("missing type")
	}

	files, err := loadDescriptors(descriptors)
	if err != nil {
		return nil, err
	}

	md, err := findMessage(files, name)
	if err != nil {
		return nil, err
	}

	data, err := readInput(flags.Path("input"), a.in)
	if err != nil {
		return nil, err
	}

	msg, err := decode(md, data, flags.String("format"))
	if err != nil {
		return nil, err
	}

	return msg, nil
}

func (a *app) stats(flags cli.Flags) error {
	if !flags.Bool("stats") {
		return nil
	}

	err := writeStats(a.errOut, protodebug.PromCollectors)
	if err != nil {
		return xerrors.Errorf("couldn't write stats: %v", err)
	}

	return nil
}
