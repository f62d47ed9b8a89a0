package commands

import (
	"fmt"
	"io"
	"os"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	wirecodec "github.com/reoring/wirecodec"
	"github.com/reoring/wirecodec/internal/cli/ui"
	wyaml "github.com/reoring/wirecodec/source/yaml"
	"github.com/reoring/wirecodec/wire/msgpack"
)

func addTypeFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("type", "t", "", "schema name (see `wirecodec list`)")
}

func addInputFlags(cmd *cobra.Command) {
	addTypeFlag(cmd)
	cmd.Flags().StringP("format", "f", "json", "input format: json, yaml or msgpack")
}

func newDecodeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "Decode a document and print its canonical encoding",
		Long: `Decode reads a document from file (or stdin when file is omitted or "-"),
decodes it with the selected schema and prints the re-encoded result.
Unknown keys are dropped and absent optional fields stay absent.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.decode(cmd, args)
			if err != nil {
				return err
			}
			return a.write(cmd.OutOrStdout(), out)
		},
	}
	addInputFlags(cmd)
	cmd.Flags().StringP("output", "o", "json", "output format: json or msgpack")
	return cmd
}

func newValidateCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check that a document decodes with the selected schema",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := a.decode(cmd, args); err != nil {
				return err
			}
			ui.WriteSuccess(cmd.OutOrStdout(), "valid "+a.cfg.Type, a.cfg.NoColor)
			return nil
		},
	}
	addInputFlags(cmd)
	return cmd
}

func newSchemaCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of a registered schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.lookup()
			if err != nil {
				return err
			}
			b, err := json.MarshalIndent(s.JSONSchema(), "", "  ")
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return err
		},
	}
	addTypeFlag(cmd)
	return cmd
}

func (a *app) decode(cmd *cobra.Command, args []string) (wirecodec.Value, error) {
	s, err := a.lookup()
	if err != nil {
		return wirecodec.Value{}, err
	}
	data, err := a.readInput(cmd, args)
	if err != nil {
		return wirecodec.Value{}, err
	}
	start := time.Now()
	v, err := a.parse(data)
	if err != nil {
		a.log.Debug("parse failed", zap.String("format", a.cfg.Format), zap.Error(err))
		return wirecodec.Value{}, err
	}
	out, err := s.Canonicalize(v)
	a.log.Debug("decoded document",
		zap.String("type", s.Name),
		zap.String("format", a.cfg.Format),
		zap.Int("bytes", len(data)),
		zap.Duration("elapsed", time.Since(start)),
		zap.Bool("ok", err == nil),
	)
	return out, err
}

func (a *app) readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	var r io.Reader = cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	if limit := a.cfg.MaxBytes; limit > 0 {
		data, err := io.ReadAll(io.LimitReader(r, limit+1))
		if err != nil {
			return nil, err
		}
		if int64(len(data)) > limit {
			return nil, wirecodec.Issues{{Path: "/", Code: wirecodec.CodeTruncated, Message: fmt.Sprintf("input exceeds %d bytes", limit)}}
		}
		return data, nil
	}
	return io.ReadAll(r)
}

func (a *app) parse(data []byte) (wirecodec.Value, error) {
	opt := a.cfg.ParseOpt()
	opt.OnWarning = func(it wirecodec.Issue) {
		a.log.Warn("document warning", zap.String("code", it.Code), zap.String("path", it.Path), zap.String("message", it.Message))
	}
	switch a.cfg.Format {
	case "yaml":
		return wyaml.Parse(data, opt)
	case "msgpack":
		return msgpack.Unmarshal(data, opt)
	default:
		return wirecodec.ParseJSON(data, opt)
	}
}

func (a *app) write(w io.Writer, v wirecodec.Value) error {
	if a.cfg.Output == "msgpack" {
		return msgpack.Write(w, v)
	}
	b, err := v.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
