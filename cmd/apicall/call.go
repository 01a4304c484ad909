package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/loykin/apicall"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var callCmd = &cobra.Command{
	Use:   "call <operation.yaml>",
	Short: "Execute a declaratively-described remote operation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v := viper.GetViper()

		cfg, err := loadConfig(v.GetString("config"))
		if err != nil {
			return err
		}
		cfg.setupLogging()

		op, err := apicall.LoadOperation(args[0])
		if err != nil {
			return err
		}

		callArgs, err := parseArgs(v.GetStringSlice("arg"))
		if err != nil {
			return err
		}

		opts := cfg.clientOptions()
		if op.WaitDelay > 0 {
			opts = append(opts, apicall.WithPollDelay(op.WaitDelay))
		}
		client := apicall.New(opts...)

		ctx := context.Background()
		var result any
		if v.GetBool("wait") {
			result, err = client.ExecuteAndWait(ctx, op.Descriptor, callArgs)
		} else {
			result, err = client.Execute(ctx, op.Descriptor, callArgs)
		}
		if err != nil {
			return err
		}

		return printResult(cmd, op, result)
	},
}

// parseArgs turns repeated --arg k=v flags into invocation arguments.
func parseArgs(pairs []string) (apicall.Args, error) {
	out := apicall.Args{}
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("invalid --arg %q, want key=value", p)
		}
		out[strings.TrimSpace(k)] = v
	}
	return out, nil
}

// printResult renders the interpreted result and any extracted values.
func printResult(cmd *cobra.Command, op *apicall.Operation, result any) error {
	if d, ok := result.(*apicall.Deferred); ok {
		v, err := d.Await(cmd.Context())
		if err != nil {
			return err
		}
		result = v
	}

	var body []byte
	switch r := result.(type) {
	case nil:
		cmd.Println("ok")
		return nil
	case []byte:
		body = r
	case io.ReadCloser:
		defer func() { _ = r.Close() }()
		b, err := io.ReadAll(r)
		if err != nil {
			return err
		}
		body = b
	default:
		b, err := json.Marshal(r)
		if err != nil {
			return err
		}
		body = b
	}

	cmd.Println(string(body))

	if extracted := op.ExtractValues(body); len(extracted) > 0 {
		out, err := json.MarshalIndent(extracted, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(out))
	}
	return nil
}
