package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/example/annotateshot/internal/settings"
	"github.com/example/annotateshot/internal/storage"
)

// settingsCmd inspects and maintains the persisted store.
type settingsCmd struct {
	*root
	fs     *flag.FlagSet
	sub    string
	maxAge time.Duration
	out    io.Writer
}

func (s *settingsCmd) FlagSet() *flag.FlagSet { return s.fs }
func (s *settingsCmd) Program() string        { return s.root.program + " settings" }

func parseSettingsCmd(args []string, r *root) (*settingsCmd, error) {
	fs := flag.NewFlagSet("settings", flag.ContinueOnError)
	s := &settingsCmd{root: r, fs: fs, out: os.Stdout}
	fs.Usage = usageFunc(s)
	fs.DurationVar(&s.maxAge, "max-age", storage.DefaultCacheAge, "prune-cache: drop cached images older than this")
	flagArgs, positionals, err := splitArgs(fs, args)
	if err != nil {
		return nil, err
	}
	if err := fs.Parse(flagArgs); err != nil {
		return nil, err
	}
	if len(positionals) != 1 {
		return nil, &UsageError{of: s}
	}
	s.sub = positionals[0]
	return s, nil
}

func (s *settingsCmd) Run() error {
	ctx := context.Background()
	st, err := s.root.store(ctx)
	if err != nil {
		return err
	}
	defer st.Close()

	switch s.sub {
	case "show":
		u, err := settings.Load(ctx, st, settings.Defaults())
		if err != nil {
			return err
		}
		enc := json.NewEncoder(s.out)
		enc.SetIndent("", "  ")
		return enc.Encode(u)
	case "reset":
		if err := st.Delete(ctx, storage.KeyUserSettings); err != nil {
			return err
		}
		fmt.Fprintln(s.out, "settings reset")
		return nil
	case "keys":
		keys, err := st.Keys(ctx, "")
		if err != nil {
			return err
		}
		for _, k := range keys {
			fmt.Fprintln(s.out, k)
		}
		return nil
	case "prune-cache":
		n, err := st.PruneCache(ctx, s.maxAge)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.out, "pruned %d cached images\n", n)
		return nil
	default:
		return fmt.Errorf("unknown settings command: %s", s.sub)
	}
}
