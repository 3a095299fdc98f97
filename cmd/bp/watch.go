package main

import (
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/bptrack"
	storeevents "github.com/aretw0/bptrack/pkg/adapters/lifecycle"
	"github.com/aretw0/bptrack/pkg/core"
)

func newWatchCmd(a *app) *cobra.Command {
	var pattern string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print a line every time the data file changes",
		Long: `Watch follows the data file and reloads it after every change, printing
the event and the new reading count. Stop it with Ctrl+C.`,
		Args: exactArgs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var (
				mu       sync.Mutex
				watchErr error
			)
			onError := func(err error) {
				mu.Lock()
				if watchErr == nil {
					watchErr = err
				}
				mu.Unlock()
				stop()
			}

			opts := []bptrack.Option{bptrack.WithWatcherErrorHandler(onError)}
			if pattern != "" {
				opts = append(opts, bptrack.WithWatchPattern(pattern))
			}

			svc, err := a.open(opts...)
			if err != nil {
				return err
			}

			events, err := svc.Watch(ctx)
			if err != nil {
				return err
			}

			src := storeevents.NewSource(events)
			if err := src.Start(ctx); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Watching %s (%d readings). Press Ctrl+C to stop.\n", a.cfg.DataFile, svc.Len())

			for e := range src.Events() {
				ev, ok := e.(core.Event)
				if !ok {
					continue
				}
				if err := svc.Load(ctx); err != nil {
					return err
				}
				fmt.Fprintf(out, "%s  %s  %d readings\n",
					time.Unix(ev.Timestamp, 0).Format(core.DisplayLayout), ev, svc.Len())
			}

			mu.Lock()
			defer mu.Unlock()
			return watchErr
		},
	}

	cmd.Flags().StringVar(&pattern, "pattern", "", "Glob of file names to follow in the data directory (default: the data file)")
	return cmd
}
