package cli

import (
	"encoding/json"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/celebigilfatih/omt/internal/domain/entity"
	eventMessaging "github.com/celebigilfatih/omt/internal/infrastructure/messaging"
)

type watchOptions struct {
	Type string
}

func NewWatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print domain events published on Redis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, rootOpts, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Type, "type", "", "only this event type, e.g. application.decided")
	return cmd
}

func runWatch(cmd *cobra.Command, rootOpts *RootOptions, opts *watchOptions) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s, err := openSession(ctx, rootOpts)
	if err != nil {
		return err
	}
	defer s.Close()

	if s.infra.Redis == nil {
		return errors.New("redis is disabled or unreachable; set redis.enabled and redis.addr")
	}

	channel := s.cfg.Redis.Channel
	if opts.Type != "" {
		channel = eventMessaging.TypedChannel(channel, entity.EventType(opts.Type))
	}

	messages, err := s.infra.Redis.Subscribe(ctx, channel)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printf(out, "Listening on %s\n", channel)
	for msg := range messages {
		var event entity.Event
		if err := json.Unmarshal(msg.Payload, &event); err != nil {
			printf(out, "%s  (undecodable) %s\n", msg.Time.Format("15:04:05"), msg.Payload)
			continue
		}
		printf(out, "%s  %-22s %s %v\n", event.OccurredAt.Format("15:04:05"), event.Type, event.ResourceID, event.Attributes)
	}
	return nil
}
