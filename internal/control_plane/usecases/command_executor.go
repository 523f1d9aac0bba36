package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"ecotronix-hub/internal/control_plane/domain"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const _defaultShell = "/bin/sh"

var ErrUnsupportedTarget = errors.New("unsupported command target")

func NewCommandExecutor(
	spawner ProcessSpawner,
	publisher DevicePublisher,
	speaker Speaker,
	shell string,
) *CommandExecutor {
	if shell == "" {
		shell = _defaultShell
	}
	return &CommandExecutor{
		spawner:   spawner,
		publisher: publisher,
		speaker:   speaker,
		shell:     shell,
	}
}

var _ Executor = (*CommandExecutor)(nil)

type CommandExecutor struct {
	spawner   ProcessSpawner
	publisher DevicePublisher
	speaker   Speaker
	shell     string
}

// Execute runs the local invocation or publishes the remote action, then
// speaks the response. The response is spoken only after the effect
// succeeds; a failed effect is returned without any announcement. The effect
// is attempted once and a speech failure does not fail the command.
func (e *CommandExecutor) Execute(ctx context.Context, cmd domain.Command, language domain.Language) error {
	ctx, span := otel.Tracer("ecotronix_hub").Start(ctx, "execute_command",
		trace.WithAttributes(
			attribute.String("command.kind", cmd.Kind()),
			attribute.String("command.key", cmd.Key()),
		),
	)
	defer span.End()

	if err := e.apply(ctx, cmd); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "effect failed")
		slog.Error("executing command",
			slog.String("kind", cmd.Kind()),
			slog.String("command", cmd.Key()),
			slog.Any("error", err),
		)
		return err
	}

	if cmd.Response == "" {
		return nil
	}
	if err := e.speaker.Say(ctx, cmd.Response, language); err != nil {
		slog.Warn("speaking response",
			slog.String("command", cmd.Key()),
			slog.String("language", language.String()),
			slog.Any("error", err),
		)
	}
	return nil
}

func (e *CommandExecutor) apply(ctx context.Context, cmd domain.Command) error {
	switch target := cmd.Target.(type) {
	case domain.LocalTarget:
		if err := e.spawner.Spawn(ctx, []string{e.shell, "-c", target.Invocation}); err != nil {
			return fmt.Errorf("spawning local command: %w", err)
		}
		slog.Info("local command started", slog.String("invocation", target.Invocation))
	case domain.RemoteTarget:
		topic := target.Topic()
		if err := e.publisher.Publish(ctx, topic, target.Action); err != nil {
			return fmt.Errorf("publishing to %s: %w", topic, err)
		}
		slog.Info("remote command published", slog.String("topic", topic), slog.String("action", target.Action))
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedTarget, cmd.Target)
	}
	return nil
}
