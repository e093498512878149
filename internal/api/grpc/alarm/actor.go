package alarm

import (
	"context"

	"google.golang.org/grpc/metadata"

	domain "github.com/oshokin/alarm-clock/internal/domain/alarm"
)

// Metadata keys carrying the calling actor.
const (
	actorHostnameKey = "x-actor-hostname"
	actorUsernameKey = "x-actor-username"
)

// WithActor attaches the actor to outgoing call metadata.
func WithActor(ctx context.Context, actor *domain.Actor) context.Context {
	if actor == nil {
		return ctx
	}

	return metadata.AppendToOutgoingContext(ctx,
		actorHostnameKey, actor.Hostname,
		actorUsernameKey, actor.Username)
}

// ActorFromContext extracts the actor from incoming call metadata.
// It returns nil when the caller did not identify itself.
func ActorFromContext(ctx context.Context) *domain.Actor {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return nil
	}

	actor := &domain.Actor{
		Hostname: first(md.Get(actorHostnameKey)),
		Username: first(md.Get(actorUsernameKey)),
	}

	if actor.Hostname == "" && actor.Username == "" {
		return nil
	}

	return actor
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}

	return values[0]
}
