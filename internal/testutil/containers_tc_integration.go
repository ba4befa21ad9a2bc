//go:build integration

package testutil

import (
	"context"
	"fmt"
	"log"
	"os"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/redpanda"
)

const redpandaImage = "docker.redpanda.com/redpandadata/redpanda:v23.3.8"

var tcLogger = log.New(os.Stdout, "[tc] ", log.LstdFlags)

// KafkaEnv — поднятый брокер шины инвалидации.
type KafkaEnv struct {
	Container *redpanda.Container
	Brokers   []string
	BaseTopic string
}

// Topic — уникальный топик для теста name, создан и готов к чтению.
func (e *KafkaEnv) Topic(ctx context.Context, name string) (string, error) {
	topic := BusTopic(e.BaseTopic, name)
	if err := EnsureTopic(ctx, e.Brokers[0], topic); err != nil {
		return "", err
	}
	return topic, nil
}

// StartKafkaTC — redpanda в контейнере; stop завершает контейнер.
func StartKafkaTC(ctx context.Context, baseTopic string) (*KafkaEnv, func(context.Context) error, error) {
	rp, err := redpanda.Run(ctx, redpandaImage,
		tc.WithLifecycleHooks(lifecycleLog(tcLogger)),
		redpanda.WithAutoCreateTopics(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("run redpanda: %w", err)
	}

	seed, err := rp.KafkaSeedBroker(ctx)
	if err != nil {
		_ = tc.TerminateContainer(rp)
		return nil, nil, fmt.Errorf("seed broker: %w", err)
	}

	env := &KafkaEnv{Container: rp, Brokers: []string{seed}, BaseTopic: baseTopic}
	stop := func(context.Context) error { return tc.TerminateContainer(rp) }
	return env, stop, nil
}

// lifecycleLog — по строке лога на каждую фазу жизни контейнера.
func lifecycleLog(l *log.Logger) tc.ContainerLifecycleHooks {
	phase := func(name string) []tc.ContainerHook {
		return []tc.ContainerHook{func(_ context.Context, c tc.Container) error {
			id := c.GetContainerID()
			if len(id) > 12 {
				id = id[:12]
			}
			l.Printf("%s id=%s", name, id)
			return nil
		}}
	}
	return tc.ContainerLifecycleHooks{
		PreCreates: []tc.ContainerRequestHook{func(_ context.Context, req tc.ContainerRequest) error {
			l.Printf("creating image=%s", req.Image)
			return nil
		}},
		PostStarts:     phase("started"),
		PostReadies:    phase("ready"),
		PostTerminates: phase("terminated"),
	}
}
