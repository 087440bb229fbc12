package eventsfx

import (
	"context"
	"os"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"pointage/internal/repositories"
	"pointage/internal/services"
	"pointage/pkg/metrics"
)

var Module = fx.Provide(
	provideNatsConn,
	provideEventDispatcher,
	provideNotificationRepo,
	provideNotificationService,
)

// provideNatsConn connects to the broker when NATS_URL is set; without it
// the dispatcher degrades to log-only.
func provideNatsConn() *nats.Conn {
	url := os.Getenv("NATS_URL")
	if url == "" {
		logrus.Info("NATS_URL not set, events will not be delivered")
		return nil
	}
	conn, err := nats.Connect(url, nats.Name("pointage"))
	if err != nil {
		logrus.WithError(err).Fatal("error connecting to NATS")
	}
	return conn
}

func provideEventDispatcher(lc fx.Lifecycle, conn *nats.Conn, m *metrics.Registry) services.EventDispatcherInterface {
	dispatcher := services.NewNatsEventDispatcher(conn, m)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			dispatcher.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			err := dispatcher.Stop(ctx)
			if conn != nil {
				conn.Close()
			}
			return err
		},
	})
	return dispatcher
}

func provideNotificationRepo(db *gorm.DB) repositories.NotificationRepository {
	return repositories.NewNotificationRepository(db)
}

func provideNotificationService(repo repositories.NotificationRepository) services.NotificationServiceInterface {
	return services.NewNotificationService(repo)
}
