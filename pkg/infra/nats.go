package infra

import (
	"errors"
	"path/filepath"
	"time"

	"github.com/kengiroy2-g/kenobase-sub007/pkg/common/config"
	"github.com/kengiroy2-g/kenobase-sub007/pkg/common/logger"
	"github.com/kengiroy2-g/kenobase-sub007/pkg/retry"
	"github.com/nats-io/nats.go"
)

const connectTimeout = 30 * time.Second

// GetNATSConnection dials NATS, retrying the initial connect with backoff.
// Production connections use mutual TLS.
func GetNATSConnection(natsConfig config.NatsConfig, environment config.Env) (*nats.Conn, error) {
	opts := []nats.Option{
		nats.Name("kenobase"),
		nats.MaxReconnects(-1), // retry forever
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.Warn("Disconnected from NATS", "err", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", "url", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
		nats.ErrorHandler(NatsErrHandler),
	}

	natsURL := natsConfig.URL
	if natsURL == "" {
		natsURL = nats.DefaultURL
	}

	if environment == config.ProdEnv {
		clientCert := natsConfig.TLS.ClientCert
		clientKey := natsConfig.TLS.ClientKey
		caCert := natsConfig.TLS.CACert
		if clientCert == "" {
			clientCert = filepath.Join(".", "certs", "client-cert.pem")
		}
		if clientKey == "" {
			clientKey = filepath.Join(".", "certs", "client-key.pem")
		}
		if caCert == "" {
			caCert = filepath.Join(".", "certs", "rootCA.pem")
		}
		opts = append(opts,
			nats.ClientCert(clientCert, clientKey),
			nats.RootCAs(caCert),
			nats.UserInfo(natsConfig.Username, natsConfig.Password),
		)
	} else if natsConfig.Username != "" {
		opts = append(opts, nats.UserInfo(natsConfig.Username, natsConfig.Password))
	}

	var nc *nats.Conn
	err := retry.Exponential(func() error {
		var err error
		nc, err = nats.Connect(natsURL, opts...)
		return err
	}, retry.ExponentialConfig{
		InitialInterval: 500 * time.Millisecond,
		MaxElapsedTime:  connectTimeout,
		OnRetry: func(err error, next time.Duration) {
			logger.Warn("NATS connect failed, retrying", "url", natsURL, "next", next, "err", err)
		},
	})
	return nc, err
}

func NatsErrHandler(nc *nats.Conn, sub *nats.Subscription, natsErr error) {
	logger.Error("NATS error", "err", natsErr)
	if errors.Is(natsErr, nats.ErrSlowConsumer) && sub != nil {
		pendingMsgs, _, err := sub.Pending()
		if err != nil {
			logger.Error("Error getting pending messages", "err", err)
			return
		}
		logger.Error("Falling behind with pending messages on subject", "pending", pendingMsgs, "subject", sub.Subject)
	}
}
