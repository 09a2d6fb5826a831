package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/genesis-xyz/openai-pass/internal/config"
	"github.com/genesis-xyz/openai-pass/internal/db"
	"github.com/genesis-xyz/openai-pass/reqs"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
)

// recorder persists request outcomes.
type recorder interface {
	Record(ctx context.Context, e db.Entry) (int64, error)
}

type nopRecorder struct{}

func (nopRecorder) Record(context.Context, db.Entry) (int64, error) { return 0, nil }

type deps struct {
	cfg    config.Config
	sender reqs.Sender
	store  *db.Store
}

// runApp builds the dependency graph for cfg, starts it, calls fn and stops it.
func runApp(ctx context.Context, cfg config.Config, extra []fx.Option, fn func(context.Context, deps) error) error {
	var d deps
	opts := []fx.Option{
		fx.NopLogger,
		fx.Supply(cfg),
		fx.Provide(
			newHTTPSender,
			newHistoryStore,
			newRecorder,
			newRecordingSender,
		),
		fx.Populate(&d.sender, &d.store),
	}
	opts = append(opts, extra...)

	app := fx.New(opts...)
	if err := app.Err(); err != nil {
		return err
	}
	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	d.cfg = cfg

	runErr := fn(ctx, d)

	stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil && runErr == nil {
		return fmt.Errorf("stop: %w", err)
	}
	return runErr
}

// transport is the sender that reaches providers, before outcome recording.
type transport struct {
	reqs.Sender
}

func newHTTPSender(cfg config.Config) transport {
	return transport{reqs.NewHTTPSender(reqs.HTTPConfig{
		Timeout:   cfg.Timeout,
		UserAgent: cfg.UserAgent,
	}, &http.Client{})}
}

// newHistoryStore returns nil when history is disabled.
func newHistoryStore(lc fx.Lifecycle, cfg config.Config) (*db.Store, error) {
	if !cfg.History.Enabled {
		return nil, nil
	}
	conn, err := db.Open(context.Background(), cfg.History.Path)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(conn.Close))
	return db.NewStore(conn), nil
}

func newRecorder(store *db.Store) recorder {
	if store == nil {
		return nopRecorder{}
	}
	return store
}

// recordingSender logs the outcome of every dispatch.
type recordingSender struct {
	next     reqs.Sender
	recorder recorder
	now      func() time.Time
}

func newRecordingSender(next transport, rec recorder) reqs.Sender {
	return &recordingSender{next: next.Sender, recorder: rec, now: time.Now}
}

func (s *recordingSender) Send(ctx context.Context, d reqs.Dispatch) (reqs.RawResult, error) {
	started := s.now()
	res, err := s.next.Send(ctx, d)

	entry := db.Entry{
		RequestedAt: started,
		TopicID:     d.TopicID,
		Provider:    d.Provider,
		Outcome:     string(res.Status),
		Reason:      res.Reason,
		Duration:    s.now().Sub(started),
	}
	if err != nil {
		entry.Outcome = db.OutcomeFailed
		entry.Reason = err.Error()
	}
	if _, recErr := s.recorder.Record(context.WithoutCancel(ctx), entry); recErr != nil {
		log.Warn().Err(recErr).Msg("failed to record request outcome")
	}
	return res, err
}
