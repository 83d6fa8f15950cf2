package server

import (
	"context"
	"sync/atomic"

	"github.com/matzehuels/stationviz/pkg/bridge"
	"github.com/matzehuels/stationviz/pkg/host"
	"github.com/matzehuels/stationviz/pkg/store"
)

type session struct {
	stationID int
	store     *store.Memory
	host      *host.RepositoryHost
	bridge    *bridge.Bridge

	// dialog is set while the front end shows a modal dialog.
	dialog atomic.Bool
}

// session returns the session for stationID, creating it on first use.
// Creation holds the server lock so concurrent first requests share one.
func (s *Server) session(ctx context.Context, stationID int) (*session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[stationID]; ok {
		return sess, nil
	}

	h, err := host.New(ctx, s.cfg.Source, stationID, host.Options{
		Cache:  s.cfg.Cache,
		Keyer:  s.cfg.Keyer,
		Logger: s.logger,
	})
	if err != nil {
		return nil, err
	}

	opts := s.cfg.Build
	opts.StationID = stationID
	opts.ApplyHints = true
	res, err := s.runner.Build(ctx, h.Dataset(), opts)
	if err != nil {
		return nil, err
	}
	st, err := store.NewMemory(res.Graph)
	if err != nil {
		return nil, err
	}

	sess := &session{stationID: stationID, store: st, host: h}
	b := bridge.New(st, h, bridge.Options{
		ResolveTimeout: s.cfg.ResolveTimeout,
		DialogGuard:    bridge.DialogFunc(sess.dialog.Load),
		Logger:         s.logger.With("station", stationID),
	})
	sess.bridge = b
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		b.Run(s.base)
	}()

	s.sessions[stationID] = sess
	s.logger.Info("session started", "station", stationID, "nodes", res.Stats.Nodes, "edges", res.Stats.Edges)
	return sess, nil
}
