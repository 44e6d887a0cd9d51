package toydbwire

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/stellnox/toydb/internal/engine"
	"github.com/stellnox/toydb/internal/sql/executor"
)

type ServerConfig struct {
	Addr   string
	DBName string
}

// Server fronts one in-memory database over TCP. Connections get their own
// executor session (so transactions are session-scoped), but all sessions
// share the database, and execMu serializes statement execution: the engine
// assumes a single mutator at any instant.
type Server struct {
	db     *engine.Database
	execMu sync.Mutex
}

func NewServer(dbName string) *Server {
	return &Server{db: engine.New(dbName)}
}

// DB exposes the shared database, mainly for tests.
func (s *Server) DB() *engine.Database { return s.db }

// Run accepts connections until SIGINT/SIGTERM or a fatal listener error.
func (s *Server) Run(sc ServerConfig) error {
	ln, err := net.Listen("tcp", sc.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	defer func() { _ = ln.Close() }()

	slog.Info("toydb tcp server listening", "addr", sc.Addr, "database", sc.DBName)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			slog.Warn("accept failed", "err", err)
			continue
		}
		go s.handleConn(ctx, conn)
	}
}

func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer func() { _ = conn.Close() }()

	// No global deadline; the client applies per-request deadlines.
	_ = conn.SetDeadline(time.Time{})

	sess := executor.NewExecutor(s.db)
	slog.Debug("session opened", "remote", conn.RemoteAddr())

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		var req ExecuteRequest
		if err := ReadFrame(conn, &req); err != nil {
			// Client closed or bad frame.
			slog.Debug("session closed", "remote", conn.RemoteAddr())
			return
		}

		res, err := s.exec(sess, req.SQL)
		if err != nil {
			_ = WriteFrame(conn, ExecuteResponse{
				ID:    req.ID,
				Error: err.Error(),
			})
			continue
		}

		_ = WriteFrame(conn, ExecuteResponse{
			ID:     req.ID,
			Result: res,
		})
	}
}

func (s *Server) exec(sess *executor.Executor, sql string) (*executor.Result, error) {
	s.execMu.Lock()
	defer s.execMu.Unlock()
	return sess.ExecSQL(sql)
}
