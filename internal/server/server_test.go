package server_test

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/teambox/internal/server"
)

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("serves until context is cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		addrCh := make(chan net.Addr, 1)
		hookCalled := make(chan struct{}, 1)
		done := make(chan error, 1)

		go func() {
			done <- server.Run(ctx,
				server.Config{Address: "127.0.0.1:0", ShutdownTimeout: time.Second},
				http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					_, _ = w.Write([]byte("ok"))
				}),
				server.WithOnListen(func(a net.Addr) { addrCh <- a }),
				server.WithShutdownHook(func(context.Context) error {
					hookCalled <- struct{}{}
					return nil
				}),
			)
		}()

		addr := <-addrCh
		resp, err := http.Get("http://" + addr.String() + "/")
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())
		require.Equal(t, "ok", string(body))

		cancel()
		require.NoError(t, <-done)
		require.Len(t, hookCalled, 1)
	})

	t.Run("shutdown hook error", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		errHook := errors.New("close failed")
		addrCh := make(chan net.Addr, 1)
		done := make(chan error, 1)

		go func() {
			done <- server.Run(ctx,
				server.Config{Address: "127.0.0.1:0"},
				http.NotFoundHandler(),
				server.WithOnListen(func(a net.Addr) { addrCh <- a }),
				server.WithShutdownHook(func(context.Context) error { return errHook }),
			)
		}()

		<-addrCh
		cancel()
		require.ErrorIs(t, <-done, errHook)
	})

	t.Run("listen error", func(t *testing.T) {
		t.Parallel()

		ln, err := net.Listen("tcp", "127.0.0.1:0")
		require.NoError(t, err)
		defer ln.Close()

		err = server.Run(context.Background(), server.Config{Address: ln.Addr().String()}, http.NotFoundHandler())
		require.Error(t, err)
	})
}
