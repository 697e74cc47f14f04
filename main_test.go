package main

import (
	"net"
	"os"
	"strconv"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runAsync(stop <-chan os.Signal) <-chan error {
	done := make(chan error, 1)
	go func() { done <- run(stop) }()
	return done
}

func TestRunReturnsWhenPortIsTaken(t *testing.T) {
	t.Chdir(t.TempDir())

	ln, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer ln.Close()
	t.Setenv("PORT", strconv.Itoa(ln.Addr().(*net.TCPAddr).Port))

	select {
	case err := <-runAsync(make(chan os.Signal)):
		require.Error(t, err)
		assert.Contains(t, err.Error(), "serve")
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after the listener failed")
	}
}

func TestRunStopsOnSignal(t *testing.T) {
	t.Chdir(t.TempDir())

	ln, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())
	t.Setenv("PORT", strconv.Itoa(port))

	stop := make(chan os.Signal, 1)
	done := runAsync(stop)

	require.Eventually(t, func() bool {
		conn, err := net.Dial("tcp", "127.0.0.1:"+strconv.Itoa(port))
		if err != nil {
			return false
		}
		conn.Close()
		return true
	}, 5*time.Second, 20*time.Millisecond)

	stop <- syscall.SIGTERM
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not stop")
	}
}
