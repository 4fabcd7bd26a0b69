package cli

import (
	"os"
	"syscall"
	"testing"
	"time"
)

func TestSetupSignalHandler(t *testing.T) {
	ctx, cancel := SetupSignalHandler()
	defer cancel()

	// Context should not be cancelled initially
	select {
	case <-ctx.Done():
		t.Error("Context should not be cancelled initially")
	default:
		// Expected
	}

	// Context should have a Done channel
	if ctx.Done() == nil {
		t.Error("Context should have a Done channel")
	}
}

func TestSetupSignalHandlerCancel(t *testing.T) {
	ctx, cancel := SetupSignalHandler()

	cancel()

	select {
	case <-ctx.Done():
		// Expected
	case <-time.After(100 * time.Millisecond):
		t.Error("Context should be cancelled after calling cancel")
	}
}

func TestWaitForShutdown(t *testing.T) {
	sigChan := WaitForShutdown()

	// Should return a channel
	if sigChan == nil {
		t.Fatal("WaitForShutdown() returned nil channel")
	}

	// Channel should not have any signals initially
	select {
	case <-sigChan:
		t.Error("Signal channel should be empty initially")
	case <-time.After(10 * time.Millisecond):
		// Expected
	}
}

func TestWaitForShutdownReceivesSignal(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping signal test in short mode")
	}

	// This test verifies the channel receives signals
	// Note: We can't easily test actual signal delivery without
	// sending real signals, which could interfere with the test process

	sigChan := WaitForShutdown()

	// Simulate signal by sending to our own process
	// (This is safe in a test environment)
	go func() {
		time.Sleep(50 * time.Millisecond)
		// Send signal to ourselves
		p, _ := os.FindProcess(os.Getpid())
		_ = p.Signal(syscall.SIGTERM)
	}()

	// Wait for signal with timeout
	select {
	case sig := <-sigChan:
		if sig != syscall.SIGTERM {
			t.Errorf("Expected SIGTERM, got %v", sig)
		}
	case <-time.After(200 * time.Millisecond):
		// This might timeout on some systems, which is okay
		t.Skip("Signal not received within timeout (this is okay)")
	}
}

func TestContextCancellationFlow(t *testing.T) {
	// Test that we can use the context in a typical shutdown flow
	ctx, cancel := SetupSignalHandler()

	watcherDone := make(chan bool)

	// Simulate a watcher goroutine
	go func() {
		<-ctx.Done()
		watcherDone <- true
	}()

	// Context should still be active
	select {
	case <-watcherDone:
		t.Error("Watcher should not be done yet")
	case <-time.After(10 * time.Millisecond):
		// Expected
	}

	cancel()

	select {
	case <-watcherDone:
		// Expected
	case <-time.After(100 * time.Millisecond):
		t.Error("Watcher should stop after cancel")
	}
}
