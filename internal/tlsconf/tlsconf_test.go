package tlsconf

import (
	"bufio"
	"crypto/tls"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestClient(t *testing.T) {
	cfg, err := Client("smtp.example.com", "", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.ServerName != "smtp.example.com" {
		t.Errorf("ServerName: got %q, want %q", cfg.ServerName, "smtp.example.com")
	}
	if cfg.MinVersion != tls.VersionTLS12 {
		t.Errorf("MinVersion: got %x, want TLS 1.2", cfg.MinVersion)
	}
	if cfg.InsecureSkipVerify {
		t.Error("InsecureSkipVerify: got true, want false")
	}
	if cfg.RootCAs != nil {
		t.Error("RootCAs set without a CA file")
	}
}

func TestClient_MissingCAFile(t *testing.T) {
	_, err := Client("smtp.example.com", filepath.Join(t.TempDir(), "nope.pem"), false)
	if err == nil {
		t.Fatal("expected error for missing CA file, got nil")
	}
	if !strings.Contains(err.Error(), "failed to read CA file") {
		t.Errorf("error %q does not name the cause", err)
	}
}

func TestClient_InvalidCAFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.pem")
	if err := os.WriteFile(path, []byte("not a certificate"), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	_, err := Client("smtp.example.com", path, false)
	if err == nil {
		t.Fatal("expected error for invalid CA file, got nil")
	}
	if !strings.Contains(err.Error(), "no certificates found") {
		t.Errorf("error %q does not name the cause", err)
	}
}

func TestSelfSignedServer_Handshake(t *testing.T) {
	serverCfg, err := SelfSignedServer()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ln, err := tls.Listen("tcp", "127.0.0.1:0", serverCfg)
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		fmt.Fprintf(conn, "hello\n")
	}()

	clientCfg, err := Client("127.0.0.1", "", true)
	if err != nil {
		t.Fatalf("failed to build client config: %v", err)
	}

	conn, err := tls.Dial("tcp", ln.Addr().String(), clientCfg)
	if err != nil {
		t.Fatalf("handshake failed: %v", err)
	}
	defer conn.Close()

	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if line != "hello\n" {
		t.Errorf("got %q, want %q", line, "hello\n")
	}
}
