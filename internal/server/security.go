package server

import (
	"crypto/tls"
	"fmt"
	"net"

	"github.com/dtroode/nox-iam/internal/model"
)

var (
	_ model.SecurityLayer = (*TLSListener)(nil)
	_ model.SecurityLayer = (*PlainListener)(nil)
)

// TLSListener opens listeners that terminate TLS 1.2+ with a certificate
// loaded from disk.
type TLSListener struct {
	config *tls.Config
}

// NewTLSListener loads the key pair and fails early when it is unreadable.
func NewTLSListener(certFileName, privateKeyFileName string) (*TLSListener, error) {
	cert, err := tls.LoadX509KeyPair(certFileName, privateKeyFileName)
	if err != nil {
		return nil, fmt.Errorf("failed to load TLS certificate: %w", err)
	}

	return &TLSListener{
		config: &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		},
	}, nil
}

func (l *TLSListener) Listen(protocol, addr string) (net.Listener, error) {
	return tls.Listen(protocol, addr, l.config.Clone())
}

// PlainListener opens unencrypted listeners.
type PlainListener struct{}

func NewPlainListener() *PlainListener {
	return &PlainListener{}
}

func (l *PlainListener) Listen(protocol, addr string) (net.Listener, error) {
	return net.Listen(protocol, addr)
}

// NewSecurityLayer picks the TLS listener when enabled.
func NewSecurityLayer(enableTLS bool, certFileName, privateKeyFileName string) (model.SecurityLayer, error) {
	if !enableTLS {
		return NewPlainListener(), nil
	}
	return NewTLSListener(certFileName, privateKeyFileName)
}
