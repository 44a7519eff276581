// Package metrics exposes Prometheus counters for authentication outcomes.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "nox_iam"

// Metrics holds the service collectors.
type Metrics struct {
	logins          *prometheus.CounterVec
	rotations       *prometheus.CounterVec
	mfa             *prometheus.CounterVec
	lockouts        *prometheus.CounterVec
	otp             *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Login attempts by outcome.",
		}, []string{"method", "outcome"}),
		rotations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_rotations_total",
			Help:      "Refresh token rotations by outcome.",
		}, []string{"outcome"}),
		mfa: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mfa_verifications_total",
			Help:      "MFA challenge verifications by method and outcome.",
		}, []string{"method", "outcome"}),
		lockouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lockouts_total",
			Help:      "Accounts locked by the failure source.",
		}, []string{"source"}),
		otp: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "otp_validations_total",
			Help:      "One-time code validations by type and outcome.",
		}, []string{"type", "outcome"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "grpc_request_duration_seconds",
			Help:      "gRPC request latencies in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "code"}),
	}

	reg.MustRegister(m.logins, m.rotations, m.mfa, m.lockouts, m.otp, m.requestDuration)
	return m
}

// Login counts a login attempt.
func (m *Metrics) Login(method, outcome string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(method, outcome).Inc()
}

// Rotation counts a refresh token rotation.
func (m *Metrics) Rotation(outcome string) {
	if m == nil {
		return
	}
	m.rotations.WithLabelValues(outcome).Inc()
}

// MFA counts an MFA verification.
func (m *Metrics) MFA(method, outcome string) {
	if m == nil {
		return
	}
	m.mfa.WithLabelValues(method, outcome).Inc()
}

// Lockout counts an account lock.
func (m *Metrics) Lockout(source string) {
	if m == nil {
		return
	}
	m.lockouts.WithLabelValues(source).Inc()
}

// OTP counts a one-time code validation.
func (m *Metrics) OTP(otpType, outcome string) {
	if m == nil {
		return
	}
	m.otp.WithLabelValues(otpType, outcome).Inc()
}

// ObserveRequest records the latency of a gRPC call.
func (m *Metrics) ObserveRequest(method, code string, seconds float64) {
	if m == nil {
		return
	}
	m.requestDuration.WithLabelValues(method, code).Observe(seconds)
}
