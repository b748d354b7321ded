package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	AttendanceScans = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "eventra_attendance_scans_total", Help: "Total attendance QR scans processed"},
	)
	CertificatesIssued = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "eventra_certificates_issued_total", Help: "Total certificates issued"},
	)
	CertificatesRevoked = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "eventra_certificates_revoked_total", Help: "Total certificates revoked"},
	)
	CertificateMailFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "eventra_certificate_mail_failures_total", Help: "Total certificate e-mail deliveries that failed"},
	)
	PaymentWebhooks = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "eventra_payment_webhooks_total", Help: "Total payment webhooks received by outcome"},
		[]string{"status"},
	)
)

func Register() {
	prometheus.MustRegister(
		AttendanceScans,
		CertificatesIssued,
		CertificatesRevoked,
		CertificateMailFailures,
		PaymentWebhooks,
	)
}
