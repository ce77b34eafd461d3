package internaldefs

import (
	goStudio "github.com/MrEthical07/goStudio"
)

// Def names one engine metric for export.
type Def struct {
	ID   goStudio.MetricID
	Name string
	Help string
}

// Counters lists every exported counter in output order.
var Counters = []Def{
	{ID: goStudio.MetricLoginSuccess, Name: "gostudio_login_success_total", Help: "Successful logins."},
	{ID: goStudio.MetricLoginFailure, Name: "gostudio_login_failure_total", Help: "Rejected logins (unknown identifier or wrong password)."},
	{ID: goStudio.MetricRegisterSuccess, Name: "gostudio_register_success_total", Help: "Created accounts."},
	{ID: goStudio.MetricRegisterDuplicate, Name: "gostudio_register_duplicate_total", Help: "Registrations rejected because the email is taken."},
	{ID: goStudio.MetricRegisterFailure, Name: "gostudio_register_failure_total", Help: "Registrations that failed validation or storage."},
	{ID: goStudio.MetricIdentifyAuthenticated, Name: "gostudio_identify_authenticated_total", Help: "Requests resolved to a principal."},
	{ID: goStudio.MetricIdentifyTokenInvalid, Name: "gostudio_identify_token_invalid_total", Help: "Bearer tokens rejected as malformed, forged or expired."},
	{ID: goStudio.MetricIdentifyPrincipalMissing, Name: "gostudio_identify_principal_missing_total", Help: "Valid tokens whose subject no longer exists."},
	{ID: goStudio.MetricIdentifyLookupFailed, Name: "gostudio_identify_lookup_failed_total", Help: "Store faults during request identification."},
	{ID: goStudio.MetricJoinSuccess, Name: "gostudio_session_join_total", Help: "Users added to a session."},
	{ID: goStudio.MetricJoinRejected, Name: "gostudio_session_join_rejected_total", Help: "Rejected session joins."},
	{ID: goStudio.MetricLeaveSuccess, Name: "gostudio_session_leave_total", Help: "Users removed from a session."},
	{ID: goStudio.MetricLeaveRejected, Name: "gostudio_session_leave_rejected_total", Help: "Rejected session leaves."},
	{ID: goStudio.MetricSessionCreated, Name: "gostudio_session_created_total", Help: "Sessions created."},
	{ID: goStudio.MetricSessionUpdated, Name: "gostudio_session_updated_total", Help: "Sessions updated."},
	{ID: goStudio.MetricSessionDeleted, Name: "gostudio_session_deleted_total", Help: "Sessions deleted."},
	{ID: goStudio.MetricAccountDeleted, Name: "gostudio_account_deleted_total", Help: "Accounts deleted."},
}

// Histograms lists the latency histograms.
var Histograms = []Def{
	{ID: goStudio.MetricIdentifyLatency, Name: "gostudio_identify_latency_seconds", Help: "Time to resolve a bearer token to a principal."},
	{ID: goStudio.MetricLoginLatency, Name: "gostudio_login_latency_seconds", Help: "Login time including password hashing."},
}

// AuditDropped is exported from Engine.AuditDropped rather than a snapshot.
var AuditDropped = Def{Name: "gostudio_audit_dropped_total", Help: "Audit events dropped because the dispatcher buffer was full."}

// BucketCount matches the engine's fixed histogram layout.
const BucketCount = 8

// Bounds are the upper bucket bounds in seconds, as Prometheus "le" labels.
var Bounds = [BucketCount]string{"0.005", "0.01", "0.025", "0.05", "0.1", "0.25", "0.5", "+Inf"}

// BoundSuffixes are the Bounds spelled for use inside instrument names.
var BoundSuffixes = [BucketCount]string{"0_005", "0_01", "0_025", "0_05", "0_1", "0_25", "0_5", "inf"}

// Cumulative turns raw per-bucket counts into cumulative counts. Missing
// trailing buckets count as zero.
func Cumulative(raw []uint64) [BucketCount]uint64 {
	var out [BucketCount]uint64
	var running uint64
	for i := range out {
		if i < len(raw) {
			running += raw[i]
		}
		out[i] = running
	}
	return out
}
