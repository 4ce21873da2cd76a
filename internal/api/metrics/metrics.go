// Package metrics defines all custom Prometheus metrics for the contact
// management API. It is the single source of truth for metric names,
// labels, and help strings; metrics register themselves via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "contactapi"

// ContactsCreatedTotal counts contact records created through the API.
// Label:
//   - collection: "contacts" or "contacts_with_duplicates"
var ContactsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "contacts_created_total",
		Help:      "Total number of contact records created, by collection.",
	},
	[]string{"collection"},
)

// MergeRunsTotal counts duplicate-merge invocations.
// Label:
//   - result: "ok", "locked", or "error"
var MergeRunsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "merge_runs_total",
		Help:      "Total number of duplicate-merge runs, by result.",
	},
	[]string{"result"},
)

// ContactsMergedTotal counts duplicate records merged away and deleted by
// the merge engine.
var ContactsMergedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "contacts_merged_total",
		Help:      "Total number of duplicate contact records merged away and deleted.",
	},
)

// AuthFailuresTotal counts requests rejected by the authentication gate.
// Label:
//   - reason: "malformed", "invalid_signature", "expired", or "unknown_user"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of bearer tokens rejected, by reason.",
	},
	[]string{"reason"},
)

// UsersRegisteredTotal counts successful signups.
// Label:
//   - role: "USER" or "ADMIN"
var UsersRegisteredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of accounts registered, by role.",
	},
	[]string{"role"},
)
