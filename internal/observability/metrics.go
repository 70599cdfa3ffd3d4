package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Short-link resolution outcomes.
const (
	ShortLinkResolved = "resolved"
	ShortLinkInvalid  = "invalid"
	ShortLinkMissing  = "missing"
)

// Relation toggle actions.
const (
	ActionAdd    = "add"
	ActionRemove = "remove"
)

var (
	shortLinkResolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "foodgram",
			Name:      "short_link_resolutions_total",
			Help:      "Short-link redirects by outcome.",
		},
		[]string{"result"},
	)

	shoppingDownloads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "foodgram",
			Name:      "shopping_list_downloads_total",
			Help:      "Shopping-list downloads by format.",
		},
		[]string{"format"},
	)

	relationToggles = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "foodgram",
			Name:      "relation_toggles_total",
			Help:      "Successful favorite/shopping-cart/subscription changes.",
		},
		[]string{"relation", "action"},
	)

	recipesCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "foodgram",
			Name:      "recipes_created_total",
			Help:      "Recipe create responses, split by idempotent replay.",
		},
		[]string{"replayed"},
	)
)

func init() {
	prometheus.MustRegister(shortLinkResolutions, shoppingDownloads, relationToggles, recipesCreated)
}

// ObserveShortLink counts one short-link lookup with the given outcome.
func ObserveShortLink(result string) {
	shortLinkResolutions.WithLabelValues(result).Inc()
}

// ObserveShoppingDownload counts one shopping-list download.
func ObserveShoppingDownload(format string) {
	shoppingDownloads.WithLabelValues(format).Inc()
}

// ObserveRelationToggle counts one successful add or remove on a user list.
func ObserveRelationToggle(relation, action string) {
	relationToggles.WithLabelValues(relation, action).Inc()
}

// ObserveRecipeCreated counts one create response. Replays are counted
// separately so the "false" series equals rows inserted.
func ObserveRecipeCreated(replayed bool) {
	v := "false"
	if replayed {
		v = "true"
	}
	recipesCreated.WithLabelValues(v).Inc()
}
