package observability

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	MessagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbot_messages_total",
			Help: "Mensagens respondidas, por estratégia e idioma",
		},
		[]string{"strategy", "lang"},
	)

	ShippingLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbot_shipping_lookups_total",
			Help: "Consultas de CEP, por resultado",
		},
		[]string{"outcome"},
	)

	CompletionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatbot_llm_completions_total",
			Help: "Chamadas ao modelo generativo, por resultado",
		},
		[]string{"outcome"},
	)

	CompletionSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chatbot_llm_completion_seconds",
			Help:    "Latência das chamadas ao modelo generativo",
			Buckets: prometheus.DefBuckets,
		},
	)

	CatalogFallbacksTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "chatbot_catalog_fallbacks_total",
			Help: "Vezes em que o catálogo não carregou e o bundle mínimo foi usado",
		},
	)
)

var registerOnce sync.Once

func register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			MessagesTotal,
			ShippingLookupsTotal,
			CompletionsTotal,
			CompletionSeconds,
			CatalogFallbacksTotal,
		)
	})
}

// Handler registra as métricas (uma vez) e devolve o handler de /metrics.
func Handler() http.Handler {
	register()
	return promhttp.Handler()
}

// Start expõe /metrics numa porta separada.
func Start(port string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	go http.ListenAndServe(":"+port, mux)
}
