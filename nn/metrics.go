package nn

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	bowDocuments = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vampire_bow_documents_total",
		Help: "The total number of documents converted to bag-of-words vectors",
	})

	samplesDrawn = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vampire_samples_drawn_total",
		Help: "The total number of categorical samples drawn",
	})
)
